package unitenum

import (
	"fmt"
	"math/big"
)

type ValueKind int

const (
	MemberValue ValueKind = iota
	FallbackValue
)

func (k ValueKind) String() string {
	switch k {
	case MemberValue:
		return "Member"
	case FallbackValue:
		return "Fallback"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// A Value is one instance of the enumeration: either an ordinary member
// or the fallback member wrapping a raw discriminant.
// Values are produced by a TableSet; the zero Value is not valid.
type Value struct {
	kind    ValueKind
	name    string
	ordinal int      // for fallback: number of ordinary members
	raw     *big.Int // never handed out directly
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsFallback() bool {
	return v.kind == FallbackValue
}

// Name returns the declared member name. For a fallback instance this is
// the fallback member's own name.
func (v Value) Name() string {
	return v.name
}

// Ordinal returns the position among ordinary members. A fallback
// instance is ordered after the last one.
func (v Value) Ordinal() int {
	return v.ordinal
}

// Discriminant returns the resolved tag, or the raw value for a fallback
// instance.
func (v Value) Discriminant() *big.Int {
	if v.raw == nil {
		return nil
	}
	return new(big.Int).Set(v.raw)
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.name != o.name || v.ordinal != o.ordinal {
		return false
	}
	if v.raw == nil || o.raw == nil {
		return v.raw == o.raw
	}
	return v.raw.Cmp(o.raw) == 0
}

func (v Value) String() string {
	switch v.kind {
	case MemberValue:
		return v.name
	case FallbackValue:
		return fmt.Sprintf("%s(%s)", v.name, v.raw)
	}
	return "<invalid>"
}
