package unitenum

import (
	"fmt"
	"iter"
	"math/big"
)

// A TableSet holds the derived name/ordinal/discriminant mappings of one
// type. It's immutable once built and shares nothing with other TableSets.
type TableSet struct {
	typeName   string
	underlying UnderlyingType
	declared   bool // underlying type was written in the description

	// ordinary members in declaration order, index is the ordinal
	names         []string
	discriminants []*big.Int

	ordinals       map[string]int
	byDiscriminant map[string]int // discriminant.String() -> ordinal

	fallback    string
	hasFallback bool
}

// NewTableSet builds the mappings from a resolved type.
func NewTableSet(r *Resolved) *TableSet {
	ts := TableSet{
		typeName:       r.Type.Name,
		underlying:     r.Underlying,
		declared:       r.Type.Underlying != Unspecified,
		ordinals:       map[string]int{},
		byDiscriminant: map[string]int{},
	}
	for i := range r.Type.Members {
		m := &r.Type.Members[i]
		if m.IsFallback {
			ts.fallback = m.Name
			ts.hasFallback = true
			continue
		}
		ordinal := len(ts.names)
		d := new(big.Int).Set(r.Discriminants[i])
		ts.names = append(ts.names, m.Name)
		ts.discriminants = append(ts.discriminants, d)
		ts.ordinals[m.Name] = ordinal
		ts.byDiscriminant[d.String()] = ordinal
	}
	return &ts
}

func (ts *TableSet) TypeName() string {
	return ts.typeName
}

// UnderlyingType returns the declared or defaulted integer type.
func (ts *TableSet) UnderlyingType() UnderlyingType {
	return ts.underlying
}

// UnderlyingDeclared tells if the underlying type came from the description
// rather than the default.
func (ts *TableSet) UnderlyingDeclared() bool {
	return ts.declared
}

// Len is the number of ordinary (non-fallback) members.
func (ts *TableSet) Len() int {
	return len(ts.names)
}

// Names returns the ordinary member names in declaration order.
func (ts *TableSet) Names() []string {
	out := make([]string, len(ts.names))
	copy(out, ts.names)
	return out
}

func (ts *TableSet) FallbackName() (string, bool) {
	return ts.fallback, ts.hasFallback
}

func (ts *TableSet) OrdinalOf(name string) (int, bool) {
	ordinal, ok := ts.ordinals[name]
	return ordinal, ok
}

func (ts *TableSet) NameOf(ordinal int) (string, bool) {
	if ordinal < 0 || ordinal >= len(ts.names) {
		return "", false
	}
	return ts.names[ordinal], true
}

// DiscriminantOf returns the static tag of an ordinary member. The fallback
// member has none: its discriminant is whatever its instance carries.
func (ts *TableSet) DiscriminantOf(name string) (*big.Int, bool) {
	ordinal, ok := ts.ordinals[name]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(ts.discriminants[ordinal]), true
}

// MemberOf maps a discriminant to a member. With a fallback member it's
// total over the underlying type's range.
func (ts *TableSet) MemberOf(d *big.Int) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	if ordinal, ok := ts.byDiscriminant[d.String()]; ok {
		return ts.member(ordinal), true
	}
	if !ts.hasFallback || !ts.underlying.Contains(d) {
		return Value{}, false
	}
	return ts.wrap(d), true
}

func (ts *TableSet) FromOrdinal(ordinal int) (Value, bool) {
	if ordinal < 0 || ordinal >= len(ts.names) {
		return Value{}, false
	}
	return ts.member(ordinal), true
}

func (ts *TableSet) FromDiscriminant(d *big.Int) (Value, bool) {
	return ts.MemberOf(d)
}

// Fallback wraps raw into a fallback instance, even if raw is the tag
// of an ordinary member.
func (ts *TableSet) Fallback(raw *big.Int) (Value, error) {
	if !ts.hasFallback {
		return Value{}, fmt.Errorf("%s has no fallback member", ts.typeName)
	}
	if !ts.underlying.Contains(raw) {
		return Value{}, fmt.Errorf("%v doesn't fit %s", raw, ts.underlying)
	}
	return ts.wrap(raw), nil
}

// Values yields the ordinary members in declaration order. The fallback
// member is never produced. The sequence can be iterated any number of
// times.
func (ts *TableSet) Values() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for ordinal := range ts.names {
			if !yield(ts.member(ordinal)) {
				return
			}
		}
	}
}

func (ts *TableSet) member(ordinal int) Value {
	return Value{
		kind:    MemberValue,
		name:    ts.names[ordinal],
		ordinal: ordinal,
		raw:     ts.discriminants[ordinal],
	}
}

func (ts *TableSet) wrap(raw *big.Int) Value {
	return Value{
		kind:    FallbackValue,
		name:    ts.fallback,
		ordinal: len(ts.names),
		raw:     new(big.Int).Set(raw),
	}
}
