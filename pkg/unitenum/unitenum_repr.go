package unitenum

import (
	"fmt"
	"math/big"
	"strings"
)

// An UnderlyingType is the integer width/signedness used to represent
// discriminants. The zero value means the description didn't declare one.
type UnderlyingType int

const (
	Unspecified UnderlyingType = iota
	I8
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
)

// used when nothing is declared and the type has no fallback member
const DefaultUnderlyingType = I32

var underlyingTypeNames = map[UnderlyingType]string{
	I8:   "i8",
	I16:  "i16",
	I32:  "i32",
	I64:  "i64",
	I128: "i128",
	U8:   "u8",
	U16:  "u16",
	U32:  "u32",
	U64:  "u64",
	U128: "u128",
}

// synonyms accepted by ParseUnderlyingType (Go spelling)
var underlyingTypeSynonyms = map[string]UnderlyingType{
	"int8":    I8,
	"int16":   I16,
	"int32":   I32,
	"int64":   I64,
	"int128":  I128,
	"uint8":   U8,
	"uint16":  U16,
	"uint32":  U32,
	"uint64":  U64,
	"uint128": U128,
}

func ParseUnderlyingType(in string) (UnderlyingType, error) {
	name := strings.ToLower(strings.TrimSpace(in))
	for t, n := range underlyingTypeNames {
		if n == name {
			return t, nil
		}
	}
	if t, ok := underlyingTypeSynonyms[name]; ok {
		return t, nil
	}
	return Unspecified, fmt.Errorf("unknown integer type %q", in)
}

func (t UnderlyingType) String() string {
	if n, ok := underlyingTypeNames[t]; ok {
		return n
	}
	if t == Unspecified {
		return "unspecified"
	}
	return fmt.Sprintf("UnderlyingType(%d)", int(t))
}

func (t UnderlyingType) IsValid() bool {
	_, ok := underlyingTypeNames[t]
	return ok
}

func (t UnderlyingType) Signed() bool {
	return t >= I8 && t <= I128
}

func (t UnderlyingType) Bits() int {
	switch t {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32:
		return 32
	case I64, U64:
		return 64
	case I128, U128:
		return 128
	}
	return 0
}

// Min returns the smallest representable value. Unsigned types start at 0.
func (t UnderlyingType) Min() *big.Int {
	if !t.Signed() {
		return big.NewInt(0)
	}
	// -(2^(bits-1))
	return new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(t.Bits()-1)))
}

// Max returns the largest representable value.
func (t UnderlyingType) Max() *big.Int {
	bits := t.Bits()
	if t.Signed() {
		bits--
	}
	// 2^bits - 1
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(bits)), big.NewInt(1))
}

// Contains reports whether v is representable in t.
func (t UnderlyingType) Contains(v *big.Int) bool {
	if v == nil || !t.IsValid() {
		return false
	}
	return v.Cmp(t.Min()) >= 0 && v.Cmp(t.Max()) <= 0
}

// GoType returns the name of the native Go integer type for t.
// There is no native Go type for the 128-bit widths.
func (t UnderlyingType) GoType() (string, error) {
	if !t.IsValid() {
		return "", fmt.Errorf("%s has no Go type", t)
	}
	if t.Bits() == 128 {
		return "", fmt.Errorf("%s has no native Go type", t)
	}
	if t.Signed() {
		return fmt.Sprintf("int%d", t.Bits()), nil
	}
	return fmt.Sprintf("uint%d", t.Bits()), nil
}

// parseTag reads an integer literal the way Go source spells them:
// optional sign, 0x/0o/0b prefixes and _ separators.
func parseTag(literal string) (*big.Int, error) {
	s := strings.TrimSpace(literal)
	if s == "" {
		return nil, fmt.Errorf("empty integer literal")
	}
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("%q is not an integer literal", literal)
	}
	return v, nil
}
