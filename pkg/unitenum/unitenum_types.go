package unitenum

import (
	"fmt"
	"math/big"

	"gopkg.in/yaml.v3"
)

// Front-end input:
// a RawType is the already parsed declaration of one enumeration,
// exactly as the front-end (yaml descriptor, dwarf, etc) spelled it.
type RawType struct {
	Name    string      `json:"name" yaml:"name"`
	Repr    string      `json:"repr,omitempty" yaml:"repr,omitempty"` // u8..u128, i8..i128; empty if not declared
	Members []RawMember `json:"members" yaml:"members"`
}

type RawMember struct {
	Name     string   `json:"name" yaml:"name"`
	Tag      *Literal `json:"tag,omitempty" yaml:"tag,omitempty"`
	Fallback bool     `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Payload  []string `json:"payload,omitempty" yaml:"payload,omitempty"` // type tags of the payload fields
}

// Literal keeps the integer as written, so values wider than 64 bits
// survive decoding.
type Literal string

func (l *Literal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: tag must be a scalar", node.Line)
	}
	*l = Literal(node.Value)
	return nil
}

func (l Literal) MarshalYAML() (interface{}, error) {
	// emit as an int if it's a valid one
	if v, err := parseTag(string(l)); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.String()}, nil
	}
	return string(l), nil
}

func NewLiteral(v int64) *Literal {
	l := Literal(fmt.Sprintf("%d", v))
	return &l
}

// Normalized representation:

// A MemberDescriptor is one member as declared.
type MemberDescriptor struct {
	Name        string
	DeclaredTag *big.Int // nil if the tag is implicit
	IsFallback  bool
	Payload     []UnderlyingType

	payloadNames []string // as spelled by the front-end, if built from one
}

func (m *MemberDescriptor) PayloadArity() int {
	return len(m.Payload)
}

func (m *MemberDescriptor) payloadName(i int) string {
	if i < len(m.payloadNames) {
		return m.payloadNames[i]
	}
	return m.Payload[i].String()
}

// A TypeDescriptor is the whole type. The order of Members is the
// declaration order and is significant.
type TypeDescriptor struct {
	Name       string
	Members    []MemberDescriptor
	Underlying UnderlyingType // Unspecified if not declared

	reprName string
}

func (td *TypeDescriptor) underlyingName() string {
	if td.reprName != "" {
		return td.reprName
	}
	return td.Underlying.String()
}

// HasFallback is true iff exactly one member is marked fallback.
func (td *TypeDescriptor) HasFallback() bool {
	count := 0
	for i := range td.Members {
		if td.Members[i].IsFallback {
			count++
		}
	}
	return count == 1
}

// Fallback returns the first member marked fallback, nil if there is none.
func (td *TypeDescriptor) Fallback() *MemberDescriptor {
	for i := range td.Members {
		if td.Members[i].IsFallback {
			return &td.Members[i]
		}
	}
	return nil
}

// EffectiveUnderlying returns the declared type or the default one.
func (td *TypeDescriptor) EffectiveUnderlying() UnderlyingType {
	if td.Underlying == Unspecified {
		return DefaultUnderlyingType
	}
	return td.Underlying
}
