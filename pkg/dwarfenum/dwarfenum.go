package dwarfenum

import (
	"debug/dwarf"
	"fmt"
	"log"
	"strings"

	"github.com/aodinokov/unitenum/pkg/unitenum"
)

/*
	dwarfenum is a front-end: it finds C/C++ enumerations
	(DW_TAG_enumeration_type) in DWARF and turns them into unitenum
	descriptions. Every enumerator carries its constant value, so all
	tags come out explicit; the underlying type gets chosen from the byte
	size and the encoding of the enum's base type.
*/

// DW_ATE_* base type encodings that matter for enums
type Encoding int64

const (
	EncBoolean      Encoding = 0x2
	EncSigned       Encoding = 0x5
	EncSignedChar   Encoding = 0x6
	EncUnsigned     Encoding = 0x7
	EncUnsignedChar Encoding = 0x8
	EncUtf          Encoding = 0x10
)

func (e Encoding) Signed() bool {
	return e == EncSigned || e == EncSignedChar
}

type Enumerator struct {
	Name  string
	Value int64 // as stored: unsigned values above MaxInt64 wrap
}

type Enumeration struct {
	Offset      dwarf.Offset
	Name        string
	ByteSize    int64
	Encoding    *Encoding // nil if there is no DW_AT_type
	Enumerators []Enumerator
}

// Signed uses the base type if known, otherwise guesses the way gcc does:
// signed only if some value is negative.
func (e *Enumeration) Signed() bool {
	if e.Encoding != nil {
		return e.Encoding.Signed()
	}
	for _, v := range e.Enumerators {
		if v.Value < 0 {
			return true
		}
	}
	return false
}

func (e *Enumeration) Repr() (string, error) {
	size := e.ByteSize
	if size == 0 {
		size = 4
	}
	switch size {
	case 1, 2, 4, 8, 16:
	default:
		return "", fmt.Errorf("enum %s: unsupported byte size %d", e.Name, e.ByteSize)
	}
	if e.Signed() {
		return fmt.Sprintf("i%d", size*8), nil
	}
	return fmt.Sprintf("u%d", size*8), nil
}

func (e *Enumeration) ToRawType() (*unitenum.RawType, error) {
	repr, err := e.Repr()
	if err != nil {
		return nil, err
	}
	raw := unitenum.RawType{
		Name:    e.Name,
		Repr:    repr,
		Members: make([]unitenum.RawMember, 0, len(e.Enumerators)),
	}
	signed := e.Signed()
	for _, v := range e.Enumerators {
		var tag unitenum.Literal
		if !signed && v.Value < 0 {
			tag = unitenum.Literal(fmt.Sprintf("%d", uint64(v.Value)))
		} else {
			tag = unitenum.Literal(fmt.Sprintf("%d", v.Value))
		}
		raw.Members = append(raw.Members, unitenum.RawMember{Name: v.Name, Tag: &tag})
	}
	return &raw, nil
}

// signature is used to detect the same enum coming from different compile units
func (e *Enumeration) signature() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s,%d,", e.Name, e.ByteSize)
	for _, v := range e.Enumerators {
		fmt.Fprintf(&sb, "(%s:%d),", v.Name, v.Value)
	}
	return sb.String()
}

type entryReader interface {
	Next() (*dwarf.Entry, error)
}

type encodingLookup func(dwarf.Offset) (*Encoding, error)

// Enumerations returns every named enumeration definition. Declarations
// and anonymous enums are skipped, so are repeated definitions of the
// same enum.
func Enumerations(data *dwarf.Data) ([]*Enumeration, error) {
	if data == nil {
		return nil, fmt.Errorf("data pointer can't be nil")
	}
	return collect(data.Reader(), func(off dwarf.Offset) (*Encoding, error) {
		return baseEncoding(data, off)
	})
}

func FromData(data *dwarf.Data) ([]*unitenum.RawType, error) {
	enums, err := Enumerations(data)
	if err != nil {
		return nil, err
	}
	raws := make([]*unitenum.RawType, 0, len(enums))
	for _, e := range enums {
		raw, err := e.ToRawType()
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

func collect(r entryReader, lookup encodingLookup) ([]*Enumeration, error) {
	out := []*Enumeration{}
	seen := map[string]string{} // name -> signature

	for {
		entry, err := r.Next()
		if err != nil {
			return nil, err
		}
		if entry == nil {
			break
		}
		if entry.Tag != dwarf.TagEnumerationType {
			continue
		}

		e := Enumeration{Offset: entry.Offset}
		e.Name, _ = entry.Val(dwarf.AttrName).(string)
		e.ByteSize, _ = entry.Val(dwarf.AttrByteSize).(int64)
		declaration, _ := entry.Val(dwarf.AttrDeclaration).(bool)

		if entry.Children {
			if err := readEnumerators(r, &e); err != nil {
				return nil, fmt.Errorf("enum at offset %d: %v", entry.Offset, err)
			}
		}
		if declaration {
			continue
		}
		if e.Name == "" {
			log.Printf("skipping anonymous enum at offset %d", entry.Offset)
			continue
		}

		if off, ok := entry.Val(dwarf.AttrType).(dwarf.Offset); ok && lookup != nil {
			enc, err := lookup(off)
			if err != nil {
				return nil, fmt.Errorf("enum %s: %v", e.Name, err)
			}
			e.Encoding = enc
		}

		sig := e.signature()
		if prev, ok := seen[e.Name]; ok {
			if prev != sig {
				log.Printf("enum %s at offset %d differs from the one seen before, skipping", e.Name, entry.Offset)
			}
			continue
		}
		seen[e.Name] = sig
		out = append(out, &e)
	}
	return out, nil
}

func readEnumerators(r entryReader, e *Enumeration) error {
	for {
		child, err := r.Next()
		if err != nil {
			return err
		}
		if child == nil || child.Tag == 0 {
			return nil
		}
		if child.Tag != dwarf.TagEnumerator {
			continue
		}
		name, _ := child.Val(dwarf.AttrName).(string)
		var value int64
		switch v := child.Val(dwarf.AttrConstValue).(type) {
		case int64:
			value = v
		case uint64:
			value = int64(v)
		default:
			return fmt.Errorf("enumerator %s has no constant value", name)
		}
		e.Enumerators = append(e.Enumerators, Enumerator{Name: name, Value: value})
	}
}

// baseEncoding follows typedefs and qualifiers down to the base type.
func baseEncoding(data *dwarf.Data, off dwarf.Offset) (*Encoding, error) {
	r := data.Reader()
	for depth := 0; depth < 16; depth++ {
		r.Seek(off)
		entry, err := r.Next()
		if err != nil {
			return nil, err
		}
		if entry == nil {
			return nil, fmt.Errorf("no entry at offset %d", off)
		}
		switch entry.Tag {
		case dwarf.TagBaseType:
			enc, ok := entry.Val(dwarf.AttrEncoding).(int64)
			if !ok {
				return nil, nil
			}
			e := Encoding(enc)
			return &e, nil
		case dwarf.TagTypedef, dwarf.TagConstType, dwarf.TagVolatileType:
			next, ok := entry.Val(dwarf.AttrType).(dwarf.Offset)
			if !ok {
				return nil, nil
			}
			off = next
		default:
			return nil, nil
		}
	}
	return nil, fmt.Errorf("type chain at offset %d is too deep", off)
}
