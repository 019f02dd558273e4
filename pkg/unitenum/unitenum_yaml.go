package unitenum

import (
	"encoding/json"
	"fmt"

	"github.com/huandu/xstrings"
	"gopkg.in/yaml.v3"
)

// A Document is a descriptor file: a list of enumerations.
//
//	enums:
//	  - name: Color
//	    members:
//	      - {name: Red, tag: 10}
//	      - {name: Green}
type Document struct {
	Enums []*RawType `json:"enums" yaml:"enums"`
}

func NewRawTypesFromYamlBuffer(buf []byte) ([]*RawType, error) {
	doc := Document{}
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, err
	}
	for i, raw := range doc.Enums {
		if raw == nil {
			return nil, fmt.Errorf("enum #%d is empty", i)
		}
	}
	return doc.Enums, nil
}

// NewRawTypeFromUnstructured accepts one enum in the unstructured form
// (e.g. taken from module settings).
func NewRawTypeFromUnstructured(u interface{}) (*RawType, error) {
	buf, err := yaml.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal unstructured enum: %v", err)
	}
	raw := RawType{}
	if err := yaml.Unmarshal(buf, &raw); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal enum: %v", err)
	}
	return &raw, nil
}

// ToUnstructured converts tables to maps and lists, so it's possible to
// work with them from gotemplate with sprig dict, list and etc.
// Discriminants are strings: they may not fit int64.
func (ts *TableSet) ToUnstructured() map[string]interface{} {
	members := []interface{}{}
	for v := range ts.Values() {
		members = append(members, map[string]interface{}{
			"name":         v.Name(),
			"ordinal":      v.Ordinal(),
			"discriminant": v.Discriminant().String(),
		})
	}
	u := map[string]interface{}{
		"name":               ts.typeName,
		"underlying":         ts.underlying.String(),
		"underlyingDeclared": ts.declared,
		"signed":             ts.underlying.Signed(),
		"bits":               ts.underlying.Bits(),
		"min":                ts.underlying.Min().String(),
		"max":                ts.underlying.Max().String(),
		"len":                ts.Len(),
		"members":            members,
		"fallback":           nil,
	}
	if goType, err := ts.underlying.GoType(); err == nil {
		u["goType"] = goType
	}
	if ts.hasFallback {
		u["fallback"] = map[string]interface{}{
			"name":    ts.fallback,
			"ordinal": ts.Len(),
		}
	}
	return u
}

func (ts *TableSet) ToYamlBuffer() ([]byte, error) {
	return yaml.Marshal(ts.ToUnstructured())
}

func (ts *TableSet) ToJsonBuffer() ([]byte, error) {
	return json.MarshalIndent(ts.ToUnstructured(), "", "  ")
}

func (d *Diagnostic) ToUnstructured() map[string]interface{} {
	return map[string]interface{}{
		"kind":    xstrings.ToSnakeCase(d.Kind.String()),
		"class":   d.Kind.Class().Error(),
		"type":    d.TypeName,
		"member":  d.Member,
		"message": d.Message,
	}
}
