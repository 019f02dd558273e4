package unitenum

import (
	"errors"
	"fmt"
)

// A DiagnosticKind classifies why a description was rejected.
type DiagnosticKind int

const (
	FallbackCardinality DiagnosticKind = iota + 1
	PayloadArity
	UnderlyingTypeRequired
	PayloadTypeMismatch
	DuplicateName
	DuplicateDiscriminant
	DiscriminantOutOfRange

	// front-end input the builder can't normalize
	InvalidName
	InvalidUnderlyingType
	InvalidTag
	FallbackTagged
)

var diagnosticKindNames = map[DiagnosticKind]string{
	FallbackCardinality:    "FallbackCardinality",
	PayloadArity:           "PayloadArity",
	UnderlyingTypeRequired: "UnderlyingTypeRequired",
	PayloadTypeMismatch:    "PayloadTypeMismatch",
	DuplicateName:          "DuplicateName",
	DuplicateDiscriminant:  "DuplicateDiscriminant",
	DiscriminantOutOfRange: "DiscriminantOutOfRange",
	InvalidName:            "InvalidName",
	InvalidUnderlyingType:  "InvalidUnderlyingType",
	InvalidTag:             "InvalidTag",
	FallbackTagged:         "FallbackTagged",
}

func (k DiagnosticKind) String() string {
	if n, ok := diagnosticKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Class of every diagnostic. Use errors.Is(err, ErrStructural) to test
// which pass rejected a description.
var (
	ErrStructural   = errors.New("structural error")
	ErrDiscriminant = errors.New("discriminant error")
)

func (k DiagnosticKind) Class() error {
	switch k {
	case DuplicateDiscriminant, DiscriminantOutOfRange:
		return ErrDiscriminant
	}
	return ErrStructural
}

// A Diagnostic is the single failure reported for a rejected description.
// No TableSet is ever produced alongside it.
type Diagnostic struct {
	Kind     DiagnosticKind
	TypeName string // may be empty if the front-end didn't name the type
	Member   string // offending member, empty if the failure is type-wide
	Message  string
}

var _ error = (*Diagnostic)(nil)

func (d *Diagnostic) Error() string {
	prefix := d.Kind.String()
	if d.TypeName != "" {
		prefix += " in " + d.TypeName
	}
	if d.Member != "" {
		return fmt.Sprintf("%s: member %s: %s", prefix, d.Member, d.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, d.Message)
}

func (d *Diagnostic) Is(target error) bool {
	return target == d.Kind.Class()
}

func newDiagnostic(kind DiagnosticKind, td *TypeDescriptor, member string, format string, args ...interface{}) *Diagnostic {
	d := Diagnostic{
		Kind:    kind,
		Member:  member,
		Message: fmt.Sprintf(format, args...),
	}
	if td != nil {
		d.TypeName = td.Name
	}
	return &d
}
