/*
Package unitenum derives, at build time, the metadata of a closed
enumeration whose members carry no data except for an optional single
fallback member.

The pipeline is

	RawType --Build--> TypeDescriptor --Validate,Resolve--> Resolved --NewTableSet--> TableSet

and it either produces a TableSet or stops at the first *Diagnostic.
Nothing in here keeps state between calls: every type is processed on its
own and the TableSet is handed back to the caller.
*/
package unitenum

// Derive runs the whole pipeline for one front-end description.
func Derive(raw *RawType) (*TableSet, error) {
	td, err := Build(raw)
	if err != nil {
		return nil, err
	}
	return DeriveDescriptor(td)
}

// DeriveDescriptor starts from an already normalized description.
func DeriveDescriptor(td *TypeDescriptor) (*TableSet, error) {
	r, err := Resolve(td)
	if err != nil {
		return nil, err
	}
	return NewTableSet(r), nil
}
