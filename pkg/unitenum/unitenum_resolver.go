package unitenum

import (
	"math/big"
)

// Resolved is a structurally valid type with a discriminant computed for
// every member. Discriminants[i] belongs to Type.Members[i] and is nil for
// the fallback member.
type Resolved struct {
	Type          *TypeDescriptor
	Underlying    UnderlyingType // effective: declared or default
	Discriminants []*big.Int
}

/*
Resolve assigns tags the C way: a member without an explicit tag gets
the previous member's tag + 1, the first one gets 0.
The fallback member is skipped: it doesn't get a tag and doesn't
advance the counter.
Every tag must fit the underlying type and must be unique.
*/
func Resolve(td *TypeDescriptor) (*Resolved, error) {
	if err := Validate(td); err != nil {
		return nil, err
	}
	underlying := td.EffectiveUnderlying()

	r := Resolved{
		Type:          td,
		Underlying:    underlying,
		Discriminants: make([]*big.Int, len(td.Members)),
	}

	next := big.NewInt(0)
	claimedBy := map[string]string{} // discriminant -> member name
	for i := range td.Members {
		m := &td.Members[i]
		if m.IsFallback {
			continue
		}

		var d *big.Int
		if m.DeclaredTag != nil {
			d = new(big.Int).Set(m.DeclaredTag)
			if !underlying.Contains(d) {
				return nil, newDiagnostic(DiscriminantOutOfRange, td, m.Name,
					"tag %s doesn't fit %s (%s..%s)", d, underlying, underlying.Min(), underlying.Max())
			}
		} else {
			d = new(big.Int).Set(next)
			if !underlying.Contains(d) {
				return nil, newDiagnostic(DiscriminantOutOfRange, td, m.Name,
					"implicit tag %s overflows %s (%s..%s)", d, underlying, underlying.Min(), underlying.Max())
			}
		}

		key := d.String()
		if prev, conflict := claimedBy[key]; conflict {
			return nil, newDiagnostic(DuplicateDiscriminant, td, m.Name,
				"tag %s is already used by %s", key, prev)
		}
		claimedBy[key] = m.Name

		r.Discriminants[i] = d
		next = new(big.Int).Add(d, big.NewInt(1))
	}
	return &r, nil
}
