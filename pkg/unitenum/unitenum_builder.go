package unitenum

import (
	"math/big"
	"strings"
)

/*
Build only normalizes: it turns the front-end spelling (strings) into
typed values and keeps the declaration order verbatim.
Spellings it can't make sense of (integer type names, a tag on the
fallback member) are kept in the descriptor and left for Validate, so
the order of structural diagnostics doesn't depend on the front-end.
Numeric ranges are not looked at here - that's the resolver's job.
*/

// invalidUnderlying stands for a type name ParseUnderlyingType rejected.
const invalidUnderlying UnderlyingType = -1

func parseSpelling(in string) UnderlyingType {
	t, err := ParseUnderlyingType(in)
	if err != nil {
		return invalidUnderlying
	}
	return t
}

func Build(raw *RawType) (*TypeDescriptor, error) {
	if raw == nil {
		return nil, &Diagnostic{Kind: InvalidName, Message: "type description can't be nil"}
	}
	td := TypeDescriptor{
		Name:    raw.Name,
		Members: make([]MemberDescriptor, 0, len(raw.Members)),
	}

	if strings.TrimSpace(raw.Repr) != "" {
		td.Underlying = parseSpelling(raw.Repr)
		td.reprName = raw.Repr
	}

	names := map[string]struct{}{}
	for _, rm := range raw.Members {
		if strings.TrimSpace(rm.Name) == "" {
			return nil, newDiagnostic(InvalidName, &td, "", "member #%d has no name", len(td.Members))
		}
		if _, conflict := names[rm.Name]; conflict {
			return nil, newDiagnostic(DuplicateName, &td, rm.Name, "name is already used by another member")
		}
		names[rm.Name] = struct{}{}

		member := MemberDescriptor{
			Name:       rm.Name,
			IsFallback: rm.Fallback,
		}

		if rm.Tag != nil {
			tag, err := parseTag(string(*rm.Tag))
			switch {
			case err == nil:
				member.DeclaredTag = tag
			case rm.Fallback:
				// the value doesn't matter, Validate rejects any tag here
				member.DeclaredTag = new(big.Int)
			default:
				return nil, newDiagnostic(InvalidTag, &td, rm.Name, "%v", err)
			}
		}

		for _, p := range rm.Payload {
			member.Payload = append(member.Payload, parseSpelling(p))
			member.payloadNames = append(member.payloadNames, p)
		}

		td.Members = append(td.Members, member)
	}
	return &td, nil
}
