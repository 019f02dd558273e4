package unitenum

// Validate checks the shape of td, independent of any numeric value.
// Checks run in a fixed order and only the first violation is reported:
// fallback cardinality, payload arity, fallback tag, underlying type
// presence, payload type, name uniqueness.
func Validate(td *TypeDescriptor) error {
	if td == nil {
		return &Diagnostic{Kind: InvalidName, Message: "type descriptor can't be nil"}
	}

	var fallback *MemberDescriptor
	for i := range td.Members {
		m := &td.Members[i]
		if !m.IsFallback {
			continue
		}
		if fallback != nil {
			return newDiagnostic(FallbackCardinality, td, m.Name,
				"only one fallback member is allowed, %s is already the fallback", fallback.Name)
		}
		fallback = m
	}

	for i := range td.Members {
		m := &td.Members[i]
		if m.IsFallback {
			if m.PayloadArity() != 1 {
				return newDiagnostic(PayloadArity, td, m.Name,
					"the fallback member must carry exactly one field, got %d", m.PayloadArity())
			}
			continue
		}
		if m.PayloadArity() != 0 {
			return newDiagnostic(PayloadArity, td, m.Name,
				"only the fallback member can carry a payload, got %d field(s)", m.PayloadArity())
		}
	}

	if fallback != nil && fallback.DeclaredTag != nil {
		return newDiagnostic(FallbackTagged, td, fallback.Name,
			"the fallback member can't have an explicit tag, it captures all unclaimed discriminants")
	}

	if fallback != nil {
		if td.Underlying == Unspecified {
			return newDiagnostic(UnderlyingTypeRequired, td, fallback.Name,
				"a type with a fallback member must declare its underlying integer type")
		}
		if !td.Underlying.IsValid() {
			return newDiagnostic(InvalidUnderlyingType, td, "", "%s is not a recognized integer type", td.underlyingName())
		}
		if !fallback.Payload[0].IsValid() {
			return newDiagnostic(PayloadTypeMismatch, td, fallback.Name,
				"payload type %q is not a recognized integer type", fallback.payloadName(0))
		}
		if fallback.Payload[0] != td.Underlying {
			return newDiagnostic(PayloadTypeMismatch, td, fallback.Name,
				"payload is %s, but the underlying type is %s", fallback.Payload[0], td.Underlying)
		}
	} else if td.Underlying != Unspecified && !td.Underlying.IsValid() {
		return newDiagnostic(InvalidUnderlyingType, td, "", "%s is not a recognized integer type", td.underlyingName())
	}

	names := map[string]struct{}{}
	for i := range td.Members {
		m := &td.Members[i]
		if m.Name == "" {
			return newDiagnostic(InvalidName, td, "", "member #%d has no name", i)
		}
		if _, conflict := names[m.Name]; conflict {
			return newDiagnostic(DuplicateName, td, m.Name, "name is already used by another member")
		}
		names[m.Name] = struct{}{}
	}
	return nil
}
