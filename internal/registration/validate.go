package registration

// Validator applies RuleTable with messages from one Catalog.
// It holds no mutable state, so Validate is a pure function of its input.
type Validator struct {
	catalog Catalog
}

// NewValidator returns a Validator reporting messages from c. A nil catalog
// selects the default locale.
func NewValidator(c Catalog) Validator {
	if c == nil {
		c = DefaultCatalog()
	}
	return Validator{catalog: c}
}

// Validate checks every field independently and returns all failures.
func (v Validator) Validate(values Values) Errors {
	errs := Errors{}
	for _, fr := range RuleTable {
		if fe, failed := v.check(fr, values); failed {
			errs[fr.Field] = fe
		}
	}
	return errs
}

// ValidateField checks a single field against the full record.
func (v Validator) ValidateField(f Field, values Values) (FieldError, bool) {
	for _, fr := range RuleTable {
		if fr.Field == f {
			return v.check(fr, values)
		}
	}
	return FieldError{}, false
}

func (v Validator) check(fr FieldRules, values Values) (FieldError, bool) {
	value := values.Get(fr.Field)
	for _, r := range fr.Rules {
		if !r.Check(value, values) {
			return FieldError{
				Field:   fr.Field,
				Key:     r.Message,
				Message: v.catalog.Text(r.Message),
			}, true
		}
	}
	return FieldError{}, false
}

// Validate checks values with the default locale's messages.
func Validate(values Values) Errors {
	return NewValidator(nil).Validate(values)
}
