// Package registration holds the registration form's domain: the five field
// values, the declarative rule table that validates them, and the Controller
// that owns the Editing / SuccessDisplayed lifecycle.
package registration

// Field identifies one input slot of the registration form.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldPhone
	FieldPassword
	FieldConfirmPassword
)

// Fields lists every field in display order.
var Fields = []Field{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldPassword,
	FieldConfirmPassword,
}

var fieldKeys = map[Field]string{
	FieldName:            "name",
	FieldEmail:           "email",
	FieldPhone:           "phone",
	FieldPassword:        "password",
	FieldConfirmPassword: "confirmPassword",
}

// Key returns the field's stable identifier, used in logs and output.
func (f Field) Key() string {
	if k, ok := fieldKeys[f]; ok {
		return k
	}
	return "unknown"
}

func (f Field) String() string { return f.Key() }

// Secret reports whether the field holds a password and must be masked.
func (f Field) Secret() bool {
	return f == FieldPassword || f == FieldConfirmPassword
}

// ParseField looks a field up by its Key.
func ParseField(key string) (Field, bool) {
	for f, k := range fieldKeys {
		if k == key {
			return f, true
		}
	}
	return 0, false
}

// Values is the record collected by the form. The zero value is an empty form.
type Values struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Get returns the value of f.
func (v Values) Get(f Field) string {
	switch f {
	case FieldName:
		return v.Name
	case FieldEmail:
		return v.Email
	case FieldPhone:
		return v.Phone
	case FieldPassword:
		return v.Password
	case FieldConfirmPassword:
		return v.ConfirmPassword
	}
	return ""
}

// Set stores value in f. Unknown fields are ignored.
func (v *Values) Set(f Field, value string) {
	switch f {
	case FieldName:
		v.Name = value
	case FieldEmail:
		v.Email = value
	case FieldPhone:
		v.Phone = value
	case FieldPassword:
		v.Password = value
	case FieldConfirmPassword:
		v.ConfirmPassword = value
	}
}

// IsZero reports whether every field is empty.
func (v Values) IsZero() bool {
	return v == Values{}
}

// Masked returns a copy with non-empty secret fields replaced by asterisks.
func (v Values) Masked() Values {
	out := v
	for _, f := range Fields {
		if f.Secret() && v.Get(f) != "" {
			out.Set(f, maskedSecret)
		}
	}
	return out
}

const maskedSecret = "******"

// Map returns the values keyed by Field.Key, in a form suitable for
// structured output.
func (v Values) Map() map[string]string {
	m := make(map[string]string, len(Fields))
	for _, f := range Fields {
		m[f.Key()] = v.Get(f)
	}
	return m
}
