package registration

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEditing is returned when input arrives while the success card is shown.
	ErrNotEditing = errors.New("registration: form is not in editing mode")
	// ErrClosed is returned after the controller has been torn down.
	ErrClosed = errors.New("registration: controller closed")
)

// FieldError reports one failing field.
type FieldError struct {
	Field   Field
	Key     MessageKey
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field.Key(), e.Message)
}

// Errors maps each failing field to its error. Passing fields are absent,
// so an empty (or nil) Errors means the record is valid.
type Errors map[Field]FieldError

// Has reports whether f is failing.
func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Message returns f's error message, or "".
func (e Errors) Message(f Field) string {
	return e[f].Message
}

// Fields returns the failing fields in display order.
func (e Errors) Fields() []Field {
	var out []Field
	for _, f := range Fields {
		if e.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// AsError joins the field errors in display order, or returns nil.
func (e Errors) AsError() error {
	if len(e) == 0 {
		return nil
	}
	errs := make([]error, 0, len(e))
	for _, f := range e.Fields() {
		errs = append(errs, e[f])
	}
	return errors.Join(errs...)
}

// clone returns an independent copy.
func (e Errors) clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
