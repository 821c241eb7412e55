package opt

import "errors"

// MissingFieldError is returned by a generated Build when a mandatory
// field has no value.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " has no value."
}

// Missing returns a MissingFieldError for field.
func Missing(field string) error {
	return &MissingFieldError{Field: field}
}

// MissingField reports the field named by a MissingFieldError in err's chain.
func MissingField(err error) (string, bool) {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return missing.Field, true
	}
	return "", false
}
