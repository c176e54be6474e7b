package domain

import (
	"errors"
	"fmt"
)

// ErrIncompleteConfiguration is returned by the report builders when Build
// is called before every mandatory field has been set.
var ErrIncompleteConfiguration = errors.New("report configuration is incomplete")

// ValidationError describes a single reporting item or period field that
// failed structural validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
