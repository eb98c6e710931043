package matcher

import (
	"errors"
	"fmt"
)

// InputError is returned when an image file is missing or does not contain a
// valid image.
type InputError struct {
	File  string
	Cause error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input in %s: %s", e.File, e.Cause)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// IsInputError returns true if err is caused by [InputError].
func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}
