package image

import (
	"errors"
	"fmt"
)

// SizeError is returned when image data does not contain the expected number
// of pixels, or when the image dimensions are not positive.
type SizeError struct {
	Rows, Cols int
	Pixels     int
}

func (e *SizeError) Error() string {
	if e.Rows <= 0 || e.Cols <= 0 {
		return fmt.Sprintf("invalid image dimensions %dx%d", e.Rows, e.Cols)
	}

	return fmt.Sprintf(
		"expected %d pixels for a %dx%d image, got %d",
		e.Rows*e.Cols,
		e.Rows,
		e.Cols,
		e.Pixels,
	)
}

// IsSizeError returns true if err is caused by [SizeError].
func IsSizeError(err error) bool {
	var target *SizeError
	return errors.As(err, &target)
}
