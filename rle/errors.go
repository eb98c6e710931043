package rle

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrEmptyInput is returned by [Encode] when the bitmap is empty.
var ErrEmptyInput = errors.New("cannot encode an empty bitmap")

// IsMalformedCode returns true if err is caused by [MalformedCodeError].
func IsMalformedCode(err error) bool {
	var target *MalformedCodeError
	return errors.As(err, &target)
}

// MalformedCodeError is returned by [Decode] when a code is not a sequence of
// (count, symbol) pairs.
type MalformedCodeError struct {
	// Code is the code that could not be decoded.
	Code string

	// Offset is the byte offset within Code at which the problem was found.
	Offset int

	// Reason describes the problem.
	Reason string
}

func (e *MalformedCodeError) Error() string {
	return fmt.Sprintf(
		"malformed run-length code %s at offset %d: %s",
		strconv.Quote(e.Code),
		e.Offset,
		e.Reason,
	)
}

func malformed(code string, offset int, reason string) *MalformedCodeError {
	return &MalformedCodeError{code, offset, reason}
}

// InvalidBitError is returned by [Encode] when a bitmap contains a character
// other than '0' or '1'.
type InvalidBitError struct {
	Offset int
	Char   byte
}

func (e *InvalidBitError) Error() string {
	return fmt.Sprintf(
		"bitmap contains %s at offset %d, expected '0' or '1'",
		strconv.QuoteRune(rune(e.Char)),
		e.Offset,
	)
}
