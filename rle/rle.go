// Package rle converts bitmaps to and from a compact run-length code.
//
// A bitmap is a string of '0' and '1' characters. Its code is a sequence of
// runs, each written as a decimal count followed by a symbol: 'W' for a run of
// '1' and 'B' for a run of '0'. For example, "1110001111" is encoded as
// "3W3B4W".
package rle

import (
	"strconv"
	"strings"
)

const (
	// White is the symbol for a run of '1' bits.
	White = 'W'

	// Black is the symbol for a run of '0' bits.
	Black = 'B'
)

// Encode returns the run-length code for bits.
//
// bits must be non-empty and consist only of '0' and '1'.
func Encode(bits string) (string, error) {
	if len(bits) == 0 {
		return "", ErrEmptyInput
	}

	var (
		code  []byte
		count = 1
	)

	current, err := symbolOf(bits, 0)
	if err != nil {
		return "", err
	}

	for i := 1; i < len(bits); i++ {
		s, err := symbolOf(bits, i)
		if err != nil {
			return "", err
		}

		if s == current {
			count++
			continue
		}

		code = appendRun(code, current, count)
		current = s
		count = 1
	}

	code = appendRun(code, current, count)

	return string(code), nil
}

// Decode returns the bitmap described by a run-length code.
//
// It returns a [*MalformedCodeError] if code is not a sequence of
// (count, symbol) pairs.
func Decode(code string) (string, error) {
	var bits strings.Builder

	for r, err := range Runs(code) {
		if err != nil {
			return "", err
		}

		bits.WriteString(r.Bits())
	}

	return bits.String(), nil
}

func symbolOf(bits string, i int) (byte, error) {
	switch bits[i] {
	case '1':
		return White, nil
	case '0':
		return Black, nil
	default:
		return 0, &InvalidBitError{
			Offset: i,
			Char:   bits[i],
		}
	}
}

func appendRun(code []byte, symbol byte, count int) []byte {
	code = strconv.AppendInt(code, int64(count), 10)
	return append(code, symbol)
}
