package rle

import "github.com/dogmatiq/bitmatch/marshaler"

// Marshaler marshals a bitmap to its run-length code, and unmarshals a code
// back to the bitmap it describes.
var Marshaler = marshaler.New(
	func(bits string) ([]byte, error) {
		code, err := Encode(bits)
		return []byte(code), err
	},
	func(code []byte) (string, error) {
		return Decode(string(code))
	},
)
