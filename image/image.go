// Package image reads and renders the fixed-size binary images whose
// run-length codes are stored by bitmatch.
package image

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	bitmap "github.com/boljen/go-bitmap"
)

const (
	// DefaultRows is the number of rows in a standard image.
	DefaultRows = 28

	// DefaultCols is the number of columns in a standard image.
	DefaultCols = 28
)

// Image is a grid of binary pixels.
type Image struct {
	rows, cols int
	pixels     bitmap.Bitmap
}

// New returns a blank image with the given dimensions.
func New(rows, cols int) *Image {
	if rows <= 0 || cols <= 0 {
		panic("image dimensions must be positive")
	}

	return &Image{
		rows:   rows,
		cols:   cols,
		pixels: bitmap.New(rows * cols),
	}
}

// Read reads an image from r.
//
// Every byte other than '0' and '1' is ignored, so images may be laid out
// with arbitrary whitespace. It returns a [*SizeError] if r does not contain
// exactly rows*cols pixels, or if either dimension is not positive.
func Read(r io.Reader, rows, cols int) (*Image, error) {
	if rows <= 0 || cols <= 0 {
		return nil, &SizeError{rows, cols, 0}
	}

	img := New(rows, cols)
	want := rows * cols
	n := 0

	br := bufio.NewReader(r)

	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if c != '0' && c != '1' {
			continue
		}

		if n < want {
			img.pixels.Set(n, c == '1')
		}
		n++
	}

	if n != want {
		return nil, &SizeError{rows, cols, n}
	}

	return img, nil
}

// FromBits returns an image from a flattened string of '0' and '1' pixels in
// row-major order.
func FromBits(bits string, rows, cols int) (*Image, error) {
	if rows <= 0 || cols <= 0 || len(bits) != rows*cols {
		return nil, &SizeError{rows, cols, len(bits)}
	}

	img := New(rows, cols)

	for i := range len(bits) {
		switch bits[i] {
		case '1':
			img.pixels.Set(i, true)
		case '0':
		default:
			return nil, fmt.Errorf("pixel %d is %q, expected '0' or '1'", i, bits[i])
		}
	}

	return img, nil
}

// Rows returns the number of rows in the image.
func (img *Image) Rows() int {
	return img.rows
}

// Cols returns the number of columns in the image.
func (img *Image) Cols() int {
	return img.cols
}

// At returns true if the pixel at the given row and column is set.
func (img *Image) At(row, col int) bool {
	return img.pixels.Get(img.index(row, col))
}

// Set sets the pixel at the given row and column.
func (img *Image) Set(row, col int, v bool) {
	img.pixels.Set(img.index(row, col), v)
}

// Bits returns the image's pixels as a flattened string of '0' and '1' in
// row-major order.
func (img *Image) Bits() string {
	var b strings.Builder
	b.Grow(img.rows * img.cols)

	for i := range img.rows * img.cols {
		if img.pixels.Get(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}

	return b.String()
}

// Render writes the image to w, one row per line.
func (img *Image) Render(w io.Writer) error {
	bits := img.Bits()

	for r := range img.rows {
		line := bits[r*img.cols : (r+1)*img.cols]
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}

	return nil
}

func (img *Image) String() string {
	var b strings.Builder
	_ = img.Render(&b)
	return b.String()
}

func (img *Image) index(row, col int) int {
	if row < 0 || row >= img.rows || col < 0 || col >= img.cols {
		panic(fmt.Sprintf("pixel (%d, %d) is outside of %dx%d image", row, col, img.rows, img.cols))
	}
	return row*img.cols + col
}
