// Package matcher stores binary images by their run-length code and finds
// stored images that exactly match a query image.
package matcher

import (
	"context"
	"path/filepath"

	"github.com/dogmatiq/bitmatch/image"
	"github.com/dogmatiq/bitmatch/internal/errorx"
	"github.com/dogmatiq/bitmatch/rle"
	"github.com/dogmatiq/bitmatch/set"
	"github.com/hashicorp/go-multierror"
)

// Matcher loads image files from a directory and matches them against a set
// of stored images.
type Matcher struct {
	// Images is the set of stored images. Each member is a flattened bitmap,
	// typically stored as its run-length code by way of
	// [set.NewMarshalingStore] and [rle.Marshaler].
	Images set.Set[string]

	// Dir is the directory that contains the image and query files.
	Dir string

	// Rows and Cols are the dimensions of every image. If either is zero,
	// [image.DefaultRows] and [image.DefaultCols] are used.
	Rows, Cols int
}

// Insertion describes an image that was added to the set.
type Insertion struct {
	ID   string
	File string
	Code string

	// Added is false if an identical image was already stored.
	Added bool
}

// Result is the outcome of a query.
type Result struct {
	ID   string
	File string
	Code string

	// Match is the stored image that matched the query, or nil if there was
	// no match.
	Match *image.Image
}

// Found returns true if the query matched a stored image.
func (r Result) Found() bool {
	return r.Match != nil
}

// Insert loads the image with the given identifier and adds it to the set.
func (m *Matcher) Insert(ctx context.Context, id string) (ins Insertion, err error) {
	defer errorx.Wrap(&err, "unable to insert image %q", id)

	ins.ID = id
	ins.File = image.ImageFileName(id)

	bits, code, err := m.load(ins.File)
	if err != nil {
		return ins, err
	}

	ins.Code = code
	ins.Added, err = m.Images.TryAdd(ctx, bits)
	if err != nil {
		return ins, err
	}

	return ins, nil
}

// InsertAll inserts each of the images with the given identifiers.
//
// It continues past images that cannot be inserted and returns all of the
// errors that occurred.
func (m *Matcher) InsertAll(ctx context.Context, ids []string) ([]Insertion, error) {
	var (
		result []Insertion
		errs   *multierror.Error
	)

	for _, id := range ids {
		ins, err := m.Insert(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return result, err
			}

			errs = multierror.Append(errs, err)
			continue
		}

		result = append(result, ins)
	}

	return result, errs.ErrorOrNil()
}

// Query loads the query image with the given identifier and looks for an
// identical stored image.
//
// A query that does not match any stored image is not an error.
func (m *Matcher) Query(ctx context.Context, id string) (res Result, err error) {
	defer errorx.Wrap(&err, "unable to query image %q", id)

	res.ID = id
	res.File = image.QueryFileName(id)

	bits, code, err := m.load(res.File)
	if err != nil {
		return res, err
	}

	res.Code = code

	match, ok, err := m.Images.Find(ctx, bits)
	if !ok || err != nil {
		return res, err
	}

	rows, cols := m.dimensions()
	res.Match, err = image.FromBits(match, rows, cols)
	if err != nil {
		return res, err
	}

	return res, nil
}

// Remove loads the image with the given identifier and removes it from the
// set. It returns false if the image was not stored.
func (m *Matcher) Remove(ctx context.Context, id string) (_ bool, err error) {
	defer errorx.Wrap(&err, "unable to remove image %q", id)

	bits, _, err := m.load(image.ImageFileName(id))
	if err != nil {
		return false, err
	}

	return m.Images.TryRemove(ctx, bits)
}

// load reads the named file and returns its flattened bitmap and run-length
// code.
func (m *Matcher) load(name string) (bits, code string, err error) {
	defer func() {
		if err != nil {
			err = &InputError{name, err}
		}
	}()

	rows, cols := m.dimensions()

	img, err := image.ReadFile(filepath.Join(m.Dir, name), rows, cols)
	if err != nil {
		return "", "", err
	}

	bits = img.Bits()

	code, err = rle.Encode(bits)
	if err != nil {
		return "", "", err
	}

	return bits, code, nil
}

func (m *Matcher) dimensions() (rows, cols int) {
	if m.Rows == 0 || m.Cols == 0 {
		return image.DefaultRows, image.DefaultCols
	}
	return m.Rows, m.Cols
}
