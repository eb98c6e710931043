package image

import (
	"os"
	"path/filepath"
)

// ImageFileName returns the name of the file that holds the stored image with
// the given identifier.
func ImageFileName(id string) string {
	return "image" + id + ".txt"
}

// QueryFileName returns the name of the file that holds the query image with
// the given identifier.
func QueryFileName(id string) string {
	return "query" + id + ".txt"
}

// ReadFile reads an image from the named file.
func ReadFile(name string, rows, cols int) (*Image, error) {
	f, err := os.Open(filepath.Clean(name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, rows, cols)
}
