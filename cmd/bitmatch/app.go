package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/dogmatiq/bitmatch/driver/memory/memoryset"
	"github.com/dogmatiq/bitmatch/hashset"
	"github.com/dogmatiq/bitmatch/image"
	"github.com/dogmatiq/bitmatch/matcher"
	"github.com/dogmatiq/bitmatch/rle"
	"github.com/dogmatiq/bitmatch/set"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"
)

// collectionPrefix is prepended to the collection name to form the name of the
// set that holds the stored images.
const collectionPrefix = "images."

func newApp() *cli.App {
	return &cli.App{
		Name:  "bitmatch",
		Usage: "Store binary images and find exact matches by run-length code",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "directory containing imageN.txt and queryN.txt files",
				Value:   ".",
				EnvVars: []string{"BITMATCH_DIR"},
			},
			&cli.IntFlag{
				Name:    "rows",
				Usage:   "number of rows in each image",
				Value:   image.DefaultRows,
				EnvVars: []string{"BITMATCH_ROWS"},
			},
			&cli.IntFlag{
				Name:    "cols",
				Usage:   "number of columns in each image",
				Value:   image.DefaultCols,
				EnvVars: []string{"BITMATCH_COLS"},
			},
			&cli.IntFlag{
				Name:    "capacity",
				Usage:   "initial capacity of the hash table, rounded up to a prime",
				Value:   30,
				EnvVars: []string{"BITMATCH_CAPACITY"},
			},
			&cli.StringFlag{
				Name:    "collection",
				Usage:   "name of the image collection",
				Value:   "default",
				EnvVars: []string{"BITMATCH_COLLECTION"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "report each image that is stored or looked up on stderr",
				EnvVars: []string{"BITMATCH_VERBOSE"},
			},
			&cli.StringFlag{
				Name:    "hash",
				Usage:   "hash function used by the hash table (fnv or length)",
				Value:   "fnv",
				EnvVars: []string{"BITMATCH_HASH"},
			},
		},
		DefaultCommand: "interactive",
		Commands: []*cli.Command{
			{
				Name:   "interactive",
				Usage:  "Insert and query images by number, reading numbers from stdin",
				Action: interactive,
			},
			{
				Name:      "match",
				Usage:     "Insert and query the given images and report the matches",
				ArgsUsage: " ",
				Action:    match,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "insert",
						Usage: "numbers of the images to insert",
					},
					&cli.StringSliceFlag{
						Name:  "query",
						Usage: "numbers of the query images to look up",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "output format (text, csv, json or proto)",
						Value: "text",
					},
					&cli.BoolFlag{
						Name:  "stats",
						Usage: "print hash table statistics after matching",
					},
				},
			},
		},
	}
}

// session is the state shared by the commands.
type session struct {
	Matcher    *matcher.Matcher
	Codes      *memoryset.BinaryStore
	Collection string
	images     set.Set[string]
}

func openSession(c *cli.Context) (*session, error) {
	hash, err := hashFunc(c.String("hash"))
	if err != nil {
		return nil, err
	}

	rows, cols := c.Int("rows"), c.Int("cols")
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d, rows and columns must be positive", rows, cols)
	}

	collection := c.String("collection")
	if collection == "" {
		return nil, errors.New("collection name must not be empty")
	}

	codes := &memoryset.BinaryStore{
		InitialCapacity: c.Int("capacity"),
		Hash:            hash,
	}

	var in set.Interceptor[string]
	if c.Bool("verbose") {
		report(&in, c.App.ErrWriter)
	}

	store := set.WithInterceptor(
		set.WithNamePrefix(
			set.NewMarshalingStore(
				set.WithTelemetry(
					codes,
					otel.GetTracerProvider(),
					otel.GetMeterProvider(),
					global.GetLoggerProvider(),
				),
				rle.Marshaler,
			),
			collectionPrefix,
		),
		&in,
	)

	images, err := store.Open(c.Context, collection)
	if err != nil {
		return nil, err
	}

	return &session{
		Matcher: &matcher.Matcher{
			Images: images,
			Dir:    c.String("dir"),
			Rows:   rows,
			Cols:   cols,
		},
		Codes:      codes,
		Collection: collection,
		images:     images,
	}, nil
}

// report installs interceptor functions that write a line to w for each image
// that is stored in or looked up from a collection.
func report(in *set.Interceptor[string], w io.Writer) {
	in.AfterAdd(func(collection, bits string) error {
		code, err := rle.Encode(bits)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(w, "%s: stored %s\n", collection, code)
		return err
	})

	in.AfterFind(func(collection, bits string, found bool) error {
		code, err := rle.Encode(bits)
		if err != nil {
			return err
		}

		outcome := "miss"
		if found {
			outcome = "hit"
		}

		_, err = fmt.Fprintf(w, "%s: lookup %s %s\n", collection, code, outcome)
		return err
	})
}

func (s *session) Close() error {
	return s.images.Close()
}

// Stats returns the occupancy of the hash table that holds the stored images.
func (s *session) Stats() hashset.Stats {
	stats, _ := s.Codes.Stats(collectionPrefix + s.Collection)
	return stats
}

func hashFunc(name string) (hashset.HashFunc, error) {
	switch name {
	case "fnv":
		return hashset.FNVHash, nil
	case "length":
		return hashset.LengthHash, nil
	default:
		return nil, fmt.Errorf("unrecognized hash function %q, expected fnv or length", name)
	}
}
