package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// match inserts and queries the images named by the command's flags.
//
// Images that cannot be loaded are reported, but do not prevent the remaining
// images from being processed.
func match(c *cli.Context) error {
	format := c.String("format")
	write, ok := reportWriters[format]
	if format != "text" && !ok {
		return fmt.Errorf("unrecognized format %q, expected text, csv, json or proto", format)
	}

	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	out := c.App.Writer

	inserted, err := s.Matcher.InsertAll(c.Context, c.StringSlice("insert"))
	if err != nil {
		fmt.Fprintf(c.App.ErrWriter, "error: %s\n", err)
	}

	if format == "text" {
		for _, ins := range inserted {
			if ins.Added {
				fmt.Fprintf(out, "inserted %s as %s\n", ins.File, ins.Code)
			} else {
				fmt.Fprintf(out, "%s is already stored as %s\n", ins.File, ins.Code)
			}
		}
	}

	var rows []reportRow

	for _, id := range c.StringSlice("query") {
		res, err := s.Matcher.Query(c.Context, id)
		if err != nil {
			fmt.Fprintf(c.App.ErrWriter, "error: %s\n", err)
			continue
		}

		rows = append(rows, reportRow{
			Query: res.ID,
			File:  res.File,
			Match: res.Found(),
			Code:  res.Code,
		})

		if format != "text" {
			continue
		}

		if res.Found() {
			fmt.Fprintf(out, "%s matches:\n", res.File)
			if err := res.Match.Render(out); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "%s has no match (%s)\n", res.File, res.Code)
		}
	}

	if write != nil {
		if err := write(out, rows); err != nil {
			return err
		}
	}

	if c.Bool("stats") {
		st := s.Stats()
		fmt.Fprintf(
			c.App.ErrWriter,
			"hash table: %d members, %d tombstones, capacity %d, load %.2f, %d rehashes, %d compactions\n",
			st.Live,
			st.Tombstones,
			st.Capacity,
			st.LoadFactor(),
			st.Rehashes,
			st.Compactions,
		)
	}

	return nil
}
