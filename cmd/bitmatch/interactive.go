package main

import (
	"bufio"
	"fmt"

	"github.com/urfave/cli/v2"
)

const (
	insertPrompt = "Enter image number to insert into the hash table (or 'query' to continue): "
	queryPrompt  = "Enter image number to query (or 'exit' to quit): "
)

// interactive reads image numbers to insert until it reads "query", then
// reads query numbers until it reads "exit" or the input ends.
func interactive(c *cli.Context) error {
	s, err := openSession(c)
	if err != nil {
		return err
	}
	defer s.Close()

	in := bufio.NewScanner(c.App.Reader)
	in.Split(bufio.ScanWords)

	out := c.App.Writer

	for {
		fmt.Fprintln(out, insertPrompt)

		if !in.Scan() || in.Text() == "query" {
			break
		}

		id := in.Text()
		if _, err := s.Matcher.Insert(c.Context, id); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "error: %s\n", err)
			continue
		}

		fmt.Fprintf(out, "Image %s inserted into the hash table.\n", id)
	}

	for {
		fmt.Fprintln(out, queryPrompt)

		if !in.Scan() || in.Text() == "exit" {
			break
		}

		res, err := s.Matcher.Query(c.Context, in.Text())
		if err != nil {
			fmt.Fprintf(c.App.ErrWriter, "error: %s\n", err)
			continue
		}

		if !res.Found() {
			fmt.Fprintf(out, "No match for the image with encoding: %s\n", res.Code)
			continue
		}

		fmt.Fprintf(out, "RLE String for %s found in hash table.\n", res.File)

		if err := res.Match.Render(out); err != nil {
			return err
		}
	}

	if err := in.Err(); err != nil {
		return err
	}

	fmt.Fprintln(out, "Exiting the program!")

	return nil
}
