package rle_test

import (
	"errors"
	"strings"
	"testing"

	. "github.com/dogmatiq/bitmatch/rle"
	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		Name string
		Bits string
		Want string
	}{
		{"alternating runs", "1110001111", "3W3B4W"},
		{"single one", "1", "1W"},
		{"single zero", "0", "1B"},
		{"alternating bits", "0101", "1B1W1B1W"},
		{"multi-digit run", strings.Repeat("0", 784), "784B"},
		{"multi-digit runs", strings.Repeat("1", 12) + strings.Repeat("0", 100), "12W100B"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			t.Parallel()

			got, err := Encode(c.Bits)
			if err != nil {
				t.Fatal(err)
			}

			if got != c.Want {
				t.Fatalf("unexpected code: got %q, want %q", got, c.Want)
			}
		})
	}

	t.Run("it rejects an empty bitmap", func(t *testing.T) {
		t.Parallel()

		_, err := Encode("")
		if !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("unexpected error: got %v, want %v", err, ErrEmptyInput)
		}
	})

	t.Run("it rejects characters other than 0 and 1", func(t *testing.T) {
		t.Parallel()

		_, err := Encode("0012")

		var got *InvalidBitError
		if !errors.As(err, &got) {
			t.Fatalf("unexpected error: got %v, want *InvalidBitError", err)
		}

		want := &InvalidBitError{Offset: 3, Char: '2'}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("it produces the same code for bitmaps with the same run structure", func(t *testing.T) {
		t.Parallel()

		a, err := Encode("110")
		if err != nil {
			t.Fatal(err)
		}

		b, err := Encode("110")
		if err != nil {
			t.Fatal(err)
		}

		c, err := Encode("100")
		if err != nil {
			t.Fatal(err)
		}

		if a != b {
			t.Fatalf("expected identical codes, got %q and %q", a, b)
		}

		if a == c {
			t.Fatalf("expected distinct codes, both were %q", a)
		}
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		Name string
		Code string
		Want string
	}{
		{"alternating runs", "3W3B4W", "1110001111"},
		{"multi-digit run", "784B", strings.Repeat("0", 784)},
		{"zero-length run", "0W2B", "00"},
		{"leading zeros", "003W", "111"},
		{"adjacent runs of the same symbol", "2W2W", "1111"},
		{"empty code", "", ""},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(c.Code)
			if err != nil {
				t.Fatal(err)
			}

			if got != c.Want {
				t.Fatalf("unexpected bitmap: got %q, want %q", got, c.Want)
			}
		})
	}

	t.Run("it rejects malformed codes", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			Name   string
			Code   string
			Offset int
		}{
			{"unknown symbol", "5X", 1},
			{"lowercase symbol", "3w", 1},
			{"missing count", "W", 0},
			{"missing count after a valid run", "3W3BB", 4},
			{"missing symbol", "3W3", 3},
			{"count out of range", "99999999999999999999W", 0},
			{"count larger than the maximum bitmap", "9223372036854775807W", 0},
			{"total larger than the maximum bitmap", "16777216W1B", 9},
			{"negative count", "-1W", 0},
			{"whitespace", "3W 3B", 2},
		}

		for _, c := range cases {
			t.Run(c.Name, func(t *testing.T) {
				t.Parallel()

				_, err := Decode(c.Code)
				if !IsMalformedCode(err) {
					t.Fatalf("unexpected error: got %v, want *MalformedCodeError", err)
				}

				var e *MalformedCodeError
				errors.As(err, &e)

				if e.Code != c.Code {
					t.Fatalf("unexpected code in error: got %q, want %q", e.Code, c.Code)
				}

				if e.Offset != c.Offset {
					t.Fatalf("unexpected offset in error: got %d, want %d", e.Offset, c.Offset)
				}
			})
		}
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("it restores every bitmap", func(t *testing.T) {
		t.Parallel()

		rapid.Check(t, func(t *rapid.T) {
			bits := rapid.StringMatching(`[01]{1,512}[01]{0,512}`).Draw(t, "bits")

			code, err := Encode(bits)
			if err != nil {
				t.Fatal(err)
			}

			got, err := Decode(code)
			if err != nil {
				t.Fatal(err)
			}

			if got != bits {
				t.Fatalf("round-trip mismatch for code %q: got %q, want %q", code, got, bits)
			}
		})
	})

	t.Run("it restores every bitmap of up to 12 bits", func(t *testing.T) {
		t.Parallel()

		for n := 1; n <= 12; n++ {
			for v := range 1 << n {
				var b strings.Builder
				for i := n - 1; i >= 0; i-- {
					if v&(1<<i) != 0 {
						b.WriteByte('1')
					} else {
						b.WriteByte('0')
					}
				}

				bits := b.String()

				code, err := Encode(bits)
				if err != nil {
					t.Fatal(err)
				}

				got, err := Decode(code)
				if err != nil {
					t.Fatal(err)
				}

				if got != bits {
					t.Fatalf("round-trip mismatch for code %q: got %q, want %q", code, got, bits)
				}
			}
		}
	})

	t.Run("it produces codes that re-encode to themselves", func(t *testing.T) {
		t.Parallel()

		rapid.Check(t, func(t *rapid.T) {
			bits := rapid.StringMatching(`[01]{1,256}`).Draw(t, "bits")

			code, err := Encode(bits)
			if err != nil {
				t.Fatal(err)
			}

			decoded, err := Decode(code)
			if err != nil {
				t.Fatal(err)
			}

			again, err := Encode(decoded)
			if err != nil {
				t.Fatal(err)
			}

			if again != code {
				t.Fatalf("unexpected code: got %q, want %q", again, code)
			}
		})
	})
}

func TestRuns(t *testing.T) {
	t.Parallel()

	var got []Run
	for r, err := range Runs("3W12B1W") {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, r)
	}

	want := []Run{
		{Symbol: White, Count: 3},
		{Symbol: Black, Count: 12},
		{Symbol: White, Count: 1},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}

	t.Run("it stops when the caller stops", func(t *testing.T) {
		t.Parallel()

		n := 0
		for range Runs("1W1B1W1B") {
			n++
			if n == 2 {
				break
			}
		}

		if n != 2 {
			t.Fatalf("unexpected number of runs: got %d, want 2", n)
		}
	})
}

func TestMarshaler(t *testing.T) {
	t.Parallel()

	data, err := Marshaler.Marshal("1110001111")
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "3W3B4W"; got != want {
		t.Fatalf("unexpected marshaled data: got %q, want %q", got, want)
	}

	bits, err := Marshaler.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := bits, "1110001111"; got != want {
		t.Fatalf("unexpected unmarshaled bitmap: got %q, want %q", got, want)
	}

	if _, err := Marshaler.Unmarshal([]byte("5X")); !IsMalformedCode(err) {
		t.Fatalf("unexpected error: got %v, want *MalformedCodeError", err)
	}
}
