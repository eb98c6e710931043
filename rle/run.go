package rle

import (
	"iter"
	"strconv"
	"strings"
)

// MaxBits is the largest bitmap that a run-length code may describe.
const MaxBits = 1 << 24

// Run is a single (count, symbol) pair within a run-length code.
type Run struct {
	Symbol byte
	Count  int
}

// Bit returns the bit character repeated by the run.
func (r Run) Bit() byte {
	if r.Symbol == White {
		return '1'
	}
	return '0'
}

// Bits returns the bitmap fragment described by the run.
func (r Run) Bits() string {
	return strings.Repeat(string(r.Bit()), r.Count)
}

func (r Run) String() string {
	return strconv.Itoa(r.Count) + string(r.Symbol)
}

// Runs returns an iterator over the runs in code.
//
// If code is malformed, or describes more than [MaxBits] bits, the iterator
// yields a [*MalformedCodeError] and stops.
func Runs(code string) iter.Seq2[Run, error] {
	return func(yield func(Run, error) bool) {
		i, total := 0, 0

		for i < len(code) {
			start := i
			for i < len(code) && isDigit(code[i]) {
				i++
			}

			if i == start {
				yield(Run{}, malformed(code, start, "expected a run length"))
				return
			}

			if i == len(code) {
				yield(Run{}, malformed(code, i, "expected a run symbol"))
				return
			}

			count, err := strconv.Atoi(code[start:i])
			if err != nil || count > MaxBits-total {
				yield(Run{}, malformed(code, start, "run length is out of range"))
				return
			}
			total += count

			symbol := code[i]
			if symbol != White && symbol != Black {
				yield(Run{}, malformed(code, i, "unrecognized run symbol "+strconv.QuoteRune(rune(symbol))))
				return
			}

			i++

			if !yield(Run{symbol, count}, nil) {
				return
			}
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
