package bitmg

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SuiteEntry is one line of a perft suite: a position and the node counts
// expected at some depths.
type SuiteEntry struct {
	FEN      string
	Expected map[int]uint64
	Line     int
}

// MaxDepth returns the deepest depth with a known count.
func (e SuiteEntry) MaxDepth() int {
	deepest := 0
	for d := range e.Expected {
		if d > deepest {
			deepest = d
		}
	}
	return deepest
}

// ParseEPDSuite reads lines of the form
//
//	<fen> ;D1 20 ;D2 400 ;D3 8902
//
// Blank lines and lines starting with '#' are skipped.
func ParseEPDSuite(r io.Reader) ([]SuiteEntry, error) {
	var entries []SuiteEntry
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Split(text, ";")
		entry := SuiteEntry{FEN: strings.TrimSpace(parts[0]), Expected: make(map[int]uint64), Line: n}
		if _, err := ParseFEN(entry.FEN); err != nil {
			return nil, fmt.Errorf("suite line %d: %w", n, err)
		}
		for _, op := range parts[1:] {
			f := strings.Fields(op)
			if len(f) != 2 || len(f[0]) < 2 || f[0][0] != 'D' {
				return nil, fmt.Errorf("suite line %d: bad depth field %q", n, strings.TrimSpace(op))
			}
			depth, err := strconv.Atoi(f[0][1:])
			if err != nil || depth < 1 {
				return nil, fmt.Errorf("suite line %d: bad depth %q", n, f[0])
			}
			nodes, err := strconv.ParseUint(f[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("suite line %d: bad node count %q", n, f[1])
			}
			entry.Expected[depth] = nodes
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
