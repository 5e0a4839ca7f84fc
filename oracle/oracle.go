// Package oracle cross-checks bitmg against an independent move generator.
package oracle

import (
	"errors"
	"fmt"
	"strings"

	"chess-movegen/bitmg"

	"github.com/apex/log"
	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrDepth = errors.New("oracle: depth must be at least 1")

// Divide counts leaves under each root move using dragontoothmg. Keys are
// UCI move strings.
func Divide(fen string, depth int) (map[string]uint64, error) {
	if depth < 1 {
		return nil, ErrDepth
	}
	// Normalise through bitmg so the reference parser always sees six fields.
	p, err := bitmg.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	b := dragontoothmg.ParseFen(p.FEN())
	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		mv := m
		undo := b.Apply(mv)
		out[strings.ToLower(mv.String())] += refPerft(&b, depth-1)
		undo()
	}
	return out, nil
}

func refPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, m := range moves {
		undo := b.Apply(m)
		n += refPerft(b, depth-1)
		undo()
	}
	return n
}

// DivideStrings runs bitmg.Divide and keys the result by UCI text.
func DivideStrings(p *bitmg.Position, depth int) (map[string]uint64, error) {
	counts, err := bitmg.Divide(p, depth)
	if err != nil {
		return nil, err
	}
	out := make(map[string]uint64, len(counts))
	for m, n := range counts {
		out[m.String()] = n
	}
	return out, nil
}

// Report lists the differences between two divide tables.
type Report struct {
	Missing map[string]uint64    // in want, not in got
	Extra   map[string]uint64    // in got, not in want
	Differ  map[string][2]uint64 // want, got
}

func (r Report) Empty() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0 && len(r.Differ) == 0
}

func (r Report) String() string {
	if r.Empty() {
		return "divide tables match"
	}
	var sb strings.Builder
	for _, k := range sortedKeys(r.Missing) {
		fmt.Fprintf(&sb, "missing %s: %d\n", k, r.Missing[k])
	}
	for _, k := range sortedKeys(r.Extra) {
		fmt.Fprintf(&sb, "extra %s: %d\n", k, r.Extra[k])
	}
	diffKeys := maps.Keys(r.Differ)
	slices.Sort(diffKeys)
	for _, k := range diffKeys {
		d := r.Differ[k]
		fmt.Fprintf(&sb, "differ %s: want %d, got %d\n", k, d[0], d[1])
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func sortedKeys(m map[string]uint64) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Compare reports moves present on only one side and moves whose counts differ.
func Compare(want, got map[string]uint64) Report {
	r := Report{
		Missing: make(map[string]uint64),
		Extra:   make(map[string]uint64),
		Differ:  make(map[string][2]uint64),
	}
	for k, w := range want {
		g, ok := got[k]
		switch {
		case !ok:
			r.Missing[k] = w
		case g != w:
			r.Differ[k] = [2]uint64{w, g}
		}
	}
	for k, g := range got {
		if _, ok := want[k]; !ok {
			r.Extra[k] = g
		}
	}
	return r
}

// Verify divides fen with both generators and compares the tables.
func Verify(fen string, depth int) (Report, error) {
	p, err := bitmg.ParseFEN(fen)
	if err != nil {
		return Report{}, err
	}
	ctx := log.WithFields(log.Fields{"fen": p.FEN(), "depth": depth})
	want, err := Divide(fen, depth)
	if err != nil {
		return Report{}, err
	}
	got, err := DivideStrings(p, depth)
	if err != nil {
		return Report{}, err
	}
	r := Compare(want, got)
	if r.Empty() {
		ctx.WithField("moves", len(got)).Debug("divide matches reference")
	} else {
		ctx.WithFields(log.Fields{
			"missing": len(r.Missing),
			"extra":   len(r.Extra),
			"differ":  len(r.Differ),
		}).Warn("divide differs from reference")
	}
	return r, nil
}
