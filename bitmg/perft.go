package bitmg

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNegativeDepth rejects a perft request before traversal starts.
	ErrNegativeDepth = errors.New("bitmg: negative perft depth")
	// ErrNilPosition rejects a perft request without a position.
	ErrNilPosition = errors.New("bitmg: nil position")
	// ErrDivideDepth rejects a divide request at depth 0, which has no root moves.
	ErrDivideDepth = errors.New("bitmg: divide needs depth of at least 1")
)

// Perft counts the leaf positions exactly depth plies below p. Depth 0
// counts p itself. The traversal mutates p in place and leaves it as it
// found it.
func Perft(p *Position, depth int) (uint64, error) {
	if err := checkPerftArgs(p, depth); err != nil {
		return 0, err
	}
	return newPerftCtx(depth).count(p, depth), nil
}

func checkPerftArgs(p *Position, depth int) error {
	if p == nil {
		return ErrNilPosition
	}
	if depth < 0 {
		return ErrNegativeDepth
	}
	return nil
}

// perftCtx owns one move buffer per remaining depth so the walk does not
// allocate after the first visit of each ply.
type perftCtx struct {
	bufs [][]Move
}

func newPerftCtx(depth int) *perftCtx {
	pc := &perftCtx{bufs: make([][]Move, depth+1)}
	for i := range pc.bufs {
		pc.bufs[i] = make([]Move, 0, 256)
	}
	return pc
}

func (pc *perftCtx) count(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := p.GenerateMovesInto(pc.bufs[depth])
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		p.Apply(m)
		nodes += pc.count(p, depth-1)
		p.undo()
	}
	return nodes
}

// Divide returns the perft count below each legal root move. The counts
// sum to Perft(p, depth). Depth must be at least 1.
func Divide(p *Position, depth int) (map[Move]uint64, error) {
	if err := checkPerftArgs(p, depth); err != nil {
		return nil, err
	}
	if depth == 0 {
		return nil, ErrDivideDepth
	}
	pc := newPerftCtx(depth)
	out := make(map[Move]uint64)
	for _, m := range p.GenerateLegalMoves() {
		p.Apply(m)
		out[m] = pc.count(p, depth-1)
		p.undo()
	}
	return out, nil
}

// Result is the observable outcome of one perft run.
type Result struct {
	Depth   int
	Nodes   uint64
	Elapsed time.Duration
}

// NPS returns nodes per second, 0 for an unmeasurably short run.
func (r Result) NPS() float64 {
	secs := r.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.Nodes) / secs
}

// RunPerft times a single Perft call.
func RunPerft(p *Position, depth int) (Result, error) {
	start := time.Now()
	nodes, err := Perft(p, depth)
	if err != nil {
		return Result{}, err
	}
	return Result{Depth: depth, Nodes: nodes, Elapsed: time.Since(start)}, nil
}

// PerftParallel splits the root moves across at most workers goroutines,
// each walking its own clone of p. workers <= 0 means GOMAXPROCS. The
// context is checked before each root move is started.
func PerftParallel(ctx context.Context, p *Position, depth, workers int) (Result, error) {
	if err := checkPerftArgs(p, depth); err != nil {
		return Result{}, err
	}
	start := time.Now()
	if depth == 0 {
		return Result{Depth: 0, Nodes: 1, Elapsed: time.Since(start)}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var nodes atomic.Uint64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, m := range p.GenerateLegalMoves() {
		child := p.Clone()
		child.Apply(m)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			nodes.Add(newPerftCtx(depth-1).count(child, depth-1))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return Result{Depth: depth, Nodes: nodes.Load(), Elapsed: time.Since(start)}, nil
}
