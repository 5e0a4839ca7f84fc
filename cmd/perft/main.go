package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"chess-movegen/bitmg"
	"chess-movegen/oracle"
	"chess-movegen/store"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/montanaflynn/stats"
	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	exitOK       = 0
	exitMismatch = 1
	exitError    = 2
)

var errMismatch = errors.New("node counts differ")

type options struct {
	fen      string
	depth    int
	divide   bool
	repeat   int
	label    string
	parallel int
	verify   bool
	cacheDir string
	suite    string
	cpuProf  string
	memProf  string
	progress bool
	verbose  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("perft", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.fen, "fen", bitmg.FENStartPos, "FEN string (defaults to initial position)")
	fs.IntVar(&o.depth, "depth", 0, "Perft depth (required unless -suite is given)")
	fs.BoolVar(&o.divide, "divide", false, "Print per-move node counts at root")
	fs.IntVar(&o.repeat, "repeat", 1, "Repeat perft N times and report timing statistics")
	fs.StringVar(&o.label, "label", "", "Optional label prefix for one-line output")
	fs.IntVar(&o.parallel, "parallel", 0, "Split root moves over N goroutines (0 = serial, -1 = GOMAXPROCS)")
	fs.BoolVar(&o.verify, "verify", false, "Compare the divide table against the reference generator")
	fs.StringVar(&o.cacheDir, "cache", "", "Directory of a node count cache")
	fs.StringVar(&o.suite, "suite", "", "Run every position of an EPD perft suite file")
	fs.StringVar(&o.cpuProf, "cpuprofile", "", "Write cpu.pprof into this directory")
	fs.StringVar(&o.memProf, "memprofile", "", "Write mem.pprof into this directory")
	fs.BoolVar(&o.progress, "progress", false, "Show a progress bar on stderr")
	fs.BoolVar(&o.verbose, "v", false, "Debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.suite == "" && o.depth <= 0 {
		return nil, errors.New("-depth must be > 0")
	}
	if o.repeat < 1 {
		return nil, errors.New("-repeat must be >= 1")
	}
	if o.cpuProf != "" && o.memProf != "" {
		return nil, errors.New("-cpuprofile and -memprofile are exclusive")
	}
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		return exitError
	}

	log.SetHandler(cli.New(stderr))
	log.SetLevel(log.InfoLevel)
	if o.verbose {
		log.SetLevel(log.DebugLevel)
	}

	switch {
	case o.cpuProf != "":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(o.cpuProf), profile.NoShutdownHook, profile.Quiet).Stop()
	case o.memProf != "":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(o.memProf), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	var cache *store.Store
	if o.cacheDir != "" {
		cache, err = store.Open(o.cacheDir)
		if err != nil {
			log.WithError(err).Error("opening cache")
			return exitError
		}
		defer cache.Close()
	}

	if o.suite != "" {
		err = runSuite(o, stdout, stderr)
	} else {
		err = runOne(o, cache, stdout, stderr)
	}
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errMismatch):
		return exitMismatch
	default:
		fmt.Fprintf(stderr, "perft: %v\n", err)
		return exitError
	}
}

func runOne(o *options, cache *store.Store, stdout, stderr io.Writer) error {
	p, err := bitmg.ParseFEN(o.fen)
	if err != nil {
		return err
	}
	ctx := log.WithFields(log.Fields{"fen": p.FEN(), "depth": o.depth})

	if o.divide {
		return printDivide(p, o.depth, stdout)
	}

	if cache != nil && o.repeat == 1 {
		nodes, ok, err := cache.Get(o.fen, o.depth)
		if err != nil {
			return err
		}
		if ok {
			ctx.Debug("cache hit")
			fmt.Fprintf(stdout, "Number of positions: %d\n", nodes)
			fmt.Fprintln(stdout, "Time taken: cached, not searched")
			return nil
		}
	}

	times := make([]float64, 0, o.repeat)
	var res bitmg.Result
	for i := 0; i < o.repeat; i++ {
		res, err = perftOnce(o, p, stderr)
		if err != nil {
			return err
		}
		times = append(times, res.Elapsed.Seconds())
		ctx.WithFields(log.Fields{"run": i + 1, "nodes": res.Nodes, "elapsed": res.Elapsed}).Debug("perft done")
	}
	printResult(o, res, stdout)
	if o.repeat > 1 {
		if err := printStats(times, stdout); err != nil {
			return err
		}
	}

	if cache != nil {
		if err := cache.Put(o.fen, o.depth, res.Nodes); err != nil {
			ctx.WithError(err).Warn("cache write failed")
		}
	}

	if o.verify {
		report, err := oracle.Verify(o.fen, o.depth)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, report)
		if !report.Empty() {
			return errMismatch
		}
	}
	return nil
}

func perftOnce(o *options, p *bitmg.Position, stderr io.Writer) (bitmg.Result, error) {
	switch {
	case o.parallel != 0:
		return bitmg.PerftParallel(context.Background(), p, o.depth, o.parallel)
	case o.progress:
		return perftWithProgress(p, o.depth, stderr)
	default:
		return bitmg.RunPerft(p, o.depth)
	}
}

// perftWithProgress walks the root moves one at a time so a bar can follow.
func perftWithProgress(p *bitmg.Position, depth int, stderr io.Writer) (bitmg.Result, error) {
	start := time.Now()
	moves := p.GenerateLegalMoves()
	bar := progressbar.NewOptions(len(moves),
		progressbar.OptionSetWriter(stderr),
		progressbar.OptionSetDescription(fmt.Sprintf("depth %d", depth)),
		progressbar.OptionClearOnFinish(),
	)
	var nodes uint64
	for _, m := range moves {
		p.Apply(m)
		n, err := bitmg.Perft(p, depth-1)
		if uerr := p.Unapply(); uerr != nil {
			return bitmg.Result{}, uerr
		}
		if err != nil {
			return bitmg.Result{}, err
		}
		nodes += n
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return bitmg.Result{Depth: depth, Nodes: nodes, Elapsed: time.Since(start)}, nil
}

func printResult(o *options, res bitmg.Result, stdout io.Writer) {
	fmt.Fprintf(stdout, "Number of positions: %d\n", res.Nodes)
	fmt.Fprintf(stdout, "Time taken: %.6f seconds\n", res.Elapsed.Seconds())
	if o.label != "" {
		fmt.Fprintf(stdout, "%s \t%d \t\t%d \t\t%s \t%.0f\n", o.label, res.Depth, res.Nodes, res.Elapsed, res.NPS())
	}
}

func printStats(times []float64, stdout io.Writer) error {
	data := stats.LoadRawData(times)
	mean, err := stats.Mean(data)
	if err != nil {
		return err
	}
	median, err := stats.Median(data)
	if err != nil {
		return err
	}
	fastest, err := stats.Min(data)
	if err != nil {
		return err
	}
	sd, err := stats.StandardDeviation(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Runs: %d mean %.6fs median %.6fs min %.6fs stddev %.6fs\n", len(times), mean, median, fastest, sd)
	return nil
}

func printDivide(p *bitmg.Position, depth int, stdout io.Writer) error {
	div, err := oracle.DivideStrings(p, depth)
	if err != nil {
		return err
	}
	keys := maps.Keys(div)
	slices.Sort(keys)
	var sum uint64
	for _, k := range keys {
		fmt.Fprintf(stdout, "%s: %d\n", k, div[k])
		sum += div[k]
	}
	fmt.Fprintf(stdout, "Total: %d\n", sum)
	return nil
}

func runSuite(o *options, stdout, stderr io.Writer) error {
	f, err := os.Open(o.suite)
	if err != nil {
		return err
	}
	defer f.Close()
	entries, err := bitmg.ParseEPDSuite(f)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	if o.progress {
		bar = progressbar.NewOptions(len(entries),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("suite"),
		)
	}
	failed := 0
	for _, e := range entries {
		p, err := bitmg.ParseFEN(e.FEN)
		if err != nil {
			return err
		}
		depths := maps.Keys(e.Expected)
		slices.Sort(depths)
		for _, d := range depths {
			if o.depth > 0 && d > o.depth {
				break
			}
			got, err := bitmg.Perft(p, d)
			if err != nil {
				return err
			}
			want := e.Expected[d]
			status := "ok"
			if got != want {
				status = "FAIL"
				failed++
				log.WithFields(log.Fields{"line": e.Line, "depth": d, "want": want, "got": got}).Error("perft mismatch")
			}
			fmt.Fprintf(stdout, "%-4s D%d %d %s\n", status, d, got, e.FEN)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of suite", errMismatch, failed)
	}
	return nil
}
