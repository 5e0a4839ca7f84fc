package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
)

// perftCase is one throughput run of cmd/perft.
type perftCase struct {
	label string
	fen   string
	depth int
}

var perftCases = []perftCase{
	{"Initial", "", 4},
	{"Initial", "", 5},
	{"Initial", "", 6},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4},
	{"Endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 6},
}

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

func perftArgs(c perftCase, parallel int) []string {
	args := []string{"run", "./cmd/perft", "-depth", fmt.Sprint(c.depth), "-label", c.label}
	if c.fen != "" {
		args = append(args, "-fen", c.fen)
	}
	if parallel != 0 {
		args = append(args, "-parallel", fmt.Sprint(parallel))
	}
	return args
}

func main() {
	benchtime := flag.String("benchtime", "1s", "Passed to go test -benchtime")
	parallel := flag.Int("parallel", 0, "Passed to cmd/perft -parallel")
	skipBench := flag.Bool("skip-bench", false, "Only run the perft throughput table")
	flag.Parse()

	// Usage: go run ./cmd/benchrun
	if !*skipBench {
		fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
		code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime="+*benchtime)
		if code != 0 {
			os.Exit(code)
		}
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	failed := 0
	for _, c := range perftCases {
		if run("go", perftArgs(c, *parallel)...) != 0 {
			failed++
		}
	}

	fmt.Println("\nPerft Suite:")
	if run("go", "run", "./cmd/perft", "-suite", "bitmg/testdata/perftsuite.epd", "-depth", "3") != 0 {
		failed++
	}
	if failed > 0 {
		os.Exit(1)
	}
}
