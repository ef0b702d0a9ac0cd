// Command runprogram runs a single program against the universal machine
// and writes its step-by-step trace as JSONL.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"flag"

	"github.com/golang/glog"

	"github.com/ktanoshii/levinsearch/internal/primitives"
	"github.com/ktanoshii/levinsearch/internal/search"
	"github.com/ktanoshii/levinsearch/internal/trace"
)

func main() {
	workTapeSize := flag.Int("work_tape_size", 10, "size of the work tape")
	programTapeSize := flag.Int("program_tape_size", 100, "size of the program tape")
	nWeights := flag.Int("n_weights", 10, "number of weight cells")
	maxint := flag.Int("maxint", 10000, "saturation bound for tape and weight values")
	primitivesSet := flag.String("primitives_set", "DEFAULT", "which primitive set to run with: DEFAULT or WEIGHT")
	currentRuntime := flag.Int("time_limit", 1<<20, "time budget for this run")
	programFile := flag.String("program_file", "", "file holding a comma-separated program, instead of the positional argument")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <program> <log_file.jsonl>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "   or: %s [flags] -program_file=<path> <log_file.jsonl>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	var programArg, logPath string
	switch {
	case *programFile != "":
		if flag.NArg() != 1 {
			flag.Usage()
			os.Exit(2)
		}
		data, err := os.ReadFile(*programFile)
		if err != nil {
			glog.Fatalf("reading program file: %v", err)
		}
		programArg = strings.TrimSpace(string(data))
		logPath = flag.Arg(0)
	default:
		if flag.NArg() != 2 {
			flag.Usage()
			os.Exit(2)
		}
		programArg = flag.Arg(0)
		logPath = flag.Arg(1)
	}

	if !strings.HasSuffix(logPath, ".jsonl") {
		fmt.Fprintln(os.Stderr, "log_file must have a .jsonl extension")
		os.Exit(2)
	}

	program, err := parseProgram(programArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid program: %v\n", err)
		os.Exit(2)
	}

	primitiveSet, err := newPrimitiveSet(*primitivesSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	logFile, err := os.Create(logPath)
	if err != nil {
		glog.Fatalf("creating log file: %v", err)
	}
	defer logFile.Close()

	cfg := search.Config{
		ProgramTapeSize: *programTapeSize,
		WorkTapeSize:    *workTapeSize,
		NWeights:        *nWeights,
		Maxint:          *maxint,
	}

	state := search.RunProgram(cfg, program, *currentRuntime, primitiveSet, trace.JSONLObserver(logFile))

	glog.Infof("run finished: halt=%s current_runtime=%d weights=%v", state.Halt, state.CurrentRuntime, state.Weights)
}

func newPrimitiveSet(name string) (*primitives.Set, error) {
	switch strings.ToUpper(name) {
	case "WEIGHT":
		return primitives.NewWeight(), nil
	case "INITIAL", "DEFAULT":
		return primitives.NewInitial(), nil
	default:
		return nil, fmt.Errorf("unknown primitives_set %q: want DEFAULT or WEIGHT", name)
	}
}

func parseProgram(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	cells := strings.Split(s, ",")
	program := make([]int, len(cells))
	for i, c := range cells {
		v, err := strconv.Atoi(strings.TrimSpace(c))
		if err != nil {
			return nil, fmt.Errorf("cell %d (%q): %w", i, c, err)
		}
		program[i] = v
	}
	return program, nil
}
