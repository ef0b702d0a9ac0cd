// Command levinsearch runs Levin search for a task and primitive set,
// writing the search log, the final search-state summary, and every
// recorded solution to disk.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"github.com/ktanoshii/levinsearch/internal/primitives"
	"github.com/ktanoshii/levinsearch/internal/search"
	"github.com/ktanoshii/levinsearch/internal/task"
	"github.com/ktanoshii/levinsearch/internal/trace"
)

func main() {
	workTapeSize := flag.Int("work_tape_size", 1000, "size of the work tape")
	programTapeSize := flag.Int("program_tape_size", 100, "size of the program tape")
	nWeights := flag.Int("n_weights", 100, "number of weight cells")
	maxint := flag.Int("maxint", 10000, "saturation bound for tape and weight values")
	primitivesSet := flag.String("primitives_set", "INITIAL", "which primitive set to search with: INITIAL or WEIGHT")
	searchLog := flag.String("search_log", "", "path to write the search log (.csv); a companion .json state dump is written alongside")
	solutionsFile := flag.String("solutions_file", "", "path to write every solution as one JSON array (.json)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <task> <search_length> <solutions_dir>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}

	taskKind, ok := task.FromString(strings.ToUpper(flag.Arg(0)))
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown task %q\n", flag.Arg(0))
		os.Exit(2)
	}

	searchLength, err := parsePositiveInt(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid search_length: %v\n", err)
		os.Exit(2)
	}
	solutionsDir := flag.Arg(2)

	primitiveSet, err := newPrimitiveSet(*primitivesSet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	cfg := search.Config{
		ProgramTapeSize: *programTapeSize,
		WorkTapeSize:    *workTapeSize,
		NWeights:        *nWeights,
		Maxint:          *maxint,
	}
	t := task.New(taskKind, *nWeights)

	var logFile *os.File
	var tracer search.Trace
	if *searchLog != "" {
		logFile, err = os.Create(*searchLog)
		if err != nil {
			glog.Fatalf("creating search log: %v", err)
		}
		defer logFile.Close()
		tracer = trace.NewSearchLog(logFile).Record
	}

	glog.Infof("starting levin search: task=%s primitives=%s search_length=%d", taskKind, *primitivesSet, searchLength)
	searchState := search.Run(cfg, primitiveSet, t, searchLength, tracer)
	glog.Infof("search finished: n_runs=%d n_steps=%d solutions=%d", searchState.NRuns, searchState.NSteps, len(searchState.Solutions))

	if *searchLog != "" {
		statePath := strings.TrimSuffix(*searchLog, filepath.Ext(*searchLog)) + ".json"
		stateFile, err := os.Create(statePath)
		if err != nil {
			glog.Fatalf("creating search state dump: %v", err)
		}
		defer stateFile.Close()
		if err := trace.WriteSearchStateDump(stateFile, searchState); err != nil {
			glog.Fatalf("writing search state dump: %v", err)
		}
	}

	if *solutionsFile != "" {
		f, err := os.Create(*solutionsFile)
		if err != nil {
			glog.Fatalf("creating solutions file: %v", err)
		}
		defer f.Close()
		if err := trace.WriteSolutionsFile(f, searchState.Solutions); err != nil {
			glog.Fatalf("writing solutions file: %v", err)
		}
	}

	if err := trace.WriteSolutionsDir(solutionsDir, searchState.Solutions); err != nil {
		glog.Fatalf("writing solutions directory: %v", err)
	}
}

func newPrimitiveSet(name string) (*primitives.Set, error) {
	switch strings.ToUpper(name) {
	case "WEIGHT":
		return primitives.NewWeight(), nil
	case "INITIAL", "DEFAULT":
		return primitives.NewInitial(), nil
	default:
		return nil, fmt.Errorf("unknown primitives_set %q: want INITIAL or WEIGHT", name)
	}
}

func parsePositiveInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
