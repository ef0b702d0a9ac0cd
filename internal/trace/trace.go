// Package trace renders machine snapshots, search log lines, and solution
// records to the external interfaces in SPEC_FULL.md: JSONL step traces, a
// CSV-ish search log with a companion JSON state dump, and one JSON file
// per recorded solution.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/ktanoshii/levinsearch/internal/halt"
	"github.com/ktanoshii/levinsearch/internal/machine"
	"github.com/ktanoshii/levinsearch/internal/search"
)

// stepRecord mirrors the trace record's state/storage split.
type stepRecord struct {
	State   stepState   `json:"state"`
	Storage stepStorage `json:"storage"`
}

type stepState struct {
	Min                int       `json:"min"`
	Max                int       `json:"max"`
	Halt               halt.Code `json:"halt"`
	InstructionPointer int       `json:"instruction_pointer"`
	CurrentRuntime     int       `json:"current_runtime"`
	WeightPointer      int       `json:"weight_pointer"`
}

type stepStorage struct {
	ProgramTape []int `json:"program_tape"`
	WorkTape    []int `json:"work_tape"`
	Weights     []int `json:"weights"`
}

// JSONLObserver returns a machine.Observer that appends one JSON object per
// snapshot to w, newline-delimited. Marshalling errors are logged and
// otherwise ignored, matching the core's rule that logging must never
// affect halt outcomes.
func JSONLObserver(w io.Writer) machine.Observer {
	return func(snap machine.Snapshot) {
		rec := stepRecord{
			State: stepState{
				Min:                snap.Min,
				Max:                snap.Max,
				Halt:               snap.Halt,
				InstructionPointer: snap.InstructionPointer,
				CurrentRuntime:     snap.CurrentRuntime,
				WeightPointer:      snap.WeightPointer,
			},
			Storage: stepStorage{
				ProgramTape: snap.ProgramTape,
				WorkTape:    snap.WorkTape,
				Weights:     snap.Weights,
			},
		}
		line, err := json.Marshal(rec)
		if err != nil {
			glog.Errorf("trace: marshal snapshot: %v", err)
			return
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			glog.Errorf("trace: write snapshot: %v", err)
		}
	}
}

// SearchLog writes the search's candidate-by-candidate log as
// "program;halt_name;time_limit;phase" lines, one per evaluated candidate.
type SearchLog struct {
	w io.Writer
}

// NewSearchLog wraps w as a search log writer.
func NewSearchLog(w io.Writer) *SearchLog {
	return &SearchLog{w: w}
}

// Record writes one candidate's outcome. It satisfies search.Trace.
func (l *SearchLog) Record(program []int, haltCode halt.Code, timeLimit, phase int) {
	parts := make([]string, len(program))
	for i, v := range program {
		parts[i] = strconv.Itoa(v)
	}
	fmt.Fprintf(l.w, "[%s];%s;%d;%d\n", strings.Join(parts, ","), haltCode, timeLimit, phase)
}

// searchStateDump is the companion JSON summary written alongside a search
// log, deliberately excluding the seen-set and solutions list: those are
// written to their own files.
type searchStateDump struct {
	Phase     int `json:"phase"`
	NRuns     int `json:"n_runs"`
	NSteps    int `json:"n_steps"`
	SpaceSize int `json:"space_size"`
}

// WriteSearchStateDump writes the final search state's counters as JSON.
func WriteSearchStateDump(w io.Writer, ss *search.State) error {
	dump := searchStateDump{
		Phase:     ss.Phase,
		NRuns:     ss.NRuns,
		NSteps:    ss.NSteps,
		SpaceSize: ss.SpaceSize,
	}
	return json.NewEncoder(w).Encode(dump)
}

// solutionRecord is the on-disk shape of a search.Solution.
type solutionRecord struct {
	Program        []int   `json:"program"`
	Phase          int     `json:"phase"`
	FoundAfter     int     `json:"found_after"`
	TimeLimit      int     `json:"time_limit"`
	CurrentRuntime int     `json:"current_runtime"`
	SpaceSize      int     `json:"space_size"`
	Generalizes    bool    `json:"generalizes"`
	Complexity     float64 `json:"complexity"`
}

func toRecord(s search.Solution) solutionRecord {
	return solutionRecord{
		Program:        s.Program,
		Phase:          s.Phase,
		FoundAfter:     s.FoundAfter,
		TimeLimit:      s.TimeLimit,
		CurrentRuntime: s.CurrentRuntime,
		SpaceSize:      s.SpaceSize,
		Generalizes:    s.Generalizes,
		Complexity:     s.Complexity,
	}
}

// WriteSolutionsFile writes every solution as one JSON array to w.
func WriteSolutionsFile(w io.Writer, solutions []search.Solution) error {
	records := make([]solutionRecord, len(solutions))
	for i, s := range solutions {
		records[i] = toRecord(s)
	}
	return json.NewEncoder(w).Encode(records)
}

// WriteSolutionsDir writes one file per solution into dir, named
// "phase<N>_solution<M>.json" where M counts solutions within their phase
// in recorded order, mirroring the console script's per-phase counter.
func WriteSolutionsDir(dir string, solutions []search.Solution) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	counter := make(map[int]int)
	for _, s := range solutions {
		name := fmt.Sprintf("phase%d_solution%d.json", s.Phase, counter[s.Phase])
		counter[s.Phase]++

		data, err := json.Marshal(toRecord(s))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
