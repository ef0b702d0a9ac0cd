// Package search implements the Levin search driver: the phased,
// depth-first enumeration of candidate programs, their per-candidate time
// budget, the halted-program seen-set, and the solution accumulator.
package search

import (
	"math"

	"github.com/golang/glog"

	"github.com/ktanoshii/levinsearch/internal/halt"
	"github.com/ktanoshii/levinsearch/internal/machine"
	"github.com/ktanoshii/levinsearch/internal/primitives"
	"github.com/ktanoshii/levinsearch/internal/task"
)

// Config holds the machine limits shared by every candidate run within a
// search: they never change once a search starts.
type Config struct {
	ProgramTapeSize int
	WorkTapeSize    int
	NWeights        int
	Maxint          int
}

// RunProgram executes program under timeLimit against a fresh machine state
// built from cfg, and returns the state after it halted or continued.
func RunProgram(cfg Config, program []int, timeLimit int, primitiveSet *primitives.Set, observer machine.Observer) *machine.State {
	s := machine.NewState(cfg.ProgramTapeSize, cfg.WorkTapeSize, cfg.NWeights, cfg.Maxint)
	s.Reset(program)
	machine.Run(s, timeLimit, primitiveSet, observer)
	return s
}

// Trace receives one record per candidate run, in program-halt-timeLimit-phase
// order, matching the search log's column order.
type Trace func(program []int, haltCode halt.Code, timeLimit, phase int)

// Run drives the full iterative-deepening search: one priming run on the
// empty program, then phases 1..searchLength in ascending order, each
// calling Phase from the scratch trail the priming run produced.
func Run(cfg Config, primitiveSet *primitives.Set, t task.Task, searchLength int, trace Trace) *State {
	initial := RunProgram(cfg, []int{}, 2, primitiveSet, nil)

	ss := NewState()
	for phase := 1; phase <= searchLength; phase++ {
		ss.Phase = phase
		Phase(ss, initial, []int{}, cfg, primitiveSet, t, trace, 0)
	}
	return ss
}

// Phase performs the bounded depth-first enumeration for the search
// state's current phase: for every opcode (ordered by ascending arity) and
// every syntactically legal argument tuple, it extends trailProgram by one
// instruction, runs the extension, and either recurses (on CONTINUE) or
// scores it as a finished candidate.
func Phase(ss *State, trailState *machine.State, trailProgram []int, cfg Config, primitiveSet *primitives.Set, t task.Task, trace Trace, depth int) {
	phaseSpaceSize := 0

	for _, op := range primitiveSet.OpsOrdered() {
		nArgs, _ := primitiveSet.NumArgs(op)
		newProgramLength := trailState.OracleAddress() + nArgs + 1
		if newProgramLength > ss.Phase {
			continue
		}

		// 2^(phase - length + 9): budget grows with phase, shrinks with the
		// extension's own length, so longer candidates get less runway.
		timeLimit := 1 << uint(ss.Phase-newProgramLength+9)

		for _, args := range primitiveSet.ArgsGenerator(trailState, op) {
			program := make([]int, 0, len(trailProgram)+1+len(args))
			program = append(program, trailProgram...)
			program = append(program, op)
			program = append(program, args...)

			if ss.Seen(program) {
				continue
			}

			status := RunProgram(cfg, program, timeLimit, primitiveSet, nil)

			if glog.V(1) {
				glog.Infof("%v;%s;%d;%d", program, status.Halt, timeLimit, ss.Phase)
			}
			if trace != nil {
				trace(program, status.Halt, timeLimit, ss.Phase)
			}

			if status.Halt == halt.CONTINUE {
				Phase(ss, status, program, cfg, primitiveSet, t, trace, depth+1)
				continue
			}

			phaseSpaceSize++
			ss.NRuns++
			ss.NSteps += status.CurrentRuntime

			if status.Halt != halt.ErrCurrentTimeLimit {
				ss.Remember(program)
			}

			if t.MatchesSamples(status.Weights) {
				ss.Solutions = append(ss.Solutions, Solution{
					Program:        append([]int(nil), program...),
					FoundAfter:     ss.NRuns,
					TimeLimit:      timeLimit,
					CurrentRuntime: status.CurrentRuntime,
					Phase:          ss.Phase,
					Generalizes:    t.MatchesAll(status.Weights),
					Complexity:     float64(len(program)) + math.Log(float64(status.CurrentRuntime)),
				})
			}
		}
	}

	ss.SpaceSize += phaseSpaceSize

	if depth == 0 {
		for i := range ss.Solutions {
			ss.Solutions[i].SpaceSize = ss.SpaceSize
		}
	}
}
