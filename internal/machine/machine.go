package machine

import "github.com/ktanoshii/levinsearch/internal/halt"

// PrimitiveSet is the opcode table the machine dispatches through: how many
// argument literals an opcode consumes, and what running it does to a
// State. primitives.Set implements this; machine does not import
// primitives; this keeps the dependency pointing one way, the opcode table
// depending on the machine's State rather than the reverse.
type PrimitiveSet interface {
	// NumArgs returns the argument count for op, and false if op is not a
	// legal opcode index.
	NumArgs(op int) (int, bool)
	// Execute dispatches op against s with the given argument literals. It
	// sets s.Halt on failure; it never panics on a legal opcode.
	Execute(op int, s *State, args []int)
}

// Snapshot is the read-only observation emitted once per fetch-decode-execute
// iteration, before the instruction at the fetch point (if any) runs.
type Snapshot struct {
	Min                int
	Max                int
	Halt               halt.Code
	InstructionPointer int
	CurrentRuntime     int
	WeightPointer      int
	ProgramTape        []int
	WorkTape           []int
	Weights            []int
}

// Observer receives one Snapshot per loop iteration. It must be a pure
// function of its argument: it must not mutate the slices it is handed and
// must not block, since it runs synchronously inside Run. A nil Observer is
// the no-op case and is checked once per iteration rather than installed as
// a closure.
type Observer func(Snapshot)

func snapshot(s *State) Snapshot {
	return Snapshot{
		Min:                s.Min,
		Max:                s.Max(),
		Halt:               s.Halt,
		InstructionPointer: s.InstructionPointer,
		CurrentRuntime:     s.CurrentRuntime,
		WeightPointer:      s.WeightPointer,
		ProgramTape:        s.ProgramTape,
		WorkTape:           s.WorkTape,
		Weights:            s.Weights,
	}
}

// Run performs the instruction cycle: fetch, decode, execute. It mutates s
// in place and returns once s.Halt is set to a terminal code or to
// CONTINUE. The loop shape mirrors a classic opcode-table CPU step: fetch
// the opcode at the instruction pointer, decode its argument literals,
// dispatch through primitives, then either honor a jump or advance past the
// instruction, checking the time budget each pass.
func Run(s *State, timeLimit int, primitives PrimitiveSet, observer Observer) {
	for {
		if observer != nil {
			observer(snapshot(s))
		}

		if s.InstructionPointer == s.OracleAddress() {
			s.Halt = halt.CONTINUE
			return
		}

		op := s.Read(s.InstructionPointer)
		if s.Halt != halt.None {
			return
		}

		runStep(s, timeLimit, primitives, op)
		if s.Halt != halt.None {
			return
		}
	}
}

// runStep decodes and executes the single instruction at the fetch point.
func runStep(s *State, timeLimit int, primitives PrimitiveSet, op int) {
	nArgs, ok := primitives.NumArgs(op)
	if !ok {
		s.Halt = halt.ErrInstructionOutOfSet
		return
	}

	if s.InstructionPointer+nArgs > s.Max() {
		s.Halt = halt.ErrInvalidInstructionPointer
		return
	}

	args := make([]int, nArgs)
	for i := 0; i < nArgs; i++ {
		args[i] = s.Read(s.InstructionPointer + i + 1)
		if s.Halt != halt.None {
			return
		}
	}

	s.CurrentRuntime++
	primitives.Execute(op, s, args)
	if s.Halt != halt.None {
		return
	}

	if s.Jumped {
		s.Jumped = false
	} else {
		s.InstructionPointer += 1 + nArgs
	}

	if s.CurrentRuntime >= timeLimit {
		s.Halt = halt.ErrCurrentTimeLimit
	}
}
