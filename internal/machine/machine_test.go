package machine

import (
	"testing"

	"github.com/ktanoshii/levinsearch/internal/halt"
)

// fakeSet is a minimal PrimitiveSet for exercising Run in isolation from
// the real opcode table: op 0 is a zero-argument STOP, op 1 is a
// one-argument no-op that just advances past its literal.
type fakeSet struct{}

func (fakeSet) NumArgs(op int) (int, bool) {
	switch op {
	case 0:
		return 0, true
	case 1:
		return 1, true
	default:
		return 0, false
	}
}

func (fakeSet) Execute(op int, s *State, args []int) {
	switch op {
	case 0:
		s.Halt = halt.STOP
	case 1:
		// no-op
	}
}

func TestRunEmptyProgramContinues(t *testing.T) {
	s := NewState(10, 10, 1, 100)
	s.Reset(nil)
	Run(s, 10, fakeSet{}, nil)
	if s.Halt != halt.CONTINUE {
		t.Fatalf("got halt=%v, want CONTINUE", s.Halt)
	}
}

func TestRunStopHalts(t *testing.T) {
	s := NewState(10, 10, 1, 100)
	s.Reset([]int{0})
	Run(s, 10, fakeSet{}, nil)
	if s.Halt != halt.STOP {
		t.Fatalf("got halt=%v, want STOP", s.Halt)
	}
}

func TestRunTimeLimitExhausted(t *testing.T) {
	s := NewState(10, 10, 1, 100)
	s.Reset([]int{1, 0, 1, 0, 1, 0})
	Run(s, 2, fakeSet{}, nil)
	if s.Halt != halt.ErrCurrentTimeLimit {
		t.Fatalf("got halt=%v, want ErrCurrentTimeLimit", s.Halt)
	}
	if s.CurrentRuntime != 2 {
		t.Fatalf("got current_runtime=%d, want 2", s.CurrentRuntime)
	}
}

func TestRunUnknownOpcodeHalts(t *testing.T) {
	s := NewState(10, 10, 1, 100)
	s.Reset([]int{9})
	Run(s, 10, fakeSet{}, nil)
	if s.Halt != halt.ErrInstructionOutOfSet {
		t.Fatalf("got halt=%v, want ErrInstructionOutOfSet", s.Halt)
	}
}

func TestRunObserverSeesEverySnapshot(t *testing.T) {
	s := NewState(10, 10, 1, 100)
	s.Reset([]int{1, 0, 0})
	var seen []Snapshot
	Run(s, 10, fakeSet{}, func(snap Snapshot) {
		seen = append(seen, snap)
	})
	if len(seen) != 2 {
		t.Fatalf("got %d snapshots, want 2 (before the no-op, before STOP)", len(seen))
	}
	if seen[0].InstructionPointer != 0 || seen[1].InstructionPointer != 2 {
		t.Fatalf("got IPs %d,%d, want 0,2", seen[0].InstructionPointer, seen[1].InstructionPointer)
	}
}
