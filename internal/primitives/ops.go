package primitives

import (
	"math"

	"github.com/ktanoshii/levinsearch/internal/halt"
	"github.com/ktanoshii/levinsearch/internal/machine"
)

// These are the thirteen primitive operations (plus the unwired divide),
// each taking the program state and its literal argument addresses. Every
// op follows the same shape as the Python staticmethods it is grounded on:
// read its operands, bail if a read already set Halt, apply the effect
// through Write/Alloc/Free, and let those set Halt on an out-of-range
// access. No op ever panics on a legal opcode.

func jumpleq(s *machine.State, a1, a2, a3 int) {
	v1 := s.Read(a1)
	if s.Halt != halt.None {
		return
	}
	v2 := s.Read(a2)
	if s.Halt != halt.None {
		return
	}
	if v1 <= v2 {
		jump(s, a3)
	} else {
		s.Jumped = false
	}
}

func jump(s *machine.State, a1 int) {
	if a1 < s.Min || a1 > s.OracleAddress() {
		s.Halt = halt.ErrInvalidJump
		return
	}
	s.InstructionPointer = a1
	s.Jumped = true
}

func stop(s *machine.State) {
	s.Halt = halt.STOP
}

func add(s *machine.State, a1, a2, a3 int) {
	v1 := s.Read(a1)
	if s.Halt != halt.None {
		return
	}
	v2 := s.Read(a2)
	if s.Halt != halt.None {
		return
	}
	s.Write(a3, v1+v2)
}

func subtract(s *machine.State, a1, a2, a3 int) {
	v1 := s.Read(a1)
	if s.Halt != halt.None {
		return
	}
	v2 := s.Read(a2)
	if s.Halt != halt.None {
		return
	}
	s.Write(a3, v2-v1)
}

func multiply(s *machine.State, a1, a2, a3 int) {
	v1 := s.Read(a1)
	if s.Halt != halt.None {
		return
	}
	v2 := s.Read(a2)
	if s.Halt != halt.None {
		return
	}
	// Widen to int64 so a saturating result is correct even when the host
	// int would otherwise overflow before Write gets to clamp it.
	s.Write(a3, saturate64(int64(v1)*int64(v2), int64(s.Maxint)))
}

// divide is defined but never wired into an opcode table in either
// primitive set, mirroring implementation/primitives.py's div: present,
// unused. Kept for parity; see SPEC_FULL.md Open Questions.
func divide(s *machine.State, a1, a2, a3 int) { // nolint:unused
	v1 := s.Read(a1)
	if s.Halt != halt.None {
		return
	}
	v2 := s.Read(a2)
	if s.Halt != halt.None {
		return
	}
	if v1 == 0 {
		s.Halt = halt.ErrOverflow
		return
	}
	s.Write(a3, int(math.Floor(float64(v2)/float64(v1))))
}

func move(s *machine.State, a1, a2 int) {
	v1 := s.Read(a1)
	if s.Halt != halt.None {
		return
	}
	s.Write(a2, v1)
}

func increment(s *machine.State, a1 int) {
	v1 := s.Read(a1)
	if s.Halt != halt.None {
		return
	}
	s.Write(a1, v1+1)
}

func decrement(s *machine.State, a1 int) {
	v1 := s.Read(a1)
	if s.Halt != halt.None {
		return
	}
	s.Write(a1, v1-1)
}

func allocate(s *machine.State, a1 int) {
	if a1 > 5 || a1 <= 0 || -(s.Min-a1) > s.WorkTapeSize {
		s.Halt = halt.ErrAllocateOutBounds
		return
	}
	s.Alloc(a1)
}

func free(s *machine.State, a1 int) {
	if a1 > 5 || a1 <= 0 || s.Min+a1 > 0 {
		s.Halt = halt.ErrFreeOutBounds
		return
	}
	s.Free(a1)
}

// output is the initial primitive set's opcode 1: append to weights at the
// auto-incrementing weight pointer. There is no primitive to reset the
// pointer; see SPEC_FULL.md Open Questions #1.
func output(s *machine.State, a1 int) {
	v1 := s.Read(a1)
	if s.Halt != halt.None {
		return
	}
	if v1 < -10000 || v1 > 10000 {
		s.Halt = halt.ErrWeightSizeOutBounds
		return
	}
	if s.WeightPointer < 0 || s.WeightPointer >= len(s.Weights) {
		s.Halt = halt.ErrWeightPointerOutBounds
		return
	}
	s.Weights[s.WeightPointer] = v1
	s.WeightPointer++
}

// getInput is the initial primitive set's opcode 5: the environment is a
// stub that always yields zero; only the out-of-range check is live.
func getInput(s *machine.State, a1, a2 int) {
	if a1 >= 20 {
		s.Halt = halt.ErrInputOutBounds
		return
	}
	s.Write(a2, 0)
}

// writeWeight is the weight primitive set's opcode 1: an explicitly
// addressed write into the weight bank (1-based index in a2).
func writeWeight(s *machine.State, a1, a2 int) {
	v1 := s.Read(a1)
	if s.Halt != halt.None {
		return
	}
	idx := s.Read(a2) - 1
	if s.Halt != halt.None {
		return
	}
	if idx < 0 {
		s.Halt = halt.ErrWeightPointerOutBounds
		return
	}
	if v1 < -10000 || v1 > 10000 {
		s.Halt = halt.ErrWeightSizeOutBounds
		return
	}
	if idx >= len(s.Weights) {
		s.Halt = halt.ErrWeightPointerOutBounds
		return
	}
	s.Weights[idx] = v1
}

// readWeight is the weight primitive set's opcode 5: the inverse of
// writeWeight. a1 is read first to get the work-tape address the weight
// is written into; a2 is read to get the (1-based) weight index.
func readWeight(s *machine.State, a1, a2 int) {
	writeAddr := s.Read(a1)
	if s.Halt != halt.None {
		return
	}
	idx := s.Read(a2) - 1
	if s.Halt != halt.None {
		return
	}
	if idx < 0 {
		s.Halt = halt.ErrWeightPointerOutBounds
		return
	}
	if idx >= len(s.Weights) {
		s.Halt = halt.ErrWeightPointerOutBounds
		return
	}
	s.Write(writeAddr, s.Weights[idx])
}

func saturate64(v, maxint int64) int {
	if v > maxint {
		return int(maxint)
	}
	if v < -maxint {
		return int(-maxint)
	}
	return int(v)
}
