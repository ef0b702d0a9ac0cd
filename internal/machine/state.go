// Package machine implements the bounded-integer abstract machine (the
// "universal machine"): its tapes, pointers, halt taxonomy and the
// fetch-decode-execute loop that steps a candidate program.
package machine

import "github.com/ktanoshii/levinsearch/internal/halt"

// State is one candidate program's machine state: its tapes, pointers and
// halt status. A fresh State is allocated per candidate; it is run once by
// Run and then only inspected, never reused across candidates.
type State struct {
	ProgramTapeSize int
	WorkTapeSize    int
	Maxint          int
	NWeights        int

	Halt               halt.Code
	InstructionPointer int
	Min                int // most negative valid work-tape address; 0 == empty work tape
	CurrentRuntime     int
	WeightPointer      int // next output slot for the initial primitive set
	Jumped             bool

	Weights     []int
	ProgramTape []int
	WorkTape    []int
}

// NewState allocates an empty machine state with the given fixed limits.
func NewState(programTapeSize, workTapeSize, nWeights, maxint int) *State {
	return &State{
		ProgramTapeSize: programTapeSize,
		WorkTapeSize:    workTapeSize,
		Maxint:          maxint,
		NWeights:        nWeights,
		Weights:         make([]int, nWeights),
	}
}

// Max is the index of the last program-tape cell, or -1 for an empty program.
func (s *State) Max() int {
	return len(s.ProgramTape) - 1
}

// OracleAddress is the address immediately past the program: reaching it
// with the instruction pointer signals CONTINUE.
func (s *State) OracleAddress() int {
	return s.Max() + 1
}

// Reset clears every mutable field except the fixed limits, and installs
// program as the new program tape. It is the Go analogue of the Python
// driver's attr.evolve(base_program, program_tape=program, ...).
func (s *State) Reset(program []int) {
	s.Halt = halt.None
	s.InstructionPointer = 0
	s.Min = 0
	s.CurrentRuntime = 0
	s.WeightPointer = 0
	s.Jumped = false
	s.Weights = make([]int, s.NWeights)
	s.ProgramTape = program
	s.WorkTape = nil
}

// Read returns the value at tape address i. Addresses i < 0 index the work
// tape (cell |i|-1); addresses i >= 0 index the program tape. Reading an
// out-of-range address sets Halt to ErrIllegalRead and returns 0; callers
// must check s.Halt after calling Read.
func (s *State) Read(i int) int {
	if i < s.Min || i > s.Max() {
		s.Halt = halt.ErrIllegalRead
		return 0
	}
	if i < 0 {
		return s.WorkTape[-i-1]
	}
	return s.ProgramTape[i]
}

// Write saturates value into [-Maxint, Maxint] and stores it at work-tape
// address i. Writing outside [Min, -1] sets Halt to ErrIllegalWrite.
func (s *State) Write(i, value int) {
	if i < s.Min || i > -1 {
		s.Halt = halt.ErrIllegalWrite
		return
	}
	if value > s.Maxint {
		value = s.Maxint
	} else if value < -s.Maxint {
		value = -s.Maxint
	}
	s.WorkTape[-i-1] = value
}

// Alloc grows the work tape by k zero cells. The caller (Allocate primitive)
// is responsible for checking 1 <= k <= 5 and the resulting size against
// WorkTapeSize before calling.
func (s *State) Alloc(k int) {
	s.WorkTape = append(s.WorkTape, make([]int, k)...)
	s.Min -= k
}

// Free drops the last k work-tape cells. The caller (Free primitive) is
// responsible for checking 1 <= k <= 5 and min+k <= 0 before calling.
func (s *State) Free(k int) {
	s.WorkTape = s.WorkTape[:len(s.WorkTape)-k]
	s.Min += k
}
