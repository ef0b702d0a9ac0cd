// Package primitives implements the opcode table of the universal machine:
// per-opcode argument arity, the syntactic argument generator, and opcode
// semantics for both the initial and weight primitive sets.
package primitives

import (
	"sort"

	"github.com/ktanoshii/levinsearch/internal/halt"
	"github.com/ktanoshii/levinsearch/internal/machine"
)

// Kind selects which of the two primitive sets an opcode table implements.
// They differ only in opcode 1 (OUTPUT vs WRITE_WEIGHT) and opcode 5
// (GET_INPUT vs READ_WEIGHT); every other opcode is shared.
type Kind int

const (
	// Initial is the primitive set from the Levin/Jankowski paper: OUTPUT
	// appends to an auto-incrementing weight pointer, GET_INPUT stubs a
	// fixed, always-zero environment.
	Initial Kind = iota
	// Weight is the richer environment-interaction primitive set:
	// WRITE_WEIGHT/READ_WEIGHT address the weight bank explicitly.
	Weight
)

const numOps = 13

var (
	initialArity = [numOps]int{3, 1, 1, 0, 3, 2, 2, 1, 1, 1, 3, 3, 1}
	weightArity  = [numOps]int{3, 2, 1, 0, 3, 2, 2, 1, 1, 1, 3, 3, 1}

	initialNames = [numOps]string{
		"JUMPLEQ", "OUTPUT", "JUMP", "STOP", "ADD", "GET_INPUT", "MOVE",
		"ALLOCATE", "INCREMENT", "DECREMENT", "SUBTRACT", "MULTIPLY", "FREE",
	}
	weightNames = [numOps]string{
		"JUMPLEQ", "WRITE_WEIGHT", "JUMP", "STOP", "ADD", "READ_WEIGHT", "MOVE",
		"ALLOCATE", "INCREMENT", "DECREMENT", "SUBTRACT", "MULTIPLY", "FREE",
	}
)

// Set is one primitive table: its arity per opcode, opcode names, and the
// dispatch that runs an opcode against a State. It implements
// machine.PrimitiveSet.
type Set struct {
	kind       Kind
	arity      [numOps]int
	names      [numOps]string
	opsOrdered []int // opcode indices, ascending arity, ties broken by opcode index
}

// NewInitial builds the initial primitive set (OUTPUT / GET_INPUT).
func NewInitial() *Set {
	return newSet(Initial, initialArity, initialNames)
}

// NewWeight builds the weight primitive set (WRITE_WEIGHT / READ_WEIGHT).
func NewWeight() *Set {
	return newSet(Weight, weightArity, weightNames)
}

func newSet(kind Kind, arity [numOps]int, names [numOps]string) *Set {
	ordered := make([]int, numOps)
	for i := range ordered {
		ordered[i] = i
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return arity[ordered[i]] < arity[ordered[j]]
	})
	return &Set{kind: kind, arity: arity, names: names, opsOrdered: ordered}
}

// NumArgs implements machine.PrimitiveSet.
func (p *Set) NumArgs(op int) (int, bool) {
	if op < 0 || op >= numOps {
		return 0, false
	}
	return p.arity[op], true
}

// OpName returns the opcode's mnemonic, for trace and table output.
func (p *Set) OpName(op int) string {
	if op < 0 || op >= numOps {
		return ""
	}
	return p.names[op]
}

// OpsOrdered returns opcode indices in the order the Levin driver must
// extend programs: ascending arity, ties broken by opcode index, so
// shorter instructions are tried first within a phase.
func (p *Set) OpsOrdered() []int {
	return p.opsOrdered
}

// Execute implements machine.PrimitiveSet: it dispatches op against s with
// the already-read argument literals args.
func (p *Set) Execute(op int, s *machine.State, args []int) {
	switch op {
	case 0:
		jumpleq(s, args[0], args[1], args[2])
	case 1:
		if p.kind == Weight {
			writeWeight(s, args[0], args[1])
		} else {
			output(s, args[0])
		}
	case 2:
		jump(s, args[0])
	case 3:
		stop(s)
	case 4:
		add(s, args[0], args[1], args[2])
	case 5:
		if p.kind == Weight {
			readWeight(s, args[0], args[1])
		} else {
			getInput(s, args[0], args[1])
		}
	case 6:
		move(s, args[0], args[1])
	case 7:
		allocate(s, args[0])
	case 8:
		increment(s, args[0])
	case 9:
		decrement(s, args[0])
	case 10:
		subtract(s, args[0], args[1], args[2])
	case 11:
		multiply(s, args[0], args[1], args[2])
	case 12:
		free(s, args[0])
	default:
		s.Halt = halt.ErrInstructionOutOfSet
	}
}
