package primitives

import "github.com/ktanoshii/levinsearch/internal/machine"

// intRange is an inclusive integer range [lo, hi]; hi < lo represents the
// empty range (an opcode with an empty slot range yields zero argument
// tuples for the current state).
type intRange struct{ lo, hi int }

func (r intRange) size() int {
	if r.hi < r.lo {
		return 0
	}
	return r.hi - r.lo + 1
}

func (r intRange) at(i int) int {
	return r.lo + i
}

// contentRange is the syntactically legal range for a readable or jumpable
// address: up to n cells past the current program end, since those cells
// become the candidate's own arguments.
func contentRange(s *machine.State, n int) intRange {
	return intRange{lo: s.Min, hi: s.Max() + n + 1}
}

// jumpRange additionally permits the oracle address one past that.
func jumpRange(s *machine.State, n int) intRange {
	return intRange{lo: s.Min, hi: s.Max() + n + 2}
}

// writeRange is work-tape cells only.
func writeRange(s *machine.State) intRange {
	return intRange{lo: s.Min, hi: -1}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// allocateRange is empty once the work tape already fills WorkTapeSize.
func allocateRange(s *machine.State) intRange {
	if absInt(s.Min) >= s.WorkTapeSize {
		return intRange{lo: 1, hi: 0}
	}
	return intRange{lo: 1, hi: minInt(5, s.WorkTapeSize-absInt(s.Min))}
}

// freeRange is empty once the work tape is already empty.
func freeRange(s *machine.State) intRange {
	if s.Min == 0 {
		return intRange{lo: 1, hi: 0}
	}
	return intRange{lo: 1, hi: minInt(absInt(s.Min), 5)}
}

// getInputRange is the initial primitive set's fixed [0, 19] gate on
// GET_INPUT's first argument.
func getInputRange() intRange {
	return intRange{lo: 0, hi: 19}
}

// ArgsGenerator enumerates every syntactically legal argument tuple for op
// against the current state s, in the fixed slot order from SPEC_FULL.md
// §4.2 and in the lexicographic order of their Cartesian product (first
// slot varies slowest), so the resulting trace is reproducible. An opcode
// with any empty slot range yields no tuples at all.
func (p *Set) ArgsGenerator(s *machine.State, op int) [][]int {
	n, ok := p.NumArgs(op)
	if !ok {
		return nil
	}

	if op == 3 { // STOP takes no arguments: exactly one (empty) tuple.
		return [][]int{{}}
	}

	content := contentRange(s, n)
	jumpR := jumpRange(s, n)
	write := writeRange(s)

	var ranges []intRange
	switch op {
	case 0:
		ranges = []intRange{content, content, jumpR}
	case 1:
		if p.kind == Weight {
			ranges = []intRange{content, content}
		} else {
			ranges = []intRange{content}
		}
	case 2:
		ranges = []intRange{jumpR}
	case 4:
		ranges = []intRange{content, content, write}
	case 5:
		if p.kind == Weight {
			ranges = []intRange{content, content}
		} else {
			ranges = []intRange{getInputRange(), write}
		}
	case 6:
		ranges = []intRange{content, write}
	case 7:
		ranges = []intRange{allocateRange(s)}
	case 8, 9:
		ranges = []intRange{write}
	case 10, 11:
		ranges = []intRange{content, content, write}
	case 12:
		ranges = []intRange{freeRange(s)}
	default:
		return nil
	}

	return cartesianProduct(ranges)
}

// cartesianProduct enumerates the product of ranges as a flat mixed-radix
// counter: the last range varies fastest, matching itertools.product. Any
// empty range makes the whole product empty.
func cartesianProduct(ranges []intRange) [][]int {
	total := 1
	for _, r := range ranges {
		size := r.size()
		if size == 0 {
			return nil
		}
		total *= size
	}

	tuples := make([][]int, 0, total)
	for idx := 0; idx < total; idx++ {
		tuple := make([]int, len(ranges))
		rem := idx
		for slot := len(ranges) - 1; slot >= 0; slot-- {
			size := ranges[slot].size()
			tuple[slot] = ranges[slot].at(rem % size)
			rem /= size
		}
		tuples = append(tuples, tuple)
	}
	return tuples
}
