package primitives

import (
	"reflect"
	"testing"

	"github.com/ktanoshii/levinsearch/internal/machine"
)

func TestArgsGeneratorStopYieldsOneEmptyTuple(t *testing.T) {
	p := NewInitial()
	s := machine.NewState(100, 10, 10, 10000)
	s.Reset(nil)
	tuples := p.ArgsGenerator(s, 3) // STOP
	if len(tuples) != 1 || len(tuples[0]) != 0 {
		t.Fatalf("got %v, want exactly one empty tuple", tuples)
	}
}

func TestArgsGeneratorJumpRangeOnEmptyProgram(t *testing.T) {
	p := NewInitial()
	s := machine.NewState(100, 10, 10, 10000)
	s.Reset(nil) // min=0, max=-1
	// JUMP (op 2) has 1 arg; jump_range is [min, max+n_args+2] inclusive,
	// so with max=-1, n_args=1: [0, 2].
	tuples := p.ArgsGenerator(s, 2)
	want := [][]int{{0}, {1}, {2}}
	if !reflect.DeepEqual(tuples, want) {
		t.Fatalf("got %v, want %v", tuples, want)
	}
}

func TestArgsGeneratorAllocateEmptyWhenWorkTapeFull(t *testing.T) {
	p := NewInitial()
	s := machine.NewState(100, 2, 10, 10000)
	s.Reset(nil)
	s.Alloc(2) // min = -2, equals work tape size
	tuples := p.ArgsGenerator(s, 7) // ALLOCATE
	if tuples != nil {
		t.Fatalf("got %v, want nil (work tape already full)", tuples)
	}
}

func TestArgsGeneratorFreeEmptyWhenWorkTapeEmpty(t *testing.T) {
	p := NewInitial()
	s := machine.NewState(100, 10, 10, 10000)
	s.Reset(nil)
	tuples := p.ArgsGenerator(s, 12) // FREE
	if tuples != nil {
		t.Fatalf("got %v, want nil (work tape already empty)", tuples)
	}
}

func TestArgsGeneratorOutputUsesContentRangeOnly(t *testing.T) {
	p := NewInitial()
	s := machine.NewState(100, 10, 10, 10000)
	s.Reset(nil)
	// OUTPUT (op 1, initial set) has 1 arg; content_range = [min, max+1+n_args]
	// = [0, -1+1+1] = [0, 1].
	tuples := p.ArgsGenerator(s, 1)
	want := [][]int{{0}, {1}}
	if !reflect.DeepEqual(tuples, want) {
		t.Fatalf("got %v, want %v", tuples, want)
	}
}

func TestArgsGeneratorWeightWriteWeightTakesTwoContentSlots(t *testing.T) {
	p := NewWeight()
	s := machine.NewState(100, 10, 10, 10000)
	s.Reset(nil)
	// WRITE_WEIGHT (op 1, weight set) has 2 args; content_range = [0, 2].
	tuples := p.ArgsGenerator(s, 1)
	if len(tuples) != 3*3 {
		t.Fatalf("got %d tuples, want 9", len(tuples))
	}
	if tuples[0][0] != 0 || tuples[0][1] != 0 || tuples[len(tuples)-1][0] != 2 || tuples[len(tuples)-1][1] != 2 {
		t.Fatalf("got first=%v last=%v, want first=[0 0] last=[2 2]", tuples[0], tuples[len(tuples)-1])
	}
}

func TestOpsOrderedAscendingArity(t *testing.T) {
	p := NewInitial()
	order := p.OpsOrdered()
	prev := -1
	for _, op := range order {
		n, _ := p.NumArgs(op)
		if n < prev {
			t.Fatalf("ops_ordered %v is not ascending by arity", order)
		}
		prev = n
	}
	if order[0] != 3 {
		t.Fatalf("got first opcode %d, want 3 (STOP, the only 0-arity op)", order[0])
	}
}
