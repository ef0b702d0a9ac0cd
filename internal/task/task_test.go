package task

import "testing"

func TestPositionSequence(t *testing.T) {
	tk := New(Position, 5)
	want := []int{1, 2, 3, 4, 5}
	for i, v := range want {
		if tk.Solution[i] != v {
			t.Fatalf("got %v, want %v", tk.Solution, want)
		}
	}
}

func TestFizzBuzzSequence(t *testing.T) {
	tk := New(FizzBuzz, 15)
	want := []int{0, 0, 1, 0, 2, 1, 0, 0, 1, 2, 0, 1, 0, 0, 3}
	for i, v := range want {
		if tk.Solution[i] != v {
			t.Fatalf("at index %d: got %d, want %d (full: %v)", i, tk.Solution[i], v, tk.Solution)
		}
	}
}

func TestNegativeOneTwoThreeCycles(t *testing.T) {
	tk := New(NegativeOneTwoThree, 7)
	want := []int{-1, -2, -3, -1, -2, -3, -1}
	for i, v := range want {
		if tk.Solution[i] != v {
			t.Fatalf("got %v, want %v", tk.Solution, want)
		}
	}
}

func TestMatchesSamplesRejectsMismatch(t *testing.T) {
	tk := New(Count, 100)
	candidate := make([]int, 100)
	copy(candidate, tk.Solution)
	candidate[17] = 999
	if tk.MatchesSamples(candidate) {
		t.Fatalf("expected sample mismatch at index 17 to be detected")
	}
}

func TestMatchesSamplesAcceptsExactMatch(t *testing.T) {
	tk := New(Count, 100)
	candidate := make([]int, 100)
	copy(candidate, tk.Solution)
	if !tk.MatchesSamples(candidate) {
		t.Fatalf("expected exact copy to match samples")
	}
}

func TestMatchesAllRejectsWrongLength(t *testing.T) {
	tk := New(Count, 100)
	if tk.MatchesAll([]int{1, 1, 1}) {
		t.Fatalf("expected length mismatch to fail MatchesAll")
	}
}

func TestMatchesAllAcceptsExactMatch(t *testing.T) {
	tk := New(Odd, 100)
	candidate := make([]int, 100)
	copy(candidate, tk.Solution)
	if !tk.MatchesAll(candidate) {
		t.Fatalf("expected exact copy to match fully")
	}
}

func TestFromStringRoundTrip(t *testing.T) {
	for k := Position; k <= NegativeOneTwoThree; k++ {
		parsed, ok := FromString(k.String())
		if !ok || parsed != k {
			t.Fatalf("FromString(%q) = %v, %v; want %v, true", k.String(), parsed, ok, k)
		}
	}
}

func TestFromStringRejectsUnknown(t *testing.T) {
	if _, ok := FromString("NOT_A_TASK"); ok {
		t.Fatalf("expected unknown task name to fail")
	}
}
