package runner

import (
	"strings"
	"testing"
)

func TestMinimizeDropsUnrelatedFragments(t *testing.T) {
	failing := func(s string) bool { return strings.Contains(s, "darwin") }

	shrunk, steps := Minimize("x86_64-darwin-20-gnu", failing, 1000, nil)
	if shrunk != "darwin" {
		t.Fatalf("expected %q, got %q", "darwin", shrunk)
	}
	if steps == 0 {
		t.Fatalf("expected at least one accepted reduction")
	}
	if !failing(shrunk) {
		t.Fatalf("shrunk candidate %q no longer fails", shrunk)
	}
}

func TestMinimizeTruncatesFragments(t *testing.T) {
	failing := func(s string) bool { return len(s) >= 3 }

	shrunk, steps := Minimize("abcdef", failing, 1000, nil)
	if shrunk != "abc" {
		t.Fatalf("expected %q, got %q", "abc", shrunk)
	}
	if steps != 1 {
		t.Fatalf("expected 1 accepted reduction, got %d", steps)
	}
}

func TestMinimizeRespectsBudget(t *testing.T) {
	calls := 0
	failing := func(string) bool {
		calls++
		return true
	}

	shrunk, steps := Minimize("a-b-c-d", failing, 0, nil)
	if shrunk != "a-b-c-d" {
		t.Fatalf("budget 0 must return the original candidate, got %q", shrunk)
	}
	if steps != 0 || calls != 0 {
		t.Fatalf("budget 0 must not invoke the checker, steps=%d calls=%d", steps, calls)
	}
}

func TestMinimizeObservesAcceptedReductions(t *testing.T) {
	failing := func(s string) bool { return strings.Contains(s, "z") }

	var seen []string
	shrunk, steps := Minimize("aa-z-bb", failing, 1000, func(c string) {
		seen = append(seen, c)
	})
	if shrunk != "z" {
		t.Fatalf("expected %q, got %q", "z", shrunk)
	}
	if len(seen) != steps {
		t.Fatalf("observer saw %d reductions, Minimize reported %d", len(seen), steps)
	}
	if seen[len(seen)-1] != shrunk {
		t.Fatalf("last observed reduction %q is not the final result %q", seen[len(seen)-1], shrunk)
	}
}
