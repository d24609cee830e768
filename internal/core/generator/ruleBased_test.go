package generator

import (
	"testing"

	"passwordSimBackend/internal/core/domain"
)

func TestRuleBased_Deterministic(t *testing.T) {
	first, err := collect(t, NewRuleBased())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := collect(t, NewRuleBased())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("candidate at %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestRuleBased_RuleMajorOrdering(t *testing.T) {
	results, err := collect(t, NewRuleBased())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no candidates generated")
	}

	// Common patterns run first; the first sequential digit run is 0123.
	if results[0] != "0123" {
		t.Errorf("first candidate = %q, want %q", results[0], "0123")
	}

	// Leet speak is the last category.
	if results[len(results)-1] != Leetify("test") {
		t.Errorf("last candidate = %q, want %q", results[len(results)-1], Leetify("test"))
	}
}

func TestRuleBased_ContainsExpectedPatterns(t *testing.T) {
	results, err := collect(t, NewRuleBased())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool, len(results))
	for _, candidate := range results {
		seen[candidate] = true
	}

	for _, want := range []string{"qwerty", "asdf", "2024", "admin1", "p455w0rd", "1111"} {
		if !seen[want] {
			t.Errorf("expected candidate %q not generated", want)
		}
	}
}

func TestLeetify(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"password", "p455w0rd"},
		{"test", "7357"},
		{"xyz", "xyz"},
	}

	for _, tt := range tests {
		if got := Leetify(tt.word); got != tt.want {
			t.Errorf("Leetify(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestRuleBased_Name(t *testing.T) {
	r := NewRuleBased()
	if r.Name() != domain.MethodRuleBased {
		t.Errorf("Name() = %v, want %v", r.Name(), domain.MethodRuleBased)
	}
}
