package literalhint

import (
	"testing"

	"github.com/coregx/rxcompile/pattern"
)

func TestBuildSmallAlternationNoAutomaton(t *testing.T) {
	tree := pattern.NewOrderedChoice(pattern.NewQuotedLiteral("foo"), pattern.NewQuotedLiteral("bar"))
	hint, err := Build(tree)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if hint == nil {
		t.Fatal("expected a non-nil hint")
	}
	if hint.Automaton != nil {
		t.Fatal("expected no automaton for a two-literal alternation")
	}
	if len(hint.Literals) != 2 {
		t.Fatalf("Literals = %v, want 2 entries", hint.Literals)
	}
}

func TestBuildLargeAlternationUsesAutomaton(t *testing.T) {
	choices := make([]*pattern.Node, 0, 20)
	words := []string{"apple", "banana", "cherry", "date", "elderberry", "fig", "grape",
		"honeydew", "kiwi", "lemon", "mango", "nectarine", "orange", "papaya", "quince",
		"raspberry", "strawberry", "tangerine", "ugli", "vanilla"}
	for _, w := range words {
		choices = append(choices, pattern.NewQuotedLiteral(w))
	}
	tree := pattern.NewOrderedChoice(choices...)

	hint, err := Build(tree)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if hint == nil || hint.Automaton == nil {
		t.Fatalf("expected an automaton for a %d-way alternation", len(words))
	}
	if !hint.Automaton.IsMatch([]byte("I ate a mango today")) {
		t.Fatal("expected automaton to match a known literal")
	}
	if hint.Automaton.IsMatch([]byte("nothing here matches")) {
		t.Fatal("expected automaton not to match unrelated text")
	}
	m := hint.Automaton.Find([]byte("I ate a mango today"), 0)
	if m == nil {
		t.Fatal("expected Find to report a match location")
	}
}

func TestBuildNoUsefulLiteral(t *testing.T) {
	tree := pattern.NewQuantification(0, pattern.Unbounded, pattern.QuantEager, pattern.NewDot())
	hint, err := Build(tree)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if hint != nil {
		t.Fatalf("expected nil hint for a bare `.*`, got %+v", hint)
	}
}

func TestBuildRequiredPrefix(t *testing.T) {
	tree := pattern.NewOrderedChoice(pattern.NewQuotedLiteral("fooAA"), pattern.NewQuotedLiteral("fooBB"))
	hint, err := Build(tree)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if hint == nil || string(hint.RequiredPrefix) != "foo" {
		t.Fatalf("RequiredPrefix = %q, want %q", hint.RequiredPrefix, "foo")
	}
}
