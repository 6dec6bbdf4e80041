// Scenario-level tests for Rule.Apply: six worked scenarios
// (substitution, conditioned substitution, a category-subscripted
// condition, insertion, deletion, RTL overlap ordering) plus the
// ambient error/flag behaviour those scenarios don't cover on their
// own.
package rule

import (
	"errors"
	"testing"

	"github.com/kathdragon/sce/category"
	"github.com/kathdragon/sce/engine"
	"github.com/kathdragon/sce/environment"
	"github.com/kathdragon/sce/pattern"
	"github.com/kathdragon/sce/predicate"
	"github.com/kathdragon/sce/word"
)

func wordOf(ss ...string) *word.Word {
	phones := make([]word.Phone, len(ss))
	for i, s := range ss {
		phones[i] = word.Phone(s)
	}
	return word.NewWord(phones, nil, "")
}

func wordString(w *word.Word) string {
	s := ""
	for i := 0; i < w.Len(); i++ {
		s += string(w.At(i))
	}
	return s
}

func newMatcher(cats *category.Store) *pattern.Matcher {
	if cats == nil {
		cats = category.NewStore()
	}
	return &pattern.Matcher{Categories: cats, MaxWork: 1 << 16}
}

// Scenario 1: unconditional substitution. p -> b / anywhere.
func TestScenarioUnconditionalSubst(t *testing.T) {
	w := wordOf("#", "p", "a", "p", "a", "#")
	m := newMatcher(nil)
	r := Rule{
		Targets:    []Target{{Pattern: pattern.Pattern{pattern.Grapheme("p")}}},
		Predicates: []predicate.Predicate{predicate.Subst([]pattern.Pattern{{pattern.Grapheme("b")}}, nil, nil)},
		Flags:      DefaultFlags(),
	}
	got, err := r.Apply(w, m, engine.NewConfig(1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if wordString(got) != "#baba#" {
		t.Fatalf("got %q, want #baba#", wordString(got))
	}
}

// Scenario 2: conditioned substitution. a -> e / p_p (only the first a
// qualifies; the second is followed by #).
func TestScenarioConditionedSubst(t *testing.T) {
	w := wordOf("#", "p", "a", "p", "a", "#")
	m := newMatcher(nil)
	cond := environment.Groups{{
		environment.Local(pattern.Pattern{pattern.Grapheme("p")}, pattern.Pattern{pattern.Grapheme("p")}),
	}}
	r := Rule{
		Targets:    []Target{{Pattern: pattern.Pattern{pattern.Grapheme("a")}}},
		Predicates: []predicate.Predicate{predicate.Subst([]pattern.Pattern{{pattern.Grapheme("e")}}, cond, nil)},
		Flags:      DefaultFlags(),
	}
	got, err := r.Apply(w, m, engine.NewConfig(1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if wordString(got) != "#pepa#" {
		t.Fatalf("got %q, want #pepa#", wordString(got))
	}
}

// Scenario 3: a category-subscripted condition. Every vowel is a
// target, but the condition V[1] t _ only holds for a vowel preceded
// by another vowel and a t; the replacement is the target itself, so
// the word comes out unchanged.
func TestScenarioCategorySubscriptCondition(t *testing.T) {
	vowels := category.New([]word.Phone{"a", "e", "i", "o", "u"}).Named("V")
	store := category.NewStore()
	vid := store.Add(vowels)
	m := newMatcher(store)

	w := wordOf("#", "a", "t", "e", "#")
	cond := environment.Groups{{
		environment.Local(pattern.Pattern{pattern.CategoryRef(vid, 1), pattern.Grapheme("t")}, nil),
	}}
	r := Rule{
		Targets:    []Target{{Pattern: pattern.Pattern{pattern.CategoryRef(vid, 0)}}},
		Predicates: []predicate.Predicate{predicate.Subst([]pattern.Pattern{{pattern.TargetRefElement(1)}}, cond, nil)},
		Flags:      DefaultFlags(),
	}
	// Note: the target's catixes (subscript 0) are passed on into the
	// condition, which binds its own subscript 1; the two subscripts
	// never constrain each other here. This exercises TargetRef
	// resolution against the target's own match.
	got, err := r.Apply(w, m, engine.NewConfig(1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// The target pattern binds subscript 0 to whichever vowel it finds;
	// TargetRef(1) in the replacement is the target's own phones in
	// forward order, so the one validated target (the e) is replaced by
	// itself -- a no-op identity substitution.
	if wordString(got) != "#ate#" {
		t.Fatalf("got %q, want #ate# (identity substitution)", wordString(got))
	}
}

// Scenario 4: insertion before the closing boundary (a Global
// destination with the explicit index -1, the word's last position).
func TestScenarioInsertion(t *testing.T) {
	w := wordOf("#", "k", "a", "t", "#")
	m := newMatcher(nil)
	dest := environment.Groups{{environment.Global(pattern.Pattern{}, []int{-1})}}
	r := Rule{
		Targets:    []Target{{Pattern: pattern.Pattern{pattern.Grapheme("t")}}},
		Predicates: []predicate.Predicate{predicate.Insert(dest, nil, nil)},
		Flags:      DefaultFlags(),
	}
	got, err := r.Apply(w, m, engine.NewConfig(1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if wordString(got) != "#katt#" {
		t.Fatalf("got %q, want #katt# (t copied to the end)", wordString(got))
	}
}

// Scenario 5: deletion via empty substitution.
func TestScenarioDeletion(t *testing.T) {
	w := wordOf("#", "k", "a", "h", "t", "#")
	m := newMatcher(nil)
	r := Rule{
		Targets:    []Target{{Pattern: pattern.Pattern{pattern.Grapheme("h")}}},
		Predicates: []predicate.Predicate{predicate.Subst([]pattern.Pattern{{}}, nil, nil)},
		Flags:      DefaultFlags(),
	}
	got, err := r.Apply(w, m, engine.NewConfig(1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if wordString(got) != "#kat#" {
		t.Fatalf("got %q, want #kat#", wordString(got))
	}
}

// Scenario 6: RTL ordering changes which overlapping match wins.
// Two overlapping "aa" targets inside "aaa" (positions [0,2) and
// [1,3)): LTR keeps the first, RTL keeps the second (by Start order
// reversed via Stop-descending then overlap rejection keeps whichever
// comes first in processing order).
func TestScenarioRTLOrderingChangesWinner(t *testing.T) {
	w := wordOf("a", "a", "a")
	m := newMatcher(nil)
	target := Target{Pattern: pattern.Pattern{pattern.Grapheme("a"), pattern.Grapheme("a")}}

	ltr := Rule{
		Targets:    []Target{target},
		Predicates: []predicate.Predicate{predicate.Subst([]pattern.Pattern{{pattern.Grapheme("b")}}, nil, nil)},
		Flags:      DefaultFlags(),
	}
	gotLTR, err := ltr.Apply(w, m, engine.NewConfig(1))
	if err != nil {
		t.Fatalf("Apply (LTR): %v", err)
	}

	rtl := ltr
	rtl.Flags.RTL = true
	gotRTL, err := rtl.Apply(w, m, engine.NewConfig(1))
	if err != nil {
		t.Fatalf("Apply (RTL): %v", err)
	}

	if wordString(gotLTR) == wordString(gotRTL) {
		t.Fatalf("expected LTR and RTL to pick different overlapping matches, both got %q", wordString(gotLTR))
	}
}

func TestNoTargetsFoundReturnsErrorWithoutIgnore(t *testing.T) {
	w := wordOf("#", "a", "#")
	m := newMatcher(nil)
	r := Rule{
		Targets:    []Target{{Pattern: pattern.Pattern{pattern.Grapheme("z")}}},
		Predicates: []predicate.Predicate{predicate.Subst([]pattern.Pattern{{pattern.Grapheme("y")}}, nil, nil)},
		Flags:      DefaultFlags(),
	}
	_, err := r.Apply(w, m, engine.NewConfig(1))
	if !errors.Is(err, ErrNoTargetsFound) {
		t.Fatalf("err = %v, want ErrNoTargetsFound", err)
	}
}

func TestIgnoreFlagSwallowsNoTargetsFound(t *testing.T) {
	w := wordOf("#", "a", "#")
	m := newMatcher(nil)
	r := Rule{
		Targets:    []Target{{Pattern: pattern.Pattern{pattern.Grapheme("z")}}},
		Predicates: []predicate.Predicate{predicate.Subst([]pattern.Pattern{{pattern.Grapheme("y")}}, nil, nil)},
		Flags:      Flags{Ignore: true, Repeat: 1, Persist: 1, Chance: 100},
	}
	got, err := r.Apply(w, m, engine.NewConfig(1))
	if err != nil {
		t.Fatalf("Apply with Ignore: %v", err)
	}
	if wordString(got) != "#a#" {
		t.Fatalf("got %q, want unchanged #a#", wordString(got))
	}
}

func TestChanceZeroAlwaysSkips(t *testing.T) {
	w := wordOf("#", "a", "#")
	m := newMatcher(nil)
	r := Rule{
		Targets:    []Target{{Pattern: pattern.Pattern{pattern.Grapheme("a")}}},
		Predicates: []predicate.Predicate{predicate.Subst([]pattern.Pattern{{pattern.Grapheme("e")}}, nil, nil)},
		Flags:      Flags{Repeat: 1, Persist: 1, Chance: 0},
	}
	_, err := r.Apply(w, m, engine.NewConfig(1))
	if !errors.Is(err, ErrRuleRandomlySkipped) {
		t.Fatalf("err = %v, want ErrRuleRandomlySkipped", err)
	}
}

func TestRepeatAppliesUntilStable(t *testing.T) {
	// a -> "" deletes every non-overlapping "a" in a single pass, so
	// applying it to "aaa" empties the word on the first of its (up to)
	// 3 repeats; the second repeat finds no targets in the empty word,
	// and Ignore turns that into a return of the empty word.
	w := wordOf("a", "a", "a")
	m := newMatcher(nil)
	r := Rule{
		Targets:    []Target{{Pattern: pattern.Pattern{pattern.Grapheme("a")}}},
		Predicates: []predicate.Predicate{predicate.Subst([]pattern.Pattern{{}}, nil, nil)},
		Flags:      Flags{Repeat: 3, Persist: 1, Chance: 100, Ignore: true},
	}
	got, err := r.Apply(w, m, engine.NewConfig(1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if wordString(got) != "" {
		t.Fatalf("got %q, want empty word after repeated deletion", wordString(got))
	}
}

func TestTargetIndicesFiltersMatches(t *testing.T) {
	// Three "a"s in a row; restrict the target to only its second match
	// (index 1).
	w := wordOf("a", "a", "a")
	m := newMatcher(nil)
	r := Rule{
		Targets: []Target{{Pattern: pattern.Pattern{pattern.Grapheme("a")}, Indices: []int{1}}},
		Predicates: []predicate.Predicate{
			predicate.Subst([]pattern.Pattern{{pattern.Grapheme("b")}}, nil, nil),
		},
		Flags: DefaultFlags(),
	}
	got, err := r.Apply(w, m, engine.NewConfig(1))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if wordString(got) != "aba" {
		t.Fatalf("got %q, want aba (only the middle a substituted)", wordString(got))
	}
}
