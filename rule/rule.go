// Package rule implements the sound-change engine's rule-application
// pipeline: target enumeration, ordering, overlap-aware validation
// against predicates, change-set assembly, and atomic word rewrite
// (spec.md §4.6).
package rule

import (
	"sort"

	"github.com/kathdragon/sce/engine"
	"github.com/kathdragon/sce/pattern"
	"github.com/kathdragon/sce/predicate"
	"github.com/kathdragon/sce/word"
)

// Target is a pattern whose matches are candidates for rewriting, plus
// an optional filter over which of its matches are used (spec.md §3,
// supplemented feature C.1: negative indices count from the end of
// this target's match list, out-of-range indices are dropped).
type Target struct {
	Pattern pattern.Pattern
	Indices []int
}

// Flags is the immutable per-rule behaviour record of spec.md §3.
// Ditto and Stop are ternary (-1, 0, +1): 0 means the gate is
// inactive; +1/-1 select which outcome of the previous/this
// application the gate requires.
type Flags struct {
	Ignore  bool
	Ditto   int
	Stop    int
	RTL     bool
	Repeat  int
	Persist int
	Chance  int
}

// DefaultFlags returns the flags of a rule with no special behaviour:
// applies exactly once, every time, is never persisted into a block's
// replay list, and never gates on ditto/stop. Construct Flags via this
// rather than a zero-valued literal, the same way the teacher favours
// DefaultConfig() over a bare Config{} (see meta/config.go).
func DefaultFlags() Flags {
	return Flags{Repeat: 1, Persist: 1, Chance: 100}
}

// Rule is a stateless target/predicate pairing; Apply is a pure
// function of the rule and the input word (spec.md §3).
type Rule struct {
	Name       string
	Targets    []Target
	Predicates []predicate.Predicate
	Flags      Flags
}

// taggedMatch is one candidate target match, tagged with which Target
// produced it.
type taggedMatch struct {
	Range       pattern.Range
	Cix         pattern.CatIxMap
	TargetIndex int
}

// findTargets implements spec.md §4.6 Phase 1.
func findTargets(m *pattern.Matcher, w *word.Word, targets []Target) ([]taggedMatch, error) {
	var all []taggedMatch
	for ti, t := range targets {
		matches := findOneTarget(m, w, t)
		for _, mm := range matches {
			all = append(all, taggedMatch{Range: mm.Range, Cix: mm.Cix, TargetIndex: ti})
		}
	}
	if len(all) == 0 {
		return nil, ErrNoTargetsFound
	}
	return all, nil
}

type rawMatch struct {
	Range pattern.Range
	Cix   pattern.CatIxMap
}

func findOneTarget(m *pattern.Matcher, w *word.Word, t Target) []rawMatch {
	var matches []rawMatch

	if len(t.Pattern) == 0 {
		// Open Question decision (SPEC_FULL.md §D.1): an empty pattern
		// yields one slice(i,i) for every i in [1, |word|), slice(0,0)
		// explicitly excluded.
		for i := 1; i < w.Len(); i++ {
			matches = append(matches, rawMatch{Range: pattern.Range{Start: i, Stop: i}})
		}
	} else {
		for start := 0; start < w.Len(); start++ {
			rng, cix, ok := m.Match(t.Pattern, w, pattern.Start(start), pattern.CatIxMap{})
			if !ok {
				continue
			}
			if rng.IsEmpty() && rng.Start == 0 {
				continue
			}
			matches = append(matches, rawMatch{Range: rng, Cix: cix})
		}
	}

	if len(t.Indices) == 0 {
		return matches
	}
	var filtered []rawMatch
	for _, idx := range t.Indices {
		i := idx
		if i < 0 {
			i += len(matches)
		}
		if i < 0 || i >= len(matches) {
			continue
		}
		filtered = append(filtered, matches[i])
	}
	return filtered
}

// order implements spec.md §4.6 Phase 2.
func order(matches []taggedMatch, rtl bool) {
	if rtl {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Range.Stop > matches[j].Range.Stop
		})
		return
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Range.Start < matches[j].Range.Start
	})
}

// overlaps implements spec.md §4.6's overlap rule: true when either
// interval's interior contains the other's start, or the two intervals
// start at the same index with identical emptiness. This already
// covers "empty matches overlap only when identical or strictly
// contained in a non-empty range": an empty range's interior is empty,
// so "b.Start strictly inside a" only fires when a is non-empty, and
// "same start, same emptiness" is exactly the identical-empty-ranges
// case.
func overlaps(a, b pattern.Range) bool {
	interiorContains := func(r pattern.Range, pos int) bool {
		return pos > r.Start && pos < r.Stop
	}
	if interiorContains(a, b.Start) || interiorContains(b, a.Start) {
		return true
	}
	return a.Start == b.Start && a.IsEmpty() == b.IsEmpty()
}

// validatedMatch is a target match paired with the predicate chosen
// for it (spec.md §4.6 Phase 3).
type validatedMatch struct {
	taggedMatch
	PredIndex int
}

func validate(m *pattern.Matcher, w *word.Word, matches []taggedMatch, predicates []predicate.Predicate) ([]validatedMatch, error) {
	var validated []validatedMatch
	for _, cand := range matches {
		if len(validated) > 0 && overlaps(cand.Range, validated[len(validated)-1].Range) {
			continue
		}
		for pi, pred := range predicates {
			if pred.Match(m, w, cand.Range, cand.Cix) {
				validated = append(validated, validatedMatch{taggedMatch: cand, PredIndex: pi})
				break
			}
		}
	}
	if len(validated) == 0 {
		return nil, ErrNoTargetsValidated
	}
	return validated, nil
}

// buildAndApply implements spec.md §4.6 Phase 4.
func buildAndApply(m *pattern.Matcher, w *word.Word, validated []validatedMatch, predicates []predicate.Predicate) (*word.Word, error) {
	var queued []predicate.Change
	for _, vm := range validated {
		pred := predicates[vm.PredIndex]
		changes, err := pred.GetChanges(m, w, vm.Range, vm.Cix, vm.TargetIndex)
		if err != nil {
			return nil, err
		}

		var accepted []predicate.Change
		for _, ch := range changes {
			conflict := false
			for _, q := range queued {
				if overlaps(ch.Range, q.Range) {
					conflict = true
					break
				}
			}
			if !conflict {
				accepted = append(accepted, ch)
			}
		}

		removed, added := 0, 0
		for _, ch := range accepted {
			removed += ch.Range.Len()
			added += ch.Phones.Len()
		}
		lenAfter := w.Len() - removed + added
		if !pred.Verify(w.Len(), lenAfter) {
			continue
		}
		queued = append(queued, accepted...)
	}

	sort.SliceStable(queued, func(i, j int) bool {
		if queued[i].Range.Stop != queued[j].Range.Stop {
			return queued[i].Range.Stop > queued[j].Range.Stop
		}
		return queued[i].Range.Start > queued[j].Range.Start
	})

	result := w
	for _, ch := range queued {
		result = result.Replace(ch.Range.Start, ch.Range.Stop, ch.Phones)
	}
	return result, nil
}

// applyOnce runs the four-phase pipeline a single time, with no
// chance/repeat handling.
func (r *Rule) applyOnce(m *pattern.Matcher, w *word.Word) (*word.Word, error) {
	matches, err := findTargets(m, w, r.Targets)
	if err != nil {
		return w, err
	}
	order(matches, r.Flags.RTL)
	validated, err := validate(m, w, matches, r.Predicates)
	if err != nil {
		return w, err
	}
	return buildAndApply(m, w, validated, r.Predicates)
}

// sameWord reports whether a and b hold the same phone sequence.
func sameWord(a, b *word.Word) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			return false
		}
	}
	return true
}

// Apply runs the rule against w using m to evaluate its patterns: the
// chance gate, then up to Flags.Repeat applications of the four-phase
// pipeline, stopping early if an application leaves the word unchanged
// (spec.md §4.6's closing paragraph, describing "Rule::__call__").
//
// When Flags.Ignore is set, a DidNotApply condition (no targets found,
// no targets validated, or chance-skipped) is swallowed and w is
// returned unchanged instead of erroring -- supplemented feature C.2.
// Without Ignore, the error is returned to the caller.
func (r *Rule) Apply(w *word.Word, m *pattern.Matcher, cfg *engine.Config) (*word.Word, error) {
	if r.Flags.Chance < 100 {
		roll := cfg.Rng().Intn(100) + 1
		if roll > r.Flags.Chance {
			if r.Flags.Ignore {
				return w, nil
			}
			return w, ErrRuleRandomlySkipped
		}
	}

	repeat := r.Flags.Repeat
	if repeat <= 0 {
		repeat = 1
	}

	cur := w
	for k := 0; k < repeat; k++ {
		next, err := r.applyOnce(m, cur)
		if err != nil {
			if _, ok := err.(DidNotApply); ok && r.Flags.Ignore {
				return cur, nil
			}
			return cur, err
		}
		if sameWord(next, cur) {
			return next, nil
		}
		cur = next
	}
	return cur, nil
}
