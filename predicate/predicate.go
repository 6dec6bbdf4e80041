// Package predicate implements the right-hand side of a rule: the
// Subst, Insert, Copy and Move variants of spec.md §3/§4.5, each
// pairing a result-producing function with condition/exception
// environment groups.
package predicate

import (
	"sort"

	"github.com/kathdragon/sce/environment"
	"github.com/kathdragon/sce/pattern"
	"github.com/kathdragon/sce/word"
)

// Kind discriminates the Predicate variants.
type Kind uint8

const (
	// KindSubst replaces the target in place.
	KindSubst Kind = iota
	// KindInsert inserts the target's phones at computed destinations,
	// leaving the target itself untouched.
	KindInsert
	// KindCopy is identical to Insert (spec.md §3: "same edits as Insert").
	KindCopy
	// KindMove deletes the target, then inserts it at computed
	// destinations.
	KindMove
)

// Predicate is one right-hand side a Rule may choose among.
type Predicate struct {
	kind Kind

	replacements []pattern.Pattern  // Subst
	destinations environment.Groups // Insert, Copy, Move

	conditions environment.Groups
	exceptions environment.Groups
}

// Subst returns a substitution predicate: replacements[i mod
// len(replacements)] resolved against the target, in place.
func Subst(replacements []pattern.Pattern, conditions, exceptions environment.Groups) Predicate {
	return Predicate{kind: KindSubst, replacements: replacements, conditions: conditions, exceptions: exceptions}
}

// Insert returns an insertion predicate: the target's own phones,
// inserted (without removing the target) at every position in the
// destinations[i mod len(destinations)] conjunction group's MatchAll
// set.
func Insert(destinations environment.Groups, conditions, exceptions environment.Groups) Predicate {
	return Predicate{kind: KindInsert, destinations: destinations, conditions: conditions, exceptions: exceptions}
}

// Copy returns a copy predicate, identical in effect to Insert.
func Copy(destinations environment.Groups, conditions, exceptions environment.Groups) Predicate {
	return Predicate{kind: KindCopy, destinations: destinations, conditions: conditions, exceptions: exceptions}
}

// Move returns a move predicate: deletes the target, then inserts it
// at the destinations, the same way Insert would.
func Move(destinations environment.Groups, conditions, exceptions environment.Groups) Predicate {
	return Predicate{kind: KindMove, destinations: destinations, conditions: conditions, exceptions: exceptions}
}

// Kind reports p's variant.
func (p Predicate) Kind() Kind { return p.kind }

// Change is one edit a predicate emits: replace the phones in
// [Range.Start, Range.Stop) with Phones. A zero-width Range (Start ==
// Stop) is a pure insertion.
type Change struct {
	Range  pattern.Range
	Phones pattern.Phones
}

// Match reports whether p applies at match, per spec.md §4.5: any
// matching exception group rejects; otherwise any matching condition
// group (or no conditions at all) accepts.
func (p Predicate) Match(m *pattern.Matcher, w *word.Word, match pattern.Range, cix pattern.CatIxMap) bool {
	if p.exceptions.MatchesAny(m, w, match, cix) {
		return false
	}
	if len(p.conditions) == 0 {
		return true
	}
	return p.conditions.MatchesAny(m, w, match, cix)
}

// GetChanges computes the edits p would make for a validated target
// match, selecting replacement/destination group i mod n, where i is
// the index, within the rule's target list, of the Target that
// produced match (spec.md §4.5/§4.6:
// "replacements[i mod |replacements|]", "i mod |destinations|-th
// conjunction group").
func (p Predicate) GetChanges(m *pattern.Matcher, w *word.Word, match pattern.Range, cix pattern.CatIxMap, i int) ([]Change, error) {
	switch p.kind {
	case KindSubst:
		return p.substChanges(m, w, match, cix, i)
	case KindInsert, KindCopy:
		return p.insertChanges(m, w, match, cix, i), nil
	case KindMove:
		changes := []Change{{Range: match, Phones: nil}}
		return append(changes, p.insertChanges(m, w, match, cix, i)...), nil
	default:
		return nil, nil
	}
}

func (p Predicate) substChanges(m *pattern.Matcher, w *word.Word, match pattern.Range, cix pattern.CatIxMap, i int) ([]Change, error) {
	replacement := p.replacements[i%len(p.replacements)]
	resolved := pattern.Resolve(replacement, w.Slice(match.Start, match.Stop))

	last := word.Boundary
	if match.Start > 0 {
		last = w.At(match.Start - 1)
	}
	phones, err := pattern.AsPhones(resolved, last, cix, m.Categories)
	if err != nil {
		return nil, err
	}
	return []Change{{Range: match, Phones: phones}}, nil
}

func (p Predicate) insertChanges(m *pattern.Matcher, w *word.Word, match pattern.Range, cix pattern.CatIxMap, i int) []Change {
	group := p.destinations[i%len(p.destinations)]
	destinations := append([]int(nil), group.MatchAll(m, w, cix)...)
	sort.Ints(destinations)

	content := pattern.Phones(w.Slice(match.Start, match.Stop))
	changes := make([]Change, 0, len(destinations))
	for _, d := range destinations {
		changes = append(changes, Change{Range: pattern.Range{Start: d, Stop: d}, Phones: content})
	}
	return changes
}

// Verify reports whether a predicate's total edit is acceptable given
// the word's length before and after applying it. Every predicate but
// Move is unconditionally acceptable; Move rejects change-sets that
// don't grow the word by at least two phones (spec.md §4.5: "requires new > old+1,
// ensuring that a Move producing no net new insertions is rejected").
func (p Predicate) Verify(oldLen, newLen int) bool {
	if p.kind == KindMove {
		return newLen > oldLen+1
	}
	return true
}
