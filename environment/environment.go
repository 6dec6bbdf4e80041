// Package environment implements the Local, Adjacency and Global
// context variants a predicate checks around a target match (spec.md
// §4.4), plus the conjunction/disjunction group structure rule
// predicates use for their condition and exception sets.
package environment

import (
	"github.com/kathdragon/sce/pattern"
	"github.com/kathdragon/sce/word"
)

// Kind discriminates the Environment variants (spec.md §3).
type Kind uint8

const (
	// KindLocal is a left _ right environment anchored at the target.
	KindLocal Kind = iota
	// KindAdjacency is a ~pattern environment adjacent to the target.
	KindAdjacency
	// KindGlobal is an anywhere/at-index environment.
	KindGlobal
)

// Environment is one context a predicate may require or forbid.
type Environment struct {
	kind Kind

	left, right pattern.Pattern // Local
	adj         pattern.Pattern // Adjacency

	global  pattern.Pattern // Global
	indices []int           // Global; empty means "every index"
}

// Local returns a Local environment requiring left immediately before
// the target and right immediately after it.
func Local(left, right pattern.Pattern) Environment {
	return Environment{kind: KindLocal, left: left, right: right}
}

// Adjacency returns an Adjacency (~pattern) environment: p must match
// either immediately before or immediately after the target.
func Adjacency(p pattern.Pattern) Environment {
	return Environment{kind: KindAdjacency, adj: p}
}

// Global returns a Global environment: p must match starting at one of
// indices (or anywhere, if indices is empty).
func Global(p pattern.Pattern, indices []int) Environment {
	return Environment{kind: KindGlobal, global: p, indices: append([]int(nil), indices...)}
}

// Kind reports e's variant.
func (e Environment) Kind() Kind { return e.kind }

// resolveIndex turns a possibly-negative index into an absolute word
// position, the way a negative Python list index counts from the end.
func resolveIndex(i, wordLen int) (int, bool) {
	if i < 0 {
		i += wordLen
	}
	if i < 0 || i >= wordLen {
		return 0, false
	}
	return i, true
}

// Matches reports whether e holds around the match m, against w, given
// the catixes accumulated by matching the target itself. It returns
// the (possibly further-extended) catixes on success, per spec.md
// §4.4's propagation rule for Local environments.
func (e Environment) Matches(m *pattern.Matcher, w *word.Word, match pattern.Range, cix pattern.CatIxMap) (pattern.CatIxMap, bool) {
	switch e.kind {
	case KindLocal:
		_, leftCix, ok := m.Match(e.left, w, pattern.Stop(match.Start), cix)
		if !ok {
			return pattern.CatIxMap{}, false
		}
		_, rightCix, ok := m.Match(e.right, w, pattern.Start(match.Stop), leftCix)
		if !ok {
			return pattern.CatIxMap{}, false
		}
		return rightCix, true

	case KindAdjacency:
		if _, c, ok := m.Match(e.adj, w, pattern.Stop(match.Start), cix); ok {
			return c, true
		}
		if _, c, ok := m.Match(e.adj, w, pattern.Start(match.Stop), cix); ok {
			return c, true
		}
		return pattern.CatIxMap{}, false

	case KindGlobal:
		if len(e.indices) == 0 {
			for i := 0; i < w.Len(); i++ {
				if _, c, ok := m.Match(e.global, w, pattern.Start(i), cix); ok {
					return c, true
				}
			}
			return pattern.CatIxMap{}, false
		}
		for _, raw := range e.indices {
			i, ok := resolveIndex(raw, w.Len())
			if !ok {
				continue
			}
			if _, c, ok := m.Match(e.global, w, pattern.Start(i), cix); ok {
				return c, true
			}
		}
		return pattern.CatIxMap{}, false

	default:
		return pattern.CatIxMap{}, false
	}
}

// MatchAll returns every word index at which e would succeed as a
// Global-style destination set, used by Insert/Copy/Move to enumerate
// destinations (spec.md §4.4). For Local, the only meaningful "index"
// is the target's own start, so MatchAll is not defined for it here;
// callers only invoke MatchAll on Adjacency and Global environments,
// which Insert/Copy/Move's destination groups are restricted to.
func (e Environment) MatchAll(m *pattern.Matcher, w *word.Word, cix pattern.CatIxMap) []int {
	switch e.kind {
	case KindAdjacency:
		seen := make(map[int]bool)
		var out []int
		for i := 0; i <= w.Len(); i++ {
			if _, _, ok := m.Match(e.adj, w, pattern.Stop(i), cix); ok && !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
			if _, _, ok := m.Match(e.adj, w, pattern.Start(i), cix); ok && !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
		return out

	case KindGlobal:
		var out []int
		if len(e.indices) == 0 {
			for i := 0; i < w.Len(); i++ {
				if _, _, ok := m.Match(e.global, w, pattern.Start(i), cix); ok {
					out = append(out, i)
				}
			}
			return out
		}
		for _, raw := range e.indices {
			i, ok := resolveIndex(raw, w.Len())
			if !ok {
				continue
			}
			if _, _, ok := m.Match(e.global, w, pattern.Start(i), cix); ok {
				out = append(out, i)
			}
		}
		return out

	default:
		return nil
	}
}

// Group is a conjunction of Environments: all must match (spec.md
// §4.4 "conjunction groups"). An empty Group is vacuously true.
type Group []Environment

// Matches reports whether every environment in g holds, threading
// catixes from one to the next the way Local's left/right do.
func (g Group) Matches(m *pattern.Matcher, w *word.Word, match pattern.Range, cix pattern.CatIxMap) (pattern.CatIxMap, bool) {
	for _, e := range g {
		var ok bool
		cix, ok = e.Matches(m, w, match, cix)
		if !ok {
			return pattern.CatIxMap{}, false
		}
	}
	return cix, true
}

// MatchAll intersects the MatchAll sets of every environment in g
// (spec.md §4.4: "conjunction groups intersect their match_all sets").
// A Group containing a Local environment has no well-defined index
// set and is never used as a destination group.
func (g Group) MatchAll(m *pattern.Matcher, w *word.Word, cix pattern.CatIxMap) []int {
	if len(g) == 0 {
		return nil
	}
	result := g[0].MatchAll(m, w, cix)
	for _, e := range g[1:] {
		next := e.MatchAll(m, w, cix)
		nextSet := make(map[int]bool, len(next))
		for _, i := range next {
			nextSet[i] = true
		}
		var filtered []int
		for _, i := range result {
			if nextSet[i] {
				filtered = append(filtered, i)
			}
		}
		result = filtered
	}
	return result
}

// Groups is a disjunction of conjunction Groups (spec.md §4.4: "&
// conjoins environments ... , separates alternatives"). MatchesAny on
// an empty Groups list is false, since there is no group to satisfy;
// predicate.Match checks for empty conditions itself and accepts in
// that case.
type Groups []Group

// MatchesAny reports whether any group in gs matches.
func (gs Groups) MatchesAny(m *pattern.Matcher, w *word.Word, match pattern.Range, cix pattern.CatIxMap) bool {
	for _, g := range gs {
		if _, ok := g.Matches(m, w, match, cix); ok {
			return true
		}
	}
	return false
}
