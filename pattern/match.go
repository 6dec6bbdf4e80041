package pattern

import (
	"github.com/kathdragon/sce/category"
	"github.com/kathdragon/sce/word"
)

// Dir selects anchor-forward or anchor-backward evaluation (spec.md
// §4.3): forward walks elements left-to-right advancing a start
// position; backward walks them right-to-left retreating a stop
// position. Exactly one of the two is active per Match call.
type Dir int8

const (
	// Forward anchors on a start position and consumes rightward.
	Forward Dir = 1
	// Backward anchors on a stop position and consumes leftward.
	Backward Dir = -1
)

// Anchor is the matcher's single entry point: a position and the
// direction it anchors.
type Anchor struct {
	Dir Dir
	Pos int
}

// Start returns a forward anchor at word position i.
func Start(i int) Anchor { return Anchor{Dir: Forward, Pos: i} }

// Stop returns a backward anchor at word position i.
func Stop(i int) Anchor { return Anchor{Dir: Backward, Pos: i} }

// Range is a half-open match span [Start, Stop) over word positions
// (spec.md §3).
type Range struct {
	Start, Stop int
}

// Len returns the number of phones covered by r.
func (r Range) Len() int { return r.Stop - r.Start }

// IsEmpty reports whether r covers zero phones.
func (r Range) IsEmpty() bool { return r.Start == r.Stop }

// Matcher evaluates Patterns against a Word. It holds the category
// store patterns reference by handle (spec.md §9: "never embed them by
// value into patterns") and the per-call backtracking work limit.
type Matcher struct {
	Categories *category.Store
	// MaxWork bounds the number of evaluation steps per Match call. If
	// zero, DefaultMaxWork is used.
	MaxWork int
}

// DefaultMaxWork is used when Matcher.MaxWork is unset.
const DefaultMaxWork = 1 << 20

// NewMatcher returns a Matcher over the given category store with the
// default work budget.
func NewMatcher(categories *category.Store) *Matcher {
	return &Matcher{Categories: categories, MaxWork: DefaultMaxWork}
}

// Match is the public surface named in spec.md §4.3:
// match(word, anchor, catixes?) → Option<(Range, CatIxMap)>. Failure
// returns ok=false and is not an error -- spec.md §7 requires match
// failure to be a value, not an exception, at this boundary.
func (m *Matcher) Match(p Pattern, w *word.Word, a Anchor, cix CatIxMap) (Range, CatIxMap, bool) {
	budget := NewBudget(m.maxWork())
	newPos, newCix, ok := m.evaluate(p, w, a.Pos, cix, a.Dir, budget)
	if !ok {
		return Range{}, CatIxMap{}, false
	}
	switch a.Dir {
	case Forward:
		return Range{Start: a.Pos, Stop: newPos}, newCix, true
	default:
		return Range{Start: newPos, Stop: a.Pos}, newCix, true
	}
}

func (m *Matcher) maxWork() int {
	if m.MaxWork <= 0 {
		return DefaultMaxWork
	}
	return m.MaxWork
}

// evaluate walks elems in the direction given, advancing/retreating
// pos, until it either runs out of elements (success) or hands control
// to a branching element's handler along with the remaining elements
// ("rest"). It is the single recursive core shared by forward and
// backward evaluation, per spec.md §4.3's "mirror of the above".
func (m *Matcher) evaluate(elems []Element, w *word.Word, pos int, cix CatIxMap, dir Dir, budget *Budget) (int, CatIxMap, bool) {
	if !budget.Take() {
		return 0, CatIxMap{}, false
	}

	if dir == Forward {
		for i := 0; i < len(elems); i++ {
			e := elems[i]
			if e.branching() {
				return m.matchBranch(e, elems[i+1:], w, pos, cix, dir, budget)
			}
			newPos, newCix, ok := m.matchFixed(e, w, pos, cix, dir, budget)
			if !ok {
				return 0, CatIxMap{}, false
			}
			pos, cix = newPos, newCix
		}
		return pos, cix, true
	}

	for i := len(elems) - 1; i >= 0; i-- {
		e := elems[i]
		if e.branching() {
			return m.matchBranch(e, elems[:i], w, pos, cix, dir, budget)
		}
		newPos, newCix, ok := m.matchFixed(e, w, pos, cix, dir, budget)
		if !ok {
			return 0, CatIxMap{}, false
		}
		pos, cix = newPos, newCix
	}
	return pos, cix, true
}

// phoneAt returns the phone that would next be consumed at pos in
// direction dir, its absolute word index, and the position after
// consuming it.
func phoneAt(w *word.Word, pos int, dir Dir) (ph word.Phone, idx int, newPos int, ok bool) {
	newPos, ok = advance(w, pos, 1, dir)
	if !ok {
		return "", 0, pos, false
	}
	if dir == Forward {
		return w.At(pos), pos, newPos, true
	}
	return w.At(newPos), newPos, newPos, true
}

// advance performs the bounds check named in spec.md §4.3: forward
// requires start+len <= |word|, backward requires stop-len >= 0.
func advance(w *word.Word, pos, length int, dir Dir) (int, bool) {
	if dir == Forward {
		if pos+length > w.Len() {
			return pos, false
		}
		return pos + length, true
	}
	if pos-length < 0 {
		return pos, false
	}
	return pos - length, true
}

// matchFixed matches the non-branching element kinds: Grapheme, Ditto,
// CategoryRef, Repetition and SylBreak. TargetRef must already have
// been resolved away ([Resolve]); encountering one here is a
// programming error in the caller, not a match failure (spec.md §3:
// "forbidden inside match-time evaluation").
func (m *Matcher) matchFixed(e Element, w *word.Word, pos int, cix CatIxMap, dir Dir, budget *Budget) (int, CatIxMap, bool) {
	switch e.kind {
	case KindGrapheme:
		ph, _, newPos, ok := phoneAt(w, pos, dir)
		if !ok || ph != e.phone {
			return 0, CatIxMap{}, false
		}
		return newPos, cix, true

	case KindSylBreak:
		ph, _, newPos, ok := phoneAt(w, pos, dir)
		if !ok || ph != word.SylBreak {
			return 0, CatIxMap{}, false
		}
		return newPos, cix, true

	case KindDitto:
		ph, idx, newPos, ok := phoneAt(w, pos, dir)
		if !ok || idx < 1 {
			return 0, CatIxMap{}, false
		}
		if ph != w.At(idx-1) {
			return 0, CatIxMap{}, false
		}
		return newPos, cix, true

	case KindCategoryRef:
		ph, _, newPos, ok := phoneAt(w, pos, dir)
		if !ok {
			return 0, CatIxMap{}, false
		}
		cat := m.Categories.Get(e.cat)
		catIdx, found := cat.IndexOf(ph)
		if !found {
			return 0, CatIxMap{}, false
		}
		if e.sub == NoSubscript {
			return newPos, cix, true
		}
		if bound, has := cix.Get(e.sub); has {
			if bound != catIdx {
				return 0, CatIxMap{}, false
			}
			return newPos, cix, true
		}
		return newPos, cix.With(e.sub, catIdx), true

	case KindRepetition:
		for k := 0; k < e.n; k++ {
			newPos, newCix, ok := m.evaluate(e.inner, w, pos, cix, dir, budget)
			if !ok {
				return 0, CatIxMap{}, false
			}
			pos, cix = newPos, newCix
		}
		return pos, cix, true

	case KindTargetRef:
		panic("pattern: unresolved TargetRef reached match time; call Resolve first")

	default:
		panic("pattern: matchFixed called on a branching element kind " + e.kind.String())
	}
}

// matchBranch dispatches the three branching element kinds, each of
// which is handed "rest" (the remaining elements after it, in
// evaluation order) and is responsible for matching both itself and
// rest, per spec.md §4.3's branching-element table.
func (m *Matcher) matchBranch(e Element, rest []Element, w *word.Word, pos int, cix CatIxMap, dir Dir, budget *Budget) (int, CatIxMap, bool) {
	switch e.kind {
	case KindWildcard:
		consume := func(p int, c CatIxMap) (int, CatIxMap, bool) {
			ph, _, newPos, ok := phoneAt(w, p, dir)
			if !ok {
				return 0, CatIxMap{}, false
			}
			if !e.extended && ph == word.Boundary {
				return 0, CatIxMap{}, false
			}
			return newPos, c, true
		}
		return m.matchOneOrMore(rest, w, pos, cix, dir, budget, e.greedy, consume)

	case KindWildcardRepetition:
		consume := func(p int, c CatIxMap) (int, CatIxMap, bool) {
			return m.evaluate(e.inner, w, p, c, dir, budget)
		}
		return m.matchOneOrMore(rest, w, pos, cix, dir, budget, e.greedy, consume)

	case KindOptional:
		var combined []Element
		if dir == Forward {
			combined = append(append([]Element(nil), e.inner...), rest...)
		} else {
			combined = append(append([]Element(nil), rest...), e.inner...)
		}
		tryInner := func() (int, CatIxMap, bool) { return m.evaluate(combined, w, pos, cix, dir, budget) }
		tryRest := func() (int, CatIxMap, bool) { return m.evaluate(rest, w, pos, cix, dir, budget) }
		if e.greedy {
			if p, c, ok := tryInner(); ok {
				return p, c, true
			}
			return tryRest()
		}
		if p, c, ok := tryRest(); ok {
			return p, c, true
		}
		return tryInner()

	default:
		panic("pattern: matchBranch called on non-branching element kind " + e.kind.String())
	}
}

// matchOneOrMore implements the shared "+"-repetition shape of
// Wildcard and WildcardRepetition (spec.md §4.3's table: "must consume
// at least one unit before branching"). It enumerates every reachable
// repetition count by repeatedly applying consume, then tries rest at
// those lengths longest-first (greedy) or shortest-first (lazy),
// returning the first that succeeds.
func (m *Matcher) matchOneOrMore(rest []Element, w *word.Word, startPos int, startCix CatIxMap, dir Dir, budget *Budget, greedy bool, consume func(int, CatIxMap) (int, CatIxMap, bool)) (int, CatIxMap, bool) {
	type reached struct {
		pos int
		cix CatIxMap
	}
	var states []reached
	guard := newLoopGuard(w.Len() + 1)

	pos, cix := startPos, startCix
	for {
		if !budget.Take() {
			break
		}
		newPos, newCix, ok := consume(pos, cix)
		if !ok {
			break
		}
		states = append(states, reached{newPos, newCix})
		pos, cix = newPos, newCix
		if guard.visit(pos) {
			break
		}
	}

	if len(states) == 0 {
		return 0, CatIxMap{}, false
	}

	if greedy {
		for i := len(states) - 1; i >= 0; i-- {
			if p, c, ok := m.evaluate(rest, w, states[i].pos, states[i].cix, dir, budget); ok {
				return p, c, true
			}
		}
		return 0, CatIxMap{}, false
	}
	for i := 0; i < len(states); i++ {
		if p, c, ok := m.evaluate(rest, w, states[i].pos, states[i].cix, dir, budget); ok {
			return p, c, true
		}
	}
	return 0, CatIxMap{}, false
}
