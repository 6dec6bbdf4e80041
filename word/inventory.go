package word

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
)

// Inventory is the set of graphemes a tokeniser recognises. A grapheme
// is a literal run of one or more characters, optionally containing
// the wildcard character '*' which matches any single character of
// the input at that position. An entry of "*" on its own therefore
// matches any one character not otherwise claimed by a longer, more
// specific grapheme.
type Inventory struct {
	graphemes []string // display order, as given to NewInventory
	byLength  []string // same entries, longest-first, stable, for longest-match tokenising

	monograph bool // every grapheme is at most one rune long
	literal   bool // no grapheme contains a wildcard

	// automaton is a fast existence-only prefilter over the literal
	// graphemes, used by unparse's ambiguity check (anyLongerPrefixMatch
	// only: a grapheme that strictly extends a string never occurs
	// inside it, so the superset check cannot use it). It answers "does
	// any grapheme occur anywhere in this string" in roughly linear
	// time; a negative answer proves no grapheme can prefix-match at
	// position 0 either, letting Render skip the manual scan. A
	// positive answer is inconclusive (the match may not start at
	// position 0, or at all) and always falls through to the exact
	// check. It is nil when the inventory has no literal graphemes.
	automaton *ahocorasick.Automaton
}

// NewInventory builds an Inventory from graphemes. Empty strings are
// dropped; they cannot be matched against and would otherwise make
// every position in every word ambiguous.
func NewInventory(graphemes []string) *Inventory {
	inv := &Inventory{}
	for _, g := range graphemes {
		if g == "" {
			continue
		}
		inv.graphemes = append(inv.graphemes, g)
	}

	inv.byLength = append([]string(nil), inv.graphemes...)
	sort.SliceStable(inv.byLength, func(i, j int) bool {
		return utf8.RuneCountInString(inv.byLength[i]) > utf8.RuneCountInString(inv.byLength[j])
	})

	inv.monograph = true
	inv.literal = true
	for _, g := range inv.graphemes {
		if utf8.RuneCountInString(g) > 1 {
			inv.monograph = false
		}
		if strings.ContainsRune(g, '*') {
			inv.literal = false
		}
	}

	if inv.literal && len(inv.graphemes) > 0 {
		b := ahocorasick.NewBuilder()
		for _, g := range inv.graphemes {
			b.AddPattern(g)
		}
		if a, err := b.Build(); err == nil {
			inv.automaton = a
		}
	}

	return inv
}

// WithBoundary returns a copy of inv with the word-boundary grapheme
// added, for tokenising a string that has already been framed with
// boundary markers.
func (inv *Inventory) WithBoundary() *Inventory {
	return NewInventory(append(append([]string(nil), inv.graphemes...), string(Boundary)))
}

// Graphemes returns the inventory's graphemes in the order given to
// NewInventory. The returned slice must not be mutated.
func (inv *Inventory) Graphemes() []string {
	return inv.graphemes
}

// startsWith reports whether s starts with prefix, honouring '*' as a
// single-character wildcard on either side. If strict, prefix must be
// shorter than s; a non-strict call permits prefix == s.
func startsWith(s, prefix []rune, strict bool) bool {
	if len(prefix) > len(s) || (strict && len(prefix) == len(s)) {
		return false
	}
	wildcard := false
	for _, r := range s {
		if r == '*' {
			wildcard = true
			break
		}
	}
	if !wildcard {
		for _, r := range prefix {
			if r == '*' {
				wildcard = true
				break
			}
		}
	}
	if !wildcard {
		for i, r := range prefix {
			if s[i] != r {
				return false
			}
		}
		return true
	}
	for i, r := range prefix {
		if s[i] != '*' && r != '*' && s[i] != r {
			return false
		}
	}
	return true
}

// trimSeparator removes any leading characters of r that occur in the
// separator set, the same way Python's str.lstrip(chars) treats its
// argument as a set of characters rather than a literal prefix.
func trimSeparator(r []rune, separator string) []rune {
	if separator == "" {
		return r
	}
	set := make(map[rune]bool, len(separator))
	for _, c := range separator {
		set[c] = true
	}
	i := 0
	for i < len(r) && set[r[i]] {
		i++
	}
	return r[i:]
}

// Tokenize splits s into phones by greedy longest-match against the
// inventory, skipping any leading run of separator characters before
// each phone. It returns an InvalidCharacterError if some rune has no
// matching grapheme.
func (inv *Inventory) Tokenize(s string, separator string) ([]Phone, error) {
	remaining := trimSeparator([]rune(s), separator)
	var out []Phone
	for len(remaining) > 0 {
		chosen := ""
		for _, g := range inv.byLength {
			gr := []rune(g)
			if startsWith(remaining, gr, false) {
				chosen = g
				break
			}
		}
		if chosen == "" {
			return nil, &InvalidCharacterError{Char: remaining[0], Graphemes: inv.graphemes, Input: s}
		}
		n := utf8.RuneCountInString(chosen)
		out = append(out, Phone(string(remaining[:n])))
		remaining = trimSeparator(remaining[n:], separator)
	}
	return out, nil
}

// anyLongerPrefixMatch reports whether some grapheme prefix-matches
// test (wildcard-aware) while being strictly longer than minLength
// runes.
func (inv *Inventory) anyLongerPrefixMatch(test string, minLength int) bool {
	if inv.automaton != nil && inv.automaton.Find([]byte(test), 0) == nil {
		return false
	}
	tr := []rune(test)
	for _, g := range inv.graphemes {
		if utf8.RuneCountInString(g) <= minLength {
			continue
		}
		if startsWith(tr, []rune(g), false) {
			return true
		}
	}
	return false
}

// anyStrictSupersetGrapheme reports whether some grapheme is a
// strictly longer wildcard-aware extension of test, i.e. test is a
// proper prefix of that grapheme.
func (inv *Inventory) anyStrictSupersetGrapheme(test string) bool {
	tr := []rune(test)
	for _, g := range inv.graphemes {
		if startsWith([]rune(g), tr, true) {
			return true
		}
	}
	return false
}

// Render joins phones back into a surface string, inserting separator
// wherever two adjacent phones would otherwise be re-tokenisable in a
// different, ambiguous way. When every grapheme in the inventory is at
// most one rune long, no such ambiguity can arise (concatenation is
// always uniquely re-tokenisable) and phones are joined directly.
func (inv *Inventory) Render(phones []Phone, separator string) string {
	if inv.monograph {
		var b strings.Builder
		for _, p := range phones {
			b.WriteString(string(p))
		}
		return strings.Trim(b.String(), separator+string(Boundary))
	}

	var out strings.Builder
	var ambig []string
	for _, p := range phones {
		g := string(p)
		if len(ambig) > 0 {
			ambig = append(ambig, g)

			for i := 0; i < len(ambig); i++ {
				test := strings.Join(ambig[i:], "")
				minLength := utf8.RuneCountInString(ambig[i])
				if inv.anyLongerPrefixMatch(test, minLength) {
					out.WriteString(separator)
					ambig = []string{g}
					break
				}
			}

			trimmed := false
			for i := 0; i < len(ambig); i++ {
				test := strings.Join(ambig[i:], "")
				if inv.anyStrictSupersetGrapheme(test) {
					ambig = ambig[i:]
					trimmed = true
					break
				}
			}
			if !trimmed {
				ambig = nil
			}
		} else if inv.anyStrictSupersetGrapheme(g) {
			ambig = append(ambig, g)
		}
		out.WriteString(g)
	}
	return strings.Trim(out.String(), separator+string(Boundary))
}

// CombineGraphemes merges several grapheme inventories into one,
// dropping later duplicates of an earlier wildcard-equal entry so a
// phone already covered by one source inventory isn't re-listed by
// another.
func CombineGraphemes(sources ...[]string) []string {
	var combined []string
	for _, src := range sources {
		for _, g := range src {
			dup := false
			for _, have := range combined {
				if grapheneEqual(have, g) {
					dup = true
					break
				}
			}
			if !dup {
				combined = append(combined, g)
			}
		}
	}
	return combined
}

// grapheneEqual reports whether a and b denote the same grapheme
// pattern under wildcard matching: same length, each position equal
// or wildcarded on either side.
func grapheneEqual(a, b string) bool {
	ar, br := []rune(a), []rune(b)
	if len(ar) != len(br) {
		return false
	}
	return startsWith(ar, br, false)
}
