package pattern

import "github.com/kathdragon/sce/word"

// Resolve substitutes every TargetRef element with target's phones
// rendered as Grapheme elements -- forward order for dir=+1, reverse
// for dir=-1 -- and recurses into the sub-patterns of Repetition,
// WildcardRepetition and Optional elements (spec.md §4.3). It must run
// before a Target's predicate-side pattern is matched or rendered; a
// TargetRef surviving to match time is a programming error (see
// matchFixed).
func Resolve(p Pattern, target []word.Phone) Pattern {
	out := make(Pattern, 0, len(p))
	for _, e := range p {
		switch e.kind {
		case KindTargetRef:
			out = append(out, targetPhones(target, e.dir)...)
		case KindRepetition:
			out = append(out, Repetition(Resolve(e.inner, target), e.n))
		case KindWildcardRepetition:
			out = append(out, WildcardRepetition(Resolve(e.inner, target), e.greedy))
		case KindOptional:
			out = append(out, Optional(Resolve(e.inner, target), e.greedy))
		default:
			out = append(out, e)
		}
	}
	return out
}

// targetPhones renders target's phones as Grapheme elements, in
// forward order for dir=+1 or reverse order for dir=-1.
func targetPhones(target []word.Phone, dir int) []Element {
	out := make([]Element, len(target))
	if dir >= 0 {
		for i, p := range target {
			out[i] = Grapheme(p)
		}
		return out
	}
	for i, p := range target {
		out[len(target)-1-i] = Grapheme(p)
	}
	return out
}
