package category

import "github.com/kathdragon/sce/word"

// Union implements the `A|B` / `A+B` set-algebra operator (spec.md
// §4.2): categories are concatenated in argument order, duplicates
// kept. The category-expression parser is out of scope (spec.md §1);
// this is the pure operation it would call.
func Union(cats ...Category) Category {
	var out []word.Phone
	for _, c := range cats {
		out = append(out, c.elements...)
	}
	return New(out)
}

// Difference implements the `A-B1-B2...` operator: the members of the
// first category not present in any of the others, preserving the
// first category's order.
func Difference(a Category, subtrahends ...Category) Category {
	var out []word.Phone
	for _, p := range a.elements {
		excluded := false
		for _, b := range subtrahends {
			if b.Contains(p) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, p)
		}
	}
	return New(out)
}

// Intersect implements the `A&B&...` operator: the members of the
// first category present in every other category, preserving the
// first category's order.
func Intersect(a Category, others ...Category) Category {
	var out []word.Phone
	for _, p := range a.elements {
		inAll := true
		for _, b := range others {
			if !b.Contains(p) {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, p)
		}
	}
	return New(out)
}

// FromTokens implements the comma-joined literal-list operator: each
// token becomes one phone in order, with empty tokens dropped (spec.md
// §4.2: "comma-separated bare tokens ⇒ literal list (empty tokens
// dropped)").
func FromTokens(tokens []string) Category {
	var out []word.Phone
	for _, t := range tokens {
		if t == "" {
			continue
		}
		out = append(out, word.Phone(t))
	}
	return New(out)
}
