// Package category implements named, ordered sets of phones.
//
// A Category is an ordered sequence of phones with an optional name. It
// supports membership testing and index lookup; patterns reference
// categories through an opaque ID handle (see [Store]) rather than
// embedding them by value, so many patterns can share one category and a
// rule block can swap a category's contents without walking every
// pattern that refers to it.
package category

import "github.com/kathdragon/sce/word"

// Category is an ordered, named set of phones.
//
// Categories are immutable once constructed; set-algebra operations
// (Union, Difference, Intersect) and FromTokens all return new
// Categories rather than mutating their arguments.
type Category struct {
	name     string
	elements []word.Phone
}

// New returns an unnamed Category containing elements in order.
// Elements are not deduplicated; a phone may legitimately appear once
// per distinct contrastive environment in some conlang categories, and
// the source category-expression language is responsible for any
// deduplication it wants.
func New(elements []word.Phone) Category {
	cp := make([]word.Phone, len(elements))
	copy(cp, elements)
	return Category{elements: cp}
}

// Named returns a copy of c with the given name attached.
func (c Category) Named(name string) Category {
	c.name = name
	return c
}

// Name returns the category's name, or "" if it is anonymous (e.g. the
// result of an inline set-algebra expression rather than a bare
// identifier).
func (c Category) Name() string {
	return c.name
}

// Len returns the number of phones in the category.
func (c Category) Len() int {
	return len(c.elements)
}

// Get returns the phone at position i.
func (c Category) Get(i int) word.Phone {
	return c.elements[i]
}

// Elements returns the category's phones in order. The returned slice
// must not be mutated by the caller.
func (c Category) Elements() []word.Phone {
	return c.elements
}

// Contains reports whether p is a member of the category.
func (c Category) Contains(p word.Phone) bool {
	for _, e := range c.elements {
		if e == p {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the first occurrence of p in the
// category, and whether it was found at all.
func (c Category) IndexOf(p word.Phone) (int, bool) {
	for i, e := range c.elements {
		if e == p {
			return i, true
		}
	}
	return 0, false
}

// String renders the category the way the original grammar would: its
// name if it has one, otherwise a comma-joined element list.
func (c Category) String() string {
	if c.name != "" {
		return c.name
	}
	s := ""
	for i, e := range c.elements {
		if i > 0 {
			s += ", "
		}
		s += string(e)
	}
	return s
}
