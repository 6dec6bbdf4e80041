package pattern

import (
	"fmt"

	"github.com/kathdragon/sce/category"
	"github.com/kathdragon/sce/word"
)

// Phones is the concrete output of [AsPhones]: an ordered, indexable
// literal phone sequence, shaped like literal.Seq (an ordered sequence
// of concrete output units with Len/Get/IsEmpty) rather than a bare
// slice, so predicate code can pass it around without re-deriving
// emptiness checks at every call site.
type Phones []word.Phone

// Len returns the number of phones.
func (p Phones) Len() int { return len(p) }

// Get returns the phone at position i.
func (p Phones) Get(i int) word.Phone { return p[i] }

// IsEmpty reports whether p has zero phones.
func (p Phones) IsEmpty() bool { return len(p) == 0 }

// NotRepresentableError reports that as_phones was asked to render an
// Element kind that has no literal phone rendering (spec.md §4.3:
// "other variants fail -- they are not representable as literal
// phones").
type NotRepresentableError struct {
	Kind Kind
}

func (e *NotRepresentableError) Error() string {
	return fmt.Sprintf("pattern: element kind %s is not representable as literal phones", e.Kind)
}

// UnboundSubscriptError reports that as_phones needed a category
// position for a subscript that catixes never bound.
type UnboundSubscriptError struct {
	Subscript int
}

func (e *UnboundSubscriptError) Error() string {
	return fmt.Sprintf("pattern: subscript %d is unbound", e.Subscript)
}

// AsPhones renders p to a concrete phone list for replacement output
// (spec.md §4.3 as_phones): Grapheme emits its phone; Ditto emits the
// previous *output* phone, or lastPhone if p starts with Ditto;
// CategoryRef emits cat[catixes[sub]]; Repetition expands n copies;
// any other element kind fails.
func AsPhones(p Pattern, lastPhone word.Phone, cix CatIxMap, store *category.Store) (Phones, error) {
	var out Phones
	last := lastPhone
	for _, e := range p {
		emitted, newLast, err := asPhonesElement(e, last, cix, store)
		if err != nil {
			return nil, err
		}
		out = append(out, emitted...)
		last = newLast
	}
	return out, nil
}

func asPhonesElement(e Element, last word.Phone, cix CatIxMap, store *category.Store) ([]word.Phone, word.Phone, error) {
	switch e.kind {
	case KindGrapheme:
		return []word.Phone{e.phone}, e.phone, nil

	case KindSylBreak:
		return []word.Phone{word.SylBreak}, word.SylBreak, nil

	case KindDitto:
		return []word.Phone{last}, last, nil

	case KindCategoryRef:
		if e.sub == NoSubscript {
			return nil, last, &UnboundSubscriptError{Subscript: e.sub}
		}
		pos, ok := cix.Get(e.sub)
		if !ok {
			return nil, last, &UnboundSubscriptError{Subscript: e.sub}
		}
		cat := store.Get(e.cat)
		ph := cat.Get(pos)
		return []word.Phone{ph}, ph, nil

	case KindRepetition:
		var out []word.Phone
		cur := last
		for k := 0; k < e.n; k++ {
			emitted, err := AsPhones(e.inner, cur, cix, store)
			if err != nil {
				return nil, last, err
			}
			out = append(out, emitted...)
			if len(emitted) > 0 {
				cur = emitted[len(emitted)-1]
			}
		}
		return out, cur, nil

	default:
		return nil, last, &NotRepresentableError{Kind: e.kind}
	}
}
