package word

import "strings"

// Word is a tokenised form: a sequence of phones plus the inventory
// and separator it was tokenised with, so it can be rendered back to
// a surface string and so patterns can resolve category subscripts
// against the same grapheme set.
type Word struct {
	phones    []Phone
	inventory *Inventory
	separator string
}

// Parse tokenises s against graphemes, framing it with boundary
// markers and collapsing whitespace the way a rule file's input words
// are framed: each run of whitespace becomes one boundary (spec.md
// §3: "brackets the whole in `# … #`").
func Parse(s string, graphemes []string, separator string) (*Word, error) {
	framed := frame(s)
	inv := NewInventory(graphemes).WithBoundary()
	phones, err := inv.Tokenize(framed, separator)
	if err != nil {
		return nil, err
	}
	return &Word{phones: phones, inventory: inv, separator: separator}, nil
}

// frame replaces whitespace runs with the boundary character and
// ensures the result starts and ends with exactly one boundary.
func frame(s string) string {
	var b strings.Builder
	lastWasSpace := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !lastWasSpace {
				b.WriteRune('#')
			}
			lastWasSpace = true
		default:
			b.WriteRune(r)
			lastWasSpace = false
		}
	}
	out := b.String()
	if !strings.HasPrefix(out, "#") {
		out = "#" + out
	}
	if !strings.HasSuffix(out, "#") {
		out = out + "#"
	}
	return out
}

// NewWord wraps an already-tokenised phone sequence. It is used
// internally by the pattern matcher and rule engine to build a result
// word without re-tokenising a surface string.
func NewWord(phones []Phone, inventory *Inventory, separator string) *Word {
	cp := make([]Phone, len(phones))
	copy(cp, phones)
	return &Word{phones: cp, inventory: inventory, separator: separator}
}

// Len returns the number of phones, including the two boundary
// phones.
func (w *Word) Len() int {
	return len(w.phones)
}

// At returns the phone at position i.
func (w *Word) At(i int) Phone {
	return w.phones[i]
}

// Phones returns the word's phones. The returned slice must not be
// mutated.
func (w *Word) Phones() []Phone {
	return w.phones
}

// Slice returns the phones in [start, stop) as a new, independent
// slice.
func (w *Word) Slice(start, stop int) []Phone {
	cp := make([]Phone, stop-start)
	copy(cp, w.phones[start:stop])
	return cp
}

// Replace returns a new Word with the phones in [start, stop)
// replaced by replacement.
func (w *Word) Replace(start, stop int, replacement []Phone) *Word {
	out := make([]Phone, 0, len(w.phones)-(stop-start)+len(replacement))
	out = append(out, w.phones[:start]...)
	out = append(out, replacement...)
	out = append(out, w.phones[stop:]...)
	return NewWord(out, w.inventory, w.separator)
}

// Inventory returns the grapheme inventory the word was tokenised
// with (including the boundary grapheme).
func (w *Word) Inventory() *Inventory {
	return w.inventory
}

// String renders the word as a surface form: inner boundaries become
// a single space, and the leading and trailing boundary are dropped.
func (w *Word) String() string {
	rendered := w.inventory.Render(w.phones, w.separator)
	rendered = strings.ReplaceAll(rendered, string(Boundary), " ")
	return strings.TrimSpace(rendered)
}

// GoString renders the word for debugging: every phone in order,
// separated by spaces, boundaries included, independent of the
// inventory's ambiguity rules.
func (w *Word) GoString() string {
	parts := make([]string, len(w.phones))
	for i, p := range w.phones {
		parts[i] = string(p)
	}
	return strings.Join(parts, " ")
}

// DebugString is an alias for GoString kept for readability at call
// sites that don't want the %#v connotation.
func (w *Word) DebugString() string {
	return w.GoString()
}
