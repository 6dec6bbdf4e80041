// Package sce is the sound-change engine's front door: a small facade
// over the category/pattern/rule/block/engine packages, the way the
// teacher's root package wraps its meta engine behind a simple
// Compile/Match/Find API rather than asking callers to drive nfa/dfa
// directly.
//
// Basic usage:
//
//	categories := category.NewStore()
//	categories.Add(category.New(vowels).Named("V"))
//
//	prog := sce.New(categories, []block.Block{voicing, lenition}, graphemes, "")
//
//	out, err := prog.Apply("patak")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out) // the word after every block has run
package sce

import (
	"github.com/kathdragon/sce/block"
	"github.com/kathdragon/sce/category"
	"github.com/kathdragon/sce/engine"
	"github.com/kathdragon/sce/word"
)

// Program is a compiled sound-change rule file: a category store and
// the ordered list of rule blocks it defines, ready to run against
// surface words.
type Program struct {
	Categories *category.Store
	Blocks     []block.Block
	Graphemes  []string
	Separator  string

	cfg *engine.Config
}

// New returns a Program over categories and blocks, applying them in
// declaration order. graphemes is the grapheme inventory used to
// tokenise input surface strings; separator is inserted between
// adjacent graphemes whose concatenation would be ambiguous (see
// word.Inventory.Render).
func New(categories *category.Store, blocks []block.Block, graphemes []string, separator string) *Program {
	return &Program{
		Categories: categories,
		Blocks:     blocks,
		Graphemes:  graphemes,
		Separator:  separator,
		cfg:        engine.NewConfig(1),
	}
}

// WithSeed sets the RNG seed Apply's chance-flag rolls use, for
// reproducible runs (spec.md §5). Returns p for chaining.
func (p *Program) WithSeed(seed int64) *Program {
	p.cfg = engine.NewConfig(seed)
	return p
}

// WithMaxBacktrackWork overrides the per-match backtracking work
// budget every block's matcher uses. Returns p for chaining.
func (p *Program) WithMaxBacktrackWork(n int) *Program {
	p.cfg.MaxBacktrackWork = n
	return p
}

// Apply tokenises s against p's grapheme inventory and runs every
// block over it in order, returning the resulting surface string.
//
// Example:
//
//	out, err := prog.Apply("patak")
func (p *Program) Apply(s string) (string, error) {
	w, err := word.Parse(s, p.Graphemes, p.Separator)
	if err != nil {
		return "", err
	}
	out, err := p.ApplyWord(w)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// ApplyWord runs every block over an already-tokenised word, in
// declaration order, returning the rewritten word. A block's own
// non-application of any one rule is swallowed internally (spec.md
// §4.7); only a fatal rule error (e.g. an UnboundSubscriptError or
// NotRepresentableError from rendering a replacement) propagates.
func (p *Program) ApplyWord(w *word.Word) (*word.Word, error) {
	m := p.cfg.NewMatcher(p.Categories)
	for i := range p.Blocks {
		next, err := p.Blocks[i].Run(w, m, p.cfg)
		if err != nil {
			return w, err
		}
		w = next
	}
	return w, nil
}

// ApplyAll runs Apply over every string in ss, in order, stopping at
// the first error.
//
// Example:
//
//	out, err := prog.ApplyAll([]string{"patak", "kanta"})
func (p *Program) ApplyAll(ss []string) ([]string, error) {
	out := make([]string, len(ss))
	for i, s := range ss {
		result, err := p.Apply(s)
		if err != nil {
			return nil, err
		}
		out[i] = result
	}
	return out, nil
}
