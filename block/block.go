// Package block implements RuleBlock sequencing: persistence,
// ditto-linkage, stop semantics and the per-rule chance/repeat
// behaviour threaded across a declared rule sequence (spec.md §4.7).
package block

import (
	"errors"

	"github.com/kathdragon/sce/engine"
	"github.com/kathdragon/sce/pattern"
	"github.com/kathdragon/sce/rule"
	"github.com/kathdragon/sce/word"
)

// Block is a named, ordered sequence of rules (spec.md §3).
type Block struct {
	Name  string
	Rules []rule.Rule
}

// ErrStopped is raised internally when a rule's stop flag fires; it is
// caught at the block boundary by [Block.Run] and never propagated
// (spec.md §4.7/§7: "BlockStopped ... caught internally; it is not
// propagated").
var ErrStopped = errors.New("block: stopped by a rule's stop flag")

// persistentRule is one entry of the block's replay list: the rule
// itself and how many more block iterations it has left to run.
type persistentRule struct {
	rule  *rule.Rule
	count int
}

// Run applies every rule in the block, in declaration order,
// interleaved with replays of rules still within their persistence
// window, per spec.md §4.7:
//
//  1. Run cur_rule and all currently persistent rules, in that order.
//     Each respects its ditto gate (skip unless the previous rule's
//     application outcome matches what Ditto requires) and its stop
//     gate (end the block once an outcome matches what Stop requires).
//  2. After that inner loop, cur_rule joins the persistent list with
//     its own Flags.Persist count, and every count in the list (this
//     one included) decrements; entries reaching zero are dropped.
func (b *Block) Run(w *word.Word, m *pattern.Matcher, cfg *engine.Config) (*word.Word, error) {
	var persistent []persistentRule
	appliedLast := false

	for i := range b.Rules {
		cur := &b.Rules[i]

		toRun := make([]*rule.Rule, 0, len(persistent)+1)
		toRun = append(toRun, cur)
		for _, p := range persistent {
			toRun = append(toRun, p.rule)
		}

		var stopErr error
		w, appliedLast, stopErr = runSequence(toRun, w, appliedLast, m, cfg)
		if stopErr != nil && !errors.Is(stopErr, ErrStopped) {
			return w, stopErr
		}

		persistent = append(persistent, persistentRule{rule: cur, count: cur.Flags.Persist})
		persistent = decrementAndPrune(persistent)

		if errors.Is(stopErr, ErrStopped) {
			break
		}
	}

	return w, nil
}

// runSequence runs rules in order against w, honouring each rule's
// ditto gate, and returns ErrStopped the instant a rule's stop gate
// fires -- caught by Run immediately above, never by a caller outside
// this package.
func runSequence(rules []*rule.Rule, w *word.Word, appliedLast bool, m *pattern.Matcher, cfg *engine.Config) (*word.Word, bool, error) {
	for _, r := range rules {
		if r.Flags.Ditto != 0 {
			wantApplied := r.Flags.Ditto > 0
			if wantApplied != appliedLast {
				continue
			}
		}

		next, err := r.Apply(w, m, cfg)
		applied := false
		if err != nil {
			if _, ok := err.(rule.DidNotApply); !ok {
				return w, appliedLast, err
			}
		} else {
			applied = !sameWord(next, w)
			w = next
		}
		appliedLast = applied

		if r.Flags.Stop != 0 {
			wantApplied := r.Flags.Stop > 0
			if wantApplied == applied {
				return w, appliedLast, ErrStopped
			}
		}
	}
	return w, appliedLast, nil
}

func decrementAndPrune(in []persistentRule) []persistentRule {
	out := in[:0]
	for _, p := range in {
		p.count--
		if p.count > 0 {
			out = append(out, p)
		}
	}
	return out
}

func sameWord(a, b *word.Word) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.At(i) != b.At(i) {
			return false
		}
	}
	return true
}
