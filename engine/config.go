// Package engine carries the injectable, non-global configuration
// Rule.Apply and Block.Run need: a seedable random source (for the
// chance flag) and a backtracking work limit, modelled on
// meta.Config/meta.DefaultConfig (see meta/config.go).
package engine

import (
	"math/rand"

	"github.com/kathdragon/sce/category"
	"github.com/kathdragon/sce/pattern"
)

// Config is passed explicitly to Rule.Apply and Block.Run; there is no
// package-level default RNG or other global mutable state anywhere in
// this module (spec.md §5: "implementations must allow seeding the RNG
// per run for reproducibility (injected, not global)").
type Config struct {
	// Rand is the source of randomness the chance flag rolls against.
	// Required whenever any rule in play has a non-zero chance.
	Rand *rand.Rand

	// MaxBacktrackWork bounds the matcher's per-Match backtracking work
	// (see pattern.Matcher.MaxWork / pattern.Budget). Zero means
	// pattern.DefaultMaxWork.
	MaxBacktrackWork int
}

// NewConfig returns a Config seeded deterministically from seed, for
// reproducible runs.
func NewConfig(seed int64) *Config {
	return &Config{
		Rand:             rand.New(rand.NewSource(seed)),
		MaxBacktrackWork: pattern.DefaultMaxWork,
	}
}

// MaxWork returns c.MaxBacktrackWork, or pattern.DefaultMaxWork if c is
// nil or unset.
func (c *Config) MaxWork() int {
	if c == nil || c.MaxBacktrackWork <= 0 {
		return pattern.DefaultMaxWork
	}
	return c.MaxBacktrackWork
}

// Rng returns c.Rand, or a new generator seeded with 1 if c is nil or
// Rand is unset -- Rule.Apply still works without explicit seeding;
// every such call starts the same fixed sequence.
func (c *Config) Rng() *rand.Rand {
	if c == nil || c.Rand == nil {
		return rand.New(rand.NewSource(1))
	}
	return c.Rand
}

// NewMatcher returns a pattern.Matcher over categories configured with
// c's backtracking work limit, the handoff point between engine.Config
// and the pattern package's own per-call Matcher.
func (c *Config) NewMatcher(categories *category.Store) *pattern.Matcher {
	return &pattern.Matcher{Categories: categories, MaxWork: c.MaxWork()}
}
