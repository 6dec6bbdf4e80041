package engine

import (
	"testing"

	"github.com/kathdragon/sce/category"
	"github.com/kathdragon/sce/pattern"
)

func TestNewConfigDeterministic(t *testing.T) {
	a := NewConfig(42)
	b := NewConfig(42)

	seqA := make([]int, 5)
	seqB := make([]int, 5)
	for i := range seqA {
		seqA[i] = a.Rng().Intn(1000)
	}
	for i := range seqB {
		seqB[i] = b.Rng().Intn(1000)
	}
	for i := range seqA {
		if seqA[i] != seqB[i] {
			t.Fatalf("same-seed configs diverged at %d: %d != %d", i, seqA[i], seqB[i])
		}
	}
}

func TestMaxWorkDefaultsWhenUnset(t *testing.T) {
	cfg := &Config{}
	if cfg.MaxWork() != pattern.DefaultMaxWork {
		t.Fatalf("MaxWork() = %d, want pattern.DefaultMaxWork", cfg.MaxWork())
	}
}

func TestMaxWorkRespectsOverride(t *testing.T) {
	cfg := &Config{MaxBacktrackWork: 123}
	if cfg.MaxWork() != 123 {
		t.Fatalf("MaxWork() = %d, want 123", cfg.MaxWork())
	}
}

func TestNilConfigIsUsable(t *testing.T) {
	var cfg *Config
	if cfg.MaxWork() != pattern.DefaultMaxWork {
		t.Fatalf("nil Config MaxWork() = %d, want default", cfg.MaxWork())
	}
	if cfg.Rng() == nil {
		t.Fatal("nil Config Rng() returned nil")
	}
}

func TestNewMatcherWiresCategories(t *testing.T) {
	store := category.NewStore()
	id := store.Add(category.New(nil).Named("X"))
	cfg := NewConfig(1)
	m := cfg.NewMatcher(store)
	if m.Categories.Get(id).Name() != "X" {
		t.Fatal("NewMatcher's matcher does not share the given category store")
	}
	if m.MaxWork != pattern.DefaultMaxWork {
		t.Fatalf("m.MaxWork = %d, want pattern.DefaultMaxWork", m.MaxWork)
	}
}
