package category

import "github.com/kathdragon/sce/internal/conv"

// ID uniquely identifies a Category held by a Store. Patterns reference
// categories by ID rather than embedding a Category by value, so many
// CategoryRef elements can share one category and a rule block can
// rebuild a category's contents without walking every pattern that
// refers to it.
type ID uint32

// InvalidID is returned by lookups that found nothing.
const InvalidID ID = 0xFFFFFFFF

// Store is an arena of Categories, indexed by ID. It is the category
// store named in spec.md §2 ("named sets of phones ... consumed by
// patterns via opaque handles").
type Store struct {
	categories []Category
	byName     map[string]ID
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{byName: make(map[string]ID)}
}

// Add inserts c into the store and returns its ID. If c is named and a
// category of the same name already exists, the existing entry is
// replaced in place and its ID is reused, so patterns already holding
// that ID observe the new contents.
func (s *Store) Add(c Category) ID {
	if c.name != "" {
		if id, ok := s.byName[c.name]; ok {
			s.categories[id] = c
			return id
		}
	}
	id := ID(conv.IntToUint32(len(s.categories)))
	s.categories = append(s.categories, c)
	if c.name != "" {
		s.byName[c.name] = id
	}
	return id
}

// Get returns the category held at id. It panics on an out-of-range
// ID, the same contract as the teacher's state-arena accessor: a bad
// ID is a programming error in the caller, not a recoverable runtime
// condition.
func (s *Store) Get(id ID) Category {
	return s.categories[id]
}

// Lookup resolves a bare category name against the store, the handoff
// point named in spec.md §4.2 ("a bare identifier resolves against the
// supplied name table; unknown names fail").
func (s *Store) Lookup(name string) (ID, bool) {
	id, ok := s.byName[name]
	return id, ok
}

// Len returns the number of categories held by the store.
func (s *Store) Len() int {
	return len(s.categories)
}
