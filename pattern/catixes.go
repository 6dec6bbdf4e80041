package pattern

// CatIxMap is the catixes threaded through matching: a mapping from
// subscript to the category position it bound to on first match
// (spec.md §3). It is immutable; [CatIxMap.With] returns an extended
// copy so that a failed branch's tentative bindings never leak into
// the caller's map, per spec.md §9 ("must be passed by value (or
// cloned on branch)").
type CatIxMap struct {
	// m is nil for an empty map; With always allocates a fresh map, so
	// two CatIxMaps never share backing storage.
	m map[int]int
}

// Get returns the bound position for sub, and whether it is bound.
func (c CatIxMap) Get(sub int) (int, bool) {
	if c.m == nil {
		return 0, false
	}
	v, ok := c.m[sub]
	return v, ok
}

// With returns a copy of c with sub bound to pos. It does not mutate c.
func (c CatIxMap) With(sub, pos int) CatIxMap {
	next := make(map[int]int, len(c.m)+1)
	for k, v := range c.m {
		next[k] = v
	}
	next[sub] = pos
	return CatIxMap{m: next}
}

// Len returns the number of bound subscripts.
func (c CatIxMap) Len() int {
	return len(c.m)
}

// Contains reports whether every binding in other also appears,
// identically, in c -- used to verify the matcher law that a
// successful match's returned map is a superset of its input map.
func (c CatIxMap) Contains(other CatIxMap) bool {
	for k, v := range other.m {
		got, ok := c.m[k]
		if !ok || got != v {
			return false
		}
	}
	return true
}
