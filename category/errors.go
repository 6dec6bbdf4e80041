package category

import "fmt"

// UnknownNameError reports that a category expression referenced a
// bare identifier with no entry in the supplied name table (spec.md
// §4.2: "a bare identifier resolves against the supplied name table.
// Unknown names fail").
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown category name %q", e.Name)
}
