package word

import "fmt"

// InvalidCharacterError reports that the tokeniser found a rune with no
// matching entry in the grapheme inventory. It is fatal to tokenising
// the string it occurred in, but is an ordinary Go error: callers
// decide whether to abort a whole rule-file load or skip one bad word.
type InvalidCharacterError struct {
	Char      rune
	Graphemes []string
	Input     string
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("encountered character %q not in graphemes %v while parsing string %q",
		e.Char, e.Graphemes, e.Input)
}
