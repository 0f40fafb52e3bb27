// internal/lexicon/analyze.go
//
// Word list statistics: how many words a source holds, the shortest and
// longest, and how many there are of each length. Used by the `analyze`
// command and the /debug/lexicon endpoint to help pick a word length.
package lexicon

import (
	"sort"
	"unicode/utf8"
)

// Stats summarizes a word source.
type Stats struct {
	Source    string      `json:"source"`
	Words     int         `json:"words"`
	MinLength int         `json:"minLength"`
	MaxLength int         `json:"maxLength"`
	ByLength  map[int]int `json:"byLength"`
}

// Analyze scans src once and reports its statistics. Blank lines count as
// zero-length words, the same way Load sees them.
func Analyze(src Source) (Stats, error) {
	st := Stats{Source: src.Name(), ByLength: make(map[int]int)}
	err := scan(src, func(word string) {
		n := utf8.RuneCountInString(word)
		if st.Words == 0 || n < st.MinLength {
			st.MinLength = n
		}
		if n > st.MaxLength {
			st.MaxLength = n
		}
		st.Words++
		st.ByLength[n]++
	})
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

// Lengths returns the distinct word lengths in ascending order.
func (s Stats) Lengths() []int {
	out := make([]int, 0, len(s.ByLength))
	for n := range s.ByLength {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
