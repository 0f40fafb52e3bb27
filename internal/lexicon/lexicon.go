// internal/lexicon/lexicon.go
//
// Lexicon loading for the game engine.
//
// Load scans a Source to completion and keeps every word whose length
// equals the requested length, in source order. The maximum word length
// across the whole source is tracked too, so a request longer than any
// word can be refused even when the scan would otherwise succeed.
//
// Words are kept exactly as stored: no trimming, no case folding. Line
// terminators ("\n" and "\r\n") are the only thing removed. Blank lines
// are zero-length words and simply never match a length >= 1.
//
// Lengths are counted in runes.
package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalidLength is returned for a requested length below 1.
	ErrInvalidLength = errors.New("lexicon: word length must be at least 1")
	// ErrLengthTooLarge is returned when no word in the source is that long.
	ErrLengthTooLarge = errors.New("lexicon: word length exceeds longest word")
	// ErrSourceUnavailable wraps failures to open or read the source.
	ErrSourceUnavailable = errors.New("lexicon: word source unavailable")
)

// maxLine bounds a single line; longer lines abort the scan.
const maxLine = 1 << 20

// Lexicon is the result of one load.
type Lexicon struct {
	Source    string   // Source.Name() of the list that was read
	Length    int      // requested word length
	MaxLength int      // longest word seen anywhere in the source
	Words     []string // words of exactly Length runes, in source order
}

// Load reads src once and returns the words of the given length.
func Load(src Source, length int) (*Lexicon, error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}

	lex := &Lexicon{Source: src.Name(), Length: length}
	err := scan(src, func(word string) {
		n := utf8.RuneCountInString(word)
		if n > lex.MaxLength {
			lex.MaxLength = n
		}
		if n == length {
			lex.Words = append(lex.Words, word)
		}
	})
	if err != nil {
		return nil, err
	}

	if length > lex.MaxLength {
		return nil, fmt.Errorf("%w: %d > %d in %s", ErrLengthTooLarge, length, lex.MaxLength, lex.Source)
	}
	return lex, nil
}

// scan feeds every line of src to fn.
func scan(src Source, fn func(word string)) error {
	rc, err := src.Open()
	if err != nil {
		return unavailable(src, err)
	}
	defer rc.Close()

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		fn(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return unavailable(src, err)
	}
	return nil
}

func unavailable(src Source, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, src.Name(), err)
}
