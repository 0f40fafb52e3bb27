// assets/embed.go
//
// Embedded default word list. One lowercase word per line; used when no
// LEXICON_FILE is configured so the game runs out of the box.
package assets

import (
	"bytes"
	_ "embed"
)

//go:embed lexicon.txt
var lexicon []byte

// Lexicon returns a copy of the embedded word list file.
func Lexicon() []byte {
	return bytes.Clone(lexicon)
}
