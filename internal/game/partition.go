// internal/game/partition.go
//
// Candidate partitioning by a single guessed letter.
//
// Every turn the candidate list is grouped by the positions the guessed
// letter occupies in each word. Groups are kept in the order their first
// word was met, and the dominant group is found with a strict ">" sweep
// over that order, so the earliest group of maximal size wins ties. Go map
// iteration order is random, which is why the groups live in a slice and
// the map only indexes into it.

package game

import "strings"

// partition is one group of candidates sharing a key.
type partition struct {
	key   string
	words []string
}

// partitionKey renders word with every rune other than letter replaced by
// Hidden. Repeated occurrences of letter are all kept.
func partitionKey(word string, letter rune) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if r == letter {
			b.WriteRune(r)
		} else {
			b.WriteRune(Hidden)
		}
	}
	return b.String()
}

// partitionWords groups words by partitionKey, preserving first-insertion
// order of keys and encounter order within each group.
func partitionWords(words []string, letter rune) []partition {
	index := make(map[string]int)
	var parts []partition
	for _, w := range words {
		k := partitionKey(w, letter)
		i, ok := index[k]
		if !ok {
			i = len(parts)
			index[k] = i
			parts = append(parts, partition{key: k})
		}
		parts[i].words = append(parts[i].words, w)
	}
	return parts
}

// dominant returns the largest group; the first one to reach the maximum
// size wins ties.
func dominant(parts []partition) partition {
	var best partition
	for _, p := range parts {
		if len(p.words) > len(best.words) {
			best = p
		}
	}
	return best
}
