package game

import (
	"reflect"
	"testing"
)

func TestPartitionKey(t *testing.T) {
	tests := []struct {
		word   string
		letter rune
		want   string
	}{
		{"banana", 'a', "-a-a-a"},
		{"banana", 'z', "------"},
		{"aaa", 'a', "aaa"},
		{"Aa", 'a', "-a"},
		{"çaé", 'é', "--é"},
	}
	for _, tc := range tests {
		if got := partitionKey(tc.word, tc.letter); got != tc.want {
			t.Errorf("partitionKey(%q, %q) = %q, want %q", tc.word, tc.letter, got, tc.want)
		}
	}
}

func TestPartitionWordsKeepsInsertionOrder(t *testing.T) {
	parts := partitionWords([]string{"cat", "car", "can", "bat", "tat"}, 't')

	var keys []string
	for _, p := range parts {
		keys = append(keys, p.key)
	}
	if !reflect.DeepEqual(keys, []string{"--t", "---", "t-t"}) {
		t.Errorf("keys = %v", keys)
	}
	if !reflect.DeepEqual(parts[0].words, []string{"cat", "bat"}) {
		t.Errorf("first group = %v", parts[0].words)
	}
	if !reflect.DeepEqual(parts[1].words, []string{"car", "can"}) {
		t.Errorf("second group = %v", parts[1].words)
	}
}

func TestPartitionWordsCountsDuplicates(t *testing.T) {
	parts := partitionWords([]string{"dog", "dog", "cat"}, 'o')
	if len(parts) != 2 || len(parts[0].words) != 2 {
		t.Errorf("parts = %+v", parts)
	}
}

func TestDominant(t *testing.T) {
	tests := []struct {
		name  string
		parts []partition
		want  string
	}{
		{"empty", nil, ""},
		{"single", []partition{{key: "-a", words: []string{"ba"}}}, "-a"},
		{"largest", []partition{
			{key: "a-", words: []string{"ab"}},
			{key: "--", words: []string{"cd", "ef"}},
		}, "--"},
		{"tie keeps first", []partition{
			{key: "a-", words: []string{"ab", "ax"}},
			{key: "--", words: []string{"cd", "ef"}},
			{key: "-a", words: []string{"ba", "ca"}},
		}, "a-"},
		{"strictly larger later", []partition{
			{key: "a-", words: []string{"ab"}},
			{key: "--", words: []string{"cd"}},
			{key: "-a", words: []string{"ba", "ca"}},
		}, "-a"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := dominant(tc.parts); got.key != tc.want {
				t.Errorf("dominant = %q, want %q", got.key, tc.want)
			}
		})
	}
}
