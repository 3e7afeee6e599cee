// Package wordlist provides the built-in word list and file loading.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Common is the built-in list the random generator falls back to.
var Common = []string{
	"the", "and", "for", "are", "but", "not", "you", "all", "can", "her",
	"was", "one", "our", "out", "day", "get", "has", "him", "his", "how",
	"man", "new", "now", "old", "see", "two", "way", "who", "boy", "did",
	"its", "let", "put", "say", "she", "too", "use", "that", "with", "have",
	"this", "will", "your", "from", "they", "know", "want", "been", "good",
	"much", "some", "time", "very", "when", "come", "here", "just", "like",
	"long", "make", "many", "more", "only", "over", "such", "take", "than",
	"them", "well", "were", "what", "work", "about", "after", "again",
	"could", "every", "first", "found", "great", "house", "large", "learn",
	"never", "other", "place", "plant", "point", "right", "small", "sound",
	"spell", "still", "study", "their", "there", "these", "thing", "think",
	"three", "water", "where", "which", "world", "would", "write",
}

// LoadWords reads one word per line, keeping only lowercase-ASCII words.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !KeepWord(line) {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
