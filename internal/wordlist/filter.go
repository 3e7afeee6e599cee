// Package wordlist provides word list filtering helpers.
package wordlist

// KeepWord reports whether a word belongs in a practice list. Practice text
// is lowercase ASCII, so anything else would be untypeable by the drills.
func KeepWord(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
