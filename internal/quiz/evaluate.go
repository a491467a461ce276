package quiz

import "strings"

// Normalize lowercases and trims the input, then strips every rune that is
// not an ASCII letter, a digit, whitespace, a Hangul syllable, or a Hangul
// compatibility jamo. Comparison after normalization is plain equality;
// there is no fuzzy matching.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0xAC00 && r <= 0xD7A3: // Hangul syllables 가-힣
		return true
	case r >= 0x3131 && r <= 0x3163: // compatibility jamo ㄱ-ㅎ, ㅏ-ㅣ
		return true
	default:
		return false
	}
}

// MatchMeaning reports whether a free-text submission matches the target
// meaning. The meaning may list alternates separated by "," or "/"; each
// delimiter is checked independently, never combined. An empty submission
// only matches a meaning that itself normalizes to empty.
func MatchMeaning(submitted, meaning string) bool {
	got := Normalize(submitted)
	if got == Normalize(meaning) {
		return true
	}
	for _, alt := range strings.Split(meaning, ",") {
		if got == Normalize(alt) {
			return true
		}
	}
	for _, alt := range strings.Split(meaning, "/") {
		if got == Normalize(alt) {
			return true
		}
	}
	return false
}
