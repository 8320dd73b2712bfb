package game

import "strings"

// LetterPattern renders the answer as a fill-in-the-blank hint: every letter
// becomes an underscore, spaces and punctuation pass through unchanged.
func LetterPattern(answer string) string {
	var sb strings.Builder
	for _, r := range answer {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			sb.WriteByte('_')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Normalize prepares a guess or answer for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
