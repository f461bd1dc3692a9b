package puzzle

import (
	"strings"
	"unicode"
)

// Shift applies a Caesar shift to ASCII letters, preserving case. Negative
// shifts decode.
func Shift(text string, shift int) string {
	shift = ((shift % 26) + 26) % 26
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+rune(shift))%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+rune(shift))%26
		default:
			return r
		}
	}, text)
}

// Cipher is a Caesar riddle. Answers are compared ignoring case, spacing and
// punctuation.
type Cipher struct {
	Plaintext string
	Key       int
}

func (c Cipher) Ciphertext() string {
	return Shift(c.Plaintext, c.Key)
}

func (c Cipher) Check(answer string) bool {
	return normalizeAnswer(answer) == normalizeAnswer(c.Plaintext)
}

func normalizeAnswer(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
