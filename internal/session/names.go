package session

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// deriveName is the default display name: the local part of the email.
func deriveName(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

// capitalizeName uppercases the first letter of each word and leaves the rest
// untouched. Presentation only; the stored name is never rewritten.
func capitalizeName(name string) string {
	words := strings.Split(name, " ")

	for i, w := range words {
		if w == "" {
			continue
		}

		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}

	return strings.Join(words, " ")
}
