// Package textfilter cleans player-supplied names before they reach the
// save slot and the leaderboard.
package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MaxNameLength is the leaderboard column width, in runes.
	MaxNameLength = 18
	DefaultName   = "Anonymous"
)

// replacements maps blocked words to something printable on a school board.
var replacements = map[string]string{
	"fuck":         "fudge",
	"shit":         "shoot",
	"damn":         "dang",
	"hell":         "heck",
	"ass":          "donkey",
	"bitch":        "jerk",
	"bastard":      "jerk",
	"crap":         "crud",
	"piss":         "ticked",
	"cock":         "rooster",
	"dick":         "jerk",
	"pussy":        "kitty",
	"whore":        "***",
	"slut":         "***",
	"fag":          "***",
	"retard":       "***",
	"nigger":       "***",
	"nigga":        "***",
	"spic":         "***",
	"chink":        "***",
	"kike":         "***",
	"motherfucker": "mother-trucker",
	"goddamn":      "gosh-dang",
	"asshole":      "jerk",
	"dumbass":      "dummy",
	"jackass":      "jerk",
	"bullshit":     "baloney",
	"dipshit":      "dummy",
	"shithead":     "jerk",
	"dickhead":     "jerk",
	"prick":        "jerk",
	"douchebag":    "jerk",
}

type blockedWord struct {
	re          *regexp.Regexp
	replacement string
}

// NameFilter replaces blocked words, matched on word boundaries and with an
// optional plural s, keeping the case pattern of what the player typed.
type NameFilter struct {
	words []blockedWord
}

func NewNameFilter() *NameFilter {
	f := &NameFilter{words: make([]blockedWord, 0, len(replacements))}
	for word, repl := range replacements {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `s?\b`)
		f.words = append(f.words, blockedWord{re: re, replacement: repl})
	}
	return f
}

// Clean returns text with every blocked word replaced.
func (f *NameFilter) Clean(text string) string {
	for _, w := range f.words {
		text = w.re.ReplaceAllStringFunc(text, func(match string) string {
			return matchCase(match, w.replacement)
		})
	}
	return text
}

func (f *NameFilter) ContainsProfanity(text string) bool {
	for _, w := range f.words {
		if w.re.MatchString(text) {
			return true
		}
	}
	return false
}

// Sanitize turns raw input into a leaderboard-safe name: control characters
// dropped, whitespace collapsed, blocked words replaced, cut to
// MaxNameLength runes. An empty result becomes DefaultName.
func (f *NameFilter) Sanitize(raw string) string {
	raw = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, raw)
	name := f.Clean(strings.Join(strings.Fields(raw), " "))

	runes := []rune(name)
	if len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return name
}

var defaultFilter = NewNameFilter()

// SanitizeName applies the package default filter.
func SanitizeName(raw string) string {
	return defaultFilter.Sanitize(raw)
}

func matchCase(original, replacement string) string {
	switch {
	case strings.ToUpper(original) == original:
		return strings.ToUpper(replacement)
	case strings.ToLower(original) == original:
		return replacement
	}
	title := cases.Title(language.English)
	if title.String(strings.ToLower(original)) == original {
		return title.String(replacement)
	}
	return replacement
}
