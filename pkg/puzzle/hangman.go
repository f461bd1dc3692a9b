package puzzle

import (
	"math/rand/v2"
	"slices"
	"strings"
	"unicode"

	"github.com/zyedidia/generic/mapset"
)

// MaxAttempts is the number of wrong guesses a hangman puzzle tolerates.
const MaxAttempts = 6

// WordPool is the default set of hidden words.
var WordPool = []string{
	"protocol",
	"firewall",
	"compiler",
	"database",
	"algorithm",
	"bandwidth",
	"kernel",
	"variable",
}

// PickWord draws a word from pool, avoiding last when the pool allows it.
func PickWord(rng *rand.Rand, pool []string, last string) string {
	if len(pool) == 0 {
		return ""
	}
	candidates := slices.DeleteFunc(slices.Clone(pool), func(w string) bool {
		return strings.EqualFold(w, last)
	})
	if len(candidates) == 0 {
		candidates = pool
	}
	return strings.ToLower(candidates[rng.IntN(len(candidates))])
}

// Hangman is a single letter-guessing puzzle instance.
type Hangman struct {
	target       []rune
	revealed     []bool
	guessed      mapset.Set[rune]
	attemptsLeft int
	status       Status
}

func NewHangman(word string) *Hangman {
	target := []rune(strings.ToLower(strings.TrimSpace(word)))
	return &Hangman{
		target:       target,
		revealed:     make([]bool, len(target)),
		guessed:      mapset.New[rune](),
		attemptsLeft: MaxAttempts,
		status:       Active,
	}
}

func (h *Hangman) Status() Status    { return h.status }
func (h *Hangman) AttemptsLeft() int { return h.attemptsLeft }
func (h *Hangman) Word() string      { return string(h.target) }

// GuessLetter reveals every occurrence of the letter. A miss costs one
// attempt. The bool result reports a hit.
func (h *Hangman) GuessLetter(s string) (bool, error) {
	if h.status != Active {
		return false, ErrFinished
	}
	r := []rune(strings.ToLower(strings.TrimSpace(s)))
	if len(r) != 1 || r[0] > unicode.MaxASCII || !unicode.IsLetter(r[0]) {
		return false, ErrInvalidGuess
	}
	letter := r[0]
	if h.guessed.Has(letter) {
		return false, ErrAlreadyGuessed
	}
	h.guessed.Put(letter)

	hit := false
	for i, c := range h.target {
		if c == letter {
			h.revealed[i] = true
			hit = true
		}
	}
	if !hit {
		h.miss()
		return false, nil
	}
	if !slices.Contains(h.revealed, false) {
		h.status = Solved
	}
	return true, nil
}

// GuessWord solves the puzzle on an exact match, ignoring case. A wrong word
// costs one attempt.
func (h *Hangman) GuessWord(w string) (bool, error) {
	if h.status != Active {
		return false, ErrFinished
	}
	if strings.ToLower(strings.TrimSpace(w)) != string(h.target) {
		h.miss()
		return false, nil
	}
	for i := range h.revealed {
		h.revealed[i] = true
	}
	h.status = Solved
	return true, nil
}

func (h *Hangman) miss() {
	h.attemptsLeft--
	if h.attemptsLeft <= 0 {
		h.attemptsLeft = 0
		h.status = Failed
	}
}

// Mask renders the word with unrevealed letters as underscores.
func (h *Hangman) Mask() string {
	parts := make([]string, len(h.target))
	for i, c := range h.target {
		if h.revealed[i] {
			parts[i] = string(c)
		} else {
			parts[i] = "_"
		}
	}
	return strings.Join(parts, " ")
}

// Guessed returns the letters tried so far in alphabetical order.
func (h *Hangman) Guessed() []string {
	letters := make([]string, 0, h.guessed.Size())
	h.guessed.Each(func(r rune) {
		letters = append(letters, string(r))
	})
	slices.Sort(letters)
	return letters
}
