// Package puzzle implements the self-contained puzzle instances used by the
// maze rooms. Puzzles never print or read input; rooms translate their
// outcomes into narration and game-state changes.
package puzzle

import (
	"errors"
	"slices"
)

var (
	ErrInvalidChoice  = errors.New("choice must be one of a, b, c or d")
	ErrInvalidGuess   = errors.New("guess must be a single letter a-z")
	ErrAlreadyGuessed = errors.New("letter already guessed")
	ErrNotStarted     = errors.New("puzzle not started")
	ErrFinished       = errors.New("puzzle already finished")
	ErrNotation       = errors.New("move not understood")
)

// Status is the lifecycle of a puzzle instance. Solved and Failed are terminal.
type Status int

const (
	NotStarted Status = iota
	Active
	Solved
	Failed
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Active:
		return "active"
	case Solved:
		return "solved"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Choices are the option letters of every multiple-choice question.
var Choices = []string{"a", "b", "c", "d"}

func validChoice(letter string) bool {
	return slices.Contains(Choices, letter)
}
