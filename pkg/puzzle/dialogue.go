package puzzle

import (
	"fmt"
	"strings"
)

// DefaultMisstepLimit is the number of wrong answers that ends a conversation.
const DefaultMisstepLimit = 3

// Stage is one multiple-choice question. Options is keyed by choice letter.
type Stage struct {
	Prompt  string            `json:"prompt"`
	Options map[string]string `json:"options"`
	Correct string            `json:"correct"`
	Success string            `json:"success,omitempty"`
}

// Render formats the prompt and its options in a-d order.
func (s Stage) Render() string {
	var b strings.Builder
	b.WriteString(s.Prompt)
	for _, c := range Choices {
		if text, ok := s.Options[c]; ok {
			fmt.Fprintf(&b, "\n  %s) %s", strings.ToUpper(c), text)
		}
	}
	return b.String()
}

// Check reports whether letter answers the stage correctly.
func (s Stage) Check(letter string) (bool, error) {
	letter = strings.ToLower(strings.TrimSpace(letter))
	if !validChoice(letter) {
		return false, ErrInvalidChoice
	}
	return letter == s.Correct, nil
}

// Outcome is the result of submitting one answer to a dialogue.
type Outcome int

const (
	Advanced Outcome = iota
	Completed
	Misstep
	Ejected
)

// Dialogue is a staged multiple-choice conversation. Stage 0 means the
// conversation has not started; stage len(stages)+1 means it is solved.
// Missteps accumulate across stages and reset only on ejection.
type Dialogue struct {
	stages   []Stage
	stage    int
	missteps int
	limit    int
}

func NewDialogue(stages []Stage) *Dialogue {
	return &Dialogue{stages: stages, limit: DefaultMisstepLimit}
}

// Resume restores persisted progress.
func (d *Dialogue) Resume(stage, missteps int) *Dialogue {
	d.stage = max(0, min(stage, len(d.stages)+1))
	d.missteps = max(0, missteps)
	return d
}

// Progress returns the values to persist.
func (d *Dialogue) Progress() (stage, missteps int) {
	return d.stage, d.missteps
}

func (d *Dialogue) Status() Status {
	switch {
	case d.stage == 0:
		return NotStarted
	case d.stage > len(d.stages):
		return Solved
	default:
		return Active
	}
}

// Start moves a fresh conversation to its first question. It is a no-op
// otherwise.
func (d *Dialogue) Start() {
	if d.stage == 0 {
		d.stage = 1
	}
}

// Current returns the question awaiting an answer.
func (d *Dialogue) Current() (Stage, bool) {
	if d.Status() != Active {
		return Stage{}, false
	}
	return d.stages[d.stage-1], true
}

// Submit answers the current question.
func (d *Dialogue) Submit(letter string) (Outcome, error) {
	switch d.Status() {
	case NotStarted:
		return Misstep, ErrNotStarted
	case Solved:
		return Completed, ErrFinished
	}

	ok, err := d.stages[d.stage-1].Check(letter)
	if err != nil {
		return Misstep, err
	}
	if ok {
		d.stage++
		if d.stage > len(d.stages) {
			return Completed, nil
		}
		return Advanced, nil
	}

	d.missteps++
	if d.missteps >= d.limit {
		d.stage = 0
		d.missteps = 0
		return Ejected, nil
	}
	return Misstep, nil
}
