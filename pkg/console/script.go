package console

import (
	"io"
	"strings"
)

// Script is a Console for tests. It replays a fixed list of input lines and
// records everything shown.
type Script struct {
	inputs  []string
	Output  []string
	Alerts  []string
	Prompts []string
	Copied  []string

	// NoClipboard makes Copy behave like a terminal without clipboard access.
	NoClipboard bool
}

var _ Console = (*Script)(nil)
var _ Clipboard = (*Script)(nil)

func NewScript(inputs ...string) *Script {
	return &Script{inputs: inputs}
}

// Feed appends more input lines.
func (s *Script) Feed(lines ...string) {
	s.inputs = append(s.inputs, lines...)
}

func (s *Script) Display(text string) {
	s.Output = append(s.Output, text)
}

func (s *Script) Alert(text string) {
	s.Output = append(s.Output, text)
	s.Alerts = append(s.Alerts, text)
}

func (s *Script) Prompt(prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if len(s.inputs) == 0 {
		return "", io.EOF
	}
	line := s.inputs[0]
	s.inputs = s.inputs[1:]
	return line, nil
}

func (s *Script) Copy(text string) error {
	if s.NoClipboard {
		return ErrClipboardDisabled
	}
	s.Copied = append(s.Copied, text)
	return nil
}

// Remaining reports how many input lines were not consumed.
func (s *Script) Remaining() int {
	return len(s.inputs)
}

// Transcript joins all displayed text.
func (s *Script) Transcript() string {
	return strings.Join(s.Output, "\n")
}

// Contains reports whether any displayed text contains substr.
func (s *Script) Contains(substr string) bool {
	return strings.Contains(s.Transcript(), substr)
}
