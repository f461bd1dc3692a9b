// Package console is the player-facing text surface of the maze.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// Console shows narration and collects player input. Prompt returns io.EOF
// once input is exhausted.
type Console interface {
	Display(text string)
	Alert(text string)
	Prompt(prompt string) (string, error)
}

// Clipboard is implemented by consoles that can place text on the system
// clipboard. Copy returns ErrClipboardDisabled when nothing was copied.
type Clipboard interface {
	Copy(text string) error
}

var ErrClipboardDisabled = errors.New("clipboard disabled")

type Options struct {
	Width           int
	TypewriterDelay time.Duration
	UseClipboard    bool
}

// Terminal renders to a writer and reads lines from a reader.
type Terminal struct {
	in   *bufio.Scanner
	out  io.Writer
	opts Options

	narration lipgloss.Style
	alert     lipgloss.Style
	prompt    lipgloss.Style
}

var _ Console = (*Terminal)(nil)
var _ Clipboard = (*Terminal)(nil)

func NewTerminal(in io.Reader, out io.Writer, opts Options) *Terminal {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	r := lipgloss.NewRenderer(out)
	return &Terminal{
		in:   bufio.NewScanner(in),
		out:  out,
		opts: opts,
		narration: r.NewStyle().
			Foreground(lipgloss.Color("86")), // green
		alert: r.NewStyle().
			Foreground(lipgloss.Color("196")). // red
			Bold(true),
		prompt: r.NewStyle().
			Foreground(lipgloss.Color("240")), // dark grey
	}
}

func (t *Terminal) Display(text string) {
	t.write(t.narration.Render(t.wrap(text)) + "\n")
}

func (t *Terminal) Alert(text string) {
	t.write(t.alert.Render(t.wrap(text)) + "\n")
}

func (t *Terminal) Prompt(prompt string) (string, error) {
	fmt.Fprint(t.out, t.prompt.Render(prompt))
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return t.in.Text(), nil
}

// Copy places text on the system clipboard when enabled.
func (t *Terminal) Copy(text string) error {
	if !t.opts.UseClipboard {
		return ErrClipboardDisabled
	}
	return clipboard.WriteAll(text)
}

func (t *Terminal) wrap(text string) string {
	return wordwrap.String(strings.TrimRight(text, "\n"), t.opts.Width)
}

func (t *Terminal) write(s string) {
	if t.opts.TypewriterDelay <= 0 {
		fmt.Fprint(t.out, s)
		return
	}
	for _, r := range s {
		fmt.Fprint(t.out, string(r))
		time.Sleep(t.opts.TypewriterDelay)
	}
}
