package rooms

import (
	"context"
	"strings"

	"github.com/jwebster45206/school-maze/pkg/puzzle"
	"github.com/jwebster45206/school-maze/pkg/puzzle/sandbox"
	"github.com/jwebster45206/school-maze/pkg/state"
)

// StudyCipher is the sentence shown on the study landscape screen.
var StudyCipher = puzzle.Cipher{
	Plaintext: "The password is " + sandbox.RootPassword,
	Key:       3,
}

var studyHints = []string{
	"Every letter has been moved the same number of places along the alphabet.",
	"Try moving each letter back by three: D becomes A.",
	"The first word decodes to 'The'.",
}

// StudyLandscape sits between the corridor and the labs. It needs the hard
// disk to enter.
type StudyLandscape struct {
	room
	cipher  puzzle.Cipher
	targets map[string]string
}

func NewStudyLandscape(env *Env) *StudyLandscape {
	s := &StudyLandscape{
		room: room{
			env:   env,
			id:    state.RoomStudy,
			exits: []state.RoomID{state.RoomCorridor, state.RoomLab, state.RoomFinal},
			back:  state.RoomCorridor,
			help: []string{
				"- approach <thing>     : lab2003, computer, sample1, sample2, aid_kits, screen",
				"- solve <text>         : Answer the screen's riddle (also: decrypt <text>).",
				"- go lab03 / go lab01  : Continue onward.",
			},
		},
		cipher: StudyCipher,
	}
	s.targets = map[string]string{
		"lab2003":  "The door to Lab 2.003 (lab03). Students are arguing inside about a password. Type 'go lab03'.",
		"computer": "A public computer. The screen saver shows the school motto: 'Curiosity opens every door.'",
		"sample1":  "A jar labelled SAMPLE 1. It smells like burnt coffee.",
		"sample2":  "A jar labelled SAMPLE 2. Something inside glows a faint green.",
		"aid_kits": "A wall cabinet of first aid kits. All of them are empty.",
	}
	return s
}

func (s *StudyLandscape) Enter(ctx context.Context, gs *state.GameState) (Result, error) {
	if !s.gate(gs, state.ItemHardDisk,
		"A terminal at the entrance demands a storage device. Without a hard disk, the door stays shut.",
		"You slot the hard disk into the entrance terminal. The study landscape opens up.") {
		return Result{Next: state.RoomCorridor}, nil
	}
	s.env.say("You are in the study landscape.\n" +
		"Rows of quiet desks stretch under a glass roof. A large screen on the far wall scrolls a " +
		"line of scrambled text. Doors lead to lab03 and, at the very end, the sealed lab01.")
	return s.loop(ctx, gs, func() { s.describe(gs) }, s.handle)
}

func (s *StudyLandscape) describe(gs *state.GameState) {
	msg := "You see lab2003's door, a computer, sample1, sample2, aid_kits and a large screen."
	if gs.StudyProgress().CipherSolved {
		msg += "\nThe screen now reads: " + s.cipher.Plaintext
	}
	s.env.say("%s\n- Possible exits: %s", msg, s.exitList())
}

func (s *StudyLandscape) handle(_ context.Context, gs *state.GameState, cmd state.Command) (step, bool, error) {
	p := gs.StudyProgress()

	switch cmd.Type {
	case state.CmdApproach:
		target := strings.TrimPrefix(cmd.Arg, "the ")
		if target == "screen" {
			if p.CipherSolved {
				s.env.say("The screen reads: %s", s.cipher.Plaintext)
			} else {
				s.env.say("The screen scrolls:\n  %s\nA note below it: 'Decode me.' Use 'solve <text>'.", s.cipher.Ciphertext())
			}
			return stay, true, nil
		}
		if text, ok := s.targets[target]; ok {
			s.env.say("%s", text)
			return stay, true, nil
		}
		s.env.warn("You can't approach '%s'. Try: lab2003, computer, sample1, sample2, aid_kits, screen", cmd.Arg)
		return stay, true, nil

	case state.CmdSolve:
		if p.CipherSolved {
			s.env.say("You already decoded it: %s", s.cipher.Plaintext)
			return stay, true, nil
		}
		if !s.cipher.Check(cmd.Arg) {
			hint := studyHints[min(p.WrongAnswers, len(studyHints)-1)]
			p.WrongAnswers++
			s.env.warn("The screen flashes red. Hint: %s", hint)
			return stay, true, nil
		}
		p.CipherSolved = true
		gs.Visit(s.id).Completed = true
		gs.AwardOnce("study_cipher_solved", ScoreStudyCipher)
		s.env.say("The screen turns green: %s\nSomeone left the lab workstation's root password in plain sight.", s.cipher.Plaintext)
		return stay, true, nil
	}
	return stay, false, nil
}
