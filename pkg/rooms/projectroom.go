package rooms

import (
	"context"
	"errors"
	"strings"

	"github.com/jwebster45206/school-maze/pkg/puzzle"
	"github.com/jwebster45206/school-maze/pkg/state"
)

// ProjectRoom runs the word-guessing challenge guarding the hard disk. It is
// locked behind the keycard.
type ProjectRoom struct {
	room
	pool []string
	// game is the puzzle for the current visit only
	game *puzzle.Hangman
}

func NewProjectRoom(env *Env, pool []string) *ProjectRoom {
	if len(pool) == 0 {
		pool = puzzle.WordPool
	}
	return &ProjectRoom{
		room: room{
			env:   env,
			id:    state.RoomProjectRoom,
			exits: []state.RoomID{state.RoomCorridor},
			back:  state.RoomCorridor,
			help: []string{
				"- start challenge      : Start the word puzzle.",
				"- guess <letter>       : Guess one letter.",
				"- solve <word>         : Guess the whole word.",
				"- take hard disk       : Take the hard disk once the puzzle is solved.",
			},
		},
		pool: pool,
	}
}

func (p *ProjectRoom) Enter(ctx context.Context, gs *state.GameState) (Result, error) {
	if !p.gate(gs, state.ItemKeycard,
		"The door is locked. A yellow card reader blinks next to it.",
		"You swipe the yellow keycard. The door slides open.") {
		return Result{Next: state.RoomCorridor}, nil
	}
	p.game = nil
	p.env.say("You walk into Project Room 3.\n" +
		"Whiteboards full of half-erased diagrams cover the walls. On the central table sits a " +
		"glass case holding a hard disk, sealed by a screen that reads: START CHALLENGE.")
	res, err := p.loop(ctx, gs, func() { p.describe(gs) }, p.handle)
	p.game = nil
	return res, err
}

func (p *ProjectRoom) describe(gs *state.GameState) {
	prog := gs.ProjectRoomProgress()
	var msg string
	switch {
	case prog.Solved && !gs.HasItem(state.ItemHardDisk):
		msg = "The glass case is open. The hard disk is waiting for you."
	case prog.Solved:
		msg = "The glass case stands open and empty."
	case p.game != nil:
		msg = "The screen shows: " + p.game.Mask()
	default:
		msg = "Whiteboards, a central table and a sealed glass case with a hard disk inside."
	}
	p.env.say("%s\n- Possible exits: %s", msg, p.exitList())
}

func (p *ProjectRoom) showBoard() {
	p.env.say("Word: %s\nAttempts left: %d\nGuessed: %s",
		p.game.Mask(), p.game.AttemptsLeft(), strings.Join(p.game.Guessed(), " "))
}

func (p *ProjectRoom) handle(_ context.Context, gs *state.GameState, cmd state.Command) (step, bool, error) {
	prog := gs.ProjectRoomProgress()

	switch cmd.Type {
	case state.CmdStart:
		if prog.Solved {
			p.env.say("The challenge is already solved.")
			return stay, true, nil
		}
		if p.game == nil {
			word := puzzle.PickWord(p.env.Rand, p.pool, prog.LastWord)
			prog.LastWord = word
			p.game = puzzle.NewHangman(word)
			p.logger().Debug("challenge started", "length", len(word))
			p.env.say("The screen lights up. Guess the hidden word, one letter at a time.")
		}
		p.showBoard()
		return stay, true, nil

	case state.CmdGuess, state.CmdSolve:
		if prog.Solved {
			p.env.say("The challenge is already solved.")
			return stay, true, nil
		}
		if p.game == nil {
			p.env.warn("The challenge hasn't started. Type 'start challenge'.")
			return stay, true, nil
		}
		var err error
		if cmd.Type == state.CmdGuess {
			_, err = p.game.GuessLetter(cmd.Arg)
		} else {
			_, err = p.game.GuessWord(cmd.Arg)
		}
		switch {
		case errors.Is(err, puzzle.ErrInvalidGuess):
			p.env.warn("Guess a single letter.")
			return stay, true, nil
		case errors.Is(err, puzzle.ErrAlreadyGuessed):
			p.env.warn("You already guessed '%s'.", cmd.Arg)
			return stay, true, nil
		case err != nil:
			return stay, true, err
		}
		return p.settle(gs, prog), true, nil

	case state.CmdTake:
		if canonicalItem(cmd.Arg) != state.ItemHardDisk {
			return stay, false, nil
		}
		switch {
		case gs.HasItem(state.ItemHardDisk):
			p.env.say("You already have the hard disk.")
		case prog.Solved:
			gs.AddItem(state.ItemHardDisk)
			prog.RewardTaken = true
			p.env.say("You lift the hard disk out of the case and put it in your backpack.")
		default:
			p.env.warn("The glass case is sealed.")
		}
		return stay, true, nil
	}
	return stay, false, nil
}

// settle reacts to the puzzle state after a guess.
func (p *ProjectRoom) settle(gs *state.GameState, prog *state.ProjectRoomProgress) step {
	switch p.game.Status() {
	case puzzle.Solved:
		prog.Solved = true
		gs.Visit(p.id).Completed = true
		points := ScoreProjectRoomBase + ScoreProjectRoomBonus*p.game.AttemptsLeft()
		gs.AwardOnce("projectroom_solved", points)
		p.env.say("The word was '%s'. The glass case clicks open. (+%d points)", p.game.Word(), points)
		p.game = nil
		return stay
	case puzzle.Failed:
		p.env.warn("Out of attempts. The word was '%s'. An alarm sounds and you are pushed back into the corridor.", p.game.Word())
		p.game = nil
		return moveTo(state.RoomCorridor)
	}
	p.showBoard()
	return stay
}
