package rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwebster45206/school-maze/pkg/puzzle"
	"github.com/jwebster45206/school-maze/pkg/state"
)

// FrontDesk challenge variants.
const (
	ChallengeTrivia = "trivia"
	ChallengeChess  = "chess"
)

// TriviaQuestion is one front-desk question.
type TriviaQuestion struct {
	ID    string
	Stage puzzle.Stage
}

var TriviaPool = []TriviaQuestion{
	{ID: "germany", Stage: puzzle.Stage{
		Prompt:  "What is the capital of Germany?",
		Options: map[string]string{"a": "Munich", "b": "Berlin", "c": "Hamburg", "d": "Frankfurt"},
		Correct: "b",
	}},
	{ID: "france", Stage: puzzle.Stage{
		Prompt:  "What is the capital of France?",
		Options: map[string]string{"a": "Lyon", "b": "Marseille", "c": "Paris", "d": "Nice"},
		Correct: "c",
	}},
	{ID: "japan", Stage: puzzle.Stage{
		Prompt:  "What is the capital of Japan?",
		Options: map[string]string{"a": "Tokyo", "b": "Osaka", "c": "Kyoto", "d": "Hiroshima"},
		Correct: "a",
	}},
	{ID: "netherlands", Stage: puzzle.Stage{
		Prompt:  "What is the capital of the Netherlands?",
		Options: map[string]string{"a": "Rotterdam", "b": "The Hague", "c": "Utrecht", "d": "Amsterdam"},
		Correct: "d",
	}},
}

func findTrivia(id string) (TriviaQuestion, bool) {
	for _, q := range TriviaPool {
		if q.ID == id {
			return q, true
		}
	}
	return TriviaQuestion{}, false
}

// FrontDesk asks the secretary's question. The reward is the battery.
type FrontDesk struct {
	room
	challenge string
}

func NewFrontDesk(env *Env, challenge string) *FrontDesk {
	if challenge != ChallengeChess {
		challenge = ChallengeTrivia
	}
	help := []string{
		"- approach secretary   : Ask the secretary for help.",
		"- answer <a|b|c|d>     : Answer her question.",
		"- take battery         : Take the battery once it is offered.",
	}
	if challenge == ChallengeChess {
		help[1] = "- answer <move>        : Play a move, e.g. 'answer Qxf7#' or 'answer h5f7'."
	}
	return &FrontDesk{
		room: room{
			env:   env,
			id:    state.RoomFrontDesk,
			exits: []state.RoomID{state.RoomCorridor},
			back:  state.RoomCorridor,
			help:  help,
		},
		challenge: challenge,
	}
}

func (f *FrontDesk) Enter(ctx context.Context, gs *state.GameState) (Result, error) {
	gs.Visit(f.id).Unlocked = true
	f.env.say("You enter the front desk office.\n" +
		"A robotic secretary sits behind a curved glass counter, sorting floating documents. " +
		"Behind her, a shelf holds spare batteries.")
	return f.loop(ctx, gs, func() { f.describe(gs) }, f.handle)
}

func (f *FrontDesk) describe(gs *state.GameState) {
	msg := "You see the secretary, the glass counter and a shelf of spare parts."
	if f.batteryOffered(gs) {
		msg += "\nA fresh battery lies on the counter."
	}
	f.env.say("%s\n- Possible exits: %s", msg, f.exitList())
}

func (f *FrontDesk) batteryOffered(gs *state.GameState) bool {
	return gs.FrontDeskProgress().RewardSpawned && !gs.HasItem(state.ItemBattery)
}

func (f *FrontDesk) handle(_ context.Context, gs *state.GameState, cmd state.Command) (step, bool, error) {
	p := gs.FrontDeskProgress()

	switch cmd.Type {
	case state.CmdApproach, state.CmdTalk:
		if cmd.Type == state.CmdApproach && cmd.Arg != "secretary" && cmd.Arg != "the secretary" {
			f.env.warn("You can't approach '%s'. Try: secretary", cmd.Arg)
			return stay, true, nil
		}
		if p.RewardSpawned {
			f.env.say(`"You already passed my test. Take the battery if you still need it."`)
			return stay, true, nil
		}
		if p.Question == "" {
			p.Question = f.pick()
			f.logger().Debug("question drawn", "question", p.Question)
		}
		if err := f.showQuestion(p.Question); err != nil {
			return stay, true, err
		}
		return stay, true, nil

	case state.CmdAnswer:
		if p.RewardSpawned {
			f.env.say(`"You already passed my test."`)
			return stay, true, nil
		}
		if p.Question == "" {
			f.env.warn("There is no active question. Try 'approach secretary'.")
			return stay, true, nil
		}
		return f.answer(gs, p, cmd)

	case state.CmdTake:
		if canonicalItem(cmd.Arg) != state.ItemBattery {
			return stay, false, nil
		}
		switch {
		case gs.HasItem(state.ItemBattery):
			f.env.say("You already have a battery.")
		case p.RewardSpawned:
			gs.AddItem(state.ItemBattery)
			f.env.say("You take the battery and put it in your backpack.")
		default:
			f.env.warn(`"Those are not for you. Not yet."`)
		}
		return stay, true, nil
	}
	return stay, false, nil
}

func (f *FrontDesk) pick() string {
	if f.challenge == ChallengeChess {
		return puzzle.MatePuzzles[f.env.Rand.IntN(len(puzzle.MatePuzzles))].ID
	}
	return TriviaPool[f.env.Rand.IntN(len(TriviaPool))].ID
}

func (f *FrontDesk) showQuestion(id string) error {
	if f.challenge == ChallengeChess {
		p, ok := puzzle.FindMatePuzzle(id)
		if !ok {
			return fmt.Errorf("unknown chess position %q", id)
		}
		board, err := p.Board()
		if err != nil {
			return err
		}
		f.env.say("\"Solve this and the battery is yours.\"\n%s", board)
		return nil
	}
	q, ok := findTrivia(id)
	if !ok {
		return fmt.Errorf("unknown trivia question %q", id)
	}
	f.env.say("\"Answer correctly and the battery is yours.\"\n%s", q.Stage.Render())
	return nil
}

func (f *FrontDesk) answer(gs *state.GameState, p *state.FrontDeskProgress, cmd state.Command) (step, bool, error) {
	var correct bool
	if f.challenge == ChallengeChess {
		mp, ok := puzzle.FindMatePuzzle(p.Question)
		if !ok {
			return stay, true, fmt.Errorf("unknown chess position %q", p.Question)
		}
		ok, err := mp.Check(cmd.Text)
		if errors.Is(err, puzzle.ErrNotation) {
			f.env.warn("That is not a legal move here. Use notation like Qxf7# or h5f7.")
			return stay, true, nil
		}
		if err != nil {
			return stay, true, err
		}
		correct = ok
	} else {
		q, ok := findTrivia(p.Question)
		if !ok {
			return stay, true, fmt.Errorf("unknown trivia question %q", p.Question)
		}
		ok, err := q.Stage.Check(cmd.Arg)
		if err != nil {
			f.env.warn("Invalid choice. Use A, B, C, or D.")
			return stay, true, nil
		}
		correct = ok
	}

	// the question is spent either way
	p.Question = ""
	if !correct {
		f.env.warn(`"Wrong." The secretary points at the door. You are escorted back to the corridor.`)
		return moveTo(state.RoomCorridor), true, nil
	}
	p.RewardSpawned = true
	gs.Visit(f.id).Completed = true
	gs.AwardOnce("frontdesk_solved", ScoreFrontDesk)
	f.env.say(`"Correct." She places a fresh battery on the counter. Type 'take battery'.`)
	return stay, true, nil
}
