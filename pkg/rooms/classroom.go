package rooms

import (
	"context"
	"errors"

	"github.com/jwebster45206/school-maze/pkg/puzzle"
	"github.com/jwebster45206/school-maze/pkg/state"
)

var classroomStages = []puzzle.Stage{
	{
		Prompt: `The cyborg twitches. "IDENT... IDENT... threat proximity..." How do you respond?`,
		Options: map[string]string{
			"a": "Keep distance, hands visible: 'It's okay. I mean no harm.'",
			"b": "Bark: 'Stand down and obey!'",
			"c": "Reach for his panel: 'Let me fix you...'",
			"d": "Demand: 'Give me the keycard now!'",
		},
		Correct: "a",
		Success: "He relaxes a fraction. '...non-hostile posture detected.'",
	},
	{
		Prompt: `"Context check... role?"`,
		Options: map[string]string{
			"a": "Casual: 'Just passing through.'",
			"b": "Supportive: 'I'm a student. You were the janitor here.'",
			"c": "Technical: 'I can connect you to the network.'",
			"d": "Dismissive: 'Doesn't matter. Move.'",
		},
		Correct: "b",
		Success: `He nods. "Janitorial model. Never connected to the network."`,
	},
	{
		Prompt: `"Purpose of interaction?"`,
		Options: map[string]string{
			"a": "Polite: 'I need a yellow keycard to continue, please.'",
			"b": "Vague: 'Stuff. Whatever you've got.'",
			"c": "Aggressive: 'Give it now or else.'",
			"d": "Techy: 'Let me override your safeties.'",
		},
		Correct: "a",
		Success: `He considers... "Purpose valid. Providing access."`,
	},
}

// Classroom hosts the janitor cyborg conversation that yields the keycard.
type Classroom struct {
	room
	stages []puzzle.Stage
}

func NewClassroom(env *Env) *Classroom {
	return &Classroom{
		room: room{
			env:   env,
			id:    state.RoomClassroom,
			exits: []state.RoomID{state.RoomCorridor},
			back:  state.RoomCorridor,
			help: []string{
				"- approach cyborg      : Begin or continue the conversation (requires battery).",
				"- talk                 : Re-show the current question.",
				"- answer <a|b|c|d>     : Pick an answer (or just type the letter).",
				"- search large desk    : Inspect the large desk.",
				"- take keycard         : Pick up the keycard once it is visible.",
			},
		},
		stages: classroomStages,
	}
}

func (c *Classroom) Enter(ctx context.Context, gs *state.GameState) (Result, error) {
	gs.Visit(c.id).Unlocked = true
	c.env.say("You step into Classroom 2.015.\n" +
		"Holographic desks shimmer beside ergonomic chairs. A larger desk stands at the front, " +
		"and wide windows flood the room with light. In the corner, a janitor cyborg sits rigidly.")
	return c.loop(ctx, gs, func() { c.describe(gs) }, c.handle)
}

func (c *Classroom) dialogue(gs *state.GameState) *puzzle.Dialogue {
	p := gs.ClassroomProgress()
	return puzzle.NewDialogue(c.stages).Resume(p.Stage, p.Missteps)
}

func (c *Classroom) keycardVisible(gs *state.GameState) bool {
	return gs.ClassroomProgress().RewardSpawned && !gs.HasItem(state.ItemKeycard)
}

func (c *Classroom) describe(gs *state.GameState) {
	msg := "You see holographic desks, a large desk, big windows, and the cyborg in the corner."
	if c.keycardVisible(gs) {
		msg += "\nOn the desk lies a yellow keycard."
	}
	c.env.say("%s\n- Possible exits: %s", msg, c.exitList())
}

func (c *Classroom) showQuestion(d *puzzle.Dialogue) {
	if q, ok := d.Current(); ok {
		c.env.say("%s", q.Render())
		return
	}
	if d.Status() == puzzle.Solved {
		c.env.say("The cyborg gestures to the desk. 'We are done here.'")
		return
	}
	c.env.say("The cyborg ignores you. Try 'approach cyborg'.")
}

func (c *Classroom) handle(_ context.Context, gs *state.GameState, cmd state.Command) (step, bool, error) {
	p := gs.ClassroomProgress()

	switch cmd.Type {
	case state.CmdApproach:
		if cmd.Arg != "cyborg" && cmd.Arg != "the cyborg" {
			c.env.warn("You can't approach '%s'. Try: cyborg", cmd.Arg)
			return stay, true, nil
		}
		if !gs.HasItem(state.ItemBattery) {
			c.env.warn(`"I need more energy." (You need a battery in your inventory to talk to him.)`)
			return stay, true, nil
		}
		d := c.dialogue(gs)
		if d.Status() == puzzle.NotStarted {
			d.Start()
			p.Active = true
			p.Stage, p.Missteps = d.Progress()
			c.env.say("You carefully approach the cyborg and slot the battery into his panel...")
		}
		c.showQuestion(d)
		return stay, true, nil

	case state.CmdTalk:
		c.showQuestion(c.dialogue(gs))
		return stay, true, nil

	case state.CmdAnswer:
		return c.answer(gs, cmd.Arg)

	case state.CmdSearch:
		if c.keycardVisible(gs) {
			c.env.say("On a pile of holo-slates rests a yellow keycard. You can take it.")
		} else {
			c.env.say("The desk has papers and cables, but nothing special.")
		}
		return stay, true, nil

	case state.CmdTake:
		if canonicalItem(cmd.Arg) != state.ItemKeycard {
			return stay, false, nil
		}
		switch {
		case gs.HasItem(state.ItemKeycard):
			c.env.say("You already have the keycard.")
		case p.RewardSpawned:
			gs.AddItem(state.ItemKeycard)
			c.env.say("You take the yellow keycard and put it in your backpack.")
		default:
			c.env.warn("There is no '%s' here to take.", cmd.Arg)
		}
		return stay, true, nil
	}
	return stay, false, nil
}

func (c *Classroom) answer(gs *state.GameState, choice string) (step, bool, error) {
	p := gs.ClassroomProgress()
	d := c.dialogue(gs)
	if !p.Active && d.Status() != puzzle.Solved {
		c.env.warn("There is no active question.")
		return stay, true, nil
	}

	outcome, err := d.Submit(choice)
	switch {
	case errors.Is(err, puzzle.ErrInvalidChoice):
		c.env.warn("Invalid choice. Use A, B, C, or D.")
		return stay, true, nil
	case errors.Is(err, puzzle.ErrFinished):
		c.env.say("The cyborg gestures to the desk. 'We are done here.'")
		return stay, true, nil
	case err != nil:
		c.env.warn("There is no active question.")
		return stay, true, nil
	}

	stage := c.stages[p.Stage-1]
	p.Stage, p.Missteps = d.Progress()

	switch outcome {
	case puzzle.Advanced:
		c.env.say("%s", stage.Success)
		c.showQuestion(d)
	case puzzle.Completed:
		c.env.say("%s", stage.Success)
		p.Active = false
		gs.Visit(c.id).Completed = true
		if !p.RewardSpawned {
			p.RewardSpawned = true
			gs.AwardOnce("classroom_solved", ScoreClassroom)
			c.env.say("The cyborg opens a panel and places a yellow keycard on the large desk.")
		}
	case puzzle.Misstep:
		gs.Score += PenaltyMisstep
		c.env.warn("Wrong answer. The cyborg stiffens.")
		c.showQuestion(d)
	case puzzle.Ejected:
		gs.Score += PenaltyMisstep
		p.Active = false
		c.env.warn("The cyborg's optics flash red. 'Clear the area.' You are pushed back into the corridor.")
		c.logger().Debug("ejected from conversation")
		return moveTo(state.RoomCorridor), true, nil
	}
	return stay, true, nil
}
