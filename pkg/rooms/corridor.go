package rooms

import (
	"context"
	"strconv"
	"strings"

	"github.com/jwebster45206/school-maze/pkg/puzzle"
	"github.com/jwebster45206/school-maze/pkg/state"
)

const flagCorridorSeen = "corridor_seen"

// Corridor is the hub. Entering it may trigger the cyborg-teacher's quiz
// until enough quizzes have been passed.
type Corridor struct {
	room
	// Chance returns a draw in [0, 1) compared against EncounterProbability.
	Chance func() float64
	// NewQuiz generates the inequality for one encounter.
	NewQuiz func() puzzle.Inequality
}

func NewCorridor(env *Env) *Corridor {
	c := &Corridor{
		room: room{
			env:   env,
			id:    state.RoomCorridor,
			exits: []state.RoomID{state.RoomClassroom, state.RoomProjectRoom, state.RoomStudy, state.RoomFrontDesk},
			help: []string{
				"- go <room name>       : Move to another room. Example: go classroom2015",
				"- take manual          : Pick up the manual once it appears.",
			},
		},
	}
	c.Chance = env.Rand.Float64
	c.NewQuiz = func() puzzle.Inequality { return puzzle.NewInequality(env.Rand) }
	return c
}

func (c *Corridor) Enter(ctx context.Context, gs *state.GameState) (Result, error) {
	if gs.Flags[flagCorridorSeen] {
		c.env.say("You are back in the school's main corridor. The glass walls hum quietly.")
	} else {
		gs.Flags[flagCorridorSeen] = true
		c.env.say("You are standing in the school's main corridor.\n" +
			"A long corridor stretches out with many doors and glass walls on both sides. " +
			"Behind these doors are rooms, waiting to be explored.")
	}

	visit := gs.Visit(c.id)
	if !visit.Completed && visit.RemainingEncounters > 0 && c.Chance() < EncounterProbability {
		res, ended, err := c.encounter(ctx, gs, visit)
		if err != nil || ended {
			return res, err
		}
	} else {
		c.env.say("You don't see any movement in the corridor.")
	}

	return c.loop(ctx, gs, func() { c.describe(gs) }, c.handle)
}

// encounter runs one quiz. ended is true when the player died.
func (c *Corridor) encounter(ctx context.Context, gs *state.GameState, visit *state.VisitState) (Result, bool, error) {
	q := c.NewQuiz()
	c.env.say("A cyborg-teacher finds you wandering around aimlessly and decides to ask you a question.\n" +
		"He won't let you go until you give an answer.\n" +
		"Give an integer that satisfies this inequality:\n  %s", q)

	var x int
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, false, err
		}
		line, err := c.env.Console.Prompt("Enter an integer: ")
		if err != nil {
			return Result{}, false, err
		}
		x, err = strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			break
		}
		c.env.warn("Invalid input. Please enter an integer.")
	}

	if q.Check(x) {
		gs.Score += ScoreCorridorQuiz
		visit.RemainingEncounters--
		c.env.say("Correct! You managed to avoid his punishment. He goes away.")
		if visit.RemainingEncounters <= 0 {
			visit.RemainingEncounters = 0
			visit.Completed = true
			c.env.say("It seems you won't be seeing him again. As he leaves, a worn manual slips from his bag onto the floor.")
		}
		c.logger().Debug("quiz passed", "remaining", visit.RemainingEncounters)
		return Result{}, false, nil
	}

	gs.Score += PenaltyCorridorQuiz
	hp := gs.Damage(1)
	c.env.warn("The cyborg-teacher is really unhappy with your answer. You lost 1 HP.")
	c.logger().Debug("quiz failed", "health", hp)
	if gs.IsDead() {
		c.env.warn("You died. The game is over.")
		return Result{Signal: SignalDeath}, true, nil
	}
	return Result{}, false, nil
}

func (c *Corridor) describe(gs *state.GameState) {
	var b strings.Builder
	b.WriteString("You take a look around.\n")
	b.WriteString("Everything looks futuristic. There are strange electronics everywhere. You see several labeled doors.\n")
	b.WriteString("- Possible doors: " + c.exitList() + "\n")
	if c.manualOnFloor(gs) {
		b.WriteString("- A worn manual lies on the floor.\n")
	}
	b.WriteString("- Your health: " + strconv.Itoa(gs.Health) + " HP")
	c.env.say("%s", b.String())
}

func (c *Corridor) manualOnFloor(gs *state.GameState) bool {
	return gs.Visit(c.id).Completed && !gs.HasItem(state.ItemManual) && !gs.Flags["manual_taken"]
}

func (c *Corridor) handle(_ context.Context, gs *state.GameState, cmd state.Command) (step, bool, error) {
	switch cmd.Type {
	case state.CmdBack:
		c.env.warn("You are already in the main corridor.")
		return stay, true, nil
	case state.CmdTake:
		if canonicalItem(cmd.Arg) != state.ItemManual || !c.manualOnFloor(gs) {
			c.env.warn("There is no '%s' here to take.", cmd.Arg)
			return stay, true, nil
		}
		gs.AddItem(state.ItemManual)
		gs.Flags["manual_taken"] = true
		c.env.say("You pick up the manual and put it in your backpack. Try 'read manual'.")
		return stay, true, nil
	}
	return stay, false, nil
}
