package rooms

import (
	"context"
	"testing"

	"github.com/jwebster45206/school-maze/pkg/puzzle"
	"github.com/jwebster45206/school-maze/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// x² + x - 2 > 0 holds for 5 and fails for 0.
var fixedQuiz = puzzle.Inequality{A: 1, B: 1, C: -2, Op: ">"}

func newTestCorridor(env *Env, draw float64) *Corridor {
	c := NewCorridor(env)
	c.Chance = func() float64 { return draw }
	c.NewQuiz = func() puzzle.Inequality { return fixedQuiz }
	return c
}

func TestCorridor_EncountersUntilCompleted(t *testing.T) {
	env, script := newTestEnv(
		"5", "go classroom2015",
		"5", "go classroom2015",
		"5", "go classroom2015",
		"go classroom2015",
	)
	c := newTestCorridor(env, 0)
	gs := state.NewGameState()

	for i := range 4 {
		res, err := c.Enter(context.Background(), gs)
		require.NoError(t, err, "visit %d", i)
		assert.Equal(t, Result{Next: state.RoomClassroom}, res)
	}

	visit := gs.Visit(state.RoomCorridor)
	assert.Equal(t, 0, visit.RemainingEncounters)
	assert.True(t, visit.Completed)
	assert.Equal(t, 3*ScoreCorridorQuiz, gs.Score)
	assert.Equal(t, 0, script.Remaining())
	assert.True(t, script.Contains("manual slips from his bag"))
	assert.True(t, script.Contains("You don't see any movement"))
}

func TestCorridor_NoEncounterAboveThreshold(t *testing.T) {
	env, script := newTestEnv("go frontdeskoffice")
	c := newTestCorridor(env, EncounterProbability)
	gs := state.NewGameState()

	res, err := c.Enter(context.Background(), gs)
	require.NoError(t, err)
	assert.Equal(t, state.RoomFrontDesk, res.Next)
	assert.Equal(t, state.CorridorEncounters, gs.Visit(state.RoomCorridor).RemainingEncounters)
	assert.NotContains(t, script.Prompts, "Enter an integer: ")
}

func TestCorridor_FailedQuizCostsHealth(t *testing.T) {
	env, script := newTestEnv("not a number", "0", "go projectroom3")
	c := newTestCorridor(env, 0)
	gs := state.NewGameState()

	res, err := c.Enter(context.Background(), gs)
	require.NoError(t, err)
	assert.Equal(t, state.RoomProjectRoom, res.Next)
	assert.Equal(t, state.StartingHealth-1, gs.Health)
	assert.Equal(t, PenaltyCorridorQuiz, gs.Score)
	assert.Equal(t, state.CorridorEncounters, gs.Visit(state.RoomCorridor).RemainingEncounters)
	assert.True(t, script.Contains("Invalid input"))
	assert.True(t, script.Contains("satisfies this inequality:\n  1x² + 1x - 2 > 0"))
}

func TestCorridor_DeathAtZeroHealth(t *testing.T) {
	env, script := newTestEnv("0", "look around")
	c := newTestCorridor(env, 0)
	gs := state.NewGameState()
	gs.Health = 1

	res, err := c.Enter(context.Background(), gs)
	require.NoError(t, err)
	assert.Equal(t, SignalDeath, res.Signal)
	assert.Equal(t, 0, gs.Health)
	// no further commands are read
	assert.Equal(t, 1, script.Remaining())
}

func TestCorridor_TakeManualOnce(t *testing.T) {
	env, script := newTestEnv("take manual", "take manual", "check inventory", "go studylandscape")
	c := newTestCorridor(env, 0)
	gs := state.NewGameState()
	visit := gs.Visit(state.RoomCorridor)
	visit.Completed = true
	visit.RemainingEncounters = 0

	res, err := c.Enter(context.Background(), gs)
	require.NoError(t, err)
	assert.Equal(t, state.RoomStudy, res.Next)
	assert.Equal(t, 1, countItem(gs, state.ItemManual))
	assert.Len(t, script.Alerts, 1)
}

func TestCorridor_ManualHiddenBeforeCompletion(t *testing.T) {
	env, _ := newTestEnv("take manual", "back", "go classroom2015")
	c := newTestCorridor(env, 1)
	gs := state.NewGameState()

	_, err := c.Enter(context.Background(), gs)
	require.NoError(t, err)
	assert.False(t, gs.HasItem(state.ItemManual))
}
