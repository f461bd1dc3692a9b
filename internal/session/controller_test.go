package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jwebster45206/school-maze/pkg/console"
	"github.com/jwebster45206/school-maze/pkg/game"
	"github.com/jwebster45206/school-maze/pkg/rooms"
	"github.com/jwebster45206/school-maze/pkg/state"
	"github.com/jwebster45206/school-maze/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// funcRoom runs steps in order, one per entry, then reports end of input.
type funcRoom struct {
	id    state.RoomID
	steps []func(gs *state.GameState) rooms.Result
}

func (r *funcRoom) ID() state.RoomID      { return r.id }
func (r *funcRoom) Exits() []state.RoomID { return nil }

func (r *funcRoom) Enter(_ context.Context, gs *state.GameState) (rooms.Result, error) {
	if len(r.steps) == 0 {
		return rooms.Result{}, io.EOF
	}
	step := r.steps[0]
	r.steps = r.steps[1:]
	return step(gs), nil
}

func signal(sig rooms.Signal) func(*state.GameState) rooms.Result {
	return func(*state.GameState) rooms.Result { return rooms.Result{Signal: sig} }
}

func goTo(id state.RoomID) func(*state.GameState) rooms.Result {
	return func(*state.GameState) rooms.Result { return rooms.Result{Next: id} }
}

type fixture struct {
	store *storage.MockStorage
	board *storage.MockLeaderboard
	out   *console.Script
	ctl   *Controller
	clock time.Time
}

func newFixture(t *testing.T, handlers ...rooms.Handler) *fixture {
	t.Helper()
	reg := rooms.NewRegistry()
	for _, h := range handlers {
		require.NoError(t, reg.Register(h))
	}
	f := &fixture{
		store: storage.NewMockStorage(),
		board: storage.NewMockLeaderboard(),
		out:   console.NewScript(),
		clock: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.ctl = NewController(f.store, f.board, f.out, reg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	// every reading of the clock advances it by 30 seconds
	f.ctl.now = func() time.Time {
		f.clock = f.clock.Add(30 * time.Second)
		return f.clock
	}
	return f
}

func TestController_WinRecordsResult(t *testing.T) {
	corridor := &funcRoom{id: state.RoomCorridor, steps: []func(*state.GameState) rooms.Result{
		goTo(state.RoomFinal),
	}}
	final := &funcRoom{id: state.RoomFinal, steps: []func(*state.GameState) rooms.Result{
		func(gs *state.GameState) rooms.Result {
			gs.Score = 120
			gs.GameBeaten = true
			return rooms.Result{Signal: rooms.SignalWin}
		},
	}}
	f := newFixture(t, corridor, final)

	out, err := f.ctl.Run(context.Background(), "  Ada  ")
	require.NoError(t, err)
	assert.Equal(t, game.Win, out.Termination)
	assert.Equal(t, "Ada", out.State.PlayerName)
	assert.False(t, out.Resumed)

	entries, err := f.board.TopEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ada", entries[0].Name)
	assert.Equal(t, 120, entries[0].Score)
	assert.InDelta(t, 60.0, entries[0].Seconds, 0.001)

	assert.False(t, f.store.HasSave(), "a won game leaves no save behind")
	assert.Equal(t, 1, f.store.SaveCount(), "one checkpoint on the transition")
	assert.True(t, f.out.Contains("Welcome to the School Maze!"))
	assert.True(t, f.out.Contains("no results yet"))
}

func TestController_WinWithoutBeatenFlagIsNotRecorded(t *testing.T) {
	f := newFixture(t, &funcRoom{id: state.RoomCorridor, steps: []func(*state.GameState) rooms.Result{
		signal(rooms.SignalWin),
	}})

	_, err := f.ctl.Run(context.Background(), "Ada")
	require.NoError(t, err)
	entries, _ := f.board.TopEntries()
	assert.Empty(t, entries)
}

func TestController_PauseSavesAndResumes(t *testing.T) {
	classroom := &funcRoom{id: state.RoomClassroom, steps: []func(*state.GameState) rooms.Result{
		func(gs *state.GameState) rooms.Result {
			gs.Score = 30
			return rooms.Result{Signal: rooms.SignalPause}
		},
	}}
	corridor := &funcRoom{id: state.RoomCorridor, steps: []func(*state.GameState) rooms.Result{
		goTo(state.RoomClassroom),
	}}
	f := newFixture(t, corridor, classroom)

	out, err := f.ctl.Run(context.Background(), "Grace")
	require.NoError(t, err)
	assert.Equal(t, game.Pause, out.Termination)
	require.True(t, f.store.HasSave())

	saved, err := f.store.LoadGameState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, state.RoomClassroom, saved.CurrentRoom)
	assert.Equal(t, 30, saved.Score)
	assert.Equal(t, "Grace", saved.PlayerName)
	assert.InDelta(t, 60.0, saved.ElapsedSeconds, 0.001)
	assert.False(t, saved.UpdatedAt.IsZero())

	// a second sitting picks up in the classroom with the saved name
	classroom.steps = append(classroom.steps, signal(rooms.SignalPause))
	out, err = f.ctl.Run(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, out.Resumed)
	assert.Equal(t, "Grace", out.State.PlayerName)
	assert.InDelta(t, 90.0, out.State.ElapsedSeconds, 0.001)
	assert.True(t, f.out.Contains("Resuming your saved game in the classroom2015."))
}

func TestController_InputClosedSaves(t *testing.T) {
	f := newFixture(t, &funcRoom{id: state.RoomCorridor})

	out, err := f.ctl.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, game.InputClosed, out.Termination)
	assert.Equal(t, "Anonymous", out.State.PlayerName)
	assert.True(t, f.store.HasSave())
}

func TestController_QuitClearsAndResets(t *testing.T) {
	f := newFixture(t, &funcRoom{id: state.RoomCorridor, steps: []func(*state.GameState) rooms.Result{
		func(gs *state.GameState) rooms.Result {
			gs.AddItem(state.ItemManual)
			gs.Score = 10
			return rooms.Result{Signal: rooms.SignalQuit}
		},
	}})
	require.NoError(t, f.store.SaveGameState(context.Background(), state.NewGameState()))

	out, err := f.ctl.Run(context.Background(), "Linus")
	require.NoError(t, err)
	assert.Equal(t, game.Quit, out.Termination)
	assert.False(t, f.store.HasSave())
	assert.Empty(t, out.State.Inventory)
	assert.Zero(t, out.State.Score)
	assert.Equal(t, "Linus", out.State.PlayerName)
}

func TestController_DeathClearsWithoutEntry(t *testing.T) {
	f := newFixture(t, &funcRoom{id: state.RoomCorridor, steps: []func(*state.GameState) rooms.Result{
		func(gs *state.GameState) rooms.Result {
			gs.Health = 0
			gs.Score = 40
			return rooms.Result{Signal: rooms.SignalDeath}
		},
	}})
	require.NoError(t, f.store.SaveGameState(context.Background(), state.NewGameState()))

	out, err := f.ctl.Run(context.Background(), "Ada")
	require.NoError(t, err)
	assert.Equal(t, game.Death, out.Termination)
	assert.False(t, f.store.HasSave())
	entries, _ := f.board.TopEntries()
	assert.Empty(t, entries)
}

func TestController_SaveWithoutHealthEndsInDeath(t *testing.T) {
	corridor := &funcRoom{id: state.RoomCorridor, steps: []func(*state.GameState) rooms.Result{
		goTo(state.RoomClassroom),
	}}
	f := newFixture(t, corridor)
	dead := state.NewGameState()
	dead.Health = 0
	require.NoError(t, f.store.SaveGameState(context.Background(), dead))

	out, err := f.ctl.Run(context.Background(), "Ada")
	require.NoError(t, err)
	assert.Equal(t, game.Death, out.Termination)
	assert.Len(t, corridor.steps, 1)
	assert.False(t, f.store.HasSave())
	entries, _ := f.board.TopEntries()
	assert.Empty(t, entries)
}

func TestController_CorruptSaveStartsFresh(t *testing.T) {
	f := newFixture(t, &funcRoom{id: state.RoomCorridor, steps: []func(*state.GameState) rooms.Result{
		signal(rooms.SignalQuit),
	}})
	f.store.SetRaw([]byte("{garbage"))

	out, err := f.ctl.Run(context.Background(), "Ada")
	require.NoError(t, err)
	assert.False(t, out.Resumed)
	assert.Equal(t, state.RoomCorridor, out.State.CurrentRoom)
}

func TestController_CheckpointFailureKeepsPlaying(t *testing.T) {
	corridor := &funcRoom{id: state.RoomCorridor, steps: []func(*state.GameState) rooms.Result{
		goTo(state.RoomClassroom),
	}}
	classroom := &funcRoom{id: state.RoomClassroom, steps: []func(*state.GameState) rooms.Result{
		signal(rooms.SignalQuit),
	}}
	f := newFixture(t, corridor, classroom)
	f.store.SetSaveError(errors.New("disk full"))

	out, err := f.ctl.Run(context.Background(), "Ada")
	require.NoError(t, err)
	assert.Equal(t, game.Quit, out.Termination)
}

func TestController_PauseSaveFailureIsReported(t *testing.T) {
	f := newFixture(t, &funcRoom{id: state.RoomCorridor, steps: []func(*state.GameState) rooms.Result{
		signal(rooms.SignalPause),
	}})
	f.store.SetSaveError(errors.New("disk full"))

	_, err := f.ctl.Run(context.Background(), "Ada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotEmpty(t, f.out.Alerts)
}

func TestController_UnknownRoomKeepsSave(t *testing.T) {
	f := newFixture(t, &funcRoom{id: state.RoomCorridor})
	saved := state.NewGameState()
	saved.CurrentRoom = "basement"
	require.NoError(t, f.store.SaveGameState(context.Background(), saved))

	_, err := f.ctl.Run(context.Background(), "Ada")
	require.ErrorIs(t, err, rooms.ErrUnknownRoom)
	assert.True(t, f.store.HasSave())
}

func TestController_CancelledContextStillSaves(t *testing.T) {
	f := newFixture(t, &funcRoom{id: state.RoomCorridor})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := f.ctl.Run(ctx, "Ada")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, game.Pause, out.Termination)
	assert.True(t, f.store.HasSave())
}

func TestFormatLeaderboard(t *testing.T) {
	assert.Contains(t, FormatLeaderboard(nil), "no results yet")

	got := FormatLeaderboard([]storage.Entry{
		{Name: "Carol", Score: 600, Seconds: 200},
		{Name: "A very long player name indeed", Score: 500, Seconds: 90.456},
	})
	assert.Contains(t, got, "Leaderboard")
	assert.Contains(t, got, "Carol")
	assert.Contains(t, got, "600")
	assert.Contains(t, got, "90.46")
	assert.Contains(t, got, "A very long player")
	assert.NotContains(t, got, "indeed")
}
