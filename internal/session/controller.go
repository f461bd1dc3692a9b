// Package session wraps one sitting of the maze: it restores or starts a
// game, runs the loop and settles the save slot and leaderboard afterwards.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jwebster45206/school-maze/internal/logger"
	"github.com/jwebster45206/school-maze/pkg/console"
	"github.com/jwebster45206/school-maze/pkg/game"
	"github.com/jwebster45206/school-maze/pkg/rooms"
	"github.com/jwebster45206/school-maze/pkg/state"
	"github.com/jwebster45206/school-maze/pkg/storage"
	"github.com/jwebster45206/school-maze/pkg/textfilter"
)

const Banner = `****************************************************************************
*                      Welcome to the School Maze!                         *
*        Your goal is to explore all important rooms in the school.        *
*    You may need to solve challenges to collect items and unlock rooms.   *
*               Reach the final lab with the security key to win!          *
****************************************************************************`

// Controller owns the save slot and the leaderboard for a sitting.
type Controller struct {
	storage     storage.Storage
	leaderboard storage.Leaderboard
	console     console.Console
	loop        *game.Loop
	logger      *slog.Logger

	// now is swapped in tests.
	now func() time.Time
}

// Outcome reports how a sitting ended and the state it left behind.
type Outcome struct {
	Termination game.Termination
	State       *state.GameState
	Resumed     bool
}

func NewController(store storage.Storage, lb storage.Leaderboard, c console.Console, registry game.Registry, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	ctl := &Controller{
		storage:     store,
		leaderboard: lb,
		console:     c,
		logger:      log,
		now:         time.Now,
	}
	ctl.loop = game.New(registry, log)
	ctl.loop.OnTransition = ctl.checkpoint
	return ctl
}

// Run plays one sitting. playerName overrides the saved name when not empty.
// The returned error is set only when the game could not run properly; the
// outcome is still settled where possible.
func (c *Controller) Run(ctx context.Context, playerName string) (Outcome, error) {
	c.console.Display(Banner)
	c.showLeaderboard()

	gs, resumed := c.restore(ctx)
	switch {
	case playerName != "":
		gs.PlayerName = textfilter.SanitizeName(playerName)
	case gs.PlayerName == "":
		gs.PlayerName = textfilter.DefaultName
	}
	log := logger.WithSession(c.logger, gs.ID)
	log.Info("session started", "player", gs.PlayerName, "room", gs.CurrentRoom, "resumed", resumed)

	start := c.now()
	term, runErr := c.loop.Run(ctx, gs)
	elapsed := c.now().Sub(start)
	out := Outcome{Termination: term, State: gs, Resumed: resumed}

	// Settle even when the caller's context is done.
	settleCtx := context.WithoutCancel(ctx)

	// A broken world graph leaves the save as it was.
	if errors.Is(runErr, rooms.ErrUnknownRoom) {
		log.Error("game stopped on a configuration error", "error", runErr)
		return out, runErr
	}

	var err error
	switch term {
	case game.Win:
		gs.AddElapsed(elapsed)
		err = c.finishWin(settleCtx, gs)
	case game.Pause, game.InputClosed:
		gs.AddElapsed(elapsed)
		err = c.save(settleCtx, gs)
		if err == nil {
			c.console.Display("Progress saved. Run the game again to continue where you left off.")
		}
	case game.Quit:
		err = c.clear(settleCtx)
		gs.Reset()
		c.console.Display("Game progress cleared. Goodbye.")
	case game.Death:
		err = c.clear(settleCtx)
		c.console.Display("Your save has been cleared. Better luck next time.")
	}
	log.Info("session ended", "termination", term.String(), "score", gs.Score, "elapsed_seconds", gs.ElapsedSeconds)

	return out, errors.Join(runErr, err)
}

func (c *Controller) restore(ctx context.Context) (*state.GameState, bool) {
	gs, err := c.storage.LoadGameState(ctx)
	if err != nil {
		logger.WithError(c.logger, err).Warn("failed to load saved game, starting fresh")
	}
	if gs == nil {
		return state.NewGameState(), false
	}
	gs.Normalize()
	c.console.Display(fmt.Sprintf("Resuming your saved game in the %s.", gs.CurrentRoom))
	return gs, true
}

// checkpoint is best effort; a failed save must not stop the game.
func (c *Controller) checkpoint(ctx context.Context, gs *state.GameState) {
	gs.UpdatedAt = c.now().UTC()
	if err := c.storage.SaveGameState(ctx, gs); err != nil {
		logger.WithError(c.logger, err).Warn("checkpoint save failed", "room", gs.CurrentRoom)
	}
}

func (c *Controller) save(ctx context.Context, gs *state.GameState) error {
	gs.UpdatedAt = c.now().UTC()
	if err := c.storage.SaveGameState(ctx, gs); err != nil {
		c.console.Alert("Could not save your progress.")
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (c *Controller) clear(ctx context.Context) error {
	if err := c.storage.DeleteGameState(ctx); err != nil {
		return fmt.Errorf("failed to clear save: %w", err)
	}
	return nil
}

func (c *Controller) finishWin(ctx context.Context, gs *state.GameState) error {
	c.console.Display(fmt.Sprintf("Final score: %d. Time: %.2f seconds.", gs.Score, gs.ElapsedSeconds))

	var errs []error
	if gs.GameBeaten {
		if err := c.leaderboard.RecordResult(gs.PlayerName, gs.Score, gs.ElapsedSeconds); err != nil {
			errs = append(errs, fmt.Errorf("failed to record result: %w", err))
		} else {
			c.console.Display("Your result has been added to the leaderboard.")
		}
	}
	if err := c.clear(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Controller) showLeaderboard() {
	entries, err := c.leaderboard.TopEntries()
	if err != nil {
		logger.WithError(c.logger, err).Warn("failed to read leaderboard")
		return
	}
	c.console.Display(FormatLeaderboard(entries))
}

// FormatLeaderboard renders the ranking as a table.
func FormatLeaderboard(entries []storage.Entry) string {
	if len(entries) == 0 {
		return "Leaderboard: no results yet. Be the first!"
	}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncate(e.Name, textfilter.MaxNameLength),
			strconv.Itoa(e.Score),
			strconv.FormatFloat(e.Seconds, 'f', 2, 64),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Name", "Score", "Time (s)").
		Rows(rows...)
	return "Leaderboard\n" + t.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
