// Package rooms holds the maze's room handlers. Each handler runs a command
// loop against the shared GameState and returns where the player goes next.
package rooms

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/jwebster45206/school-maze/pkg/console"
	"github.com/jwebster45206/school-maze/pkg/state"
)

// Signal ends the game loop.
type Signal int

const (
	SignalNone Signal = iota
	SignalQuit
	SignalPause
	SignalDeath
	SignalWin
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalQuit:
		return "quit"
	case SignalPause:
		return "pause"
	case SignalDeath:
		return "death"
	case SignalWin:
		return "win"
	default:
		return fmt.Sprintf("signal(%d)", int(s))
	}
}

// Result is what a handler hands back to the game loop. An empty Next with
// no signal means the player stays put.
type Result struct {
	Next   state.RoomID
	Signal Signal
}

// Handler runs one room.
type Handler interface {
	ID() state.RoomID
	Exits() []state.RoomID
	Enter(ctx context.Context, gs *state.GameState) (Result, error)
}

// Env carries the collaborators every room needs.
type Env struct {
	Console console.Console
	Rand    *rand.Rand
	Logger  *slog.Logger
}

// NewEnv fills in a time-seeded generator and the default logger when they
// are nil.
func NewEnv(c console.Console, rng *rand.Rand, logger *slog.Logger) *Env {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Env{Console: c, Rand: rng, Logger: logger}
}

func (e *Env) say(format string, args ...any) {
	e.Console.Display(fmt.Sprintf(format, args...))
}

func (e *Env) warn(format string, args ...any) {
	e.Console.Alert(fmt.Sprintf(format, args...))
}

// step is the outcome of one command inside a room loop.
type step struct {
	done   bool
	result Result
}

var stay = step{}

func moveTo(room state.RoomID) step {
	return step{done: true, result: Result{Next: room}}
}

func raise(sig Signal) step {
	return step{done: true, result: Result{Signal: sig}}
}

// commandFunc handles room-specific verbs. It reports false for commands the
// room leaves to the shared vocabulary.
type commandFunc func(ctx context.Context, gs *state.GameState, cmd state.Command) (step, bool, error)

// room is embedded by every handler for the shared vocabulary and exits.
type room struct {
	env   *Env
	id    state.RoomID
	exits []state.RoomID
	back  state.RoomID
	help  []string
}

func (r *room) ID() state.RoomID      { return r.id }
func (r *room) Exits() []state.RoomID { return slices.Clone(r.exits) }

func (r *room) logger() *slog.Logger {
	if r.env.Logger == nil {
		return slog.Default().With("room", r.id)
	}
	return r.env.Logger.With("room", r.id)
}

// gate enforces a one-time item requirement. Once passed, the room stays
// unlocked even if the item is later lost.
func (r *room) gate(gs *state.GameState, item, denied, granted string) bool {
	v := gs.Visit(r.id)
	if v.Unlocked {
		return true
	}
	if !gs.HasItem(item) {
		r.env.warn("%s", denied)
		r.logger().Debug("gate closed", "item", item)
		return false
	}
	v.Unlocked = true
	if granted != "" {
		r.env.say("%s", granted)
	}
	return true
}

// loop reads commands until a handler or the shared vocabulary ends the visit.
func (r *room) loop(ctx context.Context, gs *state.GameState, describe func(), handle commandFunc) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		line, err := r.env.Console.Prompt("\n> ")
		if err != nil {
			return Result{}, err
		}
		cmd := state.ParseCommand(line)

		if handle != nil {
			s, handled, err := handle(ctx, gs, cmd)
			if err != nil {
				return Result{}, err
			}
			if handled {
				if s.done {
					return s.result, nil
				}
				continue
			}
		}
		if s := r.common(gs, cmd, describe); s.done {
			return s.result, nil
		}
	}
}

func (r *room) common(gs *state.GameState, cmd state.Command, describe func()) step {
	switch cmd.Type {
	case state.CmdLook:
		describe()
	case state.CmdHelp:
		r.env.say("Available commands:\n%s", strings.Join(append(slices.Clone(r.help), commonHelp...), "\n"))
	case state.CmdStatus:
		r.env.say("%s", gs.DescribeStatus())
	case state.CmdInventory:
		r.env.say("%s", gs.DescribeInventory())
	case state.CmdRead:
		r.read(gs, cmd.Arg)
	case state.CmdGo:
		dest := state.RoomID(cmd.Arg)
		if slices.Contains(r.exits, dest) {
			return moveTo(dest)
		}
		r.env.warn("You can't go to '%s' from here.", cmd.Arg)
	case state.CmdBack:
		if r.back == "" {
			r.env.warn("There is no way back from here.")
			return stay
		}
		return moveTo(r.back)
	case state.CmdPause:
		r.env.say("Game paused.")
		return raise(SignalPause)
	case state.CmdQuit:
		r.env.say("You drop your backpack and exit the maze. Progress not saved.")
		return raise(SignalQuit)
	case state.CmdTake:
		r.env.warn("There is no '%s' here to take.", cmd.Arg)
	default:
		r.env.warn("Unknown command. Type '?' to see available commands.")
	}
	return stay
}

func (r *room) read(gs *state.GameState, what string) {
	if canonicalItem(what) != state.ItemManual {
		r.env.warn("There is nothing like that to read.")
		return
	}
	if !gs.HasItem(state.ItemManual) {
		r.env.warn("You don't have a manual.")
		return
	}
	r.env.say("%s", manualText)
}

// exitList renders exits for look-around output.
func (r *room) exitList() string {
	if len(r.exits) == 0 {
		return "none"
	}
	names := make([]string, len(r.exits))
	for i, e := range r.exits {
		names[i] = string(e)
	}
	return strings.Join(names, ", ")
}
