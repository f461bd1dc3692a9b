// Package game drives the room handlers until the player wins, dies, pauses
// or quits.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jwebster45206/school-maze/pkg/rooms"
	"github.com/jwebster45206/school-maze/pkg/state"
)

// Termination says why Run returned.
type Termination int

const (
	Quit Termination = iota
	Pause
	Death
	Win
	// InputClosed means the input stream ended mid-game.
	InputClosed
)

func (t Termination) String() string {
	switch t {
	case Quit:
		return "quit"
	case Pause:
		return "pause"
	case Death:
		return "death"
	case Win:
		return "win"
	case InputClosed:
		return "input_closed"
	default:
		return fmt.Sprintf("termination(%d)", int(t))
	}
}

// Registry resolves room identifiers.
type Registry interface {
	Lookup(id state.RoomID) (rooms.Handler, error)
}

// Loop dispatches the current room's handler and follows its result.
type Loop struct {
	registry Registry
	log      *slog.Logger
	// OnTransition runs after every room change, before the next room is
	// entered.
	OnTransition func(ctx context.Context, gs *state.GameState)
}

func New(registry Registry, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.Default()
	}
	return &Loop{registry: registry, log: log}
}

// Run plays from gs.CurrentRoom. Errors are either configuration errors
// (unknown room) or failures reading input other than end of stream.
func (l *Loop) Run(ctx context.Context, gs *state.GameState) (Termination, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Pause, err
		}
		if gs.IsDead() {
			l.log.Info("no health left", "room", gs.CurrentRoom)
			return Death, nil
		}

		h, err := l.registry.Lookup(gs.CurrentRoom)
		if err != nil {
			l.log.Error("room lookup failed", "room", gs.CurrentRoom, "error", err)
			return Quit, err
		}

		res, err := h.Enter(ctx, gs)
		if errors.Is(err, io.EOF) {
			l.log.Debug("input closed", "room", gs.CurrentRoom)
			return InputClosed, nil
		}
		if err != nil {
			return Pause, fmt.Errorf("room %s: %w", gs.CurrentRoom, err)
		}

		switch res.Signal {
		case rooms.SignalQuit:
			return Quit, nil
		case rooms.SignalPause:
			return Pause, nil
		case rooms.SignalDeath:
			return Death, nil
		case rooms.SignalWin:
			return Win, nil
		}

		if res.Next == "" || res.Next == gs.CurrentRoom {
			continue
		}
		if _, err := l.registry.Lookup(res.Next); err != nil {
			l.log.Error("handler returned unknown room", "from", gs.CurrentRoom, "to", res.Next)
			return Quit, err
		}
		l.log.Debug("room transition", "from", gs.CurrentRoom, "to", res.Next)
		gs.MoveTo(res.Next)
		if l.OnTransition != nil {
			l.OnTransition(ctx, gs)
		}
	}
}
