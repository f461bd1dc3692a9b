package rooms

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jwebster45206/school-maze/pkg/aqi"
	"github.com/jwebster45206/school-maze/pkg/state"
)

var (
	ErrUnknownRoom   = errors.New("no handler registered for room")
	ErrDuplicateRoom = errors.New("room already registered")
)

// Registry maps room identifiers to handlers.
type Registry struct {
	handlers map[state.RoomID]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[state.RoomID]Handler)}
}

func (r *Registry) Register(h Handler) error {
	if h == nil {
		return errors.New("nil room handler")
	}
	if _, ok := r.handlers[h.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRoom, h.ID())
	}
	r.handlers[h.ID()] = h
	return nil
}

// Lookup returns the handler for id. A miss is a configuration error.
func (r *Registry) Lookup(id state.RoomID) (Handler, error) {
	h, ok := r.handlers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoom, id)
	}
	return h, nil
}

// IDs lists the registered rooms in sorted order.
func (r *Registry) IDs() []state.RoomID {
	ids := make([]state.RoomID, 0, len(r.handlers))
	for id := range r.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Validate checks that every exit leads to a registered room.
func (r *Registry) Validate() error {
	var errs []error
	for _, id := range r.IDs() {
		for _, exit := range r.handlers[id].Exits() {
			if _, ok := r.handlers[exit]; !ok {
				errs = append(errs, fmt.Errorf("%s -> %s: %w", id, exit, ErrUnknownRoom))
			}
		}
	}
	return errors.Join(errs...)
}

// Options selects the configurable parts of the world.
type Options struct {
	FrontDeskChallenge string
	AirQuality         aqi.Lookup
	WordPool           []string
}

// NewWorld registers every room of the maze.
func NewWorld(env *Env, opts Options) (*Registry, error) {
	reg := NewRegistry()
	handlers := []Handler{
		NewCorridor(env),
		NewClassroom(env),
		NewFrontDesk(env, opts.FrontDeskChallenge),
		NewProjectRoom(env, opts.WordPool),
		NewStudyLandscape(env),
		NewLab(env, opts.AirQuality),
		NewFinalRoom(env),
	}
	for _, h := range handlers {
		if err := reg.Register(h); err != nil {
			return nil, err
		}
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}
