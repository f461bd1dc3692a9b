package storage

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/jwebster45206/school-maze/pkg/state"
)

// MaxLeaderboardEntries bounds the persisted ranking.
const MaxLeaderboardEntries = 10

var ErrNilGameState = errors.New("gamestate cannot be nil")

// Storage is the single save slot of the game.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// LoadGameState returns nil, nil when no save exists or the save cannot
	// be decoded.
	LoadGameState(ctx context.Context) (*state.GameState, error)
	// SaveGameState overwrites the slot with gs.
	SaveGameState(ctx context.Context, gs *state.GameState) error
	DeleteGameState(ctx context.Context) error
}

// Entry is one completed playthrough.
type Entry struct {
	Name    string  `json:"name"`
	Score   int     `json:"score"`
	Seconds float64 `json:"seconds"`
}

// Leaderboard keeps the best playthroughs.
type Leaderboard interface {
	RecordResult(name string, score int, seconds float64) error
	TopEntries() ([]Entry, error)
}

// RankEntries sorts by score descending then time ascending, and keeps the
// top MaxLeaderboardEntries.
func RankEntries(entries []Entry) []Entry {
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b Entry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Seconds, b.Seconds)
	})
	if len(ranked) > MaxLeaderboardEntries {
		ranked = ranked[:MaxLeaderboardEntries]
	}
	return ranked
}
