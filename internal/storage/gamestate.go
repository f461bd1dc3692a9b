package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/school-maze/pkg/state"
	"github.com/jwebster45206/school-maze/pkg/storage"
)

// Saves from every backend share one JSON encoding.

func encodeGameState(gs *state.GameState) ([]byte, error) {
	if gs == nil {
		return nil, storage.ErrNilGameState
	}
	data, err := json.Marshal(gs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gamestate: %w", err)
	}
	return data, nil
}

// decodeGameState treats an unreadable save as no save at all.
func decodeGameState(logger *slog.Logger, slot string, data []byte) *state.GameState {
	if len(data) == 0 {
		logger.Warn("Gamestate not found", "slot", slot)
		return nil
	}
	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		logger.Warn("Discarding corrupt gamestate", "slot", slot, "error", err)
		return nil
	}
	gs.Normalize()
	return &gs
}
