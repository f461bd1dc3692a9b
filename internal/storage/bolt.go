package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jwebster45206/school-maze/pkg/state"
	"github.com/jwebster45206/school-maze/pkg/storage"
	bolt "go.etcd.io/bbolt"
)

var savesBucket = []byte("saves")

// BoltStorage keeps the save slot in a local bbolt file.
type BoltStorage struct {
	db     *bolt.DB
	logger *slog.Logger
	slot   string
}

var _ storage.Storage = (*BoltStorage)(nil)

// OpenBoltStorage opens (or creates) the database at path.
func OpenBoltStorage(path, slot string, logger *slog.Logger) (*BoltStorage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create save directory: %w", err)
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open save database %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(savesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create saves bucket: %w", err)
	}
	if slot == "" {
		slot = "default"
	}
	return &BoltStorage{db: db, logger: logger, slot: slot}, nil
}

func (b *BoltStorage) Ping(ctx context.Context) error {
	return b.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(savesBucket) == nil {
			return fmt.Errorf("bucket %s missing", savesBucket)
		}
		return nil
	})
}

func (b *BoltStorage) Close() error {
	if err := b.db.Close(); err != nil {
		b.logger.Error("Failed to close save database", "error", err)
		return err
	}
	return nil
}

func (b *BoltStorage) SaveGameState(ctx context.Context, gs *state.GameState) error {
	data, err := encodeGameState(gs)
	if err != nil {
		return err
	}
	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(savesBucket).Put([]byte(b.slot), data)
	})
	if err != nil {
		b.logger.Error("Failed to save gamestate", "slot", b.slot, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}
	return nil
}

func (b *BoltStorage) LoadGameState(ctx context.Context) (*state.GameState, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		// the value is only valid inside the transaction
		if v := tx.Bucket(savesBucket).Get([]byte(b.slot)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		b.logger.Error("Failed to load gamestate", "slot", b.slot, "error", err)
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}
	if data == nil {
		b.logger.Debug("No saved gamestate", "slot", b.slot)
		return nil, nil
	}
	return decodeGameState(b.logger, b.slot, data), nil
}

func (b *BoltStorage) DeleteGameState(ctx context.Context) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(savesBucket).Delete([]byte(b.slot))
	})
	if err != nil {
		b.logger.Error("Failed to delete gamestate", "slot", b.slot, "error", err)
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}
