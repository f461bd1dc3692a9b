package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/jwebster45206/school-maze/pkg/storage"
)

var leaderboardHeader = []string{"name", "score", "seconds"}

// CSVLeaderboard stores the top entries as name,score,seconds rows.
type CSVLeaderboard struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

var _ storage.Leaderboard = (*CSVLeaderboard)(nil)

func NewCSVLeaderboard(path string, logger *slog.Logger) *CSVLeaderboard {
	return &CSVLeaderboard{path: path, logger: logger}
}

func (l *CSVLeaderboard) TopEntries() ([]storage.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries, err := l.read()
	if err != nil {
		return nil, err
	}
	return storage.RankEntries(entries), nil
}

func (l *CSVLeaderboard) RecordResult(name string, score int, seconds float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read()
	if err != nil {
		return err
	}
	entries = append(entries, storage.Entry{Name: name, Score: score, Seconds: seconds})
	return l.write(storage.RankEntries(entries))
}

// read skips rows it cannot parse. A missing file is an empty board.
func (l *CSVLeaderboard) read() ([]storage.Entry, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open leaderboard: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var entries []storage.Entry
	for line := 1; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.logger.Warn("Skipping malformed leaderboard row", "line", line, "error", err)
			continue
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(rec[0], leaderboardHeader[0]) {
			continue
		}
		entry, ok := parseEntry(rec)
		if !ok {
			l.logger.Warn("Skipping malformed leaderboard row", "line", line)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseEntry(rec []string) (storage.Entry, bool) {
	if len(rec) != 3 || strings.TrimSpace(rec[0]) == "" {
		return storage.Entry{}, false
	}
	score, err := strconv.Atoi(strings.TrimSpace(rec[1]))
	if err != nil {
		return storage.Entry{}, false
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
	if err != nil || seconds < 0 {
		return storage.Entry{}, false
	}
	return storage.Entry{Name: rec[0], Score: score, Seconds: seconds}, true
}

// write replaces the file through a temporary file in the same directory.
func (l *CSVLeaderboard) write(entries []storage.Entry) error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create leaderboard directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".leaderboard-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create leaderboard file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(leaderboardHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}
	for _, e := range entries {
		row := []string{e.Name, strconv.Itoa(e.Score), strconv.FormatFloat(e.Seconds, 'f', 3, 64)}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write leaderboard: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		l.logger.Error("Failed to replace leaderboard", "path", l.path, "error", err)
		return fmt.Errorf("failed to replace leaderboard: %w", err)
	}
	return nil
}
