package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// Save backends.
const (
	BackendBolt  = "bolt"
	BackendRedis = "redis"
)

// DefaultFile is read when MAZE_CONFIG is unset and the file exists.
const DefaultFile = "maze.ini"

type Config struct {
	Environment string
	LogLevel    slog.Level

	SaveBackend     string
	SavePath        string
	SaveSlot        string
	RedisURL        string
	LeaderboardPath string

	PlayerName         string
	Seed               uint64
	FrontDeskChallenge string

	AirVisualAPIKey  string
	AirVisualBaseURL string

	TypewriterDelay time.Duration
	TextWidth       int

	// File is the ini file the values came from, if any.
	File string
}

// setting is one configurable value: an environment variable that wins over
// a key in the ini file, which wins over the default.
type setting struct {
	env     string
	section string
	key     string
	def     string
}

var (
	environment        = setting{"ENVIRONMENT", "log", "environment", "development"}
	logLevel           = setting{"LOG_LEVEL", "log", "level", "warn"}
	saveBackend        = setting{"SAVE_BACKEND", "storage", "backend", BackendBolt}
	savePath           = setting{"SAVE_PATH", "storage", "path", "data/maze.db"}
	saveSlot           = setting{"SAVE_SLOT", "storage", "slot", "default"}
	redisURL           = setting{"REDIS_URL", "storage", "redis_url", "redis://localhost:6379/0"}
	leaderboardPath    = setting{"LEADERBOARD_PATH", "storage", "leaderboard", "data/leaderboard.csv"}
	playerName         = setting{"MAZE_PLAYER_NAME", "game", "player_name", ""}
	seed               = setting{"MAZE_SEED", "game", "seed", "0"}
	frontDeskChallenge = setting{"FRONTDESK_CHALLENGE", "game", "frontdesk_challenge", "trivia"}
	airVisualKey       = setting{"AIRVISUAL_API_KEY", "airvisual", "api_key", ""}
	airVisualBaseURL   = setting{"AIRVISUAL_BASE_URL", "airvisual", "base_url", "http://api.airvisual.com/v2"}
	typewriterDelay    = setting{"TYPEWRITER_DELAY_MS", "display", "typewriter_delay_ms", "0"}
	textWidth          = setting{"TEXT_WIDTH", "display", "text_width", "80"}
)

// Load reads the optional ini file named by MAZE_CONFIG (or maze.ini in the
// working directory) and applies environment overrides.
func Load() (*Config, error) {
	path := os.Getenv("MAZE_CONFIG")
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	var file *ini.File
	if path != "" {
		f, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		file = f
	}
	return build(file, path)
}

func build(file *ini.File, path string) (*Config, error) {
	get := func(s setting) string {
		if v := os.Getenv(s.env); v != "" {
			return v
		}
		if file != nil {
			if v := file.Section(s.section).Key(s.key).String(); v != "" {
				return v
			}
		}
		return s.def
	}

	cfg := &Config{
		Environment:      get(environment),
		LogLevel:         parseLogLevel(get(logLevel)),
		SaveBackend:      strings.ToLower(get(saveBackend)),
		SavePath:         get(savePath),
		SaveSlot:         get(saveSlot),
		RedisURL:         get(redisURL),
		LeaderboardPath:  get(leaderboardPath),
		PlayerName:       get(playerName),
		AirVisualAPIKey:  get(airVisualKey),
		AirVisualBaseURL: strings.TrimRight(get(airVisualBaseURL), "/"),
		File:             path,
	}

	var errs []error
	switch cfg.SaveBackend {
	case BackendBolt, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown save backend %q", cfg.SaveBackend))
	}

	cfg.FrontDeskChallenge = strings.ToLower(get(frontDeskChallenge))
	switch cfg.FrontDeskChallenge {
	case "trivia", "chess":
	default:
		errs = append(errs, fmt.Errorf("unknown front desk challenge %q", cfg.FrontDeskChallenge))
	}

	var err error
	if cfg.Seed, err = strconv.ParseUint(get(seed), 10, 64); err != nil {
		errs = append(errs, fmt.Errorf("invalid seed: %w", err))
	}
	delay, err := strconv.Atoi(get(typewriterDelay))
	if err != nil || delay < 0 {
		errs = append(errs, fmt.Errorf("invalid typewriter delay %q", get(typewriterDelay)))
	}
	cfg.TypewriterDelay = time.Duration(delay) * time.Millisecond
	if cfg.TextWidth, err = strconv.Atoi(get(textWidth)); err != nil || cfg.TextWidth < 0 {
		errs = append(errs, fmt.Errorf("invalid text width %q", get(textWidth)))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Offline reports whether the air-quality lookup has no API key.
func (c *Config) Offline() bool {
	return c.AirVisualAPIKey == ""
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
