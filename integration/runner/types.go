package runner

import (
	"time"

	"github.com/jwebster45206/school-maze/pkg/puzzle"
	"github.com/jwebster45206/school-maze/pkg/state"
)

// TestSuite defines a complete walkthrough case.
// Can either be a regular case with Steps, or a sequence that references other Cases.
type TestSuite struct {
	Name               string         `yaml:"name"`
	Player             string         `yaml:"player,omitempty"`
	Seed               uint64         `yaml:"seed,omitempty"`
	FrontDeskChallenge string         `yaml:"frontdesk_challenge,omitempty"`
	Words              []string       `yaml:"words,omitempty"`
	AirQuality         *int           `yaml:"air_quality,omitempty"` // absent means offline
	Corridor           CorridorSetup  `yaml:"corridor,omitempty"`
	SeedGameState      SeedState      `yaml:"seed_game_state,omitempty"`
	Steps              []TestStep     `yaml:"steps,omitempty"`
	Cases              []string       `yaml:"cases,omitempty"` // Used for sequences (list of case files)
	Leaderboard        []LeaderRecord `yaml:"leaderboard,omitempty"`
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// CorridorSetup pins the corridor's random encounter.
type CorridorSetup struct {
	Encounters bool       `yaml:"encounters"`
	Quiz       *QuizSetup `yaml:"quiz,omitempty"`
}

// QuizSetup is a fixed ax² + bx + c <op> 0 inequality.
type QuizSetup struct {
	A  int    `yaml:"a"`
	B  int    `yaml:"b"`
	C  int    `yaml:"c"`
	Op string `yaml:"op"`
}

func (q QuizSetup) Inequality() puzzle.Inequality {
	return puzzle.Inequality{A: q.A, B: q.B, C: q.C, Op: q.Op}
}

// SeedState is the part of a GameState a case can preset.
type SeedState struct {
	Room              string          `yaml:"room,omitempty"`
	Inventory         []string        `yaml:"inventory,omitempty"`
	Health            *int            `yaml:"health,omitempty"`
	Score             int             `yaml:"score,omitempty"`
	Flags             map[string]bool `yaml:"flags,omitempty"`
	Unlocked          []string        `yaml:"unlocked,omitempty"`
	FrontDeskQuestion string          `yaml:"frontdesk_question,omitempty"`
}

// Apply writes the preset onto gs.
func (s SeedState) Apply(gs *state.GameState) {
	if s.Room != "" {
		gs.CurrentRoom = state.RoomID(s.Room)
	}
	for _, item := range s.Inventory {
		gs.AddItem(item)
	}
	if s.Health != nil {
		gs.Health = *s.Health
	}
	gs.Score = s.Score
	for k, v := range s.Flags {
		gs.Flags[k] = v
	}
	for _, room := range s.Unlocked {
		gs.Visit(state.RoomID(room)).Unlocked = true
	}
	if s.FrontDeskQuestion != "" {
		gs.FrontDeskProgress().Question = s.FrontDeskQuestion
	}
}

// LeaderRecord is a leaderboard row present before the case runs.
type LeaderRecord struct {
	Name    string  `yaml:"name"`
	Score   int     `yaml:"score"`
	Seconds float64 `yaml:"seconds"`
}

// TestStep is one sitting: the input lines are played until they run out,
// which saves the game like closing the terminal would.
type TestStep struct {
	Name         string       `yaml:"name,omitempty"`
	Input        []string     `yaml:"input"`
	Expectations Expectations `yaml:"expect"`
}

// Expectations defines what to check after a step
type Expectations struct {
	Room               *string         `yaml:"room,omitempty"`
	Inventory          *[]string       `yaml:"inventory,omitempty"` // order independent
	Health             *int            `yaml:"health,omitempty"`
	Score              *int            `yaml:"score,omitempty"`
	GameBeaten         *bool           `yaml:"game_beaten,omitempty"`
	Termination        *string         `yaml:"termination,omitempty"`
	Completed          []string        `yaml:"completed,omitempty"`
	Flags              map[string]bool `yaml:"flags,omitempty"`
	LeaderboardEntries *int            `yaml:"leaderboard_entries,omitempty"`
	SaveExists         *bool           `yaml:"save_exists,omitempty"`

	OutputContains    []string `yaml:"output_contains,omitempty"`
	OutputNotContains []string `yaml:"output_not_contains,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
	Output   string
}

// TestJob represents a test suite loaded from a case file
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
}
