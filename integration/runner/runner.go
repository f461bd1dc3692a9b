package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/school-maze/internal/services"
	"github.com/jwebster45206/school-maze/internal/session"
	"github.com/jwebster45206/school-maze/pkg/aqi"
	"github.com/jwebster45206/school-maze/pkg/console"
	"github.com/jwebster45206/school-maze/pkg/puzzle"
	"github.com/jwebster45206/school-maze/pkg/rooms"
	"github.com/jwebster45206/school-maze/pkg/state"
	"github.com/jwebster45206/school-maze/pkg/storage"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner plays walkthrough cases against the real rooms, in process.
type Runner struct {
	Logger            func(format string, args ...any)
	ErrorHandlingMode ErrorHandlingMode
	// GameLogger receives the game's own logs. Discarded when nil.
	GameLogger *slog.Logger
}

// NewRunner creates a new test runner
func NewRunner() *Runner {
	return &Runner{
		Logger:            func(string, ...any) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a YAML file. Unknown keys are errors.
func LoadTestSuite(filename string) (TestSuite, error) {
	f, err := os.Open(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}
	defer f.Close()

	var suite TestSuite
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse YAML in %s: %w", filename, err)
	}
	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}
		jobs = append(jobs, subJobs...)
	}
	return jobs, nil
}

// game is the wiring for one suite.
type game struct {
	script *console.Script
	store  *storage.MockStorage
	board  *storage.MockLeaderboard
	ctl    *session.Controller
}

// BuildWorld assembles the maze the way cmd/maze does, with the suite's
// fixed randomness.
func BuildWorld(suite TestSuite, c console.Console, log *slog.Logger) (*rooms.Registry, error) {
	seed := suite.Seed
	if seed == 0 {
		seed = 1
	}
	var air aqi.Lookup
	if suite.AirQuality != nil {
		air = services.NewMockAirQuality(*suite.AirQuality)
	}
	env := rooms.NewEnv(c, rand.New(rand.NewPCG(seed, seed)), log)
	world, err := rooms.NewWorld(env, rooms.Options{
		FrontDeskChallenge: suite.FrontDeskChallenge,
		AirQuality:         air,
		WordPool:           suite.Words,
	})
	if err != nil {
		return nil, err
	}

	h, err := world.Lookup(state.RoomCorridor)
	if err != nil {
		return nil, err
	}
	corridor, ok := h.(*rooms.Corridor)
	if !ok {
		return nil, fmt.Errorf("corridor handler has unexpected type %T", h)
	}
	draw := 1.0
	if suite.Corridor.Encounters {
		draw = 0
	}
	corridor.Chance = func() float64 { return draw }
	if q := suite.Corridor.Quiz; q != nil {
		ineq := q.Inequality()
		corridor.NewQuiz = func() puzzle.Inequality { return ineq }
	}
	return world, nil
}

func (r *Runner) setup(ctx context.Context, suite TestSuite) (*game, error) {
	log := r.GameLogger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g := &game{
		script: console.NewScript(),
		store:  storage.NewMockStorage(),
	}
	var entries []storage.Entry
	for _, e := range suite.Leaderboard {
		entries = append(entries, storage.Entry{Name: e.Name, Score: e.Score, Seconds: e.Seconds})
	}
	g.board = storage.NewMockLeaderboard(entries...)

	world, err := BuildWorld(suite, g.script, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	gs := state.NewGameState()
	suite.SeedGameState.Apply(gs)
	if err := g.store.SaveGameState(ctx, gs); err != nil {
		return nil, fmt.Errorf("failed to seed gamestate: %w", err)
	}

	g.ctl = session.NewController(g.store, g.board, g.script, world, log)
	return g, nil
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job:     TestJob{Name: suite.Name, Suite: suite},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	g, err := r.setup(ctx, suite)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result, result.Error
	}

	player := suite.Player
	if player == "" {
		player = "Tester"
	}

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.runStep(ctx, g, player, step)
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}
		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

func (r *Runner) runStep(ctx context.Context, g *game, player string, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name}

	before := len(g.script.Output)
	g.script.Feed(step.Input...)
	outcome, err := g.ctl.Run(ctx, player)
	result.Output = strings.Join(g.script.Output[before:], "\n")
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = fmt.Errorf("session failed: %w", err)
		return result
	}
	if n := g.script.Remaining(); n > 0 {
		result.Error = fmt.Errorf("%d input lines were never read", n)
		return result
	}

	if err := r.checkExpectations(step.Expectations, g, outcome, result.Output); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		return result
	}
	result.Success = true
	return result
}

// checkExpectations validates the step expectations against the state the
// sitting ended with.
func (r *Runner) checkExpectations(exp Expectations, g *game, outcome session.Outcome, output string) error {
	gs := outcome.State

	if exp.Termination != nil && outcome.Termination.String() != *exp.Termination {
		return fmt.Errorf("expected termination %s, got %s", *exp.Termination, outcome.Termination)
	}

	if exp.Room != nil && string(gs.CurrentRoom) != *exp.Room {
		return fmt.Errorf("expected room %s, got %s", *exp.Room, gs.CurrentRoom)
	}

	// Full inventory check (order independent)
	if exp.Inventory != nil {
		want := slices.Sorted(slices.Values(*exp.Inventory))
		got := slices.Sorted(slices.Values(gs.Inventory))
		if !slices.Equal(want, got) {
			return fmt.Errorf("expected inventory %v, got %v", *exp.Inventory, gs.Inventory)
		}
	}

	if exp.Health != nil && gs.Health != *exp.Health {
		return fmt.Errorf("expected health %d, got %d", *exp.Health, gs.Health)
	}
	if exp.Score != nil && gs.Score != *exp.Score {
		return fmt.Errorf("expected score %d, got %d", *exp.Score, gs.Score)
	}
	if exp.GameBeaten != nil && gs.GameBeaten != *exp.GameBeaten {
		return fmt.Errorf("expected game_beaten to be %t, got %t", *exp.GameBeaten, gs.GameBeaten)
	}

	for _, room := range exp.Completed {
		v, ok := gs.Visited[state.RoomID(room)]
		if !ok || !v.Completed {
			return fmt.Errorf("expected room %s to be completed", room)
		}
	}

	for flag, want := range exp.Flags {
		if gs.Flags[flag] != want {
			return fmt.Errorf("expected flag %s to be %t", flag, want)
		}
	}

	if exp.LeaderboardEntries != nil {
		entries, err := g.board.TopEntries()
		if err != nil {
			return fmt.Errorf("failed to read leaderboard: %w", err)
		}
		if len(entries) != *exp.LeaderboardEntries {
			return fmt.Errorf("expected %d leaderboard entries, got %d", *exp.LeaderboardEntries, len(entries))
		}
	}

	if exp.SaveExists != nil && g.store.HasSave() != *exp.SaveExists {
		return fmt.Errorf("expected save_exists to be %t", *exp.SaveExists)
	}

	lower := strings.ToLower(output)
	for _, text := range exp.OutputContains {
		if !strings.Contains(lower, strings.ToLower(text)) {
			return fmt.Errorf("expected output to contain '%s', but it didn't", text)
		}
	}
	for _, text := range exp.OutputNotContains {
		if strings.Contains(lower, strings.ToLower(text)) {
			return fmt.Errorf("expected output to NOT contain '%s', but it did", text)
		}
	}
	return nil
}
