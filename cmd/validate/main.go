package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/jwebster45206/school-maze/integration/runner"
	"github.com/jwebster45206/school-maze/pkg/console"
	"github.com/jwebster45206/school-maze/pkg/game"
	"github.com/jwebster45206/school-maze/pkg/puzzle"
	"github.com/jwebster45206/school-maze/pkg/rooms"
	"github.com/jwebster45206/school-maze/pkg/state"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <case.yaml|cases-dir>...\n", os.Args[0])
		os.Exit(1)
	}

	files, err := collectFiles(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, f := range files {
		fmt.Printf("Validating %s...\n", f)
		validator := &CaseValidator{}
		if err := validator.validateFile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	fmt.Printf("%d case file(s) are valid!\n", len(files))
}

// collectFiles expands directories into the .yaml files they contain.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.yaml"))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no case files found")
	}
	return files, nil
}

var (
	snakeCase = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)
	lowerWord = regexp.MustCompile(`^[a-z]+$`)
)

var knownItems = []string{
	state.ItemManual,
	state.ItemBattery,
	state.ItemKeycard,
	state.ItemHardDisk,
	state.ItemSecurityKey,
}

var terminations = []string{
	game.Quit.String(),
	game.Pause.String(),
	game.Death.String(),
	game.Win.String(),
	game.InputClosed.String(),
}

type CaseValidator struct {
	errors []string
}

func (v *CaseValidator) addError(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *CaseValidator) validateFile(filename string) error {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".yaml") {
		return fmt.Errorf("case file must have .yaml extension: %s", baseName)
	}
	if !snakeCase.MatchString(strings.TrimSuffix(baseName, ".yaml")) {
		return fmt.Errorf("case filename '%s' must be lowercase snake_case (e.g., lab_offline.yaml)", baseName)
	}

	suite, err := runner.LoadTestSuite(filename)
	if err != nil {
		return err
	}

	v.errors = nil
	v.validateSuite(suite, filepath.Dir(filename))

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *CaseValidator) validateSuite(suite runner.TestSuite, dir string) {
	if strings.TrimSpace(suite.Name) == "" {
		v.addError("case has no name")
	}

	if suite.IsSequence() {
		if len(suite.Steps) > 0 {
			v.addError("a sequence cannot also have steps")
		}
		for _, c := range suite.Cases {
			if _, err := os.Stat(filepath.Join(dir, c)); err != nil {
				v.addError("sequenced case %q not found", c)
			}
		}
		return
	}

	if len(suite.Steps) == 0 {
		v.addError("case has no steps")
	}

	switch suite.FrontDeskChallenge {
	case "", rooms.ChallengeTrivia, rooms.ChallengeChess:
	default:
		v.addError("unknown frontdesk_challenge %q", suite.FrontDeskChallenge)
	}

	for _, w := range suite.Words {
		if !lowerWord.MatchString(w) {
			v.addError("word %q must be lowercase letters only", w)
		}
	}

	if q := suite.Corridor.Quiz; q != nil {
		if q.Op != "<" && q.Op != ">" {
			v.addError("quiz op %q must be < or >", q.Op)
		} else if q.A == 0 {
			v.addError("quiz must be quadratic (a != 0)")
		} else if !q.Inequality().Solvable() {
			v.addError("quiz %s has no integer solution", q.Inequality())
		}
	}

	world, err := runner.BuildWorld(suite, console.NewScript(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		v.addError("failed to build world: %v", err)
		return
	}
	ids := world.IDs()

	seed := suite.SeedGameState
	if seed.Room != "" {
		v.validateRoom("seed room", seed.Room, ids)
	}
	for _, r := range seed.Unlocked {
		v.validateRoom("unlocked room", r, ids)
	}
	for _, item := range seed.Inventory {
		v.validateItem("seed inventory", item)
	}
	if seed.Health != nil && (*seed.Health < 1 || *seed.Health > state.StartingHealth) {
		v.addError("seed health %d must be between 1 and %d", *seed.Health, state.StartingHealth)
	}
	if seed.FrontDeskQuestion != "" {
		v.validateQuestion(suite.FrontDeskChallenge, seed.FrontDeskQuestion)
	}

	for i, step := range suite.Steps {
		label := step.Name
		if label == "" {
			label = fmt.Sprintf("step %d", i+1)
		}
		if len(step.Input) == 0 {
			v.addError("%s: no input", label)
		}
		v.validateExpectations(label, step.Expectations, ids)
	}
}

func (v *CaseValidator) validateExpectations(label string, exp runner.Expectations, ids []state.RoomID) {
	if exp.Room != nil {
		v.validateRoom(label+": expected room", *exp.Room, ids)
	}
	for _, r := range exp.Completed {
		v.validateRoom(label+": completed room", r, ids)
	}
	if exp.Inventory != nil {
		for _, item := range *exp.Inventory {
			v.validateItem(label+": expected inventory", item)
		}
	}
	if exp.Termination != nil && !slices.Contains(terminations, *exp.Termination) {
		v.addError("%s: unknown termination %q (want one of %s)", label, *exp.Termination, strings.Join(terminations, ", "))
	}
	if exp.Health != nil && (*exp.Health < 0 || *exp.Health > state.StartingHealth) {
		v.addError("%s: expected health %d is out of range", label, *exp.Health)
	}
	if exp.LeaderboardEntries != nil && *exp.LeaderboardEntries < 0 {
		v.addError("%s: leaderboard_entries cannot be negative", label)
	}
}

func (v *CaseValidator) validateRoom(field, id string, ids []state.RoomID) {
	if !slices.Contains(ids, state.RoomID(id)) {
		v.addError("%s %q is not a room in the maze", field, id)
	}
}

func (v *CaseValidator) validateItem(field, item string) {
	if !slices.Contains(knownItems, item) {
		v.addError("%s %q is not a known item", field, item)
	}
}

func (v *CaseValidator) validateQuestion(challenge, id string) {
	if challenge == rooms.ChallengeChess {
		if _, ok := puzzle.FindMatePuzzle(id); !ok {
			v.addError("frontdesk_question %q is not a mate puzzle", id)
		}
		return
	}
	for _, q := range rooms.TriviaPool {
		if q.ID == id {
			return
		}
	}
	v.addError("frontdesk_question %q is not a trivia question", id)
}
