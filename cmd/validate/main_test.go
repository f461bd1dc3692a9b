package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCase(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestValidateFile_ShippedCases(t *testing.T) {
	files, err := collectFiles([]string{filepath.Join("..", "..", "integration", "cases")})
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			v := &CaseValidator{}
			assert.NoError(t, v.validateFile(f))
		})
	}
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		body     string
		wantErrs []string
	}{
		{
			name: "valid case",
			file: "ok_case.yaml",
			body: `name: ok
seed_game_state:
  room: classroom2015
  inventory: [battery]
steps:
  - input: [back]
    expect:
      room: corridor
      inventory: [battery]
      termination: input_closed
`,
		},
		{
			name:     "bad filename",
			file:     "Bad-Name.yaml",
			body:     "name: x\n",
			wantErrs: []string{"snake_case"},
		},
		{
			name:     "unknown key",
			file:     "unknown_key.yaml",
			body:     "name: x\nbogus: 1\n",
			wantErrs: []string{"failed to parse YAML"},
		},
		{
			name: "unknown room and item",
			file: "bad_refs.yaml",
			body: `name: refs
seed_game_state:
  room: gym
  inventory: [sword]
steps:
  - input: [quit]
    expect:
      termination: exploded
`,
			wantErrs: []string{`seed room "gym"`, `"sword" is not a known item`, `unknown termination "exploded"`},
		},
		{
			name: "question from the wrong pool",
			file: "bad_question.yaml",
			body: `name: q
frontdesk_challenge: chess
seed_game_state:
  frontdesk_question: france
steps:
  - input: [quit]
`,
			wantErrs: []string{`"france" is not a mate puzzle`},
		},
		{
			name: "unsolvable quiz",
			file: "bad_quiz.yaml",
			body: `name: quiz
corridor:
  encounters: true
  quiz: {a: 1, b: 0, c: 4, op: "<"}
steps:
  - input: [quit]
`,
			wantErrs: []string{"has no integer solution"},
		},
		{
			name: "real roots but no integer between them",
			file: "narrow_quiz.yaml",
			body: `name: quiz
corridor:
  encounters: true
  quiz: {a: 5, b: 7, c: 2, op: "<"}
steps:
  - input: [quit]
`,
			wantErrs: []string{"has no integer solution"},
		},
		{
			name:     "missing sequenced case",
			file:     "seq.yaml",
			body:     "name: seq\ncases:\n  - nowhere.yaml\n",
			wantErrs: []string{`sequenced case "nowhere.yaml" not found`},
		},
		{
			name:     "no steps",
			file:     "empty.yaml",
			body:     "name: empty\n",
			wantErrs: []string{"case has no steps"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCase(t, t.TempDir(), tt.file, tt.body)
			v := &CaseValidator{}
			err := v.validateFile(path)
			if len(tt.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErrs {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestCollectFiles_Empty(t *testing.T) {
	_, err := collectFiles([]string{t.TempDir()})
	assert.Error(t, err)
}
