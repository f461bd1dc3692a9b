package puzzle

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStages() []Stage {
	return []Stage{
		{Prompt: "one", Options: map[string]string{"a": "x", "b": "y", "c": "z", "d": "w"}, Correct: "a"},
		{Prompt: "two", Options: map[string]string{"a": "x", "b": "y", "c": "z", "d": "w"}, Correct: "b"},
		{Prompt: "three", Options: map[string]string{"a": "x", "b": "y", "c": "z", "d": "w"}, Correct: "a"},
	}
}

func TestDialogue_CorrectSequence(t *testing.T) {
	d := NewDialogue(testStages())
	assert.Equal(t, NotStarted, d.Status())

	_, err := d.Submit("a")
	assert.ErrorIs(t, err, ErrNotStarted)

	d.Start()
	for i, answer := range []string{"a", "B", " a "} {
		outcome, err := d.Submit(answer)
		require.NoError(t, err)
		if i < 2 {
			assert.Equal(t, Advanced, outcome)
		} else {
			assert.Equal(t, Completed, outcome)
		}
	}
	assert.Equal(t, Solved, d.Status())

	_, err = d.Submit("a")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestDialogue_MisstepsEject(t *testing.T) {
	d := NewDialogue(testStages())
	d.Start()

	outcome, err := d.Submit("a")
	require.NoError(t, err)
	assert.Equal(t, Advanced, outcome)

	for i := 0; i < 2; i++ {
		outcome, err = d.Submit("c")
		require.NoError(t, err)
		assert.Equal(t, Misstep, outcome)
	}
	stage, missteps := d.Progress()
	assert.Equal(t, 2, stage)
	assert.Equal(t, 2, missteps)

	outcome, err = d.Submit("d")
	require.NoError(t, err)
	assert.Equal(t, Ejected, outcome)

	stage, missteps = d.Progress()
	assert.Equal(t, 0, stage)
	assert.Equal(t, 0, missteps)
	assert.Equal(t, NotStarted, d.Status())
}

func TestDialogue_InvalidChoiceIsFree(t *testing.T) {
	d := NewDialogue(testStages())
	d.Start()

	_, err := d.Submit("e")
	assert.ErrorIs(t, err, ErrInvalidChoice)
	_, missteps := d.Progress()
	assert.Equal(t, 0, missteps)
}

func TestDialogue_Resume(t *testing.T) {
	d := NewDialogue(testStages()).Resume(3, 1)
	current, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, "three", current.Prompt)

	d = NewDialogue(testStages()).Resume(99, -4)
	assert.Equal(t, Solved, d.Status())
	_, missteps := d.Progress()
	assert.Equal(t, 0, missteps)
}

func TestStage_Render(t *testing.T) {
	s := testStages()[0]
	assert.Equal(t, "one\n  A) x\n  B) y\n  C) z\n  D) w", s.Render())
}

func TestHangman_WrongGuessesFail(t *testing.T) {
	h := NewHangman("protocol")
	misses := []string{"z", "x", "q", "j", "k", "m"}

	for i, letter := range misses {
		hit, err := h.GuessLetter(letter)
		require.NoError(t, err)
		assert.False(t, hit)
		if i < MaxAttempts-1 {
			assert.Equal(t, Active, h.Status(), "still active after %d misses", i+1)
		}
	}
	assert.Equal(t, Failed, h.Status())
	assert.Equal(t, 0, h.AttemptsLeft())

	_, err := h.GuessLetter("p")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestHangman_RevealSolves(t *testing.T) {
	h := NewHangman("kernel")
	for _, letter := range []string{"k", "e", "r", "n"} {
		hit, err := h.GuessLetter(letter)
		require.NoError(t, err)
		assert.True(t, hit)
	}
	assert.Equal(t, Active, h.Status())
	assert.Equal(t, "k e r n e _", h.Mask())

	_, err := h.GuessLetter("z")
	require.NoError(t, err)
	hit, err := h.GuessLetter("L")
	require.NoError(t, err)
	assert.True(t, hit)

	assert.Equal(t, Solved, h.Status())
	assert.Equal(t, MaxAttempts-1, h.AttemptsLeft())
	assert.Equal(t, []string{"e", "k", "l", "n", "r", "z"}, h.Guessed())
}

func TestHangman_GuessErrors(t *testing.T) {
	h := NewHangman("kernel")

	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"empty", "", ErrInvalidGuess},
		{"two letters", "ab", ErrInvalidGuess},
		{"digit", "7", ErrInvalidGuess},
		{"non-ascii", "é", ErrInvalidGuess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.GuessLetter(tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := h.GuessLetter("q")
	require.NoError(t, err)
	_, err = h.GuessLetter("Q")
	assert.ErrorIs(t, err, ErrAlreadyGuessed)
	assert.Equal(t, MaxAttempts-1, h.AttemptsLeft(), "repeat guesses cost nothing")
}

func TestHangman_GuessWord(t *testing.T) {
	h := NewHangman("firewall")

	ok, err := h.GuessWord("firewire")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, MaxAttempts-1, h.AttemptsLeft())

	ok, err = h.GuessWord(" FireWall ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Solved, h.Status())
	assert.Equal(t, "f i r e w a l l", h.Mask())
}

func TestPickWord_AvoidsLast(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	pool := []string{"alpha", "beta"}

	for i := 0; i < 50; i++ {
		assert.Equal(t, "beta", PickWord(rng, pool, "ALPHA"))
	}
	assert.Equal(t, "solo", PickWord(rng, []string{"solo"}, "solo"))
	assert.Equal(t, "", PickWord(rng, nil, ""))
}

func TestNewInequality_AlwaysSatisfiable(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 10000; i++ {
		q := NewInequality(rng)
		require.NotZero(t, q.A)
		require.NotZero(t, q.B)
		require.NotZero(t, q.C)
		require.True(t, q.A >= -10 && q.A <= 10)
		require.True(t, q.B >= -20 && q.B <= 20)
		require.True(t, q.C >= -50 && q.C <= 50)
		if q.C > 0 {
			require.Equal(t, "<", q.Op)
		} else {
			require.Equal(t, ">", q.Op)
		}

		found := false
		for x := -1000; x <= 1000 && !found; x++ {
			found = q.Check(x)
		}
		require.True(t, found, "no integer solution for %s", q)

		x, ok := q.Witness()
		require.True(t, ok, "no witness for %s", q)
		require.True(t, q.Check(x), "witness %d fails %s", x, q)
	}
}

func TestInequality_Witness(t *testing.T) {
	tests := []struct {
		name string
		q    Inequality
		want bool
	}{
		{"interval between -1 and -0.4", Inequality{A: 5, B: 7, C: 2, Op: "<"}, false},
		{"interval between -1 and -4/7", Inequality{A: 7, B: 11, C: 4, Op: "<"}, false},
		{"open interval between consecutive integer roots", Inequality{A: 1, B: -5, C: 6, Op: "<"}, false},
		{"interval around zero", Inequality{A: 1, B: 0, C: -4, Op: "<"}, true},
		{"wide interval", Inequality{A: 1, B: -20, C: 1, Op: "<"}, true},
		{"upward parabola above zero", Inequality{A: 2, B: 3, C: -4, Op: ">"}, true},
		{"downward parabola never positive", Inequality{A: -1, B: 2, C: -3, Op: ">"}, false},
		{"downward parabola below zero", Inequality{A: -10, B: 1, C: 50, Op: "<"}, true},
		{"not quadratic", Inequality{A: 0, B: 1, C: 1, Op: ">"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, ok := tt.q.Witness()
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.want, tt.q.Solvable())
			if ok {
				assert.True(t, tt.q.Check(x))
				return
			}
			if tt.q.A == 0 {
				return
			}
			for x := -1000; x <= 1000; x++ {
				require.False(t, tt.q.Check(x), "%s holds for %d", tt.q, x)
			}
		})
	}
}

func TestInequality_Check(t *testing.T) {
	q := Inequality{A: 1, B: -5, C: 6, Op: "<"} // roots 2 and 3
	assert.False(t, q.Check(2))
	assert.False(t, q.Check(3))
	assert.False(t, q.Check(0))

	q = Inequality{A: -1, B: 2, C: -3, Op: ">"}
	assert.False(t, q.Feasible())

	q = Inequality{A: 2, B: 3, C: -4, Op: ">"}
	assert.True(t, q.Feasible())
	assert.True(t, q.Check(5))
	assert.Equal(t, "2x² + 3x - 4 > 0", q.String())
}

func TestCipher(t *testing.T) {
	c := Cipher{Plaintext: "The password is chocolatemilk", Key: 3}

	assert.Equal(t, "Wkh sdvvzrug lv fkrfrodwhplon", c.Ciphertext())
	assert.Equal(t, c.Plaintext, Shift(c.Ciphertext(), -3))
	assert.True(t, c.Check("the password is chocolate milk"))
	assert.True(t, c.Check("THE PASSWORD IS CHOCOLATEMILK!"))
	assert.False(t, c.Check("the password is vanilla"))
	assert.Equal(t, "abc", Shift("xyz", 29))
}

func TestMateInOne(t *testing.T) {
	tests := []struct {
		id    string
		move  string
		mate  bool
		isErr bool
	}{
		{"scholar", "Qxf7#", true, false},
		{"scholar", "qxf7", true, false},
		{"scholar", "h5f7", true, false},
		{"scholar", "Qxe5+", false, false},
		{"scholar", "Ke2", false, false},
		{"scholar", "Qh8", false, true},
		{"scholar", "banana", false, true},
		{"fool", "Qh4#", true, false},
		{"fool", "d8h4", true, false},
		{"fool", "Nc6", false, false},
		{"backrank", "Re8", true, false},
		{"backrank", "Re7", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.id+"/"+tt.move, func(t *testing.T) {
			p, ok := FindMatePuzzle(tt.id)
			require.True(t, ok)

			mate, err := p.Check(tt.move)
			if tt.isErr {
				assert.ErrorIs(t, err, ErrNotation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mate, mate)
		})
	}
}

func TestMateInOne_Board(t *testing.T) {
	for _, p := range MatePuzzles {
		board, err := p.Board()
		require.NoError(t, err, p.ID)
		assert.Contains(t, board, "to move and mate in one")
	}

	_, err := MateInOne{ID: "broken", FEN: "not a fen"}.Board()
	assert.Error(t, err)
}
