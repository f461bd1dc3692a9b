package puzzle

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/notnil/chess"
)

// MateInOne is a chess position where the side to move can deliver mate.
type MateInOne struct {
	ID  string
	FEN string
}

// MatePuzzles are the built-in positions.
var MatePuzzles = []MateInOne{
	{ID: "scholar", FEN: "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4"},
	{ID: "fool", FEN: "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2"},
	{ID: "backrank", FEN: "6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1"},
}

// FindMatePuzzle looks a position up by ID.
func FindMatePuzzle(id string) (MateInOne, bool) {
	for _, p := range MatePuzzles {
		if p.ID == id {
			return p, true
		}
	}
	return MateInOne{}, false
}

func (p MateInOne) game() (*chess.Game, error) {
	fen, err := chess.FEN(p.FEN)
	if err != nil {
		return nil, fmt.Errorf("invalid position %s: %w", p.ID, err)
	}
	return chess.NewGame(fen), nil
}

// Board draws the position and names the side to move.
func (p MateInOne) Board() (string, error) {
	g, err := p.game()
	if err != nil {
		return "", err
	}
	side := "White"
	if g.Position().Turn() == chess.Black {
		side = "Black"
	}
	return fmt.Sprintf("%s\n%s to move and mate in one.", g.Position().Board().Draw(), side), nil
}

// Check plays move and reports whether it mates. Standard algebraic ("Qxf7#")
// and UCI ("h5f7") are accepted. Unreadable or illegal moves return
// ErrNotation.
func (p MateInOne) Check(move string) (bool, error) {
	g, err := p.game()
	if err != nil {
		return false, err
	}
	m, err := decodeMove(g, strings.TrimSpace(move))
	if err != nil {
		return false, err
	}
	if err := g.Move(m); err != nil {
		return false, fmt.Errorf("%w: %s", ErrNotation, move)
	}
	return g.Method() == chess.Checkmate, nil
}

func decodeMove(g *chess.Game, move string) (*chess.Move, error) {
	if move == "" {
		return nil, ErrNotation
	}
	pos := g.Position()
	candidates := []string{move}
	// input is often lowercased; retry with a capital piece letter
	if r := []rune(move); strings.ContainsRune("kqrbn", r[0]) {
		r[0] = unicode.ToUpper(r[0])
		candidates = append(candidates, string(r))
	}
	for _, c := range candidates {
		if m, err := (chess.AlgebraicNotation{}).Decode(pos, c); err == nil {
			return m, nil
		}
	}
	if m, err := (chess.UCINotation{}).Decode(pos, strings.ToLower(move)); err == nil {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotation, move)
}
