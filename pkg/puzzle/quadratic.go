package puzzle

import (
	"fmt"
	"math/rand/v2"
)

// Inequality is a quadratic inequality a·x² + b·x + c (op) 0 with at least
// one integer solution.
type Inequality struct {
	A, B, C int
	Op      string
}

// NewInequality draws coefficients until the inequality has an integer
// solution. The operator is "<" when c is positive and ">" otherwise.
func NewInequality(rng *rand.Rand) Inequality {
	for {
		q := Inequality{
			A: nonZero(rng, 10),
			B: nonZero(rng, 20),
			C: nonZero(rng, 50),
		}
		if q.C > 0 {
			q.Op = "<"
		} else {
			q.Op = ">"
		}
		if q.Solvable() {
			return q
		}
	}
}

// nonZero returns an integer in [-n, n] excluding zero.
func nonZero(rng *rand.Rand, n int) int {
	v := rng.IntN(2*n) - n
	if v >= 0 {
		v++
	}
	return v
}

func (q Inequality) Discriminant() int {
	return q.B*q.B - 4*q.A*q.C
}

// Feasible applies the sign-of-a and discriminant rule.
func (q Inequality) Feasible() bool {
	d := q.Discriminant()
	switch q.Op {
	case ">":
		return q.A > 0 || d > 0
	case "<":
		return q.A < 0 || d > 0
	default:
		return false
	}
}

// Witness returns an integer that satisfies the inequality. Every real root
// lies within 1 + max(|b|, |c|)/|a| of zero, so scanning one step past that
// bound covers both a bounded solution interval and an unbounded one.
func (q Inequality) Witness() (int, bool) {
	if q.A == 0 || !q.Feasible() {
		return 0, false
	}
	bound := 2 + max(abs(q.B), abs(q.C))/abs(q.A)
	for x := -bound; x <= bound; x++ {
		if q.Check(x) {
			return x, true
		}
	}
	return 0, false
}

// Solvable reports whether some integer satisfies the inequality.
func (q Inequality) Solvable() bool {
	_, ok := q.Witness()
	return ok
}

// Check substitutes x and compares against zero.
func (q Inequality) Check(x int) bool {
	v := q.A*x*x + q.B*x + q.C
	if q.Op == "<" {
		return v < 0
	}
	return v > 0
}

func (q Inequality) String() string {
	return fmt.Sprintf("%dx² %s %dx %s %d %s 0",
		q.A, sign(q.B), abs(q.B), sign(q.C), abs(q.C), q.Op)
}

func sign(v int) string {
	if v < 0 {
		return "-"
	}
	return "+"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
