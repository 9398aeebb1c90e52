package roots

import (
	"testing"

	"go.viam.com/test"
)

func TestSolveCubic(t *testing.T) {
	t.Run("three distinct roots", func(t *testing.T) {
		// (x-1)(x-2)(x-3) = x^3 - 6x^2 + 11x - 6
		set := SolveCubic(1.0, -6.0, 11.0, -6.0)
		got := set.Sorted()
		test.That(t, len(got), test.ShouldEqual, 3)
		test.That(t, got[0], test.ShouldAlmostEqual, 1.0, 1e-9)
		test.That(t, got[1], test.ShouldAlmostEqual, 2.0, 1e-9)
		test.That(t, got[2], test.ShouldAlmostEqual, 3.0, 1e-9)
	})

	t.Run("negative roots are dropped", func(t *testing.T) {
		// (x+1)(x-2) as a degenerate cubic: x^2 - x - 2
		set := SolveCubic(0.0, 1.0, -1.0, -2.0)
		got := set.Sorted()
		test.That(t, len(got), test.ShouldEqual, 1)
		test.That(t, got[0], test.ShouldAlmostEqual, 2.0, 1e-9)
	})

	t.Run("zero constant term", func(t *testing.T) {
		// x(x-1)(x-4) = x^3 - 5x^2 + 4x
		set := SolveCubic(1.0, -5.0, 4.0, 0.0)
		got := set.Sorted()
		test.That(t, len(got), test.ShouldEqual, 3)
		test.That(t, got[0], test.ShouldAlmostEqual, 0.0, 1e-9)
		test.That(t, got[1], test.ShouldAlmostEqual, 1.0, 1e-9)
		test.That(t, got[2], test.ShouldAlmostEqual, 4.0, 1e-9)
	})

	t.Run("single real root", func(t *testing.T) {
		// x^3 + x + 2 has the single real root x = -1; nothing non-negative.
		set := SolveCubic(1.0, 0.0, 1.0, 2.0)
		test.That(t, len(set.Sorted()), test.ShouldEqual, 0)
	})
}

func TestSolveQuarticMonic(t *testing.T) {
	t.Run("four distinct roots", func(t *testing.T) {
		// (x-1)(x-2)(x-3)(x-4) = x^4 - 10x^3 + 35x^2 - 50x + 24
		set := SolveQuarticMonic(-10.0, 35.0, -50.0, 24.0)
		got := set.Sorted()
		test.That(t, len(got), test.ShouldEqual, 4)
		test.That(t, got[0], test.ShouldAlmostEqual, 1.0, 1e-8)
		test.That(t, got[1], test.ShouldAlmostEqual, 2.0, 1e-8)
		test.That(t, got[2], test.ShouldAlmostEqual, 3.0, 1e-8)
		test.That(t, got[3], test.ShouldAlmostEqual, 4.0, 1e-8)
	})

	t.Run("biquadratic", func(t *testing.T) {
		// (x^2-1)(x^2-4) = x^4 - 5x^2 + 4; non-negative roots 1, 2.
		set := SolveQuarticMonic(0.0, -5.0, 0.0, 4.0)
		got := set.Sorted()
		test.That(t, len(got), test.ShouldEqual, 2)
		test.That(t, got[0], test.ShouldAlmostEqual, 1.0, 1e-8)
		test.That(t, got[1], test.ShouldAlmostEqual, 2.0, 1e-8)
	})

	t.Run("no real roots", func(t *testing.T) {
		// x^4 + 1 has no real roots.
		set := SolveQuarticMonic(0.0, 0.0, 0.0, 1.0)
		test.That(t, len(set.Sorted()), test.ShouldEqual, 0)
	})
}

func TestPolyEval(t *testing.T) {
	// p(x) = 2x^3 - 3x^2 + x - 5
	p := []float64{2.0, -3.0, 1.0, -5.0}
	test.That(t, PolyEval(p, 0.0), test.ShouldAlmostEqual, -5.0)
	test.That(t, PolyEval(p, 1.0), test.ShouldAlmostEqual, -5.0)
	test.That(t, PolyEval(p, 2.0), test.ShouldAlmostEqual, 1.0, 1e-12)

	var deriv [3]float64
	PolyDeri(p, deriv[:])
	// p'(x) = 6x^2 - 6x + 1
	test.That(t, deriv[0], test.ShouldAlmostEqual, 6.0)
	test.That(t, deriv[1], test.ShouldAlmostEqual, -6.0)
	test.That(t, deriv[2], test.ShouldAlmostEqual, 1.0)
}

func TestPolyMonicDeri(t *testing.T) {
	// p(x) = x^3 - 6x^2 + 11x - 6, normalized derivative x^2 - 4x + 11/3.
	p := []float64{1.0, -6.0, 11.0, -6.0}
	var deriv [3]float64
	PolyMonicDeri(p, deriv[:])
	test.That(t, deriv[0], test.ShouldAlmostEqual, 1.0)
	test.That(t, deriv[1], test.ShouldAlmostEqual, -4.0)
	test.That(t, deriv[2], test.ShouldAlmostEqual, 11.0/3.0, 1e-12)
}

func TestShrinkInterval(t *testing.T) {
	// x^3 - 6x^2 + 11x - 6 has a root at 2 bracketed by [1.5, 2.5].
	p := []float64{1.0, -6.0, 11.0, -6.0}
	root := ShrinkInterval(p, 1.5, 2.5)
	test.That(t, root, test.ShouldAlmostEqual, 2.0, 1e-10)
}

func TestSetDedupAndOrder(t *testing.T) {
	var s Set
	s.Insert(3.0)
	s.Insert(-1.0)
	s.Insert(1.0)
	s.Insert(3.0)
	s.Insert(0.0)
	got := s.Sorted()
	test.That(t, len(got), test.ShouldEqual, 3)
	test.That(t, got[0], test.ShouldAlmostEqual, 0.0)
	test.That(t, got[1], test.ShouldAlmostEqual, 1.0)
	test.That(t, got[2], test.ShouldAlmostEqual, 3.0)
}
