package profile

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestIntegrate(t *testing.T) {
	p, v, a := Integrate(0.0, 1.0, 2.0, 3.0, 4.0)
	test.That(t, p, test.ShouldAlmostEqual, 1.0)
	test.That(t, v, test.ShouldAlmostEqual, 2.0)
	test.That(t, a, test.ShouldAlmostEqual, 3.0)

	// Constant jerk 1 from rest for 2s: a = 2, v = 2, p = 4/3.
	p, v, a = Integrate(2.0, 0.0, 0.0, 0.0, 1.0)
	test.That(t, a, test.ShouldAlmostEqual, 2.0)
	test.That(t, v, test.ShouldAlmostEqual, 2.0)
	test.That(t, p, test.ShouldAlmostEqual, 4.0/3.0, 1e-12)

	// Pure cruise.
	p, v, a = Integrate(3.0, 1.0, 0.5, 0.0, 0.0)
	test.That(t, p, test.ShouldAlmostEqual, 2.5)
	test.That(t, v, test.ShouldAlmostEqual, 0.5)
	test.That(t, a, test.ShouldAlmostEqual, 0.0)
}

func TestCheckVelocityRamp(t *testing.T) {
	// Jerk up for 1s, jerk down for 1s: velocity 0 -> 1 with a returning to 0.
	var p Profile
	p.SetBoundaryForVelocity(0.0, 0.0, 0.0, 1.0, 0.0)
	p.T = [7]float64{1.0, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0}

	ok := p.CheckVelocity(SignsUDDU, LimitsNone, 1.0, 1.0, -1.0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, p.V[7], test.ShouldAlmostEqual, 1.0, 1e-12)
	test.That(t, p.A[7], test.ShouldAlmostEqual, 0.0, 1e-12)
	test.That(t, p.TSum[6], test.ShouldAlmostEqual, 2.0, 1e-12)
	test.That(t, p.A[1], test.ShouldAlmostEqual, 1.0, 1e-12)
}

func TestCheckVelocityRejectsNegativeDuration(t *testing.T) {
	var p Profile
	p.SetBoundaryForVelocity(0.0, 0.0, 0.0, 1.0, 0.0)
	p.T = [7]float64{1.0, -0.5, 1.0, 0.0, 0.0, 0.0, 0.0}
	test.That(t, p.CheckVelocity(SignsUDDU, LimitsNone, 1.0, 1.0, -1.0), test.ShouldBeFalse)
}

func TestCheckPositionSymmetricNoCruise(t *testing.T) {
	// Jerk-limited move 0 -> 2 with limits (1, 1, 1): up 1s, down 1s, cruise
	// 0s at v=1... the full profile 0 -> 2 is symmetric with no cruise:
	// t = [1, 0, 1, 0, 1, 0, 1] covers exactly 2.
	var p Profile
	p.SetBoundary(0.0, 0.0, 0.0, 2.0, 0.0, 0.0)
	p.T = [7]float64{1.0, 0.0, 1.0, 0.0, 1.0, 0.0, 1.0}

	ok := p.CheckPosition(SignsUDDU, LimitsNone, false, 1.0, 1.0, -1.0, 1.0, -1.0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, p.P[7], test.ShouldAlmostEqual, 2.0, 1e-9)
	test.That(t, p.V[7], test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, p.A[7], test.ShouldAlmostEqual, 0.0, 1e-10)
	test.That(t, p.Direction, test.ShouldEqual, DirectionUp)

	// Peak velocity reaches the limit exactly in the middle.
	test.That(t, p.V[4], test.ShouldAlmostEqual, 1.0, 1e-12)
}

func TestCheckPositionRejectsVelocityViolation(t *testing.T) {
	// The same symmetric shape with a tighter velocity limit must fail.
	var p Profile
	p.SetBoundary(0.0, 0.0, 0.0, 2.0, 0.0, 0.0)
	p.T = [7]float64{1.0, 0.0, 1.0, 0.0, 1.0, 0.0, 1.0}

	ok := p.CheckPosition(SignsUDDU, LimitsNone, false, 1.0, 0.5, -0.5, 1.0, -1.0)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestPositionExtrema(t *testing.T) {
	// A target at the start position that moves backwards, reached with an
	// initial forward velocity, overshoots before returning.
	var p Profile
	p.SetBoundary(0.0, 1.0, 0.0, 0.0, -1.0, 0.0)
	// Decelerate from +1 to -1 at jerk limit 1, acceleration limit 1:
	// j = -1 for 1s, a = -1 for 1s, j = +1 for 1s sheds exactly 2 velocity.
	p.T = [7]float64{0.0, 0.0, 0.0, 0.0, 1.0, 1.0, 1.0}

	ok := p.CheckPosition(SignsUDDU, LimitsNone, false, 1.0, 1.0, -1.0, 1.0, -1.0)
	test.That(t, ok, test.ShouldBeTrue)

	ext := p.PositionExtrema()
	test.That(t, ext.Max, test.ShouldBeGreaterThan, 0.0)
	test.That(t, ext.Min, test.ShouldAlmostEqual, 0.0, 1e-9)
	test.That(t, ext.TMax, test.ShouldBeBetweenOrEqual, 0.0, p.TSum[6])
}

func TestFirstStateAtPosition(t *testing.T) {
	var p Profile
	p.SetBoundary(0.0, 0.0, 0.0, 2.0, 0.0, 0.0)
	p.T = [7]float64{1.0, 0.0, 1.0, 0.0, 1.0, 0.0, 1.0}
	test.That(t, p.CheckPosition(SignsUDDU, LimitsNone, false, 1.0, 1.0, -1.0, 1.0, -1.0), test.ShouldBeTrue)

	// The midpoint is passed at half time with peak velocity.
	at, v, _, ok := p.FirstStateAtPosition(1.0, 0.0)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, at, test.ShouldAlmostEqual, 2.0, 1e-6)
	test.That(t, v, test.ShouldAlmostEqual, 1.0, 1e-6)

	_, _, _, ok = p.FirstStateAtPosition(5.0, 0.0)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestBrakeVelocityViolation(t *testing.T) {
	var b BrakeProfile
	// Velocity above the limit must brake immediately.
	b.PlanPosition(1.5, 0.0, 1.0, -1.0, 1.0, -1.0, 1.0)
	test.That(t, b.T[0], test.ShouldBeGreaterThan, 0.0)

	ps, vs, as := 0.0, 1.5, 0.0
	b.Finalize(&ps, &vs, &as)
	test.That(t, b.Duration, test.ShouldBeGreaterThan, 0.0)
	test.That(t, vs, test.ShouldBeLessThan, 1.5)

	// Integrating the brake segments by hand matches Finalize's terminal
	// state.
	p2, v2, a2 := Integrate(b.T[0], b.P[0], b.V[0], b.A[0], b.J[0])
	if b.T[1] > 0.0 {
		p2, v2, a2 = Integrate(b.T[1], p2, v2, a2, b.J[1])
	}
	test.That(t, p2, test.ShouldAlmostEqual, ps, 1e-12)
	test.That(t, v2, test.ShouldAlmostEqual, vs, 1e-12)
	test.That(t, a2, test.ShouldAlmostEqual, as, 1e-12)
}

func TestBrakeWithinLimitsIsEmpty(t *testing.T) {
	var b BrakeProfile
	b.PlanPosition(0.5, 0.0, 1.0, -1.0, 1.0, -1.0, 1.0)
	test.That(t, b.T[0], test.ShouldEqual, 0.0)
	test.That(t, b.T[1], test.ShouldEqual, 0.0)

	ps, vs, as := 0.0, 0.5, 0.0
	b.Finalize(&ps, &vs, &as)
	test.That(t, b.Duration, test.ShouldEqual, 0.0)
	test.That(t, vs, test.ShouldAlmostEqual, 0.5)
}

func TestBrakeAccelerationViolation(t *testing.T) {
	var b BrakeProfile
	b.PlanVelocity(2.0, 1.0, -1.0, 1.0)
	test.That(t, b.J[0], test.ShouldAlmostEqual, -1.0)
	test.That(t, b.T[0], test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestBlockIsBlocked(t *testing.T) {
	var b Block
	var p Profile
	p.SetBoundary(0.0, 0.0, 0.0, 1.0, 0.0, 0.0)
	p.T = [7]float64{0.0, 0.0, 0.0, 2.0, 0.0, 0.0, 0.0}
	p.TSum = [7]float64{0.0, 0.0, 0.0, 2.0, 2.0, 2.0, 2.0}
	b.SetMinProfile(&p)
	test.That(t, b.TMin, test.ShouldAlmostEqual, 2.0)
	test.That(t, b.IsBlocked(1.0), test.ShouldBeTrue)
	test.That(t, b.IsBlocked(2.5), test.ShouldBeFalse)

	interval := NewInterval(3.0, 4.0)
	b.A = &interval
	test.That(t, b.IsBlocked(3.5), test.ShouldBeTrue)
	test.That(t, b.IsBlocked(math.Nextafter(4.0, 5.0)), test.ShouldBeFalse)
}
