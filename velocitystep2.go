package otg

import (
	"math"

	"go.viam.com/otg/profile"
	"go.viam.com/otg/roots"
)

// velocityStep2 computes a profile of the third-order velocity interface
// whose total duration equals a prescribed tf.
type velocityStep2 struct {
	a0, tf, af float64
	aMax, aMin float64
	jMax       float64
	vd, ad     float64
}

func (s *velocityStep2) init(tf, v0, a0, vf, af, aMax, aMin, jMax float64) {
	s.a0 = a0
	s.tf = tf
	s.af = af
	s.aMax = aMax
	s.aMin = aMin
	s.jMax = jMax
	s.vd = vf - v0
	s.ad = af - a0
}

func (s *velocityStep2) timeAcc0(p *profile.Profile, aMax, aMin, jMax float64) bool {
	// UD Solution 1/2
	{
		h1 := math.Sqrt((-s.ad*s.ad+2.0*jMax*((s.a0+s.af)*s.tf-2.0*s.vd))/(jMax*jMax) + s.tf*s.tf)

		p.T[0] = s.ad/(2.0*jMax) + (s.tf-h1)/2.0
		p.T[1] = h1
		p.T[2] = s.tf - (p.T[0] + h1)
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckVelocity(profile.SignsUDDU, profile.LimitsAcc0, jMax, aMax, aMin) {
			p.Pf = p.P[7]
			return true
		}
	}

	// UU Solution
	{
		h1 := -s.ad + jMax*s.tf

		p.T[0] = -s.ad*s.ad/(2.0*jMax*h1) + (s.vd-s.a0*s.tf)/h1
		p.T[1] = -s.ad/jMax + s.tf
		p.T[2] = 0.0
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = s.tf - (p.T[0] + p.T[1])

		if p.CheckVelocity(profile.SignsUDDU, profile.LimitsAcc0, jMax, aMax, aMin) {
			p.Pf = p.P[7]
			return true
		}
	}

	// UU Solution, 2 step
	{
		p.T[0] = 0.0
		p.T[1] = -s.ad/jMax + s.tf
		p.T[2] = 0.0
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = s.ad / jMax

		if p.CheckVelocity(profile.SignsUDDU, profile.LimitsAcc0, jMax, aMax, aMin) {
			p.Pf = p.P[7]
			return true
		}
	}

	return false
}

func (s *velocityStep2) timeNone(p *profile.Profile, aMax, aMin, jMax float64) bool {
	if math.Abs(s.a0) < roots.Eps && math.Abs(s.af) < roots.Eps && math.Abs(s.vd) < roots.Eps {
		p.T[0] = 0.0
		p.T[1] = s.tf
		p.T[2] = 0.0
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckVelocity(profile.SignsUDDU, profile.LimitsNone, jMax, aMax, aMin) {
			p.Pf = p.P[7]
			return true
		}
	}

	// UD Solution 1/2
	{
		h1 := 2.0 * (s.af*s.tf - s.vd)

		p.T[0] = h1 / s.ad
		p.T[1] = s.tf - p.T[0]
		p.T[2] = 0.0
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = 0.0

		jf := s.ad * s.ad / h1

		if p.CheckVelocity(profile.SignsUDDU, profile.LimitsNone, jf, aMax, aMin) {
			p.Pf = p.P[7]
			return true
		}
	}

	return false
}

func (s *velocityStep2) checkAll(p *profile.Profile, aMax, aMin, jMax float64) bool {
	return s.timeAcc0(p, aMax, aMin, jMax) || s.timeNone(p, aMax, aMin, jMax)
}

func (s *velocityStep2) getProfile(p *profile.Profile) bool {
	if s.vd > 0.0 {
		return s.checkAll(p, s.aMax, s.aMin, s.jMax) ||
			s.checkAll(p, s.aMin, s.aMax, -s.jMax)
	}

	return s.checkAll(p, s.aMin, s.aMax, -s.jMax) ||
		s.checkAll(p, s.aMax, s.aMin, s.jMax)
}
