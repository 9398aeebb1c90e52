package otg

import (
	"math"

	"go.viam.com/otg/profile"
	"go.viam.com/otg/roots"
)

func sq(v float64) float64 {
	return v * v
}

// positionStep2 computes a profile of the third-order position interface
// whose total duration equals a prescribed tf, for duration synchronization.
type positionStep2 struct {
	v0, a0, tf, vf, af float64
	vMax, vMin         float64
	aMax, aMin         float64
	jMax               float64

	pd                     float64
	tfTf, tfP3, tfP4       float64
	vd, vdVd, vfVf         float64
	ad, adAd               float64
	a0A0, afAf             float64
	a0P3, a0P4, a0P5, a0P6 float64
	afP3, afP4, afP5, afP6 float64
	jMaxJMax               float64
	g1, g2                 float64
	minimizeJerk           bool
}

func (s *positionStep2) init(tf, p0, v0, a0, pf, vf, af, vMax, vMin, aMax, aMin, jMax float64) {
	s.v0 = v0
	s.a0 = a0
	s.tf = tf
	s.vf = vf
	s.af = af
	s.vMax = vMax
	s.vMin = vMin
	s.aMax = aMax
	s.aMin = aMin
	s.jMax = jMax

	s.pd = pf - p0
	s.tfTf = tf * tf
	s.tfP3 = s.tfTf * tf
	s.tfP4 = s.tfTf * s.tfTf

	s.vd = vf - v0
	s.vdVd = s.vd * s.vd
	s.vfVf = vf * vf

	s.ad = af - a0
	s.adAd = s.ad * s.ad
	s.a0A0 = a0 * a0
	s.afAf = af * af

	s.a0P3 = a0 * s.a0A0
	s.a0P4 = s.a0A0 * s.a0A0
	s.a0P5 = s.a0P3 * s.a0A0
	s.a0P6 = s.a0P4 * s.a0A0
	s.afP3 = af * s.afAf
	s.afP4 = s.afAf * s.afAf
	s.afP5 = s.afP3 * s.afAf
	s.afP6 = s.afP4 * s.afAf

	s.jMaxJMax = jMax * jMax

	s.g1 = -s.pd + tf*v0
	s.g2 = -2.0*s.pd + tf*(v0+vf)
	s.minimizeJerk = false
}

func (s *positionStep2) timeAcc0Acc1Vel(p *profile.Profile, vMax, vMin, aMax, aMin, jMax float64) bool {
	// Profile UDDU, Solution 1
	if (2.0*(aMax-aMin)+s.ad)/jMax < s.tf {
		h1 := math.Sqrt((s.a0P4+s.afP4-
			4.0*s.a0P3*(2.0*aMax+aMin)/3.0-
			4.0*s.afP3*(aMax+2.0*aMin)/3.0+
			2.0*(s.a0A0-s.afAf)*aMax*aMax+
			(4.0*s.a0*aMax-2.0*s.a0A0)*(s.afAf-2.0*s.af*aMin+(aMin-aMax)*aMin+2.0*jMax*(aMin*s.tf-s.vd))+
			2.0*s.afAf*(aMin*aMin+2.0*jMax*(aMax*s.tf-s.vd))+
			4.0*jMax*(2.0*aMin*(s.af*s.vd+jMax*s.g1)+
				(aMax*aMax-aMin*aMin)*s.vd+
				jMax*s.vdVd)+
			8.0*aMax*s.jMaxJMax*(s.pd-s.tf*s.vf))/(aMax*aMin)+
			4.0*s.afAf+
			2.0*s.a0A0+
			(4.0*s.af+aMax-aMin)*(aMax-aMin)+
			4.0*jMax*(aMin-aMax+jMax*s.tf-2.0*s.af)*s.tf) * math.Abs(jMax) / jMax
		p.T[0] = (-s.a0 + aMax) / jMax
		p.T[1] = (-(s.afAf - s.a0A0 +
			2.0*aMax*aMax +
			aMin*(aMin-2.0*s.ad-3.0*aMax) +
			2.0*jMax*(aMin*s.tf-s.vd)) +
			aMin*h1) /
			(2.0 * (aMax - aMin) * jMax)
		p.T[2] = aMax / jMax
		p.T[3] = (aMin - aMax + h1) / (2.0 * jMax)
		p.T[4] = -aMin / jMax
		p.T[5] = s.tf - (p.T[0] + p.T[1] + p.T[2] + p.T[3] + 2.0*p.T[4] + s.af/jMax)
		p.T[6] = p.T[4] + s.af/jMax

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0Acc1Vel, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	// Profile UDUD
	if (-s.a0+4.0*aMax-s.af)/jMax < s.tf {
		p.T[0] = (-s.a0 + aMax) / jMax
		p.T[1] = (3.0*(s.a0P4+s.afP4) -
			4.0*(s.a0P3+s.afP3)*aMax -
			4.0*s.afP3*aMax +
			24.0*(s.a0+s.af)*aMax*aMax*aMax -
			6.0*(s.afAf+s.a0A0)*(aMax*aMax-2.0*jMax*s.vd) +
			6.0*s.a0A0*(s.afAf-2.0*s.af*aMax-2.0*aMax*jMax*s.tf) -
			12.0*aMax*aMax*(2.0*aMax*aMax-2.0*aMax*jMax*s.tf+jMax*s.vd) -
			24.0*s.af*aMax*jMax*s.vd +
			12.0*s.jMaxJMax*(2.0*aMax*s.g1+s.vdVd)) /
			(12.0 * aMax * jMax *
				(s.a0A0 + s.afAf - 2.0*(s.a0+s.af)*aMax +
					2.0*(aMax*aMax-aMax*jMax*s.tf+jMax*s.vd)))
		p.T[2] = aMax / jMax
		p.T[3] = (-s.a0A0-s.afAf+2.0*aMax*(s.a0+s.af-2.0*aMax)-2.0*jMax*s.vd)/(2.0*aMax*jMax) + s.tf
		p.T[4] = p.T[2]
		p.T[5] = s.tf - (p.T[0] + p.T[1] + p.T[2] + p.T[3] + 2.0*p.T[4] - s.af/jMax)
		p.T[6] = p.T[4] - s.af/jMax

		if p.CheckPositionTimed(profile.SignsUDUD, profile.LimitsAcc0Acc1Vel, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}
	return false
}

func (s *positionStep2) timeAcc1Vel(p *profile.Profile, vMax, vMin, aMax, aMin, jMax float64) bool {
	// Profile UDDU
	{
		ph1 := s.a0A0 + s.afAf -
			aMin*(s.a0+2.0*s.af-aMin) -
			2.0*jMax*(s.vd-aMin*s.tf)
		ph2 := 2.0*aMin*(jMax*s.g1+s.af*s.vd) - aMin*aMin*s.vd + jMax*s.vdVd
		ph3 := s.afAf + aMin*(aMin-2.0*s.af) - 2.0*jMax*(s.vd-aMin*s.tf)

		var polynom [4]float64
		polynom[0] = (2.0 * (2.0*s.a0 - aMin)) / jMax
		polynom[1] = (4.0*s.a0A0 + ph1 - 3.0*s.a0*aMin) / s.jMaxJMax
		polynom[2] = (2.0 * s.a0 * ph1) / (s.jMaxJMax * jMax)
		polynom[3] = (3.0*(s.a0P4+s.afP4) -
			4.0*(s.a0P3+2.0*s.afP3)*aMin +
			6.0*s.afAf*(aMin*aMin-2.0*jMax*s.vd) +
			12.0*jMax*ph2 +
			6.0*s.a0A0*ph3) /
			(12.0 * s.jMaxJMax * s.jMaxJMax)

		tMin := -s.a0 / jMax
		tMax := math.Min(
			(s.tf+2.0*aMin/jMax-(s.a0+s.af)/jMax)/2.0,
			(aMax-s.a0)/jMax,
		)

		candidates := roots.SolveQuarticMonic(polynom[0], polynom[1], polynom[2], polynom[3])
		for _, t := range candidates.Sorted() {
			if t < tMin || t > tMax {
				continue
			}

			// Single Newton step (regarding pd)
			if math.Abs(s.a0+jMax*t) > 16.0*roots.Eps {
				h0 := jMax * t * t
				orig := -s.pd +
					(3.0*(s.a0P4+s.afP4)-
						8.0*s.afP3*aMin-
						4.0*s.a0P3*aMin+
						6.0*s.afAf*(aMin*aMin+2.0*jMax*(h0-s.vd))+
						6.0*s.a0A0*(s.afAf-2.0*s.af*aMin+
							aMin*aMin+
							2.0*aMin*jMax*(-2.0*t+s.tf)+
							2.0*jMax*(5.0*h0-s.vd))+
						24.0*s.a0*jMax*t*(s.a0A0+s.afAf-2.0*s.af*aMin+
							aMin*aMin+
							2.0*jMax*(aMin*(-t+s.tf)+h0-s.vd))-
						24.0*s.af*aMin*jMax*(h0-s.vd)+
						12.0*jMax*(aMin*aMin*(h0-s.vd)+
							jMax*(h0-s.vd)*(h0-s.vd)))/
						(24.0*aMin*s.jMaxJMax) +
					h0*(s.tf-t) +
					s.tf*s.v0
				deriv := (s.a0 + jMax*t) *
					((s.a0A0+s.afAf)/(aMin*jMax) +
						(aMin-s.a0-2.0*s.af)/jMax +
						(4.0*s.a0*t+2.0*h0-2.0*s.vd)/aMin +
						2.0*s.tf -
						3.0*t)

				t -= orig / deriv
			}

			h1 := -((s.a0A0+s.afAf)/2.0 + jMax*(-s.vd+2.0*s.a0*t+jMax*t*t)) / aMin

			p.T[0] = t
			p.T[1] = 0.0
			p.T[2] = s.a0/jMax + t
			p.T[3] = s.tf - (h1-aMin+s.a0+s.af)/jMax - 2.0*t
			p.T[4] = -aMin / jMax
			p.T[5] = (h1 + aMin) / jMax
			p.T[6] = p.T[4] + s.af/jMax

			if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc1Vel, jMax, vMax, vMin, aMax, aMin) {
				return true
			}
		}
	}

	// Profile UDUD
	{
		ph1 := s.a0A0 - s.afAf + (2.0*s.af-s.a0)*aMax -
			aMax*aMax -
			2.0*jMax*(s.vd-aMax*s.tf)
		ph2 := aMax*aMax + 2.0*jMax*s.vd
		ph3 := s.afAf + ph2 - 2.0*aMax*(s.af+jMax*s.tf)
		ph4 := 2.0*aMax*jMax*s.g1 + aMax*aMax*s.vd + jMax*s.vdVd

		var polynom [4]float64
		polynom[0] = (4.0*s.a0 - 2.0*aMax) / jMax
		polynom[1] = (4.0*s.a0A0 - 3.0*s.a0*aMax + ph1) / s.jMaxJMax
		polynom[2] = (2.0 * s.a0 * ph1) / (s.jMaxJMax * jMax)
		polynom[3] = (3.0*(s.a0P4+s.afP4) -
			4.0*(s.a0P3+2.0*s.afP3)*aMax -
			24.0*s.af*aMax*jMax*s.vd +
			12.0*jMax*ph4 -
			6.0*s.a0A0*ph3 +
			6.0*s.afAf*ph2) /
			(12.0 * s.jMaxJMax * s.jMaxJMax)

		tMin := -s.a0 / jMax
		tMax := math.Min(
			(s.tf+s.ad/jMax-2.0*aMax/jMax)/2.0,
			(aMax-s.a0)/jMax,
		)

		candidates := roots.SolveQuarticMonic(polynom[0], polynom[1], polynom[2], polynom[3])
		for _, t := range candidates.Sorted() {
			if t > tMax || t < tMin {
				continue
			}

			h1 := ((s.a0A0-s.afAf)/2.0 + s.jMaxJMax*t*t - jMax*(s.vd-2.0*s.a0*t)) / aMax

			p.T[0] = t
			p.T[1] = 0.0
			p.T[2] = t + s.a0/jMax
			p.T[3] = s.tf + (h1+s.ad-aMax)/jMax - 2.0*t
			p.T[4] = aMax / jMax
			p.T[5] = -(h1 + aMax) / jMax
			p.T[6] = p.T[4] - s.af/jMax

			if p.CheckPositionTimed(profile.SignsUDUD, profile.LimitsAcc1Vel, jMax, vMax, vMin, aMax, aMin) {
				return true
			}
		}
	}

	return false
}

func (s *positionStep2) timeAcc0Vel(p *profile.Profile, vMax, vMin, aMax, aMin, jMax float64) bool {
	if s.tf < math.Max((-s.a0+aMax)/jMax, 0.0)+math.Max(aMax/jMax, 0.0) {
		return false
	}

	ph1 := 12.0 * jMax * (-aMax*aMax*s.vd - jMax*s.vdVd + 2.0*aMax*jMax*(-s.pd+s.tf*s.vf))

	// Profile UDDU
	{
		var polynom [4]float64
		polynom[0] = (2.0 * aMax) / jMax
		polynom[1] = (s.a0A0 - s.afAf +
			2.0*s.ad*aMax +
			aMax*aMax +
			2.0*jMax*(s.vd-aMax*s.tf)) / s.jMaxJMax
		polynom[2] = 0.0
		polynom[3] = -(-3.0*(s.a0P4+s.afP4) +
			4.0*(s.afP3+2.0*s.a0P3)*aMax -
			12.0*s.a0*aMax*(s.afAf-2.0*jMax*s.vd) +
			6.0*s.a0A0*(s.afAf-aMax*aMax-2.0*jMax*s.vd) +
			6.0*s.afAf*(aMax*aMax-2.0*aMax*jMax*s.tf+2.0*jMax*s.vd) +
			ph1) /
			(12.0 * s.jMaxJMax * s.jMaxJMax)

		tMin := -s.af / jMax
		tMax := math.Min(s.tf-(2.0*aMax-s.a0)/jMax, -aMin/jMax)
		candidates := roots.SolveQuarticMonic(polynom[0], polynom[1], polynom[2], polynom[3])
		for _, t := range candidates.Sorted() {
			if t < tMin || t > tMax {
				continue
			}

			// Single Newton step (regarding pd)
			if t > roots.Eps {
				h1 := jMax*t*t + s.vd
				orig := (-3.0*(s.a0P4+s.afP4) +
					4.0*(s.afP3+2.0*s.a0P3)*aMax -
					24.0*s.af*aMax*s.jMaxJMax*t*t -
					12.0*s.a0*aMax*(s.afAf-2.0*jMax*h1) +
					6.0*s.a0A0*(s.afAf-aMax*aMax-2.0*jMax*h1) +
					6.0*s.afAf*(aMax*aMax-2.0*aMax*jMax*s.tf+2.0*jMax*h1) -
					12.0*jMax*(aMax*aMax*h1+
						jMax*h1*h1+
						2.0*aMax*jMax*(s.pd+jMax*t*t*(t-s.tf)-s.tf*s.vf))) /
					(24.0 * aMax * s.jMaxJMax)
				deriv := -t * (s.a0A0 - s.afAf +
					2.0*aMax*(s.ad-jMax*s.tf) +
					aMax*aMax +
					3.0*aMax*jMax*t +
					2.0*jMax*h1) / aMax

				t -= orig / deriv
			}

			h1 := ((s.a0A0-s.afAf)/2.0 + jMax*(jMax*t*t+s.vd)) / aMax

			p.T[0] = (-s.a0 + aMax) / jMax
			p.T[1] = (h1 - aMax) / jMax
			p.T[2] = aMax / jMax
			p.T[3] = s.tf - (h1+s.ad+aMax)/jMax - 2.0*t
			p.T[4] = t
			p.T[5] = 0.0
			p.T[6] = s.af/jMax + t

			if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0Vel, jMax, vMax, vMin, aMax, aMin) {
				return true
			}
		}
	}

	// Profile UDUD
	{
		var polynom [4]float64
		polynom[0] = (-2.0 * aMax) / jMax
		polynom[1] = -(s.a0A0 + s.afAf - 2.0*(s.a0+s.af)*aMax +
			aMax*aMax +
			2.0*jMax*(s.vd-aMax*s.tf)) / s.jMaxJMax
		polynom[2] = 0.0
		polynom[3] = (3.0*(s.a0P4+s.afP4) -
			4.0*(s.afP3+2.0*s.a0P3)*aMax +
			6.0*s.a0A0*(s.afAf+aMax*aMax+2.0*jMax*s.vd) -
			12.0*s.a0*aMax*(s.afAf+2.0*jMax*s.vd) +
			6.0*s.afAf*(aMax*aMax-2.0*aMax*jMax*s.tf+2.0*jMax*s.vd) -
			ph1) /
			(12.0 * s.jMaxJMax * s.jMaxJMax)

		tMin := s.af / jMax
		tMax := math.Min(s.tf-aMax/jMax, aMax/jMax)

		candidates := roots.SolveQuarticMonic(polynom[0], polynom[1], polynom[2], polynom[3])
		for _, t := range candidates.Sorted() {
			if t < tMin || t > tMax {
				continue
			}

			// Single Newton step (regarding pd)
			{
				h1 := jMax*t*t - s.vd
				orig := -(3.0*(s.a0P4+s.afP4) -
					4.0*(2.0*s.a0P3+s.afP3)*aMax +
					24.0*s.af*aMax*s.jMaxJMax*t*t -
					12.0*s.a0*aMax*(s.afAf-2.0*jMax*h1) +
					6.0*s.a0A0*(s.afAf+aMax*aMax-2.0*jMax*h1) +
					6.0*s.afAf*(aMax*aMax-2.0*jMax*(s.tf*aMax+h1)) +
					12.0*jMax*(-aMax*aMax*h1+jMax*h1*h1-
						2.0*aMax*jMax*(-s.pd+jMax*t*t*(t-s.tf)+s.tf*s.vf))) /
					(24.0 * aMax * s.jMaxJMax)
				deriv := t * (s.a0A0 + s.afAf -
					2.0*jMax*h1 -
					2.0*(s.a0+s.af+jMax*s.tf)*aMax +
					aMax*aMax +
					3.0*aMax*jMax*t) / aMax

				t -= orig / deriv
			}

			h1 := ((s.a0A0+s.afAf)/2.0 + jMax*(s.vd-jMax*t*t)) / aMax

			p.T[0] = (-s.a0 + aMax) / jMax
			p.T[1] = (h1 - aMax) / jMax
			p.T[2] = aMax / jMax
			p.T[3] = s.tf - (h1-s.a0-s.af+aMax)/jMax - 2.0*t
			p.T[4] = t
			p.T[5] = 0.0
			p.T[6] = -(s.af / jMax) + t

			if p.CheckPositionTimed(profile.SignsUDUD, profile.LimitsAcc0Vel, jMax, vMax, vMin, aMax, aMin) {
				return true
			}
		}
	}

	return false
}

func (s *positionStep2) timeVel(p *profile.Profile, vMax, vMin, aMax, aMin, jMax float64) bool {
	tzMin := math.Max(0.0, -s.a0/jMax)
	tzMax := math.Min((s.tf-s.a0/jMax)/2.0, (aMax-s.a0)/jMax)

	// Profile UDDU
	if math.Abs(s.v0) < roots.Eps && math.Abs(s.a0) < roots.Eps &&
		math.Abs(s.vf) < roots.Eps && math.Abs(s.af) < roots.Eps {
		candidates := roots.SolveCubic(1.0, -s.tf/2.0, 0.0, s.pd/(2.0*jMax))
		for _, t := range candidates.Sorted() {
			if t > s.tf/4.0 {
				continue
			}

			// Single Newton step (regarding pd)
			if t > roots.Eps {
				orig := -s.pd + jMax*t*t*(s.tf-2.0*t)
				deriv := 2.0 * jMax * t * (s.tf - 3.0*t)
				t -= orig / deriv
			}

			p.T[0] = t
			p.T[1] = 0.0
			p.T[2] = t
			p.T[3] = s.tf - 4.0*t
			p.T[4] = t
			p.T[5] = 0.0
			p.T[6] = t

			if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsVel, jMax, vMax, vMin, aMax, aMin) {
				return true
			}
		}
	} else {
		p1 := s.afAf - 2.0*jMax*(-2.0*s.af*s.tf+jMax*s.tfTf+3.0*s.vd)
		ph1 := s.afP3 - 3.0*s.jMaxJMax*s.g1 - 3.0*s.af*jMax*s.vd
		ph2 := s.afP4 +
			8.0*s.afP3*jMax*s.tf +
			12.0*jMax*(3.0*jMax*s.vdVd-s.afAf*s.vd+
				2.0*s.af*jMax*(s.g1-s.tf*s.vd)-
				2.0*s.jMaxJMax*s.tf*s.g1)
		ph3 := s.a0 * (s.af - jMax*s.tf)
		ph4 := jMax * (-s.ad + jMax*s.tf)

		// Find the root of a 5th order polynom.
		var polynom [6]float64
		polynom[0] = 1.0
		polynom[1] = (15.0*s.a0A0 + s.afAf + 4.0*s.af*jMax*s.tf -
			16.0*ph3 -
			2.0*jMax*(jMax*s.tfTf+3.0*s.vd)) / (4.0 * ph4)
		polynom[2] = (29.0*s.a0P3 - 2.0*s.afP3 - 33.0*s.a0*ph3 +
			6.0*s.jMaxJMax*s.g1 +
			6.0*s.af*jMax*s.vd +
			6.0*s.a0*p1) / (6.0 * jMax * ph4)
		polynom[3] = (61.0*s.a0P4 - 76.0*s.a0A0*ph3 - 16.0*s.a0*ph1 +
			30.0*s.a0A0*p1 +
			ph2) / (24.0 * s.jMaxJMax * ph4)
		polynom[4] = (s.a0 *
			(7.0*s.a0P4 - 10.0*s.a0A0*ph3 - 4.0*s.a0*ph1 +
				6.0*s.a0A0*p1 +
				ph2)) / (12.0 * s.jMaxJMax * jMax * ph4)
		polynom[5] = (7.0*s.a0P6 + s.afP6 - 12.0*s.a0P4*ph3 +
			48.0*s.afP3*s.jMaxJMax*s.g1 -
			8.0*s.a0P3*ph1 -
			72.0*s.jMaxJMax*jMax*(jMax*s.g1*s.g1+s.vdVd*s.vd+2.0*s.af*s.g1*s.vd) -
			6.0*s.afP4*jMax*s.vd +
			36.0*s.afAf*s.jMaxJMax*s.vdVd +
			9.0*s.a0P4*p1 +
			3.0*s.a0A0*ph2) /
			(144.0 * s.jMaxJMax * s.jMaxJMax * ph4)

		var deriv [5]float64
		var dderiv [4]float64
		roots.PolyMonicDeri(polynom[:], deriv[:])
		roots.PolyDeri(deriv[:], dderiv[:])

		// Solve the 4th order derivative analytically.
		dExtremas := roots.SolveQuarticMonic(deriv[1], deriv[2], deriv[3], deriv[4])

		tzCurrent := tzMin

		checkRoot := func(t float64) bool {
			// Single Newton step (regarding pd)
			{
				h1 := math.Sqrt((s.a0A0+s.afAf)/(2.0*s.jMaxJMax) +
					(2.0*s.a0*t+jMax*t*t-s.vd)/jMax)
				orig := -s.pd -
					(2.0*s.a0P3+
						4.0*s.afP3+
						24.0*s.a0*jMax*t*(s.af+jMax*(h1+t-s.tf))+
						6.0*s.a0A0*(s.af+jMax*(2.0*t-s.tf))+
						6.0*(s.a0A0+s.afAf)*jMax*h1+
						12.0*s.af*jMax*(jMax*t*t-s.vd)+
						12.0*s.jMaxJMax*(jMax*t*t*(h1+t-s.tf)-
							s.tf*s.v0-
							h1*s.vd))/
						(12.0*s.jMaxJMax)
				derivNewton := -(s.a0 + jMax*t) *
					(3.0*(h1+t) - 2.0*s.tf + (s.a0+2.0*s.af)/jMax)
				if !math.IsNaN(orig) && !math.IsNaN(derivNewton) && math.Abs(derivNewton) > roots.Eps {
					t -= orig / derivNewton
				}
			}

			if t > s.tf || math.IsNaN(t) {
				return false
			}

			h1 := math.Sqrt((s.a0A0+s.afAf)/(2.0*s.jMaxJMax) +
				(t*(2.0*s.a0+jMax*t)-s.vd)/jMax)
			p.T[0] = t
			p.T[1] = 0.0
			p.T[2] = t + s.a0/jMax
			p.T[3] = s.tf - 2.0*(t+h1) - (s.a0+s.af)/jMax
			p.T[4] = h1
			p.T[5] = 0.0
			p.T[6] = h1 + s.af/jMax

			return p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsVel, jMax, vMax, vMin, aMax, aMin)
		}

		for _, tz := range dExtremas.Sorted() {
			if tz >= tzMax {
				continue
			}

			orig := roots.PolyEval(deriv[:], tz)
			if math.Abs(orig) > roots.Tolerance {
				tz -= orig / roots.PolyEval(dderiv[:], tz)
			}

			valNew := roots.PolyEval(polynom[:], tz)
			if math.Abs(valNew) < 64.0*math.Abs(roots.PolyEval(dderiv[:], tz))*roots.Tolerance {
				if checkRoot(tz) {
					return true
				}
			} else if roots.PolyEval(polynom[:], tzCurrent)*valNew < 0.0 &&
				checkRoot(roots.ShrinkInterval(polynom[:], tzCurrent, tz)) {
				return true
			}
			tzCurrent = tz
		}
		valMax := roots.PolyEval(polynom[:], tzMax)
		if roots.PolyEval(polynom[:], tzCurrent)*valMax < 0.0 {
			if checkRoot(roots.ShrinkInterval(polynom[:], tzCurrent, tzMax)) {
				return true
			}
		} else if math.Abs(valMax) < 8.0*roots.Eps && checkRoot(tzMax) {
			return true
		}
	}

	// Profile UDUD
	{
		ph1 := s.afAf - 2.0*jMax*(2.0*s.af*s.tf+jMax*s.tfTf-3.0*s.vd)
		ph2 := s.afP3 - 3.0*s.jMaxJMax*s.g1 + 3.0*s.af*jMax*s.vd
		ph3 := 2.0*jMax*s.tf*s.g1 + 3.0*s.vdVd
		ph4 := s.afP4 - 8.0*s.afP3*jMax*s.tf +
			12.0*jMax*(jMax*ph3+s.afAf*s.vd+2.0*s.af*jMax*(s.g1-s.tf*s.vd))
		ph5 := s.af + jMax*s.tf

		// Find the root of a 6th order polynom.
		var polynom [7]float64
		polynom[0] = 1.0
		polynom[1] = (5.0*s.a0 - ph5) / jMax
		polynom[2] = (39.0*s.a0A0 - ph1 - 16.0*s.a0*ph5) / (4.0 * s.jMaxJMax)
		polynom[3] = (55.0*s.a0P3 - 33.0*s.a0A0*ph5 - 6.0*s.a0*ph1 + 2.0*ph2) /
			(6.0 * s.jMaxJMax * jMax)
		polynom[4] = (101.0*s.a0P4 + ph4 - 76.0*s.a0P3*ph5 - 30.0*s.a0A0*ph1 + 16.0*s.a0*ph2) /
			(24.0 * s.jMaxJMax * s.jMaxJMax)
		polynom[5] = (s.a0 *
			(11.0*s.a0P4 + ph4 - 10.0*s.a0P3*ph5 - 6.0*s.a0A0*ph1 + 4.0*s.a0*ph2)) /
			(12.0 * s.jMaxJMax * s.jMaxJMax * jMax)
		polynom[6] = (11.0*s.a0P6 -
			s.afP6 -
			12.0*s.a0P5*ph5 -
			48.0*s.afP3*s.jMaxJMax*s.g1 -
			9.0*s.a0P4*ph1 +
			72.0*s.jMaxJMax*jMax*(jMax*s.g1*s.g1-s.vdVd*s.vd-2.0*s.af*s.g1*s.vd) -
			6.0*s.afP4*jMax*s.vd -
			36.0*s.afAf*s.jMaxJMax*s.vdVd +
			8.0*s.a0P3*ph2 +
			3.0*s.a0A0*ph4) /
			(144.0 * s.jMaxJMax * s.jMaxJMax * s.jMaxJMax)

		var deriv [6]float64
		var dderiv [5]float64
		roots.PolyMonicDeri(polynom[:], deriv[:])
		roots.PolyMonicDeri(deriv[:], dderiv[:])

		ddTzCurrent := tzMin
		var ddTzIntervals [6][2]float64
		ddTzIntervalCount := 0

		ddExtremas := roots.SolveQuarticMonic(dderiv[1], dderiv[2], dderiv[3], dderiv[4])
		var dderivDeriv [4]float64
		roots.PolyDeri(dderiv[:], dderivDeriv[:])
		for _, tz := range ddExtremas.Sorted() {
			if tz >= tzMax {
				continue
			}

			orig := roots.PolyEval(dderiv[:], tz)
			if math.Abs(orig) > roots.Tolerance {
				tz -= orig / roots.PolyEval(dderivDeriv[:], tz)
			}

			if roots.PolyEval(deriv[:], ddTzCurrent)*roots.PolyEval(deriv[:], tz) < 0.0 &&
				ddTzIntervalCount < len(ddTzIntervals) {
				ddTzIntervals[ddTzIntervalCount] = [2]float64{ddTzCurrent, tz}
				ddTzIntervalCount++
			}
			ddTzCurrent = tz
		}
		if roots.PolyEval(deriv[:], ddTzCurrent)*roots.PolyEval(deriv[:], tzMax) < 0.0 &&
			ddTzIntervalCount < len(ddTzIntervals) {
			ddTzIntervals[ddTzIntervalCount] = [2]float64{ddTzCurrent, tzMax}
			ddTzIntervalCount++
		}

		tzCurrent := tzMin

		checkRoot := func(t float64) bool {
			// Double Newton step (regarding pd)
			{
				h1 := math.Sqrt((s.afAf-s.a0A0)/(2.0*s.jMaxJMax) -
					((2.0*s.a0+jMax*t)*t-s.vd)/jMax)
				orig := -s.pd +
					(s.afP3-s.a0P3+3.0*s.a0A0*jMax*(s.tf-2.0*t))/(6.0*s.jMaxJMax) +
					(2.0*s.a0+jMax*t)*t*(s.tf-t) +
					(jMax*h1-s.af)*h1*h1 +
					s.tf*s.v0
				derivNewton := (s.a0 + jMax*t) *
					(2.0*(s.af+jMax*s.tf) - 3.0*jMax*(h1+t) - s.a0) / jMax

				t -= orig / derivNewton

				h1 = math.Sqrt((s.afAf-s.a0A0)/(2.0*s.jMaxJMax) -
					((2.0*s.a0+jMax*t)*t-s.vd)/jMax)
				orig = -s.pd +
					(s.afP3-s.a0P3+3.0*s.a0A0*jMax*(s.tf-2.0*t))/(6.0*s.jMaxJMax) +
					(2.0*s.a0+jMax*t)*t*(s.tf-t) +
					(jMax*h1-s.af)*h1*h1 +
					s.tf*s.v0
				if math.Abs(orig) > 1e-9 {
					derivNewton = (s.a0 + jMax*t) *
						(2.0*(s.af+jMax*s.tf) - 3.0*jMax*(h1+t) - s.a0) / jMax

					t -= orig / derivNewton
				}
			}

			h1 := math.Sqrt((s.afAf-s.a0A0)/(2.0*s.jMaxJMax) -
				((2.0*s.a0+jMax*t)*t-s.vd)/jMax)
			p.T[0] = t
			p.T[1] = 0.0
			p.T[2] = t + s.a0/jMax
			p.T[3] = s.tf - 2.0*(t+h1) + s.ad/jMax
			p.T[4] = h1
			p.T[5] = 0.0
			p.T[6] = h1 - s.af/jMax

			return p.CheckPositionTimed(profile.SignsUDUD, profile.LimitsVel, jMax, vMax, vMin, aMax, aMin)
		}

		for i := 0; i < ddTzIntervalCount; i++ {
			tz := roots.ShrinkInterval(deriv[:], ddTzIntervals[i][0], ddTzIntervals[i][1])

			if tz >= tzMax {
				continue
			}

			pVal := roots.PolyEval(polynom[:], tz)
			if math.Abs(pVal) < 64.0*math.Abs(roots.PolyEval(dderiv[:], tz))*roots.Tolerance {
				if checkRoot(tz) {
					return true
				}
			} else if roots.PolyEval(polynom[:], tzCurrent)*pVal < 0.0 &&
				checkRoot(roots.ShrinkInterval(polynom[:], tzCurrent, tz)) {
				return true
			}
			tzCurrent = tz
		}
		if roots.PolyEval(polynom[:], tzCurrent)*roots.PolyEval(polynom[:], tzMax) < 0.0 &&
			checkRoot(roots.ShrinkInterval(polynom[:], tzCurrent, tzMax)) {
			return true
		}
	}

	return false
}

func (s *positionStep2) timeAcc0Acc1(p *profile.Profile, vMax, vMin, aMax, aMin, _ float64) bool {
	if math.Abs(s.a0) < roots.Eps && math.Abs(s.af) < roots.Eps {
		h1 := 2.0*aMin*s.g1 + s.vdVd + aMax*(2.0*s.pd+aMin*s.tfTf-2.0*s.tf*s.vf)
		h2 := (aMax - aMin) * (-aMin*s.vd + aMax*(aMin*s.tf-s.vd))

		jf := h2 / h1
		p.T[0] = aMax / jf
		p.T[1] = (-2.0*aMax*h1 + aMin*aMin*s.g2) / h2
		p.T[2] = p.T[0]
		p.T[3] = 0.0
		p.T[4] = -aMin / jf
		p.T[5] = s.tf - (2.0*p.T[0] + p.T[1] + 2.0*p.T[4])
		p.T[6] = p.T[4]

		return p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0Acc1, jf, vMax, vMin, aMax, aMin)
	}

	// UDDU
	{
		h1 := math.Sqrt(144.0*sq((aMax-aMin)*(-aMin*s.vd+aMax*(aMin*s.tf-s.vd))-
			s.afAf*(aMax*s.tf-s.vd)+
			2.0*s.af*aMin*(aMax*s.tf-s.vd)+
			s.a0A0*(aMin*s.tf+s.v0-s.vf)-
			2.0*s.a0*aMax*(aMin*s.tf-s.vd)) +
			48.0*s.ad*
				(3.0*s.a0P3-3.0*s.afP3+
					12.0*aMax*aMin*(-aMax+aMin)+
					4.0*s.afAf*(aMax+2.0*aMin)+
					s.a0*(-3.0*s.afAf+
						8.0*s.af*(aMin-aMax)+
						6.0*(aMax*aMax+2.0*aMax*aMin-aMin*aMin))+
					6.0*s.af*(aMax*aMax-2.0*aMax*aMin-aMin*aMin)+
					s.a0A0*(3.0*s.af-4.0*(2.0*aMax+aMin)))*
				(2.0*aMin*s.g1+
					s.vd*s.vd+
					aMax*(2.0*s.pd+aMin*s.tf*s.tf-2.0*s.tf*s.vf)))
		jf := -(3.0*s.afAf*aMax*s.tf -
			3.0*s.a0A0*aMin*s.tf -
			6.0*s.ad*aMax*aMin*s.tf +
			3.0*aMax*aMin*(aMin-aMax)*s.tf +
			3.0*(s.a0A0-s.afAf)*s.vd +
			6.0*s.vd*(s.af*aMin-s.a0*aMax) +
			3.0*(aMax*aMax-aMin*aMin)*s.vd +
			h1/4.0) /
			(6.0 * (2.0*aMin*s.g1 +
				s.vd*s.vd +
				aMax*(2.0*s.pd+aMin*s.tfTf-2.0*s.tf*s.vf)))
		p.T[0] = (aMax - s.a0) / jf
		p.T[1] = (s.a0A0 - s.afAf + 2.0*s.ad*aMin -
			2.0*(aMax*aMax-2.0*aMax*aMin+aMin*aMin+aMin*jf*s.tf-jf*s.vd)) /
			(2.0 * (aMax - aMin) * jf)
		p.T[2] = aMax / jf
		p.T[3] = 0.0
		p.T[4] = -aMin / jf
		p.T[5] = s.tf - (p.T[0] + p.T[1] + p.T[2] + 2.0*p.T[4] + s.af/jf)
		p.T[6] = p.T[4] + s.af/jf

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0Acc1, jf, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	return false
}

func (s *positionStep2) timeAcc1(p *profile.Profile, vMax, vMin, aMax, aMin, jMax float64) bool {
	// Case UDDU
	{
		h0 := math.Sqrt(s.jMaxJMax*
			(s.a0P4+s.afP4-4.0*s.afP3*jMax*s.tf+
				6.0*s.afAf*s.jMaxJMax*s.tfTf-
				4.0*s.a0P3*(s.af-jMax*s.tf)+
				6.0*s.a0A0*sq(s.af-jMax*s.tf)+
				24.0*s.af*s.jMaxJMax*s.g1-
				4.0*s.a0*(s.afP3-3.0*s.afAf*jMax*s.tf+
					6.0*s.jMaxJMax*(-s.pd+s.tf*s.vf))-
				12.0*s.jMaxJMax*(-s.vdVd+jMax*s.tf*s.g2))/3.0) / jMax
		h1 := math.Sqrt((s.a0A0+s.afAf-
			2.0*s.a0*s.af-
			2.0*s.ad*jMax*s.tf+
			2.0*h0)/s.jMaxJMax + s.tfTf)

		p.T[0] = -(s.a0A0 + s.afAf + 2.0*s.a0*(jMax*s.tf-s.af) -
			2.0*jMax*s.vd +
			h0) /
			(2.0 * jMax * (-s.ad + jMax*s.tf))
		p.T[1] = 0.0
		p.T[2] = (s.tf-h1)/2.0 - s.ad/(2.0*jMax)
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = h1
		p.T[6] = s.tf - (p.T[0] + p.T[2] + p.T[5])

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc1, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	// Case UDUD
	{
		h0 := math.Sqrt(s.jMaxJMax*
			(s.a0P4+
				s.afP4+
				4.0*(s.afP3-s.a0P3)*jMax*s.tf+
				6.0*s.afAf*s.jMaxJMax*s.tfTf+
				6.0*s.a0A0*sq(s.af+jMax*s.tf)+
				24.0*s.af*s.jMaxJMax*s.g1-
				4.0*s.a0*(s.a0A0*s.af+
					s.afP3+
					3.0*s.afAf*jMax*s.tf+
					6.0*s.jMaxJMax*(-s.pd+s.tf*s.vf))+
				12.0*s.jMaxJMax*(s.vdVd+jMax*s.tf*s.g2))/3.0) / jMax
		h1 := math.Sqrt((s.a0A0+s.afAf-2.0*s.a0*s.af+
			2.0*s.ad*jMax*s.tf+
			2.0*h0)/s.jMaxJMax + s.tfTf)

		p.T[0] = 0.0
		p.T[1] = 0.0
		p.T[2] = -(s.a0A0 + s.afAf - 2.0*s.a0*s.af +
			2.0*jMax*(s.vd-s.a0*s.tf) +
			h0) /
			(2.0 * jMax * (s.ad + jMax*s.tf))
		p.T[3] = 0.0
		p.T[4] = s.ad/(2.0*jMax) + (s.tf-h1)/2.0
		p.T[5] = h1
		p.T[6] = s.tf - (p.T[5] + p.T[4] + p.T[2])

		if p.CheckPositionTimed(profile.SignsUDUD, profile.LimitsAcc1, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	// Case UDDU, Solution 2
	{
		h0a := s.a0P3 - s.afP3 - 3.0*s.a0A0*aMin +
			3.0*aMin*aMin*(s.a0+jMax*s.tf) +
			3.0*s.af*aMin*(-aMin-2.0*jMax*s.tf) -
			3.0*s.afAf*(-aMin-jMax*s.tf) -
			3.0*s.jMaxJMax*(-2.0*s.pd-aMin*s.tfTf+2.0*s.tf*s.vf)
		h0b := s.a0A0 + s.afAf - 2.0*(s.a0+s.af)*aMin +
			2.0*(aMin*aMin-jMax*(-aMin*s.tf+s.vd))
		h0c := s.a0P4 + 3.0*s.afP4 - 4.0*(s.a0P3+2.0*s.afP3)*aMin +
			6.0*s.a0A0*aMin*aMin +
			6.0*s.afAf*(aMin*aMin-2.0*jMax*s.vd) +
			12.0*jMax*(2.0*aMin*jMax*s.g1-aMin*aMin*s.vd+jMax*s.vdVd) +
			24.0*s.af*aMin*jMax*s.vd -
			4.0*s.a0*(s.afP3-3.0*s.af*aMin*(-aMin-2.0*jMax*s.tf)+
				3.0*s.afAf*(-aMin-jMax*s.tf)+
				3.0*jMax*(-aMin*aMin*s.tf+
					jMax*(-2.0*s.pd-aMin*s.tfTf+2.0*s.tf*s.vf)))
		h1 := math.Abs(jMax) / jMax * math.Sqrt(4.0*h0a*h0a-6.0*h0b*h0c)
		h2 := 6.0 * jMax * h0b

		p.T[0] = 0.0
		p.T[1] = 0.0
		p.T[2] = (2.0*h0a + h1) / h2
		p.T[3] = -(s.a0A0 + s.afAf - 2.0*(s.a0+s.af)*aMin +
			2.0*(aMin*aMin+aMin*jMax*s.tf-jMax*s.vd)) /
			(2.0 * jMax * (s.a0 - aMin - jMax*p.T[2]))
		p.T[4] = (s.a0-aMin)/jMax - p.T[2]
		p.T[5] = s.tf - (p.T[2] + p.T[3] + p.T[4] + (s.af-aMin)/jMax)
		p.T[6] = (s.af - aMin) / jMax

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc1, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	// Case UDUD, Solution 1
	{
		h0a := -s.a0P3 + s.afP3 + 3.0*(s.a0A0-s.afAf)*aMax -
			3.0*s.ad*aMax*aMax -
			6.0*s.af*aMax*jMax*s.tf +
			3.0*s.afAf*jMax*s.tf +
			3.0*jMax*(aMax*aMax*s.tf+
				jMax*(-2.0*s.pd-aMax*s.tfTf+2.0*s.tf*s.vf))
		h0b := s.a0A0 - s.afAf +
			2.0*s.ad*aMax +
			2.0*jMax*(aMax*s.tf-s.vd)
		h0c := s.a0P4 + 3.0*s.afP4 - 4.0*(s.a0P3+2.0*s.afP3)*aMax +
			6.0*s.a0A0*aMax*aMax -
			24.0*s.af*aMax*jMax*s.vd +
			12.0*jMax*(2.0*aMax*jMax*s.g1+jMax*s.vdVd+aMax*aMax*s.vd) +
			6.0*s.afAf*(aMax*aMax+2.0*jMax*s.vd) -
			4.0*s.a0*(s.afP3+3.0*s.af*aMax*(aMax-2.0*jMax*s.tf)-
				3.0*s.afAf*(aMax-jMax*s.tf)+
				3.0*jMax*(aMax*aMax*s.tf+
					jMax*(-2.0*s.pd-aMax*s.tfTf+2.0*s.tf*s.vf)))
		h1 := math.Abs(jMax) / jMax * math.Sqrt(4.0*h0a*h0a-6.0*h0b*h0c)
		h2 := 6.0 * jMax * h0b

		p.T[0] = 0.0
		p.T[1] = 0.0
		p.T[2] = -(2.0*h0a + h1) / h2
		p.T[3] = 2.0 * h1 / h2
		p.T[4] = (aMax-s.a0)/jMax + p.T[2]
		p.T[5] = s.tf - (p.T[2] + p.T[3] + p.T[4] + (-s.af+aMax)/jMax)
		p.T[6] = (-s.af + aMax) / jMax

		if p.CheckPositionTimed(profile.SignsUDUD, profile.LimitsAcc1, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}
	return false
}

func (s *positionStep2) timeAcc0(p *profile.Profile, vMax, vMin, aMax, aMin, jMax float64) bool {
	// UDUD
	{
		h1 := math.Sqrt(s.adAd/(2.0*s.jMaxJMax) -
			s.ad*(aMax-s.a0)/s.jMaxJMax +
			(aMax*s.tf-s.vd)/jMax)

		p.T[0] = (aMax - s.a0) / jMax
		p.T[1] = s.tf - s.ad/jMax - 2.0*h1
		p.T[2] = h1
		p.T[3] = 0.0
		p.T[4] = (s.af-aMax)/jMax + h1
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckPositionTimed(profile.SignsUDUD, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	// UDDU
	{
		h0a := -s.a0A0 + s.afAf - 2.0*s.ad*aMax +
			2.0*jMax*(aMax*s.tf-s.vd)
		h0b := s.a0P3 + 2.0*s.afP3 -
			6.0*s.afAf*aMax -
			3.0*s.a0A0*(s.af-jMax*s.tf) -
			3.0*s.a0*aMax*(aMax-2.0*s.af+2.0*jMax*s.tf) -
			3.0*jMax*(jMax*(-2.0*s.pd+aMax*s.tfTf+2.0*s.tf*s.v0)+
				aMax*(aMax*s.tf-2.0*s.vd)) +
			3.0*s.af*(aMax*aMax+2.0*aMax*jMax*s.tf-2.0*jMax*s.vd)
		h0 := math.Abs(jMax) * math.Sqrt(4.0*h0b*h0b-18.0*h0a*h0a*h0a)
		h1 := 3.0 * jMax * h0a

		p.T[0] = (-s.a0 + aMax) / jMax
		p.T[1] = (-s.a0P3 +
			s.afP3 +
			s.afAf*(-6.0*aMax+3.0*jMax*s.tf) +
			s.a0A0*(-3.0*s.af+6.0*aMax+3.0*jMax*s.tf) +
			6.0*s.af*(aMax*aMax-jMax*s.vd) +
			3.0*s.a0*(s.afAf-2.0*(aMax*aMax+jMax*s.vd)) -
			6.0*jMax*(aMax*(aMax*s.tf-2.0*s.vd)+jMax*s.g2)) / h1
		p.T[2] = -(s.ad+h0/h1)/(2.0*jMax) + s.tf/2.0 - p.T[1]/2.0
		p.T[3] = h0 / (jMax * h1)
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = s.tf - (p.T[0] + p.T[1] + p.T[2] + p.T[3])

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	// UDDU Solution 1
	{
		h0a := s.a0P3 + 2.0*s.afP3 -
			6.0*(s.afAf+aMax*aMax)*aMax -
			6.0*(s.a0+s.af)*aMax*jMax*s.tf +
			9.0*aMax*aMax*(s.af+jMax*s.tf) +
			3.0*s.a0*aMax*(-2.0*s.af+3.0*aMax) +
			3.0*s.a0A0*(s.af-2.0*aMax+jMax*s.tf) -
			6.0*s.jMaxJMax*s.g1 +
			6.0*(s.af-aMax)*jMax*s.vd -
			3.0*aMax*s.jMaxJMax*s.tfTf
		h0b := s.a0A0 +
			s.afAf +
			2.0*(aMax*aMax-(s.a0+s.af)*aMax+jMax*(s.vd-aMax*s.tf))
		h1 := math.Abs(jMax) / jMax * math.Sqrt(4.0*h0a*h0a-18.0*h0b*h0b*h0b)
		h2 := 6.0 * jMax * h0b

		p.T[0] = (-s.a0 + aMax) / jMax
		p.T[1] = s.ad/jMax - 2.0*p.T[0] - (2.0*h0a-h1)/h2 + s.tf
		p.T[2] = -(2.0*h0a + h1) / h2
		p.T[3] = (2.0*h0a - h1) / h2
		p.T[4] = s.tf - (p.T[0] + p.T[1] + p.T[2] + p.T[3])
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}
	return false
}

func (s *positionStep2) timeNone(p *profile.Profile, vMax, vMin, aMax, aMin, jMax float64) bool {
	if math.Abs(s.v0) < roots.Eps && math.Abs(s.a0) < roots.Eps && math.Abs(s.af) < roots.Eps {
		h1 := math.Sqrt(s.tfTf*s.vfVf + sq(4.0*s.pd-s.tf*s.vf))
		jf := 4.0 * (4.0*s.pd - 2.0*s.tf*s.vf + h1) / s.tfP3

		p.T[0] = s.tf / 4.0
		p.T[1] = 0.0
		p.T[2] = 2.0 * p.T[0]
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = p.T[0]

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jf, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	if math.Abs(s.a0) < roots.Eps && math.Abs(s.af) < roots.Eps {
		// Profiles with a3 != 0, solution UDDU: first acc, then constant.
		var polynom [4]float64
		polynom[0] = -2.0 * s.tf
		polynom[1] = 2.0*s.vd/jMax + s.tfTf
		polynom[2] = 4.0 * (s.pd - s.tf*s.vf) / jMax
		polynom[3] = (s.vdVd + jMax*s.tf*s.g2) / s.jMaxJMax

		candidates := roots.SolveQuarticMonic(polynom[0], polynom[1], polynom[2], polynom[3])
		for _, t := range candidates.Sorted() {
			if t > s.tf/2.0 || t > (aMax-s.a0)/jMax {
				continue
			}

			// Single Newton step (regarding pd)
			{
				h1 := (jMax*t*(t-s.tf) + s.vd) / (jMax * (2.0*t - s.tf))
				h2 := (2.0*jMax*t*(t-s.tf) + jMax*s.tfTf - 2.0*s.vd) /
					(jMax * (2.0*t - s.tf) * (2.0*t - s.tf))
				orig := (-2.0*s.pd +
					2.0*s.tf*s.v0 +
					h1*h1*jMax*(s.tf-2.0*t) +
					jMax*s.tf*(2.0*h1*t-t*t-(h1-t)*s.tf)) / 2.0
				deriv := (jMax*s.tf*(2.0*t-s.tf)*(h2-1.0))/2.0 +
					h1*jMax*(s.tf-(2.0*t-s.tf)*h2-h1)

				t -= orig / deriv
			}

			p.T[0] = t
			p.T[1] = 0.0
			p.T[2] = (jMax*t*(t-s.tf) + s.vd) / (jMax * (2.0*t - s.tf))
			p.T[3] = s.tf - 2.0*t
			p.T[4] = t - p.T[2]
			p.T[5] = 0.0
			p.T[6] = 0.0

			if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
				return true
			}
		}
	}

	// UDUD T 0246
	{
		h0 := math.Sqrt(2.0*s.jMaxJMax*
			(2.0*sq(s.a0P3-s.afP3-3.0*s.afAf*jMax*s.tf+
				9.0*s.af*s.jMaxJMax*s.tfTf-
				3.0*s.a0A0*(s.af+jMax*s.tf)+
				3.0*s.a0*sq(s.af+jMax*s.tf)+
				3.0*s.jMaxJMax*(8.0*s.pd+jMax*s.tfTf*s.tf-8.0*s.tf*s.vf))-
				3.0*(s.a0A0+s.afAf-
					2.0*s.af*jMax*s.tf-
					2.0*s.a0*(s.af+jMax*s.tf)-
					jMax*(jMax*s.tfTf+4.0*s.v0-4.0*s.vf))*
					(s.a0P4+
						s.afP4+
						4.0*s.afP3*jMax*s.tf+
						6.0*s.afAf*s.jMaxJMax*s.tfTf-
						3.0*s.jMaxJMax*s.jMaxJMax*s.tfTf*s.tfTf-
						4.0*s.a0P3*(s.af+jMax*s.tf)+
						6.0*s.a0A0*sq(s.af+jMax*s.tf)-
						12.0*s.af*s.jMaxJMax*(8.0*s.pd+jMax*s.tfTf*s.tf-8.0*s.tf*s.v0)+
						48.0*s.jMaxJMax*s.vdVd+
						48.0*s.jMaxJMax*jMax*s.tf*s.g2-
						4.0*s.a0*(s.afP3+3.0*s.afAf*jMax*s.tf-
							9.0*s.af*s.jMaxJMax*s.tfTf-
							3.0*s.jMaxJMax*(8.0*s.pd+jMax*s.tfTf*s.tf-8.0*s.tf*s.vf))))) / jMax
		h1 := 12.0 * jMax *
			(-s.a0A0 - s.afAf +
				2.0*s.af*jMax*s.tf +
				2.0*s.a0*(s.af+jMax*s.tf) +
				jMax*(jMax*s.tfTf+4.0*s.v0-4.0*s.vf))
		h2 := -4.0*s.a0P3 + 4.0*s.afP3 + 12.0*s.a0A0*s.af -
			12.0*s.a0*s.afAf +
			48.0*s.jMaxJMax*s.pd +
			12.0*(s.a0A0-s.afAf)*jMax*s.tf -
			24.0*s.jMaxJMax*s.tf*(s.v0+s.vf) +
			24.0*s.ad*jMax*s.vd
		h3 := 2.0*s.a0P3 - 2.0*s.afP3 - 6.0*s.a0A0*s.af + 6.0*s.a0*s.afAf

		p.T[0] = (h3 -
			48.0*s.jMaxJMax*(s.tf*s.vf-s.pd) -
			6.0*(s.a0A0+s.afAf)*jMax*s.tf +
			12.0*s.a0*s.af*jMax*s.tf +
			6.0*(s.a0+3.0*s.af+jMax*s.tf)*s.tfTf*s.jMaxJMax -
			h0) / h1
		p.T[1] = 0.0
		p.T[2] = (h2 + h0) / h1
		p.T[3] = 0.0
		p.T[4] = (-h2 + h0) / h1
		p.T[5] = 0.0
		p.T[6] = (-h3 + 48.0*s.jMaxJMax*(s.tf*s.v0-s.pd) -
			6.0*(s.a0A0+s.afAf)*jMax*s.tf +
			12.0*s.a0*s.af*jMax*s.tf +
			6.0*(s.af+3.0*s.a0+jMax*s.tf)*s.tfTf*s.jMaxJMax -
			h0) / h1

		if p.CheckPositionTimed(profile.SignsUDUD, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	// Profiles with a3 != 0, solution UDDU
	{
		// T 0234
		{
			ph1 := s.af + jMax*s.tf

			var polynom [4]float64
			polynom[0] = -2.0 * (s.ad + jMax*s.tf) / jMax
			polynom[1] = 2.0*(s.a0A0+s.afAf+jMax*(s.af*s.tf+s.vd)-2.0*s.a0*ph1)/s.jMaxJMax + s.tfTf
			polynom[2] = 2.0 * (s.a0P3 - s.afP3 - 3.0*s.afAf*jMax*s.tf +
				3.0*s.a0*ph1*(ph1-s.a0) -
				6.0*s.jMaxJMax*(-s.pd+s.tf*s.vf)) /
				(3.0 * s.jMaxJMax * jMax)
			polynom[3] = (s.a0P4 + s.afP4 + 4.0*s.afP3*jMax*s.tf -
				4.0*s.a0P3*ph1 +
				6.0*s.a0A0*ph1*ph1 +
				24.0*s.jMaxJMax*s.af*s.g1 -
				4.0*s.a0*(s.afP3+
					3.0*s.afAf*jMax*s.tf+
					6.0*s.jMaxJMax*(-s.pd+s.tf*s.vf)) +
				6.0*s.jMaxJMax*s.afAf*s.tfTf +
				12.0*s.jMaxJMax*(s.vdVd+jMax*s.tf*s.g2)) /
				(12.0 * s.jMaxJMax * s.jMaxJMax)

			tMin := s.ad / jMax
			tMax := math.Min((aMax-s.a0)/jMax, (s.ad/jMax+s.tf)/2.0)

			candidates := roots.SolveQuarticMonic(polynom[0], polynom[1], polynom[2], polynom[3])
			for _, t := range candidates.Sorted() {
				if t < tMin || t > tMax {
					continue
				}

				// Single Newton step (regarding pd)
				{
					h0 := jMax*(2.0*t-s.tf) - s.ad
					h1 := (s.adAd - 2.0*s.af*jMax*t +
						2.0*s.a0*jMax*(t-s.tf) +
						2.0*jMax*(jMax*t*(t-s.tf)+s.vd)) /
						(2.0 * jMax * h0)
					h2 := (-s.adAd +
						2.0*s.jMaxJMax*(s.tfTf+t*(t-s.tf)) +
						(s.a0+s.af)*jMax*s.tf -
						s.ad*h0 -
						2.0*jMax*s.vd) / (h0 * h0)
					orig := (-s.a0P3 +
						s.afP3 +
						3.0*s.adAd*jMax*(h1-t) +
						3.0*s.ad*s.jMaxJMax*(h1-t)*(h1-t) -
						3.0*s.a0*s.af*s.ad +
						3.0*s.jMaxJMax*(s.a0*s.tfTf-2.0*s.pd+
							2.0*s.tf*s.v0+
							h1*h1*jMax*(s.tf-2.0*t)+
							jMax*s.tf*(2.0*h1*t-t*t-(h1-t)*s.tf))) /
						(6.0 * s.jMaxJMax)
					deriv := (h0*(-s.ad+jMax*s.tf)*(h2-1.0))/(2.0*jMax) +
						h1*(-s.ad+jMax*(s.tf-h1)-h0*h2)

					t -= orig / deriv
				}

				p.T[0] = t
				p.T[1] = 0.0
				p.T[2] = (s.adAd +
					2.0*jMax*(-s.a0*s.tf-s.ad*t+
						jMax*t*(t-s.tf)+
						s.vd)) /
					(2.0 * jMax * (-s.ad + jMax*(2.0*t-s.tf)))
				p.T[3] = s.ad/jMax + s.tf - 2.0*t
				p.T[4] = s.tf - (t + p.T[2] + p.T[3])
				p.T[5] = 0.0
				p.T[6] = 0.0

				if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
					return true
				}
			}
		}

		// T 3456
		{
			h2 := s.adAd + 2.0*jMax*(s.a0*s.tf-s.vd)
			h1 := 3.0 * jMax * h2
			h0 := math.Sqrt(4.0*sq(2.0*(s.a0P3-s.afP3)-
				6.0*s.a0A0*(s.af-jMax*s.tf)+
				6.0*s.jMaxJMax*s.g1+
				3.0*s.a0*(2.0*s.afAf-2.0*jMax*s.af*s.tf+s.jMaxJMax*s.tfTf)+
				6.0*s.ad*jMax*s.vd)-
				18.0*h2*h2*h2) / h1 *
				math.Abs(jMax) / jMax

			p.T[0] = 0.0
			p.T[1] = 0.0
			p.T[2] = 0.0
			p.T[3] = (s.afP3 - s.a0P3 +
				3.0*(s.afAf-s.a0A0)*jMax*s.tf -
				3.0*s.ad*(s.a0*s.af+2.0*jMax*s.vd) -
				6.0*s.jMaxJMax*s.g2) / h1
			p.T[4] = (s.tf-p.T[3]-h0)/2.0 - s.ad/(2.0*jMax)
			p.T[5] = h0
			p.T[6] = (s.tf - p.T[3] + s.ad/jMax - h0) / 2.0

			if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
				return true
			}
		}

		// T 2346
		{
			ph1 := s.adAd + 2.0*(s.af+s.a0)*jMax*s.tf -
				jMax*(jMax*s.tfTf+4.0*s.vd)
			ph2 := jMax*s.tfTf*s.g1 -
				s.vd*(-2.0*s.pd-s.tf*s.v0+3.0*s.tf*s.vf)
			ph3 := 5.0*s.afAf - 8.0*s.af*jMax*s.tf +
				2.0*jMax*(2.0*jMax*s.tfTf-s.vd)
			ph4 := s.jMaxJMax*s.tfP4 - 2.0*s.vdVd +
				8.0*jMax*s.tf*(-s.pd+s.tf*s.vf)
			ph5 := 5.0*s.afP4 -
				8.0*s.afP3*jMax*s.tf -
				12.0*s.afAf*jMax*(jMax*s.tfTf+s.vd) +
				24.0*s.af*s.jMaxJMax*(-2.0*s.pd+jMax*s.tfP3+2.0*s.tf*s.vf) -
				6.0*s.jMaxJMax*ph4
			ph6 := -s.vdVd +
				jMax*s.tf*(-2.0*s.pd+3.0*s.tf*s.v0-s.tf*s.vf) -
				s.af*s.g2

			var polynom [4]float64
			polynom[0] = -(4.0*(s.a0P3-s.afP3) -
				12.0*s.a0A0*(s.af-jMax*s.tf) +
				6.0*s.a0*(2.0*s.afAf-2.0*s.af*jMax*s.tf+
					jMax*(jMax*s.tfTf-2.0*s.vd)) +
				6.0*s.af*jMax*(3.0*jMax*s.tfTf+2.0*s.vd) -
				6.0*s.jMaxJMax*(-4.0*s.pd+jMax*s.tfP3-2.0*s.tf*s.v0+6.0*s.tf*s.vf)) /
				(3.0 * jMax * ph1)
			polynom[1] = -(-s.a0P4 - s.afP4 +
				4.0*s.a0P3*(s.af-jMax*s.tf) +
				s.a0A0*(-6.0*s.afAf+8.0*s.af*jMax*s.tf-
					4.0*jMax*(jMax*s.tfTf-s.vd)) +
				2.0*s.afAf*jMax*(jMax*s.tfTf+2.0*s.vd) -
				4.0*s.af*s.jMaxJMax*(-3.0*s.pd+
					jMax*s.tfP3+
					2.0*s.tf*s.v0+
					s.tf*s.vf) +
				s.jMaxJMax*(s.jMaxJMax*s.tfP4-8.0*s.vdVd+
					4.0*jMax*s.tf*(-3.0*s.pd+s.tf*s.v0+2.0*s.tf*s.vf)) +
				2.0*s.a0*(2.0*s.afP3-2.0*s.afAf*jMax*s.tf+
					s.af*jMax*(-3.0*jMax*s.tfTf-4.0*s.vd)+
					s.jMaxJMax*(-6.0*s.pd+jMax*s.tfP3-4.0*s.tf*s.v0+
						10.0*s.tf*s.vf))) /
				(s.jMaxJMax * ph1)
			polynom[2] = -(s.a0P5 - s.afP5 + s.afP4*jMax*s.tf -
				5.0*s.a0P4*(s.af-jMax*s.tf) +
				2.0*s.a0P3*ph3 +
				4.0*s.afP3*jMax*(jMax*s.tfTf+s.vd) +
				12.0*s.jMaxJMax*s.af*ph6 -
				2.0*s.a0A0*(5.0*s.afP3-
					9.0*s.afAf*jMax*s.tf-
					6.0*s.af*jMax*s.vd+
					6.0*s.jMaxJMax*(-2.0*s.pd-s.tf*s.v0+3.0*s.tf*s.vf)) -
				12.0*s.jMaxJMax*jMax*ph2 +
				s.a0*ph5) /
				(3.0 * s.jMaxJMax * jMax * ph1)
			polynom[3] = -(-s.a0P6 - s.afP6 +
				6.0*s.a0P5*(s.af-jMax*s.tf) -
				48.0*s.afP3*s.jMaxJMax*s.g1 +
				72.0*s.jMaxJMax*jMax*(jMax*s.g1*s.g1+
					s.vdVd*s.vd+
					2.0*s.af*s.g1*s.vd) -
				3.0*s.a0P4*ph3 -
				36.0*s.afAf*s.jMaxJMax*s.vdVd +
				6.0*s.afP4*jMax*s.vd +
				4.0*s.a0P3*(5.0*s.afP3-
					9.0*s.afAf*jMax*s.tf-
					6.0*s.af*jMax*s.vd+
					6.0*s.jMaxJMax*(-2.0*s.pd-s.tf*s.v0+3.0*s.tf*s.vf)) -
				3.0*s.a0A0*ph5 +
				6.0*s.a0*(s.afP5-
					s.afP4*jMax*s.tf-
					4.0*s.afP3*jMax*(jMax*s.tfTf+s.vd)+
					12.0*s.jMaxJMax*(-s.af*ph6+jMax*ph2))) /
				(18.0 * s.jMaxJMax * s.jMaxJMax * ph1)

			tMax := (s.a0 - aMin) / jMax

			candidates := roots.SolveQuarticMonic(polynom[0], polynom[1], polynom[2], polynom[3])
			for _, t := range candidates.Sorted() {
				if t > tMax {
					continue
				}

				// Single Newton step (regarding pd)
				{
					h1 := s.adAd/2.0 +
						jMax*(s.af*t+(jMax*t-s.a0)*(t-s.tf)-s.vd)
					h2 := -s.ad + jMax*(s.tf-2.0*t)
					h3 := math.Sqrt(h1)
					orig := (s.afP3-s.a0P3+
						3.0*s.af*jMax*t*(s.af+jMax*t)+
						3.0*s.a0A0*(s.af+jMax*t)-
						3.0*s.a0*(s.afAf+
							2.0*s.af*jMax*t+
							s.jMaxJMax*(t*t-s.tfTf))+
						3.0*s.jMaxJMax*(-2.0*s.pd+
							jMax*t*(t-s.tf)*s.tf+
							2.0*s.tf*s.v0))/
						(6.0*s.jMaxJMax) -
						h3*h3*h3/(jMax*math.Abs(jMax)) +
						((-s.ad-jMax*t)*h1)/s.jMaxJMax
					deriv := (6.0*jMax*h2*h3/math.Abs(jMax) +
						2.0*(-s.ad-jMax*s.tf)*h2 -
						2.0*(3.0*s.adAd+
							s.af*jMax*(8.0*t-2.0*s.tf)+
							4.0*s.a0*jMax*(-2.0*t+s.tf)+
							2.0*jMax*(jMax*t*(3.0*t-2.0*s.tf)-s.vd))) /
						(4.0 * jMax)

					t -= orig / deriv
				}

				h1 := math.Sqrt(2.0*s.adAd+
					4.0*jMax*(s.ad*t+s.a0*s.tf+jMax*t*(t-s.tf)-s.vd)) /
					math.Abs(jMax)

				// Solution 2 with aPlat
				p.T[0] = 0.0
				p.T[1] = 0.0
				p.T[2] = t
				p.T[3] = s.tf - 2.0*t - s.ad/jMax - h1
				p.T[4] = h1 / 2.0
				p.T[5] = 0.0
				p.T[6] = s.tf - (t + p.T[3] + p.T[4])

				if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
					return true
				}
			}
		}
	}

	// Profiles with a3 != 0, solution UDUD
	{
		// T 0124
		{
			ph0 := -2.0*s.pd - s.tf*s.v0 + 3.0*s.tf*s.vf
			ph1 := -s.ad + jMax*s.tf
			ph2 := jMax*s.tfTf*s.g1 - s.vd*ph0
			ph3 := 5.0*s.afAf + 2.0*jMax*(2.0*jMax*s.tfTf-s.vd-4.0*s.af*s.tf)
			ph4 := s.jMaxJMax*s.tfP4 - 2.0*s.vdVd +
				8.0*jMax*s.tf*(-s.pd+s.tf*s.vf)
			ph5 := 5.0*s.afP4 -
				8.0*s.afP3*jMax*s.tf -
				12.0*s.afAf*jMax*(jMax*s.tfTf+s.vd) +
				24.0*s.af*s.jMaxJMax*(-2.0*s.pd+jMax*s.tfP3+2.0*s.tf*s.vf) -
				6.0*s.jMaxJMax*ph4
			ph6 := -s.vdVd + jMax*s.tf*(-2.0*s.pd+3.0*s.tf*s.v0-s.tf*s.vf)
			ph7 := 3.0 * s.jMaxJMax * ph1 * ph1

			var polynom [4]float64
			polynom[0] = (4.0*s.af*s.tf - 2.0*jMax*s.tfTf - 4.0*s.vd) / ph1
			polynom[1] = (-2.0*(s.a0P4+s.afP4) +
				8.0*s.afP3*jMax*s.tf +
				6.0*s.afAf*s.jMaxJMax*s.tfTf +
				8.0*s.a0P3*(s.af-jMax*s.tf) -
				12.0*s.a0A0*sq(s.af-jMax*s.tf) -
				12.0*s.af*s.jMaxJMax*(-s.pd+jMax*s.tfP3-2.0*s.tf*s.v0+3.0*s.tf*s.vf) +
				2.0*s.a0*(4.0*s.afP3-12.0*s.afAf*jMax*s.tf+
					9.0*s.af*s.jMaxJMax*s.tfTf-
					3.0*s.jMaxJMax*(2.0*s.pd+jMax*s.tfP3-2.0*s.tf*s.vf)) +
				3.0*s.jMaxJMax*(s.jMaxJMax*s.tfP4+4.0*s.vdVd-
					4.0*jMax*s.tf*(s.pd+s.tf*s.v0-2.0*s.tf*s.vf))) / ph7
			polynom[2] = (-s.a0P5 + s.afP5 - s.afP4*jMax*s.tf +
				5.0*s.a0P4*(s.af-jMax*s.tf) -
				2.0*s.a0P3*ph3 -
				4.0*s.afP3*jMax*(jMax*s.tfTf+s.vd) +
				12.0*s.afAf*s.jMaxJMax*s.g2 -
				12.0*s.af*s.jMaxJMax*ph6 +
				2.0*s.a0A0*(5.0*s.afP3-
					9.0*s.afAf*jMax*s.tf-
					6.0*s.af*jMax*s.vd+
					6.0*s.jMaxJMax*ph0) +
				12.0*s.jMaxJMax*jMax*ph2 +
				s.a0*(-5.0*s.afP4+
					8.0*s.afP3*jMax*s.tf+
					12.0*s.afAf*jMax*(jMax*s.tfTf+s.vd)-
					24.0*s.af*s.jMaxJMax*(-2.0*s.pd+jMax*s.tfP3+2.0*s.tf*s.vf)+
					6.0*s.jMaxJMax*ph4)) /
				(jMax * ph7)
			polynom[3] = -(s.a0P6 + s.afP6 -
				6.0*s.a0P5*(s.af-jMax*s.tf) +
				48.0*s.afP3*s.jMaxJMax*s.g1 -
				72.0*s.jMaxJMax*jMax*(jMax*s.g1*s.g1+
					s.vdVd*s.vd+
					2.0*s.af*s.g1*s.vd) +
				3.0*s.a0P4*ph3 -
				6.0*s.afP4*jMax*s.vd +
				36.0*s.afAf*s.jMaxJMax*s.vdVd -
				4.0*s.a0P3*(5.0*s.afP3-
					9.0*s.afAf*jMax*s.tf-
					6.0*s.af*jMax*s.vd+
					6.0*s.jMaxJMax*ph0) +
				3.0*s.a0A0*ph5 -
				6.0*s.a0*(s.afP5-
					s.afP4*jMax*s.tf-
					4.0*s.afP3*jMax*(jMax*s.tfTf+s.vd)+
					12.0*s.jMaxJMax*(s.afAf*s.g2-s.af*ph6+jMax*ph2))) /
				(6.0 * s.jMaxJMax * ph7)

			candidates := roots.SolveQuarticMonic(polynom[0], polynom[1], polynom[2], polynom[3])
			for _, t := range candidates.Sorted() {
				if t > s.tf || t > (aMax-s.a0)/jMax {
					continue
				}

				h1 := math.Sqrt(s.adAd/(2.0*s.jMaxJMax) +
					(s.a0*(t+s.tf)-s.af*t+jMax*t*s.tf-s.vd)/jMax)

				p.T[0] = t
				p.T[1] = s.tf - s.ad/jMax - 2.0*h1
				p.T[2] = h1
				p.T[3] = 0.0
				p.T[4] = s.ad/jMax + h1 - t
				p.T[5] = 0.0
				p.T[6] = 0.0

				if p.CheckPositionTimed(profile.SignsUDUD, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
					return true
				}
			}
		}
	}

	// 3-step profile (UZD), sometimes missed because of numerical errors; T 012
	{
		h1 := math.Sqrt(-s.adAd+jMax*(2.0*(s.a0+s.af)*s.tf-4.0*s.vd+jMax*s.tfTf)) / math.Abs(jMax)

		p.T[0] = (s.tf - h1 + s.ad/jMax) / 2.0
		p.T[1] = h1
		p.T[2] = (s.tf - h1 - s.ad/jMax) / 2.0
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	// 3-step profile (UZU), sometimes missed because of numerical errors
	{
		var polynom [4]float64
		polynom[0] = s.adAd
		polynom[1] = s.adAd * s.tf
		polynom[2] = (s.a0A0+s.afAf+10.0*s.a0*s.af)*s.tfTf +
			24.0*(s.tf*(s.af*s.v0-s.a0*s.vf)-s.pd*s.ad) +
			12.0*s.vdVd
		polynom[3] = -3.0 * s.tf *
			((s.a0A0+s.afAf+2.0*s.a0*s.af)*s.tfTf -
				4.0*s.vd*(s.a0+s.af)*s.tf +
				4.0*s.vdVd)

		candidates := roots.SolveCubic(polynom[0], polynom[1], polynom[2], polynom[3])
		for _, t := range candidates.Sorted() {
			if t > s.tf {
				continue
			}
			jf := s.ad / (s.tf - t)

			p.T[0] = (2.0*(s.vd-s.a0*s.tf) + s.ad*(t-s.tf)) / (2.0 * jf * t)
			p.T[1] = t
			p.T[2] = 0.0
			p.T[3] = 0.0
			p.T[4] = 0.0
			p.T[5] = 0.0
			p.T[6] = s.tf - (p.T[0] + p.T[1])

			if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
				return true
			}
		}
	}

	// 3-step profile (UDU), sometimes missed because of numerical errors
	{
		p.T[0] = (s.adAd/jMax + 2.0*(s.a0+s.af)*s.tf - jMax*s.tfTf - 4.0*s.vd) /
			(4.0 * (s.ad - jMax*s.tf))
		p.T[1] = 0.0
		p.T[2] = -s.ad/(2.0*jMax) + s.tf/2.0
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = s.tf - (p.T[0] + p.T[2])

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	return false
}

func (s *positionStep2) timeNoneSmooth(p *profile.Profile, vMax, vMin, aMax, aMin, jMax float64) bool {
	{
		h0 := s.adAd + 2.0*jMax*(s.a0*s.tf-s.vd)
		h1a := 2.0*(s.a0P3-s.afP3) -
			6.0*s.a0A0*(s.af-jMax*s.tf) +
			6.0*s.jMaxJMax*(-s.pd+s.tf*s.v0) +
			6.0*s.a0*s.afAf +
			3.0*s.a0*jMax*(jMax*s.tfTf-2.0*s.vd) +
			6.0*s.af*jMax*(s.vd-s.tf*s.a0)
		h1 := math.Sqrt(4.0*h1a*h1a-18.0*h0*h0*h0) * math.Abs(jMax) / jMax

		p.T[0] = 0.0
		p.T[1] = (-s.a0P3 + s.afP3 + 3.0*(s.afAf-s.a0A0)*jMax*s.tf -
			3.0*s.a0*s.af*s.ad -
			6.0*jMax*s.ad*s.vd -
			6.0*s.jMaxJMax*(-2.0*s.pd+s.tf*(s.v0+s.vf))) /
			(3.0 * jMax * h0)
		p.T[2] = (4.0*(s.a0P3-s.afP3) +
			6.0*s.jMaxJMax*s.a0*s.tfTf +
			12.0*s.a0*s.af*s.ad +
			12.0*jMax*(jMax*(s.tf*s.v0-s.pd)+s.ad*(s.vd-s.a0*s.tf)) -
			h1) /
			(6.0 * jMax * h0)
		p.T[3] = h1 / (3.0 * jMax * h0)
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = s.tf - (p.T[1] + p.T[2] + p.T[3])

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	{
		h0 := s.adAd + 2.0*jMax*(s.vd-s.af*s.tf)
		h0b := s.afP3 - 3.0*s.jMaxJMax*(s.af*s.tfTf+2.0*(s.pd-s.tf*s.vf))
		h1a := s.a0P3 + 3.0*s.a0*s.af*s.ad - h0b
		h1 := math.Sqrt(4.0*h1a*h1a-
			6.0*h0*(s.a0P4+s.afP4-4.0*s.a0P3*s.af+
				6.0*s.a0A0*s.afAf+
				12.0*s.jMaxJMax*(s.vdVd-2.0*s.af*(s.pd-s.tf*s.v0))-
				4.0*s.a0*h0b)) *
			math.Abs(jMax) / jMax

		p.T[0] = -(2.0*h1a + h1) / (6.0 * jMax * h0)
		p.T[1] = h1 / (3.0 * jMax * h0)
		p.T[2] = p.T[0] - (s.af-s.a0)/jMax
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = s.tf - (p.T[0] + p.T[1] + p.T[2])
		p.T[6] = 0.0

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	// Solution 3
	{
		h0 := math.Sqrt(3.0*(s.a0P4+s.afP4-4.0*s.afP3*jMax*s.tf+
			6.0*s.afAf*s.jMaxJMax*s.tfTf-
			4.0*s.a0P3*(s.af-jMax*s.tf)+
			6.0*s.a0A0*sq(s.af-jMax*s.tf)+
			24.0*s.af*s.jMaxJMax*(-s.pd+s.tf*s.v0)-
			4.0*s.a0*(s.afP3-3.0*s.afAf*jMax*s.tf+
				6.0*s.jMaxJMax*(-s.pd+s.tf*s.vf))-
			12.0*s.jMaxJMax*(-s.vdVd+
				jMax*s.tf*(-2.0*s.pd+s.tf*(s.v0+s.vf))))) *
			math.Abs(jMax) / jMax
		h1 := math.Sqrt(3.0*(3.0*s.a0A0+3.0*s.afAf-
			6.0*s.a0*s.af-
			6.0*s.ad*jMax*s.tf+
			3.0*s.jMaxJMax*s.tfTf-
			2.0*h0)) *
			math.Abs(jMax) / jMax

		p.T[0] = (-3.0*(s.a0A0+s.afAf) +
			6.0*s.a0*s.af +
			6.0*jMax*(s.vd-s.a0*s.tf) +
			h0) /
			(6.0 * jMax * (-s.ad + jMax*s.tf))
		p.T[1] = 0.0
		p.T[2] = (3.0*jMax*s.tf - 3.0*s.ad - h1) / (6.0 * jMax)
		p.T[3] = h1 / (3.0 * jMax)
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = s.tf - (p.T[0] + p.T[2] + p.T[3])

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	// Solution 2
	{
		h0 := 6.0 * (s.adAd + 2.0*s.af*jMax*s.tf - 2.0*jMax*s.vd)
		h1a := 2.0 * (s.a0P3 - s.afP3 +
			3.0*s.a0*s.af*s.ad +
			6.0*s.jMaxJMax*(s.pd-s.tf*s.vf) +
			3.0*s.jMaxJMax*s.af*s.tfTf)
		h1 := math.Sqrt(h1a*h1a-
			h0*(s.a0P4-4.0*s.a0P3*s.af+
				6.0*s.a0A0*s.afAf+
				s.afP4+
				24.0*s.af*s.jMaxJMax*(-s.pd+s.tf*s.v0)+
				12.0*s.jMaxJMax*s.vdVd-
				4.0*s.a0*(s.afP3-3.0*s.af*s.jMaxJMax*s.tfTf+
					6.0*s.jMaxJMax*(-s.pd+s.tf*s.vf)))) *
			math.Abs(jMax) / jMax
		h2 := 4.0*s.a0P3 - 4.0*s.afP3 + 12.0*s.a0*s.af*s.ad -
			12.0*s.jMaxJMax*(s.pd-s.tf*s.vf) -
			6.0*s.jMaxJMax*s.af*s.tfTf +
			12.0*s.ad*jMax*(s.vd-s.af*s.tf)
		h3 := jMax * h0

		p.T[0] = 0.0
		p.T[1] = 0.0
		p.T[2] = (h1a + h1) / h3
		p.T[3] = -(h2 + h1) / h3
		p.T[4] = (h2 - h1) / h3
		p.T[5] = s.tf - (p.T[2] + p.T[3] + p.T[4])
		p.T[6] = 0.0

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	// Solution 1
	{
		h0 := math.Sqrt((s.a0P4+s.afP4-4.0*s.afP3*jMax*s.tf+
			6.0*s.afAf*s.jMaxJMax*s.tfTf-
			4.0*s.a0P3*(s.af-jMax*s.tf)+
			6.0*s.a0A0*sq(s.af-jMax*s.tf)+
			24.0*s.af*s.jMaxJMax*(-s.pd+s.tf*s.v0)-
			4.0*s.a0*(s.afP3-3.0*s.afAf*jMax*s.tf+
				6.0*s.jMaxJMax*(-s.pd+s.tf*s.vf))-
			12.0*s.jMaxJMax*(-s.vdVd+
				jMax*s.tf*(-2.0*s.pd+s.tf*(s.v0+s.vf))))/3.0) *
			math.Abs(jMax) / jMax
		h1 := math.Sqrt(s.adAd-2.0*s.ad*jMax*s.tf+s.jMaxJMax*s.tfTf+2.0*h0) *
			math.Abs(jMax) / jMax

		p.T[0] = -(s.adAd + 2.0*jMax*(s.a0*s.tf-s.vd) + h0) /
			(2.0 * jMax * (-s.ad + jMax*s.tf))
		p.T[1] = 0.0
		p.T[2] = 0.0
		p.T[3] = 0.0
		p.T[4] = (-s.ad + jMax*s.tf - h1) / (2.0 * jMax)
		p.T[5] = h1 / jMax
		p.T[6] = s.tf - (p.T[0] + p.T[4] + p.T[5])

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			return true
		}
	}

	return false
}

func (s *positionStep2) getProfile(p *profile.Profile) bool {
	// Guess the more likely first direction from the required average
	// velocity.
	upFirst := s.pd > s.tf*s.v0
	vMax, vMin, aMax, aMin, jMax := s.vMax, s.vMin, s.aMax, s.aMin, s.jMax
	if !upFirst {
		vMax, vMin, aMax, aMin, jMax = s.vMin, s.vMax, s.aMin, s.aMax, -s.jMax
	}

	if s.minimizeJerk &&
		(s.timeNoneSmooth(p, vMax, vMin, aMax, aMin, jMax) ||
			s.timeNoneSmooth(p, vMin, vMax, aMin, aMax, -jMax)) {
		return true
	}

	return s.timeAcc0Acc1Vel(p, vMax, vMin, aMax, aMin, jMax) ||
		s.timeVel(p, vMax, vMin, aMax, aMin, jMax) ||
		s.timeAcc0Vel(p, vMax, vMin, aMax, aMin, jMax) ||
		s.timeAcc1Vel(p, vMax, vMin, aMax, aMin, jMax) ||
		s.timeAcc0Acc1Vel(p, vMin, vMax, aMin, aMax, -jMax) ||
		s.timeVel(p, vMin, vMax, aMin, aMax, -jMax) ||
		s.timeAcc0Vel(p, vMin, vMax, aMin, aMax, -jMax) ||
		s.timeAcc1Vel(p, vMin, vMax, aMin, aMax, -jMax) ||
		s.timeAcc0Acc1(p, vMax, vMin, aMax, aMin, jMax) ||
		s.timeAcc0(p, vMax, vMin, aMax, aMin, jMax) ||
		s.timeAcc1(p, vMax, vMin, aMax, aMin, jMax) ||
		s.timeNone(p, vMax, vMin, aMax, aMin, jMax) ||
		s.timeAcc0Acc1(p, vMin, vMax, aMin, aMax, -jMax) ||
		s.timeAcc0(p, vMin, vMax, aMin, aMax, -jMax) ||
		s.timeAcc1(p, vMin, vMax, aMin, aMax, -jMax) ||
		s.timeNone(p, vMin, vMax, aMin, aMax, -jMax)
}
