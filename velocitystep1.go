package otg

import (
	"math"

	"go.viam.com/otg/profile"
	"go.viam.com/otg/roots"
)

// velocityStep1 computes the extremal profiles of the third-order velocity
// interface for a single DoF.
type velocityStep1 struct {
	a0, af     float64
	aMax, aMin float64
	jMax       float64
	vd         float64

	validProfiles [6]profile.Profile
	currentIndex  int
}

func (s *velocityStep1) init(v0, a0, vf, af, aMax, aMin, jMax float64) {
	s.a0 = a0
	s.af = af
	s.aMax = aMax
	s.aMin = aMin
	s.jMax = jMax
	s.vd = vf - v0
	s.currentIndex = 0
}

func (s *velocityStep1) addProfile() {
	if s.currentIndex < 5 {
		s.currentIndex++
		s.validProfiles[s.currentIndex].SetBoundaryFromProfile(&s.validProfiles[s.currentIndex-1])
	}
}

func (s *velocityStep1) timeAcc0(aMax, aMin, jMax float64, _ bool) {
	p := &s.validProfiles[s.currentIndex]
	p.T[0] = (-s.a0 + aMax) / jMax
	p.T[1] = (s.a0*s.a0+s.af*s.af)/(2.0*aMax*jMax) - aMax/jMax + s.vd/aMax
	p.T[2] = (-s.af + aMax) / jMax
	p.T[3] = 0.0
	p.T[4] = 0.0
	p.T[5] = 0.0
	p.T[6] = 0.0

	if p.CheckVelocity(profile.SignsUDDU, profile.LimitsAcc0, jMax, aMax, aMin) {
		s.addProfile()
	}
}

func (s *velocityStep1) timeNone(aMax, aMin, jMax float64, returnAfterFound bool) {
	h1 := (s.a0*s.a0+s.af*s.af)/2.0 + jMax*s.vd
	if h1 < 0.0 {
		return
	}
	h1 = math.Sqrt(h1)

	// Solution 1
	{
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = -(s.a0 + h1) / jMax
		p.T[1] = 0.0
		p.T[2] = -(s.af + h1) / jMax
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckVelocity(profile.SignsUDDU, profile.LimitsNone, jMax, aMax, aMin) {
			s.addProfile()
			if returnAfterFound {
				return
			}
		}
	}

	// Solution 2
	{
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = (-s.a0 + h1) / jMax
		p.T[1] = 0.0
		p.T[2] = (-s.af + h1) / jMax
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckVelocity(profile.SignsUDDU, profile.LimitsNone, jMax, aMax, aMin) {
			s.addProfile()
		}
	}
}

func (s *velocityStep1) timeAllSingleStep(p *profile.Profile, aMax, aMin float64) bool {
	if math.Abs(s.af-s.a0) > roots.Eps {
		return false
	}

	p.T = [7]float64{}

	if math.Abs(s.a0) > roots.Eps {
		p.T[3] = s.vd / s.a0
		if p.CheckVelocity(profile.SignsUDDU, profile.LimitsNone, 0.0, aMax, aMin) {
			return true
		}
	} else if math.Abs(s.vd) < roots.Eps &&
		p.CheckVelocity(profile.SignsUDDU, profile.LimitsNone, 0.0, aMax, aMin) {
		return true
	}

	return false
}

func (s *velocityStep1) getProfile(input *profile.Profile, block *profile.Block) bool {
	// Zero-limits special case.
	if s.jMax == 0.0 {
		p := &block.PMin
		p.SetBoundaryFromProfile(input)

		if s.timeAllSingleStep(p, s.aMax, s.aMin) {
			block.TMin = p.TSum[6] + p.Brake.Duration + p.Accel.Duration
			if math.Abs(s.a0) > roots.Eps {
				interval := profile.NewInterval(block.TMin, math.Inf(1))
				block.A = &interval
			}
			return true
		}
		return false
	}

	s.validProfiles[0].SetBoundaryFromProfile(input)
	s.currentIndex = 0

	if math.Abs(s.af) < roots.Eps {
		// There is no blocked interval when af == 0, so return after the
		// first found profile.
		aMax, aMin, jMax := s.aMax, s.aMin, s.jMax
		if s.vd < 0.0 {
			aMax, aMin, jMax = s.aMin, s.aMax, -s.jMax
		}

		for _, try := range []func(){
			func() { s.timeNone(aMax, aMin, jMax, true) },
			func() { s.timeAcc0(aMax, aMin, jMax, true) },
			func() { s.timeNone(aMin, aMax, -jMax, true) },
			func() { s.timeAcc0(aMin, aMax, -jMax, true) },
		} {
			try()
			if s.currentIndex > 0 {
				return profile.CalculateBlock(block, &s.validProfiles, &s.currentIndex)
			}
		}
	} else {
		s.timeNone(s.aMax, s.aMin, s.jMax, false)
		s.timeNone(s.aMin, s.aMax, -s.jMax, false)
		s.timeAcc0(s.aMax, s.aMin, s.jMax, false)
		s.timeAcc0(s.aMin, s.aMax, -s.jMax, false)
	}

	return profile.CalculateBlock(block, &s.validProfiles, &s.currentIndex)
}
