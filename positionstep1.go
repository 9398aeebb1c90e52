package otg

import (
	"math"

	"go.viam.com/otg/profile"
	"go.viam.com/otg/roots"
)

// positionStep1 computes the extremal (time-optimal) profiles of the
// third-order position interface for a single DoF. The candidate templates
// are enumerated in both jerk directions; the feasible ones are merged into a
// Block of possible durations.
type positionStep1 struct {
	v0, a0, vf, af           float64
	vMax, vMin               float64
	aMax, aMin               float64
	jMax                     float64
	pd                       float64
	v0v0, vfvf               float64
	a0a0, a0p3, a0p4         float64
	afaf, afp3, afp4         float64
	jMaxJMax                 float64

	// Max 5 valid profiles, plus one spare for numerical issues.
	validProfiles [6]profile.Profile
	currentIndex  int
}

func (s *positionStep1) init(p0, v0, a0, pf, vf, af, vMax, vMin, aMax, aMin, jMax float64) {
	s.v0 = v0
	s.a0 = a0
	s.vf = vf
	s.af = af
	s.vMax = vMax
	s.vMin = vMin
	s.aMax = aMax
	s.aMin = aMin
	s.jMax = jMax
	s.pd = pf - p0
	s.v0v0 = v0 * v0
	s.vfvf = vf * vf
	s.a0a0 = a0 * a0
	s.afaf = af * af
	s.a0p3 = a0 * s.a0a0
	s.a0p4 = s.a0a0 * s.a0a0
	s.afp3 = af * s.afaf
	s.afp4 = s.afaf * s.afaf
	s.jMaxJMax = jMax * jMax
	s.currentIndex = 0
}

func (s *positionStep1) addProfile() {
	if s.currentIndex < 5 {
		s.currentIndex++
		s.validProfiles[s.currentIndex].SetBoundaryFromProfile(&s.validProfiles[s.currentIndex-1])
	}
}

func (s *positionStep1) timeAllVel(vMax, vMin, aMax, aMin, jMax float64, _ bool) {
	// ACC0_ACC1_VEL
	p := &s.validProfiles[s.currentIndex]
	p.T[0] = (-s.a0 + aMax) / jMax
	p.T[1] = (s.a0a0/2.0 - aMax*aMax - jMax*(s.v0-vMax)) / (aMax * jMax)
	p.T[2] = aMax / jMax
	p.T[3] = (3.0*(s.a0p4*aMin-s.afp4*aMax) +
		8.0*aMax*aMin*(s.afp3-s.a0p3+3.0*jMax*(s.a0*s.v0-s.af*s.vf)) +
		6.0*s.a0a0*aMin*(aMax*aMax-2.0*jMax*s.v0) -
		6.0*s.afaf*aMax*(aMin*aMin-2.0*jMax*s.vf) -
		12.0*jMax*(aMax*aMin*(aMax*(s.v0+vMax)-aMin*(s.vf+vMax)-2.0*jMax*s.pd)+
			(aMin-aMax)*jMax*vMax*vMax+
			jMax*(aMax*s.vfvf-aMin*s.v0v0))) /
		(24.0 * aMax * aMin * s.jMaxJMax * vMax)
	p.T[4] = -aMin / jMax
	p.T[5] = -(s.afaf/2.0 - aMin*aMin - jMax*(s.vf-vMax)) / (aMin * jMax)
	p.T[6] = p.T[4] + s.af/jMax

	if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsVel, jMax, vMax, vMin, aMax, aMin) {
		s.addProfile()
		return
	}

	// ACC1_VEL
	p = &s.validProfiles[s.currentIndex]
	tAcc0 := math.Sqrt(s.a0a0/(2.0*s.jMaxJMax) + (vMax-s.v0)/jMax)

	p.T[0] = tAcc0 - s.a0/jMax
	p.T[1] = 0.0
	p.T[2] = tAcc0
	p.T[3] = -(3.0*s.afp4 -
		8.0*aMin*(s.afp3-s.a0p3) -
		24.0*aMin*jMax*(s.a0*s.v0-s.af*s.vf) +
		6.0*s.afaf*(aMin*aMin-2.0*jMax*s.vf) -
		12.0*jMax*(2.0*aMin*jMax*s.pd+
			aMin*aMin*(s.vf+vMax)+
			jMax*(vMax*vMax-s.vfvf)+
			aMin*tAcc0*(s.a0a0-2.0*jMax*(s.v0+vMax)))) /
		(24.0 * aMin * s.jMaxJMax * vMax)

	if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsVel, jMax, vMax, vMin, aMax, aMin) {
		s.addProfile()
		return
	}

	// ACC0_VEL
	p = &s.validProfiles[s.currentIndex]
	tAcc1 := math.Sqrt(s.afaf/(2.0*s.jMaxJMax) + (vMax-s.vf)/jMax)

	p.T[0] = (-s.a0 + aMax) / jMax
	p.T[1] = (s.a0a0/2.0 - aMax*aMax - jMax*(s.v0-vMax)) / (aMax * jMax)
	p.T[2] = aMax / jMax
	p.T[3] = (3.0*s.a0p4 +
		8.0*aMax*(s.afp3-s.a0p3) +
		24.0*aMax*jMax*(s.a0*s.v0-s.af*s.vf) +
		6.0*s.a0a0*(aMax*aMax-2.0*jMax*s.v0) -
		12.0*jMax*(-2.0*aMax*jMax*s.pd+
			aMax*aMax*(s.v0+vMax)+
			jMax*(vMax*vMax-s.v0v0)+
			aMax*tAcc1*(-s.afaf+2.0*(s.vf+vMax)*jMax))) /
		(24.0 * aMax * s.jMaxJMax * vMax)
	p.T[4] = tAcc1
	p.T[5] = 0.0
	p.T[6] = tAcc1 + s.af/jMax

	if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsVel, jMax, vMax, vMin, aMax, aMin) {
		s.addProfile()
		return
	}

	// VEL
	p = &s.validProfiles[s.currentIndex]
	p.T[0] = tAcc0 - s.a0/jMax
	p.T[1] = 0.0
	p.T[2] = tAcc0
	p.T[3] = (s.afp3-s.a0p3)/(3.0*s.jMaxJMax*vMax) +
		(s.a0*s.v0-s.af*s.vf+(s.afaf*tAcc1+s.a0a0*tAcc0)/2.0)/(jMax*vMax) -
		(s.v0/vMax+1.0)*tAcc0 -
		(s.vf/vMax+1.0)*tAcc1 +
		s.pd/vMax
	p.T[4] = tAcc1
	p.T[5] = 0.0
	p.T[6] = tAcc1 + s.af/jMax

	if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsVel, jMax, vMax, vMin, aMax, aMin) {
		s.addProfile()
	}
}

func (s *positionStep1) timeAcc0Acc1(vMax, vMin, aMax, aMin, jMax float64, returnAfterFound bool) {
	h1 := (3.0*(s.afp4*aMax-s.a0p4*aMin)+
		aMax*aMin*(8.0*(s.a0p3-s.afp3)+
			3.0*aMax*aMin*(aMax-aMin)+
			6.0*aMin*s.afaf-
			6.0*aMax*s.a0a0)+
		12.0*jMax*(aMax*aMin*((aMax-2.0*s.a0)*s.v0-(aMin-2.0*s.af)*s.vf)+
			aMin*s.a0a0*s.v0-
			aMax*s.afaf*s.vf))/
		(3.0*(aMax-aMin)*s.jMaxJMax) +
		4.0*(aMax*s.vfvf-aMin*s.v0v0-2.0*aMin*aMax*s.pd)/(aMax-aMin)

	if h1 < 0.0 {
		return
	}

	h1 = math.Sqrt(h1) / 2.0
	h2 := s.a0a0/(2.0*aMax*jMax) + (aMin-2.0*aMax)/(2.0*jMax) - s.v0/aMax
	h3 := -s.afaf/(2.0*aMin*jMax) - (aMax-2.0*aMin)/(2.0*jMax) + s.vf/aMin

	// UDDU: Solution 2
	if h2 > h1/aMax && h3 > -h1/aMin {
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = (-s.a0 + aMax) / jMax
		p.T[1] = h2 - h1/aMax
		p.T[2] = aMax / jMax
		p.T[3] = 0.0
		p.T[4] = -aMin / jMax
		p.T[5] = h3 + h1/aMin
		p.T[6] = p.T[4] + s.af/jMax

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0Acc1, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
			if returnAfterFound {
				return
			}
		}
	}

	// UDDU: Solution 1
	if h2 > -h1/aMax && h3 > h1/aMin {
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = (-s.a0 + aMax) / jMax
		p.T[1] = h2 + h1/aMax
		p.T[2] = aMax / jMax
		p.T[3] = 0.0
		p.T[4] = -aMin / jMax
		p.T[5] = h3 - h1/aMin
		p.T[6] = p.T[4] + s.af/jMax

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0Acc1, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
		}
	}
}

func (s *positionStep1) timeAllNoneAcc0Acc1(vMax, vMin, aMax, aMin, jMax float64, returnAfterFound bool) {
	jMaxJMax := jMax * jMax

	// NONE UDDU / UDUD strategy: t7 == 0 (equals UDDU), in particular prone
	// to numerical issues.
	h2None := (s.a0a0-s.afaf)/(2.0*jMax) + (s.vf - s.v0)
	h2H2 := h2None * h2None
	tMinNone := (s.a0 - s.af) / jMax
	tMaxNone := (aMax - aMin) / jMax

	var polynomNone [4]float64
	polynomNone[0] = 0.0
	polynomNone[1] = -2.0 * (s.a0a0 + s.afaf - 2.0*jMax*(s.v0+s.vf)) / jMaxJMax
	polynomNone[2] = 4.0*(s.a0p3-s.afp3+3.0*jMax*(s.af*s.vf-s.a0*s.v0))/(3.0*jMaxJMax*jMax) - 4.0*s.pd/jMax
	polynomNone[3] = -h2H2 / jMaxJMax

	// ACC0
	h3Acc0 := (s.a0a0-s.afaf)/(2.0*aMax*jMax) + (s.vf-s.v0)/aMax
	tMinAcc0 := (aMax - s.af) / jMax
	tMaxAcc0 := (aMax - aMin) / jMax

	h0Acc0 := 3.0*(s.afp4-s.a0p4) +
		8.0*(s.a0p3-s.afp3)*aMax +
		24.0*aMax*jMax*(s.af*s.vf-s.a0*s.v0) -
		6.0*s.a0a0*(aMax*aMax-2.0*jMax*s.v0) +
		6.0*s.afaf*(aMax*aMax-2.0*jMax*s.vf) +
		12.0*jMax*(jMax*(s.vfvf-s.v0v0-2.0*aMax*s.pd)-aMax*aMax*(s.vf-s.v0))
	h2Acc0 := -s.afaf + aMax*aMax + 2.0*jMax*s.vf

	var polynomAcc0 [4]float64
	polynomAcc0[0] = -2.0 * aMax / jMax
	polynomAcc0[1] = h2Acc0 / jMaxJMax
	polynomAcc0[2] = 0.0
	polynomAcc0[3] = h0Acc0 / (12.0 * s.jMaxJMax * s.jMaxJMax)

	// ACC1
	h3Acc1 := -(s.a0a0+s.afaf)/(2.0*jMax*aMin) + aMin/jMax + (s.vf-s.v0)/aMin
	tMinAcc1 := (aMin - s.a0) / jMax
	tMaxAcc1 := (aMax - s.a0) / jMax

	h0Acc1 := (s.a0p4-s.afp4)/4.0 +
		2.0*(s.afp3-s.a0p3)*aMin/3.0 +
		(s.a0a0-s.afaf)*aMin*aMin/2.0 +
		jMax*(s.afaf*s.vf+
			s.a0a0*s.v0+
			2.0*aMin*(jMax*s.pd-s.a0*s.v0-s.af*s.vf)+
			aMin*aMin*(s.v0+s.vf)+
			jMax*(s.v0v0-s.vfvf))
	h2Acc1 := s.a0a0 - s.a0*aMin + 2.0*jMax*s.v0

	var polynomAcc1 [4]float64
	polynomAcc1[0] = 2.0 * (2.0*s.a0 - aMin) / jMax
	polynomAcc1[1] = (5.0*s.a0a0 + aMin*(aMin-6.0*s.a0) + 2.0*jMax*s.v0) / jMaxJMax
	polynomAcc1[2] = 2.0 * (s.a0 - aMin) * h2Acc1 / (jMaxJMax * jMax)
	polynomAcc1[3] = h0Acc1 / (s.jMaxJMax * s.jMaxJMax)

	polynomAcc0Min := polynomAcc0
	polynomAcc0Min[0] += 4.0 * tMinAcc0
	polynomAcc0Min[1] += (3.0*polynomAcc0[0] + 6.0*tMinAcc0) * tMinAcc0
	polynomAcc0Min[2] += (2.0*polynomAcc0[1] + (3.0*polynomAcc0[0]+4.0*tMinAcc0)*tMinAcc0) * tMinAcc0
	polynomAcc0Min[3] += (polynomAcc0[2] + (polynomAcc0[1]+(polynomAcc0[0]+tMinAcc0)*tMinAcc0)*tMinAcc0) * tMinAcc0

	polynomAcc0HasSolution := polynomAcc0Min[0] < 0.0 || polynomAcc0Min[1] < 0.0 ||
		polynomAcc0Min[2] < 0.0 || polynomAcc0Min[3] <= 0.0
	polynomAcc1HasSolution := polynomAcc1[0] < 0.0 || polynomAcc1[1] < 0.0 ||
		polynomAcc1[2] < 0.0 || polynomAcc1[3] <= 0.0

	rootsNone := roots.SolveQuarticMonic(polynomNone[0], polynomNone[1], polynomNone[2], polynomNone[3])
	var rootsAcc0, rootsAcc1 roots.Set
	if polynomAcc0HasSolution {
		rootsAcc0 = roots.SolveQuarticMonic(polynomAcc0[0], polynomAcc0[1], polynomAcc0[2], polynomAcc0[3])
	}
	if polynomAcc1HasSolution {
		rootsAcc1 = roots.SolveQuarticMonic(polynomAcc1[0], polynomAcc1[1], polynomAcc1[2], polynomAcc1[3])
	}

	for _, t := range rootsNone.Sorted() {
		if t < tMinNone || t > tMaxNone {
			continue
		}

		// Single Newton step (regarding pd)
		if t > roots.Eps {
			h1 := jMax * t * t
			orig := -h2H2/(4.0*jMax*t) +
				h2None*(s.af/jMax+t) +
				(4.0*s.a0p3+2.0*s.afp3-
					6.0*s.a0a0*(s.af+2.0*jMax*t)+
					12.0*(s.af-s.a0)*jMax*s.v0+
					3.0*s.jMaxJMax*(-4.0*s.pd+(h1+8.0*s.v0)*t))/
					(12.0*s.jMaxJMax)
			deriv := h2None + 2.0*s.v0 - s.a0a0/jMax + h2H2/(4.0*h1) + (3.0*h1)/4.0

			t -= orig / deriv
		}
		p := &s.validProfiles[s.currentIndex]
		h0 := h2None / (2.0 * jMax * t)
		p.T[0] = h0 + t/2.0 - s.a0/jMax
		p.T[1] = 0.0
		p.T[2] = t
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = -h0 + t/2.0 + s.af/jMax

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
			if returnAfterFound {
				return
			}
		}
	}

	for _, t := range rootsAcc0.Sorted() {
		if t < tMinAcc0 || t > tMaxAcc0 {
			continue
		}

		// Single Newton step (regarding pd)
		if t > roots.Eps {
			h1 := jMax * t
			orig := h0Acc0/(12.0*s.jMaxJMax*t) + t*(h2Acc0+h1*(h1-2.0*aMax))
			deriv := 2.0 * (h2Acc0 + h1*(2.0*h1-3.0*aMax))

			t -= orig / deriv
		}
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = (-s.a0 + aMax) / jMax
		p.T[1] = h3Acc0 - 2.0*t + (jMax/aMax)*t*t
		p.T[2] = t
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = (s.af-aMax)/jMax + t

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
			if returnAfterFound {
				return
			}
		}
	}

	for _, t := range rootsAcc1.Sorted() {
		if t < tMinAcc1 || t > tMaxAcc1 {
			continue
		}

		// Double Newton step (regarding pd)
		if t > roots.Eps {
			h5 := s.a0p3 + 2.0*jMax*s.a0*s.v0
			acc1Orig := func(t float64) float64 {
				h1 := jMax * t
				return -(h0Acc1/2.0 +
					h1*(h5+
						s.a0*(aMin-2.0*h1)*(aMin-h1)+
						s.a0a0*(5.0*h1/2.0-2.0*aMin)+
						aMin*aMin*h1/2.0+
						jMax*(h1/2.0-aMin)*(h1*t+2.0*s.v0))) / jMax
			}
			acc1Deriv := func(t float64) float64 {
				h1 := jMax * t
				return (aMin - s.a0 - h1) * (h2Acc1 + h1*(4.0*s.a0-aMin+2.0*h1))
			}

			deltaT := math.Min(acc1Orig(t)/acc1Deriv(t), t)
			t -= deltaT

			if orig := acc1Orig(t); math.Abs(orig) > 1e-9 {
				t -= orig / acc1Deriv(t)
				if orig = acc1Orig(t); math.Abs(orig) > 1e-9 {
					t -= orig / acc1Deriv(t)
				}
			}
		}
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = t
		p.T[1] = 0.0
		p.T[2] = (s.a0-aMin)/jMax + t
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = h3Acc1 - (2.0*s.a0+jMax*t)*t/aMin
		p.T[6] = (s.af - aMin) / jMax

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc1, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
			if returnAfterFound {
				return
			}
		}
	}
}

func (s *positionStep1) timeAcc1VelTwoStep(vMax, vMin, aMax, aMin, jMax float64) {
	p := &s.validProfiles[s.currentIndex]
	p.T[0] = 0.0
	p.T[1] = 0.0
	p.T[2] = s.a0 / jMax
	p.T[3] = -(3.0*s.afp4 -
		8.0*aMin*(s.afp3-s.a0p3) -
		24.0*aMin*jMax*(s.a0*s.v0-s.af*s.vf) +
		6.0*s.afaf*(aMin*aMin-2.0*jMax*s.vf) -
		12.0*jMax*(2.0*aMin*jMax*s.pd+
			aMin*aMin*(s.vf+vMax)+
			jMax*(vMax*vMax-s.vfvf)+
			aMin*s.a0*(s.a0a0-2.0*jMax*(s.v0+vMax))/jMax)) /
		(24.0 * aMin * s.jMaxJMax * vMax)
	p.T[4] = -aMin / jMax
	p.T[5] = -(s.afaf/2.0 - aMin*aMin + jMax*(vMax-s.vf)) / (aMin * jMax)
	p.T[6] = p.T[4] + s.af/jMax

	if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc1Vel, jMax, vMax, vMin, aMax, aMin) {
		s.addProfile()
	}
}

func (s *positionStep1) timeAcc0TwoStep(vMax, vMin, aMax, aMin, jMax float64) {
	// Two step
	{
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = 0.0
		p.T[1] = (s.afaf - s.a0a0 + 2.0*jMax*(s.vf-s.v0)) / (2.0 * s.a0 * jMax)
		p.T[2] = (s.a0 - s.af) / jMax
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
			return
		}
	}

	// Three step, removed pf
	{
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = (-s.a0 + aMax) / jMax
		p.T[1] = (s.a0a0 + s.afaf - 2.0*aMax*aMax + 2.0*jMax*(s.vf-s.v0)) / (2.0 * aMax * jMax)
		p.T[2] = (-s.af + aMax) / jMax
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
			return
		}
	}

	// Three step, removed aMax
	{
		p := &s.validProfiles[s.currentIndex]
		h0 := 3.0 * (s.afaf - s.a0a0 + 2.0*jMax*(s.v0+s.vf))
		h2 := s.a0p3 + 2.0*s.afp3 + 6.0*s.jMaxJMax*s.pd + 6.0*(s.af-s.a0)*jMax*s.vf - 3.0*s.a0*s.afaf
		h1 := math.Sqrt(2.0*(2.0*h2*h2+
			h0*(s.a0p4-6.0*s.a0a0*(s.afaf+2.0*jMax*s.vf)+
				8.0*s.a0*(s.afp3+3.0*s.jMaxJMax*s.pd+3.0*s.af*jMax*s.vf)-
				3.0*(s.afp4+4.0*s.afaf*jMax*s.vf+4.0*s.jMaxJMax*(s.vfvf-s.v0v0))))) *
			math.Abs(jMax) / jMax
		p.T[0] = (4.0*s.afp3 + 2.0*s.a0p3 - 6.0*s.a0*s.afaf +
			12.0*s.jMaxJMax*s.pd + 12.0*(s.af-s.a0)*jMax*s.vf + h1) /
			(2.0 * jMax * h0)
		p.T[1] = -h1 / (jMax * h0)
		p.T[2] = (-4.0*s.a0p3 - 2.0*s.afp3 + 6.0*s.a0a0*s.af +
			12.0*s.jMaxJMax*s.pd - 12.0*(s.af-s.a0)*jMax*s.v0 + h1) /
			(2.0 * jMax * h0)
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
			return
		}
	}

	// Three step, t = (aMax - aMin)/jMax
	{
		t := (aMax - aMin) / jMax
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = (-s.a0 + aMax) / jMax
		p.T[1] = (s.a0a0-s.afaf)/(2.0*aMax*jMax) + (s.vf-s.v0+jMax*t*t)/aMax - 2.0*t
		p.T[2] = t
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = (s.af - aMin) / jMax

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsAcc0, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
		}
	}
}

func (s *positionStep1) timeVelTwoStep(vMax, vMin, aMax, aMin, jMax float64) {
	h1 := math.Sqrt(s.afaf/(2.0*s.jMaxJMax) + (vMax-s.vf)/jMax)

	// Four step
	{
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = -s.a0 / jMax
		p.T[1] = 0.0
		p.T[2] = 0.0
		p.T[3] = (s.afp3-s.a0p3)/(3.0*s.jMaxJMax*vMax) +
			(s.a0*s.v0-s.af*s.vf+(s.afaf*h1)/2.0)/(jMax*vMax) -
			(s.vf/vMax+1.0)*h1 +
			s.pd/vMax
		p.T[4] = h1
		p.T[5] = 0.0
		p.T[6] = h1 + s.af/jMax

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsVel, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
			return
		}
	}

	// Four step
	{
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = 0.0
		p.T[1] = 0.0
		p.T[2] = s.a0 / jMax
		p.T[3] = (s.afp3-s.a0p3)/(3.0*s.jMaxJMax*vMax) +
			(s.a0*s.v0-s.af*s.vf+(s.afaf*h1+s.a0p3/jMax)/2.0)/(jMax*vMax) -
			(s.v0/vMax+1.0)*s.a0/jMax -
			(s.vf/vMax+1.0)*h1 +
			s.pd/vMax
		p.T[4] = h1
		p.T[5] = 0.0
		p.T[6] = h1 + s.af/jMax

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsVel, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
		}
	}
}

func (s *positionStep1) timeNoneTwoStep(vMax, vMin, aMax, aMin, jMax float64) {
	// Two step
	{
		p := &s.validProfiles[s.currentIndex]
		h0 := math.Sqrt((s.a0a0+s.afaf)/2.0+jMax*(s.vf-s.v0)) * math.Abs(jMax) / jMax
		p.T[0] = (h0 - s.a0) / jMax
		p.T[1] = 0.0
		p.T[2] = (h0 - s.af) / jMax
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
			return
		}
	}

	// Single step
	{
		p := &s.validProfiles[s.currentIndex]
		p.T[0] = (s.af - s.a0) / jMax
		p.T[1] = 0.0
		p.T[2] = 0.0
		p.T[3] = 0.0
		p.T[4] = 0.0
		p.T[5] = 0.0
		p.T[6] = 0.0

		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, jMax, vMax, vMin, aMax, aMin) {
			s.addProfile()
		}
	}
}

func (s *positionStep1) timeAllSingleStep(p *profile.Profile, vMax, vMin, aMax, aMin float64) bool {
	if math.Abs(s.af-s.a0) > roots.Eps {
		return false
	}

	p.T = [7]float64{}

	if math.Abs(s.a0) > roots.Eps {
		q := math.Sqrt(2.0*s.a0*s.pd + s.v0v0)

		// Solution 1
		p.T[3] = (-s.v0 + q) / s.a0
		if p.T[3] >= 0.0 && p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, 0.0, vMax, vMin, aMax, aMin) {
			return true
		}

		// Solution 2
		p.T[3] = -(s.v0 + q) / s.a0
		if p.T[3] >= 0.0 && p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, 0.0, vMax, vMin, aMax, aMin) {
			return true
		}
	} else if math.Abs(s.v0) > roots.Eps {
		p.T[3] = s.pd / s.v0
		if p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, 0.0, vMax, vMin, aMax, aMin) {
			return true
		}
	} else if math.Abs(s.pd) < roots.Eps &&
		p.CheckPositionTimed(profile.SignsUDDU, profile.LimitsNone, 0.0, vMax, vMin, aMax, aMin) {
		return true
	}

	return false
}

func (s *positionStep1) getProfile(input *profile.Profile, block *profile.Block) bool {
	// Zero-limits special case.
	if s.jMax == 0.0 || s.aMax == 0.0 || s.aMin == 0.0 {
		p := &block.PMin
		p.SetBoundaryFromProfile(input)

		if s.timeAllSingleStep(p, s.vMax, s.vMin, s.aMax, s.aMin) {
			block.TMin = p.TSum[6] + p.Brake.Duration + p.Accel.Duration
			if math.Abs(s.v0) > roots.Eps || math.Abs(s.a0) > roots.Eps {
				interval := profile.NewInterval(block.TMin, math.Inf(1))
				block.A = &interval
			}
			return true
		}
		return false
	}

	s.validProfiles[0].SetBoundaryFromProfile(input)
	s.currentIndex = 0

	if math.Abs(s.vf) < roots.Eps && math.Abs(s.af) < roots.Eps {
		vMax, vMin, aMax, aMin, jMax := s.vMax, s.vMin, s.aMax, s.aMin, s.jMax
		if s.pd < 0.0 {
			vMax, vMin, aMax, aMin, jMax = s.vMin, s.vMax, s.aMin, s.aMax, -s.jMax
		}

		if math.Abs(s.v0) < roots.Eps && math.Abs(s.a0) < roots.Eps && math.Abs(s.pd) < roots.Eps {
			s.timeAllNoneAcc0Acc1(vMax, vMin, aMax, aMin, jMax, true)
		} else {
			// There is no blocked interval when vf == 0 && af == 0, so return
			// after the first found profile.
			for _, try := range []func(){
				func() { s.timeAllVel(vMax, vMin, aMax, aMin, jMax, true) },
				func() { s.timeAllNoneAcc0Acc1(vMax, vMin, aMax, aMin, jMax, true) },
				func() { s.timeAcc0Acc1(vMax, vMin, aMax, aMin, jMax, true) },
				func() { s.timeAllVel(vMin, vMax, aMin, aMax, -jMax, true) },
				func() { s.timeAllNoneAcc0Acc1(vMin, vMax, aMin, aMax, -jMax, true) },
				func() { s.timeAcc0Acc1(vMin, vMax, aMin, aMax, -jMax, true) },
			} {
				try()
				if s.currentIndex > 0 {
					return profile.CalculateBlock(block, &s.validProfiles, &s.currentIndex)
				}
			}
		}
	} else {
		s.timeAllNoneAcc0Acc1(s.vMax, s.vMin, s.aMax, s.aMin, s.jMax, false)
		s.timeAllNoneAcc0Acc1(s.vMin, s.vMax, s.aMin, s.aMax, -s.jMax, false)
		s.timeAcc0Acc1(s.vMax, s.vMin, s.aMax, s.aMin, s.jMax, false)
		s.timeAcc0Acc1(s.vMin, s.vMax, s.aMin, s.aMax, -s.jMax, false)
		s.timeAllVel(s.vMax, s.vMin, s.aMax, s.aMin, s.jMax, false)
		s.timeAllVel(s.vMin, s.vMax, s.aMin, s.aMax, -s.jMax, false)
	}

	if s.currentIndex == 0 {
		// Degenerate boundary states: two-step and one-step recovery
		// templates, first match wins.
		for _, try := range []func(){
			func() { s.timeNoneTwoStep(s.vMax, s.vMin, s.aMax, s.aMin, s.jMax) },
			func() { s.timeNoneTwoStep(s.vMin, s.vMax, s.aMin, s.aMax, -s.jMax) },
			func() { s.timeAcc0TwoStep(s.vMax, s.vMin, s.aMax, s.aMin, s.jMax) },
			func() { s.timeAcc0TwoStep(s.vMin, s.vMax, s.aMin, s.aMax, -s.jMax) },
			func() { s.timeVelTwoStep(s.vMax, s.vMin, s.aMax, s.aMin, s.jMax) },
			func() { s.timeVelTwoStep(s.vMin, s.vMax, s.aMin, s.aMax, -s.jMax) },
			func() { s.timeAcc1VelTwoStep(s.vMax, s.vMin, s.aMax, s.aMin, s.jMax) },
			func() { s.timeAcc1VelTwoStep(s.vMin, s.vMax, s.aMin, s.aMax, -s.jMax) },
		} {
			try()
			if s.currentIndex > 0 {
				return profile.CalculateBlock(block, &s.validProfiles, &s.currentIndex)
			}
		}
	}

	return profile.CalculateBlock(block, &s.validProfiles, &s.currentIndex)
}
