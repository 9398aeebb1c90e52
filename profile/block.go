package profile

import (
	"math"

	"go.viam.com/otg/roots"
)

// Interval is a range of total durations that no feasible profile of a DoF
// can realize, together with the profile that takes over at its right edge.
type Interval struct {
	Left    float64
	Right   float64
	Profile Profile
}

// NewInterval returns a blocked interval without an associated profile.
func NewInterval(left, right float64) Interval {
	return Interval{Left: left, Right: right}
}

// IntervalFromProfiles builds the blocked interval between the durations of
// two feasible profiles, keeping the slower one.
func IntervalFromProfiles(left, right *Profile) Interval {
	leftDuration := left.TSum[6] + left.Brake.Duration + left.Accel.Duration
	rightDuration := right.TSum[6] + right.Brake.Duration + right.Accel.Duration

	if leftDuration < rightDuration {
		return Interval{Left: leftDuration, Right: rightDuration, Profile: *right}
	}
	return Interval{Left: rightDuration, Right: leftDuration, Profile: *left}
}

// Block answers which total durations are possible for a DoF: its minimum
// profile plus up to two blocked intervals above the minimum duration.
type Block struct {
	PMin Profile
	TMin float64
	A    *Interval
	B    *Interval
}

// SetMinProfile installs the minimum-duration profile and clears the blocked
// intervals.
func (b *Block) SetMinProfile(p *Profile) {
	b.PMin = *p
	b.TMin = p.TSum[6] + p.Brake.Duration + p.Accel.Duration
	b.A = nil
	b.B = nil
}

func removeProfile(validProfiles *[6]Profile, counter *int, index int) {
	for i := index; i < *counter-1; i++ {
		validProfiles[i] = validProfiles[i+1]
	}
	*counter--
}

// CalculateBlock merges the valid Step-1 candidate profiles into a Block.
// One, three or five candidates merge directly; two give the faster profile
// plus a blocked interval up to the slower one. Four candidates merge only
// after a pair that differs by numerical noise is collapsed; any other even
// count fails.
func CalculateBlock(block *Block, validProfiles *[6]Profile, counter *int) bool {
	switch {
	case *counter == 1:
		block.SetMinProfile(&validProfiles[0])
		return true
	case *counter == 2:
		if math.Abs(validProfiles[0].TSum[6]-validProfiles[1].TSum[6]) < 8.0*roots.Eps {
			block.SetMinProfile(&validProfiles[0])
			return true
		}

		idxMin := 0
		if validProfiles[1].TSum[6] < validProfiles[0].TSum[6] {
			idxMin = 1
		}
		idxElse := (idxMin + 1) % 2

		block.SetMinProfile(&validProfiles[idxMin])
		interval := IntervalFromProfiles(&validProfiles[idxMin], &validProfiles[idxElse])
		block.A = &interval
		return true
	case *counter == 4:
		// Collapse "identical" profiles left over from numerical noise.
		if math.Abs(validProfiles[0].TSum[6]-validProfiles[1].TSum[6]) < 32.0*roots.Eps &&
			validProfiles[0].Direction != validProfiles[1].Direction {
			removeProfile(validProfiles, counter, 1)
		} else if (math.Abs(validProfiles[2].TSum[6]-validProfiles[3].TSum[6]) < 256.0*roots.Eps &&
			validProfiles[2].Direction != validProfiles[3].Direction) ||
			(math.Abs(validProfiles[0].TSum[6]-validProfiles[3].TSum[6]) < 256.0*roots.Eps &&
				validProfiles[0].Direction != validProfiles[3].Direction) {
			removeProfile(validProfiles, counter, 3)
		} else {
			return false
		}
	case *counter%2 == 0:
		return false
	}

	idxMin := 0
	for i := 1; i < *counter; i++ {
		if validProfiles[i].TSum[6] < validProfiles[idxMin].TSum[6] {
			idxMin = i
		}
	}

	block.SetMinProfile(&validProfiles[idxMin])

	if *counter == 3 {
		idxElse1 := (idxMin + 1) % 3
		idxElse2 := (idxMin + 2) % 3

		interval := IntervalFromProfiles(&validProfiles[idxElse1], &validProfiles[idxElse2])
		block.A = &interval
		return true
	} else if *counter == 5 {
		idxElse1 := (idxMin + 1) % 5
		idxElse2 := (idxMin + 2) % 5
		idxElse3 := (idxMin + 3) % 5
		idxElse4 := (idxMin + 4) % 5

		if validProfiles[idxElse1].Direction == validProfiles[idxElse2].Direction {
			a := IntervalFromProfiles(&validProfiles[idxElse1], &validProfiles[idxElse2])
			b := IntervalFromProfiles(&validProfiles[idxElse3], &validProfiles[idxElse4])
			block.A = &a
			block.B = &b
		} else {
			a := IntervalFromProfiles(&validProfiles[idxElse1], &validProfiles[idxElse4])
			b := IntervalFromProfiles(&validProfiles[idxElse2], &validProfiles[idxElse3])
			block.A = &a
			block.B = &b
		}
		return true
	}

	return false
}

// IsBlocked reports whether total duration t is unreachable for this DoF.
func (b *Block) IsBlocked(t float64) bool {
	if t < b.TMin {
		return true
	}
	if b.A != nil && t > b.A.Left && t < b.A.Right {
		return true
	}
	if b.B != nil && t > b.B.Left && t < b.B.Right {
		return true
	}
	return false
}

// ProfileAt returns the Step-1 profile that governs duration t.
func (b *Block) ProfileAt(t float64) *Profile {
	if b.B != nil && t >= b.B.Right {
		return &b.B.Profile
	}
	if b.A != nil && t >= b.A.Right {
		return &b.A.Profile
	}
	return &b.PMin
}
