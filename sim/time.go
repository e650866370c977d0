package sim

import "math"

// VTime is a point in virtual time. It only has meaning within a simulation
// and does not relate to the wall clock.
type VTime float64

// Infinity is the virtual time that is never reached. A time-advance function
// returning Infinity means "no internal transition".
var Infinity = VTime(math.Inf(1))

// DefaultEpsilon is the default tolerance that decides whether two events are
// simultaneous. Two events with |t1-t2| <= epsilon belong to the same
// concurrent batch.
const DefaultEpsilon VTime = 0.001

// IsInfinite returns true if the time can never be reached.
func (t VTime) IsInfinite() bool {
	return math.IsInf(float64(t), 1)
}

func (t VTime) within(other, epsilon VTime) bool {
	return VTime(math.Abs(float64(t-other))) <= epsilon
}
