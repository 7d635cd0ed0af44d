package microtonalist

// Scale is an ordered sequence of intervals, one per scale degree, each
// relative to the scale's conceptual base pitch. A scale may or may not
// contain a unison or an octave degree.
type Scale struct {
	Name      string
	Intervals []Interval
}

// NewScale creates a scale from its degree intervals.
func NewScale(name string, intervals ...Interval) Scale {
	return Scale{Name: name, Intervals: intervals}
}

// Transpose returns the scale with every degree moved by the given interval.
func (s Scale) Transpose(by Interval) Scale {
	intervals := make([]Interval, len(s.Intervals))
	for i, interval := range s.Intervals {
		intervals[i] = interval.Add(by)
	}
	return Scale{Name: s.Name, Intervals: intervals}
}

// unisonDegree returns the index of the first degree that is a whole number
// of octaves away from the base pitch, within tolerance cents.
func (s Scale) unisonDegree(tolerance float64) (int, bool) {
	for i, interval := range s.Intervals {
		if interval.IsUnison(tolerance) {
			return i, true
		}
	}
	return 0, false
}
