package microtonalist

import (
	"fmt"
	"math"
)

const (
	// DefaultCentsTolerance is the default epsilon, in cents, for considering
	// two deviations equal. It absorbs conversion error between interval
	// representations; exact floating point equality is never used.
	DefaultCentsTolerance = 0.02

	// DefaultQuarterToneTolerance is the default half-width, in cents, of the
	// band around an exact quarter tone inside which the rounding direction
	// is chosen by configuration instead of by ordinary rounding.
	DefaultQuarterToneTolerance = 2.0

	defaultMinDeviation = -CentsPerSemitone
	defaultMaxDeviation = CentsPerSemitone
)

// TuningMapper assigns the degrees of a scale to the 12 keyboard pitch
// classes, producing the partial tuning that plays the scale from the given
// reference, moved by the transposition interval.
type TuningMapper interface {
	MapScale(scale Scale, reference TuningReference, transposition Interval) (PartialTuning, error)
}

// DeviationOverflowError reports a manually computed deviation outside the
// representable window around its key.
type DeviationOverflowError struct {
	PitchClass PitchClass
	Deviation  float64
	// Min and Max are the configured exclusive bounds.
	Min, Max float64
}

func (e *DeviationOverflowError) Error() string {
	return fmt.Sprintf("deviation %.2f of pitch class %s is outside the exclusive bounds (%.2f, %.2f)",
		e.Deviation, e.PitchClass, e.Min, e.Max)
}

// ManualTuningMapper applies an explicit KeyboardMapping literally: each
// mapped key gets the exact deviation of its scale degree, with no rounding
// and no collision handling. Mapping fails with a DeviationOverflowError when
// a deviation falls outside the exclusive (MinDeviation, MaxDeviation)
// window; both bounds zero means the default (-100, 100).
type ManualTuningMapper struct {
	Mapping      KeyboardMapping
	MinDeviation float64
	MaxDeviation float64
}

func (m ManualTuningMapper) MapScale(scale Scale, reference TuningReference, transposition Interval) (PartialTuning, error) {
	minDev, maxDev := m.MinDeviation, m.MaxDeviation
	if minDev == 0 && maxDev == 0 {
		minDev, maxDev = defaultMinDeviation, defaultMaxDeviation
	}
	base := reference.BaseTuningPitch().Cents()
	var deviations [NumPitchClasses]OptionalCents
	for i := range deviations {
		pc := PitchClass(i)
		index, ok := m.Mapping.IndexInScale(pc)
		if !ok {
			continue
		}
		if index >= len(scale.Intervals) {
			return PartialTuning{}, fmt.Errorf(
				"keyboard mapping refers to degree %d of scale %q which has only %d degrees",
				index, scale.Name, len(scale.Intervals))
		}
		cents := normalizeCents(base + scale.Intervals[index].Add(transposition).Cents())
		deviation := cents - CentsPerSemitone*float64(pc)
		// C sits at the 0/1200 wraparound: pick the closer side.
		if pc == PitchClassC && math.Abs(cents-CentsPerOctave) < math.Abs(cents) {
			deviation = cents - CentsPerOctave
		}
		if deviation <= minDev || deviation >= maxDev {
			return PartialTuning{}, &DeviationOverflowError{
				PitchClass: pc, Deviation: deviation, Min: minDev, Max: maxDev}
		}
		deviations[i] = CentsOf(deviation)
	}
	return PartialTuning{Name: scale.Name, Deviations: deviations}, nil
}
