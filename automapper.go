package microtonalist

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// TuningConflictError reports an unavoidable collision of two or more scale
// pitches on one key beyond tolerance. It is deterministic: identical inputs
// always reproduce it.
type TuningConflictError struct {
	ScaleName string
	Conflicts map[PitchClass][]TuningPitch
}

func (e *TuningConflictError) Error() string {
	classes := make([]int, 0, len(e.Conflicts))
	for pc := range e.Conflicts {
		classes = append(classes, int(pc))
	}
	sort.Ints(classes)
	var sb strings.Builder
	for i, pc := range classes {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%s gets %v", PitchClass(pc), e.Conflicts[PitchClass(pc)])
	}
	return fmt.Sprintf("scale %q has conflicting pitches: %s", e.ScaleName, sb.String())
}

// AutoTuningMapper assigns scale degrees to keys automatically, rounding each
// degree to its nearest key and resolving quarter-tone ties and adjacent-key
// collisions deterministically.
type AutoTuningMapper struct {
	// MapQuarterTonesLow picks the lower of the two keys for pitches within
	// QuarterToneTolerance of an exact quarter tone; false picks the upper.
	MapQuarterTonesLow bool

	// QuarterToneTolerance is the half-width, in cents, of the band around a
	// quarter tone inside which MapQuarterTonesLow decides the rounding.
	// Zero means DefaultQuarterToneTolerance.
	QuarterToneTolerance float64

	// Tolerance is the equality epsilon in cents, used for conflict
	// detection and for merging the override pitches. Zero means
	// DefaultCentsTolerance.
	Tolerance float64

	// SoftChromaticGenus enables the cosmetic re-rounding of quarter tones
	// inside soft-chromatic augmented-second neighborhoods.
	SoftChromaticGenus SoftChromaticGenusMapping

	// Override pins pitch classes to scale degrees; those degrees are mapped
	// through a ManualTuningMapper and excluded from automatic assignment.
	Override KeyboardMapping
}

func (m AutoTuningMapper) MapScale(scale Scale, reference TuningReference, transposition Interval) (PartialTuning, error) {
	quarterToneTolerance := m.QuarterToneTolerance
	if quarterToneTolerance == 0 {
		quarterToneTolerance = DefaultQuarterToneTolerance
	}
	tolerance := m.Tolerance
	if tolerance == 0 {
		tolerance = DefaultCentsTolerance
	}

	n := len(scale.Intervals)
	if n == 0 {
		return PartialTuning{Name: scale.Name}, nil
	}
	base := reference.BaseTuningPitch().Cents()

	// Degrees pinned by the override mapping never take part in automatic
	// assignment, nor in collision detection below. The overridden keys
	// themselves belong to the override alone: automatic candidates landing
	// on them are dropped, which keeps the final merge disjoint.
	excluded := make([]bool, n)
	var overriddenKey [NumPitchClasses]bool
	for pc := PitchClassC; pc <= PitchClassB; pc++ {
		if index, ok := m.Override.IndexInScale(pc); ok {
			overriddenKey[pc] = true
			if index < n {
				excluded[index] = true
			}
		}
	}

	totals := make([]float64, n)
	for i, interval := range scale.Intervals {
		totals[i] = base + interval.Add(transposition).Normalize().Cents()
	}

	// Quantize each degree to a semitone, scanning upward when quarter tones
	// map low and downward when they map high, with one extra wraparound step
	// so the boundary between the last and the first degree is checked too.
	// A degree landing on the previously assigned key is retried once with
	// the opposite rounding direction.
	halfDown := m.MapQuarterTonesLow
	semitones := make([]int, n)
	assigned := make([]bool, n)
	prevSemitone, prevIndex := 0, -1
	for step := 0; step <= n; step++ {
		var i int
		if halfDown {
			i = step % n
		} else {
			i = ((n-1-step)%n + n) % n
		}
		if excluded[i] {
			continue
		}
		semitone := roundWithTolerance(totals[i]/CentsPerSemitone, halfDown, quarterToneTolerance/CentsPerSemitone)
		if prevIndex >= 0 && prevIndex != i && pitchClassMod(semitone) == pitchClassMod(prevSemitone) {
			semitone = roundWithTolerance(totals[i]/CentsPerSemitone, !halfDown, quarterToneTolerance/CentsPerSemitone)
		}
		semitones[i] = semitone
		assigned[i] = true
		prevSemitone, prevIndex = semitone, i
	}

	// Keys receiving two or more candidates that disagree beyond tolerance
	// make the whole mapping fail.
	var candidates [NumPitchClasses][]TuningPitch
	for i := 0; i < n; i++ {
		if !assigned[i] {
			continue
		}
		pc := pitchClassMod(semitones[i])
		if overriddenKey[pc] {
			continue
		}
		deviation := totals[i] - CentsPerSemitone*float64(semitones[i])
		candidates[pc] = append(candidates[pc], TuningPitch{PitchClass: pc, Deviation: deviation})
	}
	conflicts := make(map[PitchClass][]TuningPitch)
	for pc, pitches := range candidates {
		if len(pitches) < 2 {
			continue
		}
		minDev, maxDev := pitches[0].Deviation, pitches[0].Deviation
		for _, p := range pitches[1:] {
			minDev = math.Min(minDev, p.Deviation)
			maxDev = math.Max(maxDev, p.Deviation)
		}
		if maxDev-minDev > tolerance {
			conflicts[PitchClass(pc)] = pitches
		}
	}
	if len(conflicts) > 0 {
		return PartialTuning{}, &TuningConflictError{ScaleName: scale.Name, Conflicts: conflicts}
	}

	// Cosmetic pass: re-round quarter tones sitting inside a soft-chromatic
	// augmented second. Overrides are computed against a snapshot so one flip
	// cannot cascade into the next.
	if m.SoftChromaticGenus != SoftChromaticGenusOff && n >= 3 {
		minStep := m.SoftChromaticGenus.minAugmentedSecond()
		flipped := make(map[int]int)
		for i := 1; i < n-1; i++ {
			if !assigned[i] || !assigned[i-1] || !assigned[i+1] {
				continue
			}
			prev := pitchSample{semitone: semitones[i-1], cents: totals[i-1]}
			cur := pitchSample{semitone: semitones[i], cents: totals[i]}
			next := pitchSample{semitone: semitones[i+1], cents: totals[i+1]}
			if semitone, ok := softChromaticGenusOverride(prev, cur, next, quarterToneTolerance, minStep); ok {
				flipped[i] = semitone
			}
		}
		for i, semitone := range flipped {
			semitones[i] = semitone
		}
	}

	var deviations [NumPitchClasses]OptionalCents
	for i := 0; i < n; i++ {
		if !assigned[i] {
			continue
		}
		pc := pitchClassMod(semitones[i])
		if overriddenKey[pc] {
			continue
		}
		if deviations[pc].Empty() {
			deviations[pc] = CentsOf(totals[i] - CentsPerSemitone*float64(semitones[i]))
		}
	}

	name := scale.Name
	if index, ok := scale.unisonDegree(tolerance); ok && assigned[index] {
		pcName := pitchClassMod(semitones[index]).String()
		if name != "" {
			name = pcName + " " + name
		} else {
			name = pcName
		}
	}
	ret := PartialTuning{Name: name, Deviations: deviations}

	if !m.Override.IsEmpty() {
		manual := ManualTuningMapper{Mapping: m.Override}
		overridePitches, err := manual.MapScale(scale, reference, transposition)
		if err != nil {
			return PartialTuning{}, err
		}
		merged, ok := ret.Merge(overridePitches, tolerance)
		if !ok {
			// The overridden degrees were excluded from automatic assignment,
			// so the index sets are disjoint and the merge cannot fail.
			panic("merging override pitches failed despite disjoint assignment")
		}
		merged.Name = ret.Name
		ret = merged
	}
	return ret, nil
}

// roundWithTolerance rounds value to the nearest integer, except that values
// within tolerance of a half-integer round down when halfDown is set and up
// otherwise.
func roundWithTolerance(value float64, halfDown bool, tolerance float64) int {
	floor := math.Floor(value)
	if math.Abs(value-floor-0.5) <= tolerance {
		if halfDown {
			return int(floor)
		}
		return int(floor) + 1
	}
	return int(math.Round(value))
}
