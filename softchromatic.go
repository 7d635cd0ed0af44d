package microtonalist

import "math"

// SoftChromaticGenusMapping controls the cosmetic re-rounding of quarter
// tones sitting inside a soft-chromatic augmented-second neighborhood, for
// keyboard-layout ergonomics. It never participates in collision detection.
type SoftChromaticGenusMapping int

const (
	SoftChromaticGenusOff SoftChromaticGenusMapping = iota
	SoftChromaticGenusStrict
	SoftChromaticGenusPermissive
)

// softChromaticStepTolerance is how far, in cents, the small step of the
// pattern may stray from 150 cents.
const softChromaticStepTolerance = 50.0

func (m SoftChromaticGenusMapping) String() string {
	switch m {
	case SoftChromaticGenusOff:
		return "off"
	case SoftChromaticGenusStrict:
		return "strict"
	case SoftChromaticGenusPermissive:
		return "permissive"
	}
	return "unknown"
}

// minAugmentedSecond is the strictness-dependent lower bound, in cents, on
// the large step of the pattern.
func (m SoftChromaticGenusMapping) minAugmentedSecond() float64 {
	switch m {
	case SoftChromaticGenusStrict:
		return 250
	case SoftChromaticGenusPermissive:
		return 200
	}
	return math.Inf(1)
}

// pitchSample is one scale degree quantized to the keyboard: the semitone it
// was rounded to (not wrapped to an octave) and its exact cents value.
type pitchSample struct {
	semitone int
	cents    float64
}

// softChromaticGenusOverride inspects three adjacent scale degrees. When the
// middle one is a quarter tone whose neighborhood forms a soft-chromatic
// augmented second, a step close to 150 cents beside a step of at least
// minStep cents with both steps spanning exactly 2 keys, it returns the
// semitone the middle degree should be re-rounded to, flipping its original
// rounding direction.
func softChromaticGenusOverride(prev, cur, next pitchSample, quarterToneTolerance, minStep float64) (int, bool) {
	deviation := cur.cents - CentsPerSemitone*float64(cur.semitone)
	if math.Abs(math.Abs(deviation)-50) > quarterToneTolerance {
		return 0, false
	}
	if cur.semitone-prev.semitone != 2 || next.semitone-cur.semitone != 2 {
		return 0, false
	}
	left := cur.cents - prev.cents
	right := next.cents - cur.cents
	smallBeside := func(small, large float64) bool {
		return math.Abs(small-150) <= softChromaticStepTolerance && large >= minStep
	}
	if !smallBeside(left, right) && !smallBeside(right, left) {
		return 0, false
	}
	if deviation > 0 {
		return cur.semitone + 1, true
	}
	return cur.semitone - 1, true
}
