package microtonalist

import (
	"fmt"
	"math"
)

// TuningPitch is one concrete keyboard pitch: a pitch class and its deviation
// in cents from the key's 12-EDO value.
type TuningPitch struct {
	PitchClass PitchClass
	Deviation  float64
}

// Cents returns the absolute position of the pitch within the octave,
// 100·pitchClass + deviation.
func (p TuningPitch) Cents() float64 {
	return CentsPerSemitone*float64(p.PitchClass) + p.Deviation
}

// IsOverflowing reports whether the deviation reaches into a neighboring key,
// i.e. its magnitude is 100 cents or more.
func (p TuningPitch) IsOverflowing() bool {
	return math.Abs(p.Deviation) >= CentsPerSemitone
}

// IsQuarterTone reports whether the pitch sits about halfway between two
// keys, i.e. the deviation magnitude is within tolerance cents of 50.
func (p TuningPitch) IsQuarterTone(tolerance float64) bool {
	return math.Abs(math.Abs(p.Deviation)-50) <= tolerance
}

func (p TuningPitch) String() string {
	return fmt.Sprintf("%s%+.2f", p.PitchClass, p.Deviation)
}
