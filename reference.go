package microtonalist

import "math"

// StandardConcertPitchFrequency is the frequency of A4 in standard concert
// pitch, in Hz.
const StandardConcertPitchFrequency = 440.0

// TuningReference maps a composition's conceptual base pitch to a concrete
// keyboard pitch: the key the base pitch is played on and how far from that
// key's 12-EDO value it sounds.
type TuningReference interface {
	BaseTuningPitch() TuningPitch
}

// StandardTuningReference anchors the base pitch exactly on a key: the
// deviation is always zero.
type StandardTuningReference struct {
	BasePitchClass PitchClass
}

func (r StandardTuningReference) BaseTuningPitch() TuningPitch {
	return TuningPitch{PitchClass: r.BasePitchClass}
}

// ConcertPitchTuningReference derives the base deviation from a target MIDI
// note and a concert pitch frequency: the base pitch sounds
// ConcertPitchToBaseInterval away from concert pitch, played on BaseMidiNote's
// key. A zero ConcertPitchFrequency means standard 440 Hz.
type ConcertPitchTuningReference struct {
	ConcertPitchToBaseInterval Interval
	BaseMidiNote               int
	ConcertPitchFrequency      float64
}

func (r ConcertPitchTuningReference) BaseTuningPitch() TuningPitch {
	freq := r.ConcertPitchFrequency
	if freq == 0 {
		freq = StandardConcertPitchFrequency
	}
	deviation := r.ConcertPitchToBaseInterval.Cents() -
		RatioToCents(MidiNoteFrequency(r.BaseMidiNote)/freq)
	return TuningPitch{PitchClass: pitchClassMod(r.BaseMidiNote), Deviation: deviation}
}

// MidiNoteFrequency returns the 12-EDO frequency of a MIDI note number in Hz,
// with A4 = note 69 = 440 Hz.
func MidiNoteFrequency(note int) float64 {
	return StandardConcertPitchFrequency * math.Pow(2, float64(note-69)/12)
}
