package microtonalist

import (
	"fmt"
	"strings"
)

// PitchClass is one of the 12 keys of an octave, C=0 up to B=11, independent
// of any deviation applied to the key.
type PitchClass int

const (
	PitchClassC PitchClass = iota
	PitchClassCSharp
	PitchClassD
	PitchClassEFlat
	PitchClassE
	PitchClassF
	PitchClassFSharp
	PitchClassG
	PitchClassGSharp
	PitchClassA
	PitchClassBFlat
	PitchClassB

	// NumPitchClasses is the number of keys per octave.
	NumPitchClasses = 12
)

var sharpNames = [NumPitchClasses]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [NumPitchClasses]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// Valid reports whether the pitch class is in the range C..B.
func (pc PitchClass) Valid() bool {
	return pc >= PitchClassC && pc <= PitchClassB
}

// SharpName returns the sharp spelling of the pitch class, e.g. "D#".
func (pc PitchClass) SharpName() string {
	return sharpNames[pc]
}

// FlatName returns the flat spelling of the pitch class, e.g. "Eb".
func (pc PitchClass) FlatName() string {
	return flatNames[pc]
}

// String returns the name of the pitch class, with both enharmonic spellings
// for black keys, e.g. "D#/Eb".
func (pc PitchClass) String() string {
	if !pc.Valid() {
		return fmt.Sprintf("PitchClass(%d)", int(pc))
	}
	if sharpNames[pc] == flatNames[pc] {
		return sharpNames[pc]
	}
	return sharpNames[pc] + "/" + flatNames[pc]
}

// ParsePitchClass reads a pitch class from its name. Both enharmonic
// spellings are accepted, as are ASCII "#"/"b" accidentals; matching is
// case-insensitive in the letter.
func ParsePitchClass(s string) (PitchClass, error) {
	t := strings.TrimSpace(s)
	if len(t) > 0 {
		t = strings.ToUpper(t[:1]) + t[1:]
	}
	for i := 0; i < NumPitchClasses; i++ {
		if t == sharpNames[i] || t == flatNames[i] {
			return PitchClass(i), nil
		}
	}
	return 0, fmt.Errorf("unknown pitch class %q", s)
}

// pitchClassMod wraps a semitone number (which may be negative or beyond one
// octave) to its pitch class.
func pitchClassMod(semitone int) PitchClass {
	return PitchClass(((semitone % NumPitchClasses) + NumPitchClasses) % NumPitchClasses)
}
