package microtonalist

import "math"

type (
	// PartialTuning holds one optional cents deviation per key of the octave.
	// It is a pure value type: every transform returns a new instance and
	// leaves the receiver untouched.
	PartialTuning struct {
		Name       string
		Deviations [NumPitchClasses]OptionalCents
	}

	// OctaveTuning is a fully resolved tuning, one cents deviation per key of
	// the octave. It is the hardware-ready output of the package, produced by
	// PartialTuning.Resolve or by a TuningReducer.
	OctaveTuning struct {
		Name       string                   `yaml:"name" json:"name"`
		Deviations [NumPitchClasses]float64 `yaml:"deviations,flow" json:"deviations"`
	}

	// TuningList is the ordered sequence of tunings a composition needs, in
	// playing order.
	TuningList []OctaveTuning
)

// NewPartialTuning creates a partial tuning with the given pitches mapped and
// every other key left empty. A later pitch on the same key wins.
func NewPartialTuning(name string, pitches ...TuningPitch) PartialTuning {
	ret := PartialTuning{Name: name}
	for _, p := range pitches {
		ret.Deviations[p.PitchClass] = CentsOf(p.Deviation)
	}
	return ret
}

// Edo12Tuning returns the complete partial tuning of plain 12-EDO: every key
// mapped, every deviation zero. It is the default global fill.
func Edo12Tuning() PartialTuning {
	ret := PartialTuning{Name: "12-EDO"}
	for i := range ret.Deviations {
		ret.Deviations[i] = CentsOf(0)
	}
	return ret
}

// Get returns the deviation of the given key and whether it is mapped.
func (t PartialTuning) Get(pc PitchClass) (float64, bool) {
	return t.Deviations[pc].Unpack()
}

// IsComplete reports whether every key of the octave is mapped.
func (t PartialTuning) IsComplete() bool {
	for _, d := range t.Deviations {
		if d.Empty() {
			return false
		}
	}
	return true
}

// NumMapped returns the number of keys that are mapped.
func (t PartialTuning) NumMapped() int {
	ret := 0
	for _, d := range t.Deviations {
		if !d.Empty() {
			ret++
		}
	}
	return ret
}

// Merge combines two partial tunings into one that carries the keys of both.
// Keys mapped on both sides must agree within tolerance cents; if any key
// disagrees beyond it the whole merge fails and ok is false, even if every
// other key is compatible. Names concatenate with " + " when both are
// non-empty.
func (t PartialTuning) Merge(other PartialTuning, tolerance float64) (ret PartialTuning, ok bool) {
	ret = PartialTuning{Name: concatNames(t.Name, other.Name)}
	for i := range t.Deviations {
		a, aok := t.Deviations[i].Unpack()
		b, bok := other.Deviations[i].Unpack()
		switch {
		case aok && bok:
			if math.Abs(a-b) > tolerance {
				return PartialTuning{}, false
			}
			ret.Deviations[i] = t.Deviations[i]
		case aok:
			ret.Deviations[i] = t.Deviations[i]
		case bok:
			ret.Deviations[i] = other.Deviations[i]
		}
	}
	return ret, true
}

// Fill maps every empty key of the receiver from other; keys already mapped
// keep their value. The name is unchanged. Fill always succeeds.
func (t PartialTuning) Fill(other PartialTuning) PartialTuning {
	ret := t
	for i := range ret.Deviations {
		if ret.Deviations[i].Empty() {
			ret.Deviations[i] = other.Deviations[i]
		}
	}
	return ret
}

// Overwrite replaces every key mapped in other with other's value; keys empty
// in other keep the receiver's value. The name is unchanged.
func (t PartialTuning) Overwrite(other PartialTuning) PartialTuning {
	ret := t
	for i := range ret.Deviations {
		if !other.Deviations[i].Empty() {
			ret.Deviations[i] = other.Deviations[i]
		}
	}
	return ret
}

// Resolve produces the complete octave tuning, defaulting every unmapped key
// to 0.0 cents, i.e. its standard 12-EDO pitch.
func (t PartialTuning) Resolve() OctaveTuning {
	ret := OctaveTuning{Name: t.Name}
	for i, d := range t.Deviations {
		if v, ok := d.Unpack(); ok {
			ret.Deviations[i] = v
		}
	}
	return ret
}

func concatNames(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " + " + b
}
