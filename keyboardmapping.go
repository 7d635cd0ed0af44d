package microtonalist

import "fmt"

// KeyboardMapping is an explicit, user-supplied map from keyboard pitch class
// to scale degree index. Unmapped keys are left to other mappers. The mapping
// is validated at construction; the zero value is the empty mapping.
type KeyboardMapping struct {
	indexes [NumPitchClasses]OptionalInteger
}

// NewKeyboardMapping creates a keyboard mapping from one optional scale
// degree index per pitch class. Present indexes must be non-negative.
func NewKeyboardMapping(indexesInScale [NumPitchClasses]OptionalInteger) (KeyboardMapping, error) {
	for pc, index := range indexesInScale {
		if v, ok := index.Unpack(); ok && v < 0 {
			return KeyboardMapping{}, fmt.Errorf(
				"keyboard mapping has negative scale degree index %d for pitch class %s", v, PitchClass(pc))
		}
	}
	return KeyboardMapping{indexes: indexesInScale}, nil
}

// KeyboardMappingOf is a convenience constructor building the mapping from a
// pitch class to scale degree index map.
func KeyboardMappingOf(indexesInScale map[PitchClass]int) (KeyboardMapping, error) {
	var indexes [NumPitchClasses]OptionalInteger
	for pc, index := range indexesInScale {
		if !pc.Valid() {
			return KeyboardMapping{}, fmt.Errorf("keyboard mapping has invalid pitch class %d", int(pc))
		}
		indexes[pc] = NewOptionalInteger(index)
	}
	return NewKeyboardMapping(indexes)
}

// IndexInScale returns the scale degree index mapped to the given key and
// whether the key is mapped at all.
func (k KeyboardMapping) IndexInScale(pc PitchClass) (int, bool) {
	return k.indexes[pc].Unpack()
}

// IsEmpty reports whether no key is mapped.
func (k KeyboardMapping) IsEmpty() bool {
	for _, index := range k.indexes {
		if !index.Empty() {
			return false
		}
	}
	return true
}
