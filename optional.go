package microtonalist

type (
	// OptionalCents is a cents deviation that may be absent, used for the
	// slots of a PartialTuning. The zero value is the empty one.
	OptionalCents struct {
		value  float64
		exists bool
	}

	// OptionalInteger is a scale degree index that may be absent, used for
	// the slots of a KeyboardMapping. The zero value is the empty one.
	OptionalInteger struct {
		value  int
		exists bool
	}
)

// CentsOf returns a present OptionalCents holding value.
func CentsOf(value float64) OptionalCents {
	return OptionalCents{value: value, exists: true}
}

// EmptyCents returns the absent OptionalCents.
func EmptyCents() OptionalCents {
	return OptionalCents{}
}

func (c OptionalCents) Unpack() (float64, bool) {
	return c.value, c.exists
}

func (c OptionalCents) Value() float64 {
	if !c.exists {
		panic("access value of empty OptionalCents")
	}
	return c.value
}

func (c OptionalCents) Empty() bool {
	return !c.exists
}

// NewOptionalInteger returns a present OptionalInteger holding value.
func NewOptionalInteger(value int) OptionalInteger {
	return OptionalInteger{value: value, exists: true}
}

// NewEmptyOptionalInteger returns the absent OptionalInteger.
func NewEmptyOptionalInteger() OptionalInteger {
	return OptionalInteger{}
}

func (i OptionalInteger) Unpack() (int, bool) {
	return i.value, i.exists
}

func (i OptionalInteger) Value() int {
	if !i.exists {
		panic("access value of empty OptionalInteger")
	}
	return i.value
}

func (i OptionalInteger) Empty() bool {
	return !i.exists
}
