package microtonalist

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// CentsPerOctave is the logarithmic size of an octave: 1200 cents.
	CentsPerOctave = 1200.0
	// CentsPerSemitone is the logarithmic size of one 12-EDO key: 100 cents.
	CentsPerSemitone = 100.0
)

// Interval is a logarithmic pitch distance. It remembers a rational form when
// built from a frequency ratio, so that "5/4" survives printing and octave
// normalization; arithmetic that cannot preserve the ratio falls back to
// plain cents.
type Interval struct {
	cents float64
	num   int // rational form when den != 0
	den   int
}

// IntervalFromCents returns the interval of the given size in cents.
func IntervalFromCents(cents float64) Interval {
	return Interval{cents: cents}
}

// IntervalFromRatio returns the interval of the given frequency ratio. Both
// numerator and denominator must be positive.
func IntervalFromRatio(num, den int) (Interval, error) {
	if num <= 0 || den <= 0 {
		return Interval{}, fmt.Errorf("interval ratio %d/%d is not positive", num, den)
	}
	num, den = reduceRatio(num, den)
	return Interval{cents: RatioToCents(float64(num) / float64(den)), num: num, den: den}, nil
}

// RatioToCents converts a frequency ratio to cents.
func RatioToCents(ratio float64) float64 {
	return CentsPerOctave * math.Log2(ratio)
}

// Cents returns the size of the interval in cents.
func (i Interval) Cents() float64 {
	return i.cents
}

// Add returns the interval stacked on top of another, i.e. the sum in log
// space. When both intervals are rational the result stays rational.
func (i Interval) Add(other Interval) Interval {
	if i.den != 0 && other.den != 0 {
		if ret, err := IntervalFromRatio(i.num*other.num, i.den*other.den); err == nil {
			return ret
		}
	}
	return Interval{cents: i.cents + other.cents}
}

// Subtract returns the difference of the two intervals in log space.
func (i Interval) Subtract(other Interval) Interval {
	if i.den != 0 && other.den != 0 {
		if ret, err := IntervalFromRatio(i.num*other.den, i.den*other.num); err == nil {
			return ret
		}
	}
	return Interval{cents: i.cents - other.cents}
}

// Normalize returns the interval moved by whole octaves into [0, 1200) cents.
func (i Interval) Normalize() Interval {
	if i.den != 0 {
		num, den := i.num, i.den
		for num < den {
			num *= 2
		}
		for num >= 2*den {
			den *= 2
		}
		num, den = reduceRatio(num, den)
		return Interval{cents: RatioToCents(float64(num) / float64(den)), num: num, den: den}
	}
	cents := math.Mod(i.cents, CentsPerOctave)
	if cents < 0 {
		cents += CentsPerOctave
	}
	return Interval{cents: cents}
}

// IsUnison reports whether the interval is a whole number of octaves, within
// tolerance cents.
func (i Interval) IsUnison(tolerance float64) bool {
	cents := i.Normalize().cents
	return cents <= tolerance || cents >= CentsPerOctave-tolerance
}

// String returns the ratio form when the interval has one, e.g. "5/4", and
// the cents value otherwise, e.g. "150.5".
func (i Interval) String() string {
	if i.den != 0 {
		return fmt.Sprintf("%d/%d", i.num, i.den)
	}
	return strconv.FormatFloat(i.cents, 'f', -1, 64)
}

// normalizeCents wraps a cents value into [0, 1200).
func normalizeCents(cents float64) float64 {
	ret := math.Mod(cents, CentsPerOctave)
	if ret < 0 {
		ret += CentsPerOctave
	}
	return ret
}

func reduceRatio(num, den int) (int, int) {
	a, b := num, den
	for b != 0 {
		a, b = b, a%b
	}
	return num / a, den / a
}
