package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calinburloiu/microtonalist"
)

// ParseInterval reads an interval from its textual form: a frequency ratio
// like "5/4" or a cents value like "150.5". An empty string is the zero
// interval.
func ParseInterval(s string) (microtonalist.Interval, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return microtonalist.Interval{}, nil
	}
	if num, den, found := strings.Cut(t, "/"); found {
		n, errN := strconv.Atoi(strings.TrimSpace(num))
		d, errD := strconv.Atoi(strings.TrimSpace(den))
		if errN != nil || errD != nil {
			return microtonalist.Interval{}, fmt.Errorf("invalid interval ratio %q", s)
		}
		return microtonalist.IntervalFromRatio(n, d)
	}
	cents, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return microtonalist.Interval{}, fmt.Errorf("invalid interval %q", s)
	}
	return microtonalist.IntervalFromCents(cents), nil
}

func parseIntervals(strs []string) ([]microtonalist.Interval, error) {
	intervals := make([]microtonalist.Interval, len(strs))
	for i, s := range strs {
		interval, err := ParseInterval(s)
		if err != nil {
			return nil, fmt.Errorf("degree %d: %w", i+1, err)
		}
		intervals[i] = interval
	}
	return intervals, nil
}
