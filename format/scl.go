package format

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/calinburloiu/microtonalist"
)

// ReadScalaScale parses a scale in the Huygens-Fokker Scala .scl format:
// "!" comment lines, then a description line, a degree count line, and one
// interval per line. Values containing a "." are cents, values containing a
// "/" are ratios and a plain integer n is the ratio n/1; anything after the
// first whitespace on a degree line is ignored. The implicit 1/1 unison,
// which .scl files leave out, is prepended.
func ReadScalaScale(r io.Reader) (microtonalist.Scale, error) {
	scanner := bufio.NewScanner(r)
	var header []string
	var degrees []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "!") {
			continue
		}
		if len(header) < 2 {
			header = append(header, line)
			continue
		}
		if line == "" {
			continue
		}
		degrees = append(degrees, strings.Fields(line)[0])
	}
	if err := scanner.Err(); err != nil {
		return microtonalist.Scale{}, err
	}
	if len(header) < 2 {
		return microtonalist.Scale{}, fmt.Errorf("scala scale is missing the description or degree count line")
	}
	count, err := strconv.Atoi(strings.TrimSpace(header[1]))
	if err != nil || count < 0 {
		return microtonalist.Scale{}, fmt.Errorf("invalid scala degree count %q", header[1])
	}
	if len(degrees) != count {
		return microtonalist.Scale{}, fmt.Errorf("scala scale declares %d degrees but lists %d", count, len(degrees))
	}
	unison, _ := microtonalist.IntervalFromRatio(1, 1)
	intervals := []microtonalist.Interval{unison}
	for i, degree := range degrees {
		interval, err := parseScalaInterval(degree)
		if err != nil {
			return microtonalist.Scale{}, fmt.Errorf("degree %d: %w", i+1, err)
		}
		intervals = append(intervals, interval)
	}
	return microtonalist.Scale{Name: header[0], Intervals: intervals}, nil
}

// ReadScalaScaleFile reads a .scl file from disk.
func ReadScalaScaleFile(path string) (microtonalist.Scale, error) {
	f, err := os.Open(path)
	if err != nil {
		return microtonalist.Scale{}, err
	}
	defer f.Close()
	scale, err := ReadScalaScale(f)
	if err != nil {
		return microtonalist.Scale{}, fmt.Errorf("%s: %w", path, err)
	}
	return scale, nil
}

func parseScalaInterval(s string) (microtonalist.Interval, error) {
	// In .scl, the decimal point decides: "150.0" is cents, "150" is the
	// ratio 150/1.
	if strings.Contains(s, ".") {
		cents, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return microtonalist.Interval{}, fmt.Errorf("invalid scala cents value %q", s)
		}
		return microtonalist.IntervalFromCents(cents), nil
	}
	if !strings.Contains(s, "/") {
		s += "/1"
	}
	return ParseInterval(s)
}
