package microtonalist

import (
	"errors"
	"math"
	"testing"
)

func TestRoundWithTolerance(t *testing.T) {
	tests := []struct {
		value     float64
		halfDown  bool
		tolerance float64
		expected  int
	}{
		{2.5, true, 0.1, 2},
		{2.5, false, 0.1, 3},
		{2.3, true, 0.1, 2},
		{2.3, false, 0.1, 2},
		{2.7, true, 0.1, 3},
		{2.7, false, 0.1, 3},
		{2.45, true, 0.1, 2},
		{2.45, false, 0.1, 3},
		{-0.5, true, 0.1, -1},
		{-0.5, false, 0.1, 0},
		{4.0, true, 0.1, 4},
	}
	for _, test := range tests {
		got := roundWithTolerance(test.value, test.halfDown, test.tolerance)
		if got != test.expected {
			t.Errorf("roundWithTolerance(%v, %v, %v) = %v, expected %v",
				test.value, test.halfDown, test.tolerance, got, test.expected)
		}
	}
}

func centsScale(name string, cents ...float64) Scale {
	intervals := make([]Interval, len(cents))
	for i, c := range cents {
		intervals[i] = IntervalFromCents(c)
	}
	return Scale{Name: name, Intervals: intervals}
}

func TestAutoMapperQuarterTonesLow(t *testing.T) {
	scale := centsScale("test", 0, 150, 300, 500)
	reference := StandardTuningReference{BasePitchClass: PitchClassD}
	mapper := AutoTuningMapper{MapQuarterTonesLow: true}
	tuning, err := mapper.MapScale(scale, reference, Interval{})
	if err != nil {
		t.Fatalf("MapScale failed: %v", err)
	}
	expected := NewPartialTuning("",
		TuningPitch{PitchClassD, 0},
		TuningPitch{PitchClassEFlat, 50},
		TuningPitch{PitchClassF, 0},
		TuningPitch{PitchClassG, 0},
	)
	if tuning.Deviations != expected.Deviations {
		t.Fatalf("tuning is %v, expected %v", tuning.Deviations, expected.Deviations)
	}
	if tuning.Name != "D test" {
		t.Fatalf("tuning name is %q, expected %q", tuning.Name, "D test")
	}
}

func TestAutoMapperQuarterTonesHigh(t *testing.T) {
	scale := centsScale("test", 0, 150, 300, 500)
	reference := StandardTuningReference{BasePitchClass: PitchClassD}
	mapper := AutoTuningMapper{MapQuarterTonesLow: false}
	tuning, err := mapper.MapScale(scale, reference, Interval{})
	if err != nil {
		t.Fatalf("MapScale failed: %v", err)
	}
	expected := NewPartialTuning("",
		TuningPitch{PitchClassD, 0},
		TuningPitch{PitchClassE, -50},
		TuningPitch{PitchClassF, 0},
		TuningPitch{PitchClassG, 0},
	)
	if tuning.Deviations != expected.Deviations {
		t.Fatalf("tuning is %v, expected %v", tuning.Deviations, expected.Deviations)
	}
}

func ratioScale(name string, ratios ...[2]int) Scale {
	intervals := make([]Interval, len(ratios))
	for i, r := range ratios {
		interval, err := IntervalFromRatio(r[0], r[1])
		if err != nil {
			panic(err)
		}
		intervals[i] = interval
	}
	return Scale{Name: name, Intervals: intervals}
}

func TestAutoMapperSyntonicCommaConflict(t *testing.T) {
	// 5/4 and 81/64 are a syntonic comma apart; both land on E.
	scale := ratioScale("commas", [2]int{1, 1}, [2]int{5, 4}, [2]int{81, 64})
	reference := StandardTuningReference{BasePitchClass: PitchClassC}
	_, err := AutoTuningMapper{}.MapScale(scale, reference, Interval{})
	var conflictErr *TuningConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected a TuningConflictError, got %v", err)
	}
	if conflictErr.ScaleName != "commas" {
		t.Fatalf("conflict names scale %q, expected %q", conflictErr.ScaleName, "commas")
	}
	pitches, ok := conflictErr.Conflicts[PitchClassE]
	if !ok || len(pitches) != 2 {
		t.Fatalf("conflict map is %v, expected two candidates on E", conflictErr.Conflicts)
	}
}

// Overridden degrees are removed before the collision scan and before
// conflict detection: pinning one of two otherwise conflicting degrees to its
// key makes the mapping succeed, with the overridden key carrying the exact
// manual deviation.
func TestAutoMapperOverrideExcludedBeforeConflictDetection(t *testing.T) {
	scale := ratioScale("commas", [2]int{1, 1}, [2]int{5, 4}, [2]int{81, 64})
	reference := StandardTuningReference{BasePitchClass: PitchClassC}
	override, err := KeyboardMappingOf(map[PitchClass]int{PitchClassE: 1})
	if err != nil {
		t.Fatalf("KeyboardMappingOf failed: %v", err)
	}
	tuning, err := AutoTuningMapper{Override: override}.MapScale(scale, reference, Interval{})
	if err != nil {
		t.Fatalf("MapScale failed despite the override: %v", err)
	}
	dev, ok := tuning.Get(PitchClassE)
	if !ok || math.Abs(dev-(-13.686)) > 0.01 {
		t.Fatalf("E deviation is %v, %v; expected the manual 5/4 deviation of about -13.686", dev, ok)
	}
	if dev, ok := tuning.Get(PitchClassC); !ok || dev != 0 {
		t.Fatalf("C deviation is %v, %v; expected 0", dev, ok)
	}
	if tuning.NumMapped() != 2 {
		t.Fatalf("tuning maps %d keys, expected 2 (the dropped 81/64 candidate must not appear)", tuning.NumMapped())
	}
}

func TestSoftChromaticGenusOverride(t *testing.T) {
	tests := []struct {
		name             string
		prev, cur, next  pitchSample
		minStep          float64
		expectedSemitone int
		expectedOk       bool
	}{
		{
			name: "flips down on matching neighborhood",
			prev: pitchSample{0, 0}, cur: pitchSample{2, 150}, next: pitchSample{4, 400},
			minStep: 250, expectedSemitone: 1, expectedOk: true,
		},
		{
			name: "flips up when rounded low",
			prev: pitchSample{0, 0}, cur: pitchSample{1, 150}, next: pitchSample{4, 400},
			minStep: 250, expectedOk: false, // left step spans 1 key only
		},
		{
			name: "large step below threshold",
			prev: pitchSample{0, 0}, cur: pitchSample{2, 150}, next: pitchSample{4, 360},
			minStep: 250, expectedOk: false,
		},
		{
			name: "large step above permissive threshold",
			prev: pitchSample{0, 0}, cur: pitchSample{2, 150}, next: pitchSample{4, 360},
			minStep: 200, expectedSemitone: 1, expectedOk: true,
		},
		{
			name: "mirrored pattern",
			prev: pitchSample{0, 0}, cur: pitchSample{2, 250}, next: pitchSample{4, 400},
			minStep: 250, expectedSemitone: 3, expectedOk: true,
		},
		{
			name: "middle pitch not a quarter tone",
			prev: pitchSample{0, 0}, cur: pitchSample{2, 190}, next: pitchSample{4, 400},
			minStep: 250, expectedOk: false,
		},
	}
	for _, test := range tests {
		semitone, ok := softChromaticGenusOverride(test.prev, test.cur, test.next, 2, test.minStep)
		if ok != test.expectedOk {
			t.Errorf("%s: ok = %v, expected %v", test.name, ok, test.expectedOk)
			continue
		}
		if ok && semitone != test.expectedSemitone {
			t.Errorf("%s: semitone = %v, expected %v", test.name, semitone, test.expectedSemitone)
		}
	}
}

func TestAutoMapperSoftChromaticGenus(t *testing.T) {
	scale := centsScale("genus", 0, 150, 400)
	reference := StandardTuningReference{BasePitchClass: PitchClassC}

	plain, err := AutoTuningMapper{}.MapScale(scale, reference, Interval{})
	if err != nil {
		t.Fatalf("MapScale failed: %v", err)
	}
	if dev, ok := plain.Get(PitchClassD); !ok || dev != -50 {
		t.Fatalf("without genus mapping, D should carry -50, got %v, %v", dev, ok)
	}

	strict, err := AutoTuningMapper{SoftChromaticGenus: SoftChromaticGenusStrict}.MapScale(scale, reference, Interval{})
	if err != nil {
		t.Fatalf("MapScale failed: %v", err)
	}
	if dev, ok := strict.Get(PitchClassCSharp); !ok || dev != 50 {
		t.Fatalf("with strict genus mapping, C# should carry +50, got %v, %v", dev, ok)
	}
	if _, ok := strict.Get(PitchClassD); ok {
		t.Fatal("with strict genus mapping, D should be empty")
	}
}

func TestAutoMapperSingleDegreeQuarterToneStable(t *testing.T) {
	// The wraparound step must not treat a single degree as colliding with
	// itself and flip its rounding.
	scale := centsScale("one", 150)
	reference := StandardTuningReference{BasePitchClass: PitchClassC}
	tuning, err := AutoTuningMapper{MapQuarterTonesLow: true}.MapScale(scale, reference, Interval{})
	if err != nil {
		t.Fatalf("MapScale failed: %v", err)
	}
	if dev, ok := tuning.Get(PitchClassCSharp); !ok || dev != 50 {
		t.Fatalf("C# deviation is %v, %v; expected +50", dev, ok)
	}
}
