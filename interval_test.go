package microtonalist_test

import (
	"math"
	"testing"

	"github.com/calinburloiu/microtonalist"
)

func TestIntervalFromRatio(t *testing.T) {
	fifth := mustRatio(t, 3, 2)
	if math.Abs(fifth.Cents()-701.955) > 0.001 {
		t.Fatalf("3/2 is %v cents, expected about 701.955", fifth.Cents())
	}
	if fifth.String() != "3/2" {
		t.Fatalf("3/2 prints as %q", fifth.String())
	}
	if reduced := mustRatio(t, 6, 4); reduced.String() != "3/2" {
		t.Fatalf("6/4 should reduce to 3/2, got %q", reduced.String())
	}
	if _, err := microtonalist.IntervalFromRatio(-3, 2); err == nil {
		t.Fatal("negative ratio should be rejected")
	}
}

func TestIntervalAddKeepsRatios(t *testing.T) {
	sum := mustRatio(t, 9, 8).Add(mustRatio(t, 10, 9))
	if sum.String() != "5/4" {
		t.Fatalf("9/8 + 10/9 = %q, expected 5/4", sum.String())
	}
	diff := mustRatio(t, 5, 4).Subtract(mustRatio(t, 9, 8))
	if diff.String() != "10/9" {
		t.Fatalf("5/4 - 9/8 = %q, expected 10/9", diff.String())
	}
	mixed := mustRatio(t, 5, 4).Add(microtonalist.IntervalFromCents(10))
	if math.Abs(mixed.Cents()-396.314) > 0.001 {
		t.Fatalf("5/4 + 10c = %v cents, expected about 396.314", mixed.Cents())
	}
}

func TestIntervalNormalize(t *testing.T) {
	if got := mustRatio(t, 3, 1).Normalize(); got.String() != "3/2" {
		t.Fatalf("3/1 normalizes to %q, expected 3/2", got.String())
	}
	if got := mustRatio(t, 1, 3).Normalize(); got.String() != "4/3" {
		t.Fatalf("1/3 normalizes to %q, expected 4/3", got.String())
	}
	if got := microtonalist.IntervalFromCents(-100).Normalize().Cents(); math.Abs(got-1100) > 1e-9 {
		t.Fatalf("-100c normalizes to %v, expected 1100", got)
	}
	if got := microtonalist.IntervalFromCents(1200).Normalize().Cents(); got != 0 {
		t.Fatalf("1200c normalizes to %v, expected 0", got)
	}
}

func TestIntervalIsUnison(t *testing.T) {
	if !mustRatio(t, 2, 1).IsUnison(0.02) {
		t.Fatal("2/1 should be a unison modulo octaves")
	}
	if !microtonalist.IntervalFromCents(1199.999).IsUnison(0.02) {
		t.Fatal("1199.999c should be a unison within tolerance")
	}
	if microtonalist.IntervalFromCents(600).IsUnison(0.02) {
		t.Fatal("600c should not be a unison")
	}
}

func TestParsePitchClass(t *testing.T) {
	tests := []struct {
		input    string
		expected microtonalist.PitchClass
	}{
		{"C", microtonalist.PitchClassC},
		{"c", microtonalist.PitchClassC},
		{"C#", microtonalist.PitchClassCSharp},
		{"Db", microtonalist.PitchClassCSharp},
		{"Eb", microtonalist.PitchClassEFlat},
		{"D#", microtonalist.PitchClassEFlat},
		{"B", microtonalist.PitchClassB},
	}
	for _, test := range tests {
		got, err := microtonalist.ParsePitchClass(test.input)
		if err != nil || got != test.expected {
			t.Errorf("ParsePitchClass(%q) = %v, %v; expected %v", test.input, got, err, test.expected)
		}
	}
	if _, err := microtonalist.ParsePitchClass("H"); err == nil {
		t.Fatal("ParsePitchClass should reject unknown names")
	}
}
