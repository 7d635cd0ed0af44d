package microtonalist_test

import (
	"reflect"
	"testing"

	"github.com/calinburloiu/microtonalist"
)

func TestMergeReducerEmptyInput(t *testing.T) {
	got := microtonalist.MergeTuningReducer{}.ReduceTunings(nil, microtonalist.Edo12Tuning())
	if len(got) != 0 {
		t.Fatalf("reducing no tunings produced %v, expected none", got)
	}
}

func TestMergeReducerSingleInput(t *testing.T) {
	input := pt("solo", tp(microtonalist.PitchClassC, 12))
	globalFill := microtonalist.Edo12Tuning()
	got := microtonalist.MergeTuningReducer{}.ReduceTunings([]microtonalist.PartialTuning{input}, globalFill)
	expected := microtonalist.TuningList{input.Fill(globalFill).Resolve()}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("reduced list is %v, expected %v", got, expected)
	}
}

// A and B merge; C conflicts with their merge. The result is exactly two
// tunings: merge(A, B) enriched by fore-fill from C, and C enriched by
// back-fill from merge(A, B).
func TestMergeReducerSplitsOnConflict(t *testing.T) {
	a := pt("A", tp(microtonalist.PitchClassC, 0))
	b := pt("B", tp(microtonalist.PitchClassD, 5))
	c := pt("C", tp(microtonalist.PitchClassC, 80), tp(microtonalist.PitchClassE, 10))
	got := microtonalist.MergeTuningReducer{}.ReduceTunings(
		[]microtonalist.PartialTuning{a, b, c}, microtonalist.PartialTuning{})
	if len(got) != 2 {
		t.Fatalf("reduced into %d tunings, expected 2", len(got))
	}
	first := microtonalist.OctaveTuning{Name: "A + B"}
	first.Deviations[microtonalist.PitchClassC] = 0
	first.Deviations[microtonalist.PitchClassD] = 5
	first.Deviations[microtonalist.PitchClassE] = 10 // fore-filled from C
	second := microtonalist.OctaveTuning{Name: "C"}
	second.Deviations[microtonalist.PitchClassC] = 80
	second.Deviations[microtonalist.PitchClassD] = 5 // back-filled from A + B
	second.Deviations[microtonalist.PitchClassE] = 10
	if !reflect.DeepEqual(got[0], first) {
		t.Fatalf("first tuning is %+v, expected %+v", got[0], first)
	}
	if !reflect.DeepEqual(got[1], second) {
		t.Fatalf("second tuning is %+v, expected %+v", got[1], second)
	}
}

func TestMergeReducerForeFillCascades(t *testing.T) {
	// The last group's slot must cascade right-to-left through the whole
	// chain, not just to its immediate neighbor.
	a := pt("A", tp(microtonalist.PitchClassC, 0))
	b := pt("B", tp(microtonalist.PitchClassC, 80))
	c := pt("C", tp(microtonalist.PitchClassC, 0), tp(microtonalist.PitchClassB, -7))
	got := microtonalist.MergeTuningReducer{}.ReduceTunings(
		[]microtonalist.PartialTuning{a, b, c}, microtonalist.PartialTuning{})
	if len(got) != 3 {
		t.Fatalf("reduced into %d tunings, expected 3", len(got))
	}
	for i, tuning := range got {
		if tuning.Deviations[microtonalist.PitchClassB] != -7 {
			t.Fatalf("tuning %d has B = %v, expected the fore-filled -7", i, tuning.Deviations[microtonalist.PitchClassB])
		}
	}
}

func TestDirectReducerKeepsInputsApart(t *testing.T) {
	a := pt("A", tp(microtonalist.PitchClassC, 10))
	b := pt("B", tp(microtonalist.PitchClassC, 10.001))
	got := microtonalist.DirectTuningReducer{}.ReduceTunings(
		[]microtonalist.PartialTuning{a, b}, microtonalist.Edo12Tuning())
	if len(got) != 2 {
		t.Fatalf("direct reducer produced %d tunings, expected 2", len(got))
	}
	if got[0].Deviations[microtonalist.PitchClassC] != 10 {
		t.Fatalf("input must win over the global fill, got %v", got[0].Deviations[microtonalist.PitchClassC])
	}
	if got[0].Deviations[microtonalist.PitchClassD] != 0 {
		t.Fatalf("unmapped keys must come from the global fill, got %v", got[0].Deviations[microtonalist.PitchClassD])
	}
	if got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("direct reducer changed names: %q, %q", got[0].Name, got[1].Name)
	}
}
