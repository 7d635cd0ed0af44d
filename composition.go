package microtonalist

import "fmt"

type (
	// TuningSpec produces one partial tuning: a scale, the interval it is
	// transposed by, and the mapper that assigns it to the keyboard. A nil
	// Mapper means a default AutoTuningMapper. A non-empty Name overrides
	// the name the mapper derives.
	TuningSpec struct {
		Name          string
		Transposition Interval
		Scale         Scale
		Mapper        TuningMapper
	}

	// Composition is an ordered sequence of tuning specs together with the
	// reference they are all mapped against, the reducer that collapses them
	// and an optional global fill spec. A nil Reducer means a default
	// MergeTuningReducer; a nil GlobalFill means plain 12-EDO.
	Composition struct {
		Name       string
		Reference  TuningReference
		Tunings    []TuningSpec
		Reducer    TuningReducer
		GlobalFill *TuningSpec
	}
)

func (s TuningSpec) mapScale(reference TuningReference) (PartialTuning, error) {
	mapper := s.Mapper
	if mapper == nil {
		mapper = AutoTuningMapper{}
	}
	partial, err := mapper.MapScale(s.Scale, reference, s.Transposition)
	if err != nil {
		return PartialTuning{}, err
	}
	if s.Name != "" {
		partial.Name = s.Name
	}
	return partial, nil
}

// TuningList maps every tuning spec to its partial tuning and folds the
// sequence through the reducer. Mapping errors propagate verbatim, wrapped
// with the position and scale they occurred in.
func (c *Composition) TuningList() (TuningList, error) {
	partials := make([]PartialTuning, 0, len(c.Tunings))
	for i, spec := range c.Tunings {
		partial, err := spec.mapScale(c.Reference)
		if err != nil {
			return nil, fmt.Errorf("tuning %d (scale %q): %w", i+1, spec.Scale.Name, err)
		}
		partials = append(partials, partial)
	}
	globalFill := Edo12Tuning()
	if c.GlobalFill != nil {
		var err error
		globalFill, err = c.GlobalFill.mapScale(c.Reference)
		if err != nil {
			return nil, fmt.Errorf("global fill (scale %q): %w", c.GlobalFill.Scale.Name, err)
		}
	}
	reducer := c.Reducer
	if reducer == nil {
		reducer = MergeTuningReducer{}
	}
	return reducer.ReduceTunings(partials, globalFill), nil
}
