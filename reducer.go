package microtonalist

import "log/slog"

// TuningReducer collapses the ordered partial tunings of a composition into
// the final tuning list. Reduction can never fail: keys still empty after
// filling from globalFill resolve to 0.0 cents, reported only as an
// informational log line.
type TuningReducer interface {
	ReduceTunings(partials []PartialTuning, globalFill PartialTuning) TuningList
}

// DirectTuningReducer performs no merging: every input becomes one tuning,
// in order, filled from globalFill and resolved.
type DirectTuningReducer struct{}

func (DirectTuningReducer) ReduceTunings(partials []PartialTuning, globalFill PartialTuning) TuningList {
	ret := make(TuningList, 0, len(partials))
	for _, partial := range partials {
		ret = append(ret, resolveFilled(partial, globalFill))
	}
	return ret
}

// MergeTuningReducer minimizes the number of tuning switches and the number
// of keys each switch retunes. Consecutive inputs are merged greedily while
// they stay compatible within EqualityTolerance; each resulting group is then
// filled from its neighbors, preceding ones first (back-fill) and succeeding
// ones second (fore-fill), so that a switch keeps whatever was already
// sounding nearby. Zero EqualityTolerance means DefaultCentsTolerance.
type MergeTuningReducer struct {
	EqualityTolerance float64
}

func (r MergeTuningReducer) ReduceTunings(partials []PartialTuning, globalFill PartialTuning) TuningList {
	tolerance := r.EqualityTolerance
	if tolerance == 0 {
		tolerance = DefaultCentsTolerance
	}

	// Left-to-right greedy accumulation; a conflict always closes the group,
	// there is no partial merge across a conflicting key.
	var groups []PartialTuning
	for _, partial := range partials {
		if len(groups) > 0 {
			if merged, ok := groups[len(groups)-1].Merge(partial, tolerance); ok {
				groups[len(groups)-1] = merged
				continue
			}
		}
		groups = append(groups, partial)
	}

	// Back-fill: propagate the already back-filled past forward.
	for i := 1; i < len(groups); i++ {
		groups[i] = groups[i].Fill(groups[i-1])
	}
	// Fore-fill: cascade the future backward through the whole chain.
	for i := len(groups) - 2; i >= 0; i-- {
		groups[i] = groups[i].Fill(groups[i+1])
	}

	ret := make(TuningList, 0, len(groups))
	for _, group := range groups {
		ret = append(ret, resolveFilled(group, globalFill))
	}
	return ret
}

func resolveFilled(partial, globalFill PartialTuning) OctaveTuning {
	filled := partial.Fill(globalFill)
	if !filled.IsComplete() {
		slog.Info("tuning incomplete after global fill; missing keys default to 12-EDO",
			"tuning", filled.Name, "missing", NumPitchClasses-filled.NumMapped())
	}
	return filled.Resolve()
}
