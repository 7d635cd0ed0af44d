package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/calinburloiu/microtonalist"
)

// The on-disk composition document. YAML is the native form; JSON documents
// with the same shape are accepted too.
type (
	compositionDef struct {
		Name       string         `yaml:"name" json:"name"`
		Reference  referenceDef   `yaml:"reference" json:"reference"`
		Reducer    *reducerDef    `yaml:"reducer" json:"reducer"`
		Tunings    []tuningDef    `yaml:"tunings" json:"tunings"`
		GlobalFill *tuningDef     `yaml:"globalFill" json:"globalFill"`
	}

	referenceDef struct {
		Type                       string  `yaml:"type" json:"type"`
		BasePitchClass             string  `yaml:"basePitchClass" json:"basePitchClass"`
		ConcertPitchToBaseInterval string  `yaml:"concertPitchToBaseInterval" json:"concertPitchToBaseInterval"`
		BaseMidiNote               int     `yaml:"baseMidiNote" json:"baseMidiNote"`
		ConcertPitchFrequency      float64 `yaml:"concertPitchFrequency" json:"concertPitchFrequency"`
	}

	reducerDef struct {
		Type              string  `yaml:"type" json:"type"`
		EqualityTolerance float64 `yaml:"equalityTolerance" json:"equalityTolerance"`
	}

	tuningDef struct {
		Name          string     `yaml:"name" json:"name"`
		Transposition string     `yaml:"transposition" json:"transposition"`
		Scale         *scaleDef  `yaml:"scale" json:"scale"`
		ScaleFile     string     `yaml:"scaleFile" json:"scaleFile"`
		Mapper        *mapperDef `yaml:"mapper" json:"mapper"`
	}

	scaleDef struct {
		Name      string   `yaml:"name" json:"name"`
		Intervals []string `yaml:"intervals,flow" json:"intervals"`
	}

	mapperDef struct {
		Type                 string         `yaml:"type" json:"type"`
		QuarterTonesLow      bool           `yaml:"quarterTonesLow" json:"quarterTonesLow"`
		QuarterToneTolerance float64        `yaml:"quarterToneTolerance" json:"quarterToneTolerance"`
		Tolerance            float64        `yaml:"tolerance" json:"tolerance"`
		SoftChromaticGenus   string         `yaml:"softChromaticGenusMapping" json:"softChromaticGenusMapping"`
		KeyboardMapping      map[string]int `yaml:"keyboardMapping" json:"keyboardMapping"`
		MinDeviation         float64        `yaml:"minDeviation" json:"minDeviation"`
		MaxDeviation         float64        `yaml:"maxDeviation" json:"maxDeviation"`
	}
)

// ReadComposition reads a composition document from r, accepting JSON and
// YAML. Scale files referenced by the document are resolved relative to dir;
// an empty dir means the current directory.
func ReadComposition(r io.Reader, dir string) (*microtonalist.Composition, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var def compositionDef
	if errJSON := json.Unmarshal(b, &def); errJSON != nil {
		if errYaml := yaml.Unmarshal(b, &def); errYaml != nil {
			return nil, fmt.Errorf("the composition is neither JSON nor YAML: %v; %v", errJSON, errYaml)
		}
	}
	return def.composition(dir)
}

// ReadCompositionFile reads a composition document from disk, resolving
// referenced scale files relative to the document's own directory.
func ReadCompositionFile(path string) (*microtonalist.Composition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	composition, err := ReadComposition(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return composition, nil
}

// WriteTuningListYAML writes the tuning list as a YAML document.
func WriteTuningListYAML(w io.Writer, list microtonalist.TuningList) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(list)
}

// WriteTuningListJSON writes the tuning list as an indented JSON document.
func WriteTuningListJSON(w io.Writer, list microtonalist.TuningList) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

func (d *compositionDef) composition(dir string) (*microtonalist.Composition, error) {
	reference, err := d.Reference.reference()
	if err != nil {
		return nil, err
	}
	var reducer microtonalist.TuningReducer
	if d.Reducer != nil {
		if reducer, err = d.Reducer.reducer(); err != nil {
			return nil, err
		}
	}
	tunings := make([]microtonalist.TuningSpec, 0, len(d.Tunings))
	for i, t := range d.Tunings {
		spec, err := t.tuningSpec(dir)
		if err != nil {
			return nil, fmt.Errorf("tuning %d: %w", i+1, err)
		}
		tunings = append(tunings, spec)
	}
	var globalFill *microtonalist.TuningSpec
	if d.GlobalFill != nil {
		spec, err := d.GlobalFill.tuningSpec(dir)
		if err != nil {
			return nil, fmt.Errorf("global fill: %w", err)
		}
		globalFill = &spec
	}
	return &microtonalist.Composition{
		Name:       d.Name,
		Reference:  reference,
		Tunings:    tunings,
		Reducer:    reducer,
		GlobalFill: globalFill,
	}, nil
}

func (d referenceDef) reference() (microtonalist.TuningReference, error) {
	switch d.Type {
	case "", "standard":
		pc, err := microtonalist.ParsePitchClass(d.BasePitchClass)
		if err != nil {
			return nil, fmt.Errorf("reference: %w", err)
		}
		return microtonalist.StandardTuningReference{BasePitchClass: pc}, nil
	case "concertPitch":
		interval, err := ParseInterval(d.ConcertPitchToBaseInterval)
		if err != nil {
			return nil, fmt.Errorf("reference: %w", err)
		}
		if d.BaseMidiNote < 0 || d.BaseMidiNote > 127 {
			return nil, fmt.Errorf("reference: base MIDI note %d is out of range", d.BaseMidiNote)
		}
		return microtonalist.ConcertPitchTuningReference{
			ConcertPitchToBaseInterval: interval,
			BaseMidiNote:               d.BaseMidiNote,
			ConcertPitchFrequency:      d.ConcertPitchFrequency,
		}, nil
	}
	return nil, fmt.Errorf("unknown tuning reference type %q", d.Type)
}

func (d reducerDef) reducer() (microtonalist.TuningReducer, error) {
	switch d.Type {
	case "", "merge":
		return microtonalist.MergeTuningReducer{EqualityTolerance: d.EqualityTolerance}, nil
	case "direct":
		return microtonalist.DirectTuningReducer{}, nil
	}
	return nil, fmt.Errorf("unknown tuning reducer type %q", d.Type)
}

func (d tuningDef) tuningSpec(dir string) (microtonalist.TuningSpec, error) {
	var scale microtonalist.Scale
	switch {
	case d.Scale != nil && d.ScaleFile != "":
		return microtonalist.TuningSpec{}, fmt.Errorf("scale and scaleFile are mutually exclusive")
	case d.Scale != nil:
		intervals, err := parseIntervals(d.Scale.Intervals)
		if err != nil {
			return microtonalist.TuningSpec{}, fmt.Errorf("scale %q: %w", d.Scale.Name, err)
		}
		scale = microtonalist.Scale{Name: d.Scale.Name, Intervals: intervals}
	case d.ScaleFile != "":
		var err error
		if scale, err = ReadScalaScaleFile(filepath.Join(dir, d.ScaleFile)); err != nil {
			return microtonalist.TuningSpec{}, err
		}
	default:
		return microtonalist.TuningSpec{}, fmt.Errorf("either scale or scaleFile is required")
	}
	transposition, err := ParseInterval(d.Transposition)
	if err != nil {
		return microtonalist.TuningSpec{}, err
	}
	var mapper microtonalist.TuningMapper
	if d.Mapper != nil {
		if mapper, err = d.Mapper.mapper(); err != nil {
			return microtonalist.TuningSpec{}, err
		}
	}
	return microtonalist.TuningSpec{
		Name:          d.Name,
		Transposition: transposition,
		Scale:         scale,
		Mapper:        mapper,
	}, nil
}

func (d mapperDef) mapper() (microtonalist.TuningMapper, error) {
	keyboardMapping, err := d.keyboardMapping()
	if err != nil {
		return nil, err
	}
	switch d.Type {
	case "", "auto":
		genus, err := parseSoftChromaticGenusMapping(d.SoftChromaticGenus)
		if err != nil {
			return nil, err
		}
		return microtonalist.AutoTuningMapper{
			MapQuarterTonesLow:   d.QuarterTonesLow,
			QuarterToneTolerance: d.QuarterToneTolerance,
			Tolerance:            d.Tolerance,
			SoftChromaticGenus:   genus,
			Override:             keyboardMapping,
		}, nil
	case "manual":
		if keyboardMapping.IsEmpty() {
			return nil, fmt.Errorf("manual mapper requires a keyboardMapping")
		}
		return microtonalist.ManualTuningMapper{
			Mapping:      keyboardMapping,
			MinDeviation: d.MinDeviation,
			MaxDeviation: d.MaxDeviation,
		}, nil
	}
	return nil, fmt.Errorf("unknown tuning mapper type %q", d.Type)
}

func (d mapperDef) keyboardMapping() (microtonalist.KeyboardMapping, error) {
	indexes := make(map[microtonalist.PitchClass]int, len(d.KeyboardMapping))
	for name, index := range d.KeyboardMapping {
		pc, err := microtonalist.ParsePitchClass(name)
		if err != nil {
			return microtonalist.KeyboardMapping{}, fmt.Errorf("keyboard mapping: %w", err)
		}
		indexes[pc] = index
	}
	return microtonalist.KeyboardMappingOf(indexes)
}

func parseSoftChromaticGenusMapping(s string) (microtonalist.SoftChromaticGenusMapping, error) {
	switch s {
	case "", "off":
		return microtonalist.SoftChromaticGenusOff, nil
	case "strict":
		return microtonalist.SoftChromaticGenusStrict, nil
	case "permissive":
		return microtonalist.SoftChromaticGenusPermissive, nil
	}
	return 0, fmt.Errorf("unknown soft chromatic genus mapping %q", s)
}
