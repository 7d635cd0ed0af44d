// Package microtonalist maps symbolic musical scales to concrete tunings for
// a 12-key-per-octave keyboard and reduces a sequence of such tunings into the
// smallest practical number of distinct hardware tunings.
//
// The package contains only pure value types and algorithms; file formats live
// in the format package and the MIDI boundary in the midi package.
package microtonalist
