// Package midi sends octave tunings to MIDI 1.0 instruments that understand
// the MIDI Tuning Standard and switches between the tunings of a composition
// from incoming control change messages.
package midi

import (
	"math"

	"gitlab.com/gomidi/midi/v2"

	"github.com/calinburloiu/microtonalist"
)

// DeviceIDAll addresses every device listening on the port.
const DeviceIDAll byte = 0x7F

// Resolution of the 1-byte scale/octave tuning dump: 100/64 cents per step.
const octaveTuningStep = microtonalist.CentsPerSemitone / 64

// OctaveTuningMessage builds a non-real-time MIDI Tuning Standard
// scale/octave tuning dump, 1-byte format, addressed to all channels.
// Deviations are quantized to 100/64 cent steps and clamped to [-100, 98.4375)
// cents, the range the 1-byte format can carry.
func OctaveTuningMessage(deviceID byte, tuning microtonalist.OctaveTuning) midi.Message {
	return octaveTuningMessage(0x7E, deviceID, tuning)
}

// RealTimeOctaveTuningMessage is the real-time variant of
// OctaveTuningMessage, applied by receivers to already sounding notes.
func RealTimeOctaveTuningMessage(deviceID byte, tuning microtonalist.OctaveTuning) midi.Message {
	return octaveTuningMessage(0x7F, deviceID, tuning)
}

func octaveTuningMessage(universalID, deviceID byte, tuning microtonalist.OctaveTuning) midi.Message {
	msg := make(midi.Message, 0, 21)
	// 08 08: MIDI Tuning Standard, scale/octave tuning dump, 1-byte format.
	// 03 7F 7F: channel bitmask selecting all 16 channels.
	msg = append(msg, 0xF0, universalID, deviceID, 0x08, 0x08, 0x03, 0x7F, 0x7F)
	for _, deviation := range tuning.Deviations {
		steps := int(math.Round(deviation / octaveTuningStep))
		if steps < -64 {
			steps = -64
		} else if steps > 63 {
			steps = 63
		}
		msg = append(msg, byte(0x40+steps))
	}
	return append(msg, 0xF7)
}
