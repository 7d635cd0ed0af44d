package midi

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/calinburloiu/microtonalist"
)

// DefaultSwitchController is the sustain pedal, the control most players have
// under a foot while both hands are on the keyboard.
const DefaultSwitchController uint8 = 64

// Switcher steps through the tunings of a composition, sending each one as an
// octave tuning dump when a pedal press comes in.
type Switcher struct {
	tunings    microtonalist.TuningList
	send       func(midi.Message) error
	deviceID   byte
	controller uint8

	mutex     sync.Mutex
	index     int
	lastValue uint8
}

// NewSwitcher creates a switcher that sends the given tunings with send,
// advancing on the rising edge of controller; controller 0 means the sustain
// pedal.
func NewSwitcher(tunings microtonalist.TuningList, send func(midi.Message) error, deviceID byte, controller uint8) (*Switcher, error) {
	if len(tunings) == 0 {
		return nil, errors.New("there are no tunings to switch between")
	}
	if send == nil {
		return nil, errors.New("a send function is required")
	}
	if controller == 0 {
		controller = DefaultSwitchController
	}
	return &Switcher{
		tunings:    tunings,
		send:       send,
		deviceID:   deviceID,
		controller: controller,
		index:      -1,
	}, nil
}

// Start sends the first tuning.
func (s *Switcher) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.index = -1
	return s.next()
}

// Next advances to the next tuning, wrapping around, and sends it.
func (s *Switcher) Next() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.next()
}

func (s *Switcher) next() error {
	s.index = (s.index + 1) % len(s.tunings)
	tuning := s.tunings[s.index]
	if err := s.send(RealTimeOctaveTuningMessage(s.deviceID, tuning)); err != nil {
		return fmt.Errorf("sending tuning %q failed: %w", tuning.Name, err)
	}
	slog.Info("switched tuning", "index", s.index+1, "of", len(s.tunings), "tuning", tuning.Name)
	return nil
}

// HandleMessage advances the switcher on the rising edge of the switch
// controller. It has the signature midi.ListenTo expects.
func (s *Switcher) HandleMessage(msg midi.Message, timestampms int32) {
	var channel, controller, value uint8
	if !msg.GetControlChange(&channel, &controller, &value) || controller != s.controller {
		return
	}
	s.mutex.Lock()
	rising := value >= 64 && s.lastValue < 64
	s.lastValue = value
	s.mutex.Unlock()
	if !rising {
		return
	}
	if err := s.Next(); err != nil {
		slog.Error("switching tuning failed", "error", err)
	}
}

// Listen subscribes the switcher to an input port. The returned stop function
// unsubscribes it.
func (s *Switcher) Listen(in drivers.In) (func(), error) {
	return midi.ListenTo(in, s.HandleMessage)
}
