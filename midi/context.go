package midi

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Context owns the MIDI driver and the ports opened through it.
type Context struct {
	driver *rtmididrv.Driver
	outs   []drivers.Out
	ins    []drivers.In
}

// NewContext opens the system MIDI driver.
func NewContext() (*Context, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("opening MIDI driver failed: %w", err)
	}
	return &Context{driver: driver}, nil
}

// InPorts lists the names of the available input ports.
func (c *Context) InPorts() ([]string, error) {
	ins, err := c.driver.Ins()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	return names, nil
}

// OutPorts lists the names of the available output ports.
func (c *Context) OutPorts() ([]string, error) {
	outs, err := c.driver.Outs()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	return names, nil
}

// OpenOut opens the first output port whose name starts with namePrefix, or
// the first port of all when namePrefix is empty.
func (c *Context) OpenOut(namePrefix string) (drivers.Out, error) {
	outs, err := c.driver.Outs()
	if err != nil {
		return nil, err
	}
	for _, out := range outs {
		if namePrefix != "" && !strings.HasPrefix(out.String(), namePrefix) {
			continue
		}
		if err := out.Open(); err != nil {
			return nil, fmt.Errorf("opening MIDI output %q failed: %w", out.String(), err)
		}
		c.outs = append(c.outs, out)
		return out, nil
	}
	if namePrefix == "" {
		return nil, errors.New("no MIDI output port available")
	}
	return nil, fmt.Errorf("no MIDI output port starts with %q", namePrefix)
}

// OpenIn opens the first input port whose name starts with namePrefix, or the
// first port of all when namePrefix is empty.
func (c *Context) OpenIn(namePrefix string) (drivers.In, error) {
	ins, err := c.driver.Ins()
	if err != nil {
		return nil, err
	}
	for _, in := range ins {
		if namePrefix != "" && !strings.HasPrefix(in.String(), namePrefix) {
			continue
		}
		if err := in.Open(); err != nil {
			return nil, fmt.Errorf("opening MIDI input %q failed: %w", in.String(), err)
		}
		c.ins = append(c.ins, in)
		return in, nil
	}
	if namePrefix == "" {
		return nil, errors.New("no MIDI input port available")
	}
	return nil, fmt.Errorf("no MIDI input port starts with %q", namePrefix)
}

// Close closes the opened ports and the driver.
func (c *Context) Close() {
	for _, in := range c.ins {
		if in.IsOpen() {
			in.Close()
		}
	}
	for _, out := range c.outs {
		if out.IsOpen() {
			out.Close()
		}
	}
	c.driver.Close()
}
