// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bh1750

import (
	"fmt"
	"slices"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// Mode selects how the sensor measures. Each value is also the opcode sent
// to the device.
type Mode byte

const (
	// ContinuousHighRes measures continuously at 1 lx resolution.
	ContinuousHighRes Mode = 0x10
	// ContinuousHighRes2 measures continuously at 0.5 lx resolution.
	ContinuousHighRes2 Mode = 0x11
	// ContinuousLowRes measures continuously at 4 lx resolution.
	ContinuousLowRes Mode = 0x12
	// OneTimeHighRes takes one 1 lx measurement, then the device powers down.
	OneTimeHighRes Mode = 0x20
	// OneTimeHighRes2 takes one 0.5 lx measurement, then the device powers
	// down.
	OneTimeHighRes2 Mode = 0x21
	// OneTimeLowRes takes one 4 lx measurement, then the device powers down.
	OneTimeLowRes Mode = 0x22
)

const (
	// Address is the 7-bit I²C address of the sensor with ADDR pulled low.
	Address uint16 = 0x23

	// Bounds and power-on default of the measurement time register (MTreg).
	MinResolution     uint8 = 31
	MaxResolution     uint8 = 254
	DefaultResolution uint8 = 69

	// NoReading is the illuminance returned together with an error when the
	// sensor could not be read. Valid readings are never negative.
	NoReading float64 = -1.0

	cmdPowerDown byte = 0x00
	cmdPowerOn   byte = 0x01
	cmdReset     byte = 0x07

	// MTreg is written as two opcodes carrying bits 7..5 and 4..0.
	cmdMTregHigh byte = 0b010_00000
	cmdMTregLow  byte = 0b011_00000
	mtregLowMask byte = 0b000_11111

	luxFactor = 1.2

	// Maximum conversion times at the default MTreg.
	maxHighResTime = 180 * time.Millisecond
	maxLowResTime  = 24 * time.Millisecond
)

var (
	continuousModes = []Mode{ContinuousHighRes, ContinuousHighRes2, ContinuousLowRes}
	oneTimeModes    = []Mode{OneTimeHighRes, OneTimeHighRes2, OneTimeLowRes}
)

func (m Mode) String() string {
	switch m {
	case ContinuousHighRes:
		return "ContinuousHighRes"
	case ContinuousHighRes2:
		return "ContinuousHighRes2"
	case ContinuousLowRes:
		return "ContinuousLowRes"
	case OneTimeHighRes:
		return "OneTimeHighRes"
	case OneTimeHighRes2:
		return "OneTimeHighRes2"
	case OneTimeLowRes:
		return "OneTimeLowRes"
	default:
		return fmt.Sprintf("Mode(0x%02x)", byte(m))
	}
}

// Opts holds the configuration options for the device.
type Opts struct {
	// Timeout bounds every bus transaction. 0 means no bound.
	Timeout time.Duration
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	Timeout: 20 * time.Millisecond,
}

// Dev represents a BH1750 ambient light sensor.
type Dev struct {
	d *i2c.Dev
}

// NewI2C returns a Dev that talks to the sensor at Address on b. No
// transaction is issued. opts may be nil to use DefaultOpts.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("bh1750: invalid timeout %s", opts.Timeout)
	}
	if opts.Timeout > 0 {
		b = &timeoutBus{Bus: b, timeout: opts.Timeout}
	}
	return &Dev{d: &i2c.Dev{Bus: b, Addr: Address}}, nil
}

// Reset clears the illuminance data register. It has no effect while the
// device is powered down.
func (d *Dev) Reset() error {
	return d.write(cmdReset)
}

// PowerOn wakes the device and makes it wait for a measurement command.
func (d *Dev) PowerOn() error {
	return d.write(cmdPowerOn)
}

// PowerDown puts the device in its low power state.
func (d *Dev) PowerDown() error {
	return d.write(cmdPowerDown)
}

// SetResolution sets the measurement time register, which scales the
// sensitivity. Both halves are written in a single transaction.
func (d *Dev) SetResolution(v uint8) error {
	if v < MinResolution || v > MaxResolution {
		return &ResolutionError{Value: v}
	}
	return d.write(cmdMTregHigh|v>>5, cmdMTregLow|v&mtregLowMask)
}

// StartContinuous starts continuous measurement in one of ContinuousHighRes,
// ContinuousHighRes2 or ContinuousLowRes.
func (d *Dev) StartContinuous(m Mode) error {
	if !slices.Contains(continuousModes, m) {
		return &ModeError{Mode: m, Op: "StartContinuous"}
	}
	return d.write(byte(m))
}

// StartSingle starts a single measurement in one of OneTimeHighRes,
// OneTimeHighRes2 or OneTimeLowRes. The device powers down once the result
// is available.
func (d *Dev) StartSingle(m Mode) error {
	if !slices.Contains(oneTimeModes, m) {
		return &ModeError{Mode: m, Op: "StartSingle"}
	}
	return d.write(byte(m))
}

// ReadRaw reads the 16-bit illuminance count.
func (d *Dev) ReadRaw() (uint16, error) {
	r := make([]byte, 2)
	if err := d.d.Tx(nil, r); err != nil {
		return 0, &BusError{AddrByte: addressByte(dirRead), Err: err}
	}
	return uint16(r[0])<<8 | uint16(r[1]), nil
}

// ReadLux returns the last measured illuminance in lux. On failure it
// returns NoReading and the error.
func (d *Dev) ReadLux() (float64, error) {
	count, err := d.ReadRaw()
	if err != nil {
		return NoReading, err
	}
	return countToLux(count), nil
}

// MeasureOnce starts a single measurement, waits for the conversion and reads
// the result. mtreg must be the value last set with SetResolution, or
// DefaultResolution.
func (d *Dev) MeasureOnce(m Mode, mtreg uint8) (float64, error) {
	if mtreg < MinResolution || mtreg > MaxResolution {
		return NoReading, &ResolutionError{Value: mtreg}
	}
	if err := d.StartSingle(m); err != nil {
		return NoReading, err
	}
	time.Sleep(MeasurementTime(m, mtreg))
	return d.ReadLux()
}

// Halt powers the device down. Implements conn.Resource.
func (d *Dev) Halt() error {
	return d.PowerDown()
}

func (d *Dev) String() string {
	return fmt.Sprintf("bh1750: %s", d.d.String())
}

// MeasurementTime returns the maximum conversion time for mode m with the
// measurement time register set to mtreg. It returns 0 for an unknown mode.
func MeasurementTime(m Mode, mtreg uint8) time.Duration {
	var base time.Duration
	switch m {
	case ContinuousHighRes, ContinuousHighRes2, OneTimeHighRes, OneTimeHighRes2:
		base = maxHighResTime
	case ContinuousLowRes, OneTimeLowRes:
		base = maxLowResTime
	default:
		return 0
	}
	return base * time.Duration(mtreg) / time.Duration(DefaultResolution)
}

func countToLux(count uint16) float64 {
	return float64(count) * luxFactor
}

func (d *Dev) write(cmd ...byte) error {
	if err := d.d.Tx(cmd, nil); err != nil {
		return &BusError{AddrByte: addressByte(dirWrite), Err: err}
	}
	return nil
}

var _ conn.Resource = &Dev{}
