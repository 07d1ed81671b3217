// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bh1750

import (
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

// stuckBus holds every transaction until release is closed, then writes
// 0xff into the read buffer.
type stuckBus struct {
	release chan struct{}
}

func (b *stuckBus) String() string {
	return "stuckbus"
}

func (b *stuckBus) SetSpeed(f physic.Frequency) error {
	return nil
}

func (b *stuckBus) Tx(addr uint16, w, r []byte) error {
	<-b.release
	for i := range r {
		r[i] = 0xff
	}
	return nil
}

func TestAddressByte(t *testing.T) {
	if b := addressByte(dirWrite); b != 0x46 {
		t.Errorf("write address byte 0x%02x expected 0x46", b)
	}
	if b := addressByte(dirRead); b != 0x47 {
		t.Errorf("read address byte 0x%02x expected 0x47", b)
	}
}

func TestTimeout(t *testing.T) {
	bus := &stuckBus{release: make(chan struct{})}
	dev, err := NewI2C(bus, &Opts{Timeout: 5 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if err := dev.PowerOn(); !errors.Is(err, ErrTimeout) {
		t.Errorf("PowerOn() returned %v, expected timeout", err)
	}
	lux, err := dev.ReadLux()
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("ReadLux() returned %v, expected timeout", err)
	}
	if lux != NoReading {
		t.Errorf("ReadLux()=%f expected %f", lux, NoReading)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout not enforced, took %s", elapsed)
	}
	close(bus.release)
}

func TestTimeoutLateCompletion(t *testing.T) {
	bus := &stuckBus{release: make(chan struct{})}
	tb := &timeoutBus{Bus: bus, timeout: time.Millisecond}
	r := make([]byte, 2)
	if err := tb.Tx(Address, nil, r); !errors.Is(err, ErrTimeout) {
		t.Fatalf("Tx() returned %v, expected timeout", err)
	}
	close(bus.release)
	time.Sleep(10 * time.Millisecond)
	if r[0] != 0 || r[1] != 0 {
		t.Errorf("late completion wrote into caller buffer: %#v", r)
	}
}

func TestTimeoutBusPassThrough(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: Address, W: []byte{0x01}},
			{Addr: Address, W: []byte{0x10}},
			{Addr: Address, R: []byte{0x01, 0x90}},
		},
		DontPanic: true,
	}
	dev, err := NewI2C(pb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.PowerOn(); err != nil {
		t.Fatal(err)
	}
	if err := dev.StartContinuous(ContinuousHighRes); err != nil {
		t.Fatal(err)
	}
	count, err := dev.ReadRaw()
	if err != nil {
		t.Fatal(err)
	}
	if count != 400 {
		t.Errorf("ReadRaw()=%d expected 400", count)
	}
	if err := pb.Close(); err != nil {
		t.Error(err)
	}
}
