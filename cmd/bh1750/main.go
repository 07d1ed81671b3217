// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// bh1750 reads illuminance from a BH1750 ambient light sensor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/lightsensors/bh1750"
)

// parseMode maps a resolution name to the one-time or continuous mode.
func parseMode(name string, single bool) (bh1750.Mode, error) {
	modes := map[string][2]bh1750.Mode{
		"h":  {bh1750.ContinuousHighRes, bh1750.OneTimeHighRes},
		"h2": {bh1750.ContinuousHighRes2, bh1750.OneTimeHighRes2},
		"l":  {bh1750.ContinuousLowRes, bh1750.OneTimeLowRes},
	}
	m, ok := modes[name]
	if !ok {
		return 0, fmt.Errorf("unknown mode %q, use one of h, h2 or l", name)
	}
	if single {
		return m[1], nil
	}
	return m[0], nil
}

func checkFlags(mtreg uint, interval time.Duration) error {
	if mtreg > 255 {
		return fmt.Errorf("mtreg %d out of range", mtreg)
	}
	if interval <= 0 {
		return fmt.Errorf("interval %s must be positive", interval)
	}
	return nil
}

// startSensor powers the sensor on, writes MTreg and starts continuous
// measurement unless single is set. MTreg is always written because the
// sensor keeps it across power down; only a power cycle restores the default.
func startSensor(dev *bh1750.Dev, mode bh1750.Mode, mtreg uint8, single bool) error {
	if err := dev.PowerOn(); err != nil {
		return err
	}
	if err := dev.SetResolution(mtreg); err != nil {
		return err
	}
	if single {
		return nil
	}
	return dev.StartContinuous(mode)
}

func mainImpl() error {
	busName := flag.String("b", "", "I²C bus to use")
	modeName := flag.String("mode", "h", "resolution: h (1 lx), h2 (0.5 lx) or l (4 lx)")
	single := flag.Bool("single", false, "use one-time measurements instead of continuous mode")
	mtreg := flag.Uint("mtreg", uint(bh1750.DefaultResolution), "measurement time register, 31 to 254")
	count := flag.Int("n", 0, "number of readings, 0 to read until interrupted")
	interval := flag.Duration("i", time.Second, "interval between readings")
	timeout := flag.Duration("timeout", bh1750.DefaultOpts.Timeout, "bus transaction timeout, 0 to disable")
	showMeter := flag.Bool("meter", false, "draw a level meter instead of logging readings")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if err := checkFlags(*mtreg, *interval); err != nil {
		return err
	}
	mode, err := parseMode(*modeName, *single)
	if err != nil {
		return err
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	b, err := i2creg.Open(*busName)
	if err != nil {
		return err
	}
	defer b.Close()

	dev, err := bh1750.NewI2C(b, &bh1750.Opts{Timeout: *timeout})
	if err != nil {
		return err
	}
	log.WithField("dev", dev).Debug("opened")
	defer func() {
		if err := dev.Halt(); err != nil {
			log.WithError(err).Warn("power down failed")
		}
	}()

	if err := startSensor(dev, mode, uint8(*mtreg), *single); err != nil {
		return err
	}
	wait := bh1750.MeasurementTime(mode, uint8(*mtreg))
	if !*single {
		if *interval < wait {
			*interval = wait
		}
		log.WithFields(log.Fields{"mode": mode, "conversion": wait}).Debug("measuring")
	}

	var m *meter
	if *showMeter {
		m = newMeter(40)
		defer m.Halt()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	defer signal.Stop(stop)

	t := time.NewTicker(*interval)
	defer t.Stop()
	for i := 0; *count == 0 || i < *count; i++ {
		if i != 0 || !*single {
			select {
			case <-stop:
				return nil
			case <-t.C:
			}
		}
		var lux float64
		if *single {
			lux, err = dev.MeasureOnce(mode, uint8(*mtreg))
		} else {
			lux, err = dev.ReadLux()
		}
		if err != nil {
			log.WithError(err).Error("read failed")
			continue
		}
		if m != nil {
			if err := m.Draw(lux); err != nil {
				return err
			}
			continue
		}
		log.WithField("lux", fmt.Sprintf("%.1f", lux)).Info("illuminance")
	}
	return nil
}

func main() {
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
	log.SetOutput(colorable.NewColorableStderr())
	if err := mainImpl(); err != nil {
		log.WithError(err).Error("bh1750")
		os.Exit(1)
	}
}
