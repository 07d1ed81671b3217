// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bh1750 controls a ROHM BH1750 ambient light sensor over I²C.
//
// The driver is stateless. Every method except MeasureOnce is one independent
// bus transaction, and nothing read from or written to the device is mirrored.
// The usual sequence is PowerOn, optionally SetResolution, then
// StartContinuous or StartSingle. After the conversion time (see
// MeasurementTime) ReadLux returns the illuminance. The caller does the
// waiting between start and read, except in MeasureOnce.
//
// Range: 0 - 65535 counts (0 - 78642 lx)
//
// # Datasheet
//
// https://www.mouser.com/datasheet/2/348/bh1750fvi-e-186247.pdf
package bh1750
