// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lightsensors is a container for ambient light sensor drivers.
//
// The BH1750 driver lives in package bh1750 and the cmd/bh1750 tool reads it
// from a host.
package lightsensors
