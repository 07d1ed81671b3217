// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Highest illuminance the sensor reports, 0xffff counts.
const maxLux = 65535 * 1.2

// meter draws illuminance as a bar of colored blocks on one terminal line.
// The scale is logarithmic, from darkness to direct sunlight.
type meter struct {
	w       io.Writer
	width   int
	palette *ansi256.Palette
	buf     bytes.Buffer
}

func newMeter(width int) *meter {
	return &meter{
		w:       colorable.NewColorableStdout(),
		width:   width,
		palette: ansi256.Default,
	}
}

// cells returns how many blocks are lit for lux.
func (m *meter) cells(lux float64) int {
	if lux <= 0 {
		return 0
	}
	n := int(math.Round(math.Log10(lux+1) / math.Log10(maxLux+1) * float64(m.width)))
	if n > m.width {
		n = m.width
	}
	return n
}

// cellColor fades from dark blue through yellow to white along the bar.
func (m *meter) cellColor(i int) color.NRGBA {
	f := float64(i+1) / float64(m.width)
	if f < 0.5 {
		g := 2 * f
		return color.NRGBA{byte(255 * g), byte(255 * g), byte(128 * (1 - g)), 255}
	}
	g := 2 * (f - 0.5)
	return color.NRGBA{255, 255, byte(255 * g), 255}
}

// Draw redraws the line for lux.
func (m *meter) Draw(lux float64) error {
	m.buf.Reset()
	_, _ = m.buf.WriteString("\r\033[0m")
	lit := m.cells(lux)
	off := color.NRGBA{0, 0, 0, 255}
	for i := 0; i < m.width; i++ {
		c := off
		if i < lit {
			c = m.cellColor(i)
		}
		_, _ = io.WriteString(&m.buf, m.palette.Block(c))
	}
	_, _ = fmt.Fprintf(&m.buf, "\033[0m %9.1f lx ", lux)
	_, err := m.buf.WriteTo(m.w)
	return err
}

// Halt leaves the terminal on a fresh line with default attributes.
func (m *meter) Halt() error {
	_, err := m.w.Write([]byte("\n\033[0m"))
	return err
}
