// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bh1750

import (
	"errors"
	"fmt"
)

// ErrTimeout is matched by errors from transactions that did not complete
// within Opts.Timeout.
var ErrTimeout = errors.New("bh1750: bus timeout")

// ModeError is returned when a mode is not accepted by the operation. No
// transaction is issued.
type ModeError struct {
	Mode Mode
	Op   string
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("bh1750: %s: invalid mode %s", e.Op, e.Mode)
}

// ResolutionError is returned for a measurement time register value outside
// [MinResolution, MaxResolution]. No transaction is issued.
type ResolutionError struct {
	Value uint8
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("bh1750: resolution %d out of range [%d, %d]", e.Value, MinResolution, MaxResolution)
}

// BusError wraps a failed transaction. AddrByte is the addressing byte with
// the direction bit, 0x46 for writes and 0x47 for reads.
type BusError struct {
	AddrByte byte
	Err      error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("bh1750: transaction with 0x%02x failed: %v", e.AddrByte, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}
