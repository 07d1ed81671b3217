// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bh1750

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

const (
	dirWrite byte = 0
	dirRead  byte = 1
)

// addressByte returns the first byte put on the wire for a transaction in
// direction dir.
func addressByte(dir byte) byte {
	return byte(Address<<1) | dir
}

// timeoutBus bounds every Tx on the wrapped bus. The wrapped call can't be
// interrupted, so it keeps running in its goroutine after a timeout and its
// result is dropped.
type timeoutBus struct {
	i2c.Bus
	timeout time.Duration
}

func (b *timeoutBus) Tx(addr uint16, w, r []byte) error {
	var buf []byte
	if len(r) != 0 {
		buf = make([]byte, len(r))
	}
	done := make(chan error, 1)
	go func() {
		done <- b.Bus.Tx(addr, w, buf)
	}()
	t := time.NewTimer(b.timeout)
	defer t.Stop()
	select {
	case err := <-done:
		if err == nil {
			copy(r, buf)
		}
		return err
	case <-t.C:
		return fmt.Errorf("%w after %s", ErrTimeout, b.timeout)
	}
}
