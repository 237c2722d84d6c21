// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import "time"

// Timer measures the time since it was started and between frames.
type Timer struct {
	// Clock returns the current time. It is [time.Now] by default.
	Clock func() time.Time

	start time.Time
	last  time.Time
	now   time.Time
}

// NewTimer returns a timer reading the given clock,
// or [time.Now] if it is nil.
func NewTimer(clock func() time.Time) *Timer {
	if clock == nil {
		clock = time.Now
	}
	return &Timer{Clock: clock}
}

// Start resets the start and the last frame time to now.
func (tm *Timer) Start() {
	tm.now = tm.Clock()
	tm.start = tm.now
	tm.last = tm.now
}

// Update starts a new frame.
func (tm *Timer) Update() {
	tm.last = tm.now
	tm.now = tm.Clock()
}

// Time returns the seconds from Start to the current frame.
func (tm *Timer) Time() float32 {
	return float32(tm.now.Sub(tm.start).Seconds())
}

// Delta returns the seconds between the last two frames.
func (tm *Timer) Delta() float32 {
	return float32(tm.now.Sub(tm.last).Seconds())
}
