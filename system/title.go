// Copyright (c) 2026, The Glitter Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"fmt"
	"time"

	"glitter.dev/glitter/render"
)

// TitleOverlay is a [render.Overlay] showing the frame rate, or the
// stored scene error, in the window title. It never captures the mouse.
type TitleOverlay struct {
	// Title is the base title.
	Title string

	// Interval is the minimum time between title updates.
	Interval time.Duration

	// Clock returns the current time. It is [time.Now] by default.
	Clock func() time.Time

	set   func(title string)
	last  time.Time
	shown string
}

// NewTitleOverlay returns a title overlay calling set with each new
// title, at most twice a second.
func NewTitleOverlay(title string, set func(title string)) *TitleOverlay {
	return &TitleOverlay{Title: title, Interval: 500 * time.Millisecond, Clock: time.Now, set: set}
}

func (to *TitleOverlay) WantCaptureMouse() bool { return false }

// Frame updates the title when the interval has passed.
func (to *TitleOverlay) Frame(fi *render.FrameInfo) {
	now := to.Clock()
	if !to.last.IsZero() && now.Sub(to.last) < to.Interval {
		return
	}
	to.last = now
	title := FrameTitle(to.Title, fi)
	if title == to.shown {
		return
	}
	to.shown = title
	to.set(title)
}

// FrameTitle returns the title showing the frame info.
func FrameTitle(base string, fi *render.FrameInfo) string {
	if fi.Err != nil {
		return fmt.Sprintf("%s | error: %v", base, fi.Err)
	}
	return fmt.Sprintf("%s | %.1f fps (%.2f ms)", base, fi.FPS, fi.Delta*1000)
}
