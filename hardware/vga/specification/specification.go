// This file is part of vgapico.
//
// vgapico is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vgapico is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with vgapico.  If not, see <https://www.gnu.org/licenses/>.

package specification

import (
	"fmt"

	"github.com/vgapico/vgapico/curated"
)

// Sentinal error patterns.
const (
	InvalidSegments = "specification: %s segments: %v"
	InvalidWindow   = "specification: window: %v"
	InvalidSpec     = "specification: %s: %v"
)

// Segments of a horizontal line (measured in pixels) or of a frame
// (measured in lines). The four parts must add up to the whole.
type Segments struct {
	Visible    int
	FrontPorch int
	SyncPulse  int
	BackPorch  int
	Whole      int
}

func (s Segments) String() string {
	return fmt.Sprintf("%d+%d+%d+%d=%d", s.Visible, s.FrontPorch, s.SyncPulse, s.BackPorch, s.Whole)
}

// Validate checks that the four segments sum to the whole and that no
// segment is negative.
func (s Segments) Validate() error {
	if s.Visible <= 0 || s.FrontPorch < 0 || s.SyncPulse <= 0 || s.BackPorch < 0 {
		return fmt.Errorf("segment out of range (%s)", s)
	}
	if sum := s.Visible + s.FrontPorch + s.SyncPulse + s.BackPorch; sum != s.Whole {
		return fmt.Errorf("segments sum to %d not %d", sum, s.Whole)
	}
	return nil
}

// PulseFraction is the fraction of the whole occupied by the sync pulse.
func (s Segments) PulseFraction() float64 {
	return float64(s.SyncPulse) / float64(s.Whole)
}

// Window describes the region of the frame that shows the image and the
// layout of a line buffer.
type Window struct {
	// the first line index of the window. the line at Offset is itself blank
	// and the window is made up of the lines Offset+1 to Offset+Rows-1
	Offset int
	Rows   int

	// number of image pixel words in a line buffer
	ResolutionX int

	// number of words at the start of a line buffer before the image pixels
	BufferOffset int
}

// LineLength is the number of 16-bit words in a line buffer. There is one
// trailing word after the image pixels, which is always zero so that the
// pixel bus returns to black at the end of every line.
func (w Window) LineLength() int {
	return w.ResolutionX + w.BufferOffset + 1
}

// VisibleRows is the number of line indexes inside the window. The line at
// Offset is blank so there is one fewer visible row than Rows.
func (w Window) VisibleRows() int {
	return w.Rows - 1
}

// FirstColumn is the index of the first word of a line buffer that can be
// anything other than zero. The word at BufferOffset is blank in the same
// way as the line at Offset.
func (w Window) FirstColumn() int {
	return w.BufferOffset + 1
}

// VisibleColumns is the number of words of a line buffer from FirstColumn
// up to but not including the trailing word.
func (w Window) VisibleColumns() int {
	return w.ResolutionX - 1
}

// Contains returns true if the line index is inside the window.
func (w Window) Contains(line int) bool {
	return line > w.Offset && line < w.Offset+w.Rows
}

func (w Window) String() string {
	return fmt.Sprintf("offset=%d rows=%d x=%d buffer offset=%d", w.Offset, w.Rows, w.ResolutionX, w.BufferOffset)
}

// Frequencies of the specification in Hz.
type Frequencies struct {
	Source     float64
	Pixel      float64
	Horizontal float64
	Vertical   float64
}

// Spec is the timing specification of a video mode.
type Spec struct {
	ID string

	// horizontal segments are measured in pixels of the nominal dot clock.
	// vertical segments are measured in lines
	Horizontal Segments
	Vertical   Segments

	Frequencies Frequencies

	// the number of pixel clocks in one line of the scan-out. the pixel clock
	// of the generator is much slower than the nominal dot clock
	PixelsPerLine int

	// integer clock divider of the vertical sync generator
	VerticalDivider int

	// the vertical counter is divided by the number of counter ticks per line
	// and then by LineDivisor to give the line index
	LineDivisor int

	// width of the PWM counters
	CounterBits int

	Window Window
}

func (s Spec) String() string {
	return fmt.Sprintf("%s: h %s, v %s, %.3fHz/%.3fHz", s.ID, s.Horizontal, s.Vertical,
		s.Frequencies.Horizontal, s.Frequencies.Vertical)
}

// Lines returns the number of line indexes in a frame.
func (s Spec) Lines() int {
	return (s.Vertical.Whole + s.LineDivisor - 1) / s.LineDivisor
}

// Slack is the number of pixel clocks in a line not used by the line
// buffer. The per-line handler must re-arm the transfer within this many
// pixel clocks of the start of the line.
func (s Spec) Slack() int {
	return s.PixelsPerLine - s.Window.LineLength()
}

// Validate checks the specification for consistency.
func (s Spec) Validate() error {
	if err := s.Horizontal.Validate(); err != nil {
		return curated.Errorf(InvalidSegments, "horizontal", err)
	}
	if err := s.Vertical.Validate(); err != nil {
		return curated.Errorf(InvalidSegments, "vertical", err)
	}

	f := s.Frequencies
	if f.Source <= 0 || f.Pixel <= 0 || f.Horizontal <= 0 || f.Vertical <= 0 {
		return curated.Errorf(InvalidSpec, s.ID, "frequencies must be positive")
	}
	if f.Pixel > f.Source/2 {
		return curated.Errorf(InvalidSpec, s.ID, "pixel clock cannot be more than half the source clock")
	}
	if s.PixelsPerLine <= 0 {
		return curated.Errorf(InvalidSpec, s.ID, "pixels per line must be positive")
	}
	if s.VerticalDivider < 1 || s.VerticalDivider > 255 {
		return curated.Errorf(InvalidSpec, s.ID, "vertical divider must be between 1 and 255")
	}
	if s.LineDivisor < 1 {
		return curated.Errorf(InvalidSpec, s.ID, "line divisor must be positive")
	}
	if s.CounterBits < 2 || s.CounterBits > 16 {
		return curated.Errorf(InvalidSpec, s.ID, "counter bits must be between 2 and 16")
	}

	return s.ValidateWindow(s.Window)
}

// ValidateWindow checks that the window fits the specification. A window
// other than the one in the specification can be checked before it is used
// by the generator.
func (s Spec) ValidateWindow(w Window) error {
	if w.Offset < 0 || w.Rows < 1 {
		return curated.Errorf(InvalidWindow, "offset and rows must be positive")
	}
	if w.Offset+w.Rows > s.Lines() {
		return curated.Errorf(InvalidWindow, fmt.Sprintf("window ends after line %d", s.Lines()))
	}
	if w.ResolutionX < 1 || w.BufferOffset < 0 {
		return curated.Errorf(InvalidWindow, "resolution must be positive")
	}
	if w.LineLength() > s.PixelsPerLine {
		return curated.Errorf(InvalidWindow, fmt.Sprintf("line buffer of %d words longer than line of %d pixel clocks",
			w.LineLength(), s.PixelsPerLine))
	}
	return nil
}
