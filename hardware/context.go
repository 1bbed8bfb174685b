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

package hardware

import (
	"fmt"
	"strings"

	"github.com/vgapico/vgapico/curated"
	"github.com/vgapico/vgapico/hardware/preferences"
	"github.com/vgapico/vgapico/hardware/vga/lineram"
	"github.com/vgapico/vgapico/hardware/vga/specification"
	"github.com/vgapico/vgapico/hardware/vga/synthesis"
)

// Sentinal error patterns.
const (
	BadContext   = "generator: %v"
	BadPattern   = "generator: unknown pattern (%s)"
	NotLockstep  = "generator: vertical divider does not divide a line (%d/%d)"
	NotWholeTick = "generator: pixel clock is not a whole number of source clocks"
)

// List of GPIO pins driven by the generator. The pixel bus occupies the
// sixteen pins starting at DataPin.
const (
	DataPin       = 0
	VSyncPin      = 17
	HSyncPin      = 19
	PixelClockPin = 20
	TestPin       = 21
	LEDPin        = 25
)

// SliceForPin returns the PWM slice that drives the pin.
func SliceForPin(pin int) int {
	return (pin >> 1) & 7
}

// List of slice numbers used by the generator. These follow from the pin
// assignments.
const (
	PixelSlice      = (PixelClockPin >> 1) & 7
	HorizontalSlice = (HSyncPin >> 1) & 7
	VerticalSlice   = (VSyncPin >> 1) & 7
)

// EnableMask is the mask of the three slices. The slices must be started
// with a single write of the mask so that they are phase-locked.
const EnableMask = 1<<PixelSlice | 1<<HorizontalSlice | 1<<VerticalSlice

// Context is the state shared between the generator and the per-line
// handler.
type Context struct {
	Spec   specification.Spec
	Window specification.Window

	Pixel      synthesis.Channel
	Horizontal synthesis.Channel
	Vertical   synthesis.Channel

	// number of vertical counter ticks in a line
	TicksPerLine int

	// handler budget in source clocks
	Budget int

	// line buffers. the working buffer is the read address of every
	// transfer
	Store *lineram.Store

	// template source for the bars pattern. nil if the pattern is solid
	Framebuffer *lineram.Framebuffer
}

// NewContext synthesises the three channels for the specification and
// creates the line buffers for the window.
func NewContext(spec specification.Spec, w specification.Window, pattern string) (*Context, error) {
	if err := spec.ValidateWindow(w); err != nil {
		return nil, curated.Errorf(BadContext, err)
	}

	ctx := &Context{
		Spec:   spec,
		Window: w,
	}

	f := spec.Frequencies

	var err error

	ctx.Pixel, err = synthesis.Synthesise(synthesis.Request{
		Source: f.Source,
		Target: f.Pixel,
		Bits:   spec.CounterBits,
		Pulse:  0.5,
	})
	if err != nil {
		return nil, curated.Errorf(BadContext, err)
	}
	ctx.Pixel.Group = PixelSlice

	ctx.Horizontal, err = synthesis.Lock(ctx.Pixel, spec.PixelsPerLine, synthesis.LockRequest{
		Source: f.Source,
		Target: f.Horizontal,
		Bits:   spec.CounterBits,
		Pulse:  spec.Horizontal.PulseFraction(),
	})
	if err != nil {
		return nil, curated.Errorf(BadContext, err)
	}
	ctx.Horizontal.Group = HorizontalSlice

	ctx.Vertical, err = synthesis.Lock(ctx.Horizontal, spec.Vertical.Whole, synthesis.LockRequest{
		Source:  f.Source,
		Target:  f.Vertical,
		Bits:    spec.CounterBits,
		Pulse:   spec.Vertical.PulseFraction(),
		Divider: spec.VerticalDivider,
	})
	if err != nil {
		return nil, curated.Errorf(BadContext, err)
	}
	ctx.Vertical.Group = VerticalSlice

	if ctx.Horizontal.Period16()%ctx.Vertical.Div16() != 0 {
		return nil, curated.Errorf(NotLockstep, ctx.Horizontal.Period16()>>4, ctx.Vertical.DivInt)
	}
	ctx.TicksPerLine = ctx.Horizontal.Period16() / ctx.Vertical.Div16()

	pclk, ok := ctx.Pixel.Ticks()
	if !ok {
		return nil, curated.Errorf(NotWholeTick)
	}
	ctx.Budget = spec.Slack() * pclk

	switch pattern {
	case preferences.PatternSolid, "":
		ctx.Store = lineram.NewTestPatternStore(w)
	case preferences.PatternBars:
		ctx.Store = lineram.NewTestPatternStore(w)
		ctx.Framebuffer = lineram.NewFramebuffer(w)
		ctx.Framebuffer.ColourBars()
	default:
		return nil, curated.Errorf(BadPattern, pattern)
	}

	return ctx, nil
}

func (ctx *Context) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s\n", ctx.Spec))
	s.WriteString(fmt.Sprintf("pixel:      %s (%.3fHz)\n", ctx.Pixel, ctx.Pixel.Frequency(ctx.Spec.Frequencies.Source)))
	s.WriteString(fmt.Sprintf("horizontal: %s (%.3fHz)\n", ctx.Horizontal, ctx.Horizontal.Frequency(ctx.Spec.Frequencies.Source)))
	s.WriteString(fmt.Sprintf("vertical:   %s (%.3fHz)\n", ctx.Vertical, ctx.Vertical.Frequency(ctx.Spec.Frequencies.Source)))
	s.WriteString(fmt.Sprintf("window:     %s\n", ctx.Window))
	s.WriteString(fmt.Sprintf("ticks per line: %d, budget: %d clocks", ctx.TicksPerLine, ctx.Budget))
	return s.String()
}
