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
	"github.com/vgapico/vgapico/hardware/dma"
	"github.com/vgapico/vgapico/hardware/preferences"
	"github.com/vgapico/vgapico/hardware/pwm"
	"github.com/vgapico/vgapico/hardware/vga/scanline"
	"github.com/vgapico/vgapico/hardware/vga/signal"
	"github.com/vgapico/vgapico/hardware/vga/specification"
	"github.com/vgapico/vgapico/logger"
)

// Generator is the root of the simulation.
type Generator struct {
	Prefs *preferences.Preferences
	Ctx   *Context

	PWM        *pwm.Block
	DMA        *dma.Channel
	Controller *scanline.Controller

	observers []signal.Observer
	onLine    func(scanline.Result)

	// interrupt dispatch. the wrap of the horizontal slice raises the
	// interrupt and the handler is called after the simulated latency
	irqScheduled bool
	irqRaised    uint64
	irqDispatch  uint64

	// number of wraps of the horizontal slice
	lines uint64

	// wraps of the horizontal slice that happened while an earlier wrap was
	// still waiting for the handler. the interrupt flag is a single bit so
	// the handler only runs once for both
	missed uint64

	// number of wraps of the vertical slice
	frames int

	started bool

	// called once per frame. it must not touch the context
	Idle func()

	// result of the most recent handler invocation
	last scanline.Result
}

type discard struct{}

func (_ discard) Push(_ uint16) {}

// NewGenerator is the preferred method of initialisation for the Generator
// type. The sink receives every word moved by the DMA channel and can be
// nil. If prf is nil then the preferences are loaded from disk.
func NewGenerator(spec specification.Spec, sink dma.Sink, prf *preferences.Preferences) (*Generator, error) {
	var err error

	if prf == nil {
		prf, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	if sink == nil {
		sink = discard{}
	}

	gen := &Generator{
		Prefs: prf,
		PWM:   pwm.NewBlock(),
		DMA:   &dma.Channel{},
	}

	gen.Ctx, err = NewContext(spec, prf.Window(spec), prf.Pattern.String())
	if err != nil {
		return nil, err
	}

	gen.PWM.Slice(PixelSlice).Configure(gen.Ctx.Pixel)
	gen.PWM.Slice(HorizontalSlice).Configure(gen.Ctx.Horizontal)
	gen.PWM.Slice(VerticalSlice).Configure(gen.Ctx.Vertical)
	gen.PWM.Slice(HorizontalSlice).SetIRQEnabled(true)

	err = gen.DMA.Configure(dma.Config{
		DataSize:       dma.Size16,
		ReadIncrement:  true,
		WriteIncrement: false,
		DREQ:           PixelSlice,
	}, sink, gen.Ctx.Store.Working, gen.Ctx.Store.Len(), false)
	if err != nil {
		return nil, err
	}

	gen.Controller, err = scanline.NewController(scanline.Config{
		TicksPerLine: gen.Ctx.TicksPerLine,
		Divisor:      spec.LineDivisor,
		Window:       gen.Ctx.Window,
		Budget:       gen.Ctx.Budget,
	}, gen.Ctx.Store, gen.PWM.Slice(VerticalSlice), gen.PWM.Slice(HorizontalSlice), gen.DMA, gen)
	if err != nil {
		return nil, err
	}

	if gen.Ctx.Framebuffer != nil {
		gen.Controller.SetTemplateSource(gen.Ctx.Framebuffer)
	}

	logger.Logf(logger.Allow, "generator", "pixel %s", gen.Ctx.Pixel)
	logger.Logf(logger.Allow, "generator", "horizontal %s", gen.Ctx.Horizontal)
	logger.Logf(logger.Allow, "generator", "vertical %s", gen.Ctx.Vertical)

	return gen, nil
}

// Start the three slices on the same source clock.
func (gen *Generator) Start() {
	gen.PWM.SetMaskEnabled(EnableMask)
	gen.started = true
}

// Stagger starts the pixel slice and then the two sync slices after the
// number of source clocks. This is how the generator behaves if the slices
// are enabled one at a time and the resulting phase error can be seen with
// PhaseError().
func (gen *Generator) Stagger(clocks int) {
	gen.PWM.Enable(PixelSlice, true)
	for range clocks {
		gen.Step()
	}
	gen.PWM.Enable(HorizontalSlice, true)
	gen.PWM.Enable(VerticalSlice, true)
	gen.started = true

	logger.Logf(logger.Allow, "generator", "sync slices started %d clocks after pixel slice", clocks)
}

// Started returns true if Start() or Stagger() has been called.
func (gen *Generator) Started() bool {
	return gen.started
}

// Now implements the scanline.Clock interface.
func (gen *Generator) Now() uint64 {
	return gen.PWM.Clock()
}

// PhaseError returns the phase of the horizontal slice relative to the
// pixel slice and of the vertical slice relative to the horizontal slice.
// See pwm.PhaseError().
func (gen *Generator) PhaseError() (int, int) {
	return pwm.PhaseError(gen.PWM.Slice(PixelSlice), gen.PWM.Slice(HorizontalSlice), gen.PWM.Slice(VerticalSlice))
}

// AddObserver adds an observer of the output pins. Observers are called on
// every source clock.
func (gen *Generator) AddObserver(o signal.Observer) {
	gen.observers = append(gen.observers, o)
}

// OnLine sets a function to be called after every invocation of the
// handler.
func (gen *Generator) OnLine(f func(scanline.Result)) {
	gen.onLine = f
}

// Lines returns the number of wraps of the horizontal slice.
func (gen *Generator) Lines() uint64 {
	return gen.lines
}

// Missed returns the number of wraps of the horizontal slice that did not
// result in an invocation of the handler.
func (gen *Generator) Missed() uint64 {
	return gen.missed
}

// Frames returns the number of wraps of the vertical slice.
func (gen *Generator) Frames() int {
	return gen.frames
}

// Pending returns true if the handler is waiting to be called.
func (gen *Generator) Pending() bool {
	return gen.irqScheduled
}

// Last returns the result of the most recent invocation of the handler.
func (gen *Generator) Last() scanline.Result {
	return gen.last
}

// latency returns the source clocks between the interrupt being raised and
// the handler reading the clock.
func (gen *Generator) latency() uint64 {
	l := gen.Prefs.IRQLatency.Get().(int)
	if j := gen.Prefs.IRQJitter.Get().(int); j > 0 {
		l += gen.Prefs.RandSrc.IntN(j + 1)
	}
	if l < 0 {
		l = 0
	}
	return uint64(l)
}
