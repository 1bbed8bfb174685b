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
	"github.com/vgapico/vgapico/hardware/vga/scanline"
	"github.com/vgapico/vgapico/hardware/vga/signal"
	"github.com/vgapico/vgapico/logger"
)

// Step the generator by one source clock.
//
// The order of events on every clock is: the PWM block ticks; a wrap of the
// pixel slice paces the DMA channel; a wrap of the horizontal slice raises
// the interrupt; the handler is called if its dispatch time has arrived;
// and finally the observers are sent the pin levels.
func (gen *Generator) Step() {
	wraps := gen.PWM.Tick()
	now := gen.PWM.Clock()

	if wraps&(1<<PixelSlice) != 0 {
		gen.DMA.Pace()
	}

	if wraps&(1<<HorizontalSlice) != 0 {
		gen.lines++
		if gen.irqScheduled {
			gen.missed++
			logger.Logf(logger.Allow, "generator", "line tick at clock %d coalesced with pending tick", now)
		} else {
			gen.irqScheduled = true
			gen.irqRaised = now
			gen.irqDispatch = now + gen.latency()
		}
	}

	if gen.irqScheduled && now >= gen.irqDispatch {
		gen.irqScheduled = false
		gen.last = gen.Controller.OnLineTick(scanline.LineTick{
			Clock:   gen.irqRaised,
			Counter: gen.PWM.Slice(HorizontalSlice).Counter(),
		})
		if gen.onLine != nil {
			gen.onLine(gen.last)
		}
	}

	if wraps&(1<<VerticalSlice) != 0 {
		gen.frames++
	}

	if len(gen.observers) > 0 {
		l := signal.Levels{
			Clock:      now,
			PixelClock: gen.PWM.Slice(PixelSlice).Output(),
			HSync:      gen.PWM.Slice(HorizontalSlice).Output(),
			VSync:      gen.PWM.Slice(VerticalSlice).Output(),
			Data:       gen.DMA.Last(),
		}
		for _, o := range gen.observers {
			o.Signal(l)
		}
	}
}
