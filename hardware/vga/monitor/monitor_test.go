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

package monitor_test

import (
	"image"
	"os"
	"testing"

	"github.com/vgapico/vgapico/hardware"
	"github.com/vgapico/vgapico/hardware/preferences"
	"github.com/vgapico/vgapico/hardware/vga/coords"
	"github.com/vgapico/vgapico/hardware/vga/lineram"
	"github.com/vgapico/vgapico/hardware/vga/monitor"
	"github.com/vgapico/vgapico/hardware/vga/signal"
	"github.com/vgapico/vgapico/hardware/vga/specification"
	"github.com/vgapico/vgapico/logger"
	"github.com/vgapico/vgapico/test"
)

func newGenerator(t *testing.T, mon *monitor.Monitor) *hardware.Generator {
	t.Helper()
	t.Chdir(t.TempDir())
	test.DemandSuccess(t, os.Mkdir(".vgapico", 0700))

	prf, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, prf.IRQLatency.Set(486))

	gen, err := hardware.NewGenerator(specification.Spec640x480, mon, prf)
	test.DemandSuccess(t, err)
	gen.AddObserver(mon)
	return gen
}

func receive(t *testing.T, mon *monitor.Monitor) *image.RGBA {
	t.Helper()
	select {
	case img := <-mon.Frames():
		return img
	default:
		t.Fatalf("no frame")
	}
	return nil
}

func TestFrame(t *testing.T) {
	spec := specification.Spec640x480
	mon := monitor.NewMonitor(spec)
	gen := newGenerator(t, mon)

	test.DemandSuccess(t, gen.RunForFrameCount(1, nil))

	img := receive(t, mon)
	test.ExpectEquality(t, img.Bounds().Dx(), 390)
	test.ExpectEquality(t, img.Bounds().Dy(), 525)
	test.ExpectEquality(t, mon.Published(), uint64(1))
	test.ExpectEquality(t, mon.Dropped(), uint64(0))
	test.ExpectEquality(t, mon.SyncLoss(), uint64(0))
	test.ExpectSuccess(t, mon.LastFrame() == img)

	white := lineram.Colour(0xffff)
	black := lineram.Colour(0x0000)

	// every line index covers two lines of the frame. the window is line
	// indexes 41 to 231 inclusive
	test.ExpectEquality(t, img.RGBAAt(200, 80), black)
	test.ExpectEquality(t, img.RGBAAt(200, 81), black)
	test.ExpectEquality(t, img.RGBAAt(200, 82), white)
	test.ExpectEquality(t, img.RGBAAt(200, 83), white)
	test.ExpectEquality(t, img.RGBAAt(200, 463), white)
	test.ExpectEquality(t, img.RGBAAt(200, 464), black)

	// the transfer starts at the first pixel clock after the handler has
	// re-armed the channel. the handler latency is 486 source clocks, which
	// is just over 22 pixel clocks
	test.ExpectEquality(t, img.RGBAAt(67, 200), black)
	test.ExpectEquality(t, img.RGBAAt(68, 200), white)
	test.ExpectEquality(t, img.RGBAAt(346, 200), white)
	test.ExpectEquality(t, img.RGBAAt(347, 200), black)

	test.ExpectEquality(t, mon.Coords(), coords.Coords{Frame: 1, Scanline: 0, Clock: 1})
}

func TestDroppedFrames(t *testing.T) {
	mon := monitor.NewMonitor(specification.Spec640x480)
	gen := newGenerator(t, mon)

	test.DemandSuccess(t, gen.RunForFrameCount(3, nil))
	test.ExpectEquality(t, mon.Published(), uint64(3))
	test.ExpectEquality(t, mon.Dropped(), uint64(2))

	// the queued frame is the most recent one
	img := receive(t, mon)
	test.ExpectSuccess(t, mon.LastFrame() == img)
}

// sends a single source clock of levels to the monitor
type pins struct {
	mon   *monitor.Monitor
	clock uint64
}

func (p *pins) set(pclk, hsync, vsync bool) {
	p.clock++
	p.mon.Signal(signal.Levels{
		Clock:      p.clock,
		PixelClock: pclk,
		HSync:      hsync,
		VSync:      vsync,
	})
}

// line sends a line of n pixel clocks ending with a horizontal sync pulse
func (p *pins) line(n int, vsync bool) {
	for range n {
		p.set(false, true, vsync)
		p.set(true, true, vsync)
	}
	p.set(false, false, vsync)
}

func TestSyncLoss(t *testing.T) {
	spec := specification.Spec640x480
	mon := monitor.NewMonitor(spec)
	mon.SetLogging(logger.Deny)

	p := &pins{mon: mon}

	// the first frame is partial and is not counted as a loss of sync
	for range 10 {
		p.line(spec.PixelsPerLine, true)
	}
	p.line(spec.PixelsPerLine, false)
	p.set(false, true, true)
	test.ExpectEquality(t, mon.SyncLoss(), uint64(0))
	test.ExpectEquality(t, mon.Coords().Frame, 1)

	// a full frame of lines that are too short
	for range spec.Vertical.Whole - 1 {
		p.line(spec.PixelsPerLine-1, true)
	}
	p.line(spec.PixelsPerLine-1, false)
	p.set(false, true, true)
	test.ExpectEquality(t, mon.SyncLoss(), uint64(1))
	test.ExpectEquality(t, mon.Published(), uint64(0))
}

// frame sends a frame of the number of lines with the word on the pixel bus.
// the frame ends with the rising edge of the vertical sync
func (p *pins) frame(lines int, word uint16) {
	spec := specification.Spec640x480
	p.mon.Push(word)
	for range lines - 1 {
		p.line(spec.PixelsPerLine, true)
	}
	p.line(spec.PixelsPerLine, false)
	p.set(false, true, true)
}

func TestQueuedFrameNotRedrawn(t *testing.T) {
	spec := specification.Spec640x480
	mon := monitor.NewMonitor(spec)
	p := &pins{mon: mon}

	// partial frame to acquire sync
	p.frame(11, 0x0000)

	// the frames are never received so each frame replaces the one before
	// it on the channel
	for i := range 6 {
		p.frame(spec.Vertical.Whole, uint16(0x1111*(i+1)))
		test.ExpectEquality(t, mon.Published(), uint64(i+1))
		test.ExpectEquality(t, mon.Dropped(), uint64(i))
	}
	test.ExpectEquality(t, mon.SyncLoss(), uint64(0))

	// draw part of the next frame before receiving the queued one
	p.mon.Push(0x7777)
	for range 20 {
		p.line(spec.PixelsPerLine, true)
	}

	img := receive(t, mon)
	test.ExpectSuccess(t, mon.LastFrame() == img)
	test.ExpectEquality(t, img.RGBAAt(10, 10), lineram.Colour(0x6666))
	test.ExpectEquality(t, img.RGBAAt(10, 500), lineram.Colour(0x6666))
}
