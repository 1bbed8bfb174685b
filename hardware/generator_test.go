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

package hardware_test

import (
	"os"
	"slices"
	"testing"

	"github.com/vgapico/vgapico/curated"
	"github.com/vgapico/vgapico/govern"
	"github.com/vgapico/vgapico/hardware"
	"github.com/vgapico/vgapico/hardware/preferences"
	"github.com/vgapico/vgapico/hardware/vga/lineram"
	"github.com/vgapico/vgapico/hardware/vga/scanline"
	"github.com/vgapico/vgapico/hardware/vga/specification"
	"github.com/vgapico/vgapico/logger"
	"github.com/vgapico/vgapico/test"
)

// newPreferences creates preferences in a temporary resource directory so
// that the tests never touch the user's own preferences.
func newPreferences(t *testing.T, latency int, jitter int) *preferences.Preferences {
	t.Helper()
	t.Chdir(t.TempDir())
	test.DemandSuccess(t, os.Mkdir(".vgapico", 0700))

	prf, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, prf.IRQLatency.Set(latency))
	test.DemandSuccess(t, prf.IRQJitter.Set(jitter))
	test.DemandSuccess(t, prf.IRQSeed.Set(1))
	prf.Reseed()

	return prf
}

func newGenerator(t *testing.T, prf *preferences.Preferences) *hardware.Generator {
	t.Helper()
	gen, err := hardware.NewGenerator(specification.Spec640x480, nil, prf)
	test.DemandSuccess(t, err)
	return gen
}

func TestContext(t *testing.T) {
	spec := specification.Spec640x480

	ctx, err := hardware.NewContext(spec, spec.Window, preferences.PatternSolid)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, ctx.Pixel.Wrap, 21)
	test.ExpectEquality(t, ctx.Pixel.Level, 11)
	test.ExpectEquality(t, ctx.Horizontal.Wrap, 8579)
	test.ExpectEquality(t, ctx.Vertical.DivInt, 110)
	test.ExpectEquality(t, ctx.Vertical.Wrap, 40949)
	test.ExpectEquality(t, ctx.TicksPerLine, 78)
	test.ExpectEquality(t, ctx.Budget, 1430)
	test.ExpectEquality(t, ctx.Store.Len(), 325)
	test.ExpectSuccess(t, ctx.Framebuffer == nil)

	test.ExpectEquality(t, ctx.Pixel.Group, hardware.SliceForPin(hardware.PixelClockPin))
	test.ExpectEquality(t, ctx.Horizontal.Group, 1)
	test.ExpectEquality(t, ctx.Vertical.Group, 0)

	ctx, err = hardware.NewContext(spec, spec.Window, preferences.PatternBars)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, ctx.Framebuffer != nil)

	_, err = hardware.NewContext(spec, spec.Window, "plaid")
	test.ExpectSuccess(t, curated.Is(err, hardware.BadPattern))

	w := spec.Window
	w.Offset = 300
	_, err = hardware.NewContext(spec, w, preferences.PatternSolid)
	test.ExpectSuccess(t, curated.Is(err, hardware.BadContext))
}

// the working buffer must hold the correct template after every
// invocation of the handler, even when the handler takes the whole of the
// budget
func TestWorkingMatchesTemplate(t *testing.T) {
	prf := newPreferences(t, 1430, 0)
	gen := newGenerator(t, prf)

	var mismatches int
	var results int
	gen.OnLine(func(r scanline.Result) {
		results++
		tmpl := gen.Ctx.Store.Template(r.Class, r.Line)
		if !slices.Equal(gen.Ctx.Store.Working, tmpl) {
			mismatches++
		}
		test.ExpectEquality(t, r.Latency, 1430)
		test.ExpectEquality(t, r.Overrun, false)
		test.ExpectEquality(t, r.Collision, false)
	})

	test.DemandSuccess(t, gen.RunForFrameCount(1, nil))
	test.ExpectEquality(t, mismatches, 0)
	test.ExpectEquality(t, results, 524)
	test.ExpectEquality(t, gen.Pending(), true)

	stats := gen.Controller.Stats()
	test.ExpectEquality(t, stats.Overruns, uint64(0))
	test.ExpectEquality(t, stats.Collisions, uint64(0))
	test.ExpectEquality(t, stats.MaxLatency, 1430)
}

func TestOneRearmPerLine(t *testing.T) {
	prf := newPreferences(t, 0, 0)
	gen := newGenerator(t, prf)

	test.DemandSuccess(t, gen.RunForFrameCount(2, nil))

	test.ExpectEquality(t, gen.Frames(), 2)
	test.ExpectEquality(t, gen.Lines(), uint64(1050))
	test.ExpectEquality(t, gen.Missed(), uint64(0))
	test.ExpectEquality(t, gen.Pending(), false)

	stats := gen.Controller.Stats()
	test.ExpectEquality(t, stats.Rearms, gen.Lines())
	test.ExpectEquality(t, gen.DMA.Arms(), gen.Lines())

	// every physical line of the window is active, two for each line index
	test.ExpectEquality(t, stats.Active, uint64(382*2))
	test.ExpectEquality(t, stats.Blank, uint64(1050-382*2))
}

func TestOneRearmPerLineWithLatency(t *testing.T) {
	prf := newPreferences(t, 486, 200)
	gen := newGenerator(t, prf)

	test.DemandSuccess(t, gen.RunForFrameCount(2, nil))

	// the handler for the last wrap is still waiting to be called
	test.ExpectEquality(t, gen.Pending(), true)
	test.ExpectEquality(t, gen.Controller.Stats().Rearms, gen.Lines()-1)
	test.ExpectEquality(t, gen.Missed(), uint64(0))
	test.ExpectEquality(t, gen.Controller.Stats().Overruns, uint64(0))
}

func TestTransfers(t *testing.T) {
	prf := newPreferences(t, 0, 0)
	gen := newGenerator(t, prf)

	test.DemandSuccess(t, gen.RunForFrameCount(1, nil))

	// the transfer of the final line has only just been armed
	test.ExpectEquality(t, gen.DMA.Transfers(), uint64(524*325))
	test.ExpectEquality(t, gen.DMA.Busy(), true)
	test.ExpectEquality(t, gen.DMA.Remaining(), 325)
}

func TestJitterBeyondBudget(t *testing.T) {
	prf := newPreferences(t, 0, 3000)
	gen := newGenerator(t, prf)
	gen.Controller.SetLogging(logger.Deny)

	test.DemandSuccess(t, gen.RunForFrameCount(1, nil))

	stats := gen.Controller.Stats()
	test.ExpectSuccess(t, stats.Overruns > 0)
	test.ExpectSuccess(t, stats.Collisions > 0)
	test.ExpectSuccess(t, stats.MaxLatency > 1430)
	test.ExpectEquality(t, gen.Missed(), uint64(0))
}

func TestMissedLines(t *testing.T) {
	prf := newPreferences(t, 9000, 0)
	gen := newGenerator(t, prf)
	gen.Controller.SetLogging(logger.Deny)

	test.DemandSuccess(t, gen.RunForFrameCount(1, nil))

	test.ExpectSuccess(t, gen.Missed() > 0)
	test.ExpectEquality(t, gen.Controller.Stats().Rearms+gen.Missed()+1, gen.Lines())
}

func TestPhase(t *testing.T) {
	prf := newPreferences(t, 0, 0)

	gen := newGenerator(t, prf)
	gen.Start()
	for range 100000 {
		gen.Step()
	}
	h, v := gen.PhaseError()
	test.ExpectEquality(t, h, 0)
	test.ExpectEquality(t, v, 0)

	gen = newGenerator(t, prf)
	gen.Stagger(5)
	for range 100000 {
		gen.Step()
	}
	h, _ = gen.PhaseError()
	test.ExpectInequality(t, h, 0)
}

func TestBarsPattern(t *testing.T) {
	prf := newPreferences(t, 0, 0)
	test.DemandSuccess(t, prf.Pattern.Set(preferences.PatternBars))
	gen := newGenerator(t, prf)

	var active int
	gen.OnLine(func(r scanline.Result) {
		if r.Class != lineram.Active {
			return
		}
		active++
		tmpl := gen.Ctx.Framebuffer.Template(r.Class, r.Line)
		test.ExpectSuccess(t, slices.Equal(gen.Ctx.Store.Working, tmpl))
	})

	test.DemandSuccess(t, gen.RunForFrameCount(1, nil))
	test.ExpectEquality(t, active, 382)
}

func TestRun(t *testing.T) {
	prf := newPreferences(t, 0, 0)
	gen := newGenerator(t, prf)

	var checks int
	err := gen.Run(func() (govern.State, error) {
		checks++
		if checks == 10 {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, gen.Lines(), uint64(10))

	err = gen.Run(func() (govern.State, error) {
		return govern.State(100), nil
	})
	test.ExpectSuccess(t, curated.Is(err, hardware.UnsupportedState))
}

func TestIdle(t *testing.T) {
	prf := newPreferences(t, 0, 0)
	gen := newGenerator(t, prf)

	var idle int
	gen.Idle = func() {
		idle++
	}

	var lastFrame int
	err := gen.RunForFrameCount(2, func(frame int) (govern.State, error) {
		lastFrame = frame
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, idle, 2)
	test.ExpectEquality(t, lastFrame, 2)
}
