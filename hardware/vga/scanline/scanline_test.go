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

package scanline_test

import (
	"testing"

	"github.com/vgapico/vgapico/curated"
	"github.com/vgapico/vgapico/hardware/vga/lineram"
	"github.com/vgapico/vgapico/hardware/vga/scanline"
	"github.com/vgapico/vgapico/hardware/vga/specification"
	"github.com/vgapico/vgapico/logger"
	"github.com/vgapico/vgapico/test"
)

const ticksPerLine = 78
const divisor = 2
const vsyncWrap = 40949

var window = specification.Spec640x480.Window

// hardware is a fake implementation of all the hardware interfaces used by
// the controller. it records the order in which the controller uses them.
type hardware struct {
	counter uint16
	now     uint64
	busy    bool

	events []string
	rearm  []uint16
}

func (h *hardware) Counter() uint16 {
	h.events = append(h.events, "counter")
	return h.counter
}

func (h *hardware) ClearIRQ() {
	h.events = append(h.events, "ack")
}

func (h *hardware) Rearm(src []uint16) {
	h.events = append(h.events, "rearm")
	h.rearm = src
}

func (h *hardware) Busy() bool {
	return h.busy
}

func (h *hardware) Now() uint64 {
	return h.now
}

func newController(t *testing.T, budget int) (*scanline.Controller, *lineram.Store, *hardware) {
	t.Helper()
	st := lineram.NewTestPatternStore(window)
	hw := &hardware{}
	ctrl, err := scanline.NewController(scanline.Config{
		TicksPerLine: ticksPerLine,
		Divisor:      divisor,
		Window:       window,
		Budget:       budget,
	}, st, hw, hw, hw, hw)
	test.DemandSuccess(t, err)
	ctrl.SetLogging(logger.Deny)
	return ctrl, st, hw
}

func TestLineIndexMonotonic(t *testing.T) {
	prev := scanline.LineIndex(0, ticksPerLine, divisor)
	test.ExpectEquality(t, prev, 0)

	for c := 1; c <= vsyncWrap; c++ {
		line := scanline.LineIndex(uint16(c), ticksPerLine, divisor)
		if line != prev && line != prev+1 {
			t.Fatalf("line index jumped from %d to %d at counter %d", prev, line, c)
		}
		prev = line
	}

	// the last line of the frame and the wrap back to zero
	test.ExpectEquality(t, prev, 262)
	test.ExpectEquality(t, scanline.LineIndex(0, ticksPerLine, divisor), 0)
}

func TestLineIndexPerLine(t *testing.T) {
	// every hsync period advances the vertical counter by 78. every other
	// period advances the line index
	for n := range 525 {
		c := uint16(n * ticksPerLine)
		test.DemandEquality(t, scanline.LineIndex(c, ticksPerLine, divisor), n/2, "period", n)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	test.ExpectEquality(t, scanline.Classify(0, window), lineram.Blank)
	test.ExpectEquality(t, scanline.Classify(39, window), lineram.Blank)
	test.ExpectEquality(t, scanline.Classify(40, window), lineram.Blank)
	test.ExpectEquality(t, scanline.Classify(41, window), lineram.Active)
	test.ExpectEquality(t, scanline.Classify(231, window), lineram.Active)
	test.ExpectEquality(t, scanline.Classify(232, window), lineram.Blank)
	test.ExpectEquality(t, scanline.Classify(262, window), lineram.Blank)
}

func TestBoundaryScenario(t *testing.T) {
	ctrl, st, hw := newController(t, 1430)

	expected := map[int]lineram.Class{
		39:  lineram.Blank,
		40:  lineram.Blank,
		41:  lineram.Active,
		231: lineram.Active,
		232: lineram.Blank,
	}

	for line, class := range expected {
		hw.counter = uint16(line * ticksPerLine * divisor)
		r := ctrl.OnLineTick(scanline.LineTick{})
		test.ExpectEquality(t, r.Line, line)
		test.ExpectEquality(t, r.Class, class, "line", line)

		tmpl := st.Template(class, line)
		for i := range st.Working {
			test.DemandEquality(t, st.Working[i], tmpl[i], "line", line, "index", i)
		}
	}
}

func TestOrderOfEffects(t *testing.T) {
	ctrl, st, hw := newController(t, 1430)

	hw.counter = 100 * ticksPerLine * divisor
	ctrl.OnLineTick(scanline.LineTick{})

	test.DemandEquality(t, len(hw.events), 3)
	test.ExpectEquality(t, hw.events[0], "ack")
	test.ExpectEquality(t, hw.events[1], "counter")
	test.ExpectEquality(t, hw.events[2], "rearm")

	// the transfer is re-armed with the working buffer
	test.ExpectEquality(t, &hw.rearm[0], &st.Working[0])
	test.ExpectEquality(t, len(hw.rearm), st.Len())
}

func TestStats(t *testing.T) {
	ctrl, _, hw := newController(t, 1430)

	for n := range 525 {
		hw.counter = uint16(n * ticksPerLine)
		ctrl.OnLineTick(scanline.LineTick{})
	}

	s := ctrl.Stats()
	test.ExpectEquality(t, s.Lines, uint64(525))
	test.ExpectEquality(t, s.Rearms, uint64(525))

	// lines 41 to 231 inclusive, two periods each
	test.ExpectEquality(t, s.Active, uint64(191*2))
	test.ExpectEquality(t, s.Blank, uint64(525-191*2))
	test.ExpectEquality(t, s.Overruns, uint64(0))
}

func TestOverrun(t *testing.T) {
	ctrl, _, hw := newController(t, 1430)

	hw.now = 1000
	r := ctrl.OnLineTick(scanline.LineTick{Clock: 0})
	test.ExpectEquality(t, r.Latency, 1000)
	test.ExpectFailure(t, r.Overrun)

	hw.now = 10000
	r = ctrl.OnLineTick(scanline.LineTick{Clock: 8000})
	test.ExpectEquality(t, r.Latency, 2000)
	test.ExpectSuccess(t, r.Overrun)

	s := ctrl.Stats()
	test.ExpectEquality(t, s.Overruns, uint64(1))
	test.ExpectEquality(t, s.MaxLatency, 2000)
}

func TestCollision(t *testing.T) {
	ctrl, _, hw := newController(t, 1430)

	hw.busy = true
	r := ctrl.OnLineTick(scanline.LineTick{})
	test.ExpectSuccess(t, r.Collision)
	test.ExpectEquality(t, ctrl.Stats().Collisions, uint64(1))
}

type stripes struct{}

func (stripes) Template(class lineram.Class, line int) lineram.Line {
	l := make(lineram.Line, 10)
	for i := range l {
		l[i] = uint16(line)
	}
	return l
}

func TestTemplateSource(t *testing.T) {
	ctrl, st, hw := newController(t, 1430)
	ctrl.SetTemplateSource(stripes{})

	hw.counter = 50 * ticksPerLine * divisor
	ctrl.OnLineTick(scanline.LineTick{})
	test.ExpectEquality(t, st.Working[0], uint16(50))
	test.ExpectEquality(t, st.Working[9], uint16(50))

	// the remainder of a short line is zero
	test.ExpectEquality(t, st.Working[10], uint16(0))
	test.ExpectEquality(t, st.Working[100], uint16(0))

	// restoring the store as the template source
	ctrl.SetTemplateSource(nil)
	ctrl.OnLineTick(scanline.LineTick{})
	test.ExpectEquality(t, st.Working[100], uint16(0xffff))
}

func TestBadConfig(t *testing.T) {
	st := lineram.NewTestPatternStore(window)
	hw := &hardware{}

	_, err := scanline.NewController(scanline.Config{TicksPerLine: 0, Divisor: 2, Window: window}, st, hw, hw, hw, hw)
	test.ExpectSuccess(t, curated.Is(err, scanline.BadConfig))

	_, err = scanline.NewController(scanline.Config{TicksPerLine: 78, Divisor: 0, Window: window}, st, hw, hw, hw, hw)
	test.ExpectSuccess(t, curated.Is(err, scanline.BadConfig))

	w := window
	w.ResolutionX = 100
	_, err = scanline.NewController(scanline.Config{TicksPerLine: 78, Divisor: 2, Window: w}, st, hw, hw, hw, hw)
	test.ExpectSuccess(t, curated.Is(err, scanline.BadConfig))

	_, err = scanline.NewController(scanline.Config{TicksPerLine: 78, Divisor: 2, Window: window}, st, nil, hw, hw, hw)
	test.ExpectSuccess(t, curated.Is(err, scanline.BadConfig))
}
