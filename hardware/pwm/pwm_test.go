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

package pwm_test

import (
	"testing"

	"github.com/vgapico/vgapico/hardware/pwm"
	"github.com/vgapico/vgapico/hardware/vga/synthesis"
	"github.com/vgapico/vgapico/test"
)

var pclk = synthesis.Channel{DivInt: 1, Wrap: 21, Level: 11}
var hsync = synthesis.Channel{DivInt: 1, Wrap: 8579, Level: 7550}
var vsync = synthesis.Channel{DivInt: 110, Wrap: 40949, Level: 40794}

func TestSliceWrap(t *testing.T) {
	s := pwm.NewSlice(0)
	s.Configure(pclk)
	s.SetIRQEnabled(true)

	// a disabled slice does not count
	test.ExpectFailure(t, s.Tick())
	test.ExpectEquality(t, s.Counter(), 0)

	blk := pwm.NewBlock()
	blk.Slice(0).Configure(pclk)
	blk.SetMaskEnabled(0b001)

	var wraps int
	for i := 1; i <= 22*10; i++ {
		if blk.Tick()&0b001 != 0 {
			wraps++
			test.ExpectEquality(t, i%22, 0, "clock", i)
		}
	}
	test.ExpectEquality(t, wraps, 10)
	test.ExpectEquality(t, blk.Clock(), uint64(220))
}

func TestSliceOutput(t *testing.T) {
	blk := pwm.NewBlock()
	s := blk.Slice(1)
	s.Configure(hsync)
	blk.SetMaskEnabled(0b010)

	// the output is high for the first 7550 clocks of the period and low for
	// the remaining 1030
	var high, low int
	for range 8580 {
		if s.Output() {
			high++
		} else {
			low++
		}
		blk.Tick()
	}
	test.ExpectEquality(t, high, 7550)
	test.ExpectEquality(t, low, 1030)
	test.ExpectEquality(t, s.Counter(), 0)
}

func TestFractionalDivider(t *testing.T) {
	blk := pwm.NewBlock()
	s := blk.Slice(0)

	// divider of 1.5 and a wrap of 9 gives a period of 15 clocks
	s.Configure(synthesis.Channel{DivInt: 1, DivFrac: 8, Wrap: 9, Level: 5})
	test.ExpectEquality(t, s.String(), "slice 0: div=1+8/16 top=9 level=5 ctr=0")
	blk.SetMaskEnabled(0b001)

	var wrapAt []int
	for i := 1; i <= 45; i++ {
		if blk.Tick() != 0 {
			wrapAt = append(wrapAt, i)
		}
	}
	test.DemandEquality(t, len(wrapAt), 3)
	test.ExpectEquality(t, wrapAt[0], 15)
	test.ExpectEquality(t, wrapAt[1], 30)
	test.ExpectEquality(t, wrapAt[2], 45)
}

func TestIRQ(t *testing.T) {
	blk := pwm.NewBlock()
	s := blk.Slice(1)
	s.Configure(pclk)
	blk.SetMaskEnabled(0b010)

	// no interrupt unless enabled
	for range 22 {
		blk.Tick()
	}
	test.ExpectFailure(t, s.IRQPending())

	s.SetIRQEnabled(true)
	for range 22 {
		blk.Tick()
	}
	test.ExpectSuccess(t, s.IRQPending())
	test.ExpectEquality(t, blk.IRQ(), uint32(0b010))

	s.ClearIRQ()
	test.ExpectFailure(t, s.IRQPending())
	test.ExpectEquality(t, blk.IRQ(), uint32(0))
}

func startedTogether() *pwm.Block {
	blk := pwm.NewBlock()
	blk.Slice(0).Configure(pclk)
	blk.Slice(1).Configure(hsync)
	blk.Slice(2).Configure(vsync)
	blk.SetMaskEnabled(0b111)
	return blk
}

func TestPhaseLocked(t *testing.T) {
	blk := startedTogether()

	// check phase at irregular intervals over more than one frame
	for i := range 4600000 {
		blk.Tick()
		if i%9973 == 0 {
			h, v := pwm.PhaseError(blk.Slice(0), blk.Slice(1), blk.Slice(2))
			test.DemandEquality(t, h, 0, "clock", i)
			test.DemandEquality(t, v, 0, "clock", i)
		}
	}
}

func TestPhaseError(t *testing.T) {
	blk := pwm.NewBlock()
	blk.Slice(0).Configure(pclk)
	blk.Slice(1).Configure(hsync)
	blk.Slice(2).Configure(vsync)

	// enabling the slices one at a time with source clocks between the
	// enables leaves them out of phase
	blk.Enable(0, true)
	blk.Tick()
	blk.Tick()
	blk.Tick()
	blk.Enable(1, true)
	blk.Tick()
	blk.Enable(2, true)

	for range 10000 {
		blk.Tick()
	}

	h, v := pwm.PhaseError(blk.Slice(0), blk.Slice(1), blk.Slice(2))
	test.ExpectEquality(t, h, (22-3)*16)
	test.ExpectEquality(t, v, 8580*16-16)
}
