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

package pwm

import "strings"

// NumSlices is the number of PWM slices in an RP2040.
const NumSlices = 8

// Block is the set of PWM slices.
type Block struct {
	slices [NumSlices]*Slice

	// number of source clocks since the block was created
	clock uint64
}

// NewBlock is the preferred method of initialisation for the Block type.
func NewBlock() *Block {
	blk := &Block{}
	for i := range blk.slices {
		blk.slices[i] = NewSlice(i)
	}
	return blk
}

func (blk *Block) String() string {
	s := strings.Builder{}
	for _, sl := range blk.slices {
		if sl.enabled {
			s.WriteString(sl.String())
			s.WriteString("\n")
		}
	}
	return s.String()
}

// Slice returns the numbered slice. Panics if the number is out of range.
func (blk *Block) Slice(n int) *Slice {
	return blk.slices[n]
}

// SetMaskEnabled sets the enabled state of every slice at once. A slice is
// enabled if its bit is set in the mask. Slices enabled by the same call
// start counting on the same source clock.
func (blk *Block) SetMaskEnabled(mask uint32) {
	for i, sl := range blk.slices {
		sl.enabled = mask&(1<<i) != 0
	}
}

// Enable a single slice. Slices enabled with separate calls to Enable() are
// only in phase if no source clocks elapse between the calls.
func (blk *Block) Enable(n int, enabled bool) {
	blk.slices[n].enabled = enabled
}

// Tick advances every enabled slice by one source clock. The returned value
// has a bit set for each slice that wrapped.
func (blk *Block) Tick() uint32 {
	blk.clock++

	var wraps uint32
	for i, sl := range blk.slices {
		if sl.Tick() {
			wraps |= 1 << i
		}
	}
	return wraps
}

// Clock returns the number of source clocks since the block was created.
func (blk *Block) Clock() uint64 {
	return blk.clock
}

// IRQ returns a mask of the slices with a pending wrap interrupt.
func (blk *Block) IRQ() uint32 {
	var irq uint32
	for i, sl := range blk.slices {
		if sl.irqPending {
			irq |= 1 << i
		}
	}
	return irq
}

// PhaseError returns the phase of the horizontal sync relative to the pixel
// clock and of the vertical sync relative to the horizontal sync. Values
// are in sixteenths of a source clock. Both values are zero if the three
// slices were started on the same source clock and are phase-locked.
func PhaseError(pclk, hsync, vsync *Slice) (int, int) {
	mod := func(a, b int) int {
		if b == 0 {
			return 0
		}
		return ((a % b) + b) % b
	}

	h := mod(hsync.Phase16()-pclk.Phase16(), pclk.Period16())
	v := mod(vsync.Phase16()-hsync.Phase16(), hsync.Period16())
	return h, v
}
