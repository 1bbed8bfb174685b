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

//go:build tinygo && rp2040

package rp2040

import (
	"runtime/volatile"

	"github.com/vgapico/vgapico/hardware/vga/synthesis"
)

// Slice is a PWM slice. It satisfies the scanline.VerticalCounter and
// scanline.Acknowledger interfaces.
type Slice struct {
	number int

	csr *volatile.Register32
	div *volatile.Register32
	ctr *volatile.Register32
	cc  *volatile.Register32
	top *volatile.Register32
}

// NewSlice is the preferred method of initialisation for the Slice type.
func NewSlice(number int) *Slice {
	base := PWMSliceAddress(number)
	return &Slice{
		number: number,
		csr:    register(base + pwmCSR),
		div:    register(base + pwmDIV),
		ctr:    register(base + pwmCTR),
		cc:     register(base + pwmCC),
		top:    register(base + pwmTOP),
	}
}

// Configure the slice from the synthesised channel and hand the pin to the
// PWM peripheral. The slice is left disabled with its counter at zero.
func (s *Slice) Configure(ch synthesis.Channel, pin int) {
	s.csr.Set(0)
	s.div.Set(uint32(ch.Div16()))
	s.top.Set(uint32(ch.Wrap))
	s.cc.Set(CompareValue(s.cc.Get(), ch.Level, PinChannelB(pin)))
	s.ctr.Set(0)
	setFunction(pin, gpioFuncPWM)
}

// Counter returns the live value of the counter.
func (s *Slice) Counter() uint16 {
	return uint16(s.ctr.Get())
}

// ClearIRQ acknowledges the wrap interrupt of the slice.
func (s *Slice) ClearIRQ() {
	register(pwmINTR).Set(1 << s.number)
}

// SetIRQEnabled enables or disables the wrap interrupt of the slice.
func (s *Slice) SetIRQEnabled(enabled bool) {
	if enabled {
		register(pwmINTE).SetBits(1 << s.number)
	} else {
		register(pwmINTE).ClearBits(1 << s.number)
	}
}

// SetMaskEnabled enables the slices in the mask with a single register
// write. Slices enabled this way start on the same clock.
func SetMaskEnabled(mask uint32) {
	register(pwmEN).Set(mask)
}
