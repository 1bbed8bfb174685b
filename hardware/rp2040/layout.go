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

// Package rp2040 drives the generator on the real device. It is the register
// level counterpart of the simulated pwm and dma packages: the slices and the
// transfer channel satisfy the same interfaces as their simulated
// equivalents and the line handler is the same scanline.Controller.
//
// Only this file builds outside of TinyGo. It holds the register layout and
// the arithmetic that decides what is written to the registers, so that it
// can be tested on the host.
package rp2040

import (
	"fmt"
	"math"

	"github.com/vgapico/vgapico/curated"
)

// Sentinal error patterns.
const (
	NoPLL       = "rp2040: no pll configuration for %v"
	BadFirmware = "rp2040: %v"
)

// register blocks.
const (
	clocksBase  = 0x40008000
	ioBank0Base = 0x40014000
	pllSysBase  = 0x40028000
	pwmBase     = 0x40050000
	vregBase    = 0x40064000
	dmaBase     = 0x50000000
)

// pwm slice registers. offsets are from the start of the slice.
const (
	pwmSliceStride = 0x14

	pwmCSR = 0x00
	pwmDIV = 0x04
	pwmCTR = 0x08
	pwmCC  = 0x0c
	pwmTOP = 0x10

	pwmEN   = pwmBase + 0xa0
	pwmINTR = pwmBase + 0xa4
	pwmINTE = pwmBase + 0xa8

	pwmCSREnable = 1 << 0
)

// dma channel registers. offsets are from the start of the channel.
const (
	dmaChannelStride = 0x40

	dmaReadAddr        = 0x00
	dmaWriteAddr       = 0x04
	dmaTransCount      = 0x08
	dmaCtrlTrig        = 0x0c
	dmaAl1Ctrl         = 0x10
	dmaAl3ReadAddrTrig = 0x3c

	dmaCtrlEnable       = 1 << 0
	dmaCtrlSizeHalfword = 1 << 2
	dmaCtrlIncrRead     = 1 << 4
	dmaCtrlChainToShift = 11
	dmaCtrlTreqSelShift = 15
	dmaCtrlBusy         = 1 << 24
	dreqPWMWrap0        = 0x18
	maxDMAChannel       = 11
)

// pll, clock and regulator registers.
const (
	pllCS       = pllSysBase + 0x0
	pllPWR      = pllSysBase + 0x4
	pllFBDivInt = pllSysBase + 0x8
	pllPRIM     = pllSysBase + 0xc

	pllCSLock      = 1 << 31
	pllPWRPD       = 1 << 0
	pllPWRDSMPD    = 1 << 2
	pllPWRPostDivD = 1 << 3
	pllPWRVCOPD    = 1 << 5

	clkSysCtrl     = clocksBase + 0x3c
	clkSysSelected = clocksBase + 0x44

	vregVSelShift = 4
	vregVSelMask  = 0xf << vregVSelShift

	// 1.30V. the highest setting of the regulator
	vregVSel130 = 0xf
)

// GPIO function select for the PWM peripheral.
const gpioFuncPWM = 4

// PWMSliceAddress returns the address of the first register of the slice.
func PWMSliceAddress(n int) uintptr {
	return pwmBase + uintptr(n)*pwmSliceStride
}

// DMAChannelAddress returns the address of the first register of the channel.
func DMAChannelAddress(n int) uintptr {
	return dmaBase + uintptr(n)*dmaChannelStride
}

// GPIOCtrlAddress returns the address of the control register of the pin.
func GPIOCtrlAddress(pin int) uintptr {
	return ioBank0Base + 0x04 + uintptr(pin)*8
}

// PWMDREQ returns the data request signal raised on every wrap of the slice.
func PWMDREQ(slice int) int {
	return dreqPWMWrap0 + slice
}

// DMAControl returns the control word of a channel that moves halfwords from
// an incrementing read address to a fixed write address, paced by the data
// request signal. The channel is chained to itself, which disables
// chaining.
func DMAControl(channel int, dreq int) uint32 {
	return dmaCtrlEnable | dmaCtrlSizeHalfword | dmaCtrlIncrRead |
		uint32(channel)<<dmaCtrlChainToShift |
		uint32(dreq)<<dmaCtrlTreqSelShift
}

// CompareValue returns the value of the compare register with the level of
// one output replaced. Channel A is in the low halfword and channel B in the
// high halfword.
func CompareValue(current uint32, level int, channelB bool) uint32 {
	if channelB {
		return current&0x0000ffff | uint32(level)<<16
	}
	return current&0xffff0000 | uint32(level)&0xffff
}

// PinChannelB is true if the pin is driven by the B output of its slice.
func PinChannelB(pin int) bool {
	return pin&1 == 1
}

// PLL is the configuration of the system PLL.
type PLL struct {
	FBDiv    int
	PostDiv1 int
	PostDiv2 int
}

// frequency of the crystal oscillator in kHz.
const referenceKHz = 12000

// limits of the voltage controlled oscillator in kHz.
const (
	minVCOKHz = 750000
	maxVCOKHz = 1600000
)

// VCO returns the frequency of the oscillator in kHz.
func (p PLL) VCO() int {
	return p.FBDiv * referenceKHz
}

// KHz returns the output frequency of the PLL.
func (p PLL) KHz() int {
	return p.VCO() / (p.PostDiv1 * p.PostDiv2)
}

func (p PLL) String() string {
	return fmt.Sprintf("vco=%dkHz postdiv=%d/%d", p.VCO(), p.PostDiv1, p.PostDiv2)
}

// PLLForFrequency returns the PLL configuration for the frequency in MHz.
// The search prefers the highest oscillator frequency, which has the least
// jitter. The frequency must be reached exactly.
func PLLForFrequency(mhz float64) (PLL, error) {
	khz := int(math.Round(mhz * 1000))
	if khz <= 0 {
		return PLL{}, curated.Errorf(NoPLL, fmt.Sprintf("%.3fMHz", mhz))
	}

	for fbdiv := maxVCOKHz / referenceKHz; fbdiv >= 16; fbdiv-- {
		vco := fbdiv * referenceKHz
		if vco < minVCOKHz {
			break
		}
		for pd1 := 7; pd1 >= 1; pd1-- {
			for pd2 := pd1; pd2 >= 1; pd2-- {
				if vco%(pd1*pd2) == 0 && vco/(pd1*pd2) == khz {
					return PLL{FBDiv: fbdiv, PostDiv1: pd1, PostDiv2: pd2}, nil
				}
			}
		}
	}

	return PLL{}, curated.Errorf(NoPLL, fmt.Sprintf("%.3fMHz", mhz))
}
