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

import "time"

// Overclock raises the core voltage and sets the system clock to the
// frequency in MHz. The system clock runs from the reference clock while the
// PLL is reprogrammed.
func Overclock(mhz float64) error {
	p, err := PLLForFrequency(mhz)
	if err != nil {
		return err
	}

	vreg := register(vregBase)
	vreg.Set(vreg.Get()&^vregVSelMask | vregVSel130<<vregVSelShift)
	time.Sleep(10 * time.Millisecond)

	sys := register(clkSysCtrl)
	selected := register(clkSysSelected)

	sys.ClearBits(1)
	for selected.Get() != 1 {
	}

	pwr := register(pllPWR)
	pwr.Set(pllPWRPD | pllPWRDSMPD | pllPWRPostDivD | pllPWRVCOPD)
	register(pllCS).Set(1)
	register(pllFBDivInt).Set(uint32(p.FBDiv))
	pwr.ClearBits(pllPWRPD | pllPWRVCOPD)
	for !register(pllCS).HasBits(pllCSLock) {
	}
	register(pllPRIM).Set(uint32(p.PostDiv1)<<16 | uint32(p.PostDiv2)<<12)
	pwr.ClearBits(pllPWRPostDivD)

	// auxiliary source zero is the system PLL
	sys.Set(sys.Get()&^0xe0 | 1)
	for selected.Get() != 2 {
	}

	return nil
}
