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

// The firmware target. Build with:
//
//	tinygo flash -target pico ./firmware
//
// The device has nowhere to report an error so any failure during start up
// is a panic. Once started the line handler is driven entirely by the wrap
// interrupt and the main goroutine blinks the LED.
package main

import (
	"github.com/vgapico/vgapico/hardware"
	"github.com/vgapico/vgapico/hardware/clocks"
	"github.com/vgapico/vgapico/hardware/preferences"
	"github.com/vgapico/vgapico/hardware/rp2040"
	"github.com/vgapico/vgapico/hardware/vga/specification"
)

// the DMA channel used by the pixel transfer.
const dmaChannel = 0

func main() {
	// the generator channels are synthesised for this frequency
	err := rp2040.Overclock(clocks.RP2040Overclock)
	if err != nil {
		panic(err)
	}

	spec := specification.Spec640x480
	ctx, err := hardware.NewContext(spec, spec.Window, preferences.PatternSolid)
	if err != nil {
		panic(err)
	}

	fw, err := rp2040.NewFirmware(ctx, dmaChannel)
	if err != nil {
		panic(err)
	}

	err = fw.Start()
	if err != nil {
		panic(err)
	}

	fw.Idle()
}
