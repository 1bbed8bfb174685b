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
	"fmt"
	"runtime/volatile"
	"unsafe"

	"github.com/vgapico/vgapico/curated"
)

// Channel is a DMA channel. It satisfies the scanline.Rearmer interface.
type Channel struct {
	number int

	readAddr   *volatile.Register32
	writeAddr  *volatile.Register32
	transCount *volatile.Register32
	ctrl       *volatile.Register32
	readTrig   *volatile.Register32
}

// NewChannel is the preferred method of initialisation for the Channel type.
func NewChannel(number int) (*Channel, error) {
	if number < 0 || number > maxDMAChannel {
		return nil, curated.Errorf(BadFirmware, fmt.Sprintf("no dma channel %d", number))
	}
	base := DMAChannelAddress(number)
	return &Channel{
		number:     number,
		readAddr:   register(base + dmaReadAddr),
		writeAddr:  register(base + dmaWriteAddr),
		transCount: register(base + dmaTransCount),
		ctrl:       register(base + dmaAl1Ctrl),
		readTrig:   register(base + dmaAl3ReadAddrTrig),
	}, nil
}

// Configure the channel to write halfwords from src to the destination
// register, paced by dreq. The channel is not started. The transfer count
// written here is reloaded every time the channel is triggered.
func (ch *Channel) Configure(src []uint16, dest *volatile.Register32, dreq int) {
	ch.readAddr.Set(uint32(uintptr(unsafe.Pointer(&src[0]))))
	ch.writeAddr.Set(uint32(uintptr(unsafe.Pointer(dest))))
	ch.transCount.Set(uint32(len(src)))
	ch.ctrl.Set(DMAControl(ch.number, dreq))
}

// Rearm sets the read address and starts the transfer with a single
// register write.
func (ch *Channel) Rearm(src []uint16) {
	ch.readTrig.Set(uint32(uintptr(unsafe.Pointer(&src[0]))))
}

// Busy is true while a transfer is in progress.
func (ch *Channel) Busy() bool {
	return ch.ctrl.HasBits(dmaCtrlBusy)
}
