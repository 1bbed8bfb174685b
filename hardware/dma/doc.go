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

// Package dma simulates a single RP2040 DMA channel as it is used by the
// raster generator: 16-bit transfers from an incrementing read address to
// a fixed write address (the FIFO of the pixel serialiser), paced by the
// wrap of the pixel clock.
//
// The channel is re-armed once per line with Rearm(). This is the
// equivalent of writing the read address to the AL3_READ_ADD_TRIG alias
// register: the read address is set, the transfer count is reloaded and the
// channel starts, all with a single write.
package dma
