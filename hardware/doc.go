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

// Package hardware is the base package for the simulated raster generator.
// It and its sub-packages contain everything required to generate a VGA
// signal without a real RP2040.
//
// The Generator type is the root of the simulation and contains references
// to the PWM block, the DMA channel and the per-line handler. The generator
// can either be run continuously (with an optional callback to check for
// continuation) or stepped one source clock at a time.
//
// The Context type holds the state shared by the generator and the per-line
// handler: the synthesised channels, the line buffers and the window. Every
// field of the context has a single writer. The line buffers are written
// only by the handler and read only by the DMA channel, and the two never
// overlap provided the handler finishes within the slack of the line.
package hardware
