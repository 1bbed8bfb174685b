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

// Package lineram holds the line buffers of the raster generator. There are
// two templates (a blank line and an active line) and the working buffer
// that the DMA channel reads from. Once per line the selected template is
// copied into the working buffer.
//
// All buffers of a Store are the same length and are allocated once. The
// working buffer is never reallocated because the DMA channel holds its
// address.
//
// Pixel words are 16-bit RGB565 values. The layout of a line buffer is
// BufferOffset words of leading blank, ResolutionX words of image, and a
// single trailing zero word.
package lineram
