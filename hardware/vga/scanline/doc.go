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

// Package scanline is the per-line handler of the raster generator. The
// handler is run once per horizontal period, in response to the wrap of
// the horizontal sync generator. It must:
//
//  1. acknowledge the wrap interrupt
//  2. read the live counter of the vertical sync generator
//  3. derive the line index from the counter
//  4. classify the line as blank or active
//  5. copy the selected template into the working buffer
//  6. re-arm the transfer of the working buffer
//
// Steps 5 and 6 must complete within the slack of the line. The slack is
// the time between the end of the previous transfer and the start of the
// next horizontal period. The Controller records how long the handler took
// to run and counts the lines where the budget was exceeded.
//
// The hardware is reached through the VerticalCounter, Acknowledger,
// Rearmer and Clock interfaces. The simulator in the hardware package and
// the register backend in the rp2040 package both implement them.
package scanline
