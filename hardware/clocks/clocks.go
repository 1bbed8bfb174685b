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

// Package clocks defines the source clock frequencies used by vgapico. All
// values are in MHz.
package clocks

// Mhz is the number of Hz in one MHz.
const Mhz = 1000000.0

// Source clock frequencies in MHz.
const (
	// RP2040Default is the stock system clock of the RP2040.
	RP2040Default = 125.0

	// RP2040Overclock is the system clock the raster generator runs at. The
	// core voltage must be raised before switching to this frequency.
	RP2040Overclock = 270.0
)

// Pixel clock of the VESA 640x480@60Hz mode in MHz.
const VGA640 = 25.175

// Hz converts a frequency in MHz to Hz.
func Hz(mhz float64) float64 {
	return mhz * Mhz
}

// Microseconds returns the duration of the number of source clocks in
// microseconds.
func Microseconds(clocks int, mhz float64) float64 {
	return float64(clocks) / mhz
}
