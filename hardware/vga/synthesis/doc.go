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

// Package synthesis calculates the divider, wrap and threshold values of a
// PWM pulse generator from a target frequency. The values are calculated
// from the specification table when the generator is created and are never
// changed afterwards.
//
// Synthesise() finds a free running pulse channel for a target frequency.
// Lock() finds a channel whose period is an exact multiple of another
// channel's period. The three sync generators are created like this:
//
//	pclk, err := synthesis.Synthesise(synthesis.Request{...})
//	hsync, err := synthesis.Lock(pclk, pixelsPerLine, synthesis.LockRequest{...})
//	vsync, err := synthesis.Lock(hsync, linesPerFrame, synthesis.LockRequest{...})
//
// Dividers are in the 8.4 fixed point format of the RP2040 PWM slice. An
// integer part of zero is not allowed (the RP2040 treats it as 256).
//
// Requests that cannot be met return a curated error. Callers should check
// for the Infeasible, OutOfTolerance, BadThreshold and NotLocked patterns.
package synthesis
