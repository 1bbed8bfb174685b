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

// Package pwm simulates the PWM slices of an RP2040 at the resolution of a
// single source clock. Each Slice is a free running up-counter with an 8.4
// fixed point clock divider, a wrap value and a compare threshold. The
// output of a slice is high while the counter is less than the threshold.
//
// The slices of a Block are advanced together by the Tick() function. Slices
// enabled by the same call to SetMaskEnabled() start on the same source
// clock and remain in phase forever, provided their periods are exact
// multiples of one another. PhaseError() measures how far apart the sync
// generators are.
package pwm
