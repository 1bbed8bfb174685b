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

// Package specification contains the timing specifications of the video
// modes supported by vgapico. Currently only the VESA 640x480@60Hz mode is
// supported.
//
// A specification is a table of numbers. The PWM divider, wrap and threshold
// values are not part of the table. They are calculated from it by the
// synthesis package when the generator is created.
//
// Every built-in specification is validated when the package is
// initialised. A specification that fails validation causes a panic. This
// means that a bad table can never reach the firmware.
package specification
