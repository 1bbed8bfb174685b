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

// Package coords represents the position of the beam of the simulated
// monitor. The Clock field counts pixel clocks since the start of the
// line.
package coords

import (
	"fmt"
)

// FrameIsUndefined is used to indicate that the Frame field of the Coords
// type is not to be used in comparisons.
const FrameIsUndefined = -1

// Coords represents the state of the beam at the most recent pixel clock.
type Coords struct {
	Frame    int
	Scanline int
	Clock    int
}

func (c Coords) String() string {
	if c.Frame == FrameIsUndefined {
		return fmt.Sprintf("Scanline: %03d  Clock: %03d", c.Scanline, c.Clock)
	}
	return fmt.Sprintf("Frame: %d  Scanline: %03d  Clock: %03d", c.Frame, c.Scanline, c.Clock)
}

// Equal compares two instances of Coords. The Frame field is ignored if
// either instance has an undefined frame.
func Equal(A, B Coords) bool {
	if A.Frame == FrameIsUndefined || B.Frame == FrameIsUndefined {
		return A.Scanline == B.Scanline && A.Clock == B.Clock
	}
	return A == B
}

// GreaterThan compares two instances of Coords and returns true if A is
// greater than B.
func GreaterThan(A, B Coords) bool {
	if A.Frame != FrameIsUndefined && B.Frame != FrameIsUndefined && A.Frame != B.Frame {
		return A.Frame > B.Frame
	}
	if A.Scanline != B.Scanline {
		return A.Scanline > B.Scanline
	}
	return A.Clock > B.Clock
}

// Sum returns the number of pixel clocks from the origin to the
// coordinates. If the frame is undefined then the count is from the start
// of the frame.
func Sum(A Coords, scanlinesPerFrame int, clocksPerScanline int) int {
	n := A.Scanline*clocksPerScanline + A.Clock
	if A.Frame != FrameIsUndefined {
		n += A.Frame * scanlinesPerFrame * clocksPerScanline
	}
	return n
}

// Diff returns the difference between A and B, with A being the later of
// the two. The result is normalised so that the Clock and Scanline fields
// are never negative.
func Diff(A, B Coords, scanlinesPerFrame int, clocksPerScanline int) Coords {
	D := Coords{
		Frame:    A.Frame - B.Frame,
		Scanline: A.Scanline - B.Scanline,
		Clock:    A.Clock - B.Clock,
	}

	if D.Clock < 0 {
		D.Scanline--
		D.Clock += clocksPerScanline
	}

	if D.Scanline < 0 {
		D.Frame--
		D.Scanline += scanlinesPerFrame
	}

	if A.Frame == FrameIsUndefined || B.Frame == FrameIsUndefined {
		D.Frame = FrameIsUndefined
	} else if D.Frame < 0 {
		D = Coords{}
	}

	return D
}
