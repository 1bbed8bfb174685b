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

package scanline

import (
	"github.com/vgapico/vgapico/hardware/vga/lineram"
	"github.com/vgapico/vgapico/hardware/vga/specification"
)

// VerticalCounter is the live counter of the vertical sync generator.
type VerticalCounter interface {
	Counter() uint16
}

// Acknowledger clears the wrap interrupt of the horizontal sync generator.
type Acknowledger interface {
	ClearIRQ()
}

// Rearmer is the transfer engine. Rearm() sets the read address, reloads
// the transfer count and starts the transfer in a single operation.
type Rearmer interface {
	Rearm(src []uint16)
	Busy() bool
}

// Clock returns the current source clock.
type Clock interface {
	Now() uint64
}

// TemplateSource provides the line to be copied into the working buffer.
type TemplateSource interface {
	Template(class lineram.Class, line int) lineram.Line
}

// LineTick is the event that causes the handler to run.
type LineTick struct {
	// the source clock on which the horizontal sync generator wrapped
	Clock uint64

	// the counter of the horizontal sync generator when the handler was
	// entered
	Counter uint16
}

// LineIndex derives the line index from the vertical counter. The counter
// is divided by the number of counter ticks in a line and then by the
// divisor. Both are integer divisions.
func LineIndex(counter uint16, ticksPerLine int, divisor int) int {
	return int(counter) / ticksPerLine / divisor
}

// Classify returns Active if the line is inside the window. Both ends of the
// window are exclusive.
func Classify(line int, w specification.Window) lineram.Class {
	if line > w.Offset && line < w.Offset+w.Rows {
		return lineram.Active
	}
	return lineram.Blank
}
