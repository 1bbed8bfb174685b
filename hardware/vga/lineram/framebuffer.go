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

package lineram

import (
	"github.com/vgapico/vgapico/hardware/vga/specification"
)

// Framebuffer is a template source with a different line for every row of
// the window. It can be used in place of the two template Store.
type Framebuffer struct {
	rows   []Line
	blank  Line
	window specification.Window
}

// NewFramebuffer creates a framebuffer for the window. There is one row for
// every visible row of the window and all rows are blank.
func NewFramebuffer(w specification.Window) *Framebuffer {
	fb := &Framebuffer{
		rows:   make([]Line, w.VisibleRows()),
		blank:  make(Line, w.LineLength()),
		window: w,
	}
	for i := range fb.rows {
		fb.rows[i] = make(Line, w.LineLength())
	}
	return fb
}

// Rows returns the number of rows in the framebuffer.
func (fb *Framebuffer) Rows() int {
	return len(fb.rows)
}

// SetRow copies the image pixels into the row. The first pixel is placed at
// the first visible column of the line buffer, which is the same column as
// the first white pixel of the test pattern. Pixels beyond the visible
// columns of the window are ignored.
func (fb *Framebuffer) SetRow(row int, pixels []uint16) {
	if row < 0 || row >= len(fb.rows) {
		return
	}
	l := fb.rows[row]
	img := l[fb.window.FirstColumn() : len(l)-1]
	n := copy(img, pixels)
	clear(img[n:])
}

// Template implements the TemplateSource interface of the scanline
// package. The first row of the framebuffer is shown on the first active
// line of the window.
func (fb *Framebuffer) Template(class Class, line int) Line {
	if class != Active {
		return fb.blank
	}
	row := line - fb.window.Offset - 1
	if row < 0 || row >= len(fb.rows) {
		return fb.blank
	}
	return fb.rows[row]
}

// ColourBars fills the framebuffer with seven vertical bars of colour.
func (fb *Framebuffer) ColourBars() {
	bars := [...]uint16{
		RGB(192, 192, 192),
		RGB(192, 192, 0),
		RGB(0, 192, 192),
		RGB(0, 192, 0),
		RGB(192, 0, 192),
		RGB(192, 0, 0),
		RGB(0, 0, 192),
	}

	w := fb.window.VisibleColumns()
	pixels := make([]uint16, w)
	for x := range pixels {
		b := x * len(bars) / w
		pixels[x] = bars[b]
	}

	for r := range fb.rows {
		fb.SetRow(r, pixels)
	}
}
