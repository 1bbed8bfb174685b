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
	"fmt"

	"github.com/vgapico/vgapico/hardware/vga/specification"
)

// Line is a single line buffer of pixel words.
type Line []uint16

// Class of a line.
type Class int

// List of valid Class values.
const (
	Blank Class = iota
	Active
)

func (c Class) String() string {
	switch c {
	case Blank:
		return "blank"
	case Active:
		return "active"
	}
	return "unknown"
}

// Store of line buffers.
type Store struct {
	Blank   Line
	Active  Line
	Working Line

	window specification.Window
}

// NewStore creates a store for the window. All three buffers are zero.
func NewStore(w specification.Window) *Store {
	n := w.LineLength()
	return &Store{
		Blank:   make(Line, n),
		Active:  make(Line, n),
		Working: make(Line, n),
		window:  w,
	}
}

// NewTestPatternStore creates a store with an active template of solid
// white pixels. The blank template is zero.
func NewTestPatternStore(w specification.Window) *Store {
	st := NewStore(w)
	TestPattern(st.Active, w.BufferOffset)
	return st
}

func (st *Store) String() string {
	return fmt.Sprintf("%d words (%s)", len(st.Working), st.window)
}

// Len returns the length of every buffer in the store.
func (st *Store) Len() int {
	return len(st.Working)
}

// Window returns the window the store was created for.
func (st *Store) Window() specification.Window {
	return st.window
}

// Template implements the TemplateSource interface of the scanline
// package. The line index is ignored.
func (st *Store) Template(class Class, _ int) Line {
	if class == Active {
		return st.Active
	}
	return st.Blank
}

// Load copies the line into the working buffer. A line shorter than the
// working buffer is padded with zero. A longer line is truncated.
func (st *Store) Load(src Line) {
	n := copy(st.Working, src)
	clear(st.Working[n:])

	// the trailing word always returns the pixel bus to black
	st.Working[len(st.Working)-1] = 0
}

// TestPattern fills the line with the test pattern: a white pixel for every
// word after the buffer offset except for the trailing word, which is zero.
// Words before and at the buffer offset are zero.
func TestPattern(l Line, bufferOffset int) {
	for i := range l {
		if i > bufferOffset && i < len(l)-1 {
			l[i] = 0xffff
		} else {
			l[i] = 0
		}
	}
}
