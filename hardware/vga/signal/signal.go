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

// Package signal describes the levels of the VGA output pins.
package signal

import (
	"fmt"
	"strings"
)

// Levels of the output pins on a single source clock.
type Levels struct {
	// source clock on which the levels were sampled
	Clock uint64

	// sync outputs. the syncs of the 640x480 mode are negative so a false
	// value is the sync pulse
	PixelClock bool
	HSync      bool
	VSync      bool

	// the most recent pixel word placed on the pixel bus
	Data uint16
}

func (l Levels) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%010d ", l.Clock))
	if l.PixelClock {
		s.WriteString("PCLK ")
	} else {
		s.WriteString("pclk ")
	}
	if l.HSync {
		s.WriteString("HSYNC ")
	} else {
		s.WriteString("hsync ")
	}
	if l.VSync {
		s.WriteString("VSYNC ")
	} else {
		s.WriteString("vsync ")
	}
	s.WriteString(fmt.Sprintf("%04x", l.Data))
	return s.String()
}

// Observer implementations are sent the pin levels on every source clock.
type Observer interface {
	Signal(Levels)
}
