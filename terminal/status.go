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

package terminal

import (
	"fmt"
	"strings"

	"github.com/vgapico/vgapico/hardware/clocks"
	"github.com/vgapico/vgapico/hardware/vga/scanline"
)

// Status is the information shown on the status line.
type Status struct {
	Frame  int
	FPS    float32
	Stats  scanline.Stats
	Missed uint64

	// phase errors in sixteenths of a source clock
	PhaseH int
	PhaseV int

	// source clock in MHz. used to show the latency in microseconds
	Source float64
}

func (sty Styles) field(s *strings.Builder, label string, value string) {
	s.WriteString(sty.Label.Render(label))
	s.WriteString(" ")
	s.WriteString(sty.Value.Render(value))
	s.WriteString(" ")
}

// Render the status line. The health indicator at the start of the line is
// OK if the handler has always met its budget, LATE if there has been an
// overrun and FAIL if a line has been missed or the working buffer has been
// written during a transfer.
func (sty Styles) Render(st Status) string {
	s := strings.Builder{}

	switch {
	case st.Missed > 0 || st.Stats.Collisions > 0:
		s.WriteString(sty.Error.Render(" FAIL "))
	case st.Stats.Overruns > 0:
		s.WriteString(sty.Warning.Render(" LATE "))
	default:
		s.WriteString(sty.Good.Render("  OK  "))
	}
	s.WriteString(" ")

	sty.field(&s, "frame", fmt.Sprintf("%d", st.Frame))
	sty.field(&s, "fps", fmt.Sprintf("%.2f", st.FPS))
	sty.field(&s, "lines", fmt.Sprintf("%d", st.Stats.Lines))
	sty.field(&s, "overruns", fmt.Sprintf("%d", st.Stats.Overruns))
	sty.field(&s, "collisions", fmt.Sprintf("%d", st.Stats.Collisions))
	sty.field(&s, "missed", fmt.Sprintf("%d", st.Missed))

	latency := fmt.Sprintf("%d", st.Stats.MaxLatency)
	if st.Source > 0 {
		latency = fmt.Sprintf("%d (%.2fus)", st.Stats.MaxLatency, clocks.Microseconds(st.Stats.MaxLatency, st.Source))
	}
	sty.field(&s, "latency", latency)
	sty.field(&s, "phase", fmt.Sprintf("%d/%d", st.PhaseH, st.PhaseV))

	return strings.TrimSpace(s.String())
}
