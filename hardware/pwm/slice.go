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

package pwm

import (
	"fmt"

	"github.com/vgapico/vgapico/hardware/vga/synthesis"
)

// Slice is a single simulated PWM slice.
type Slice struct {
	Number int

	div16 int
	top   int
	level int

	counter int

	// fractional divider accumulator in sixteenths of a source clock
	accum int

	enabled    bool
	irqEnabled bool
	irqPending bool
}

// NewSlice is the preferred method of initialisation for the Slice type.
func NewSlice(number int) *Slice {
	return &Slice{
		Number: number,
		div16:  16,
		top:    0xffff,
	}
}

func (s *Slice) String() string {
	return fmt.Sprintf("slice %d: div=%s top=%d level=%d ctr=%d", s.Number, synthesis.FormatDivider(s.div16),
		s.top, s.level, s.counter)
}

// Configure the slice from a synthesised channel. The counter is reset to
// zero. The enabled state of the slice is not changed.
func (s *Slice) Configure(ch synthesis.Channel) {
	s.div16 = ch.Div16()
	s.top = ch.Wrap
	s.level = ch.Level
	s.counter = 0
	s.accum = 0
}

// Counter returns the live value of the counter.
func (s *Slice) Counter() uint16 {
	return uint16(s.counter)
}

// Output returns the level of the output pin.
func (s *Slice) Output() bool {
	return s.counter < s.level
}

// Enabled returns true if the slice is counting.
func (s *Slice) Enabled() bool {
	return s.enabled
}

// SetIRQEnabled enables or disables the wrap interrupt for the slice.
func (s *Slice) SetIRQEnabled(enabled bool) {
	s.irqEnabled = enabled
}

// IRQPending returns true if the wrap interrupt is enabled and a wrap has
// occurred since the last call to ClearIRQ().
func (s *Slice) IRQPending() bool {
	return s.irqPending
}

// ClearIRQ acknowledges the wrap interrupt.
func (s *Slice) ClearIRQ() {
	s.irqPending = false
}

// Phase16 returns the time since the start of the current period in
// sixteenths of a source clock.
func (s *Slice) Phase16() int {
	return s.counter*s.div16 + s.accum
}

// Period16 returns the period of the slice in sixteenths of a source clock.
func (s *Slice) Period16() int {
	return s.div16 * (s.top + 1)
}

// Tick advances the slice by one source clock. Returns true if the counter
// wrapped.
func (s *Slice) Tick() bool {
	if !s.enabled {
		return false
	}

	s.accum += 16
	if s.accum < s.div16 {
		return false
	}
	s.accum -= s.div16

	if s.counter >= s.top {
		s.counter = 0
		if s.irqEnabled {
			s.irqPending = true
		}
		return true
	}

	s.counter++
	return false
}
