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

package synthesis

import (
	"fmt"
	"math"

	"github.com/vgapico/vgapico/curated"
)

// Tolerance is the maximum fractional difference between the target
// frequency and the realised frequency.
const Tolerance = 0.001

// Sentinal error patterns.
const (
	Infeasible     = "synthesis: infeasible: %v"
	OutOfTolerance = "synthesis: out of tolerance: %v"
	BadThreshold   = "synthesis: bad threshold: %v"
	NotLocked      = "synthesis: not locked: %v"
)

// the limits of the 8.4 fixed point divider, in sixteenths.
const (
	minDiv16 = 16
	maxDiv16 = 255<<4 | 15
)

// Channel is the configuration of a single PWM pulse generator.
type Channel struct {
	// 8.4 fixed point clock divider
	DivInt  int
	DivFrac int

	// the counter counts from zero to Wrap inclusive
	Wrap int

	// the output is high while the counter is less than Level
	Level int

	// the enable group of the generator. this is the PWM slice number
	Group int
}

func (c Channel) String() string {
	return fmt.Sprintf("div=%s wrap=%d level=%d", FormatDivider(c.Div16()), c.Wrap, c.Level)
}

// FormatDivider returns the 8.4 fixed point divider, given in sixteenths, as
// a string. The fractional part is shown in sixteenths and is omitted if it
// is zero. For example, a divider of 24 sixteenths is "1+8/16".
func FormatDivider(div16 int) string {
	if div16&0x0f == 0 {
		return fmt.Sprintf("%d", div16>>4)
	}
	return fmt.Sprintf("%d+%d/16", div16>>4, div16&0x0f)
}

// Div16 returns the clock divider in sixteenths.
func (c Channel) Div16() int {
	return c.DivInt<<4 | c.DivFrac
}

// Period16 returns the period of the channel in sixteenths of a source
// clock.
func (c Channel) Period16() int {
	return c.Div16() * (c.Wrap + 1)
}

// Ticks returns the period of the channel in whole source clocks. The bool
// is false if the period is not a whole number of source clocks.
func (c Channel) Ticks() (int, bool) {
	p := c.Period16()
	return p >> 4, p&0x0f == 0
}

// Frequency returns the frequency realised by the channel for the source
// clock (in Hz).
func (c Channel) Frequency(source float64) float64 {
	return source * 16 / float64(c.Period16())
}

// PulseFraction returns the fraction of the period the output is low.
func (c Channel) PulseFraction() float64 {
	return 1.0 - float64(c.Level)/float64(c.Wrap+1)
}

// Request for a new channel.
type Request struct {
	// source and target frequency in Hz
	Source float64
	Target float64

	// width of the counter in bits
	Bits int

	// the fraction of the period the output is low. the pulse is at the end
	// of the period
	Pulse float64
}

func validate(source, target float64, bits int, pulse float64) error {
	if source <= 0 || target <= 0 {
		return curated.Errorf(Infeasible, "frequencies must be positive")
	}
	if target > source/2 {
		return curated.Errorf(Infeasible, fmt.Sprintf("target %.3fHz is more than half the source clock", target))
	}
	if bits < 2 || bits > 16 {
		return curated.Errorf(Infeasible, fmt.Sprintf("%d bit counter is not supported", bits))
	}
	if pulse <= 0 || pulse >= 1 {
		return curated.Errorf(BadThreshold, fmt.Sprintf("pulse fraction %.3f is not between 0 and 1", pulse))
	}
	return nil
}

// level returns the compare threshold for the pulse fraction. top is the
// number of counter values in a period (Wrap+1).
func level(top int, pulse float64) (int, error) {
	l := int(math.Round((1.0 - pulse) * float64(top)))
	if l <= 0 || l >= top-1 {
		return 0, curated.Errorf(BadThreshold, fmt.Sprintf("level %d outside of counter range 1 to %d", l, top-2))
	}
	return l, nil
}

func withinTolerance(realised, target float64) bool {
	return math.Abs(realised-target)/target <= Tolerance
}

// Synthesise searches the divider range, starting with the smallest
// divider, and returns the first channel that realises the target frequency
// within Tolerance. The smallest divider gives the largest wrap value and
// therefore the finest control over the pulse width.
func Synthesise(req Request) (Channel, error) {
	if err := validate(req.Source, req.Target, req.Bits, req.Pulse); err != nil {
		return Channel{}, err
	}

	maxTop := 1 << req.Bits
	var fitted bool

	for div16 := minDiv16; div16 <= maxDiv16; div16++ {
		top := int(math.Round(req.Source * 16 / (req.Target * float64(div16))))
		if top < 3 {
			break // for loop
		}
		if top > maxTop {
			continue // for loop
		}
		fitted = true

		realised := req.Source * 16 / float64(div16*top)
		if !withinTolerance(realised, req.Target) {
			continue // for loop
		}

		l, err := level(top, req.Pulse)
		if err != nil {
			return Channel{}, err
		}

		return Channel{
			DivInt:  div16 >> 4,
			DivFrac: div16 & 0x0f,
			Wrap:    top - 1,
			Level:   l,
		}, nil
	}

	if fitted {
		return Channel{}, curated.Errorf(OutOfTolerance, fmt.Sprintf("no divider realises %.3fHz within %.1f%%", req.Target, Tolerance*100))
	}
	return Channel{}, curated.Errorf(Infeasible, fmt.Sprintf("%.3fHz cannot be reached with a %d bit counter", req.Target, req.Bits))
}

// LockRequest is a request for a channel locked to a parent channel.
type LockRequest struct {
	// source and target frequency in Hz
	Source float64
	Target float64

	// width of the counter in bits
	Bits int

	// the fraction of the period the output is low
	Pulse float64

	// integer clock divider. if zero then the smallest divider that divides
	// the locked period exactly is used
	Divider int
}

// Lock returns a channel with a period of exactly multiple periods of the
// parent channel. Provided both channels are started on the same source
// clock the two channels will never drift apart.
//
// Only integer dividers are used for locked channels.
func Lock(parent Channel, multiple int, req LockRequest) (Channel, error) {
	if err := validate(req.Source, req.Target, req.Bits, req.Pulse); err != nil {
		return Channel{}, err
	}
	if multiple < 1 {
		return Channel{}, curated.Errorf(NotLocked, fmt.Sprintf("multiple of %d parent periods", multiple))
	}
	if parent.Period16() <= 0 {
		return Channel{}, curated.Errorf(NotLocked, "parent channel has no period")
	}

	period16 := parent.Period16() * multiple
	maxTop := 1 << req.Bits

	var div16 int

	if req.Divider != 0 {
		if req.Divider < 1 || req.Divider > 255 {
			return Channel{}, curated.Errorf(Infeasible, fmt.Sprintf("divider %d is out of range", req.Divider))
		}
		div16 = req.Divider << 4
		if period16%div16 != 0 {
			return Channel{}, curated.Errorf(NotLocked, fmt.Sprintf("divider %d does not divide a period of %d clocks", req.Divider, period16>>4))
		}
		if period16/div16 > maxTop {
			return Channel{}, curated.Errorf(Infeasible, fmt.Sprintf("divider %d gives a wrap larger than %d bits", req.Divider, req.Bits))
		}
	} else {
		for d := 1; d <= 255; d++ {
			if period16%(d<<4) == 0 && period16/(d<<4) <= maxTop {
				div16 = d << 4
				break // for loop
			}
		}
		if div16 == 0 {
			return Channel{}, curated.Errorf(NotLocked, fmt.Sprintf("no integer divider of %d clocks fits %d bits", period16>>4, req.Bits))
		}
	}

	top := period16 / div16

	realised := req.Source * 16 / float64(period16)
	if !withinTolerance(realised, req.Target) {
		return Channel{}, curated.Errorf(OutOfTolerance, fmt.Sprintf("locked frequency %.3fHz is not within %.1f%% of %.3fHz", realised, Tolerance*100, req.Target))
	}

	l, err := level(top, req.Pulse)
	if err != nil {
		return Channel{}, err
	}

	return Channel{
		DivInt:  div16 >> 4,
		DivFrac: 0,
		Wrap:    top - 1,
		Level:   l,
	}, nil
}

// Locked returns true if the child's period is an exact multiple of the
// parent's period.
func Locked(parent, child Channel) bool {
	p := parent.Period16()
	return p > 0 && child.Period16()%p == 0
}
