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
	"fmt"

	"github.com/vgapico/vgapico/curated"
	"github.com/vgapico/vgapico/hardware/vga/lineram"
	"github.com/vgapico/vgapico/hardware/vga/specification"
	"github.com/vgapico/vgapico/logger"
)

// BadConfig is the sentinal error pattern for controller configuration
// errors.
const BadConfig = "scanline: bad configuration: %v"

// Config of the Controller.
type Config struct {
	TicksPerLine int
	Divisor      int
	Window       specification.Window

	// maximum latency of the handler in source clocks, measured from the wrap
	// of the horizontal sync generator to the re-arm of the transfer
	Budget int
}

// Stats of the controller. Counts are since the controller was created.
type Stats struct {
	Lines  uint64
	Active uint64
	Blank  uint64
	Rearms uint64

	// lines where the handler latency exceeded the budget
	Overruns uint64

	// lines where the working buffer was written while the transfer of the
	// previous line was still in progress
	Collisions uint64

	// maximum latency seen in source clocks
	MaxLatency int
}

func (s Stats) String() string {
	return fmt.Sprintf("lines=%d active=%d blank=%d rearms=%d overruns=%d collisions=%d max latency=%d",
		s.Lines, s.Active, s.Blank, s.Rearms, s.Overruns, s.Collisions, s.MaxLatency)
}

// Result of a single invocation of the handler.
type Result struct {
	Line      int
	Class     lineram.Class
	Latency   int
	Overrun   bool
	Collision bool
}

// Controller is the per-line handler.
type Controller struct {
	cfg Config

	store  *lineram.Store
	source TemplateSource

	vertical VerticalCounter
	ack      Acknowledger
	dma      Rearmer
	clk      Clock

	stats Stats

	// permission for overrun and collision log entries
	perm logger.Permission
}

// NewController is the preferred method of initialisation for the
// Controller type. The store is used as the template source until
// SetTemplateSource() is called.
func NewController(cfg Config, store *lineram.Store, vertical VerticalCounter, ack Acknowledger,
	dma Rearmer, clk Clock) (*Controller, error) {

	if cfg.TicksPerLine < 1 {
		return nil, curated.Errorf(BadConfig, fmt.Sprintf("%d ticks per line", cfg.TicksPerLine))
	}
	if cfg.Divisor < 1 {
		return nil, curated.Errorf(BadConfig, fmt.Sprintf("divisor of %d", cfg.Divisor))
	}
	if cfg.Budget < 0 {
		return nil, curated.Errorf(BadConfig, fmt.Sprintf("budget of %d", cfg.Budget))
	}
	if store == nil || vertical == nil || ack == nil || dma == nil || clk == nil {
		return nil, curated.Errorf(BadConfig, "missing collaborator")
	}
	if store.Len() != cfg.Window.LineLength() {
		return nil, curated.Errorf(BadConfig, fmt.Sprintf("store of %d words does not match window", store.Len()))
	}

	return &Controller{
		cfg:      cfg,
		store:    store,
		source:   store,
		vertical: vertical,
		ack:      ack,
		dma:      dma,
		clk:      clk,
		perm:     logger.Allow,
	}, nil
}

// SetTemplateSource changes the source of the lines copied into the
// working buffer. A nil value restores the store as the source.
func (c *Controller) SetTemplateSource(src TemplateSource) {
	if src == nil {
		c.source = c.store
		return
	}
	c.source = src
}

// SetLogging sets the permission used for overrun log entries. With Deny
// the handler does not format or allocate anything for the log.
func (c *Controller) SetLogging(perm logger.Permission) {
	c.perm = perm
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Stats returns a copy of the controller statistics.
func (c *Controller) Stats() Stats {
	return c.stats
}

// OnLineTick is the handler. It must be called once per wrap of the
// horizontal sync generator.
func (c *Controller) OnLineTick(tick LineTick) Result {
	c.ack.ClearIRQ()

	line := LineIndex(c.vertical.Counter(), c.cfg.TicksPerLine, c.cfg.Divisor)
	class := Classify(line, c.cfg.Window)

	// the previous transfer should have finished before the working buffer
	// is overwritten
	collision := c.dma.Busy()

	c.store.Load(c.source.Template(class, line))
	c.dma.Rearm(c.store.Working)

	latency := int(c.clk.Now() - tick.Clock)
	overrun := latency > c.cfg.Budget

	c.stats.Lines++
	c.stats.Rearms++
	if class == lineram.Active {
		c.stats.Active++
	} else {
		c.stats.Blank++
	}
	if latency > c.stats.MaxLatency {
		c.stats.MaxLatency = latency
	}

	if collision {
		c.stats.Collisions++
		if c.perm.AllowLogging() {
			logger.Logf(c.perm, "scanline", "line %d: working buffer written during transfer", line)
		}
	}
	if overrun {
		c.stats.Overruns++
		if c.perm.AllowLogging() {
			logger.Logf(c.perm, "scanline", "line %d: latency of %d clocks exceeds budget of %d", line, latency, c.cfg.Budget)
		}
	}

	return Result{
		Line:      line,
		Class:     class,
		Latency:   latency,
		Overrun:   overrun,
		Collision: collision,
	}
}
