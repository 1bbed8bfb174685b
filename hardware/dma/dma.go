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

package dma

import (
	"fmt"

	"github.com/vgapico/vgapico/curated"
)

// Sink is the fixed destination of the transfers.
type Sink interface {
	Push(word uint16)
}

// DataSize is the size of each transfer.
type DataSize int

// List of valid DataSize values. Only Size16 is simulated.
const (
	Size8 DataSize = iota
	Size16
	Size32
)

func (sz DataSize) String() string {
	switch sz {
	case Size8:
		return "8bit"
	case Size16:
		return "16bit"
	case Size32:
		return "32bit"
	}
	return "unknown"
}

// Config for the DMA channel.
type Config struct {
	DataSize       DataSize
	ReadIncrement  bool
	WriteIncrement bool

	// the pacing signal. for the raster generator this is the number of the
	// PWM slice that generates the pixel clock
	DREQ int
}

func (cfg Config) String() string {
	return fmt.Sprintf("%s read_incr=%v write_incr=%v dreq=%d", cfg.DataSize, cfg.ReadIncrement, cfg.WriteIncrement, cfg.DREQ)
}

// Sentinal error patterns.
const (
	UnsupportedConfig = "dma: unsupported configuration: %v"
	BadTransferCount  = "dma: bad transfer count: %v"
)

// Channel is a simulated DMA channel.
type Channel struct {
	cfg  Config
	sink Sink

	src   []uint16
	read  int
	count int

	// the transfer count reloaded by every Rearm()
	reload int

	busy bool
	last uint16

	// statistics
	arms      uint64
	transfers uint64
	starved   uint64
	refused   uint64
}

func (ch *Channel) String() string {
	return fmt.Sprintf("%s busy=%v remaining=%d arms=%d transfers=%d", ch.cfg, ch.busy, ch.count, ch.arms, ch.transfers)
}

// Configure the channel. If trigger is true then the channel starts
// immediately.
func (ch *Channel) Configure(cfg Config, sink Sink, src []uint16, count int, trigger bool) error {
	if cfg.DataSize != Size16 {
		return curated.Errorf(UnsupportedConfig, fmt.Sprintf("%s transfers", cfg.DataSize))
	}
	if cfg.WriteIncrement {
		return curated.Errorf(UnsupportedConfig, "sink address cannot increment")
	}
	if sink == nil {
		return curated.Errorf(UnsupportedConfig, "no sink")
	}
	if !fits(cfg, src, count) {
		return curated.Errorf(BadTransferCount, fmt.Sprintf("%d transfers from buffer of %d", count, len(src)))
	}

	ch.cfg = cfg
	ch.sink = sink
	ch.src = src
	ch.read = 0
	ch.reload = count
	ch.count = count
	ch.busy = trigger

	return nil
}

// fits returns true if count transfers can be read from the buffer.
func fits(cfg Config, src []uint16, count int) bool {
	if count <= 0 || len(src) == 0 {
		return false
	}
	return !cfg.ReadIncrement || count <= len(src)
}

// Config returns the current configuration of the channel.
func (ch *Channel) Config() Config {
	return ch.cfg
}

// Rearm sets the read address, reloads the transfer count and starts the
// channel.
//
// A buffer too short for the transfer count, or a channel that has not been
// configured, is refused. The channel is left halted and the refusal is
// counted by Refused().
func (ch *Channel) Rearm(src []uint16) {
	if ch.sink == nil || !fits(ch.cfg, src, ch.reload) {
		ch.busy = false
		ch.refused++
		return
	}
	ch.src = src
	ch.read = 0
	ch.count = ch.reload
	ch.busy = true
	ch.arms++
}

// Pace is called for every pulse of the DREQ signal. One unit is moved from
// the read address to the sink. If the channel is not busy the pulse is
// counted as a starvation.
func (ch *Channel) Pace() {
	if !ch.busy {
		ch.starved++
		return
	}

	ch.last = ch.src[ch.read]
	ch.sink.Push(ch.last)

	if ch.cfg.ReadIncrement {
		ch.read++
	}
	ch.transfers++

	ch.count--
	if ch.count == 0 {
		ch.busy = false
	}
}

// Busy returns true if the channel has transfers remaining.
func (ch *Channel) Busy() bool {
	return ch.busy
}

// Remaining returns the number of transfers remaining.
func (ch *Channel) Remaining() int {
	return ch.count
}

// Last returns the most recent unit moved to the sink.
func (ch *Channel) Last() uint16 {
	return ch.last
}

// Arms returns the number of calls to Rearm().
func (ch *Channel) Arms() uint64 {
	return ch.arms
}

// Transfers returns the total number of units moved.
func (ch *Channel) Transfers() uint64 {
	return ch.transfers
}

// Starved returns the number of DREQ pulses while the channel was idle.
func (ch *Channel) Starved() uint64 {
	return ch.starved
}

// Refused returns the number of calls to Rearm() that were refused.
func (ch *Channel) Refused() uint64 {
	return ch.refused
}
