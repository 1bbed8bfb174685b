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

// Package monitor is a simulated VGA monitor. It watches the output pins of
// the generator and builds an image of every frame.
//
// The syncs of the 640x480 mode are negative and the pulse is at the end of
// each sync period. The monitor starts a new line on the rising edge of the
// horizontal sync and a new frame on the rising edge of the vertical sync,
// ie. at the end of each pulse. The pixel bus is sampled on every rising
// edge of the pixel clock.
//
// Completed frames are sent on the channel returned by Frames(). A frame is
// only sent if the monitor had sync for the whole of the frame.
package monitor

import (
	"image"

	"github.com/vgapico/vgapico/hardware/vga/coords"
	"github.com/vgapico/vgapico/hardware/vga/lineram"
	"github.com/vgapico/vgapico/hardware/vga/signal"
	"github.com/vgapico/vgapico/hardware/vga/specification"
	"github.com/vgapico/vgapico/logger"
)

// number of images the monitor draws into. one image is queued on the
// frames channel, one is being drawn into and one belongs to the receiver.
// a receiver must be finished with a frame before it takes the next one
const numImages = 3

// Monitor is a simulated VGA monitor. It implements the dma.Sink and
// signal.Observer interfaces.
type Monitor struct {
	width  int
	height int

	frames chan *image.RGBA
	images [numImages]*image.RGBA
	idx    int
	img    *image.RGBA

	// the most recent completed frame
	last *image.RGBA

	// value on the pixel bus. the bus holds the most recent word pushed to
	// it
	bus uint16

	prev signal.Levels

	// beam position
	x     int
	y     int
	frame int

	// sync has been seen at least once
	hsynced bool
	vsynced bool

	// the current frame had a line of the wrong length
	badLine bool

	syncLoss  uint64
	dropped   uint64
	published uint64

	perm logger.Permission
}

// NewMonitor is the preferred method of initialisation for the Monitor
// type. The image of every frame has one column for each pixel clock of a
// line and one row for each line of a frame.
func NewMonitor(spec specification.Spec) *Monitor {
	m := &Monitor{
		width:  spec.PixelsPerLine,
		height: spec.Vertical.Whole,
		frames: make(chan *image.RGBA, 1),
		perm:   logger.Allow,
	}

	for i := range m.images {
		m.images[i] = image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	}
	m.img = m.images[0]

	// idle levels of the pins. no edge is seen until a pin goes low
	m.prev = signal.Levels{
		PixelClock: true,
		HSync:      true,
		VSync:      true,
	}

	return m
}

// SetLogging sets the permission used for sync loss log entries.
func (m *Monitor) SetLogging(perm logger.Permission) {
	m.perm = perm
}

// Push implements the dma.Sink interface.
func (m *Monitor) Push(word uint16) {
	m.bus = word
}

// Signal implements the signal.Observer interface.
func (m *Monitor) Signal(l signal.Levels) {
	hrise := l.HSync && !m.prev.HSync
	vrise := l.VSync && !m.prev.VSync
	prise := l.PixelClock && !m.prev.PixelClock
	m.prev = l

	if hrise {
		if m.hsynced && m.x != m.width {
			m.badLine = true
			logger.Logf(m.perm, "monitor", "line %d: %d pixel clocks (expected %d)", m.y, m.x, m.width)
		}
		m.hsynced = true
		m.x = 0
		m.y++
	}

	if vrise {
		m.newFrame()
	}

	if prise {
		if m.x < m.width && m.y < m.height {
			c := lineram.Colour(m.bus)
			i := m.img.PixOffset(m.x, m.y)
			m.img.Pix[i] = c.R
			m.img.Pix[i+1] = c.G
			m.img.Pix[i+2] = c.B
			m.img.Pix[i+3] = c.A
		}
		m.x++
	}
}

func (m *Monitor) newFrame() {
	complete := m.y == m.height && !m.badLine

	if !complete && m.vsynced {
		m.syncLoss++
		logger.Logf(m.perm, "monitor", "frame %d: lost sync (%d lines, expected %d)", m.frame, m.y, m.height)
	}

	if complete {
		m.last = m.img
		select {
		case m.frames <- m.img:
		default:
			// the receiver has not taken the previous frame. replace it so
			// that the queued frame is always the one drawn most recently
			// and is never the next image to be drawn into
			select {
			case <-m.frames:
				m.dropped++
			default:
			}
			m.frames <- m.img
		}
		m.published++

		m.idx = (m.idx + 1) % len(m.images)
		m.img = m.images[m.idx]
	}
	clear(m.img.Pix)

	m.vsynced = true
	m.badLine = false
	m.frame++
	m.y = 0
}

// Frames returns the channel on which completed frames are sent. A frame
// that has not been received by the time the next frame is complete is
// replaced by the newer frame.
func (m *Monitor) Frames() <-chan *image.RGBA {
	return m.frames
}

// LastFrame returns the most recent completed frame. Returns nil if there
// has been no completed frame.
func (m *Monitor) LastFrame() *image.RGBA {
	return m.last
}

// Coords returns the current position of the beam.
func (m *Monitor) Coords() coords.Coords {
	return coords.Coords{
		Frame:    m.frame,
		Scanline: m.y,
		Clock:    m.x,
	}
}

// Size returns the width and height of the frame images.
func (m *Monitor) Size() (int, int) {
	return m.width, m.height
}

// SyncLoss returns the number of frames that were not complete after the
// monitor first saw vertical sync.
func (m *Monitor) SyncLoss() uint64 {
	return m.syncLoss
}

// Published returns the number of frames sent on the frames channel,
// including frames that were later replaced.
func (m *Monitor) Published() uint64 {
	return m.published
}

// Dropped returns the number of frames that were taken back off the frames
// channel because the receiver had not received them in time.
func (m *Monitor) Dropped() uint64 {
	return m.dropped
}
