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

// Package capture records the output pins of the generator in the manner of
// a logic analyser. The recording is written to disk as a four channel WAV
// file, one channel for each of the pixel clock, the two syncs and the
// pixel bus, so that it can be inspected with any audio editor.
//
// Samples are buffered in memory in their entirity and written to disk when
// End() is called. The recording should therefore be kept short.
package capture

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/vgapico/vgapico/curated"
	"github.com/vgapico/vgapico/hardware/vga/signal"
	"github.com/vgapico/vgapico/logger"
)

// Sentinal error pattern.
const Error = "capture: %v"

// NumChannels is the number of channels in the WAV file.
const NumChannels = 4

// List of channel indexes in every sample.
const (
	ChanPixelClock = iota
	ChanHSync
	ChanVSync
	ChanData
)

// High is the sample value for a high pin.
const High = 0x7fff

const bitDepth = 16

// Capture implements the signal.Observer interface.
type Capture struct {
	filename   string
	sampleRate int

	// record one in every decimate source clocks
	decimate int
	ct       int

	// maximum number of samples to record
	limit int

	buffer []int
}

// NewCapture is the preferred method of initialisation for the Capture
// type. The source is the frequency of the source clock in Hz and is used
// with the decimation value to give the sample rate of the WAV file. A
// limit of zero means there is no limit to the number of samples recorded.
func NewCapture(filename string, source float64, decimate int, limit int) (*Capture, error) {
	if decimate < 1 {
		return nil, curated.Errorf(Error, "decimation must be at least one")
	}
	if limit < 0 {
		return nil, curated.Errorf(Error, "limit cannot be negative")
	}

	rate := int(source / float64(decimate))
	if rate < 1 {
		return nil, curated.Errorf(Error, "sample rate is less than 1Hz")
	}

	return &Capture{
		filename:   filename,
		sampleRate: rate,
		decimate:   decimate,
		limit:      limit,
		buffer:     make([]int, 0, limit*NumChannels),
	}, nil
}

func level(b bool) int {
	if b {
		return High
	}
	return 0
}

// Signal implements the signal.Observer interface.
func (c *Capture) Signal(l signal.Levels) {
	if c.Full() {
		return
	}

	c.ct++
	if c.ct < c.decimate {
		return
	}
	c.ct = 0

	c.buffer = append(c.buffer,
		level(l.PixelClock),
		level(l.HSync),
		level(l.VSync),
		int(int16(l.Data)),
	)
}

// Samples returns the number of samples recorded.
func (c *Capture) Samples() int {
	return len(c.buffer) / NumChannels
}

// Full returns true if the sample limit has been reached.
func (c *Capture) Full() bool {
	return c.limit > 0 && c.Samples() >= c.limit
}

// SampleRate returns the sample rate of the WAV file.
func (c *Capture) SampleRate() int {
	return c.sampleRate
}

// End writes the recording to disk.
func (c *Capture) End() (rerr error) {
	f, err := os.Create(c.filename)
	if err != nil {
		return curated.Errorf(Error, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(Error, err)
		}
	}()

	enc := wav.NewEncoder(f, c.sampleRate, bitDepth, NumChannels, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: NumChannels,
			SampleRate:  c.sampleRate,
		},
		Data:           c.buffer,
		SourceBitDepth: bitDepth,
	}

	logger.Logf(logger.Allow, "capture", "writing %d samples to %s", c.Samples(), c.filename)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf(Error, err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(Error, err)
	}

	return nil
}
