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

package capture_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/vgapico/vgapico/capture"
	"github.com/vgapico/vgapico/hardware/vga/signal"
	"github.com/vgapico/vgapico/test"
)

func levels(n int) []signal.Levels {
	l := make([]signal.Levels, n)
	for i := range l {
		l[i] = signal.Levels{
			Clock:      uint64(i),
			PixelClock: i%2 == 0,
			HSync:      i%3 != 0,
			VSync:      true,
			Data:       uint16(i),
		}
	}
	return l
}

func TestCapture(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "capture.wav")

	c, err := capture.NewCapture(fn, 270000000, 1, 0)
	test.DemandSuccess(t, err)

	for _, l := range levels(100) {
		c.Signal(l)
	}
	test.ExpectEquality(t, c.Samples(), 100)
	test.DemandSuccess(t, c.End())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, int(dec.NumChans), capture.NumChannels)
	test.ExpectEquality(t, int(dec.BitDepth), 16)
	test.ExpectEquality(t, int(dec.SampleRate), 270000000)
	test.DemandEquality(t, len(buf.Data), 100*capture.NumChannels)

	// sample 3
	s := buf.Data[3*capture.NumChannels:]
	test.ExpectEquality(t, s[capture.ChanPixelClock], 0)
	test.ExpectEquality(t, s[capture.ChanHSync], 0)
	test.ExpectEquality(t, s[capture.ChanVSync], capture.High)
	test.ExpectEquality(t, s[capture.ChanData], 3)
}

func TestDecimation(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "capture.wav")

	c, err := capture.NewCapture(fn, 270000000, 10, 0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.SampleRate(), 27000000)

	for _, l := range levels(100) {
		c.Signal(l)
	}
	test.ExpectEquality(t, c.Samples(), 10)
}

func TestLimit(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "capture.wav")

	c, err := capture.NewCapture(fn, 270000000, 1, 25)
	test.DemandSuccess(t, err)

	for _, l := range levels(100) {
		c.Signal(l)
	}
	test.ExpectEquality(t, c.Samples(), 25)
	test.ExpectSuccess(t, c.Full())
}

func TestBadParameters(t *testing.T) {
	_, err := capture.NewCapture("", 270000000, 0, 0)
	test.ExpectFailure(t, err)
	_, err = capture.NewCapture("", 270000000, 1, -1)
	test.ExpectFailure(t, err)
}
