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

// Package limiter paces the simulated generator so that frames are
// produced no faster than the vertical frequency of the video mode. The
// simulator is normally much slower than a real RP2040 so the limiter
// rarely waits, but it also measures the actual frame rate which is shown
// by the display and run modes.
package limiter

import (
	"sync/atomic"
	"time"
)

// MatchRefreshRate can be used with SetLimit() to indicate that the limit
// should equal the refresh rate.
const MatchRefreshRate float32 = -1.0

// Limiter is a frame rate limiter.
type Limiter struct {
	// whether to wait for fps limited each frame
	Active bool

	// the vertical frequency of the video mode
	RefreshRate atomic.Value // float32

	// the frame rate being limited to
	IdealFPS atomic.Value // float32

	// pulse that performs the limiting. waiting on every frame is too
	// expensive so the pulse is for a group of frames
	pulse        *time.Ticker
	pulseCt      int
	pulseCtLimit int

	// pulse that performs the FPS measurement
	measuringPulse *time.Ticker
	measureTime    time.Time
	measureCt      int

	// the measured number of frames per second
	Measured atomic.Value // float32

	// the number of frames to pass without waiting
	Nudge atomic.Int32
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// The limit is set to match the refresh rate.
func NewLimiter(refreshRate float32) *Limiter {
	lmtr := &Limiter{
		Active:         true,
		pulse:          time.NewTicker(time.Millisecond * 16),
		measuringPulse: time.NewTicker(time.Second),
		measureTime:    time.Now(),
	}
	lmtr.Measured.Store(float32(0.0))
	lmtr.RefreshRate.Store(refreshRate)
	lmtr.SetLimit(MatchRefreshRate)
	return lmtr
}

// SetRefreshRate changes the refresh rate and the limit to match.
func (lmtr *Limiter) SetRefreshRate(refreshRate float32) {
	lmtr.RefreshRate.Store(refreshRate)
	lmtr.SetLimit(MatchRefreshRate)
}

// SetLimit sets the frame limit. Use a value of MatchRefreshRate to
// indicate that the limit should equal the refresh rate.
func (lmtr *Limiter) SetLimit(fps float32) {
	if fps <= 0.0 {
		fps = lmtr.RefreshRate.Load().(float32)
	}

	// refresh rate probably hasn't been set
	if fps <= 0.0 {
		return
	}

	lmtr.IdealFPS.Store(fps)

	lmtr.pulseCt = 0
	lmtr.pulseCtLimit = 1 + int(fps/20)
	lmtr.pulse.Reset(time.Duration(float32(time.Second) / fps * float32(lmtr.pulseCtLimit)))

	lmtr.measureCt = 0
	lmtr.measureTime = time.Now()
}

// CheckFrame should be called every frame.
func (lmtr *Limiter) CheckFrame() {
	lmtr.measureCt++

	if nudge := lmtr.Nudge.Load(); nudge > 0 {
		lmtr.Nudge.Store(nudge - 1)
		return
	}

	if lmtr.Active {
		lmtr.pulseCt++
		if lmtr.pulseCt >= lmtr.pulseCtLimit {
			lmtr.pulseCt = 0
			<-lmtr.pulse.C
		}
	}
}

// MeasureActual measures the frame rate on every tick of the measuring
// pulse.
func (lmtr *Limiter) MeasureActual() {
	select {
	case <-lmtr.measuringPulse.C:
		t := time.Now()
		m := float32(lmtr.measureCt) / float32(t.Sub(lmtr.measureTime).Seconds())
		lmtr.Measured.Store(m)

		lmtr.measureTime = t
		lmtr.measureCt = 0
	default:
	}
}

// Stop the limiter's tickers. The limiter should not be used after Stop()
// has been called.
func (lmtr *Limiter) Stop() {
	lmtr.pulse.Stop()
	lmtr.measuringPulse.Stop()
}
