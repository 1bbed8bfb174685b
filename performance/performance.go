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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vgapico/vgapico/govern"
	"github.com/vgapico/vgapico/hardware"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// the longest leadtime before measurement begins. the leadtime is never
// longer than the measurement period.
const maxLeadTime = 2 * time.Second

// Check the performance of the generator. The generator will run for the
// specified duration and will create a cpu profile, a memory profile, a
// trace (or a combination of those) as defined by the Profile argument.
func Check(output io.Writer, profile Profile, gen *hardware.Generator, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}
	if dur <= 0 {
		return fmt.Errorf("performance: duration must be positive (%s)", duration)
	}

	lead := min(maxLeadTime, dur)

	startFrame := gen.Frames()
	startLines := gen.Lines()

	runner := func() error {
		// signals false when the leadtime has elapsed and true when the
		// measurement period has elapsed. buffered so that the timers never
		// block if the generator stops early
		timerChan := make(chan bool, 2)

		go func() {
			time.AfterFunc(lead, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		return gen.Run(func() (govern.State, error) {
			select {
			case v := <-timerChan:
				if v {
					return govern.Ending, timedOut
				}

				// leadtime has concluded and measurement begins
				startFrame = gen.Frames()
				startLines = gen.Lines()
			default:
			}
			return govern.Running, nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	numFrames := gen.Frames() - startFrame
	numLines := gen.Lines() - startLines
	fps, accuracy := CalcFPS(gen.Ctx.Spec, numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)
	fmt.Fprintf(output, "%.0f lines per second\n", float64(numLines)/dur.Seconds())

	return nil
}
