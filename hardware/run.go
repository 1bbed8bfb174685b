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

package hardware

import (
	"github.com/vgapico/vgapico/curated"
	"github.com/vgapico/vgapico/govern"
)

// UnsupportedState is returned by the Run() functions when the
// continueCheck function returns a state that cannot be honoured.
const UnsupportedState = "generator: unsupported state (%v) in Run() function"

// Run sets the generator running as quickly as possible. The continueCheck
// function is called at the end of every line. The generator is started if
// it has not been started already.
func (gen *Generator) Run(continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	if !gen.started {
		gen.Start()
	}

	var err error

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		switch state {
		case govern.Running:
			gen.stepLine()
		case govern.Paused:
		default:
			return curated.Errorf(UnsupportedState, state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount sets the generator running for the specified number of
// frames. The continueCheck function is called at the end of every line
// with the current frame number.
func (gen *Generator) RunForFrameCount(numFrames int, continueCheck func(frame int) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(frame int) (govern.State, error) { return govern.Running, nil }
	}

	if !gen.started {
		gen.Start()
	}

	targetFrame := gen.frames + numFrames

	var err error

	state := govern.Running
	for gen.frames < targetFrame && state != govern.Ending {
		switch state {
		case govern.Running:
			gen.stepLine()
		case govern.Paused:
		default:
			return curated.Errorf(UnsupportedState, state)
		}

		state, err = continueCheck(gen.frames)
		if err != nil {
			return err
		}
	}

	return nil
}

// stepLine steps the generator until the next wrap of the horizontal slice
// or of the vertical slice. The idle function is called at the end of every
// frame.
func (gen *Generator) stepLine() {
	lines := gen.lines
	frames := gen.frames

	// a generator that has not been started never wraps
	if !gen.PWM.Slice(HorizontalSlice).Enabled() {
		gen.Step()
		return
	}

	for gen.lines == lines && gen.frames == frames {
		gen.Step()
	}

	if gen.frames != frames && gen.Idle != nil {
		gen.Idle()
	}
}
