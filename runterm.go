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

//go:build linux || darwin

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/vgapico/vgapico/govern"
	"github.com/vgapico/vgapico/hardware/vga/limiter"
	"github.com/vgapico/vgapico/modalflag"
	"github.com/vgapico/vgapico/statsview"
	"github.com/vgapico/vgapico/terminal"
	"github.com/vgapico/vgapico/terminal/easyterm"
)

// how often the status line is redrawn.
const statusPeriod = 250 * time.Millisecond

// run the generator with a status line in the terminal. the generator output
// goes nowhere.
func run(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	flgs := addGeneratorFlags(md)
	fpsCap := md.AddBool("fpscap", true, "cap frame rate to the vertical frequency")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	md.AdditionalHelp(`Press 'p' to pause or resume and 'q' to quit.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	gen, err := newGenerator(flgs, nil)
	if err != nil {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		statsview.Launch(md.Output)
	}

	term := &easyterm.Terminal{}
	err = term.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer term.CleanUp()

	// CleanUp() returns the terminal to canonical mode
	term.CBreakMode()

	// the terminal must be restored before quitting so ctrl-c is handled
	// here rather than by the main thread
	sync.state <- stateRequest{req: reqNoIntSig}
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	keys := make(chan byte, 1)
	go func() {
		for {
			k, err := term.ReadKey()
			if err != nil {
				return
			}
			keys <- k
		}
	}()

	lmtr := limiter.NewLimiter(float32(gen.Ctx.Spec.Frequencies.Vertical))
	defer lmtr.Stop()
	lmtr.Active = *fpsCap

	gen.Idle = func() {
		lmtr.CheckFrame()
		lmtr.MeasureActual()
	}

	styles := terminal.NewStyles()
	redraw := time.NewTicker(statusPeriod)
	defer redraw.Stop()

	status := func() {
		h, v := gen.PhaseError()
		term.Print("\r\033[K%s", styles.Render(terminal.Status{
			Frame:  gen.Frames(),
			FPS:    lmtr.Measured.Load().(float32),
			Stats:  gen.Controller.Stats(),
			Missed: gen.Missed(),
			PhaseH: h,
			PhaseV: v,
			Source: gen.Ctx.Spec.Frequencies.Source / 1e6,
		}))
	}

	state := govern.Running

	err = gen.Run(func() (govern.State, error) {
		select {
		case <-intChan:
			return govern.Ending, nil

		case k := <-keys:
			switch k {
			case 'q', 'Q':
				return govern.Ending, nil
			case 'p', 'P':
				if state == govern.Running {
					state = govern.Paused
				} else {
					state = govern.Running
				}
			}

		case <-redraw.C:
			status()

		default:
			// avoid spinning while paused
			if state == govern.Paused {
				time.Sleep(statusPeriod / 10)
			}
		}

		return state, nil
	})

	status()
	term.Print("\n")

	return err
}
