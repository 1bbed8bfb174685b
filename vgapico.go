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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/vgapico/vgapico/capture"
	"github.com/vgapico/vgapico/digest"
	"github.com/vgapico/vgapico/govern"
	"github.com/vgapico/vgapico/gui"
	"github.com/vgapico/vgapico/gui/sdlmonitor"
	"github.com/vgapico/vgapico/hardware"
	"github.com/vgapico/vgapico/hardware/dma"
	"github.com/vgapico/vgapico/hardware/preferences"
	"github.com/vgapico/vgapico/hardware/vga/limiter"
	"github.com/vgapico/vgapico/hardware/vga/monitor"
	"github.com/vgapico/vgapico/hardware/vga/specification"
	"github.com/vgapico/vgapico/logger"
	"github.com/vgapico/vgapico/modalflag"
	"github.com/vgapico/vgapico/performance"
	"github.com/vgapico/vgapico/prefs"
	"github.com/vgapico/vgapico/statsview"
	"github.com/vgapico/vgapico/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when an alternative
	// handler is more appropriate. for example, the RUN mode restores the
	// terminal before quitting.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args any
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to be run in the main thread.
//
// Note that there is no Create() function because we need the freedom to
// create the GUI how we want. Instead the creator is a channel which accepts
// a function that returns an instance of GuiCreator.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary (if at all). It
	// MUST ONLY by called as part of a larger loop from the main thread. It
	// should service all gui events that are not safe to do in sub-threads.
	Service()
}

// communication between the main() function and the launch() function. this is
// required because SDL requires window event handling (including creation)
// to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc default handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync)

	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// a nil *SdlMonitor in an interface is not a nil interface
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}

		default:
			if gui != nil {
				gui.Service()
			}
		}
	}

	fmt.Print("\r")
	os.Exit(exitVal)
}

// the sub-modes of the program. the first mode in the list is the default.
var subModes = []string{"RUN", "DISPLAY", "CHECK", "PERFORMANCE", "CAPTURE", "MEMVIZ", "PREFS", "VERSION"}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes(subModes...)

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, sync)

	case "DISPLAY":
		err = display(md, sync)

	case "CHECK":
		err = check(md)

	case "PERFORMANCE":
		err = perform(md)

	case "CAPTURE":
		err = record(md)

	case "MEMVIZ":
		err = visualise(md)

	case "PREFS":
		err = preferencesMode(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// the flags common to every mode that creates a generator.
type generatorFlags struct {
	spec  *string
	prefs *string
	log   *bool
}

func addGeneratorFlags(md *modalflag.Modes) generatorFlags {
	return generatorFlags{
		spec:  md.AddString("spec", specification.SpecList[0], fmt.Sprintf("video mode: %s", strings.Join(specification.SpecList, ", "))),
		prefs: md.AddString("prefs", "", "preferences for this run only (eg. \"generator.irq.jitter::500\")"),
		log:   md.AddBool("log", false, "echo log to stdout"),
	}
}

// newGenerator creates the generator described by the flags. The
// preferences named by the -prefs flag override the preferences on disk
// but are never saved.
func newGenerator(flgs generatorFlags, sink dma.Sink) (*hardware.Generator, error) {
	if *flgs.log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	spec, err := specification.Lookup(*flgs.spec)
	if err != nil {
		return nil, err
	}

	if *flgs.prefs != "" {
		prefs.PushCommandLineStack(*flgs.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				fmt.Printf("! unused preferences: %s\n", unused)
			}
		}()
	}

	return hardware.NewGenerator(spec, sink, nil)
}

// summary of the generator written at the end of a mode.
func summary(output io.Writer, gen *hardware.Generator) {
	h, v := gen.PhaseError()
	fmt.Fprintf(output, "frames: %d\n", gen.Frames())
	fmt.Fprintf(output, "%s\n", gen.Controller.Stats())
	fmt.Fprintf(output, "missed: %d\n", gen.Missed())
	fmt.Fprintf(output, "phase error: %d/%d\n", h, v)
}

// check runs the generator for a number of frames with no output device and
// fails if the handler did not keep up.
func check(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addGeneratorFlags(md)
	frames := md.AddInt("frames", 2, "number of frames to run")
	stagger := md.AddInt("stagger", 0, "start the sync generators this many source clocks after the pixel clock")
	useDigest := md.AddBool("digest", false, "print a fingerprint of the output pins")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	var dig *digest.Frames
	if *useDigest {
		dig = digest.NewFrames()
	}

	// a nil *digest.Frames in the dma.Sink interface is not a nil interface
	var gen *hardware.Generator
	if dig != nil {
		gen, err = newGenerator(flgs, dig)
		if err == nil {
			gen.AddObserver(dig)
		}
	} else {
		gen, err = newGenerator(flgs, nil)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(md.Output, gen.Ctx)

	if *stagger > 0 {
		gen.Stagger(*stagger)
	} else {
		gen.Start()
	}

	err = gen.RunForFrameCount(*frames, nil)
	if err != nil {
		return err
	}

	summary(md.Output, gen)
	if dig != nil {
		fmt.Fprintf(md.Output, "digest: %s (%d frames)\n", dig.Hash(), dig.Frames())
	}

	stats := gen.Controller.Stats()
	if stats.Overruns > 0 || stats.Collisions > 0 || gen.Missed() > 0 {
		return fmt.Errorf("line handler did not keep up")
	}
	if h, v := gen.PhaseError(); h != 0 || v != 0 {
		return fmt.Errorf("generators are not phase-locked")
	}

	return nil
}

// perform runs the generator for a fixed duration and reports the frame
// rate, optionally profiling the run.
func perform(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addGeneratorFlags(md)
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "run performance check with profiling: cpu, mem, trace, all (comma sep)")
	fpsCap := md.AddBool("fpscap", false, "cap frame rate to the vertical frequency")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	gen, err := newGenerator(flgs, nil)
	if err != nil {
		return err
	}

	if *fpsCap {
		lmtr := limiter.NewLimiter(float32(gen.Ctx.Spec.Frequencies.Vertical))
		defer lmtr.Stop()
		gen.Idle = lmtr.CheckFrame
	}

	return performance.Check(md.Output, prof, gen, *duration)
}

func display(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	flgs := addGeneratorFlags(md)
	scaling := md.AddFloat64("scale", 2.0, "window scaling")
	fpsCap := md.AddBool("fpscap", true, "cap frame rate to the vertical frequency")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	spec, err := specification.Lookup(*flgs.spec)
	if err != nil {
		return err
	}

	mon := monitor.NewMonitor(spec)

	gen, err := newGenerator(flgs, mon)
	if err != nil {
		return err
	}
	gen.AddObserver(mon)

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		statsview.Launch(md.Output)
	}

	lmtr := limiter.NewLimiter(float32(spec.Frequencies.Vertical))
	defer lmtr.Stop()
	lmtr.Active = *fpsCap

	gen.Idle = func() {
		lmtr.CheckFrame()
		lmtr.MeasureActual()
	}

	events := make(chan gui.Event, 10)

	// create gui
	sync.creator <- func() (GuiCreator, error) {
		w, h := mon.Size()
		return sdlmonitor.NewSdlMonitor(w, h, float32(*scaling), mon.Frames(), events)
	}

	// wait for creator result
	select {
	case <-sync.creation:
	case err := <-sync.creationError:
		return err
	}

	err = gen.Run(func() (govern.State, error) {
		select {
		case ev := <-events:
			switch ev.ID {
			case gui.EventWindowClose:
				return govern.Ending, nil
			case gui.EventKeyboard:
				kb := ev.Data.(gui.EventDataKeyboard)
				if kb.Down && (kb.Key == "Escape" || kb.Key == "Q") {
					return govern.Ending, nil
				}
			}
		default:
		}
		return govern.Running, nil
	})
	if err != nil {
		return err
	}

	summary(md.Output, gen)
	fmt.Fprintf(md.Output, "monitor: published %d, dropped %d, sync loss %d\n",
		mon.Published(), mon.Dropped(), mon.SyncLoss())

	return nil
}

// record the output pins of the generator to a WAV file.
func record(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addGeneratorFlags(md)
	frames := md.AddInt("frames", 1, "number of frames to capture")
	decimate := md.AddInt("decimate", 11, "record one sample every N source clocks")

	md.AdditionalHelp(
		`The capture is a four channel WAV file with one channel for each of the pixel
clock, the horizontal sync, the vertical sync and the pixel bus. The sample rate
of the file is the source clock divided by the decimation value.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("output file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	gen, err := newGenerator(flgs, nil)
	if err != nil {
		return err
	}

	cpt, err := capture.NewCapture(md.GetArg(0), gen.Ctx.Spec.Frequencies.Source, *decimate, 0)
	if err != nil {
		return err
	}
	gen.AddObserver(cpt)

	err = gen.RunForFrameCount(*frames, nil)
	if err != nil {
		return err
	}

	err = cpt.End()
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%d samples at %dHz written to %s\n", cpt.Samples(), cpt.SampleRate(), md.GetArg(0))

	return nil
}

// visualise writes a graphviz representation of the generator context.
func visualise(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addGeneratorFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	output := "context.dot"
	switch len(md.RemainingArgs()) {
	case 0:
	case 1:
		output = md.GetArg(0)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	gen, err := newGenerator(flgs, nil)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, gen.Ctx)

	fmt.Fprintf(md.Output, "context written to %s\n", output)

	return nil
}

// preferencesMode shows the preferences on disk and optionally resets them
// to their default values.
func preferencesMode(md *modalflag.Modes) error {
	md.NewMode()

	reset := md.AddBool("reset", false, "reset preferences to default values")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := preferences.NewPreferences()
	if err != nil {
		return err
	}

	if *reset {
		err = prf.Reset()
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(md.Output, prf)

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	verbose := md.AddBool("v", false, "display revision and toolchain information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	info := version.Version()
	fmt.Fprintln(md.Output, info)
	if *verbose {
		fmt.Fprintf(md.Output, "revision: %s\n", info.Revision)
		fmt.Fprintf(md.Output, "go: %s\n", info.GoVersion)
	}

	return nil
}
