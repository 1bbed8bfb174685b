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

// Package sdlmonitor shows the frames of the simulated monitor in an SDL
// window. The window is created, serviced and destroyed on the main thread
// while the frames are sent over a channel from the goroutine running the
// generator.
package sdlmonitor

import (
	"fmt"
	"image"
	"io"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/vgapico/vgapico/curated"
	"github.com/vgapico/vgapico/gui"
	"github.com/vgapico/vgapico/logger"
	"github.com/vgapico/vgapico/version"
)

// Sentinal error pattern.
const SDL = "sdl: %v"

const pixelDepth = 4

// each pixel clock is much wider than it is tall so the horizontal scale
// is doubled
const aspectBias = 2.0

// SdlMonitor is a window showing the frames of the simulated monitor.
type SdlMonitor struct {
	frames <-chan *image.RGBA
	events chan gui.Event

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width  int32
	height int32

	// number of frames shown
	shown int
}

// NewSdlMonitor is the preferred method of initialisation for the
// SdlMonitor type. The width and height are the size of the frames sent on
// the frames channel.
//
// MUST ONLY be called from the #mainthread
func NewSdlMonitor(width, height int, scale float32, frames <-chan *image.RGBA, events chan gui.Event) (*SdlMonitor, error) {
	scr := &SdlMonitor{
		frames: frames,
		events: events,
		width:  int32(width),
		height: int32(height),
	}

	var err error

	err = sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	// MOUSEMOTION events fill up the event queue and are never used
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)

	scr.window, err = sdl.CreateWindow(version.ApplicationName,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(float32(width)*scale*aspectBias), int32(float32(height)*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf(SDL, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		scr.window.Destroy()
		sdl.Quit()
		return nil, curated.Errorf(SDL, err)
	}

	// the byte order of image.RGBA pixels is the same as ABGR8888 on a little
	// endian machine
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		scr.width, scr.height)
	if err != nil {
		scr.renderer.Destroy()
		scr.window.Destroy()
		sdl.Quit()
		return nil, curated.Errorf(SDL, err)
	}

	logger.Logf(logger.Allow, "sdl", "window %dx%d for frames of %dx%d", int32(float32(width)*scale*aspectBias),
		int32(float32(height)*scale), width, height)

	return scr, nil
}

// Service the window: handle waiting SDL events and show the most recent
// frame, if there is one.
//
// MUST ONLY be called from the #mainthread
func (scr *SdlMonitor) Service() {
	// waiting with a short timeout stops the main thread from spinning
	for ev := sdl.WaitEventTimeout(10); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			scr.send(gui.Event{ID: gui.EventWindowClose})

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				break // switch
			}

			mod := gui.KeyModNone
			if sdl.GetModState()&sdl.KMOD_LALT == sdl.KMOD_LALT ||
				sdl.GetModState()&sdl.KMOD_RALT == sdl.KMOD_RALT {
				mod = gui.KeyModAlt
			} else if sdl.GetModState()&sdl.KMOD_LSHIFT == sdl.KMOD_LSHIFT ||
				sdl.GetModState()&sdl.KMOD_RSHIFT == sdl.KMOD_RSHIFT {
				mod = gui.KeyModShift
			} else if sdl.GetModState()&sdl.KMOD_LCTRL == sdl.KMOD_LCTRL ||
				sdl.GetModState()&sdl.KMOD_RCTRL == sdl.KMOD_RCTRL {
				mod = gui.KeyModCtrl
			}

			scr.send(gui.Event{
				ID: gui.EventKeyboard,
				Data: gui.EventDataKeyboard{
					Key:  sdl.GetKeyName(ev.Keysym.Sym),
					Down: ev.Type == sdl.KEYDOWN,
					Mod:  mod,
				},
			})
		}
	}

	select {
	case img := <-scr.frames:
		if err := scr.show(img); err != nil {
			logger.Log(logger.Allow, "sdl", err)
		}
	default:
	}
}

// events are dropped if the channel is full. the main loop will be
// servicing the channel quickly enough for this not to matter
func (scr *SdlMonitor) send(ev gui.Event) {
	select {
	case scr.events <- ev:
	default:
	}
}

func (scr *SdlMonitor) show(img *image.RGBA) error {
	if img.Bounds().Dx() != int(scr.width) || img.Bounds().Dy() != int(scr.height) {
		return curated.Errorf(SDL, fmt.Sprintf("frame of %dx%d does not fit texture", img.Bounds().Dx(), img.Bounds().Dy()))
	}

	pixels, pitch, err := scr.texture.Lock(nil)
	if err != nil {
		return curated.Errorf(SDL, err)
	}
	row := int(scr.width) * pixelDepth
	for y := 0; y < int(scr.height); y++ {
		copy(pixels[y*pitch:y*pitch+row], img.Pix[y*img.Stride:y*img.Stride+row])
	}
	scr.texture.Unlock()

	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		return curated.Errorf(SDL, err)
	}
	scr.renderer.Present()

	scr.shown++

	return nil
}

// Destroy the window and close SDL.
//
// MUST ONLY be called from the #mainthread
func (scr *SdlMonitor) Destroy(output io.Writer) {
	if err := scr.texture.Destroy(); err != nil {
		io.WriteString(output, fmt.Sprintf("* sdl: %v\n", err))
	}
	if err := scr.renderer.Destroy(); err != nil {
		io.WriteString(output, fmt.Sprintf("* sdl: %v\n", err))
	}
	if err := scr.window.Destroy(); err != nil {
		io.WriteString(output, fmt.Sprintf("* sdl: %v\n", err))
	}
	sdl.Quit()
}

// Shown returns the number of frames shown in the window.
func (scr *SdlMonitor) Shown() int {
	return scr.shown
}
