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

//go:build tinygo && rp2040

package rp2040

import (
	"device/rp"
	"machine"
	"runtime/interrupt"
	"time"

	"github.com/vgapico/vgapico/curated"
	"github.com/vgapico/vgapico/hardware"
	"github.com/vgapico/vgapico/hardware/vga/scanline"
	"github.com/vgapico/vgapico/logger"

	pio "github.com/tinygo-org/pio/rp2-pio"
)

// the pixel bus program. sixteen bits are shifted out to the data pins for
// every halfword written to the FIFO.
var parallelInstructions = []uint16{
	pio.EncodeOut(pio.SrcDestPins, 16),
}

// number of data pins on the pixel bus.
const busWidth = 16

// blink period of the LED in the idle loop.
const blinkDelay = 500 * time.Millisecond

// Firmware is the generator running on the device.
type Firmware struct {
	Ctx        *hardware.Context
	Controller *scanline.Controller

	pclk  *Slice
	hsync *Slice
	vsync *Slice
	dma   *Channel
	sm    pio.StateMachine
}

// the firmware being served by the wrap interrupt.
var running *Firmware

// lineClock measures the handler latency as the number of source clocks
// since the horizontal sync generator wrapped.
type lineClock struct {
	hsync *Slice
	div16 uint64
}

func (c lineClock) Now() uint64 {
	return uint64(c.hsync.Counter()) * c.div16 / 16
}

// NewFirmware configures the peripherals from the context. Nothing is
// started until Start() is called.
func NewFirmware(ctx *hardware.Context, dmaChannel int) (*Firmware, error) {
	fw := &Firmware{
		Ctx:   ctx,
		pclk:  NewSlice(hardware.PixelSlice),
		hsync: NewSlice(hardware.HorizontalSlice),
		vsync: NewSlice(hardware.VerticalSlice),
	}

	var err error

	fw.sm, err = pio.PIO0.ClaimStateMachine()
	if err != nil {
		return nil, curated.Errorf(BadFirmware, err)
	}
	Pio := fw.sm.PIO()
	offset, err := Pio.AddProgram(parallelInstructions, -1)
	if err != nil {
		return nil, curated.Errorf(BadFirmware, err)
	}

	base := machine.Pin(hardware.DataPin)
	pinCfg := machine.PinConfig{Mode: Pio.PinMode()}
	for p := base; p < base+busWidth; p++ {
		p.Configure(pinCfg)
	}
	fw.sm.SetPindirsConsecutive(base, busWidth, true)

	cfg := pio.DefaultStateMachineConfig()
	cfg.SetWrap(offset, offset)
	cfg.SetOutPins(base, busWidth)
	cfg.SetOutShift(true, true, busWidth)
	cfg.SetFIFOJoin(pio.FifoJoinTx)
	fw.sm.Init(offset, cfg)
	fw.sm.SetEnabled(true)

	fw.hsync.ClearIRQ()
	fw.hsync.Configure(ctx.Horizontal, hardware.HSyncPin)
	fw.vsync.Configure(ctx.Vertical, hardware.VSyncPin)
	fw.pclk.Configure(ctx.Pixel, hardware.PixelClockPin)

	fw.dma, err = NewChannel(dmaChannel)
	if err != nil {
		return nil, err
	}
	fw.dma.Configure(ctx.Store.Working, fw.sm.TxReg(), PWMDREQ(hardware.PixelSlice))

	fw.Controller, err = scanline.NewController(scanline.Config{
		TicksPerLine: ctx.TicksPerLine,
		Divisor:      ctx.Spec.LineDivisor,
		Window:       ctx.Window,
		Budget:       ctx.Budget,
	}, ctx.Store, fw.vsync, fw.hsync, fw.dma, lineClock{
		hsync: fw.hsync,
		div16: uint64(ctx.Horizontal.Div16()),
	})
	if err != nil {
		return nil, err
	}
	fw.Controller.SetLogging(logger.Deny)
	if ctx.Framebuffer != nil {
		fw.Controller.SetTemplateSource(ctx.Framebuffer)
	}

	return fw, nil
}

func handleWrap(interrupt.Interrupt) {
	fw := running
	fw.Controller.OnLineTick(scanline.LineTick{
		Counter: fw.hsync.Counter(),
	})
}

// Start installs the line handler and starts the three slices with a single
// write of the enable mask. Only one firmware can be started.
func (fw *Firmware) Start() error {
	if running != nil {
		return curated.Errorf(BadFirmware, "already started")
	}
	running = fw

	fw.hsync.SetIRQEnabled(true)
	intr := interrupt.New(rp.IRQ_PWM_IRQ_WRAP, handleWrap)
	intr.SetPriority(0)
	intr.Enable()

	// the first transfer waits on the pixel clock, which is not yet running
	fw.dma.Rearm(fw.Ctx.Store.Working)

	SetMaskEnabled(hardware.EnableMask)

	return nil
}

// Idle blinks the LED and the test pin. It never returns.
func (fw *Firmware) Idle() {
	led := machine.Pin(hardware.LEDPin)
	tst := machine.Pin(hardware.TestPin)
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	tst.Configure(machine.PinConfig{Mode: machine.PinOutput})

	for {
		led.Low()
		tst.Low()
		time.Sleep(blinkDelay)
		led.High()
		tst.High()
		time.Sleep(blinkDelay)
	}
}
