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

// Package preferences holds the user adjustable values of the simulated
// generator. Values are stored on disk with the prefs package and can be
// overridden on the command line with the -prefs flag.
package preferences

import (
	"math/rand/v2"
	"time"

	"github.com/vgapico/vgapico/curated"
	"github.com/vgapico/vgapico/hardware/vga/specification"
	"github.com/vgapico/vgapico/paths"
	"github.com/vgapico/vgapico/prefs"
)

// List of valid values for the Pattern preference.
const (
	PatternSolid = "solid"
	PatternBars  = "bars"
)

// Preferences defines and collates all the preference values used by the
// generator.
type Preferences struct {
	dsk *prefs.Disk

	// the image window. the default values are taken from the
	// specification
	WindowOffset prefs.Int
	WindowRows   prefs.Int

	// simulated delay in source clocks between the wrap of the horizontal
	// sync generator and the handler reading the clock. covers interrupt
	// entry and the work done by the handler before the re-arm
	IRQLatency prefs.Int

	// maximum random addition to IRQLatency in source clocks. zero for a
	// fixed latency
	IRQJitter prefs.Int

	// the number used to seed RandSrc. zero means seed from the time
	IRQSeed prefs.Int

	// content of the active lines. one of PatternSolid or PatternBars
	Pattern prefs.String

	// random values used by the generator should use the following number
	// source
	RandSrc *rand.Rand
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("generator.window.offset", &p.WindowOffset)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("generator.window.rows", &p.WindowRows)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("generator.irq.latency", &p.IRQLatency)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("generator.irq.jitter", &p.IRQJitter)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("generator.irq.seed", &p.IRQSeed)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("generator.pattern", &p.Pattern)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	p.Reseed()

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	w := specification.Spec640x480.Window
	p.WindowOffset.Set(w.Offset)
	p.WindowRows.Set(w.Rows)

	// about 1.8us at 270MHz
	p.IRQLatency.Set(486)
	p.IRQJitter.Set(0)
	p.IRQSeed.Set(0)
	p.Pattern.Set(PatternSolid)
}

// Reseed initialises the random number generator from the IRQSeed value.
func (p *Preferences) Reseed() {
	seed := uint64(p.IRQSeed.Get().(int))
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	p.RandSrc = rand.New(rand.NewPCG(seed, seed>>32|1))
}

// Window returns the specification window with the offset and rows of the
// preferences applied.
func (p *Preferences) Window(spec specification.Spec) specification.Window {
	w := spec.Window
	w.Offset = p.WindowOffset.Get().(int)
	w.Rows = p.WindowRows.Get().(int)
	return w
}

// Reset all generator preferences to the default values.
func (p *Preferences) Reset() error {
	p.SetDefaults()
	return p.dsk.Save()
}

// Load current generator preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current generator preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
