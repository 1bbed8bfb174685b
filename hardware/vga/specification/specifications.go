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

package specification

import (
	"strings"

	"github.com/vgapico/vgapico/curated"
	"github.com/vgapico/vgapico/hardware/clocks"
)

// SpecList is the list of all built-in specification IDs.
var SpecList = []string{"640x480"}

// Spec640x480 is the VESA 640x480@60Hz mode generated from the overclocked
// RP2040 system clock.
var Spec640x480 Spec

// UnknownSpec is returned by Lookup() when there is no specification with the
// requested ID.
const UnknownSpec = "specification: unknown specification (%s)"

func init() {
	horizontal := Segments{
		Visible:    640,
		FrontPorch: 16,
		SyncPulse:  96,
		BackPorch:  48,
		Whole:      800,
	}

	vertical := Segments{
		Visible:    480,
		FrontPorch: 10,
		SyncPulse:  2,
		BackPorch:  33,
		Whole:      525,
	}

	hz := clocks.Hz(clocks.VGA640) / float64(horizontal.Whole)

	Spec640x480 = Spec{
		ID:         "640x480",
		Horizontal: horizontal,
		Vertical:   vertical,

		// 390 pixel clocks at 22 source clocks each is exactly one line of
		// 8580 source clocks
		PixelsPerLine: 390,

		VerticalDivider: 110,
		LineDivisor:     2,
		CounterBits:     16,

		Window: Window{
			Offset:       40,
			Rows:         192,
			ResolutionX:  280,
			BufferOffset: 44,
		},
	}

	Spec640x480.Frequencies = Frequencies{
		Source:     clocks.Hz(clocks.RP2040Overclock),
		Pixel:      hz * float64(Spec640x480.PixelsPerLine),
		Horizontal: hz,
		Vertical:   hz / float64(vertical.Whole),
	}

	if err := Spec640x480.Validate(); err != nil {
		panic(err)
	}
}

// Lookup returns the specification with the ID. The comparison is case
// insensitive.
func Lookup(id string) (Spec, error) {
	switch strings.ToUpper(id) {
	case "640X480", "VGA", "AUTO", "":
		return Spec640x480, nil
	}
	return Spec{}, curated.Errorf(UnknownSpec, id)
}
