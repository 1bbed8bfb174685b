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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/vgapico/vgapico/hardware/vga/signal"
)

// Frames is a fingerprint of the output pins of the generator. It is both a
// dma.Sink and a signal.Observer and should be attached to the generator as
// both.
//
// Every word moved by the DMA channel is added to the fingerprint, as is the
// source clock of every rising edge of the horizontal sync. The fingerprint
// is chained at the rising edge of the vertical sync, so the hash of a frame
// depends on the hash of every frame before it.
type Frames struct {
	digest [sha1.Size]byte
	frame  hash.Hash
	prev   signal.Levels
	frames int

	buf [8]byte
}

// NewFrames is the preferred method of initialisation for the Frames type.
func NewFrames() *Frames {
	dig := &Frames{
		frame: sha1.New(),
	}
	dig.frame.Write(dig.digest[:])
	return dig
}

// Hash implements the Digest interface. The hash does not change until the
// end of the current frame.
func (dig *Frames) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Frames) ResetDigest() {
	clear(dig.digest[:])
	dig.frame.Reset()
	dig.frame.Write(dig.digest[:])
	dig.frames = 0
}

// Frames returns the number of frames that have been chained into the hash.
func (dig *Frames) Frames() int {
	return dig.frames
}

// Push implements the dma.Sink interface.
func (dig *Frames) Push(word uint16) {
	binary.LittleEndian.PutUint16(dig.buf[:2], word)
	dig.frame.Write(dig.buf[:2])
}

// Signal implements the signal.Observer interface.
func (dig *Frames) Signal(l signal.Levels) {
	if l.HSync && !dig.prev.HSync {
		binary.LittleEndian.PutUint64(dig.buf[:], l.Clock)
		dig.frame.Write(dig.buf[:])
	}

	if l.VSync && !dig.prev.VSync {
		// chain fingerprints by starting the next frame with the hash of
		// this one
		copy(dig.digest[:], dig.frame.Sum(nil))
		dig.frame.Reset()
		dig.frame.Write(dig.digest[:])
		dig.frames++
	}

	dig.prev = l
}
