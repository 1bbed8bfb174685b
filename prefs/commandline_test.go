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

package prefs_test

import (
	"testing"

	"github.com/vgapico/vgapico/prefs"
	"github.com/vgapico/vgapico/test"
)

func TestCommandLineStack(t *testing.T) {
	// empty stack
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
	ok, _ := prefs.GetCommandLinePref("foo")
	test.ExpectFailure(t, ok)

	prefs.PushCommandLineStack("irq.latency::100; irq.jitter :: 20; badentry")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 1)

	ok, v := prefs.GetCommandLinePref("irq.latency")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v.(string), "100")

	// value is removed once it has been retrieved
	ok, _ = prefs.GetCommandLinePref("irq.latency")
	test.ExpectFailure(t, ok)

	// unused entries are returned when the stack is popped
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "irq.jitter::20")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestCommandLineOverride(t *testing.T) {
	fn := prefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v prefs.Int
	test.ExpectSuccess(t, dsk.Add("irq.latency", &v))
	test.ExpectSuccess(t, v.Set(50))
	test.DemandSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("irq.latency::200")
	defer prefs.PopCommandLineStack()

	dsk2, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var w prefs.Int
	test.ExpectSuccess(t, dsk2.Add("irq.latency", &w))
	test.ExpectEquality(t, w.Get().(int), 200)

	// command line value takes precedence over the value on disk
	test.ExpectSuccess(t, dsk2.Load(false))
	test.ExpectEquality(t, w.Get().(int), 200)
}
