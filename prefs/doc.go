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

// Package prefs facilitates the storage of preferential values in the
// vgapico system. It is used by the hardware package for the simulator
// preferences, eg. the simulated interrupt latency, and by the command line
// tool.
//
// Values are of type Bool, Int, Float or String. Each is safe to read and
// write from different goroutines. A value is associated with a key and a
// Disk with the Add() function:
//
//	dsk, err := prefs.NewDisk(pth)
//	var latency prefs.Int
//	err = dsk.Add("irq.latency", &latency)
//
// Values are saved with Disk.Save() and restored with Disk.Load(). The file
// format is one "key :: value" pair per line. Keys from other Disk instances
// sharing the same file are preserved when saving.
//
// Values can also be set on the command line with the "-prefs" flag. The
// argument is pushed onto the command line stack with
// PushCommandLineStack(). A value on the stack takes precedence over the
// value stored on disk but is never itself saved to disk unless the value
// is changed after loading.
package prefs
