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

// Package version reports the version of the program. The version number is
// set by the linker when building a release. For example:
//
//	go build -ldflags "-X github.com/vgapico/vgapico/version.number=v0.1.0"
//
// Builds without a version number are described by the revision control
// information stamped into the binary by the Go toolchain, if there is any.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "vgapico"

// set by the linker. empty if the program was not built for release
var number string

// Info describes the build of the program.
type Info struct {
	// the version number. if the program is not a release then this is
	// "unreleased" when there is revision control information and "local"
	// when there is none
	Number string

	// the vcs revision. suffixed with "+dirty" if the source had been
	// modified but not committed
	Revision string

	// the version of the Go toolchain that built the program
	GoVersion string

	// whether the number was set by the linker
	Release bool
}

func (i Info) String() string {
	if i.Release {
		return fmt.Sprintf("%s %s", ApplicationName, i.Number)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, i.Number, i.Revision)
}

var current Info

// Version returns the build information of the program.
func Version() Info {
	return current
}

func init() {
	current = describe(number)
}

func describe(number string) Info {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	var info Info

	bi, ok := debug.ReadBuildInfo()
	if ok {
		info.GoVersion = bi.GoVersion
		for _, v := range bi.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	if vcsRevision == "" {
		info.Revision = "no revision information"
	} else {
		info.Revision = vcsRevision
		if vcsModified {
			info.Revision = fmt.Sprintf("%s+dirty", info.Revision)
		}
	}

	switch {
	case number != "":
		info.Number = number
		info.Release = true
	case vcs:
		info.Number = "unreleased"
	default:
		info.Number = "local"
	}

	return info
}
