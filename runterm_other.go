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

//go:build !linux && !darwin

package main

import (
	"fmt"

	"github.com/vgapico/vgapico/modalflag"
)

// run needs a posix terminal.
func run(md *modalflag.Modes, _ *mainSync) error {
	return fmt.Errorf("%s mode is not available on this platform", md)
}
