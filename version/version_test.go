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

package version_test

import (
	"strings"
	"testing"

	"github.com/vgapico/vgapico/test"
	"github.com/vgapico/vgapico/version"
)

// tests are never built with a version number
func TestVersion(t *testing.T) {
	info := version.Version()
	test.ExpectFailure(t, info.Release)
	test.ExpectSuccess(t, info.Number == "local" || info.Number == "unreleased")
	test.ExpectSuccess(t, strings.HasPrefix(info.String(), version.ApplicationName+" "))
	test.ExpectSuccess(t, strings.Contains(info.String(), info.Revision))
}
