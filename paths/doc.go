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

// Package paths contains functions to prepare paths for vgapico resources.
//
// The ResourcePath() function modifies the supplied resource path such that
// it is prefixed with the appropriate vgapico configuration directory.
//
// If a ".vgapico" directory exists in the current working directory then
// that is used. Otherwise the directory "vgapico" in the user configuration
// directory (as reported by os.UserConfigDir()) is used.
//
// UniqueFilename() creates a timestamped filename for captures.
package paths
