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

// Package test contains helper functions for the package tests. The Expect
// functions report a failure and allow the test to continue. The Demand
// functions stop the test immediately.
//
// The tags argument of each function is optional. Any tags given are printed
// as part of the failure message and are useful for identifying which
// iteration of a loop failed:
//
//	for line := range 263 {
//		test.ExpectEquality(t, scanline.LineIndex(c, 78, 2), line, "line", line)
//	}
package test
