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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with
// Errorf(), in the same way as fmt.Errorf().
//
// The difference is that the pattern string is kept alongside the values
// used to format it. The pattern can then be used to identify the error
// without resorting to string matching on the formatted message:
//
//	const Infeasible = "synthesis: infeasible: %v"
//
//	err := curated.Errorf(Infeasible, "wrap exceeds 16 bits")
//	if curated.Is(err, Infeasible) {
//		...
//	}
//
// Has() does the same but also searches the chain of curated errors given as
// values to Errorf(). IsAny() returns true for any curated error.
//
// When formatted, adjacent duplicate message parts are removed. This means
// that wrapping an error from the same package does not repeat the package
// prefix:
//
//	synthesis: synthesis: infeasible
//
// becomes
//
//	synthesis: infeasible
package curated
