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

// Package digest creates fingerprints of the output of the generator. Two
// runs of the generator with the same preferences produce the same
// fingerprint and so the digest is useful for regression testing the line
// handler.
package digest

// Digest implementations create a fingerprint of data they have seen.
type Digest interface {
	Hash() string
	ResetDigest()
}
