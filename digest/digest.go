// This file is part of ArcadeIT.
//
// ArcadeIT is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ArcadeIT is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ArcadeIT.  If not, see <https://www.gnu.org/licenses/>.

// Package digest contains implementations of the monitor.PixelRenderer
// interface that produce a cryptographic hash of the video output. The hash
// can be used to compare the output of subsequent runs of the simulator. If a
// new hash differs from a previously recorded value then something has
// changed. We use this as the basis for regression tests of the video driver.
package digest

// Digest implementations should return a cryptographic hash in response to a
// Hash() request. Generation of the hash is achieved via another interface.
type Digest interface {
	Hash() string
	ResetDigest()
}
