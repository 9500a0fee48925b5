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

// Package loader reads picture images from disk, or from the network, and
// copies them into a framebuffer of the video driver.
//
// Images are either raw binary files or Intel HEX files. In both cases the
// address of a byte is its offset from the start of the framebuffer. Direct
// RGB framebuffers are little-endian, as they are on the board.
package loader
