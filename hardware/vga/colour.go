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

package vga

// RGB555 packs 8 bit colour components into a bus colour. Only the top five
// bits of each component are kept.
func RGB555(r, g, b uint8) uint16 {
	return uint16(r>>3)<<10 | uint16(g>>3)<<5 | uint16(b>>3)
}

// RGB expands a bus colour into 8 bit components. The low bits of each
// component repeat the high bits so that full intensity is 255. Bit 15 is
// ignored.
func RGB(w uint16) (r, g, b uint8) {
	expand := func(v uint16) uint8 {
		v &= 0x1f
		return uint8(v<<3 | v>>2)
	}
	return expand(w >> 10), expand(w >> 5), expand(w)
}
