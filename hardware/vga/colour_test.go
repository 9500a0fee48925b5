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

package vga_test

import (
	"testing"

	"github.com/arcadeit/arcadeit/hardware/vga"
	"github.com/arcadeit/arcadeit/test"
)

func TestColour(t *testing.T) {
	test.ExpectEquality(t, vga.RGB555(255, 0, 0), uint16(0x7c00))
	test.ExpectEquality(t, vga.RGB555(0, 255, 0), uint16(0x03e0))
	test.ExpectEquality(t, vga.RGB555(0, 0, 255), uint16(0x001f))
	test.ExpectEquality(t, vga.RGB555(0x08, 0x10, 0x18), uint16(0x0443))

	r, g, b := vga.RGB(0x7fff | vga.HSyncIdle)
	test.ExpectEquality(t, r, uint8(255))
	test.ExpectEquality(t, g, uint8(255))
	test.ExpectEquality(t, b, uint8(255))

	r, g, b = vga.RGB(vga.HSyncIdle)
	test.ExpectEquality(t, r, uint8(0))
	test.ExpectEquality(t, g, uint8(0))
	test.ExpectEquality(t, b, uint8(0))

	// the round trip keeps the top five bits
	for _, c := range []uint8{0, 0x08, 0x80, 0xf8} {
		r, g, b = vga.RGB(vga.RGB555(c, c, c))
		test.ExpectEquality(t, r&0xf8, c)
		test.ExpectEquality(t, g&0xf8, c)
		test.ExpectEquality(t, b&0xf8, c)
	}
}
