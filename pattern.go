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

package main

import "github.com/arcadeit/arcadeit/hardware/vga"

// the palette used for loaded images and the test pattern. index bits are
// RRRGGGBB. entry zero is black and is the border colour
func setPalette(pal *vga.Palette) {
	pal.MaxColors = vga.MaxColors
	for i := range pal.Colors {
		r := uint8((i >> 5) * 255 / 7)
		g := uint8((i >> 2 & 0x07) * 255 / 7)
		b := uint8((i & 0x03) * 255 / 3)
		pal.Colors[i] = vga.RGB555(r, g, b)
	}
}

// palette indexes of the colour bars
var bars = [...]uint8{
	0xff, // white
	0xfc, // yellow
	0x1f, // cyan
	0x1c, // green
	0xe3, // magenta
	0xe0, // red
	0x03, // blue
	0x00, // black
}

// colour bars over the top three quarters of the picture and every palette
// entry across the bottom quarter
func testPattern(drv *vga.Driver) {
	setPalette(drv.RenderPalette())
	drv.SwapPalette()

	fb := drv.RenderFramebuffer()
	if fb.Indexed == nil {
		return
	}

	split := fb.Height * 3 / 4
	for y := range fb.Height {
		row := fb.Indexed[y*fb.Width : (y+1)*fb.Width]
		for x := range row {
			if y < split {
				row[x] = bars[x*len(bars)/fb.Width]
			} else {
				row[x] = uint8(x * vga.MaxColors / fb.Width)
			}
		}
	}

	drv.SwapBuffer()
}
