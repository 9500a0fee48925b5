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

import (
	"fmt"

	"github.com/arcadeit/arcadeit/hardware/vga/specification"
)

// HSyncIdle is the level of the horizontal sync bit when the sync pulse is not
// being sent. It is OR'd into every word that is not part of the sync pulse.
const HSyncIdle uint16 = 0x8000

// MaxColors is the number of entries in a palette.
const MaxColors = 256

// Palette maps colour indexes to RGB555 colours. Bit 15 of an entry is
// ignored.
type Palette struct {
	ID        int
	MaxColors int
	Colors    [MaxColors]uint16
}

// Renderer is the method used to turn framebuffer data into bus words.
type Renderer int

// List of valid Renderer values.
const (
	// each byte in the framebuffer indexes the show palette
	Paletted Renderer = iota

	// each word in the framebuffer is an RGB555 value
	DirectRGB
)

func (r Renderer) String() string {
	switch r {
	case Paletted:
		return "paletted"
	case DirectRGB:
		return "direct"
	}
	return fmt.Sprintf("renderer(%d)", int(r))
}

// Depth returns the number of bits per pixel in the framebuffer.
func (r Renderer) Depth() int {
	if r == DirectRGB {
		return 16
	}
	return 8
}

// Mode is the video mode requested with ModeSet().
type Mode struct {
	Spec specification.Spec

	// dimensions of the framebuffer. zero means the full width or height of
	// the resolution. smaller framebuffers are centered with a border
	Width  int
	Height int

	Renderer     Renderer
	DoubleBuffer bool
}

func (m Mode) String() string {
	db := ""
	if m.DoubleBuffer {
		db = " double buffered"
	}
	return fmt.Sprintf("%dx%d in %s %s%s", m.Width, m.Height, m.Spec, m.Renderer, db)
}

// Framebuffer is the pixel data for one picture. Only one of Indexed and
// Direct is allocated, depending on the Renderer of the mode.
type Framebuffer struct {
	Width   int
	Height  int
	Indexed []uint8
	Direct  []uint16
}

func newFramebuffer(m Mode) Framebuffer {
	fb := Framebuffer{
		Width:  m.Width,
		Height: m.Height,
	}
	switch m.Renderer {
	case Paletted:
		fb.Indexed = make([]uint8, m.Width*m.Height)
	case DirectRGB:
		fb.Direct = make([]uint16, m.Width*m.Height)
	}
	return fb
}

// the scanline thresholds for a resolution. all values are physical scanlines
type timing struct {
	activeOn  int
	activeOff int
	vsyncOn   int
	vsyncOff  int
	lastLine  int
}

func newTiming(spec specification.Spec) timing {
	t := timing{
		activeOn:  0,
		activeOff: spec.LinesActive,
	}
	t.vsyncOn = t.activeOff + spec.LinesFrontPorch
	t.vsyncOff = t.vsyncOn + spec.LinesSync
	t.lastLine = spec.LinesTotal - 1
	return t
}
