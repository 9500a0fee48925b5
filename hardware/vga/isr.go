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

// LineComplete is the interrupt handler for the DMA stream. It is called at
// the end of every line transfer and prepares the line that will be streamed
// after the one that has just started.
//
// The handler must never write to the line buffer under the current DMA
// target. It does not log and does not allocate.
func (drv *Driver) LineComplete() {
	var start uint32
	if drv.cycles != nil {
		start = drv.cycles.Cycles()
	}

	drv.stream.AckComplete()
	if !drv.started.Load() {
		return
	}

	t := drv.timing
	S := drv.line

	if S >= t.activeOn && S < t.activeOff {
		if S == t.activeOn {
			drv.sub = 0
			drv.cursor = 0
			drv.vblank.Store(false)
		}
		drv.scanline(S)
	} else {
		if S == t.activeOff {
			drv.vblank.Store(true)
		}
		if S == t.vsyncOn {
			drv.vsync.Set(false)
		} else if S == t.vsyncOff {
			drv.vsync.Set(true)
		}
		drv.setIdle(drv.blank)
	}

	if S == t.lastLine {
		drv.frameEnd()
	}

	drv.line++
	drv.lines.Add(1)

	if drv.cycles != nil {
		elapsed := drv.cycles.Cycles() - start
		if elapsed > drv.maxCycles.Load() {
			drv.maxCycles.Store(elapsed)
		}
		if elapsed > drv.spec.ClocksPerLine() {
			drv.overruns.Add(1)
		}
	}
}

// point the idle DMA target at buf. buf will be streamed after the line
// currently being streamed
func (drv *Driver) setIdle(buf []uint16) {
	// the idle target can always be changed and the line buffers are never
	// shorter than the transfer length
	_ = drv.stream.SetMemory(drv.stream.Idle(), buf)
}

// scanline handles a physical line S in the active band
func (drv *Driver) scanline(S int) {
	due := drv.sub == 0
	drv.sub++
	if drv.sub >= drv.spec.Multiplier() {
		drv.sub = 0
	}

	// repeat the last rendered line
	if !due {
		if drv.blanked {
			drv.setIdle(drv.blank)
		} else {
			drv.setIdle(drv.show)
		}
		return
	}

	logical := (S - drv.timing.activeOn) >> drv.spec.Factor
	picture := logical >= drv.padY && logical < drv.padY+drv.mode.Height

	drv.blanked = !drv.output.Load()
	if drv.blanked {
		if picture {
			drv.cursor++
		}
		drv.setIdle(drv.blank)
		return
	}

	// render is never the current target in normal running but a mode
	// change can leave stale addresses. render into the other buffer if so
	if drv.stream.IsStreaming(drv.render) {
		drv.show, drv.render = drv.render, drv.show
	}

	buf := drv.render[:drv.spec.Active]
	border := uint16(drv.border.Load())

	if picture {
		w := drv.mode.Width
		fill(buf[:drv.padX], border)
		drv.renderLine(buf[drv.padX:drv.padX+w], w)
		fill(buf[drv.padX+w:], border)
		drv.cursor++
	} else {
		fill(buf, border)
	}

	drv.setIdle(drv.render)
	drv.show, drv.render = drv.render, drv.show
}

// renderLine expands the framebuffer line under the cursor into bus words
func (drv *Driver) renderLine(out []uint16, w int) {
	fb := &drv.fb[drv.showFB.Load()]
	o := drv.cursor * w

	switch drv.mode.Renderer {
	case Paletted:
		pal := &drv.palette[drv.showPal.Load()]
		for i, c := range fb.Indexed[o : o+w] {
			out[i] = pal.Colors[c] | HSyncIdle
		}
	case DirectRGB:
		for i, c := range fb.Direct[o : o+w] {
			out[i] = c | HSyncIdle
		}
	}
}

// frameEnd performs the requested swaps. the border colour always comes from
// the palette that is about to be shown
func (drv *Driver) frameEnd() {
	if drv.swapBuffer.CompareAndSwap(true, false) && drv.mode.DoubleBuffer {
		drv.showFB.Store(drv.showFB.Load() ^ 1)
	}
	if drv.swapPalette.CompareAndSwap(true, false) {
		drv.showPal.Store(drv.showPal.Load() ^ 1)
	}
	drv.border.Store(uint32(drv.palette[drv.showPal.Load()].Colors[0] | HSyncIdle))

	drv.frames.Add(1)
	drv.line = -1
	drv.sub = 0
}
