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

	"github.com/arcadeit/arcadeit/hardware/dma"
	"github.com/arcadeit/arcadeit/hardware/gpio"
	"github.com/arcadeit/arcadeit/hardware/timer"
	"github.com/arcadeit/arcadeit/hardware/vga"
	"github.com/arcadeit/arcadeit/hardware/vga/specification"
	"github.com/arcadeit/arcadeit/test"
)

// capture is the peripheral end of the DMA stream. it records a copy of every
// line and the level of the vsync pin while the line was streamed
type capture struct {
	vsync *gpio.Pin
	lines [][]uint16
	low   []bool
}

func (c *capture) Transfer(words []uint16) {
	c.lines = append(c.lines, append([]uint16(nil), words...))
	c.low = append(c.low, !c.vsync.High())
}

func (c *capture) reset() {
	c.lines = c.lines[:0]
	c.low = c.low[:0]
}

type harness struct {
	t      *testing.T
	drv    *vga.Driver
	stream *dma.Stream
	vsync  *gpio.Pin
	cap    *capture
}

func newHarness(t *testing.T, m vga.Mode, cycles vga.CycleCounter) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		vsync: gpio.NewPin("VSYNC", true),
	}
	h.cap = &capture{vsync: h.vsync}
	h.stream = dma.NewStream("DMA2S5", h.cap)
	h.drv = vga.NewDriver(timer.NewTimer("TIM8"), h.stream, h.vsync, cycles)
	h.stream.SetHandler(h.drv.LineComplete)
	test.DemandSuccess(t, h.drv.ModeSet(m))
	return h
}

func (h *harness) run(n int) {
	h.t.Helper()
	for range n {
		test.DemandSuccess(h.t, h.stream.Complete())
	}
}

// start the driver and stream the priming lines. the next line streamed is
// the first line of a frame
func (h *harness) start() {
	h.t.Helper()
	test.DemandSuccess(h.t, h.drv.Start())
	h.run(vga.PrimingLines)
	h.cap.reset()
}

// frame streams one whole frame and returns the lines in order
func (h *harness) frame() [][]uint16 {
	h.t.Helper()
	h.cap.reset()
	h.run(h.drv.Mode().Spec.LinesTotal)
	return h.cap.lines
}

// expectWords checks that every word in line[from:to] is want. only the first
// mismatch is reported
func expectWords(t *testing.T, line []uint16, from, to int, want uint16, tags ...any) bool {
	t.Helper()
	for i := from; i < to; i++ {
		if line[i] != want {
			t.Errorf("%v: word %d is %#04x not %#04x", tags, i, line[i], want)
			return false
		}
	}
	return true
}

// expectPicture checks the active part of every active line
func expectPicture(t *testing.T, spec specification.Spec, lines [][]uint16, want uint16) {
	t.Helper()
	for y := 0; y < spec.LinesActive; y++ {
		if !expectWords(t, lines[y], 0, spec.Active, want, "line", y) {
			return
		}
	}
}

func TestLineGeometry(t *testing.T) {
	for _, spec := range specification.SpecList {
		h := newHarness(t, vga.Mode{Spec: spec}, nil)
		h.start()
		lines := h.frame()
		test.DemandEquality(t, len(lines), spec.LinesTotal, spec.ID)

		for y, line := range lines {
			test.DemandEquality(t, len(line), spec.SamplesPerLine, spec.ID, y)

			zeros := 0
			for i, w := range line {
				if w == 0 {
					zeros++
					if i < spec.SyncStart() || i >= spec.SyncStart()+spec.Sync {
						t.Fatalf("%s: line %d: zero word outside sync pulse at %d", spec.ID, y, i)
					}
				} else if w&vga.HSyncIdle == 0 {
					t.Fatalf("%s: line %d: word %d does not have sync idle bit", spec.ID, y, i)
				}
			}
			test.DemandEquality(t, zeros, spec.Sync, spec.ID, y)
		}
	}
}

func TestVSync(t *testing.T) {
	spec := specification.SpecQQVGA
	h := newHarness(t, vga.Mode{Spec: spec}, nil)
	h.start()
	test.ExpectSuccess(t, h.vsync.High())

	h.frame()
	test.ExpectEquality(t, h.vsync.Edges(), 2)
	test.ExpectSuccess(t, h.vsync.High())

	// the pin changes when the line before the sync band starts streaming
	first := spec.LinesActive + spec.LinesFrontPorch - 1
	for y, low := range h.cap.low {
		inSync := y >= first && y < first+spec.LinesSync
		test.ExpectEquality(t, low, inSync, y)
	}

	h.frame()
	test.ExpectEquality(t, h.vsync.Edges(), 4)
}

func TestVBlank(t *testing.T) {
	spec := specification.SpecQVGA
	h := newHarness(t, vga.Mode{Spec: spec}, nil)
	test.DemandSuccess(t, h.drv.Start())

	// the interrupt for the nth transfer prepares line n of the first frame
	h.run(spec.LinesActive)
	test.ExpectFailure(t, h.drv.VBlank())
	h.run(1)
	test.ExpectSuccess(t, h.drv.VBlank())

	h.run(spec.LinesTotal - spec.LinesActive - 1)
	test.ExpectSuccess(t, h.drv.VBlank())
	test.ExpectEquality(t, h.drv.Frame(), uint64(1))
	h.run(1)
	test.ExpectFailure(t, h.drv.VBlank())
}

func TestSwapBuffer(t *testing.T) {
	spec := specification.SpecQQVGA
	h := newHarness(t, vga.Mode{Spec: spec, Renderer: vga.DirectRGB, DoubleBuffer: true}, nil)

	render := h.drv.RenderDirect()
	for i := range render {
		render[i] = 0x1234
	}

	h.start()
	expectPicture(t, spec, h.frame(), vga.HSyncIdle)

	// request twice in the middle of the frame
	h.cap.reset()
	h.run(100)
	h.drv.SwapBuffer()
	h.drv.SwapBuffer()
	test.ExpectSuccess(t, h.drv.SwapPending())
	h.run(spec.LinesTotal - 100)
	test.ExpectFailure(t, h.drv.SwapPending())
	expectPicture(t, spec, h.cap.lines, vga.HSyncIdle)

	// the new buffer is shown and stays shown
	expectPicture(t, spec, h.frame(), 0x1234|vga.HSyncIdle)
	expectPicture(t, spec, h.frame(), 0x1234|vga.HSyncIdle)

	// the old show buffer is now the render buffer
	test.ExpectEquality(t, h.drv.RenderDirect()[0], uint16(0))
}

func TestSingleBuffer(t *testing.T) {
	spec := specification.SpecQQVGA
	h := newHarness(t, vga.Mode{Spec: spec, Renderer: vga.DirectRGB}, nil)
	test.ExpectSuccess(t, h.drv.RenderIndexed() == nil)

	h.start()
	render := h.drv.RenderDirect()
	for i := range render {
		render[i] = 0x0042
	}
	h.frame()
	expectPicture(t, spec, h.frame(), 0x0042|vga.HSyncIdle)

	h.drv.SwapBuffer()
	h.frame()
	test.ExpectFailure(t, h.drv.SwapPending())
	expectPicture(t, spec, h.frame(), 0x0042|vga.HSyncIdle)
}

func TestLineMultiplication(t *testing.T) {
	for _, spec := range []specification.Spec{specification.SpecVGA, specification.SpecQVGA, specification.SpecQQVGA} {
		h := newHarness(t, vga.Mode{Spec: spec, Renderer: vga.DirectRGB}, nil)

		// every framebuffer row has a different colour
		render := h.drv.RenderDirect()
		w := spec.Width()
		for y := range spec.Height() {
			for x := range w {
				render[y*w+x] = uint16(y + 1)
			}
		}

		h.start()
		lines := h.frame()
		for y := 0; y < spec.LinesActive; y++ {
			want := uint16(y>>spec.Factor+1) | vga.HSyncIdle
			if !expectWords(t, lines[y], 0, spec.Active, want, spec.ID, y) {
				break
			}
		}
	}
}

func TestPaletteIsolation(t *testing.T) {
	spec := specification.SpecQQVGA
	h := newHarness(t, vga.Mode{Spec: spec}, nil)

	fb := h.drv.RenderIndexed()
	for i := range fb {
		fb[i] = 7
	}
	h.drv.RenderPalette().Colors[7] = 0x1111
	h.drv.SwapPalette()

	h.start()
	expectPicture(t, spec, h.frame(), vga.HSyncIdle)
	expectPicture(t, spec, h.frame(), 0x1111|vga.HSyncIdle)

	// changing the render palette does not change the current picture
	h.drv.RenderPalette().Colors[7] = 0x2222
	expectPicture(t, spec, h.frame(), 0x1111|vga.HSyncIdle)

	h.drv.SwapPalette()
	expectPicture(t, spec, h.frame(), 0x1111|vga.HSyncIdle)
	expectPicture(t, spec, h.frame(), 0x2222|vga.HSyncIdle)
}

func TestIndexedScenario(t *testing.T) {
	spec := specification.SpecQQVGA
	h := newHarness(t, vga.Mode{Spec: spec}, nil)
	test.ExpectEquality(t, h.drv.Mode().Width, 160)
	test.ExpectEquality(t, h.drv.Mode().Height, 120)

	fb := h.drv.RenderIndexed()
	test.DemandEquality(t, len(fb), 160*120)
	for i := range fb {
		fb[i] = 7
	}
	pal := h.drv.RenderPalette()
	pal.Colors[0] = 0x8000
	pal.Colors[7] = 0xABCD
	h.drv.SwapPalette()

	h.start()
	h.frame()
	lines := h.frame()

	for y, line := range lines {
		for i, w := range line {
			var want uint16
			switch {
			case i >= spec.SyncStart() && i < spec.SyncStart()+spec.Sync:
				want = 0x0000
			case y < spec.LinesActive && i < spec.Active:
				want = 0xABCD
			default:
				want = pal.Colors[0]
			}
			if w != want {
				t.Fatalf("line %d: word %d is %#04x not %#04x", y, i, w, want)
			}
		}
	}
}

func TestBorder(t *testing.T) {
	spec := specification.SpecQQVGA
	h := newHarness(t, vga.Mode{Spec: spec, Width: 128, Height: 100}, nil)

	fb := h.drv.RenderIndexed()
	test.DemandEquality(t, len(fb), 128*100)
	for i := range fb {
		fb[i] = 7
	}
	pal := h.drv.RenderPalette()
	pal.Colors[0] = 0x0421
	pal.Colors[7] = 0x7c00
	h.drv.SwapPalette()

	h.start()
	h.frame()
	test.ExpectEquality(t, h.drv.Border(), uint16(0x8421))
	lines := h.frame()

	// 10 logical lines of border at the top and bottom and 16 pixels at the
	// left and right
	top := 10 * spec.Multiplier()
	bottom := top + 100*spec.Multiplier()
	for y := 0; y < spec.LinesActive; y++ {
		if y < top || y >= bottom {
			expectWords(t, lines[y], 0, spec.Active, 0x8421, y)
			continue
		}
		expectWords(t, lines[y], 0, 16, 0x8421, y)
		expectWords(t, lines[y], 16, 144, 0xfc00, y)
		expectWords(t, lines[y], 144, spec.Active, 0x8421, y)
	}
}

func TestSwitchScreen(t *testing.T) {
	spec := specification.SpecQVGA
	h := newHarness(t, vga.Mode{Spec: spec, Renderer: vga.DirectRGB}, nil)

	render := h.drv.RenderDirect()
	w := spec.Width()
	for y := range spec.Height() {
		for x := range w {
			render[y*w+x] = uint16(y + 1)
		}
	}

	h.start()
	test.ExpectSuccess(t, h.drv.ScreenOn())
	h.drv.SwitchScreen(false)
	test.ExpectFailure(t, h.drv.ScreenOn())
	h.frame()
	expectPicture(t, spec, h.frame(), vga.HSyncIdle)

	// the framebuffer cursor is still aligned when the screen is switched on
	h.drv.SwitchScreen(true)
	h.frame()
	lines := h.frame()
	for y := 0; y < spec.LinesActive; y++ {
		if !expectWords(t, lines[y], 0, spec.Active, uint16(y>>1+1)|vga.HSyncIdle, y) {
			break
		}
	}
}

func TestSwitchScreenAfterPicture(t *testing.T) {
	spec := specification.SpecQVGA
	h := newHarness(t, vga.Mode{Spec: spec, Renderer: vga.DirectRGB}, nil)

	render := h.drv.RenderDirect()
	for i := range render {
		render[i] = 0x1234
	}

	h.start()
	h.frame()
	expectPicture(t, spec, h.frame(), 0x1234|vga.HSyncIdle)

	// repeated lines must not carry the last picture line
	h.drv.SwitchScreen(false)
	h.frame()
	expectPicture(t, spec, h.frame(), vga.HSyncIdle)

	h.drv.SwitchScreen(true)
	h.frame()
	expectPicture(t, spec, h.frame(), 0x1234|vga.HSyncIdle)
}

// slowCPU advances by a fixed number of cycles every time it is read
type slowCPU struct {
	cycles uint32
	step   uint32
}

func (c *slowCPU) Cycles() uint32 {
	c.cycles += c.step
	return c.cycles
}

func TestOverrun(t *testing.T) {
	spec := specification.SpecQQVGA

	cpu := &slowCPU{step: 100}
	h := newHarness(t, vga.Mode{Spec: spec}, cpu)
	h.start()
	h.frame()
	stats := h.drv.Stats()
	test.ExpectEquality(t, stats.Overruns, uint64(0))
	test.ExpectEquality(t, stats.MaxCycles, uint32(100))
	test.ExpectEquality(t, stats.Lines, uint64(spec.LinesTotal+vga.PrimingLines))
	test.ExpectEquality(t, stats.Frames, uint64(1))

	cpu.step = spec.ClocksPerLine() + 1
	h.frame()
	stats = h.drv.Stats()
	test.ExpectEquality(t, stats.Overruns, uint64(spec.LinesTotal))
	test.ExpectEquality(t, stats.MaxCycles, spec.ClocksPerLine()+1)
}

func TestModeSetWhileRunning(t *testing.T) {
	h := newHarness(t, vga.Mode{Spec: specification.SpecQQVGA}, nil)
	h.start()
	h.frame()

	spec := specification.SpecVGA
	test.DemandSuccess(t, h.drv.ModeSet(vga.Mode{Spec: spec}))
	test.ExpectSuccess(t, h.drv.Started())

	h.run(vga.PrimingLines)
	lines := h.frame()
	test.DemandEquality(t, len(lines), spec.LinesTotal)
	test.ExpectEquality(t, len(lines[0]), spec.SamplesPerLine)
	test.ExpectEquality(t, lines[0][spec.SyncStart()], uint16(0))
	test.ExpectEquality(t, lines[0][spec.SyncStart()-1], vga.HSyncIdle)
}
