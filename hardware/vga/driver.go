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
	"sync/atomic"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/dma"
	"github.com/arcadeit/arcadeit/hardware/gpio"
	"github.com/arcadeit/arcadeit/hardware/timer"
	"github.com/arcadeit/arcadeit/hardware/vga/specification"
	"github.com/arcadeit/arcadeit/logger"
)

// Sentinal error patterns.
const (
	ModeNotSet        = "vga: mode not set"
	InvalidDimensions = "vga: %dx%d framebuffer does not fit %s"
	InvalidRenderer   = "vga: invalid renderer (%v)"
	InvalidSpec       = "vga: invalid resolution: %v"
	Hardware          = "vga: %v"
)

// PrimingLines is the number of lines streamed after Start() before the first
// line prepared by the interrupt handler. They are always blank.
const PrimingLines = 2

// CycleCounter is a free running count of CPU cycles. On the board this is
// the DWT cycle counter.
type CycleCounter interface {
	Cycles() uint32
}

// Stats are the diagnostic counters of the driver.
type Stats struct {
	Frames uint64
	Lines  uint64

	// the number of lines on which the line complete interrupt took longer
	// than the line period. only counted if the driver has a CycleCounter
	Overruns  uint64
	MaxCycles uint32
}

// Driver is the video driver for one VGA output.
type Driver struct {
	timer  *timer.Timer
	stream *dma.Stream
	vsync  *gpio.Pin
	cycles CycleCounter

	// mode and derived values. only changed by ModeSet() while the driver
	// is stopped
	isSet  bool
	mode   Mode
	spec   specification.Spec
	timing timing
	padX   int
	padY   int

	// line buffers. show is the buffer last rendered into and render is the
	// buffer to render into next. the two roles are swapped after every
	// render
	blank  []uint16
	show   []uint16
	render []uint16

	fb      [2]Framebuffer
	showFB  atomic.Uint32
	palette [2]Palette
	showPal atomic.Uint32
	border  atomic.Uint32

	// requests from the application. set by the application and cleared by
	// the interrupt handler
	swapBuffer  atomic.Bool
	swapPalette atomic.Bool

	output  atomic.Bool
	started atomic.Bool
	vblank  atomic.Bool

	// scanline cursor. only touched by the interrupt handler and by Start()
	// while the stream is disabled
	line   int
	sub    int
	cursor int

	// the last line due for rendering was blanked because output was off.
	// repeats of that line are blank too
	blanked bool

	frames    atomic.Uint64
	lines     atomic.Uint64
	overruns  atomic.Uint64
	maxCycles atomic.Uint32
}

// NewDriver is the preferred method of initialisation for the Driver type.
// The cycle counter can be nil.
//
// The LineComplete() function should be installed as the interrupt handler of
// the DMA stream.
func NewDriver(tim *timer.Timer, stream *dma.Stream, vsync *gpio.Pin, cycles CycleCounter) *Driver {
	drv := &Driver{
		timer:  tim,
		stream: stream,
		vsync:  vsync,
		cycles: cycles,
	}
	drv.output.Store(true)
	for i := range drv.palette {
		drv.palette[i].ID = i
		drv.palette[i].MaxColors = MaxColors
	}
	drv.border.Store(uint32(HSyncIdle))
	return drv
}

func (drv *Driver) String() string {
	if !drv.isSet {
		return "no mode"
	}
	return drv.mode.String()
}

// ModeSet changes the video mode. If the driver is running it is stopped and
// started again with the new mode.
//
// New framebuffers are allocated. Palettes are kept.
func (drv *Driver) ModeSet(m Mode) error {
	if err := m.Spec.Validate(); err != nil {
		return curated.Errorf(InvalidSpec, err)
	}
	if m.Renderer != Paletted && m.Renderer != DirectRGB {
		return curated.Errorf(InvalidRenderer, m.Renderer)
	}
	if m.Width == 0 {
		m.Width = m.Spec.Width()
	}
	if m.Height == 0 {
		m.Height = m.Spec.Height()
	}
	if m.Width < 0 || m.Height < 0 || m.Width > m.Spec.Width() || m.Height > m.Spec.Height() {
		return curated.Errorf(InvalidDimensions, m.Width, m.Height, m.Spec)
	}

	running := drv.started.Load()
	if running {
		drv.Stop()
	}

	drv.mode = m
	drv.spec = m.Spec
	drv.timing = newTiming(m.Spec)
	drv.padX = (m.Spec.Width() - m.Width) / 2
	drv.padY = (m.Spec.Height() - m.Height) / 2

	drv.blank = make([]uint16, m.Spec.SamplesPerLine)
	drv.show = make([]uint16, m.Spec.SamplesPerLine)
	drv.render = make([]uint16, m.Spec.SamplesPerLine)

	drv.fb[0] = newFramebuffer(m)
	if m.DoubleBuffer {
		drv.fb[1] = newFramebuffer(m)
	} else {
		drv.fb[1] = drv.fb[0]
	}
	drv.showFB.Store(0)
	drv.swapBuffer.Store(false)

	drv.isSet = true

	if err := drv.Init(); err != nil {
		return err
	}

	logger.Logf(logger.Allow, "vga", "mode set: %s", m)

	if running {
		return drv.Start()
	}
	return nil
}

// Init programs the pixel timer and DMA stream for the current mode and fills
// the line buffers with the blanking and sync pattern. Called by ModeSet().
func (drv *Driver) Init() error {
	if !drv.isSet {
		return curated.Errorf(ModeNotSet)
	}
	if drv.started.Load() {
		drv.Stop()
	}

	if err := drv.timer.SetPeriod(drv.spec.HClocks); err != nil {
		return curated.Errorf(Hardware, err)
	}

	err := drv.stream.Configure(dma.Config{
		Length:       drv.spec.SamplesPerLine,
		Circular:     true,
		DoubleBuffer: true,
	})
	if err != nil {
		return curated.Errorf(Hardware, err)
	}

	border := uint16(drv.border.Load())
	for _, buf := range [][]uint16{drv.blank, drv.show, drv.render} {
		drv.fillSync(buf)
	}
	fill(drv.blank[:drv.spec.Active], HSyncIdle)
	fill(drv.show[:drv.spec.Active], border)
	fill(drv.render[:drv.spec.Active], border)

	return nil
}

// fillSync fills everything after the active part of the line. the sync pulse
// is the only run of zero words in a line buffer
func (drv *Driver) fillSync(buf []uint16) {
	s := drv.spec
	fill(buf[s.Active:], HSyncIdle)
	fill(buf[s.SyncStart():s.SyncStart()+s.Sync], 0)
}

func fill(buf []uint16, w uint16) {
	for i := range buf {
		buf[i] = w
	}
}

// Start the video output. The DMA stream is enabled before the timer so the
// first trigger is not lost.
//
// The first PrimingLines lines streamed after Start() are blank. The interrupt
// handler always prepares the line after the one being streamed.
func (drv *Driver) Start() error {
	if !drv.isSet {
		return curated.Errorf(ModeNotSet)
	}
	if drv.started.Load() {
		return nil
	}

	drv.line = drv.timing.activeOn
	drv.sub = 0
	drv.cursor = 0
	drv.blanked = false
	drv.vblank.Store(false)

	for _, t := range []dma.Target{dma.Memory0, dma.Memory1} {
		if err := drv.stream.SetMemory(t, drv.blank); err != nil {
			return curated.Errorf(Hardware, err)
		}
	}

	if err := drv.stream.Enable(); err != nil {
		return curated.Errorf(Hardware, err)
	}
	drv.timer.Enable()
	drv.started.Store(true)

	return nil
}

// Stop the video output immediately. The line being streamed may not be
// completed.
func (drv *Driver) Stop() {
	drv.timer.Disable()
	drv.stream.Disable()
	drv.started.Store(false)
}

// Started returns true if the driver is running.
func (drv *Driver) Started() bool {
	return drv.started.Load()
}

// SwitchScreen turns the picture on or off. Sync signals are generated in
// either case.
func (drv *Driver) SwitchScreen(on bool) {
	drv.output.Store(on)
}

// ScreenOn returns the state set by SwitchScreen().
func (drv *Driver) ScreenOn() bool {
	return drv.output.Load()
}

// VBlank returns true while the scanline being prepared is outside the active
// picture area.
func (drv *Driver) VBlank() bool {
	return drv.vblank.Load()
}

// Mode returns the current mode.
func (drv *Driver) Mode() Mode {
	return drv.mode
}

// SwapBuffer requests that the show and render framebuffers are exchanged at
// the end of the frame. A second request before the swap has happened has no
// effect.
func (drv *Driver) SwapBuffer() {
	drv.swapBuffer.Store(true)
}

// SwapPalette requests that the show and render palettes are exchanged at the
// end of the frame. A second request before the swap has happened has no
// effect.
func (drv *Driver) SwapPalette() {
	drv.swapPalette.Store(true)
}

// SwapPending returns true if either swap has been requested and not yet
// performed.
func (drv *Driver) SwapPending() bool {
	return drv.swapBuffer.Load() || drv.swapPalette.Load()
}

// RenderIndexed returns the pixels of the render framebuffer for the paletted
// renderer. Returns nil if the mode is not paletted.
//
// If the mode is not double buffered then the render framebuffer is also the
// show framebuffer.
func (drv *Driver) RenderIndexed() []uint8 {
	if !drv.isSet {
		return nil
	}
	return drv.fb[drv.showFB.Load()^1].Indexed
}

// RenderDirect returns the pixels of the render framebuffer for the direct
// renderer. Returns nil if the mode is not direct.
func (drv *Driver) RenderDirect() []uint16 {
	if !drv.isSet {
		return nil
	}
	return drv.fb[drv.showFB.Load()^1].Direct
}

// RenderFramebuffer returns the render framebuffer. The zero Framebuffer is
// returned if the mode has not been set.
func (drv *Driver) RenderFramebuffer() Framebuffer {
	if !drv.isSet {
		return Framebuffer{}
	}
	return drv.fb[drv.showFB.Load()^1]
}

// RenderPalette returns the palette that will be shown after the next
// palette swap.
func (drv *Driver) RenderPalette() *Palette {
	return &drv.palette[drv.showPal.Load()^1]
}

// Border returns the bus word used for the border.
func (drv *Driver) Border() uint16 {
	return uint16(drv.border.Load())
}

// Frame returns the number of frames completed.
func (drv *Driver) Frame() uint64 {
	return drv.frames.Load()
}

// Stats returns the diagnostic counters.
func (drv *Driver) Stats() Stats {
	return Stats{
		Frames:    drv.frames.Load(),
		Lines:     drv.lines.Load(),
		Overruns:  drv.overruns.Load(),
		MaxCycles: drv.maxCycles.Load(),
	}
}
