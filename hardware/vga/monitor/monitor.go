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

// Package monitor is a model of the display connected to the VGA output. It
// receives every line streamed to the data bus and the vertical sync signal
// and reassembles them into frames for its PixelRenderers.
//
// The monitor knows nothing about the driver's state. Like a real monitor it
// synchronises to the vertical sync pulse and checks the position and length
// of the horizontal sync pulse of every line.
package monitor

import (
	"sync/atomic"

	"github.com/arcadeit/arcadeit/hardware/vga/specification"
	"github.com/arcadeit/arcadeit/logger"
)

// PixelRenderer implementations display, or otherwise work with, the frames
// received by the monitor. For example digest.Video.
type PixelRenderer interface {
	// Resize is called when the monitor's resolution changes
	Resize(spec specification.Spec) error

	// SetLine is called for every line in the active picture area. The slice
	// holds only the active samples of the line and should not be retained
	// after the function returns
	SetLine(y int, words []uint16) error

	// NewFrame is called after the last line of every frame
	NewFrame(frameNum int) error

	// EndRendering is called when the monitor is switched off
	EndRendering() error
}

// FrameTrigger implementations only want to know when a new frame has been
// received.
type FrameTrigger interface {
	NewFrame(frameNum int) error
}

// Monitor is the display model. It implements the gpio.Listener interface.
type Monitor struct {
	spec specification.Spec

	renderers []PixelRenderer
	triggers  []FrameTrigger

	// physical line of the next transfer. only meaningful if synced is true
	line int

	synced     atomic.Bool
	frames     atomic.Int64
	syncErrors atomic.Int64
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(spec specification.Spec) *Monitor {
	return &Monitor{spec: spec}
}

// AddPixelRenderer registers an (additional) implementation of PixelRenderer.
func (mon *Monitor) AddPixelRenderer(r PixelRenderer) {
	mon.renderers = append(mon.renderers, r)
	mon.resize(r)
}

// AddFrameTrigger registers an (additional) implementation of FrameTrigger.
func (mon *Monitor) AddFrameTrigger(f FrameTrigger) {
	mon.triggers = append(mon.triggers, f)
}

func (mon *Monitor) resize(r PixelRenderer) {
	if err := r.Resize(mon.spec); err != nil {
		logger.Log(logger.Allow, "monitor", err)
	}
}

// SetSpec changes the resolution that the monitor is expecting. The monitor
// loses synchronisation until the next vertical sync pulse.
//
// Should not be called while video is being streamed.
func (mon *Monitor) SetSpec(spec specification.Spec) {
	mon.spec = spec
	mon.synced.Store(false)
	for _, r := range mon.renderers {
		mon.resize(r)
	}
}

// Spec returns the resolution that the monitor is expecting.
func (mon *Monitor) Spec() specification.Spec {
	return mon.spec
}

// VSync should be called on every change of the vertical sync pin.
//
// The pin is driven low by the line interrupt that follows the last line of
// the front porch, by which time the last line of the front porch is being
// streamed.
func (mon *Monitor) VSync(high bool) {
	if high {
		return
	}

	expected := mon.spec.LinesActive + mon.spec.LinesFrontPorch - 1
	if mon.synced.Load() && mon.line != expected {
		mon.syncErrors.Add(1)
	}
	mon.line = expected
	mon.synced.Store(true)
}

// Transfer implements the gpio.Listener interface.
func (mon *Monitor) Transfer(words []uint16) {
	if !mon.synced.Load() {
		return
	}

	if !mon.validSync(words) {
		mon.syncErrors.Add(1)
	}

	if mon.line < mon.spec.LinesActive {
		n := min(len(words), mon.spec.Active)
		for _, r := range mon.renderers {
			if err := r.SetLine(mon.line, words[:n]); err != nil {
				logger.Log(logger.Allow, "monitor", err)
			}
		}
	}

	mon.line++
	if mon.line >= mon.spec.LinesTotal {
		mon.line = 0
		n := int(mon.frames.Add(1))
		for _, r := range mon.renderers {
			if err := r.NewFrame(n); err != nil {
				logger.Log(logger.Allow, "monitor", err)
			}
		}
		for _, f := range mon.triggers {
			if err := f.NewFrame(n); err != nil {
				logger.Log(logger.Allow, "monitor", err)
			}
		}
	}
}

// validSync returns true if the line is the expected length and holds exactly
// one run of zero words, of the expected length and position.
func (mon *Monitor) validSync(words []uint16) bool {
	if len(words) != mon.spec.SamplesPerLine {
		return false
	}

	start := -1
	n := 0
	for i, w := range words {
		if w != 0 {
			continue
		}
		if start == -1 {
			start = i
		} else if i != start+n {
			return false
		}
		n++
	}

	return start == mon.spec.SyncStart() && n == mon.spec.Sync
}

// IsSynced returns true if the monitor has seen a vertical sync pulse since
// the resolution was set.
func (mon *Monitor) IsSynced() bool {
	return mon.synced.Load()
}

// Frames returns the number of complete frames received.
func (mon *Monitor) Frames() int {
	return int(mon.frames.Load())
}

// SyncErrors returns the number of lines with a bad horizontal sync plus the
// number of vertical sync pulses that arrived on an unexpected line.
func (mon *Monitor) SyncErrors() int {
	return int(mon.syncErrors.Load())
}

// End calls EndRendering() on every PixelRenderer.
func (mon *Monitor) End() error {
	var err error
	for _, r := range mon.renderers {
		if e := r.EndRendering(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
