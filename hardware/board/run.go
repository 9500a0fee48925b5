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

package board

import (
	"context"
	"runtime"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/clocks"
	"github.com/arcadeit/arcadeit/hardware/vga/specification"
	"github.com/arcadeit/arcadeit/performance/limiter"
)

// Sentinal error patterns.
const (
	VideoStopped = "board: video is not running"
)

// the resolution that sets the length of a line. when the video has been
// stopped the CPU still runs at the rate of the last mode
func (b *Board) lineSpec() specification.Spec {
	if s := b.VGA.Mode().Spec; s.LinesTotal > 0 {
		return s
	}
	return defaultSpec
}

// Step completes one line of the pixel DMA and advances SysTick by the number
// of CPU clocks the line took. If the video is not running the time still
// advances.
//
// Step is the interrupt context. The DMA and SysTick handlers run on the
// calling goroutine.
func (b *Board) Step() error {
	b.crit.Lock()
	defer b.crit.Unlock()

	if !b.booted {
		return curated.Errorf(NotBooted)
	}

	if b.Stream.Enabled() {
		if err := b.Stream.Complete(); err != nil {
			return curated.Errorf(BoardError, err)
		}
	}

	b.tickClocks += b.lineSpec().ClocksPerLine()
	for b.tickClocks >= clocks.SysTickReload {
		b.tickClocks -= clocks.SysTickReload
		b.Ticker.Handler()
	}

	return nil
}

// Run steps the board and runs the scheduler on the calling goroutine until
// the video driver has completed the number of frames. The main loop runs
// once after every line.
func (b *Board) Run(ctx context.Context, frames int) error {
	if !b.VGA.Started() {
		return curated.Errorf(VideoStopped)
	}

	end := b.VGA.Frame() + uint64(frames)
	for b.VGA.Frame() < end {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.Step(); err != nil {
			return err
		}
		b.Scheduler.Run()
	}

	return nil
}

// RunMillis is like Run() but stops after a number of SysTick interrupts.
// It works whether or not the video is running.
func (b *Board) RunMillis(ctx context.Context, ms uint32) error {
	end := b.Ticker.Millis() + ms
	for int32(end-b.Ticker.Millis()) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.Step(); err != nil {
			return err
		}
		b.Scheduler.Run()
	}
	return nil
}

// Simulate steps the board until the context is cancelled. It is meant to
// run on its own goroutine alongside MainLoop().
//
// If the FPSCap preference is set the simulation is held to the frame rate of
// the current mode.
func (b *Board) Simulate(ctx context.Context) error {
	var spec specification.Spec
	b.Critical(func() { spec = b.lineSpec() })

	var lim *limiter.FpsLimiter
	if b.Prefs.FPSCap.Get().(bool) {
		lim = limiter.NewFPSLimiter(float32(spec.FrameRate()))
		defer lim.Close()
	}

	var lines int
	for ctx.Err() == nil {
		if err := b.Step(); err != nil {
			return err
		}

		if lim == nil {
			continue
		}

		// pacing is by line count so that the simulation is held to time
		// even when the video is stopped
		lines++
		if lines >= spec.LinesTotal {
			lines = 0
			b.Critical(func() { spec = b.lineSpec() })
			lim.SetLimit(float32(spec.FrameRate()))
			lim.Wait()
		}
	}

	return nil
}

// MainLoop runs the scheduler until the context is cancelled.
func (b *Board) MainLoop(ctx context.Context) error {
	for ctx.Err() == nil {
		b.Scheduler.Run()
		runtime.Gosched()
	}
	return nil
}

// WaitVBlank waits for the vertical blank. If the VBlank flag is already set
// WaitVBlank returns immediately.
//
// Another goroutine must be stepping the board.
func (b *Board) WaitVBlank(ctx context.Context) error {
	if !b.VGA.Started() {
		return curated.Errorf(VideoStopped)
	}
	for !b.VGA.VBlank() {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	return nil
}
