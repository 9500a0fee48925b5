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
	"fmt"
	"time"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/clocks"
	"github.com/arcadeit/arcadeit/hardware/scheduler"
	"github.com/arcadeit/arcadeit/hardware/serial"
	"github.com/arcadeit/arcadeit/hardware/vga"
	"github.com/arcadeit/arcadeit/logger"
	"github.com/arcadeit/arcadeit/version"
	"github.com/inhies/go-bytesize"
)

// Sentinal error patterns.
const (
	BoardError = "board: %v"
	BootFailed = "board: %v failure: %v"
	NotBooted  = "board: not booted"
)

// Failure identifies the subsystem that stopped the board from booting. The
// value is the number of LED blinks in each group of the failure signal.
type Failure int

// List of valid Failure values.
const (
	FailClock  Failure = 2
	FailVideo  Failure = 3
	FailSerial Failure = 4
)

func (f Failure) String() string {
	switch f {
	case FailClock:
		return "clock"
	case FailVideo:
		return "video"
	case FailSerial:
		return "serial"
	}
	return fmt.Sprintf("unknown (%d)", int(f))
}

// Boot brings up the board. Subsystems are started in order: the clock tree,
// the serial port, SysTick, the scheduler, the LCD backlights and the video
// driver.
//
// If a subsystem fails the failure is signalled with Fail() and the error is
// returned.
func (b *Board) Boot(ctx context.Context) error {
	if err := clocks.BringUp(clocks.StartupTimeout, b.HSE, b.PLL); err != nil {
		return b.Fail(ctx, FailClock, err)
	}

	s, err := serial.Open(b.Prefs.SerialDevice.String(), b.Prefs.Baud.Value(), b.console)
	if err != nil {
		return b.Fail(ctx, FailSerial, err)
	}
	b.Serial = s
	if err := b.banner(); err != nil {
		return b.Fail(ctx, FailSerial, err)
	}

	b.Critical(func() {
		b.tickClocks = 0
		b.booted = true
	})

	b.Scheduler.Init()

	err = b.Scheduler.Set(TaskHeartbeat, b.heartbeat, scheduler.Params{}, 0, HeartbeatPeriod)
	if err != nil {
		return curated.Errorf(BoardError, err)
	}

	b.BacklightTimer.Enable()
	for i, bl := range b.Backlights {
		bl.FadeStep = uint32(b.Prefs.FadeStep.Value())
		if err := bl.On(TaskBacklight + i); err != nil {
			return curated.Errorf(BoardError, err)
		}
	}

	spec := b.Prefs.Spec()
	err = b.SetMode(vga.Mode{
		Spec:         spec,
		Renderer:     vga.Paletted,
		DoubleBuffer: true,
	})
	if err == nil {
		b.Critical(func() {
			err = b.VGA.Start()
		})
	}
	if err != nil {
		return b.Fail(ctx, FailVideo, err)
	}

	logger.Logf(logger.Allow, "board", "booted: %s", b.VGA)
	_ = b.Serial.SendString(fmt.Sprintf("video: %s\r\n", b.VGA.Mode()))

	return nil
}

func (b *Board) banner() error {
	l := []string{
		fmt.Sprintf("%s\r\n", version.String()),
		fmt.Sprintf("%s\r\n", b.Profile.Name),
		fmt.Sprintf("SYSCLK %dMHz\r\n", clocks.SYSCLK/1_000_000),
		fmt.Sprintf("flash %s sram %s\r\n",
			bytesize.New(float64(b.Profile.Flash)),
			bytesize.New(float64(b.Profile.SRAM))),
	}
	for _, s := range l {
		if err := b.Serial.SendString(s); err != nil {
			return err
		}
	}
	return nil
}

func (b *Board) heartbeat(_ scheduler.Params) scheduler.Status {
	b.LED.Set(!b.LED.High())
	return scheduler.StatusOK
}

// Fail signals a boot failure. A message is sent to the serial port if it is
// open and the status LED blinks int(kind) times.
//
// If the HaltOnFailure preference is set the blinking repeats until the
// context is cancelled, as the firmware would repeat it forever.
func (b *Board) Fail(ctx context.Context, kind Failure, err error) error {
	e := curated.Errorf(BootFailed, kind, err)
	logger.Log(logger.Allow, "board", e)

	if b.Serial != nil {
		_ = b.Serial.SendString(fmt.Sprintf("FAIL %d: %v\r\n", int(kind), e))
	}

	b.blink(ctx, kind)
	for b.Prefs.HaltOnFailure.Get().(bool) && ctx.Err() == nil {
		b.blink(ctx, kind)
	}

	return e
}

// one group of blinks followed by a gap of two periods
func (b *Board) blink(ctx context.Context, kind Failure) {
	for range int(kind) {
		b.LED.Set(true)
		b.pause(ctx, 1)
		b.LED.Set(false)
		b.pause(ctx, 1)
	}
	b.pause(ctx, 2)
}

func (b *Board) pause(ctx context.Context, n int) {
	if b.BlinkPeriod == 0 {
		return
	}
	t := time.NewTimer(b.BlinkPeriod * time.Duration(n))
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
