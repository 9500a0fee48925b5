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

// Package systick is the millisecond time base of the board.
//
// Handler() is the body of the SysTick interrupt. It is called once per
// millisecond and does three things: advances the millisecond counter,
// decrements the countdown timers and calls the Updater, which is normally the
// task scheduler. The Updater is called exactly once per tick.
//
// Countdown timers are a cheap way for main-line code to wait for a period
// without keeping a reference to the millisecond counter. Timer zero is
// reserved for Delay().
package systick

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/arcadeit/arcadeit/curated"
)

// MaxTimers is the number of countdown timers.
const MaxTimers = 4

// DelayTimer is the countdown timer used by Delay().
const DelayTimer = 0

// InvalidTimer is returned when a countdown timer number is out of range.
const InvalidTimer = "systick: invalid timer (%d)"

// Updater is called once per tick from interrupt context.
type Updater interface {
	Update()
}

// Tick is the millisecond time base.
type Tick struct {
	millis  atomic.Uint32
	timers  [MaxTimers]atomic.Uint32
	updater Updater
}

// NewTick is the preferred method of initialisation for the Tick type. The
// updater can be nil.
func NewTick(updater Updater) *Tick {
	return &Tick{updater: updater}
}

// Handler is the SysTick interrupt service routine.
func (t *Tick) Handler() {
	t.millis.Add(1)

	for i := range t.timers {
		// each timer is only ever decremented here so the load/store pair
		// cannot lose a decrement. SetTimer() from main-line code may
		// overwrite the value, which is the intended effect
		if v := t.timers[i].Load(); v > 0 {
			t.timers[i].CompareAndSwap(v, v-1)
		}
	}

	if t.updater != nil {
		t.updater.Update()
	}
}

// Millis returns the number of milliseconds since the tick was started. It
// wraps after about 49 days.
func (t *Tick) Millis() uint32 {
	return t.millis.Load()
}

// SetTimer starts the numbered countdown timer.
func (t *Tick) SetTimer(n int, ms uint32) error {
	if n < 0 || n >= MaxTimers {
		return curated.Errorf(InvalidTimer, n)
	}
	t.timers[n].Store(ms)
	return nil
}

// Timer returns the number of milliseconds remaining on the numbered countdown
// timer. Out of range timers always return zero.
func (t *Tick) Timer(n int) uint32 {
	if n < 0 || n >= MaxTimers {
		return 0
	}
	return t.timers[n].Load()
}

// Delay waits for the number of milliseconds to elapse. It is a busy-wait on
// DelayTimer, yielding the goroutine between polls, and is only suitable for
// main-line code that has no other work to do. Returns the context error if the
// context is cancelled first.
func (t *Tick) Delay(ctx context.Context, ms uint32) error {
	t.timers[DelayTimer].Store(ms)
	for t.timers[DelayTimer].Load() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	return nil
}
