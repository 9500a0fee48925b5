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

// Package limiter paces the simulation to a fixed rate. The board calls
// Wait() once per frame so that the simulated display runs at its real frame
// rate rather than as fast as the host allows.
//
//	lim := limiter.NewFPSLimiter(59.94)
//	defer lim.Close()
//	for {
//		lim.Wait()
//		runFrame()
//	}
package limiter

import (
	"sync"
	"time"
)

// FpsLimiter triggers at a fixed number of times per second.
type FpsLimiter struct {
	crit            sync.Mutex
	framesPerSecond float32
	secondsPerFrame time.Duration

	tick   chan bool
	change chan time.Duration
	quit   chan bool
	once   sync.Once
}

// NewFPSLimiter is the preferred method of initialisation for the FpsLimiter
// type. The limiter runs a goroutine until Close() is called.
func NewFPSLimiter(framesPerSecond float32) *FpsLimiter {
	lim := &FpsLimiter{
		tick:   make(chan bool),
		change: make(chan time.Duration, 1),
		quit:   make(chan bool),
	}
	lim.SetLimit(framesPerSecond)

	go func() {
		period := lim.period()
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-lim.quit:
				return
			case period = <-lim.change:
				t.Reset(period)
			case <-t.C:
				// the tick is dropped if nobody is waiting
				select {
				case lim.tick <- true:
				default:
				}
			}
		}
	}()

	return lim
}

func (lim *FpsLimiter) period() time.Duration {
	lim.crit.Lock()
	defer lim.crit.Unlock()
	return lim.secondsPerFrame
}

// SetLimit changes the rate of the limiter. Values of zero or less are
// ignored.
func (lim *FpsLimiter) SetLimit(framesPerSecond float32) {
	if framesPerSecond <= 0 {
		return
	}

	lim.crit.Lock()
	lim.framesPerSecond = framesPerSecond
	lim.secondsPerFrame = time.Duration(float64(time.Second) / float64(framesPerSecond))
	d := lim.secondsPerFrame
	lim.crit.Unlock()

	// replace any change that has not yet been seen
	select {
	case <-lim.change:
	default:
	}
	lim.change <- d
}

// Limit returns the current rate.
func (lim *FpsLimiter) Limit() float32 {
	lim.crit.Lock()
	defer lim.crit.Unlock()
	return lim.framesPerSecond
}

// Wait blocks until the next trigger. Returns false if the limiter has been
// closed.
func (lim *FpsLimiter) Wait() bool {
	select {
	case <-lim.tick:
		return true
	case <-lim.quit:
		return false
	}
}

// HasWaited returns true if the trigger is ready now. It never blocks.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}

// Close stops the limiter. Wait() will no longer block.
func (lim *FpsLimiter) Close() {
	lim.once.Do(func() {
		close(lim.quit)
	})
}
