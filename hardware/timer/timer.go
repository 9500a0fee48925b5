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

// Package timer models the STM32 general purpose and advanced timers as far
// as the core uses them: a period (auto-reload) register that sets the rate at
// which the timer triggers its DMA request, and compare channels used for PWM
// output.
package timer

import (
	"sync/atomic"

	"github.com/arcadeit/arcadeit/curated"
)

// NumChannels is the number of compare channels on each timer.
const NumChannels = 4

// Sentinal error patterns.
const (
	InvalidPeriod  = "timer: %s: invalid period (%d)"
	InvalidChannel = "timer: %s: no such channel (%d)"
)

// Timer is a single hardware timer.
type Timer struct {
	name     string
	period   atomic.Uint32
	enabled  atomic.Bool
	channels [NumChannels]PWM
}

// NewTimer is the preferred method of initialisation for the Timer type.
func NewTimer(name string) *Timer {
	t := &Timer{name: name}
	for i := range t.channels {
		t.channels[i].timer = t
	}
	return t
}

func (t *Timer) String() string {
	return t.name
}

// SetPeriod sets the number of timer clocks between update events. For the
// pixel clock timer this is the number of clocks per DMA sample.
func (t *Timer) SetPeriod(clocks uint32) error {
	if clocks == 0 {
		return curated.Errorf(InvalidPeriod, t.name, clocks)
	}
	t.period.Store(clocks)
	return nil
}

// Period returns the current period.
func (t *Timer) Period() uint32 {
	return t.period.Load()
}

// Enable starts the counter.
func (t *Timer) Enable() {
	t.enabled.Store(true)
}

// Disable stops the counter.
func (t *Timer) Disable() {
	t.enabled.Store(false)
}

// Enabled returns true if the counter is running.
func (t *Timer) Enabled() bool {
	return t.enabled.Load()
}

// Channel returns the numbered compare channel. Channels are numbered from
// one, as they are in the reference manual.
func (t *Timer) Channel(n int) (*PWM, error) {
	if n < 1 || n > NumChannels {
		return nil, curated.Errorf(InvalidChannel, t.name, n)
	}
	return &t.channels[n-1], nil
}

// PWM is a timer compare channel configured for PWM output.
type PWM struct {
	timer   *Timer
	compare atomic.Uint32
}

// SetCompare writes the compare register.
func (p *PWM) SetCompare(v uint32) {
	p.compare.Store(v)
}

// Compare returns the value of the compare register.
func (p *PWM) Compare() uint32 {
	return p.compare.Load()
}

// Duty returns the duty cycle of the channel as a fraction of the timer
// period. The output is high for the whole period when compare is greater than
// period.
func (p *PWM) Duty() float64 {
	period := p.timer.Period()
	if period == 0 {
		return 0
	}
	c := p.compare.Load()
	if c >= period {
		return 1
	}
	return float64(c) / float64(period)
}
