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

package clocks

import (
	"github.com/arcadeit/arcadeit/curated"
)

// StartupTimeout is the number of times an oscillator's ready flag is polled
// before bring-up gives up.
const StartupTimeout = 0x0500

// ClockNotReady is returned by BringUp() when an oscillator does not report
// ready within the timeout.
const ClockNotReady = "clocks: %s not ready after %d polls"

// Oscillator is a clock source that must be enabled and become stable before
// it can be used. The HSE crystal and the main PLL are both oscillators.
type Oscillator interface {
	Name() string
	Enable()
	Ready() bool
}

// BringUp enables each oscillator in turn and waits for it to become ready.
//
// Without a timeout the firmware would hang on a missing crystal. Instead, a
// ClockNotReady error naming the oscillator is returned and the caller decides
// whether to carry on with the internal oscillator or to halt and blink the
// status LED.
func BringUp(timeout int, osc ...Oscillator) error {
	for _, o := range osc {
		o.Enable()

		var ready bool
		for range timeout {
			if o.Ready() {
				ready = true
				break
			}
		}

		if !ready {
			return curated.Errorf(ClockNotReady, o.Name(), timeout)
		}
	}
	return nil
}

// Crystal is a simulated Oscillator that reports ready after a number of
// polls. A negative number of polls means the oscillator never becomes ready,
// as though the crystal were missing.
type Crystal struct {
	name    string
	startup int
	enabled bool
	polls   int
}

// NewCrystal is the preferred method of initialisation for the Crystal type.
func NewCrystal(name string, startup int) *Crystal {
	return &Crystal{
		name:    name,
		startup: startup,
	}
}

// Name implements the Oscillator interface.
func (c *Crystal) Name() string {
	return c.name
}

// Enable implements the Oscillator interface.
func (c *Crystal) Enable() {
	c.enabled = true
	c.polls = 0
}

// Ready implements the Oscillator interface.
func (c *Crystal) Ready() bool {
	if !c.enabled || c.startup < 0 {
		return false
	}
	c.polls++
	return c.polls > c.startup
}
