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

// Package gpio models the general purpose I/O used by the core: single pins,
// such as the vertical sync output and the status LED, and the 16-bit output
// port that the VGA data bus is wired to.
//
// Pins can be driven from interrupt context. Level and edge count are atomic
// so that main-line code can read them at any time.
package gpio

import (
	"sync/atomic"
)

// Pin is a single output pin.
type Pin struct {
	name  string
	level atomic.Bool
	edges atomic.Uint32

	// called on every change of level, in the context of the code that drove
	// the pin
	onChange func(high bool)
}

// NewPin is the preferred method of initialisation for the Pin type.
func NewPin(name string, high bool) *Pin {
	p := &Pin{name: name}
	p.level.Store(high)
	return p
}

func (p *Pin) String() string {
	if p.level.Load() {
		return p.name + "=high"
	}
	return p.name + "=low"
}

// Set drives the pin high or low. Setting the pin to the level it is already at
// is not an edge and does not call the change function.
func (p *Pin) Set(high bool) {
	if p.level.Swap(high) == high {
		return
	}
	p.edges.Add(1)
	if p.onChange != nil {
		p.onChange(high)
	}
}

// High returns true if the pin is currently driven high.
func (p *Pin) High() bool {
	return p.level.Load()
}

// Edges returns the number of level changes since the pin was created.
func (p *Pin) Edges() int {
	return int(p.edges.Load())
}

// OnChange sets the function to be called on every edge. It should be called
// before the pin is driven by interrupt context.
func (p *Pin) OnChange(f func(high bool)) {
	p.onChange = f
}
