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

package gpio

import "sync/atomic"

// Listener implementations receive every run of words written to a Port.
type Listener interface {
	Transfer(words []uint16)
}

// Port is a 16-bit output port. A DMA stream writes whole scanlines to the
// port and the port passes the words to its listeners. On the board the
// listener is the VGA connector; in simulation it is the monitor model.
type Port struct {
	name      string
	odr       atomic.Uint32
	listeners []Listener
}

// NewPort is the preferred method of initialisation for the Port type.
func NewPort(name string) *Port {
	return &Port{name: name}
}

func (p *Port) String() string {
	return p.name
}

// AddListener registers an (additional) Listener.
func (p *Port) AddListener(l Listener) {
	p.listeners = append(p.listeners, l)
}

// Transfer writes words to the port. The output data register is left holding
// the last word written, as it would be at the end of a DMA transfer.
//
// Implements the dma.Sink interface.
func (p *Port) Transfer(words []uint16) {
	if len(words) == 0 {
		return
	}
	for _, l := range p.listeners {
		l.Transfer(words)
	}
	p.odr.Store(uint32(words[len(words)-1]))
}

// Write sets the output data register directly.
func (p *Port) Write(w uint16) {
	p.odr.Store(uint32(w))
}

// ODR returns the value of the output data register.
func (p *Port) ODR() uint16 {
	return uint16(p.odr.Load())
}
