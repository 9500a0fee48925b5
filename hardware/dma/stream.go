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

// Package dma models a memory-to-peripheral DMA stream of the kind used to
// feed the VGA data bus.
//
// In double-buffer mode the stream has two memory address registers, M0AR and
// M1AR. Hardware alternates between them at the end of every transfer and
// the current target (CT) flag says which one is being streamed. Software
// prepares the other, idle, buffer while the current one is streamed.
//
// The protocol that the stream enforces is that the address register of the
// current target cannot be changed while the stream is enabled and that
// software should never write to the memory under the current target. The
// Current() and IsStreaming() functions are the query operations that software
// uses to decide which buffer is safe to write.
//
// The Complete() function is how the simulation advances the hardware. It
// sends the current buffer to the peripheral, flips the current target and
// raises the transfer complete interrupt.
package dma

import (
	"sync/atomic"

	"github.com/arcadeit/arcadeit/curated"
)

// Target identifies one of the two memory address registers.
type Target int

// List of valid Target values.
const (
	Memory0 Target = iota
	Memory1
)

func (t Target) String() string {
	if t == Memory0 {
		return "M0"
	}
	return "M1"
}

// Other returns the other target.
func (t Target) Other() Target {
	return t ^ 1
}

// Sink is the peripheral end of the stream.
type Sink interface {
	Transfer(words []uint16)
}

// Config for the stream. Length is measured in 16-bit words.
type Config struct {
	Length       int
	Circular     bool
	DoubleBuffer bool
}

// Sentinal error patterns.
const (
	StreamEnabled  = "dma: %s: stream is enabled"
	InvalidLength  = "dma: %s: invalid transfer length (%d)"
	ShortBuffer    = "dma: %s: buffer for %s is shorter than transfer length (%d < %d)"
	TargetBusy     = "dma: %s: cannot change address of current target (%s)"
	NoMemory       = "dma: %s: address for %s not set"
	StreamDisabled = "dma: %s: stream is not enabled"
)

// Stream is a single DMA stream.
type Stream struct {
	name string
	sink Sink
	cfg  Config

	memory  [2][]uint16
	current atomic.Int32
	enabled atomic.Bool

	// transfer complete flag and interrupt handler
	complete atomic.Bool
	handler  func()

	transfers atomic.Uint64
}

// NewStream is the preferred method of initialisation for the Stream type.
func NewStream(name string, sink Sink) *Stream {
	return &Stream{
		name: name,
		sink: sink,
	}
}

func (s *Stream) String() string {
	return s.name
}

// Configure the stream. The stream must be disabled. The current target is
// reset to Memory0.
func (s *Stream) Configure(cfg Config) error {
	if s.enabled.Load() {
		return curated.Errorf(StreamEnabled, s.name)
	}
	if cfg.Length <= 0 {
		return curated.Errorf(InvalidLength, s.name, cfg.Length)
	}
	s.cfg = cfg
	s.current.Store(int32(Memory0))
	return nil
}

// SetHandler sets the function to call when a transfer completes. This is the
// interrupt service routine for the stream.
func (s *Stream) SetHandler(f func()) {
	s.handler = f
}

// SetMemory sets the address register for the target. While the stream is
// enabled only the idle target can be changed.
func (s *Stream) SetMemory(t Target, buf []uint16) error {
	if len(buf) < s.cfg.Length {
		return curated.Errorf(ShortBuffer, s.name, t, len(buf), s.cfg.Length)
	}
	if s.enabled.Load() && t == s.Current() {
		return curated.Errorf(TargetBusy, s.name, t)
	}
	s.memory[t] = buf
	return nil
}

// Memory returns the buffer currently addressed by the target.
func (s *Stream) Memory(t Target) []uint16 {
	return s.memory[t]
}

// Current returns the target currently being streamed.
func (s *Stream) Current() Target {
	return Target(s.current.Load())
}

// Idle returns the target that is not currently being streamed. In
// double-buffer mode, this is the buffer that will be streamed next.
func (s *Stream) Idle() Target {
	return s.Current().Other()
}

// IsStreaming returns true if buf is the memory addressed by the current
// target of an enabled stream. Software must not write to such a buffer.
func (s *Stream) IsStreaming(buf []uint16) bool {
	if !s.enabled.Load() {
		return false
	}
	return sameMemory(buf, s.memory[s.Current()])
}

func sameMemory(a, b []uint16) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return &a[0] == &b[0]
}

// Enable the stream. Both memory targets must be set in double-buffer mode.
func (s *Stream) Enable() error {
	if s.memory[Memory0] == nil {
		return curated.Errorf(NoMemory, s.name, Memory0)
	}
	if s.cfg.DoubleBuffer && s.memory[Memory1] == nil {
		return curated.Errorf(NoMemory, s.name, Memory1)
	}
	s.enabled.Store(true)
	return nil
}

// Disable the stream immediately. There is no guarantee that the transfer in
// progress has finished.
func (s *Stream) Disable() {
	s.enabled.Store(false)
}

// Enabled returns true if the stream is enabled.
func (s *Stream) Enabled() bool {
	return s.enabled.Load()
}

// TransferComplete returns the state of the transfer complete flag.
func (s *Stream) TransferComplete() bool {
	return s.complete.Load()
}

// AckComplete clears the transfer complete flag. Should be called by the
// interrupt handler.
func (s *Stream) AckComplete() {
	s.complete.Store(false)
}

// Transfers returns the number of transfers completed since the stream was
// created.
func (s *Stream) Transfers() uint64 {
	return s.transfers.Load()
}

// Complete advances the hardware by one whole transfer. The buffer under the
// current target is sent to the sink, the current target is flipped (in
// double-buffer mode) and the interrupt handler is called.
//
// A stream that is not circular disables itself after the transfer.
func (s *Stream) Complete() error {
	if !s.enabled.Load() {
		return curated.Errorf(StreamDisabled, s.name)
	}

	ct := s.Current()
	if s.sink != nil {
		s.sink.Transfer(s.memory[ct][:s.cfg.Length])
	}
	s.transfers.Add(1)

	if s.cfg.DoubleBuffer {
		s.current.Store(int32(ct.Other()))
	}
	if !s.cfg.Circular {
		s.enabled.Store(false)
	}

	s.complete.Store(true)
	if s.handler != nil {
		s.handler()
	}

	return nil
}
