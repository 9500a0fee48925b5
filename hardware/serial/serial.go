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

// Package serial is the diagnostic serial port. The core only ever sends to
// the port, one character at a time, so the port is a thin wrapper around an
// io.Writer.
//
// In simulation the writer can be a real serial device, opened with
// OpenDevice() or OpenTTY(), or any io.Writer wrapped with New().
package serial

import (
	"io"
	"strings"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/pkg/term"
	bugst "go.bug.st/serial"
)

// DefaultBaud is the baud rate of the diagnostic port.
const DefaultBaud = 115200

// Sentinal error patterns.
const (
	OpenFailed  = "serial: cannot open %s: %v"
	SendFailed  = "serial: %s: %v"
	ListFailed  = "serial: cannot list ports: %v"
	InvalidBaud = "serial: invalid baud rate (%d)"
)

// Serial is a send-only serial port.
type Serial struct {
	name string
	w    io.Writer
	sent int
}

// New wraps any io.Writer as a serial port. If the writer is an io.Closer it
// is closed by Close().
func New(name string, w io.Writer) *Serial {
	return &Serial{
		name: name,
		w:    w,
	}
}

func (s *Serial) String() string {
	return s.name
}

// Send a single character.
func (s *Serial) Send(b byte) error {
	n, err := s.w.Write([]byte{b})
	s.sent += n
	if err != nil {
		return curated.Errorf(SendFailed, s.name, err)
	}
	return nil
}

// SendString sends each character of the string in turn.
func (s *Serial) SendString(str string) error {
	for i := 0; i < len(str); i++ {
		if err := s.Send(str[i]); err != nil {
			return err
		}
	}
	return nil
}

// Write implements the io.Writer interface.
func (s *Serial) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.sent += n
	if err != nil {
		return n, curated.Errorf(SendFailed, s.name, err)
	}
	return n, nil
}

// Sent returns the number of bytes sent.
func (s *Serial) Sent() int {
	return s.sent
}

// Close the underlying writer if it can be closed.
func (s *Serial) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// OpenDevice opens a serial device by name. The port is set to baud, 8N1.
func OpenDevice(name string, baud int) (*Serial, error) {
	if baud <= 0 {
		return nil, curated.Errorf(InvalidBaud, baud)
	}
	p, err := bugst.Open(name, &bugst.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	})
	if err != nil {
		return nil, curated.Errorf(OpenFailed, name, err)
	}
	return New(name, p), nil
}

// OpenTTY opens a terminal device in raw mode. Useful for pseudo terminals,
// which are not always accepted by OpenDevice().
func OpenTTY(path string, baud int) (*Serial, error) {
	if baud <= 0 {
		return nil, curated.Errorf(InvalidBaud, baud)
	}
	t, err := term.Open(path, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, curated.Errorf(OpenFailed, path, err)
	}
	return New(path, t), nil
}

// Open a serial port from a device description:
//
//	""            discard all output
//	"-"           the stdout writer
//	"tty:<path>"  OpenTTY(path)
//	"<name>"      OpenDevice(name)
func Open(device string, baud int, stdout io.Writer) (*Serial, error) {
	switch {
	case device == "":
		return New("discard", io.Discard), nil
	case device == "-":
		return New("stdout", stdout), nil
	case strings.HasPrefix(device, "tty:"):
		return OpenTTY(strings.TrimPrefix(device, "tty:"), baud)
	}
	return OpenDevice(device, baud)
}

// Ports returns the names of the serial devices on the host.
func Ports() ([]string, error) {
	l, err := bugst.GetPortsList()
	if err != nil {
		return nil, curated.Errorf(ListFailed, err)
	}
	return l, nil
}
