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

package loader

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/vga"
	"github.com/marcinbor85/gohex"
)

// Sentinal error patterns.
const (
	LoaderError = "loader: %v"
	OutOfBounds = "loader: data at %#x (%d bytes) does not fit %d byte framebuffer"
	HashError   = "loader: unexpected hash value"
)

// Format of the image file.
type Format int

// List of valid Format values.
const (
	Binary Format = iota
	IntelHex
)

func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case IntelHex:
		return "intel hex"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Loader is used to specify the image to load.
type Loader struct {
	// filename of the image. http and https URLs are also accepted
	Filename string

	Format Format

	// expected hash of the image file. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded file
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
// The format is decided by the file extension. Files ending with ".hex" or
// ".ihex" are Intel HEX and everything else is binary.
func NewLoader(filename string) Loader {
	ld := Loader{Filename: filename}
	switch strings.ToUpper(path.Ext(filename)) {
	case ".HEX", ".IHEX":
		ld.Format = IntelHex
	}
	return ld
}

// ShortName returns the filename without path or extension.
func (ld Loader) ShortName() string {
	return strings.TrimSuffix(path.Base(ld.Filename), path.Ext(ld.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the file. Filenames with an http or https scheme are fetched over the
// network.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := ""
	if u, err := url.Parse(ld.Filename); err == nil {
		scheme = u.Scheme
	}

	var err error
	switch scheme {
	case "http", "https":
		var resp *http.Response
		resp, err = http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}
		defer resp.Body.Close()
		ld.Data, err = io.ReadAll(resp.Body)

	case "file", "":
		ld.Data, err = os.ReadFile(strings.TrimPrefix(ld.Filename, "file://"))

	default:
		return curated.Errorf(LoaderError, fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}
	if err != nil {
		ld.Data = nil
		return curated.Errorf(LoaderError, err)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(ld.Data))
	if ld.Hash != "" && ld.Hash != hash {
		ld.Data = nil
		return curated.Errorf(HashError)
	}
	ld.Hash = hash

	return nil
}

// Framebuffer copies the loaded image into the framebuffer. Load() is called
// if necessary.
func (ld *Loader) Framebuffer(fb vga.Framebuffer) error {
	if err := ld.Load(); err != nil {
		return err
	}
	switch ld.Format {
	case IntelHex:
		return LoadHex(bytes.NewReader(ld.Data), fb)
	default:
		return copySegment(fb, 0, ld.Data)
	}
}

// LoadHex parses Intel HEX data and copies every data segment into the
// framebuffer. Nothing is copied if any segment lies outside the framebuffer.
func LoadHex(r io.Reader, fb vga.Framebuffer) error {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return curated.Errorf(LoaderError, err)
	}

	segs := mem.GetDataSegments()
	for _, s := range segs {
		if err := checkBounds(fb, s.Address, len(s.Data)); err != nil {
			return err
		}
	}
	for _, s := range segs {
		if err := copySegment(fb, s.Address, s.Data); err != nil {
			return err
		}
	}

	return nil
}

// size of the framebuffer in bytes
func fbSize(fb vga.Framebuffer) int {
	if fb.Direct != nil {
		return len(fb.Direct) * 2
	}
	return len(fb.Indexed)
}

func checkBounds(fb vga.Framebuffer, addr uint32, n int) error {
	size := fbSize(fb)
	if uint64(addr)+uint64(n) > uint64(size) {
		return curated.Errorf(OutOfBounds, addr, n, size)
	}
	return nil
}

func copySegment(fb vga.Framebuffer, addr uint32, data []byte) error {
	if err := checkBounds(fb, addr, len(data)); err != nil {
		return err
	}

	if fb.Direct == nil {
		copy(fb.Indexed[addr:], data)
		return nil
	}

	// bytes of a word may be split between segments
	for i, b := range data {
		a := int(addr) + i
		w := &fb.Direct[a/2]
		if a%2 == 0 {
			*w = *w&0xff00 | uint16(b)
		} else {
			*w = *w&0x00ff | uint16(b)<<8
		}
	}
	return nil
}
