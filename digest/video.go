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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/vga"
	"github.com/arcadeit/arcadeit/hardware/vga/specification"
	"github.com/sigurn/crc16"
)

// Sentinal error patterns.
const (
	VideoDigest = "digest: video: %v"
)

var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// Video is an implementation of the monitor.PixelRenderer interface. The
// digest is a SHA1 hash of every frame chained with the digest of the
// previous frame. In addition a CRC-16 (CCITT-FALSE) is kept for every line
// of the most recent frame, which is useful for finding the line on which two
// runs first differ.
//
// The hsync idle bit is not part of the pixel data and does not contribute to
// the digest.
type Video struct {
	crit sync.Mutex

	spec     specification.Spec
	digest   [sha1.Size]byte
	pixels   []byte
	frameNum int

	// crcs of the lines of the frame being received and of the previous frame
	lines []uint16
	crcs  []uint16
}

const pixelDepth = 2

// NewVideo is the preferred method of initialisation for the Video type. The
// digest must be added to a monitor with AddPixelRenderer() before use.
func NewVideo() *Video {
	return &Video{}
}

// Hash implements digest.Digest interface.
func (dig *Video) Hash() string {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Video) ResetDigest() {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	clear(dig.digest[:])
	dig.frameNum = 0
}

// Frame returns the number of the last frame included in the digest.
func (dig *Video) Frame() int {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	return dig.frameNum
}

// LineCRC returns the CRC of the line in the last completed frame.
func (dig *Video) LineCRC(y int) (uint16, error) {
	dig.crit.Lock()
	defer dig.crit.Unlock()
	if y < 0 || y >= len(dig.crcs) {
		return 0, curated.Errorf(VideoDigest, fmt.Sprintf("no such line (%d)", y))
	}
	return dig.crcs[y], nil
}

// Resize implements monitor.PixelRenderer interface.
func (dig *Video) Resize(spec specification.Spec) error {
	dig.crit.Lock()
	defer dig.crit.Unlock()

	dig.spec = spec

	// the pixels array contains enough room for the previous frame's digest
	// value in front of the picture
	dig.pixels = make([]byte, len(dig.digest)+spec.Active*spec.LinesActive*pixelDepth)
	dig.lines = make([]uint16, spec.LinesActive)
	dig.crcs = make([]uint16, spec.LinesActive)
	return nil
}

// SetLine implements monitor.PixelRenderer interface.
func (dig *Video) SetLine(y int, words []uint16) error {
	dig.crit.Lock()
	defer dig.crit.Unlock()

	if y < 0 || y >= dig.spec.LinesActive {
		return curated.Errorf(VideoDigest, fmt.Sprintf("line out of range (%d)", y))
	}

	i := len(dig.digest) + y*dig.spec.Active*pixelDepth
	line := dig.pixels[i : i+dig.spec.Active*pixelDepth]
	for x := range dig.spec.Active {
		var w uint16
		if x < len(words) {
			w = words[x] &^ vga.HSyncIdle
		}
		binary.BigEndian.PutUint16(line[x*pixelDepth:], w)
	}
	dig.lines[y] = crc16.Checksum(line, crcTable)

	return nil
}

// NewFrame implements monitor.PixelRenderer interface.
func (dig *Video) NewFrame(frameNum int) error {
	dig.crit.Lock()
	defer dig.crit.Unlock()

	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the video data
	n := copy(dig.pixels, dig.digest[:])
	if n != len(dig.digest) {
		return curated.Errorf(VideoDigest, "digest error during new frame")
	}
	dig.digest = sha1.Sum(dig.pixels)
	dig.frameNum = frameNum
	copy(dig.crcs, dig.lines)

	return nil
}

// EndRendering implements monitor.PixelRenderer interface.
func (dig *Video) EndRendering() error {
	return nil
}
