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

package loader_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/vga"
	"github.com/arcadeit/arcadeit/loader"
	"github.com/arcadeit/arcadeit/test"
	"github.com/marcinbor85/gohex"
)

func hexImage(t *testing.T, segs map[uint32][]byte) []byte {
	t.Helper()
	mem := gohex.NewMemory()
	for a, d := range segs {
		test.DemandSuccess(t, mem.AddBinary(a, d))
	}
	var b bytes.Buffer
	test.DemandSuccess(t, mem.DumpIntelHex(&b, 16))
	return b.Bytes()
}

func TestLoadHexIndexed(t *testing.T) {
	fb := vga.Framebuffer{Width: 8, Height: 8, Indexed: make([]uint8, 64)}

	img := hexImage(t, map[uint32][]byte{
		0x00: {1},
		0x10: {2, 3, 4},
	})
	test.DemandSuccess(t, loader.LoadHex(bytes.NewReader(img), fb))
	test.ExpectEquality(t, fb.Indexed[0], uint8(1))
	test.ExpectEquality(t, fb.Indexed[0x10], uint8(2))
	test.ExpectEquality(t, fb.Indexed[0x12], uint8(4))
	test.ExpectEquality(t, fb.Indexed[0x13], uint8(0))
}

func TestLoadHexBounds(t *testing.T) {
	fb := vga.Framebuffer{Width: 8, Height: 8, Indexed: make([]uint8, 64)}

	// the last byte of the framebuffer is fine
	img := hexImage(t, map[uint32][]byte{63: {9}})
	test.DemandSuccess(t, loader.LoadHex(bytes.NewReader(img), fb))
	test.ExpectEquality(t, fb.Indexed[63], uint8(9))

	// one segment is out of bounds so nothing is copied
	img = hexImage(t, map[uint32][]byte{
		0x00: {7},
		60:   {1, 2, 3, 4, 5},
	})
	err := loader.LoadHex(bytes.NewReader(img), fb)
	test.ExpectSuccess(t, curated.Is(err, loader.OutOfBounds))
	test.ExpectEquality(t, fb.Indexed[0], uint8(0))

	err = loader.LoadHex(strings.NewReader(":zz\n"), fb)
	test.ExpectSuccess(t, curated.Is(err, loader.LoaderError))
}

func TestLoadHexDirect(t *testing.T) {
	fb := vga.Framebuffer{Width: 4, Height: 1, Direct: make([]uint16, 4)}

	img := hexImage(t, map[uint32][]byte{0: {0x34, 0x12, 0x78}})
	test.DemandSuccess(t, loader.LoadHex(bytes.NewReader(img), fb))
	test.ExpectEquality(t, fb.Direct[0], uint16(0x1234))
	test.ExpectEquality(t, fb.Direct[1], uint16(0x0078))

	img = hexImage(t, map[uint32][]byte{7: {0x56}})
	test.DemandSuccess(t, loader.LoadHex(bytes.NewReader(img), fb))
	test.ExpectEquality(t, fb.Direct[3], uint16(0x5600))

	img = hexImage(t, map[uint32][]byte{8: {0x00}})
	test.ExpectFailure(t, loader.LoadHex(bytes.NewReader(img), fb))
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()

	ld := loader.NewLoader(filepath.Join(dir, "picture.hex"))
	test.ExpectEquality(t, ld.Format, loader.IntelHex)
	test.ExpectEquality(t, ld.ShortName(), "picture")
	test.ExpectFailure(t, ld.Load())
	test.ExpectFailure(t, ld.HasLoaded())

	pth := filepath.Join(dir, "picture.bin")
	test.DemandSuccess(t, os.WriteFile(pth, []byte{5, 6, 7}, 0o644))

	ld = loader.NewLoader(pth)
	test.ExpectEquality(t, ld.Format, loader.Binary)

	fb := vga.Framebuffer{Width: 4, Height: 1, Indexed: make([]uint8, 4)}
	test.DemandSuccess(t, ld.Framebuffer(fb))
	test.ExpectSuccess(t, ld.HasLoaded())
	test.ExpectEquality(t, fb.Indexed[2], uint8(7))
	test.ExpectEquality(t, len(ld.Hash), 40)

	// the hash is checked
	bad := loader.NewLoader(pth)
	bad.Hash = strings.Repeat("0", 40)
	err := bad.Load()
	test.ExpectSuccess(t, curated.Is(err, loader.HashError))

	good := loader.NewLoader(pth)
	good.Hash = ld.Hash
	test.ExpectSuccess(t, good.Load())

	// too large
	small := vga.Framebuffer{Width: 2, Height: 1, Indexed: make([]uint8, 2)}
	err = ld.Framebuffer(small)
	test.ExpectSuccess(t, curated.Is(err, loader.OutOfBounds))
}
