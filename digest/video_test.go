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

package digest_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/arcadeit/arcadeit/digest"
	"github.com/arcadeit/arcadeit/hardware/board"
	"github.com/arcadeit/arcadeit/hardware/vga"
	"github.com/arcadeit/arcadeit/hardware/vga/specification"
	"github.com/arcadeit/arcadeit/test"
	"github.com/sigurn/crc16"
)

func frame(t *testing.T, dig *digest.Video, spec specification.Spec, n int, colour uint16) {
	t.Helper()
	line := make([]uint16, spec.Active)
	for i := range line {
		line[i] = colour | vga.HSyncIdle
	}
	for y := range spec.LinesActive {
		test.DemandSuccess(t, dig.SetLine(y, line))
	}
	test.DemandSuccess(t, dig.NewFrame(n))
}

func TestChaining(t *testing.T) {
	spec := specification.SpecQQVGA

	a := digest.NewVideo()
	test.DemandSuccess(t, a.Resize(spec))
	b := digest.NewVideo()
	test.DemandSuccess(t, b.Resize(spec))

	frame(t, a, spec, 1, 0x1234)
	frame(t, b, spec, 1, 0x1234)
	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectEquality(t, a.Frame(), 1)

	// the same picture again gives a different digest because of the chain
	h := a.Hash()
	frame(t, a, spec, 2, 0x1234)
	test.ExpectInequality(t, a.Hash(), h)

	// a different picture in the same position of the chain
	frame(t, b, spec, 2, 0x1235)
	test.ExpectInequality(t, a.Hash(), b.Hash())

	a.ResetDigest()
	b.ResetDigest()
	frame(t, a, spec, 1, 0x0001)
	frame(t, b, spec, 1, 0x0001)
	test.ExpectEquality(t, a.Hash(), b.Hash())
}

func TestLineCRC(t *testing.T) {
	spec := specification.SpecQQVGA
	dig := digest.NewVideo()
	test.DemandSuccess(t, dig.Resize(spec))

	frame(t, dig, spec, 1, 0x0421)

	data := make([]byte, spec.Active*2)
	for x := range spec.Active {
		binary.BigEndian.PutUint16(data[x*2:], 0x0421)
	}
	expected := crc16.Checksum(data, crc16.MakeTable(crc16.CRC16_CCITT_FALSE))

	crc, err := dig.LineCRC(0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, crc, expected)

	crc, err = dig.LineCRC(spec.LinesActive - 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, crc, expected)

	_, err = dig.LineCRC(spec.LinesActive)
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, dig.SetLine(-1, nil))
}

// two boards showing the same picture produce the same digest
func TestDeterminism(t *testing.T) {
	run := func() string {
		p, err := board.NewPrefs("")
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, p.Mode.Set(specification.SpecQQVGA.ID))

		b, err := board.NewBoard(p, board.DefaultProfile(), nil)
		test.DemandSuccess(t, err)
		defer b.Close()

		dig := digest.NewVideo()
		b.Monitor.AddPixelRenderer(dig)

		test.DemandSuccess(t, b.Boot(context.Background()))

		pal := b.VGA.RenderPalette()
		pal.Colors[1] = 0x7c00
		b.VGA.SwapPalette()

		fb := b.VGA.RenderIndexed()
		for i := range fb {
			fb[i] = uint8(i % 2)
		}
		b.VGA.SwapBuffer()

		test.DemandSuccess(t, b.Run(context.Background(), 4))
		return dig.Hash()
	}

	test.ExpectEquality(t, run(), run())
}
