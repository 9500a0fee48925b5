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

package modalflag_test

import (
	"testing"

	"github.com/arcadeit/arcadeit/modalflag"
	"github.com/arcadeit/arcadeit/test"
)

func newWriter(t *testing.T) *test.RingWriter {
	t.Helper()
	w, err := test.NewRingWriter(1024)
	test.DemandSuccess(t, err)
	return w
}

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.String(), "")
}

func TestFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-frames", "60", "-halt", "a", "b"})
	frames := md.AddInt("frames", 0, "number of frames")
	halt := md.AddBool("halt", false, "halt on failure")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *frames, 60)
	test.ExpectSuccess(t, *halt)
	test.ExpectEquality(t, md.Mode(), "")
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"headless", "-frames", "10"})
	md.AddSubModes("RUN", "HEADLESS", "PORTS")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "HEADLESS")

	md.NewMode()
	frames := md.AddInt("frames", 0, "number of frames")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *frames, 10)
	test.ExpectEquality(t, md.String(), "HEADLESS")

	// a second level of sub-modes extends the path
	md.NewArgs([]string{"run", "fast"})
	md.AddSubModes("RUN")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	md.NewMode()
	md.AddSubModes("SLOW", "FAST")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.String(), "RUN/FAST")
}

func TestDefaultMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})
	md.AddSubModes("RUN", "HEADLESS")
	_, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")
}

func TestFlagBeforeMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-mode", "qvga"})
	md.AddSubModes("RUN", "HEADLESS")

	// the flag belongs to the default mode
	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")

	md.NewMode()
	mode := md.AddString("mode", "", "resolution")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, *mode, "qvga")
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-nosuchflag"})
	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestNoHelpAvailable(t *testing.T) {
	w := newWriter(t)
	md := modalflag.Modes{Output: w}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, w.String(), "No help available\n")
}

func TestHelpFlags(t *testing.T) {
	w := newWriter(t)
	md := modalflag.Modes{Output: w}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, w.String(), "Usage:\n"+
		"  -test\n"+
		"    \ttest flag (default true)\n")
}

func TestHelpFlagsAndModes(t *testing.T) {
	w := newWriter(t)
	md := modalflag.Modes{Output: w}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")
	md.AddSubModes("A", "B", "C")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, w.String(), "Usage:\n"+
		"  -test\n"+
		"    \ttest flag (default true)\n"+
		"\n"+
		"  available sub-modes: A, B, C\n"+
		"    default: A\n")
}

func TestHelpModes(t *testing.T) {
	w := newWriter(t)
	md := modalflag.Modes{Output: w}
	md.NewArgs([]string{"run", "-help"})
	md.AddSubModes("RUN")
	_, _ = md.Parse()

	md.NewMode()
	md.AddSubModes("X", "Y")
	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectEquality(t, w.String(), "Usage: for RUN mode\n"+
		"  available sub-modes: X, Y\n"+
		"    default: X\n")
}
