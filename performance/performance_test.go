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

package performance_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/board"
	"github.com/arcadeit/arcadeit/hardware/vga/specification"
	"github.com/arcadeit/arcadeit/performance"
	"github.com/arcadeit/arcadeit/test"
)

func TestCalcFPS(t *testing.T) {
	spec := specification.SpecVGA
	fps, accuracy := performance.CalcFPS(spec, 600, 10)
	test.ExpectEquality(t, fps, 60.0)
	test.ExpectApproximate(t, accuracy, 100.0, 0.01)

	fps, accuracy = performance.CalcFPS(spec, 300, 10)
	test.ExpectEquality(t, fps, 30.0)
	test.ExpectApproximate(t, accuracy, 50.0, 0.01)

	fps, _ = performance.CalcFPS(spec, 300, 0)
	test.ExpectEquality(t, fps, 0.0)
}

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("cpu, MEM")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)
	test.ExpectEquality(t, p.String(), "cpu,mem")

	p, err = performance.ParseProfile("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)
	test.ExpectEquality(t, p.String(), "none")

	p, err = performance.ParseProfile("all")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.String(), "cpu,mem,trace")

	_, err = performance.ParseProfile("cpu,disk")
	test.ExpectSuccess(t, curated.Is(err, performance.InvalidProfile))
}

func TestRunProfiler(t *testing.T) {
	header := filepath.Join(t.TempDir(), "test")

	var ran bool
	err := performance.RunProfiler(performance.ProfileMem, header, func() error {
		ran = true
		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, ran)

	_, err = os.Stat(header + ".mem.profile")
	test.ExpectSuccess(t, err)
	_, err = os.Stat(header + ".cpu.profile")
	test.ExpectFailure(t, err)
}

func TestCheck(t *testing.T) {
	p, err := board.NewPrefs("")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.Mode.Set(specification.SpecQQVGA.ID))
	test.DemandSuccess(t, p.FPSCap.Set(false))

	b, err := board.NewBoard(p, board.DefaultProfile(), nil)
	test.DemandSuccess(t, err)
	defer b.Close()

	out, err := test.NewRingWriter(256)
	test.DemandSuccess(t, err)

	// not booted
	test.ExpectFailure(t, performance.Check(out, b, performance.ProfileNone, time.Millisecond))

	test.DemandSuccess(t, b.Boot(context.Background()))

	performance.LeadTime = 0
	test.DemandSuccess(t, performance.Check(out, b, performance.ProfileNone, 100*time.Millisecond))
	test.ExpectSuccess(t, strings.Contains(out.String(), " fps ("))
}
