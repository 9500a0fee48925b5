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

package specification_test

import (
	"testing"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/vga/specification"
	"github.com/arcadeit/arcadeit/test"
)

func TestGeometry(t *testing.T) {
	for _, s := range specification.SpecList {
		test.ExpectSuccess(t, s.Validate(), s.ID)
		test.ExpectSuccess(t, s.Active+s.FrontPorch+s.Sync+s.BackPorch <= s.SamplesPerLine, s.ID)
		test.ExpectEquality(t, s.Height()*s.Multiplier(), s.LinesActive, s.ID)

		// within one percent of the VGA line and frame rates
		test.ExpectApproximate(t, s.LineFrequency(), 31469.0, 0.01, s.ID)
		test.ExpectApproximate(t, s.FrameRate(), 59.94, 0.01, s.ID)
	}
}

func TestReferenceVGA(t *testing.T) {
	s := specification.SpecVGA
	test.ExpectEquality(t, s.Width(), 640)
	test.ExpectEquality(t, s.Height(), 480)
	test.ExpectEquality(t, s.SamplesPerLine, 818)
	test.ExpectEquality(t, s.LinesTotal, 525)
	test.ExpectEquality(t, s.SyncStart(), 656)
}

func TestSearch(t *testing.T) {
	s, ok := specification.SearchSpec("qqvga")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, s.Width(), 160)
	test.ExpectEquality(t, s.Height(), 120)
	test.ExpectEquality(t, s.Multiplier(), 4)

	_, ok = specification.SearchSpec("SVGA")
	test.ExpectFailure(t, ok)
}

func TestInvalid(t *testing.T) {
	s := specification.SpecVGA
	s.BackPorch = 100
	test.ExpectFailure(t, s.Validate())

	s = specification.SpecQQVGA
	s.LinesActive = 478
	s.LinesTotal = 523
	test.ExpectFailure(t, s.Validate())
}

func TestInvalidFields(t *testing.T) {
	cases := []struct {
		name string
		edit func(*specification.Spec)
	}{
		{"negative factor", func(s *specification.Spec) { s.Factor = -1 }},
		{"huge factor", func(s *specification.Spec) { s.Factor = 64 }},
		{"factor above cap", func(s *specification.Spec) { s.Factor = specification.MaxFactor + 1 }},
		{"negative active", func(s *specification.Spec) { s.Active = -160 }},
		{"zero active", func(s *specification.Spec) { s.Active = 0 }},
		{"negative front porch", func(s *specification.Spec) { s.FrontPorch = -4 }},
		{"negative sync", func(s *specification.Spec) { s.Sync = -24 }},
		{"negative back porch", func(s *specification.Spec) { s.BackPorch = -12 }},
		{"zero samples", func(s *specification.Spec) { s.SamplesPerLine = 0 }},
		{"negative vertical", func(s *specification.Spec) {
			s.LinesFrontPorch = -10
			s.LinesBackPorch += 20
		}},
	}

	for _, c := range cases {
		s := specification.SpecQQVGA
		c.edit(&s)
		err := s.Validate()
		test.ExpectFailure(t, err, c.name)
		test.ExpectSuccess(t, curated.Is(err, specification.InvalidGeometry), c.name)
	}
}
