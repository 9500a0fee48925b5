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

// Package specification contains the definitions of the VGA resolutions
// supported by the video driver.
//
// A resolution is defined by the number of samples the DMA stream sends for
// each scanline and by the number of pixel timer clocks between samples. The
// timer runs at 180MHz so the sample rate can only be 180MHz divided by a whole
// number. The number of samples per line is chosen so that the line frequency
// is as near to the standard 31.469kHz as the divisor allows. For the 640x480
// resolution this means 818 samples per line rather than the standard 800. The
// extra samples are sent as part of the back porch.
//
// The timings are an approximation of the VGA standard and have been tuned
// against real monitors. They should not be "corrected".
//
// Lower vertical resolutions are produced by line multiplication. Each logical
// line of the framebuffer is shown on 1<<Factor consecutive physical
// scanlines. The physical scanline timing is the same for every resolution.
package specification

import (
	"fmt"
	"strings"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/clocks"
)

// Spec is the geometry of a single resolution. Spec values should be treated
// as immutable.
type Spec struct {
	ID string

	// number of pixel timer clocks per sample
	HClocks uint32

	// the total number of samples in each scanline and the division of the
	// line into the active picture, front porch, sync pulse and back porch.
	// the back porch is extended by any samples not accounted for by the
	// other three parts
	SamplesPerLine int
	Active         int
	FrontPorch     int
	Sync           int
	BackPorch      int

	// line multiplication factor. each logical line is displayed 1<<Factor
	// times
	Factor int

	// vertical timing in physical scanlines
	LinesActive     int
	LinesFrontPorch int
	LinesSync       int
	LinesBackPorch  int
	LinesTotal      int
}

func (s Spec) String() string {
	return fmt.Sprintf("%s (%dx%d)", s.ID, s.Width(), s.Height())
}

// Width returns the number of pixels in each logical line.
func (s Spec) Width() int {
	return s.Active
}

// Height returns the number of logical lines.
func (s Spec) Height() int {
	return s.LinesActive >> s.Factor
}

// Multiplier returns the number of physical scanlines used for each logical
// line.
func (s Spec) Multiplier() int {
	return 1 << s.Factor
}

// ClocksPerLine returns the number of pixel timer clocks in one scanline.
func (s Spec) ClocksPerLine() uint32 {
	return s.HClocks * uint32(s.SamplesPerLine)
}

// LineFrequency is the horizontal frequency in Hz.
func (s Spec) LineFrequency() float64 {
	return float64(clocks.Timer) / float64(s.ClocksPerLine())
}

// FrameRate is the vertical frequency in Hz.
func (s Spec) FrameRate() float64 {
	return s.LineFrequency() / float64(s.LinesTotal)
}

// SyncStart returns the offset in the scanline of the first sample of the
// horizontal sync pulse.
func (s Spec) SyncStart() int {
	return s.Active + s.FrontPorch
}

// MaxFactor is the largest line multiplication factor.
const MaxFactor = 8

// Sentinal error patterns.
const (
	InvalidGeometry = "specification: %s: %s"
)

// Validate checks that the geometry is consistent.
func (s Spec) Validate() error {
	if s.HClocks == 0 {
		return curated.Errorf(InvalidGeometry, s.ID, "zero clocks per sample")
	}
	if s.SamplesPerLine <= 0 || s.Active <= 0 || s.FrontPorch < 0 || s.Sync < 0 || s.BackPorch < 0 {
		return curated.Errorf(InvalidGeometry, s.ID, "negative or empty horizontal timing")
	}
	if s.Active+s.FrontPorch+s.Sync+s.BackPorch > s.SamplesPerLine {
		return curated.Errorf(InvalidGeometry, s.ID, fmt.Sprintf("horizontal timing exceeds %d samples", s.SamplesPerLine))
	}
	if s.Sync == 0 {
		return curated.Errorf(InvalidGeometry, s.ID, "no horizontal sync")
	}
	if s.LinesActive <= 0 || s.LinesFrontPorch < 0 || s.LinesSync < 0 || s.LinesBackPorch < 0 {
		return curated.Errorf(InvalidGeometry, s.ID, "negative or empty vertical timing")
	}
	if s.LinesActive+s.LinesFrontPorch+s.LinesSync+s.LinesBackPorch != s.LinesTotal {
		return curated.Errorf(InvalidGeometry, s.ID, fmt.Sprintf("vertical timing does not add up to %d lines", s.LinesTotal))
	}
	if s.Factor < 0 || s.Factor > MaxFactor {
		return curated.Errorf(InvalidGeometry, s.ID, fmt.Sprintf("line multiplication factor %d out of range", s.Factor))
	}
	if s.LinesActive%s.Multiplier() != 0 {
		return curated.Errorf(InvalidGeometry, s.ID, fmt.Sprintf("active lines not a multiple of %d", s.Multiplier()))
	}
	return nil
}

// standard VGA vertical timing for 60Hz
const (
	linesActive     = 480
	linesFrontPorch = 10
	linesSync       = 2
	linesBackPorch  = 33
	linesTotal      = linesActive + linesFrontPorch + linesSync + linesBackPorch
)

// SpecVGA is 640x480, one physical scanline per logical line.
var SpecVGA = Spec{
	ID:              "VGA",
	HClocks:         7,
	SamplesPerLine:  818,
	Active:          640,
	FrontPorch:      16,
	Sync:            96,
	BackPorch:       48,
	Factor:          0,
	LinesActive:     linesActive,
	LinesFrontPorch: linesFrontPorch,
	LinesSync:       linesSync,
	LinesBackPorch:  linesBackPorch,
	LinesTotal:      linesTotal,
}

// SpecHVGA is 320x480. Samples are twice as wide as VGA.
var SpecHVGA = Spec{
	ID:              "HVGA",
	HClocks:         14,
	SamplesPerLine:  409,
	Active:          320,
	FrontPorch:      8,
	Sync:            48,
	BackPorch:       24,
	Factor:          0,
	LinesActive:     linesActive,
	LinesFrontPorch: linesFrontPorch,
	LinesSync:       linesSync,
	LinesBackPorch:  linesBackPorch,
	LinesTotal:      linesTotal,
}

// SpecQVGA is 320x240. Each logical line is shown twice.
var SpecQVGA = Spec{
	ID:              "QVGA",
	HClocks:         14,
	SamplesPerLine:  409,
	Active:          320,
	FrontPorch:      8,
	Sync:            48,
	BackPorch:       24,
	Factor:          1,
	LinesActive:     linesActive,
	LinesFrontPorch: linesFrontPorch,
	LinesSync:       linesSync,
	LinesBackPorch:  linesBackPorch,
	LinesTotal:      linesTotal,
}

// SpecQQVGA is 160x120. Each logical line is shown four times.
var SpecQQVGA = Spec{
	ID:              "QQVGA",
	HClocks:         28,
	SamplesPerLine:  205,
	Active:          160,
	FrontPorch:      4,
	Sync:            24,
	BackPorch:       12,
	Factor:          2,
	LinesActive:     linesActive,
	LinesFrontPorch: linesFrontPorch,
	LinesSync:       linesSync,
	LinesBackPorch:  linesBackPorch,
	LinesTotal:      linesTotal,
}

// SpecList is the list of resolutions that the driver supports.
var SpecList = []Spec{SpecVGA, SpecHVGA, SpecQVGA, SpecQQVGA}

// SearchSpec looks for a resolution by ID. The search is case insensitive.
func SearchSpec(id string) (Spec, bool) {
	for _, s := range SpecList {
		if strings.EqualFold(s.ID, id) {
			return s, true
		}
	}
	return Spec{}, false
}

func init() {
	for _, s := range SpecList {
		if err := s.Validate(); err != nil {
			panic(err)
		}
	}
}
