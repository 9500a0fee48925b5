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

package board

import (
	"fmt"
	"io"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/lcd"
	"github.com/arcadeit/arcadeit/hardware/timer"
	"github.com/arcadeit/arcadeit/hardware/vga/specification"
	"gopkg.in/yaml.v3"
)

// MaxLCDs is the number of LCD panels that can be fitted.
const MaxLCDs = 2

// Sentinal error patterns.
const (
	ProfileError = "board: profile: %v"
)

// LCDProfile describes one LCD panel.
type LCDProfile struct {
	Name string `yaml:"name"`

	// PWM channel of the backlight timer
	Channel int `yaml:"channel"`
}

// Profile describes the hardware fitted to a board. It is read from a YAML
// file. For example:
//
//	name: ArcadeIT! rev C
//	hseStartup: 16
//	flash: 2097152
//	sram: 393216
//	lcds:
//	  - name: LCD1
//	    channel: 1
type Profile struct {
	Name string `yaml:"name"`

	// number of ready polls before each oscillator is stable. a negative
	// value means the oscillator never becomes ready
	HSEStartup int `yaml:"hseStartup"`
	PLLStartup int `yaml:"pllStartup"`

	// memory sizes in bytes, for the boot banner
	Flash int `yaml:"flash"`
	SRAM  int `yaml:"sram"`

	LCDs []LCDProfile `yaml:"lcds"`
}

// DefaultProfile is the standard board with two LCD panels.
func DefaultProfile() Profile {
	return Profile{
		Name:       "ArcadeIT!",
		HSEStartup: 16,
		PLLStartup: 64,
		Flash:      2 * 1024 * 1024,
		SRAM:       384 * 1024,
		LCDs: []LCDProfile{
			{Name: "LCD1", Channel: 1},
			{Name: "LCD2", Channel: 2},
		},
	}
}

// LoadProfile reads a profile from YAML. Fields missing from the YAML keep
// the values of DefaultProfile().
func LoadProfile(r io.Reader) (Profile, error) {
	p := DefaultProfile()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return Profile{}, curated.Errorf(ProfileError, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the profile for errors.
func (p Profile) Validate() error {
	if len(p.LCDs) > MaxLCDs {
		return curated.Errorf(ProfileError, fmt.Sprintf("too many LCDs (%d > %d)", len(p.LCDs), MaxLCDs))
	}
	used := make(map[int]bool)
	for _, l := range p.LCDs {
		if l.Channel < 1 || l.Channel > timer.NumChannels {
			return curated.Errorf(ProfileError, fmt.Sprintf("%s: no such PWM channel (%d)", l.Name, l.Channel))
		}
		if used[l.Channel] {
			return curated.Errorf(ProfileError, fmt.Sprintf("%s: PWM channel %d already used", l.Name, l.Channel))
		}
		used[l.Channel] = true
	}
	if p.Flash < 0 || p.SRAM < 0 {
		return curated.Errorf(ProfileError, "negative memory size")
	}
	return nil
}

// the backlight timer runs at the PWM step count so that the compare value is
// the brightness
const backlightPeriod = lcd.PWMSteps

// default resolution if the mode preference is not recognised
var defaultSpec = specification.SpecQVGA
