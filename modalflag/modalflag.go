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

package modalflag

import (
	"flag"
	"io"
	"strings"
	"time"
)

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// parsing succeeded. if sub-modes were added then Mode() is the selected
	// mode
	ParseContinue ParseResult = iota

	// help was requested and has been written to Output
	ParseHelp

	// an error occurred and is returned as the second return value
	ParseError
)

// level is the flags and sub-modes of the mode currently being parsed
type level struct {
	flags    *flag.FlagSet
	subModes []string
}

func newLevel() level {
	return level{flags: flag.NewFlagSet("", flag.ContinueOnError)}
}

// pick the sub-mode named by arg or the default if arg names none. the second
// return value is true if arg was consumed
func (lv level) pick(arg string) (string, bool) {
	arg = strings.ToUpper(arg)
	for _, m := range lv.subModes {
		if m == arg {
			return m, true
		}
	}
	return lv.subModes[0], false
}

// Modes is the command line parser. The Output field should be set before
// Parse() is called or help messages will not be seen.
type Modes struct {
	Output io.Writer

	args []string
	next int

	lv level

	// every mode selected by Parse() since NewArgs()
	path []string
}

func (md *Modes) String() string {
	return strings.Join(md.path, "/")
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// NewArgs starts parsing a new list of arguments.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.next = 0
	md.path = md.path[:0]
	md.lv = newLevel()
}

// NewMode indicates that the remaining arguments belong to a new mode. Flags
// and sub-modes of the previous mode are forgotten.
func (md *Modes) NewMode() {
	md.lv = newLevel()
}

// AddSubModes to the list of sub-modes for the next call to Parse(). The first
// sub-mode added is the default.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.lv.subModes = append(md.lv.subModes, strings.ToUpper(m))
	}
}

// Parse the arguments for the current mode.
//
// An unrecognised flag is an error unless sub-modes have been added. In that
// case the default sub-mode is selected and the flag is left for the next
// level.
func (md *Modes) Parse() (ParseResult, error) {
	hw := &helpWriter{}
	md.lv.flags.SetOutput(hw)

	err := md.lv.flags.Parse(md.args[md.next:])
	switch {
	case err == flag.ErrHelp:
		if md.Output != nil {
			hw.help(md.Output, md.String(), md.lv.subModes)
		}
		return ParseHelp, nil
	case err != nil && len(md.lv.subModes) == 0:
		return ParseError, err
	case err != nil:
		md.path = append(md.path, md.lv.subModes[0])
		return ParseContinue, nil
	}

	md.next = len(md.args) - md.lv.flags.NArg()
	if len(md.lv.subModes) > 0 {
		m, consumed := md.lv.pick(md.lv.flags.Arg(0))
		if consumed {
			md.next++
		}
		md.path = append(md.path, m)
	}

	return ParseContinue, nil
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.lv.flags.Bool(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.lv.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.lv.flags.String(name, value, usage)
}

// AddDuration flag for next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.lv.flags.Duration(name, value, usage)
}
