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

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/gofrs/flock"
)

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file while the simulator is running ***"

// the separator between key and value in the preferences file and on the
// command line
const separator = "::"

// Sentinal error patterns.
const (
	NoPath       = "prefs: no path for preferences file"
	InvalidKey   = "prefs: invalid key (%s)"
	DuplicateKey = "prefs: key already added (%s)"
	DiskError    = "prefs: %s: %v"
)

// Disk associates preference values with keys in a preferences file. More
// than one Disk can use the same file. Entries in the file that are not known
// to a Disk are kept when it saves.
//
// The file is locked while it is read or written.
type Disk struct {
	path    string
	entries map[string]Pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf(NoPath)
	}
	return &Disk{
		path:    path,
		entries: make(map[string]Pref),
	}, nil
}

func (dsk *Disk) String() string {
	keys := dsk.keys()
	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s %s %s\n", k, separator, dsk.entries[k]))
	}
	return s.String()
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Add a preference value under key.
func (dsk *Disk) Add(key string, p Pref) error {
	if key == "" || strings.ContainsAny(key, " \t\n;") || strings.Contains(key, separator) {
		return curated.Errorf(InvalidKey, key)
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p
	return nil
}

// Reset every value to its zero value.
func (dsk *Disk) Reset() error {
	for _, k := range dsk.keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return curated.Errorf(DiskError, k, err)
		}
	}
	return nil
}

func (dsk *Disk) lock() (*flock.Flock, error) {
	l := flock.New(dsk.path + ".lock")
	if err := l.Lock(); err != nil {
		return nil, curated.Errorf(DiskError, dsk.path, err)
	}
	return l, nil
}

// read the preferences file into a map of strings. a missing file is not an
// error. the file must be locked
func (dsk *Disk) read() (map[string]string, error) {
	contents := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return contents, nil
		}
		return nil, curated.Errorf(DiskError, dsk.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// the boilerplate line is required
	if !scanner.Scan() || scanner.Text() != WarningBoilerPlate {
		return nil, curated.Errorf(DiskError, dsk.path, "not a valid preferences file")
	}

	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), separator, 2)
		if len(kv) != 2 {
			continue
		}
		contents[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(DiskError, dsk.path, err)
	}

	return contents, nil
}

// Save all values to the preferences file.
func (dsk *Disk) Save() error {
	l, err := dsk.lock()
	if err != nil {
		return err
	}
	defer l.Unlock()

	contents, err := dsk.read()
	if err != nil {
		return err
	}
	for k, p := range dsk.entries {
		contents[k] = p.String()
	}

	keys := make([]string, 0, len(contents))
	for k := range contents {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s %s %s\n", k, separator, contents[k]))
	}

	if err := os.WriteFile(dsk.path, []byte(s.String()), 0o600); err != nil {
		return curated.Errorf(DiskError, dsk.path, err)
	}

	return nil
}

// Load values from the preferences file. Values in the current command line
// group take precedence over the values in the file.
//
// If the file does not exist and saveOnFail is true then the current values
// are saved to a new file.
func (dsk *Disk) Load(saveOnFail bool) error {
	l, err := dsk.lock()
	if err != nil {
		return err
	}

	_, statErr := os.Stat(dsk.path)
	contents, err := dsk.read()
	l.Unlock()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		if v, ok := contents[k]; ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf(DiskError, k, err)
			}
		}
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf(DiskError, k, err)
			}
		}
	}

	if saveOnFail && errors.Is(statErr, fs.ErrNotExist) {
		return dsk.Save()
	}

	return nil
}
