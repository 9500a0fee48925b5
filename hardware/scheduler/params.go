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

package scheduler

import (
	"github.com/arcadeit/arcadeit/curated"
)

// MaxParams is the number of words that can be passed to a task function.
const MaxParams = 4

// TooManyParams is returned by NewParams() when more than MaxParams words are
// given.
const TooManyParams = "scheduler: too many parameters (%d > %d)"

// Params is the bounded parameter block given to a task function. It is a
// value type and there is no allocation per task.
type Params struct {
	words [MaxParams]uint32
	n     int
}

// NewParams creates a parameter block from the words.
func NewParams(words ...uint32) (Params, error) {
	var p Params
	if len(words) > MaxParams {
		return p, curated.Errorf(TooManyParams, len(words), MaxParams)
	}
	p.n = copy(p.words[:], words)
	return p, nil
}

// Len returns the number of words in the parameter block.
func (p Params) Len() int {
	return p.n
}

// Word returns the numbered word. Words beyond Len() are zero.
func (p Params) Word(i int) uint32 {
	if i < 0 || i >= p.n {
		return 0
	}
	return p.words[i]
}
