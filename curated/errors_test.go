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

package curated_test

import (
	"errors"
	"testing"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/test"
)

const testPattern = "test: %d"
const wrapPattern = "wrap: %v"

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("vga: %v", curated.Errorf("vga: mode not set"))
	test.ExpectEquality(t, e.Error(), "vga: mode not set")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, testPattern))
	test.ExpectFailure(t, curated.Is(e, wrapPattern))

	test.ExpectFailure(t, curated.IsAny(errors.New("plain")))
	test.ExpectFailure(t, curated.IsAny(nil))
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	f := curated.Errorf(wrapPattern, e)
	test.ExpectSuccess(t, curated.Has(f, testPattern))
	test.ExpectSuccess(t, curated.Has(f, wrapPattern))
	test.ExpectFailure(t, curated.Is(f, testPattern))
	test.ExpectEquality(t, f.Error(), "wrap: test: 10")
}

func TestUnwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	f := curated.Errorf(wrapPattern, sentinel)
	test.ExpectSuccess(t, errors.Is(f, sentinel))
}
