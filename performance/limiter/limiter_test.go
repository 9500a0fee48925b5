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

package limiter_test

import (
	"testing"
	"time"

	"github.com/arcadeit/arcadeit/performance/limiter"
	"github.com/arcadeit/arcadeit/test"
)

func TestLimiter(t *testing.T) {
	lim := limiter.NewFPSLimiter(100)
	defer lim.Close()
	test.ExpectEquality(t, lim.Limit(), float32(100))

	start := time.Now()
	for range 10 {
		test.ExpectSuccess(t, lim.Wait())
	}

	// ten frames at 100fps can never take less than 90ms
	test.ExpectSuccess(t, time.Since(start) >= 90*time.Millisecond)

	lim.SetLimit(0)
	test.ExpectEquality(t, lim.Limit(), float32(100))
	lim.SetLimit(59.94)
	test.ExpectEquality(t, lim.Limit(), float32(59.94))
}

func TestClose(t *testing.T) {
	lim := limiter.NewFPSLimiter(1)
	lim.Close()
	lim.Close()
	test.ExpectFailure(t, lim.Wait())
}
