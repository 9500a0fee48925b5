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

package timer_test

import (
	"testing"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/timer"
	"github.com/arcadeit/arcadeit/test"
)

func TestPeriod(t *testing.T) {
	tim := timer.NewTimer("TIM8")
	err := tim.SetPeriod(0)
	test.ExpectSuccess(t, curated.Is(err, timer.InvalidPeriod))

	test.DemandSuccess(t, tim.SetPeriod(7))
	test.ExpectEquality(t, tim.Period(), uint32(7))

	test.ExpectFailure(t, tim.Enabled())
	tim.Enable()
	test.ExpectSuccess(t, tim.Enabled())
	tim.Disable()
	test.ExpectFailure(t, tim.Enabled())
}

func TestPWM(t *testing.T) {
	tim := timer.NewTimer("TIM2")
	test.DemandSuccess(t, tim.SetPeriod(100))

	_, err := tim.Channel(0)
	test.ExpectSuccess(t, curated.Is(err, timer.InvalidChannel))
	_, err = tim.Channel(timer.NumChannels + 1)
	test.ExpectFailure(t, err)

	ch, err := tim.Channel(1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ch.Duty(), 0.0)

	ch.SetCompare(50)
	test.ExpectEquality(t, ch.Duty(), 0.5)
	ch.SetCompare(150)
	test.ExpectEquality(t, ch.Duty(), 1.0)
}
