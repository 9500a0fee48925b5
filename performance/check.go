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

package performance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/arcadeit/arcadeit/curated"
	"github.com/arcadeit/arcadeit/hardware/board"
)

// Sentinal error patterns.
const (
	CheckError = "performance: %v"
)

// LeadTime is how long the board runs before measurement starts. It allows
// the frame rate to settle down.
var LeadTime = 2 * time.Second

// Check the performance of the simulator. The board must have been booted.
//
// The board is simulated for the duration and the achieved frame rate is
// written to output. Profiles are generated as requested.
func Check(output io.Writer, b *board.Board, profile Profile, duration time.Duration) error {
	if !b.VGA.Started() {
		return curated.Errorf(CheckError, curated.Errorf(board.VideoStopped))
	}
	spec := b.VGA.Mode().Spec

	var numFrames int
	var elapsed time.Duration

	runner := func() error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 2)
		go func() { done <- b.Simulate(ctx) }()
		go func() { done <- b.MainLoop(ctx) }()

		wait := func(d time.Duration) error {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case err := <-done:
				if err == nil {
					err = curated.Errorf(CheckError, "simulation ended early")
				}
				return err
			case <-t.C:
				return nil
			}
		}

		if err := wait(LeadTime); err != nil {
			return err
		}

		startFrame := b.VGA.Frame()
		startTime := time.Now()

		if err := wait(duration); err != nil {
			return err
		}

		numFrames = int(b.VGA.Frame() - startFrame)
		elapsed = time.Since(startTime)

		cancel()
		for range 2 {
			if err := <-done; err != nil {
				return err
			}
		}
		return nil
	}

	if err := RunProfiler(profile, "performance", runner); err != nil {
		return curated.Errorf(CheckError, err)
	}

	fps, accuracy := CalcFPS(spec, numFrames, elapsed.Seconds())
	_, err := io.WriteString(output, fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, elapsed.Seconds(), accuracy))
	if err != nil {
		return curated.Errorf(CheckError, err)
	}

	return nil
}
