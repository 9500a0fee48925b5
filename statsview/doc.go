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

// Package statsview offers a local HTTP server with runtime statistics of the
// simulator. The server is only built when the statsview build tag is present.
// Without the tag Launch() does nothing and Available() returns false.
//
// The underlying functionality is provided by "github.com/go-echarts/statsview".
//
// After launch, graphical statistics are viewable at:
//
//	localhost:12680/debug/statsview
//
// And standard Go pprof statistics are available at:
//
//	localhost:12680/debug/pprof/
//
// The statistics are those of the host process. They are useful for checking
// that the simulated interrupt handlers do not allocate.
package statsview
