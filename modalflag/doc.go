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

// Package modalflag wraps the flag package to give a command line made of
// modes, each with its own flags. For example:
//
//	arcadeit RUN -mode QVGA
//	arcadeit HEADLESS -frames 60
//	arcadeit TASKS -dot tasks.dot
//
// Arguments are given to NewArgs() and each level is handled with a call to
// Parse(). Sub-modes for the level are added with AddSubModes() before Parse()
// is called and the selected mode is returned by Mode(). The first sub-mode is
// the default.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "HEADLESS")
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		fps := md.AddInt("fps", 60, "frame rate limit")
//		...
//	}
//
// Sub-mode comparison is case insensitive. Modes are always reported in upper
// case.
package modalflag
