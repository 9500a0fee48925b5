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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect functions report a test error and carry on. The Demand functions
// report a fatality and stop the test. Use Demand when later parts of the
// test depend on the value being correct, for example the length of a slice
// that is about to be iterated over.
//
// Success and failure are interpreted according to the type of the value:
//
//	bool  -> true is success
//	error -> nil is success
//	nil   -> success
//
// The nil case is not obvious but is required because of how errors work in
// Go. A nil error interface does not carry its type so it arrives here as a
// bare nil.
//
// RingWriter implements io.Writer and keeps only the most recent bytes
// written to it. It is useful for capturing the tail of diagnostic output, for
// example the serial port banner.
package test
