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

// Package curated is a helper package for the plain Go language error type.
//
// Curated errors are created with the Errorf() function. It takes a pattern
// and placeholder values in the same way as fmt.Errorf(). The pattern is kept
// with the error and is used to identify the error later:
//
//	const InvalidTaskID = "scheduler: invalid task id (%d)"
//
//	err := curated.Errorf(InvalidTaskID, 7)
//
//	if curated.Is(err, InvalidTaskID) {
//		...
//	}
//
// Has() is similar to Is() but checks every curated error in the chain:
//
//	f := curated.Errorf("board: %v", err)
//	curated.Has(f, InvalidTaskID) // true
//	curated.Is(f, InvalidTaskID)  // false
//
// Patterns should be declared as package level constants by the package that
// returns the error. Callers can then test for a specific failure without
// resorting to string comparison.
//
// The Error() implementation normalises the message chain by removing
// duplicate adjacent parts. Parts are separated by the sub-string ": ". This
// means a package can wrap an error with its own prefix without worrying
// whether the error already carries that prefix.
//
// There is no exception mechanism at the board level and errors are never
// raised from interrupt context. Curated errors are returned to the immediate
// caller at the API boundary and handled there.
package curated
