/**
 * Copyright 2024 The NullDB Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package nulldb

// TriState is the result of a SQL boolean expression. Unlike a Go bool it has
// a third value, Unknown, which models NULL propagation through predicates.
type TriState uint64

const (
	False TriState = iota
	True
	Unknown
)

func (t TriState) String() string {
	switch t {
	case False:
		return "FALSE"

	case True:
		return "TRUE"

	case Unknown:
		return "UNKNOWN"
	}

	panic("programming error: unexpected value in String() of TriState")
}

// FromBool lifts a Go bool into a TriState.
func FromBool(b bool) TriState {
	if b {
		return True
	}

	return False
}

// And combines two tri-state values per the three-valued AND truth table.
// False dominates: False AND x = False for every x including Unknown.
func (t TriState) And(o TriState) TriState {
	if t == False || o == False {
		return False
	}

	if t == Unknown || o == Unknown {
		return Unknown
	}

	return True
}

// Or combines two tri-state values per the three-valued OR truth table.
// True dominates: True OR x = True for every x including Unknown.
func (t TriState) Or(o TriState) TriState {
	if t == True || o == True {
		return True
	}

	if t == Unknown || o == Unknown {
		return Unknown
	}

	return False
}

// Not negates a tri-state value. Unknown is a fixed point: NOT Unknown is
// still Unknown, it never flips to True or False.
func (t TriState) Not() TriState {
	switch t {
	case True:
		return False

	case False:
		return True
	}

	return Unknown
}
