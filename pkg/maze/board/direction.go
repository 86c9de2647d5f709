// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package board

import (
	"errors"
	"fmt"
)

// Direction is one of the four directions a line can be slid in or a
// tile connector can point towards. The values are ordered clockwise so
// that rotating a direction by a quarter turn is an addition modulo 4.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left

	DirectionN = 4
)

var ErrBadDirection = errors.New("board: unknown direction")

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % DirectionN
}

// Rotate rotates the direction clockwise by the given rotation.
func (d Direction) Rotate(by Degree) Direction {
	return Direction(mod(int(d)+int(by), DirectionN))
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Up && d < DirectionN
}

// Horizontal reports whether sliding in this direction moves a row.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// delta is the row and column offset of a single step in the direction.
func (d Direction) delta() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Right:
		return 0, +1
	case Down:
		return +1, 0
	default:
		return 0, -1
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Right:
		return "RIGHT"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses one of the direction tokens "UP", "RIGHT",
// "DOWN" and "LEFT".
func ParseDirection(token string) (Direction, error) {
	for d := Up; d < DirectionN; d++ {
		if d.String() == token {
			return d, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrBadDirection, token)
}

// Degree is a clockwise rotation in quarter turns.
type Degree int

const (
	Degree0 Degree = iota
	Degree90
	Degree180
	Degree270

	DegreeN = 4
)

var ErrBadDegree = errors.New("board: rotation must be 0, 1, 2 or 3 quarter turns")

// NewDegree converts a number of clockwise quarter turns into a Degree.
func NewDegree(quarters int) (Degree, error) {
	if quarters < 0 || quarters >= DegreeN {
		return 0, fmt.Errorf("%w: got %d", ErrBadDegree, quarters)
	}

	return Degree(quarters), nil
}

// Add returns the rotation obtained by applying other after d.
func (d Degree) Add(other Degree) Degree {
	return Degree(mod(int(d+other), DegreeN))
}

// Valid reports whether d is a rotation of 0 to 3 quarter turns.
func (d Degree) Valid() bool {
	return d >= Degree0 && d < DegreeN
}

// mod is the non-negative remainder of a divided by n.
func mod(a, n int) int {
	return (a%n + n) % n
}

func (d Degree) String() string {
	return fmt.Sprintf("%d°", int(d)*90)
}
