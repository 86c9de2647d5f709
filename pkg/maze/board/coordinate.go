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
	"math"
)

var ErrOutOfBounds = errors.New("board: coordinate out of bounds")

// Coordinate identifies a tile on the board by its zero-based row and
// column.
type Coordinate struct {
	Row, Column int
}

// NewCoordinate creates a coordinate, failing on negative indices. The
// upper bounds depend on the board, see Board.Coordinate.
func NewCoordinate(row, column int) (Coordinate, error) {
	if row < 0 || column < 0 {
		return Coordinate{}, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, column)
	}

	return Coordinate{Row: row, Column: column}, nil
}

// Step returns the coordinate next to c in the given direction. The
// result may lie outside the board.
func (c Coordinate) Step(d Direction) Coordinate {
	dr, dc := d.delta()
	return Coordinate{Row: c.Row + dr, Column: c.Column + dc}
}

// Distance is the euclidean distance between two coordinates.
func (c Coordinate) Distance(other Coordinate) float64 {
	return math.Hypot(float64(c.Row-other.Row), float64(c.Column-other.Column))
}

// Less orders coordinates row-major.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}

	return c.Column < other.Column
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Column)
}
