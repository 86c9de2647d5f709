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

// Shape is the path pattern printed on a tile, independent of rotation.
type Shape int

const (
	Straight Shape = iota // │
	Elbow                 // └
	Tee                   // ┬
	Cross                 // ┼

	ShapeN = 4
)

// openings of every shape in its unrotated orientation.
var openings = [ShapeN][]Direction{
	Straight: {Up, Down},
	Elbow:    {Up, Right},
	Tee:      {Left, Right, Down},
	Cross:    {Up, Right, Down, Left},
}

// period is the smallest non-zero rotation mapping a shape onto itself.
var period = [ShapeN]Degree{
	Straight: Degree180,
	Elbow:    DegreeN,
	Tee:      DegreeN,
	Cross:    Degree90,
}

func (shape Shape) String() string {
	switch shape {
	case Straight:
		return "straight"
	case Elbow:
		return "elbow"
	case Tee:
		return "tee"
	case Cross:
		return "cross"
	default:
		return fmt.Sprintf("Shape(%d)", int(shape))
	}
}

// connectors is a bitset of open directions, indexed by Direction.
type connectors uint8

func (c connectors) has(d Direction) bool {
	return c&(1<<d) != 0
}

// symbols maps every reachable connector set onto its box drawing glyph.
var symbols = map[connectors]string{
	1<<Up | 1<<Down:                      "│",
	1<<Left | 1<<Right:                   "─",
	1<<Up | 1<<Right:                     "└",
	1<<Right | 1<<Down:                   "┌",
	1<<Down | 1<<Left:                    "┐",
	1<<Left | 1<<Up:                      "┘",
	1<<Left | 1<<Right | 1<<Down:         "┬",
	1<<Up | 1<<Down | 1<<Left:            "┤",
	1<<Left | 1<<Right | 1<<Up:           "┴",
	1<<Up | 1<<Down | 1<<Right:           "├",
	1<<Up | 1<<Right | 1<<Down | 1<<Left: "┼",
}

var ErrBadSymbol = errors.New("board: unknown connector symbol")

// Tile is a single square of the maze. Tiles are values; rotating a tile
// returns a new one.
type Tile struct {
	Shape    Shape
	Rotation Degree
	Treasure Treasure
}

// NewTile creates a tile, normalizing the rotation so that tiles with the
// same connectors always compare equal with ==.
func NewTile(shape Shape, rotation Degree, treasure Treasure) Tile {
	return Tile{
		Shape:    shape,
		Rotation: Degree(mod(int(rotation), int(period[shape]))),
		Treasure: treasure,
	}
}

// ParseTile builds a tile from its connector symbol.
func ParseTile(symbol string, treasure Treasure) (Tile, error) {
	for shape := Straight; shape < ShapeN; shape++ {
		for rotation := Degree0; rotation < period[shape]; rotation++ {
			tile := NewTile(shape, rotation, treasure)
			if tile.Symbol() == symbol {
				return tile, nil
			}
		}
	}

	return Tile{}, fmt.Errorf("%w: %q", ErrBadSymbol, symbol)
}

// Rotate returns the tile turned clockwise by the given rotation.
func (tile Tile) Rotate(by Degree) Tile {
	return NewTile(tile.Shape, tile.Rotation.Add(by), tile.Treasure)
}

func (tile Tile) connectors() connectors {
	var set connectors
	for _, d := range openings[tile.Shape] {
		set |= 1 << d.Rotate(tile.Rotation)
	}

	return set
}

// Open reports whether the tile has a path leaving it towards d.
func (tile Tile) Open(d Direction) bool {
	return tile.connectors().has(d)
}

// Connects reports whether a path leads from tile to neighbor, which
// lies next to tile in direction d. Both tiles must be open towards each
// other.
func (tile Tile) Connects(neighbor Tile, d Direction) bool {
	return tile.Open(d) && neighbor.Open(d.Opposite())
}

// Symbol returns the box drawing glyph of the tile's connectors.
func (tile Tile) Symbol() string {
	return symbols[tile.connectors()]
}

// Equal compares tiles by content, ignoring their rotation.
func (tile Tile) Equal(other Tile) bool {
	return tile.Shape == other.Shape && tile.Treasure == other.Treasure
}

func (tile Tile) String() string {
	return tile.Symbol() + " " + tile.Treasure.String()
}
