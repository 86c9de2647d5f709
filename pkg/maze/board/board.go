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
	"strings"
)

// Dimensions of a standard maze board.
const (
	Width  = 7
	Height = 7
)

var (
	ErrNotSlideable  = errors.New("board: line is not slideable")
	ErrBadDimensions = errors.New("board: tile grid has wrong dimensions")
	ErrWrongAxis     = errors.New("board: direction does not move this kind of line")
)

// Slideable reports whether the row or column with the given index can
// be slid. Even lines slide while odd lines are fixed.
func Slideable(index int) bool {
	return index%2 == 0
}

// Board is an immutable rectangular grid of tiles. Every operation that
// changes the board returns a new one.
type Board struct {
	tiles [][]Tile
}

// New creates a board from a row-major grid of tiles. The grid is copied.
func New(tiles [][]Tile) (*Board, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrBadDimensions)
	}

	for _, row := range tiles {
		if len(row) != len(tiles[0]) {
			return nil, fmt.Errorf("%w: ragged rows", ErrBadDimensions)
		}
	}

	return &Board{tiles: clone(tiles)}, nil
}

// Valid checks that a proposed grid has the given dimensions and that no
// two tiles carry the same treasure.
func Valid(tiles [][]Tile, width, height int) error {
	if len(tiles) != height {
		return fmt.Errorf("%w: %d rows, want %d", ErrBadDimensions, len(tiles), height)
	}

	seen := make(map[Treasure]bool, width*height)
	for _, row := range tiles {
		if len(row) != width {
			return fmt.Errorf("%w: %d columns, want %d", ErrBadDimensions, len(row), width)
		}

		for _, tile := range row {
			if seen[tile.Treasure] {
				return fmt.Errorf("%w: %s", ErrDuplicateGem, tile.Treasure)
			}

			seen[tile.Treasure] = true
		}
	}

	return nil
}

func clone(tiles [][]Tile) [][]Tile {
	grid := make([][]Tile, len(tiles))
	for i, row := range tiles {
		grid[i] = append([]Tile(nil), row...)
	}

	return grid
}

func (board *Board) Width() int  { return len(board.tiles[0]) }
func (board *Board) Height() int { return len(board.tiles) }

// Contains reports whether c lies on the board.
func (board *Board) Contains(c Coordinate) bool {
	return c.Row >= 0 && c.Row < board.Height() &&
		c.Column >= 0 && c.Column < board.Width()
}

// Coordinate creates a coordinate, checking it against the board's bounds.
func (board *Board) Coordinate(row, column int) (Coordinate, error) {
	c := Coordinate{Row: row, Column: column}
	if !board.Contains(c) {
		return Coordinate{}, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}

	return c, nil
}

// Tile returns the tile at c, which must be on the board.
func (board *Board) Tile(c Coordinate) Tile {
	return board.tiles[c.Row][c.Column]
}

// Tiles returns a copy of the board's row-major tile grid.
func (board *Board) Tiles() [][]Tile {
	return clone(board.tiles)
}

// Row returns a copy of the tiles in the given row.
func (board *Board) Row(row int) []Tile {
	return append([]Tile(nil), board.tiles[row]...)
}

// Column returns a copy of the tiles in the given column.
func (board *Board) Column(column int) []Tile {
	tiles := make([]Tile, board.Height())
	for row := range tiles {
		tiles[row] = board.tiles[row][column]
	}

	return tiles
}

// SlideableRows returns the indices of the even rows.
func (board *Board) SlideableRows() []int { return indices(board.Height(), true) }

// SlideableColumns returns the indices of the even columns.
func (board *Board) SlideableColumns() []int { return indices(board.Width(), true) }

// FixedRows returns the indices of the odd rows.
func (board *Board) FixedRows() []int { return indices(board.Height(), false) }

// FixedColumns returns the indices of the odd columns.
func (board *Board) FixedColumns() []int { return indices(board.Width(), false) }

// FixedIntersections returns, in row-major order, every coordinate that
// lies on both a fixed row and a fixed column. Homes and goals may only
// be placed on these tiles since they never move.
func (board *Board) FixedIntersections() []Coordinate {
	var fixed []Coordinate
	for _, row := range board.FixedRows() {
		for _, column := range board.FixedColumns() {
			fixed = append(fixed, Coordinate{Row: row, Column: column})
		}
	}

	return fixed
}

func indices(n int, slideable bool) []int {
	var lines []int
	for i := 0; i < n; i++ {
		if Slideable(i) == slideable {
			lines = append(lines, i)
		}
	}

	return lines
}

// line returns the coordinates of the given row or column ordered along
// the direction of the slide, so the first coordinate is the edge where
// the spare tile is inserted and the last is the edge a tile falls off.
func (board *Board) line(index int, d Direction) []Coordinate {
	var coords []Coordinate
	if d.Horizontal() {
		for column := 0; column < board.Width(); column++ {
			coords = append(coords, Coordinate{Row: index, Column: column})
		}
	} else {
		for row := 0; row < board.Height(); row++ {
			coords = append(coords, Coordinate{Row: row, Column: index})
		}
	}

	if d == Left || d == Up {
		for i, j := 0, len(coords)-1; i < j; i, j = i+1, j-1 {
			coords[i], coords[j] = coords[j], coords[i]
		}
	}

	return coords
}

func (board *Board) checkLine(index int, d Direction) error {
	limit := board.Width()
	if d.Horizontal() {
		limit = board.Height()
	}

	switch {
	case d < Up || d >= DirectionN:
		return fmt.Errorf("%w: %d", ErrBadDirection, int(d))
	case index < 0 || index >= limit:
		return fmt.Errorf("%w: line %d", ErrOutOfBounds, index)
	case !Slideable(index):
		return fmt.Errorf("%w: line %d", ErrNotSlideable, index)
	}

	return nil
}

// Slide slides the row (for LEFT and RIGHT) or column (for UP and DOWN)
// with the given index one tile in direction d. The spare tile is inserted
// at the trailing edge and the tile pushed off the leading edge is
// returned alongside the new board.
func (board *Board) Slide(index int, d Direction, spare Tile) (*Board, Tile, error) {
	if err := board.checkLine(index, d); err != nil {
		return nil, Tile{}, err
	}

	coords := board.line(index, d)
	tiles := clone(board.tiles)

	dislodged := board.Tile(coords[len(coords)-1])
	for i := len(coords) - 1; i > 0; i-- {
		to, from := coords[i], coords[i-1]
		tiles[to.Row][to.Column] = board.Tile(from)
	}

	tiles[coords[0].Row][coords[0].Column] = spare
	return &Board{tiles: tiles}, dislodged, nil
}

// SlideRow slides a row left or right.
func (board *Board) SlideRow(row int, d Direction, spare Tile) (*Board, Tile, error) {
	if !d.Horizontal() {
		return nil, Tile{}, fmt.Errorf("%w: row slid %s", ErrWrongAxis, d)
	}

	return board.Slide(row, d, spare)
}

// SlideColumn slides a column up or down.
func (board *Board) SlideColumn(column int, d Direction, spare Tile) (*Board, Tile, error) {
	if d.Horizontal() {
		return nil, Tile{}, fmt.Errorf("%w: column slid %s", ErrWrongAxis, d)
	}

	return board.Slide(column, d, spare)
}

// Shift returns where a piece standing on c ends up after the given line
// is slid in direction d. Pieces on the line move one step, wrapping
// around to the trailing edge when they fall off the board, while
// pieces elsewhere stay put.
func (board *Board) Shift(index int, d Direction, c Coordinate) Coordinate {
	if (d.Horizontal() && c.Row != index) || (!d.Horizontal() && c.Column != index) {
		return c
	}

	coords := board.line(index, d)
	for i, coord := range coords {
		if coord == c {
			return coords[(i+1)%len(coords)]
		}
	}

	return c
}

// Reachable returns the set of coordinates reachable from the given one
// by walking along connected paths. The starting coordinate is always a
// member of the set.
func (board *Board) Reachable(from Coordinate) map[Coordinate]bool {
	seen := map[Coordinate]bool{from: true}
	stack := []Coordinate{from}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tile := board.Tile(current)
		for d := Up; d < DirectionN; d++ {
			next := current.Step(d)
			if seen[next] || !board.Contains(next) {
				continue
			}

			if tile.Connects(board.Tile(next), d) {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}

	return seen
}

// Equal compares two boards tile by tile.
func (board *Board) Equal(other *Board) bool {
	if board.Height() != other.Height() || board.Width() != other.Width() {
		return false
	}

	for r, row := range board.tiles {
		for c, tile := range row {
			if !tile.Equal(other.tiles[r][c]) {
				return false
			}
		}
	}

	return true
}

func (board *Board) String() string {
	var b strings.Builder
	for _, row := range board.tiles {
		for _, tile := range row {
			b.WriteString(tile.Symbol())
		}

		b.WriteByte('\n')
	}

	return b.String()
}
