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

package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
)

// uniform builds a 7x7 board where every tile has the given connectors.
func uniform(t *testing.T, symbol string) (*board.Board, board.Tile) {
	t.Helper()

	tiles := make([][]board.Tile, board.Height)
	for r := range tiles {
		tiles[r] = make([]board.Tile, board.Width)
		for c := range tiles[r] {
			tile, err := board.ParseTile(symbol, board.TreasureAt(r*board.Width+c))
			require.NoError(t, err)
			tiles[r][c] = tile
		}
	}

	b, err := board.New(tiles)
	require.NoError(t, err)

	spare, err := board.ParseTile(symbol, board.TreasureAt(board.Width*board.Height))
	require.NoError(t, err)
	return b, spare
}

func at(row, column int) board.Coordinate {
	return board.Coordinate{Row: row, Column: column}
}

func player(name string, current, home, goal board.Coordinate) state.Player {
	return state.Player{Name: name, Color: "red", Current: current, Home: home, Goal: goal}
}

func TestNewRejectsSharedHomes(t *testing.T) {
	b, spare := uniform(t, "┼")

	_, err := state.New(b, spare, []state.Player{
		player("a", at(1, 1), at(1, 1), at(3, 3)),
		player("b", at(5, 5), at(1, 1), at(3, 3)),
	}, nil)
	assert.ErrorIs(t, err, state.ErrDuplicateHomes)

	_, err = state.New(b, spare, []state.Player{
		player("a", at(1, 1), at(1, 9), at(3, 3)),
	}, nil)
	assert.ErrorIs(t, err, board.ErrOutOfBounds)
}

func TestIsLegal(t *testing.T) {
	b, spare := uniform(t, "│")
	last := state.Slide{Index: 0, Direction: board.Left}

	s, err := state.New(b, spare, []state.Player{
		player("a", at(1, 1), at(1, 1), at(3, 3)),
	}, &last)
	require.NoError(t, err)

	assert.True(t, s.IsLegal(state.Slide{Index: 2, Direction: board.Left, Destination: at(3, 1)}))
	assert.True(t, s.IsLegal(state.Slide{Index: 0, Direction: board.Left, Destination: at(3, 1)}))

	// undoing the previous slide, whatever the rotation and destination
	assert.False(t, s.IsLegal(state.Slide{Index: 0, Direction: board.Right, Destination: at(3, 1)}))
	assert.False(t, s.IsLegal(state.Slide{Index: 0, Direction: board.Right, Rotation: board.Degree90, Destination: at(5, 1)}))

	// staying put
	assert.False(t, s.IsLegal(state.Slide{Index: 2, Direction: board.Left, Destination: at(1, 1)}))

	// no path sideways on a board of vertical tiles
	assert.False(t, s.IsLegal(state.Slide{Index: 2, Direction: board.Left, Destination: at(1, 3)}))

	// fixed lines and off-board destinations
	assert.False(t, s.IsLegal(state.Slide{Index: 1, Direction: board.Left, Destination: at(3, 1)}))
	assert.False(t, s.IsLegal(state.Slide{Index: 2, Direction: board.Left, Destination: at(7, 1)}))
}

func TestApplyCarriesPlayersOnTheLine(t *testing.T) {
	b, spare := uniform(t, "┼")

	s, err := state.New(b, spare, []state.Player{
		player("a", at(0, 6), at(1, 1), at(3, 3)),
		player("b", at(0, 3), at(1, 3), at(3, 5)),
		player("c", at(2, 6), at(1, 5), at(5, 5)),
	}, nil)
	require.NoError(t, err)

	// a is carried from (0, 6) around to (0, 0) and may walk from there.
	require.False(t, s.IsLegal(state.Slide{Index: 0, Direction: board.Right, Destination: at(0, 0)}))

	next, err := s.Apply(state.Slide{Index: 0, Direction: board.Right, Rotation: board.Degree90, Destination: at(4, 4)})
	require.NoError(t, err)

	players := next.Players()
	assert.Equal(t, at(4, 4), players[0].Current)
	assert.Equal(t, at(0, 4), players[1].Current)
	assert.Equal(t, at(2, 6), players[2].Current)

	assert.Equal(t, b.Tile(at(0, 6)), next.Spare())
	assert.Equal(t, spare, next.Board().Tile(at(0, 0)))

	last, ok := next.LastSlide()
	require.True(t, ok)
	assert.Equal(t, 0, last.Index)

	// the previous state is untouched
	assert.Equal(t, at(0, 6), s.Players()[0].Current)
	assert.Equal(t, spare, s.Spare())
}

func TestTreasureCountedOncePerGoal(t *testing.T) {
	b, spare := uniform(t, "┼")

	s, err := state.New(b, spare, []state.Player{
		player("a", at(1, 1), at(5, 5), at(3, 3)),
	}, nil)
	require.NoError(t, err)

	s, err = s.Apply(state.Slide{Index: 0, Direction: board.Left, Destination: at(3, 3)})
	require.NoError(t, err)
	a, _ := s.Active()
	assert.Equal(t, 1, a.Treasures)
	assert.True(t, a.Reached)
	assert.Equal(t, at(5, 5), a.Target())

	s, err = s.Apply(state.Slide{Index: 6, Direction: board.Left, Destination: at(3, 1)})
	require.NoError(t, err)
	s, err = s.Apply(state.Slide{Index: 0, Direction: board.Left, Destination: at(3, 3)})
	require.NoError(t, err)

	a, _ = s.Active()
	assert.Equal(t, 1, a.Treasures, "returning to a reached goal does not count")
	assert.False(t, s.IsOver())
}

func TestReturningHomeWins(t *testing.T) {
	b, spare := uniform(t, "┼")

	s, err := state.New(b, spare, []state.Player{
		player("a", at(1, 1), at(5, 5), at(3, 3)),
		player("b", at(1, 3), at(1, 5), at(3, 5)),
	}, nil)
	require.NoError(t, err)

	s, err = s.Apply(state.Slide{Index: 0, Direction: board.Left, Destination: at(3, 3)})
	require.NoError(t, err)
	s, err = s.AssignGoal(at(5, 5), true, true)
	require.NoError(t, err)

	_, won := s.Winner()
	assert.False(t, won)

	s, err = s.Apply(state.Slide{Index: 6, Direction: board.Left, Destination: at(5, 5)})
	require.NoError(t, err)

	winner, won := s.Winner()
	require.True(t, won)
	assert.Equal(t, "a", winner.Name)
	assert.Equal(t, 1, winner.Treasures, "home is a terminal goal")
	assert.True(t, s.IsOver())
}

func TestAllPassingEndsGame(t *testing.T) {
	b, spare := uniform(t, "┼")

	s, err := state.New(b, spare, []state.Player{
		player("a", at(1, 1), at(1, 1), at(3, 3)),
		player("b", at(1, 3), at(1, 3), at(3, 5)),
		player("c", at(1, 5), at(1, 5), at(5, 5)),
	}, nil)
	require.NoError(t, err)

	passed := s.EndTurn(true).EndTurn(true)
	assert.False(t, passed.IsOver())
	passed = passed.EndTurn(true)
	assert.True(t, passed.Round().LastAllPassed)
	assert.True(t, passed.IsOver())

	moved, err := s.EndTurn(true).EndTurn(true).Apply(state.Slide{Index: 0, Direction: board.Left, Destination: at(3, 3)})
	require.NoError(t, err)
	moved = moved.EndTurn(false)
	assert.False(t, moved.Round().LastAllPassed)
	assert.Equal(t, 1, moved.Round().Number)
	assert.False(t, moved.IsOver())
}

func TestEndTurnRotatesPlayers(t *testing.T) {
	b, spare := uniform(t, "┼")

	s, err := state.New(b, spare, []state.Player{
		player("a", at(1, 1), at(1, 1), at(3, 3)),
		player("b", at(1, 3), at(1, 3), at(3, 5)),
	}, nil)
	require.NoError(t, err)

	next := s.EndTurn(false)
	active, _ := next.Active()
	assert.Equal(t, "b", active.Name)
	assert.Equal(t, "a", next.Players()[1].Name)

	active, _ = s.Active()
	assert.Equal(t, "a", active.Name)
}

func TestRemoveActive(t *testing.T) {
	b, spare := uniform(t, "┼")

	s, err := state.New(b, spare, []state.Player{
		player("a", at(1, 1), at(1, 1), at(3, 3)),
		player("b", at(1, 3), at(1, 3), at(3, 5)),
	}, nil)
	require.NoError(t, err)

	s = s.RemoveActive()
	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, "b", active.Name)
	assert.False(t, s.IsOver())

	s = s.RemoveActive()
	_, ok = s.Active()
	assert.False(t, ok)
	assert.True(t, s.IsOver())

	_, err = s.AssignGoal(at(3, 3), false, false)
	assert.ErrorIs(t, err, state.ErrNoPlayers)
}

func TestRoundCap(t *testing.T) {
	b, spare := uniform(t, "┼")

	s, err := state.New(b, spare, []state.Player{
		player("a", at(1, 1), at(1, 1), at(3, 3)),
	}, nil)
	require.NoError(t, err)

	lines := []int{0, 2, 4, 6}
	for i := 0; !s.IsOver(); i++ {
		a, _ := s.Active()
		destination := at(3, 3)
		if a.Current == destination {
			destination = at(3, 5)
		}

		s, err = s.Apply(state.Slide{Index: lines[i%len(lines)], Direction: board.Left, Destination: destination})
		require.NoError(t, err)
		s = s.EndTurn(false)
	}

	assert.Equal(t, state.MaxRounds, s.Round().Number)
}

func TestPublicViewHidesGoals(t *testing.T) {
	b, spare := uniform(t, "┼")

	s, err := state.New(b, spare, []state.Player{
		player("a", at(1, 1), at(1, 1), at(3, 3)),
		player("b", at(1, 3), at(1, 3), at(5, 5)),
		player("c", at(5, 5), at(5, 5), at(1, 1)),
	}, nil)
	require.NoError(t, err)

	view := s.Public()
	require.Len(t, view.Players, 1)
	assert.Equal(t, at(1, 1), view.Players[0].Home)
	assert.Nil(t, view.Last)

	// other players only see themselves
	other := s.PublicFor("c")
	require.Len(t, other.Players, 1)
	assert.Equal(t, at(5, 5), other.Players[0].Home)
	assert.Empty(t, s.PublicFor("nobody").Players)

	next := s.EndTurn(true)
	require.Len(t, next.Public().Players, 1)
	assert.Equal(t, at(1, 3), next.Public().Players[0].Home)

	rebuilt, err := view.State()
	require.NoError(t, err)
	assert.True(t, rebuilt.IsLegal(state.Slide{Index: 0, Direction: board.Left, Destination: at(3, 3)}))
}

func TestColors(t *testing.T) {
	c, err := state.ParseColor("purple")
	require.NoError(t, err)
	assert.Equal(t, state.Color("purple"), c)

	_, err = state.ParseColor("A0B1C2")
	assert.NoError(t, err)

	_, err = state.ParseColor("mauve")
	assert.ErrorIs(t, err, state.ErrBadColor)

	for n := 0; n < 12; n++ {
		_, err := state.ParseColor(string(state.NthColor(n)))
		assert.NoError(t, err)
	}
}
