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

package referee

import (
	"errors"
	"fmt"
	"math/rand"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
	"laptudirm.com/x/maze/pkg/maze/wire"
)

// Builder chooses the state a game starts from, given the valid board
// proposals made by the players and their names in turn order.
type Builder interface {
	Build(proposals [][][]board.Tile, names []string) (state.State, error)
}

var (
	ErrTooManyPlayers = errors.New("referee: not enough fixed tiles for every home")
	ErrRosterMismatch = errors.New("referee: fixed state does not match the players")
)

// RandomBuilder plays on the first proposed board, or on a random one if
// nobody proposed a usable board. Homes are distinct fixed tiles and
// goals are random fixed tiles other than the player's home.
type RandomBuilder struct {
	Width, Height int
	Rand          *rand.Rand
}

func (builder RandomBuilder) Build(proposals [][][]board.Tile, names []string) (state.State, error) {
	tiles := builder.tiles()
	if len(proposals) > 0 {
		tiles = proposals[0]
	}

	b, err := board.New(tiles)
	if err != nil {
		return state.State{}, err
	}

	spare := board.NewTile(board.Shape(builder.Rand.Intn(board.ShapeN)), 0, unusedTreasure(tiles))

	fixed := b.FixedIntersections()
	if len(names) > len(fixed) {
		return state.State{}, fmt.Errorf("%w: %d players, %d tiles", ErrTooManyPlayers, len(names), len(fixed))
	}

	homes := builder.Rand.Perm(len(fixed))
	players := make([]state.Player, len(names))
	for i, name := range names {
		home := fixed[homes[i]]

		goal := home
		for goal == home && len(fixed) > 1 {
			goal = fixed[builder.Rand.Intn(len(fixed))]
		}

		players[i] = state.Player{
			Name:    name,
			Color:   state.NthColor(i),
			Current: home,
			Home:    home,
			Goal:    goal,
		}
	}

	return state.New(b, spare, players, nil)
}

// tiles generates a random grid with unique treasures.
func (builder RandomBuilder) tiles() [][]board.Tile {
	treasures := builder.Rand.Perm(builder.Width * builder.Height)

	tiles := make([][]board.Tile, builder.Height)
	for r := range tiles {
		tiles[r] = make([]board.Tile, builder.Width)
		for c := range tiles[r] {
			tiles[r][c] = board.NewTile(
				board.Shape(builder.Rand.Intn(board.ShapeN)),
				board.Degree(builder.Rand.Intn(board.DegreeN)),
				board.TreasureAt(treasures[r*builder.Width+c]),
			)
		}
	}

	return tiles
}

func unusedTreasure(tiles [][]board.Tile) board.Treasure {
	used := make(map[board.Treasure]bool)
	for _, row := range tiles {
		for _, tile := range row {
			used[tile.Treasure] = true
		}
	}

	for n := 0; ; n++ {
		if treasure := board.TreasureAt(n); !used[treasure] {
			return treasure
		}
	}
}

// FixedBuilder ignores proposals and starts every game from the same
// state. Every participant must have a player in the state; players
// whose participant is gone are dropped on their first turn.
type FixedBuilder struct {
	State state.State
}

func (builder FixedBuilder) Build(_ [][][]board.Tile, names []string) (state.State, error) {
	known := make(map[string]bool)
	for _, player := range builder.State.Players() {
		known[player.Name] = true
	}

	for _, name := range names {
		if !known[name] {
			return state.State{}, fmt.Errorf("%w: no player named %s", ErrRosterMismatch, name)
		}
	}

	return builder.State, nil
}

// WireBuilder starts the game from a state in its wire form, handing
// its players to the participants in order. Players beyond the number
// of participants are left out.
type WireBuilder struct {
	State wire.RefereeState
}

func (builder WireBuilder) Build(_ [][][]board.Tile, names []string) (state.State, error) {
	s, _, err := builder.State.Roster(len(names)).State(names)
	return s, err
}
