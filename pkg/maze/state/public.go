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

package state

import (
	"laptudirm.com/x/maze/pkg/maze/board"
)

// PublicPlayer is what a player is told about itself.
type PublicPlayer struct {
	Current board.Coordinate
	Home    board.Coordinate
	Color   Color
}

// PublicState is the view of a game sent to a player. Players holds
// only the data of the player it is sent to.
type PublicState struct {
	Board   *board.Board
	Spare   board.Tile
	Players []PublicPlayer
	Last    *Slide
}

// State rebuilds a State from the public view so a player can check
// the legality of its own moves. Goals are unknown and set to homes.
func (view PublicState) State() (State, error) {
	players := make([]Player, len(view.Players))
	for i, player := range view.Players {
		players[i] = Player{
			Color:   player.Color,
			Current: player.Current,
			Home:    player.Home,
			Goal:    player.Home,
		}
	}

	return New(view.Board, view.Spare, players, view.Last)
}
