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

import "laptudirm.com/x/maze/pkg/maze/board"

// Player is the referee's knowledge about one player of the game.
type Player struct {
	Name  string
	Color Color

	Current board.Coordinate
	Home    board.Coordinate
	Goal    board.Coordinate

	// Reached is set once the player lands on Goal, after which it
	// heads for Home.
	Reached bool

	// Terminal marks the player's goal as the last one it will be given.
	Terminal bool

	// Treasures is the number of goals the player has reached.
	Treasures int
}

// Target returns the effective goal of the player: its goal, or its
// home once the goal has been reached.
func (player Player) Target() board.Coordinate {
	if player.Reached {
		return player.Home
	}

	return player.Goal
}

// Distance is the euclidean distance from the player to its goal.
func (player Player) Distance() float64 {
	return player.Current.Distance(player.Target())
}

// move returns the player after walking to the given coordinate.
func (player Player) move(to board.Coordinate) Player {
	target := player.Target()
	landed := to == target && player.Current != target

	if landed && !(player.Terminal && target == player.Home) {
		player.Treasures++
	}

	player.Reached = player.Reached || landed
	player.Current = to
	return player
}
