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
	"math"
	"sort"

	"laptudirm.com/x/maze/pkg/maze/state"
	"laptudirm.com/x/maze/pkg/maze/wire"
)

// Delta is the tolerance used when comparing distances.
const Delta = 1e-6

// Outcome is the result of a game. Every list is sorted.
type Outcome struct {
	ID string `yaml:"id" json:"id"`

	Winners  []string `yaml:"winners" json:"winners"`
	Losers   []string `yaml:"losers" json:"losers"`
	Cheaters []string `yaml:"cheaters" json:"cheaters"`
}

// Summary returns the outcome in its [winners, cheaters] wire form.
func (outcome Outcome) Summary() wire.Summary {
	return wire.Summary{Winners: outcome.Winners, Cheaters: outcome.Cheaters}
}

// Winners returns the names of the players who won a finished game.
// Players with the most treasures are considered first. If one of them
// ended the game by returning home, it is the sole winner; otherwise
// those closest to their goals win.
func Winners(s state.State) []string {
	players := s.Players()
	if len(players) == 0 {
		return nil
	}

	most := 0
	for _, player := range players {
		if player.Treasures > most {
			most = player.Treasures
		}
	}

	var tier []state.Player
	for _, player := range players {
		if player.Treasures == most {
			tier = append(tier, player)
		}
	}

	if winner, ok := s.Winner(); ok {
		for _, player := range tier {
			if player.Name == winner.Name {
				return []string{winner.Name}
			}
		}
	}

	closest := math.Inf(+1)
	for _, player := range tier {
		closest = math.Min(closest, player.Distance())
	}

	var winners []string
	for _, player := range tier {
		if math.Abs(player.Distance()-closest) < Delta {
			winners = append(winners, player.Name)
		}
	}

	sort.Strings(winners)
	return winners
}

// names returns the sorted names in a set.
func names(set map[string]bool) []string {
	list := []string{}
	for name := range set {
		list = append(list, name)
	}

	sort.Strings(list)
	return list
}
