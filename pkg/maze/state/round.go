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

// MaxRounds is the number of rounds after which a game is stopped.
const MaxRounds = 1000

// Round tracks turn completion for the termination rules.
type Round struct {
	Number int
	Turns  int

	// Players is the number of players that started this round. It
	// does not change when players are removed mid-round.
	Players int

	AllPassed     bool
	LastAllPassed bool
}

// NewRound returns the data of the first round of a game.
func NewRound(players int) Round {
	return Round{Players: players, AllPassed: true}
}

// Advance records a completed turn. When the turn completes the round,
// a new one is started with the given number of players.
func (round Round) Advance(players int, pass bool) Round {
	if round.Turns+1 >= round.Players {
		return Round{
			Number:        round.Number + 1,
			Players:       players,
			AllPassed:     true,
			LastAllPassed: round.AllPassed && pass,
		}
	}

	round.Turns++
	round.AllPassed = round.AllPassed && pass
	return round
}
