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

package player

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
	"laptudirm.com/x/maze/pkg/referee"
)

// Player is an in-process player driven by a Strategy.
type Player struct {
	name     string
	strategy Strategy

	mu   sync.Mutex
	goal board.Coordinate
}

var _ referee.Player = (*Player)(nil)

func New(name string, strategy Strategy) *Player {
	return &Player{name: name, strategy: strategy}
}

// ProposeBoard never proposes a board, leaving the choice to the referee.
func (player *Player) ProposeBoard(context.Context, int, int) ([][]board.Tile, error) {
	return nil, nil
}

func (player *Player) Setup(_ context.Context, _ *state.PublicState, goal board.Coordinate) error {
	player.mu.Lock()
	defer player.mu.Unlock()

	player.goal = goal
	return nil
}

func (player *Player) TakeTurn(_ context.Context, view state.PublicState) (state.Action, error) {
	player.mu.Lock()
	goal := player.goal
	player.mu.Unlock()

	return player.strategy.Decide(view, goal), nil
}

func (player *Player) Won(_ context.Context, won bool) error {
	logrus.WithField("player", player.name).Debugf("won: %t", won)
	return nil
}
