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
	"errors"
	"fmt"
	"sync"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
	"laptudirm.com/x/maze/pkg/referee"
)

// Methods a misbehavior can be attached to.
const (
	MethodSetup    = "setup"
	MethodTakeTurn = "take-turn"
	MethodWin      = "win"
)

// Faults a misbehaving player can commit.
const (
	FaultError = "error" // return an error
	FaultPanic = "panic" // panic
	FaultHang  = "hang"  // block until the call is abandoned
)

var ErrMisbehaving = errors.New("player: misbehaving on purpose")

// Misbehavior describes a fault a player commits on the Count-th call of
// Method. A zero Count means the first call.
type Misbehavior struct {
	Method string `yaml:"method"`
	Fault  string `yaml:"fault"`
	Count  int    `yaml:"count"`
}

func (behavior Misbehavior) validate() error {
	switch behavior.Method {
	case MethodSetup, MethodTakeTurn, MethodWin:
	default:
		return fmt.Errorf("player: unknown method %q", behavior.Method)
	}

	switch behavior.Fault {
	case FaultError, FaultPanic, FaultHang:
	default:
		return fmt.Errorf("player: unknown fault %q", behavior.Fault)
	}

	return nil
}

// Misbehaving wraps a player, committing a fault on one of its calls.
type Misbehaving struct {
	referee.Player
	behavior Misbehavior

	mu    sync.Mutex
	calls map[string]int
}

func NewMisbehaving(player referee.Player, behavior Misbehavior) (*Misbehaving, error) {
	if err := behavior.validate(); err != nil {
		return nil, err
	}

	if behavior.Count < 1 {
		behavior.Count = 1
	}

	return &Misbehaving{
		Player:   player,
		behavior: behavior,
		calls:    make(map[string]int),
	}, nil
}

// trip counts a call and commits the fault if it is due.
func (player *Misbehaving) trip(ctx context.Context, method string) error {
	player.mu.Lock()
	player.calls[method]++
	due := method == player.behavior.Method && player.calls[method] == player.behavior.Count
	player.mu.Unlock()

	if !due {
		return nil
	}

	switch player.behavior.Fault {
	case FaultPanic:
		panic(ErrMisbehaving)
	case FaultHang:
		<-ctx.Done()
		return ctx.Err()
	default:
		return ErrMisbehaving
	}
}

func (player *Misbehaving) Setup(ctx context.Context, view *state.PublicState, goal board.Coordinate) error {
	if err := player.trip(ctx, MethodSetup); err != nil {
		return err
	}

	return player.Player.Setup(ctx, view, goal)
}

func (player *Misbehaving) TakeTurn(ctx context.Context, view state.PublicState) (state.Action, error) {
	if err := player.trip(ctx, MethodTakeTurn); err != nil {
		return nil, err
	}

	return player.Player.TakeTurn(ctx, view)
}

func (player *Misbehaving) Won(ctx context.Context, won bool) error {
	if err := player.trip(ctx, MethodWin); err != nil {
		return err
	}

	return player.Player.Won(ctx, won)
}
