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
	"context"
	"errors"
	"fmt"
	"time"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
)

// Player is what the referee needs from a participant of a game. Calls
// may block, fail or panic; the referee treats all of these as the
// player misbehaving.
type Player interface {
	// ProposeBoard asks for a board layout. A nil grid means the player
	// has no proposal.
	ProposeBoard(ctx context.Context, width, height int) ([][]board.Tile, error)

	// Setup tells the player its goal. view is nil when the player is
	// being sent back home.
	Setup(ctx context.Context, view *state.PublicState, goal board.Coordinate) error

	// TakeTurn asks the player for its action in the given state.
	TakeTurn(ctx context.Context, view state.PublicState) (state.Action, error)

	// Won tells the player whether it won the game.
	Won(ctx context.Context, won bool) error
}

// Participant is a named player about to join a game.
type Participant struct {
	Name   string
	Player Player
}

var (
	ErrTimeout = errors.New("referee: player did not respond in time")
	ErrPanic   = errors.New("referee: player panicked")

	ErrBadAction = errors.New("referee: player returned an unknown action")
)

// query runs a single call to a player on its own goroutine and waits
// for it for at most timeout. A call that overruns is abandoned: its
// goroutine is left to finish on its own and its result is discarded.
func query[T any](ctx context.Context, timeout time.Duration, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}

	// buffered so an abandoned call can still deliver and exit
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrPanic, r)}
			}
		}()

		value, err := call(ctx)
		done <- result{value: value, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err

	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimeout
		}

		return zero, ctx.Err()
	}
}

// void adapts a call without a result for query.
func void(call func(context.Context) error) func(context.Context) (struct{}, error) {
	return func(ctx context.Context) (struct{}, error) {
		return struct{}{}, call(ctx)
	}
}
