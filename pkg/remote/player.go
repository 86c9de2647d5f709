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

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
	"laptudirm.com/x/maze/pkg/maze/wire"
	"laptudirm.com/x/maze/pkg/referee"
)

// ProxyPlayer is a referee.Player whose calls are forwarded to a player
// on the other end of a connection.
type ProxyPlayer struct {
	conn    *Conn
	timeout time.Duration
}

var _ referee.Player = (*ProxyPlayer)(nil)

// NewProxyPlayer creates a player talking over conn, waiting at most
// timeout for every response.
func NewProxyPlayer(conn *Conn, timeout time.Duration) *ProxyPlayer {
	return &ProxyPlayer{conn: conn, timeout: timeout}
}

// call sends a request and waits for its response. A request left
// unanswered closes the connection, since a late response would be
// taken for the answer to the next request.
func (player *ProxyPlayer) call(ctx context.Context, call Call) (json.RawMessage, error) {
	if err := player.conn.Write(EncodeCall(call)); err != nil {
		return nil, err
	}

	response, err := player.conn.Await(ctx, player.timeout)
	if err != nil {
		player.conn.Close()
		return nil, err
	}

	return response, nil
}

func (player *ProxyPlayer) callVoid(ctx context.Context, call Call) error {
	response, err := player.call(ctx, call)
	if err != nil {
		return err
	}

	var s string
	if err := json.Unmarshal(response, &s); err != nil || s != void {
		return fmt.Errorf("%w: %s", ErrNotVoid, response)
	}

	return nil
}

// ProposeBoard has no remote counterpart: remote players never propose
// boards.
func (player *ProxyPlayer) ProposeBoard(context.Context, int, int) ([][]board.Tile, error) {
	return nil, nil
}

func (player *ProxyPlayer) Setup(ctx context.Context, view *state.PublicState, goal board.Coordinate) error {
	call := SetupCall{Goal: wire.FromCoordinate(goal)}
	if view != nil {
		public := wire.FromPublic(*view)
		call.View = &public
	}

	return player.callVoid(ctx, call)
}

func (player *ProxyPlayer) TakeTurn(ctx context.Context, view state.PublicState) (state.Action, error) {
	response, err := player.call(ctx, TakeTurnCall{View: wire.FromPublic(view)})
	if err != nil {
		return nil, err
	}

	var action wire.Action
	if err := json.Unmarshal(response, &action); err != nil {
		return nil, err
	}

	return action.Action, nil
}

func (player *ProxyPlayer) Won(ctx context.Context, won bool) error {
	return player.callVoid(ctx, WinCall{Won: won})
}

// Close closes the player's connection.
func (player *ProxyPlayer) Close() error {
	return player.conn.Close()
}
