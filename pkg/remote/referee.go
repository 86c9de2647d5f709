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
	"fmt"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/maze/pkg/maze/wire"
	"laptudirm.com/x/maze/pkg/referee"
)

// ProxyReferee serves the calls of a remote referee to a local player.
type ProxyReferee struct {
	conn   *Conn
	player referee.Player
}

func NewProxyReferee(conn *Conn, player referee.Player) *ProxyReferee {
	return &ProxyReferee{conn: conn, player: player}
}

// Listen answers calls until the game ends with a win call. Any error,
// either from the connection, a malformed call or the player, stops the
// loop and is returned; the caller is expected to close the connection.
func (proxy *ProxyReferee) Listen(ctx context.Context) error {
	for {
		request, err := proxy.conn.Await(ctx, 0)
		if err != nil {
			return err
		}

		call, err := DecodeCall(request)
		if err != nil {
			return err
		}

		response, err := proxy.dispatch(ctx, call)
		if err != nil {
			return fmt.Errorf("%s: %w", call.Method(), err)
		}

		if err := proxy.conn.Write(response); err != nil {
			return err
		}

		if _, ok := call.(WinCall); ok {
			logrus.Debugf("info: (%s) game over", proxy.conn.Name())
			return nil
		}
	}
}

func (proxy *ProxyReferee) dispatch(ctx context.Context, call Call) (any, error) {
	switch call := call.(type) {
	case SetupCall:
		goal, err := call.Goal.Coordinate()
		if err != nil {
			return nil, err
		}

		if call.View == nil {
			return void, proxy.player.Setup(ctx, nil, goal)
		}

		view, err := call.View.Public()
		if err != nil {
			return nil, err
		}

		return void, proxy.player.Setup(ctx, &view, goal)

	case TakeTurnCall:
		view, err := call.View.Public()
		if err != nil {
			return nil, err
		}

		action, err := proxy.player.TakeTurn(ctx, view)
		if err != nil {
			return nil, err
		}

		return wire.Action{Action: action}, nil

	case WinCall:
		return void, proxy.player.Won(ctx, call.Won)

	default:
		return nil, fmt.Errorf("%w: %T", ErrMethodNotRecognized, call)
	}
}
