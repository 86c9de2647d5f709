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

package observer_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
	"laptudirm.com/x/maze/pkg/observer"
	"laptudirm.com/x/maze/pkg/referee"
)

func game(t *testing.T) state.State {
	t.Helper()

	tiles := make([][]board.Tile, board.Height)
	for r := range tiles {
		tiles[r] = make([]board.Tile, board.Width)
		for c := range tiles[r] {
			tile, err := board.ParseTile("┼", board.TreasureAt(r*board.Width+c))
			require.NoError(t, err)
			tiles[r][c] = tile
		}
	}

	b, err := board.New(tiles)
	require.NoError(t, err)
	spare, err := board.ParseTile("│", board.TreasureAt(100))
	require.NoError(t, err)

	s, err := state.New(b, spare, []state.Player{{
		Name:    "ann",
		Color:   state.NthColor(0),
		Current: board.Coordinate{Row: 1, Column: 1},
		Home:    board.Coordinate{Row: 1, Column: 1},
		Goal:    board.Coordinate{Row: 3, Column: 3},
	}}, nil)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	response, err := http.Get(url)
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return response.StatusCode, string(body)
}

func TestHTTPEndpoints(t *testing.T) {
	obs := observer.New()
	server := httptest.NewServer(obs)
	defer server.Close()

	status, _ := get(t, server.URL+"/state")
	assert.Equal(t, http.StatusNotFound, status)

	obs.Observe(game(t))

	status, body := get(t, server.URL+"/state")
	require.Equal(t, http.StatusOK, status)

	var view map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Contains(t, view, "board")
	assert.Contains(t, view, "spare")
	assert.Contains(t, view, "plmt")

	status, _ = get(t, server.URL+"/states/0")
	assert.Equal(t, http.StatusOK, status)
	status, _ = get(t, server.URL+"/states/1")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = get(t, server.URL+"/states/first")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = get(t, server.URL+"/outcome")
	assert.Equal(t, http.StatusNotFound, status)

	obs.Finish(referee.Outcome{ID: "g", Winners: []string{"ann"}, Losers: []string{}, Cheaters: []string{}})

	status, body = get(t, server.URL+"/outcome")
	require.Equal(t, http.StatusOK, status)

	var outcome referee.Outcome
	require.NoError(t, json.Unmarshal([]byte(body), &outcome))
	assert.Equal(t, []string{"ann"}, outcome.Winners)
}

func TestWatch(t *testing.T) {
	obs := observer.New()
	server := httptest.NewServer(obs)
	defer server.Close()

	obs.Observe(game(t))

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/watch"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	obs.Observe(game(t))
	obs.Finish(referee.Outcome{ID: "g", Winners: []string{"ann"}})

	var types []string
	for {
		var message observer.Message
		if err := conn.ReadJSON(&message); err != nil {
			break
		}

		types = append(types, message.Type)
	}

	assert.Equal(t, []string{observer.TypeState, observer.TypeState, observer.TypeOutcome}, types)
}
