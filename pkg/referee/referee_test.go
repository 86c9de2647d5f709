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

package referee_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
	"laptudirm.com/x/maze/pkg/maze/wire"
	"laptudirm.com/x/maze/pkg/referee"
)

// scripted is a player that plays a fixed list of actions, then passes.
type scripted struct {
	mu sync.Mutex

	actions []state.Action
	fail    string
	hang    chan struct{}

	goals  []board.Coordinate
	views  []bool
	calls  []string
	result *bool
}

var errScripted = errors.New("scripted failure")

func (p *scripted) call(method string) error {
	p.mu.Lock()
	p.calls = append(p.calls, method)
	p.mu.Unlock()

	if p.fail != method {
		return nil
	}

	if p.hang != nil {
		<-p.hang
		return nil
	}

	if method == "won" {
		panic("no thanks")
	}

	return errScripted
}

func (p *scripted) ProposeBoard(ctx context.Context, width, height int) ([][]board.Tile, error) {
	return nil, p.call("propose")
}

func (p *scripted) Setup(ctx context.Context, view *state.PublicState, goal board.Coordinate) error {
	if err := p.call("setup"); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.goals = append(p.goals, goal)
	p.views = append(p.views, view != nil)
	return nil
}

func (p *scripted) TakeTurn(ctx context.Context, view state.PublicState) (state.Action, error) {
	if err := p.call("turn"); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.actions) == 0 {
		return state.Pass{}, nil
	}

	action := p.actions[0]
	p.actions = p.actions[1:]
	return action, nil
}

func (p *scripted) Won(ctx context.Context, won bool) error {
	if err := p.call("won"); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.result = &won
	return nil
}

func (p *scripted) count(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, call := range p.calls {
		if call == method {
			n++
		}
	}
	return n
}

func at(row, column int) board.Coordinate {
	return board.Coordinate{Row: row, Column: column}
}

func uniform(t *testing.T, symbol string) (*board.Board, board.Tile) {
	t.Helper()

	tiles := make([][]board.Tile, board.Height)
	for r := range tiles {
		tiles[r] = make([]board.Tile, board.Width)
		for c := range tiles[r] {
			tile, err := board.ParseTile(symbol, board.TreasureAt(r*board.Width+c))
			require.NoError(t, err)
			tiles[r][c] = tile
		}
	}

	b, err := board.New(tiles)
	require.NoError(t, err)

	spare, err := board.ParseTile(symbol, board.TreasureAt(100))
	require.NoError(t, err)
	return b, spare
}

func fixed(t *testing.T, symbol string, players ...state.Player) referee.Builder {
	t.Helper()

	b, spare := uniform(t, symbol)
	s, err := state.New(b, spare, players, nil)
	require.NoError(t, err)
	return referee.FixedBuilder{State: s}
}

func participants(players map[string]*scripted, order ...string) []referee.Participant {
	var list []referee.Participant
	for _, name := range order {
		list = append(list, referee.Participant{Name: name, Player: players[name]})
	}
	return list
}

func TestAllPassingClosestWins(t *testing.T) {
	players := map[string]*scripted{"ann": {}, "bob": {}, "cat": {}}

	ref := referee.New(referee.Config{
		Builder: fixed(t, "│",
			state.Player{Name: "ann", Current: at(1, 1), Home: at(1, 1), Goal: at(5, 5)},
			state.Player{Name: "bob", Current: at(1, 3), Home: at(1, 3), Goal: at(3, 3)},
			state.Player{Name: "cat", Current: at(1, 5), Home: at(1, 5), Goal: at(3, 5)},
		),
	})

	outcome := ref.Run(context.Background(), participants(players, "ann", "bob", "cat"))

	assert.Equal(t, []string{"bob", "cat"}, outcome.Winners)
	assert.Equal(t, []string{"ann"}, outcome.Losers)
	assert.Empty(t, outcome.Cheaters)
	assert.NotEmpty(t, outcome.ID)

	for name, p := range players {
		assert.Equal(t, 1, p.count("turn"), name)
		require.NotNil(t, p.result, name)
	}
	assert.False(t, *players["ann"].result)
	assert.True(t, *players["bob"].result)
}

func TestHangingPlayerIsACheater(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	players := map[string]*scripted{
		"ann": {fail: "turn", hang: release},
		"bob": {},
	}

	ref := referee.New(referee.Config{
		Timeout: 50 * time.Millisecond,
		Builder: fixed(t, "┼",
			state.Player{Name: "ann", Current: at(1, 1), Home: at(1, 1), Goal: at(5, 5)},
			state.Player{Name: "bob", Current: at(1, 3), Home: at(1, 3), Goal: at(3, 3)},
		),
	})

	outcome := ref.Run(context.Background(), participants(players, "ann", "bob"))

	assert.Equal(t, []string{"ann"}, outcome.Cheaters)
	assert.Equal(t, []string{"bob"}, outcome.Winners)
	assert.Empty(t, outcome.Losers)
	assert.Equal(t, 1, players["ann"].count("turn"))
}

func TestIllegalMoveIsCheating(t *testing.T) {
	players := map[string]*scripted{
		"ann": {actions: []state.Action{state.Slide{Index: 1, Direction: board.Left, Destination: at(3, 3)}}},
		"bob": {},
	}

	ref := referee.New(referee.Config{
		Builder: fixed(t, "┼",
			state.Player{Name: "ann", Current: at(1, 1), Home: at(1, 1), Goal: at(5, 5)},
			state.Player{Name: "bob", Current: at(1, 3), Home: at(1, 3), Goal: at(3, 3)},
		),
	})

	outcome := ref.Run(context.Background(), participants(players, "ann", "bob"))
	assert.Equal(t, []string{"ann"}, outcome.Cheaters)
	assert.Equal(t, []string{"bob"}, outcome.Winners)

	// cheaters are still told the outcome
	require.NotNil(t, players["ann"].result)
	assert.False(t, *players["ann"].result)
}

func TestOutOfRangeSlideIsCheating(t *testing.T) {
	for _, slide := range []state.Slide{
		{Index: 0, Direction: board.Left, Rotation: -1, Destination: at(0, 5)},
		{Index: 0, Direction: board.Left, Rotation: 4, Destination: at(0, 5)},
		{Index: 0, Direction: board.Direction(-1), Destination: at(0, 5)},
		{Index: 0, Direction: board.Direction(7), Destination: at(0, 5)},
	} {
		b, _ := uniform(t, "┼")
		spare, err := board.ParseTile("└", board.TreasureAt(100))
		require.NoError(t, err)

		s, err := state.New(b, spare, []state.Player{
			{Name: "ann", Current: at(1, 1), Home: at(1, 1), Goal: at(5, 5)},
			{Name: "bob", Current: at(1, 3), Home: at(1, 3), Goal: at(3, 3)},
		}, nil)
		require.NoError(t, err)

		players := map[string]*scripted{
			"ann": {actions: []state.Action{slide}},
			"bob": {},
		}

		ref := referee.New(referee.Config{Builder: referee.FixedBuilder{State: s}})
		outcome := ref.Run(context.Background(), participants(players, "ann", "bob"))

		assert.Equal(t, []string{"ann"}, outcome.Cheaters, "%s", slide)
		assert.Equal(t, []string{"bob"}, outcome.Winners, "%s", slide)
	}
}

func TestPlayerCountBounds(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		players := make(map[string]*scripted)
		var order []string
		for i := 0; i < n; i++ {
			name := string(rune('a' + i))
			players[name] = &scripted{}
			order = append(order, name)
		}

		ref := referee.New(referee.Config{})
		outcome := ref.Run(context.Background(), participants(players, order...))

		assert.Empty(t, outcome.Winners, n)
		assert.Empty(t, outcome.Losers, n)
		assert.Empty(t, outcome.Cheaters, n)
		for name, p := range players {
			assert.Empty(t, p.calls, name)
		}
	}

	assert.ErrorIs(t, referee.CheckPlayers(1), referee.ErrPlayerCount)
	assert.ErrorIs(t, referee.CheckPlayers(7), referee.ErrPlayerCount)
	assert.NoError(t, referee.CheckPlayers(2))
	assert.NoError(t, referee.CheckPlayers(6))
}

func TestReturningHomeWins(t *testing.T) {
	players := map[string]*scripted{
		"ann": {actions: []state.Action{
			state.Slide{Index: 0, Direction: board.Left, Destination: at(3, 3)},
			state.Slide{Index: 6, Direction: board.Left, Destination: at(1, 1)},
		}},
		"bob": {},
	}

	ref := referee.New(referee.Config{
		Builder: fixed(t, "┼",
			state.Player{Name: "ann", Current: at(1, 1), Home: at(1, 1), Goal: at(3, 3)},
			state.Player{Name: "bob", Current: at(5, 5), Home: at(5, 5), Goal: at(1, 1)},
		),
	})

	outcome := ref.Run(context.Background(), participants(players, "ann", "bob"))
	assert.Equal(t, []string{"ann"}, outcome.Winners)
	assert.Equal(t, []string{"bob"}, outcome.Losers)

	ann := players["ann"]
	assert.Equal(t, []board.Coordinate{at(3, 3), at(1, 1)}, ann.goals)
	assert.Equal(t, []bool{true, false}, ann.views, "sent home without a view")
	assert.Equal(t, 2, ann.count("turn"))
}

func TestAdditionalGoals(t *testing.T) {
	players := map[string]*scripted{
		"ann": {actions: []state.Action{
			state.Slide{Index: 0, Direction: board.Left, Destination: at(3, 3)},
			state.Slide{Index: 6, Direction: board.Left, Destination: at(5, 5)},
			state.Slide{Index: 0, Direction: board.Left, Destination: at(1, 1)},
		}},
		"bob": {},
	}

	ref := referee.New(referee.Config{
		Goals: []board.Coordinate{at(5, 5)},
		Builder: fixed(t, "┼",
			state.Player{Name: "ann", Current: at(1, 1), Home: at(1, 1), Goal: at(3, 3)},
			state.Player{Name: "bob", Current: at(5, 1), Home: at(5, 1), Goal: at(1, 5)},
		),
	})

	outcome := ref.Run(context.Background(), participants(players, "ann", "bob"))
	assert.Equal(t, []string{"ann"}, outcome.Winners)

	ann := players["ann"]
	assert.Equal(t, []board.Coordinate{at(3, 3), at(5, 5), at(1, 1)}, ann.goals)
	assert.Equal(t, []bool{true, true, false}, ann.views)
}

func TestFailuresBeforePlay(t *testing.T) {
	players := map[string]*scripted{
		"ann": {fail: "propose"},
		"bob": {fail: "setup"},
		"cat": {},
		"dan": {},
	}

	ref := referee.New(referee.Config{
		Builder: referee.RandomBuilder{
			Width: board.Width, Height: board.Height,
			Rand: rand.New(rand.NewSource(1)),
		},
	})

	outcome := ref.Run(context.Background(), participants(players, "ann", "bob", "cat", "dan"))

	assert.Equal(t, []string{"ann", "bob"}, outcome.Cheaters)
	assert.ElementsMatch(t, []string{"cat", "dan"}, append(outcome.Winners, outcome.Losers...))

	assert.Equal(t, 0, players["ann"].count("won"), "proposal failures are never called again")
	assert.Equal(t, 0, players["bob"].count("turn"))
	assert.Equal(t, 1, players["bob"].count("won"))
}

func TestPanickingWinnerLosesWin(t *testing.T) {
	players := map[string]*scripted{
		"ann": {fail: "won"},
		"bob": {},
	}

	ref := referee.New(referee.Config{
		Builder: fixed(t, "│",
			state.Player{Name: "ann", Current: at(1, 1), Home: at(1, 1), Goal: at(3, 1)},
			state.Player{Name: "bob", Current: at(1, 3), Home: at(1, 3), Goal: at(5, 5)},
		),
	})

	outcome := ref.Run(context.Background(), participants(players, "ann", "bob"))
	assert.Empty(t, outcome.Winners)
	assert.Equal(t, []string{"bob"}, outcome.Losers)
	assert.Equal(t, []string{"ann"}, outcome.Cheaters)
}

func TestRandomBuilder(t *testing.T) {
	builder := referee.RandomBuilder{
		Width: board.Width, Height: board.Height,
		Rand: rand.New(rand.NewSource(7)),
	}

	names := []string{"a", "b", "c", "d", "e", "f"}
	s, err := builder.Build(nil, names)
	require.NoError(t, err)

	require.NoError(t, board.Valid(s.Board().Tiles(), board.Width, board.Height))

	fixedTiles := make(map[board.Coordinate]bool)
	for _, c := range s.Board().FixedIntersections() {
		fixedTiles[c] = true
	}

	homes := make(map[board.Coordinate]bool)
	for i, player := range s.Players() {
		assert.Equal(t, names[i], player.Name)
		assert.True(t, fixedTiles[player.Home])
		assert.True(t, fixedTiles[player.Goal])
		assert.NotEqual(t, player.Home, player.Goal)
		assert.Equal(t, player.Home, player.Current)
		assert.False(t, homes[player.Home])
		homes[player.Home] = true
	}

	for _, row := range s.Board().Tiles() {
		for _, tile := range row {
			assert.NotEqual(t, tile.Treasure, s.Spare().Treasure)
		}
	}

	_, err = builder.Build(nil, append(names, "g", "h", "i", "j"))
	assert.ErrorIs(t, err, referee.ErrTooManyPlayers)
}

func TestWireBuilder(t *testing.T) {
	b, spare := uniform(t, "┼")
	s, err := state.New(b, spare, []state.Player{
		{Name: "a", Color: "red", Current: at(1, 1), Home: at(1, 1), Goal: at(3, 3)},
		{Name: "b", Color: "blue", Current: at(1, 3), Home: at(1, 3), Goal: at(5, 5)},
		{Name: "c", Color: "green", Current: at(1, 5), Home: at(1, 5), Goal: at(3, 1)},
	}, nil)
	require.NoError(t, err)

	rs := wire.FromState(s, []board.Coordinate{at(5, 1)})
	built, err := referee.WireBuilder{State: rs}.Build(nil, []string{"x", "y"})
	require.NoError(t, err)

	players := built.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "x", players[0].Name)
	assert.Equal(t, at(3, 3), players[0].Goal)
	assert.Equal(t, "y", players[1].Name)
	assert.Equal(t, at(1, 3), players[1].Home)
	assert.True(t, built.Board().Equal(b))
	assert.Len(t, rs.Players, 3)

	goals, err := rs.GoalQueue()
	require.NoError(t, err)
	assert.Equal(t, []board.Coordinate{at(5, 1)}, goals)

	_, err = referee.WireBuilder{State: rs}.Build(nil, []string{"w", "x", "y", "z"})
	assert.ErrorIs(t, err, wire.ErrBadRoster)
}

func TestWinnersUsesTreasuresFirst(t *testing.T) {
	b, spare := uniform(t, "┼")

	s, err := state.New(b, spare, []state.Player{
		{Name: "near", Current: at(3, 3), Home: at(1, 1), Goal: at(3, 3)},
		{Name: "rich", Current: at(5, 5), Home: at(1, 3), Goal: at(1, 5), Treasures: 2},
		{Name: "also", Current: at(1, 5), Home: at(1, 5), Goal: at(5, 1), Treasures: 2},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"rich"}, referee.Winners(s))
}
