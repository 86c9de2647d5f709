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

import (
	"errors"
	"fmt"

	"laptudirm.com/x/maze/pkg/maze/board"
)

var (
	ErrDuplicateHomes = errors.New("state: players share a home")
	ErrIllegalSlide   = errors.New("state: illegal slide")
	ErrNoPlayers      = errors.New("state: no active player")
)

// State is an immutable snapshot of a game. The first player is the
// active one. Every transition returns a new State.
type State struct {
	board *board.Board
	spare board.Tile

	players []Player

	last   *Slide
	winner *Player

	round Round
}

// New creates the state of a game about to be played. last, if not nil,
// is the slide made just before this state and may not be undone.
func New(b *board.Board, spare board.Tile, players []Player, last *Slide) (State, error) {
	homes := make(map[board.Coordinate]bool, len(players))
	for _, player := range players {
		for _, c := range []board.Coordinate{player.Current, player.Home, player.Goal} {
			if !b.Contains(c) {
				return State{}, fmt.Errorf("%w: player %s at %s", board.ErrOutOfBounds, player.Name, c)
			}
		}

		if homes[player.Home] {
			return State{}, fmt.Errorf("%w: %s", ErrDuplicateHomes, player.Home)
		}

		homes[player.Home] = true
	}

	if last != nil {
		slide := *last
		last = &slide
	}

	return State{
		board:   b,
		spare:   spare,
		players: append([]Player(nil), players...),
		last:    last,
		round:   NewRound(len(players)),
	}, nil
}

func (state State) Board() *board.Board { return state.board }
func (state State) Spare() board.Tile   { return state.spare }
func (state State) Round() Round        { return state.round }

// Players returns the players in turn order, starting with the active one.
func (state State) Players() []Player {
	return append([]Player(nil), state.players...)
}

// Active returns the player whose turn it is.
func (state State) Active() (Player, bool) {
	if len(state.players) == 0 {
		return Player{}, false
	}

	return state.players[0], true
}

// LastSlide returns the slide that produced this state, if any.
func (state State) LastSlide() (Slide, bool) {
	if state.last == nil {
		return Slide{}, false
	}

	return *state.last, true
}

// Winner returns the player that ended the game by returning home after
// reaching its goal.
func (state State) Winner() (Player, bool) {
	if state.winner == nil {
		return Player{}, false
	}

	return *state.winner, true
}

// IsOver reports whether the game has ended.
func (state State) IsOver() bool {
	return len(state.players) == 0 ||
		state.winner != nil ||
		state.round.LastAllPassed ||
		state.round.Number >= MaxRounds
}

// simulate performs the board part of a slide: the spare is rotated and
// inserted, and players on the line are carried along.
func (state State) simulate(slide Slide) (*board.Board, board.Tile, []Player, error) {
	spare := state.spare.Rotate(slide.Rotation)
	next, dislodged, err := state.board.Slide(slide.Index, slide.Direction, spare)
	if err != nil {
		return nil, board.Tile{}, nil, err
	}

	players := state.Players()
	for i := range players {
		players[i].Current = state.board.Shift(slide.Index, slide.Direction, players[i].Current)
	}

	return next, dislodged, players, nil
}

// IsLegal reports whether the active player may make the given slide:
// its direction and rotation must be in range, it must not undo the previous slide and must move the player to a
// different tile reachable after the slide.
func (state State) IsLegal(slide Slide) bool {
	if len(state.players) == 0 || !slide.Direction.Valid() || !slide.Rotation.Valid() {
		return false
	}

	if state.last != nil && slide.Undoes(*state.last) {
		return false
	}

	next, _, players, err := state.simulate(slide)
	if err != nil || !next.Contains(slide.Destination) {
		return false
	}

	from := players[0].Current
	return slide.Destination != from && next.Reachable(from)[slide.Destination]
}

// Apply makes the given slide for the active player. The turn is not
// ended, see EndTurn.
func (state State) Apply(slide Slide) (State, error) {
	if !state.IsLegal(slide) {
		return State{}, fmt.Errorf("%w: %s", ErrIllegalSlide, slide)
	}

	next, dislodged, players, err := state.simulate(slide)
	if err != nil {
		return State{}, err
	}

	before := players[0]
	after := before.move(slide.Destination)
	players[0] = after

	state.board = next
	state.spare = dislodged
	state.players = players
	state.last = &slide

	if before.Reached && after.Reached && after.Current == after.Home && before.Current != before.Home {
		state.winner = &after
	}

	return state, nil
}

// EndTurn passes the turn to the next player.
func (state State) EndTurn(pass bool) State {
	if len(state.players) == 0 {
		return state
	}

	players := append(state.Players()[1:], state.players[0])
	state.players = players
	state.round = state.round.Advance(len(players), pass)
	return state
}

// RemoveActive removes the active player from the game. The next player
// becomes active.
func (state State) RemoveActive() State {
	if len(state.players) == 0 {
		return state
	}

	state.players = state.Players()[1:]
	state.round = state.round.Advance(len(state.players), false)
	return state
}

// AssignGoal gives the active player a new goal.
func (state State) AssignGoal(goal board.Coordinate, reached, terminal bool) (State, error) {
	if len(state.players) == 0 {
		return State{}, ErrNoPlayers
	}

	if !state.board.Contains(goal) {
		return State{}, fmt.Errorf("%w: goal %s", board.ErrOutOfBounds, goal)
	}

	players := state.Players()
	players[0].Goal = goal
	players[0].Reached = reached
	players[0].Terminal = terminal

	state.players = players
	return state, nil
}

// Public returns the view of the state sent to the active player.
func (state State) Public() PublicState {
	if len(state.players) == 0 {
		return state.view(nil)
	}

	return state.view(&state.players[0])
}

// PublicFor returns the view of the state sent to the named player. It
// carries no player data if there is no such player.
func (state State) PublicFor(name string) PublicState {
	for i := range state.players {
		if state.players[i].Name == name {
			return state.view(&state.players[i])
		}
	}

	return state.view(nil)
}

// view leaves out every player but the given one, and its goal and
// treasure count.
func (state State) view(player *Player) PublicState {
	view := PublicState{
		Board: state.board,
		Spare: state.spare,
	}

	if player != nil {
		view.Players = []PublicPlayer{{
			Current: player.Current,
			Home:    player.Home,
			Color:   player.Color,
		}}
	}

	if state.last != nil {
		last := *state.last
		view.Last = &last
	}

	return view
}
