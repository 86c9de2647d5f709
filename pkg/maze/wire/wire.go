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

// Package wire defines the JSON representation of maze values exchanged
// between referees and players, and conversions from and to the game
// types.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
)

var (
	ErrBadShape  = errors.New("wire: malformed connector or treasure grid")
	ErrBadRoster = errors.New("wire: number of names does not match players")
	ErrBadAction = errors.New("wire: malformed action")
)

type Coordinate struct {
	Row    int `json:"row#"`
	Column int `json:"column#"`
}

func FromCoordinate(c board.Coordinate) Coordinate {
	return Coordinate{Row: c.Row, Column: c.Column}
}

func (c Coordinate) Coordinate() (board.Coordinate, error) {
	return board.NewCoordinate(c.Row, c.Column)
}

type Tile struct {
	Key    string `json:"tilekey"`
	Image1 string `json:"1-image"`
	Image2 string `json:"2-image"`
}

func FromTile(tile board.Tile) Tile {
	return Tile{
		Key:    tile.Symbol(),
		Image1: tile.Treasure.First.String(),
		Image2: tile.Treasure.Second.String(),
	}
}

func (t Tile) Tile() (board.Tile, error) {
	treasure, err := board.ParseTreasure(t.Image1, t.Image2)
	if err != nil {
		return board.Tile{}, err
	}

	return board.ParseTile(t.Key, treasure)
}

// Board is a board as two parallel row-major grids.
type Board struct {
	Connectors [][]string    `json:"connectors"`
	Treasures  [][][]string `json:"treasures"`
}

func FromBoard(b *board.Board) Board {
	var wb Board
	for _, row := range b.Tiles() {
		var connectors []string
		var treasures [][]string
		for _, tile := range row {
			connectors = append(connectors, tile.Symbol())
			treasures = append(treasures, []string{
				tile.Treasure.First.String(),
				tile.Treasure.Second.String(),
			})
		}

		wb.Connectors = append(wb.Connectors, connectors)
		wb.Treasures = append(wb.Treasures, treasures)
	}

	return wb
}

// Tiles decodes the grid without validating it as a board.
func (b Board) Tiles() ([][]board.Tile, error) {
	if len(b.Connectors) != len(b.Treasures) {
		return nil, ErrBadShape
	}

	tiles := make([][]board.Tile, len(b.Connectors))
	for r, row := range b.Connectors {
		if len(row) != len(b.Treasures[r]) {
			return nil, ErrBadShape
		}

		tiles[r] = make([]board.Tile, len(row))
		for c, symbol := range row {
			gems := b.Treasures[r][c]
			if len(gems) != 2 {
				return nil, fmt.Errorf("%w: tile %d,%d has %d gems", ErrBadShape, r, c, len(gems))
			}

			tile, err := Tile{Key: symbol, Image1: gems[0], Image2: gems[1]}.Tile()
			if err != nil {
				return nil, fmt.Errorf("tile %d,%d: %w", r, c, err)
			}

			tiles[r][c] = tile
		}
	}

	return tiles, nil
}

func (b Board) Board() (*board.Board, error) {
	tiles, err := b.Tiles()
	if err != nil {
		return nil, err
	}

	return board.New(tiles)
}

type Player struct {
	Current Coordinate `json:"current"`
	Home    Coordinate `json:"home"`
	Color   string     `json:"color"`
}

// RefereePlayer also carries the player's goal, which only the referee
// knows.
type RefereePlayer struct {
	Player
	Goto Coordinate `json:"goto"`
}

// Last is the previous slide, encoded as [index, direction].
type Last struct {
	Index     int
	Direction board.Direction
}

func (last Last) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{last.Index, last.Direction.String()})
}

func (last *Last) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}

	if len(pair) != 2 {
		return fmt.Errorf("%w: last needs index and direction", ErrBadAction)
	}

	var token string
	if err := json.Unmarshal(pair[0], &last.Index); err != nil {
		return err
	}

	if err := json.Unmarshal(pair[1], &token); err != nil {
		return err
	}

	d, err := board.ParseDirection(token)
	last.Direction = d
	return err
}

func fromLast(slide *state.Slide) *Last {
	if slide == nil {
		return nil
	}

	return &Last{Index: slide.Index, Direction: slide.Direction}
}

func (last *Last) slide() *state.Slide {
	if last == nil {
		return nil
	}

	return &state.Slide{Index: last.Index, Direction: last.Direction}
}

// State is the public view of a game.
type State struct {
	Board   Board    `json:"board"`
	Spare   Tile     `json:"spare"`
	Players []Player `json:"plmt"`
	Last    *Last    `json:"last"`
}

func FromPublic(view state.PublicState) State {
	s := State{
		Board:   FromBoard(view.Board),
		Spare:   FromTile(view.Spare),
		Players: []Player{},
		Last:    fromLast(view.Last),
	}

	for _, player := range view.Players {
		s.Players = append(s.Players, Player{
			Current: FromCoordinate(player.Current),
			Home:    FromCoordinate(player.Home),
			Color:   string(player.Color),
		})
	}

	return s
}

func (s State) Public() (state.PublicState, error) {
	b, err := s.Board.Board()
	if err != nil {
		return state.PublicState{}, err
	}

	spare, err := s.Spare.Tile()
	if err != nil {
		return state.PublicState{}, err
	}

	view := state.PublicState{Board: b, Spare: spare, Last: s.Last.slide()}
	for _, p := range s.Players {
		player, err := p.decode(b)
		if err != nil {
			return state.PublicState{}, err
		}

		view.Players = append(view.Players, state.PublicPlayer{
			Current: player.Current,
			Home:    player.Home,
			Color:   player.Color,
		})
	}

	return view, nil
}

func (p Player) decode(b *board.Board) (state.Player, error) {
	var player state.Player
	var err error

	if player.Current, err = b.Coordinate(p.Current.Row, p.Current.Column); err != nil {
		return player, err
	}

	if player.Home, err = b.Coordinate(p.Home.Row, p.Home.Column); err != nil {
		return player, err
	}

	player.Color, err = state.ParseColor(p.Color)
	return player, err
}

// RefereeState is the complete state of a game, including goals and an
// optional queue of additional goals handed out once players reach
// their first one.
type RefereeState struct {
	Board   Board           `json:"board"`
	Spare   Tile            `json:"spare"`
	Players []RefereePlayer `json:"plmt"`
	Last    *Last           `json:"last"`
	Goals   []Coordinate    `json:"goals,omitempty"`
}

func FromState(s state.State, goals []board.Coordinate) RefereeState {
	rs := RefereeState{
		Board:   FromBoard(s.Board()),
		Spare:   FromTile(s.Spare()),
		Players: []RefereePlayer{},
	}

	if last, ok := s.LastSlide(); ok {
		rs.Last = fromLast(&last)
	}

	for _, player := range s.Players() {
		rs.Players = append(rs.Players, RefereePlayer{
			Player: Player{
				Current: FromCoordinate(player.Current),
				Home:    FromCoordinate(player.Home),
				Color:   string(player.Color),
			},
			Goto: FromCoordinate(player.Goal),
		})
	}

	for _, goal := range goals {
		rs.Goals = append(rs.Goals, FromCoordinate(goal))
	}

	return rs
}

// State decodes the referee state, naming its players in order.
func (rs RefereeState) State(names []string) (state.State, []board.Coordinate, error) {
	if len(names) != len(rs.Players) {
		return state.State{}, nil, fmt.Errorf("%w: %d names, %d players", ErrBadRoster, len(names), len(rs.Players))
	}

	b, err := rs.Board.Board()
	if err != nil {
		return state.State{}, nil, err
	}

	spare, err := rs.Spare.Tile()
	if err != nil {
		return state.State{}, nil, err
	}

	players := make([]state.Player, len(rs.Players))
	for i, p := range rs.Players {
		if players[i], err = p.decode(b); err != nil {
			return state.State{}, nil, err
		}

		if players[i].Goal, err = b.Coordinate(p.Goto.Row, p.Goto.Column); err != nil {
			return state.State{}, nil, err
		}

		players[i].Name = names[i]
	}

	goals, err := rs.goals(b)
	if err != nil {
		return state.State{}, nil, err
	}

	s, err := state.New(b, spare, players, rs.Last.slide())
	return s, goals, err
}

// Roster returns the referee state restricted to its first n players,
// for games that fewer players turned up to.
func (rs RefereeState) Roster(n int) RefereeState {
	if n < len(rs.Players) {
		rs.Players = rs.Players[:n:n]
	}

	return rs
}

// GoalQueue decodes the additional goals of the referee state.
func (rs RefereeState) GoalQueue() ([]board.Coordinate, error) {
	b, err := rs.Board.Board()
	if err != nil {
		return nil, err
	}

	return rs.goals(b)
}

func (rs RefereeState) goals(b *board.Board) ([]board.Coordinate, error) {
	var goals []board.Coordinate
	for _, g := range rs.Goals {
		goal, err := b.Coordinate(g.Row, g.Column)
		if err != nil {
			return nil, err
		}

		goals = append(goals, goal)
	}

	return goals, nil
}
