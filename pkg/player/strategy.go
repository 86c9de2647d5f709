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
	"sort"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
)

// Strategy decides a player's action.
type Strategy interface {
	Decide(view state.PublicState, goal board.Coordinate) state.Action
}

// Riemann tries to reach the goal, and failing that every other tile in
// row-major order.
type Riemann struct{}

// Euclid tries to reach the goal, and failing that every other tile in
// order of increasing distance from the goal.
type Euclid struct{}

func (Riemann) Decide(view state.PublicState, goal board.Coordinate) state.Action {
	return decide(view, goal, func(a, b board.Coordinate) bool { return a.Less(b) })
}

func (Euclid) Decide(view state.PublicState, goal board.Coordinate) state.Action {
	return decide(view, goal, func(a, b board.Coordinate) bool {
		da, db := a.Distance(goal), b.Distance(goal)
		if da != db {
			return da < db
		}

		return a.Less(b)
	})
}

// decide searches the candidate destinations in order, returning the
// first legal slide that reaches one of them.
func decide(view state.PublicState, goal board.Coordinate, less func(a, b board.Coordinate) bool) state.Action {
	s, err := view.State()
	if err != nil {
		return state.Pass{}
	}

	b := view.Board

	var candidates []board.Coordinate
	for row := 0; row < b.Height(); row++ {
		for column := 0; column < b.Width(); column++ {
			if c := (board.Coordinate{Row: row, Column: column}); c != goal {
				candidates = append(candidates, c)
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return less(candidates[i], candidates[j]) })
	if b.Contains(goal) {
		candidates = append([]board.Coordinate{goal}, candidates...)
	}

	for _, destination := range candidates {
		if slide, found := search(s, destination); found {
			return slide
		}
	}

	return state.Pass{}
}

// search finds a legal slide moving the active player to destination,
// trying rows before columns and every rotation of the spare.
func search(s state.State, destination board.Coordinate) (state.Slide, bool) {
	type line struct {
		indices    []int
		directions []board.Direction
	}

	b := s.Board()
	for _, l := range []line{
		{b.SlideableRows(), []board.Direction{board.Left, board.Right}},
		{b.SlideableColumns(), []board.Direction{board.Up, board.Down}},
	} {
		for _, index := range l.indices {
			for _, direction := range l.directions {
				for rotation := board.Degree0; rotation < board.DegreeN; rotation++ {
					slide := state.Slide{
						Index:       index,
						Direction:   direction,
						Rotation:    rotation,
						Destination: destination,
					}

					if s.IsLegal(slide) {
						return slide, true
					}
				}
			}
		}
	}

	return state.Slide{}, false
}
