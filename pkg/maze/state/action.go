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
	"fmt"

	"laptudirm.com/x/maze/pkg/maze/board"
)

// Action is a player's response to a turn request: either a Pass or a
// Slide. Consumers switch on the concrete type.
type Action interface {
	isAction()
}

// Pass skips the player's turn.
type Pass struct{}

// Slide rotates the spare tile, slides a row (LEFT and RIGHT) or column
// (UP and DOWN) by inserting it, and then moves the player.
type Slide struct {
	Index       int
	Direction   board.Direction
	Rotation    board.Degree
	Destination board.Coordinate
}

func (Pass) isAction()  {}
func (Slide) isAction() {}

// Row reports whether the slide moves a row rather than a column.
func (slide Slide) Row() bool {
	return slide.Direction.Horizontal()
}

// Undoes reports whether slide pushes the same line back the way the
// previous slide pushed it.
func (slide Slide) Undoes(previous Slide) bool {
	return slide.Index == previous.Index && slide.Direction == previous.Direction.Opposite()
}

func (Pass) String() string { return "PASS" }

func (slide Slide) String() string {
	return fmt.Sprintf("%d %s %s -> %s", slide.Index, slide.Direction, slide.Rotation, slide.Destination)
}
