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

package wire

import (
	"encoding/json"
	"fmt"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
)

const pass = "PASS"

// Action is a turn response: the string "PASS" or an array
// [index, direction, rotation, destination] where rotation counts
// clockwise quarter turns.
type Action struct {
	state.Action
}

func (action Action) MarshalJSON() ([]byte, error) {
	switch a := action.Action.(type) {
	case state.Slide:
		return json.Marshal([]any{
			a.Index,
			a.Direction.String(),
			int(a.Rotation),
			FromCoordinate(a.Destination),
		})
	case state.Pass, nil:
		return json.Marshal(pass)
	default:
		return nil, fmt.Errorf("%w: %T", ErrBadAction, a)
	}
}

func (action *Action) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err == nil {
		if token != pass {
			return fmt.Errorf("%w: %q", ErrBadAction, token)
		}

		action.Action = state.Pass{}
		return nil
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("%w: %v", ErrBadAction, err)
	}

	if len(parts) != 4 {
		return fmt.Errorf("%w: %d elements", ErrBadAction, len(parts))
	}

	var (
		slide       state.Slide
		direction   string
		rotation    int
		destination Coordinate
	)

	for i, target := range []any{&slide.Index, &direction, &rotation, &destination} {
		if err := json.Unmarshal(parts[i], target); err != nil {
			return fmt.Errorf("%w: element %d: %v", ErrBadAction, i, err)
		}
	}

	var err error
	if slide.Direction, err = board.ParseDirection(direction); err != nil {
		return err
	}

	if slide.Rotation, err = board.NewDegree(rotation); err != nil {
		return err
	}

	if slide.Destination, err = destination.Coordinate(); err != nil {
		return err
	}

	action.Action = slide
	return nil
}

// Summary is the result of a game as reported to the outside world:
// [winners, cheaters].
type Summary struct {
	Winners  []string
	Cheaters []string
}

func (summary Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal([2][]string{nonNil(summary.Winners), nonNil(summary.Cheaters)})
}

func (summary *Summary) UnmarshalJSON(data []byte) error {
	var pair [2][]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}

	summary.Winners, summary.Cheaters = pair[0], pair[1]
	return nil
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}

	return names
}
