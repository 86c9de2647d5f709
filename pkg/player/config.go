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
	"fmt"
	"regexp"

	"laptudirm.com/x/maze/pkg/referee"
)

// Name is the pattern every player name must match.
var Name = regexp.MustCompile(`^[a-zA-Z0-9]{1,20}$`)

// Config describes a local player.
type Config struct {
	Name     string `yaml:"name"`
	Strategy string `yaml:"strategy"`

	Misbehave *Misbehavior `yaml:"misbehave"`
}

// NewStrategy looks up a strategy by name.
func NewStrategy(name string) (Strategy, error) {
	switch name {
	case "riemann", "":
		return Riemann{}, nil
	case "euclid":
		return Euclid{}, nil
	default:
		return nil, fmt.Errorf("player: unknown strategy %q", name)
	}
}

// Build creates the player described by the config.
func (config Config) Build() (referee.Participant, error) {
	if !Name.MatchString(config.Name) {
		return referee.Participant{}, fmt.Errorf("player: invalid name %q", config.Name)
	}

	strategy, err := NewStrategy(config.Strategy)
	if err != nil {
		return referee.Participant{}, err
	}

	var p referee.Player = New(config.Name, strategy)
	if config.Misbehave != nil {
		if p, err = NewMisbehaving(p, *config.Misbehave); err != nil {
			return referee.Participant{}, err
		}
	}

	return referee.Participant{Name: config.Name, Player: p}, nil
}
