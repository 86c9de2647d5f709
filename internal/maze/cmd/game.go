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

package cmd

import (
	"math/rand"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"laptudirm.com/x/maze/pkg/common"
	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/player"
	"laptudirm.com/x/maze/pkg/referee"
)

// gameConfig describes a game played between local players.
type gameConfig struct {
	Players []player.Config `yaml:"players"`

	// Time a player has to answer a call.
	Timeout time.Duration `yaml:"timeout"`

	// Seed of the random starting state, the current time if unset.
	Seed int64 `yaml:"seed"`
}

func Game() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game players-file",
		Short: "Referee a game between local players",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`game referees a single game between the players described
			in the given YAML file, in the order they are listed. Each
			player has a name, a strategy (riemann or euclid) and may
			be told to misbehave on purpose:

			    players:
			      - name: ann
			        strategy: euclid
			      - name: bob
			        misbehave: { method: take-turn, fault: hang, count: 2 }

			The starting state is random unless a state file is given,
			whose players are handed to the listed players in order.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			var config gameConfig
			if err := common.LoadYAML(args[0], &config); err != nil {
				return err
			}

			if err := referee.CheckPlayers(len(config.Players)); err != nil {
				return err
			}

			participants := make([]referee.Participant, len(config.Players))
			for i, p := range config.Players {
				participant, err := p.Build()
				if err != nil {
					return err
				}

				participants[i] = participant
			}

			if config.Seed == 0 {
				config.Seed = time.Now().UnixNano()
			}

			refConfig := referee.Config{
				Timeout: config.Timeout,
				Builder: referee.RandomBuilder{
					Width:  board.Width,
					Height: board.Height,
					Rand:   rand.New(rand.NewSource(config.Seed)),
				},
			}

			if err := refereeConfig(cmd, &refConfig); err != nil {
				return err
			}

			ctx, cancel := interruptible()
			defer cancel()

			outcome := referee.New(refConfig).Run(ctx, participants)
			return report(cmd, os.Stdout, outcome)
		},
	}

	gameFlags(cmd)
	return cmd
}
