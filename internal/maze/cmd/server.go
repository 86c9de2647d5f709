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
	"fmt"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"laptudirm.com/x/maze/pkg/common"
	"laptudirm.com/x/maze/pkg/referee"
	"laptudirm.com/x/maze/pkg/server"
)

func Server() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server [port]",
		Short: "Host a game of maze for remote players",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`server waits for remote players to sign up over TCP and
			referees a single game between them. Players sign up by
			connecting and sending their name as a JSON string.

			Signups are accepted for up to two windows of 20 seconds,
			the second only running if fewer than two players joined
			in the first. The game starts early once six players are
			signed up. The player who signed up last moves first.

			Once the game is over, the winners and the cheaters are
			printed as [[winners...], [cheaters...]].

			The address and the timeouts may also be set with the
			MAZE_ADDRESS, MAZE_WINDOW and MAZE_TIMEOUT variables.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			config := server.DefaultConfig()
			if file, _ := cmd.Flags().GetString("config"); file != "" {
				if err := common.LoadYAML(file, &config); err != nil {
					return err
				}
			}

			config, err := common.ServerConfig(config)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				config.Address = ":" + args[0]
			}

			refConfig := referee.Config{Timeout: config.Timeout}
			if err := refereeConfig(cmd, &refConfig); err != nil {
				return err
			}

			srv := server.New(config, referee.New(refConfig))
			if err := srv.Listen(); err != nil {
				return err
			}

			s := spinner.New(spinner.CharSets[spin], 100*time.Millisecond)
			s.Suffix = fmt.Sprintf(" waiting for players on %s", srv.Addr())
			srv.Joined = func(name string, count int) {
				s.Lock()
				s.Suffix = fmt.Sprintf(" %d signed up, last %s", count, name)
				s.Unlock()
			}

			ctx, cancel := interruptible()
			defer cancel()

			s.Start()
			outcome, err := srv.Run(ctx)
			s.Stop()

			if err != nil {
				return err
			}

			return report(cmd, os.Stdout, outcome)
		},
	}

	cmd.Flags().StringP("config", "c", "", "YAML file with the server's configuration")
	gameFlags(cmd)
	return cmd
}
