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
	"context"
	"errors"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/maze/pkg/common"
	"laptudirm.com/x/maze/pkg/series"
)

func Series() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series config-file",
		Short: "Play many games between the same local players",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`series plays a number of games between the players listed
			in the given YAML file, each from a new random state, and
			reports the wins, losses and cheats of every player:

			    players:
			      - name: ann
			        strategy: euclid
			      - name: bob
			    games: 100
			    concurrency: 4
			    timeout: 1s`),

		RunE: func(cmd *cobra.Command, args []string) error {
			var config series.Config
			if err := common.LoadYAML(args[0], &config); err != nil {
				return err
			}

			s, err := series.New(config)
			if err != nil {
				return err
			}

			s.Output = os.Stdout
			if save, _ := cmd.Flags().GetBool("save"); save {
				s.OnResult = func(result series.Result) {
					if _, err := common.SaveOutcome(common.ResultsDirectory, result.Outcome); err != nil {
						logrus.Error(err)
					}
				}
			}

			ctx, cancel := interruptible()
			defer cancel()

			if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			return nil
		},
	}

	cmd.Flags().Bool("save", false, "Save the outcome of every game")
	return cmd
}
