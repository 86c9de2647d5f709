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
	"errors"
	"sync"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/maze/pkg/client"
	"laptudirm.com/x/maze/pkg/player"
)

func Client() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client name...",
		Short: "Play on a maze server with local strategies",
		Args:  cobra.MinimumNArgs(1),
		Long: heredoc.Doc(`client connects one player for every given name to a
			maze server and plays a single game with each of them.
			Connection attempts are retried until the server accepts
			them or the client is interrupted.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			address, _ := cmd.Flags().GetString("address")
			strategyName, _ := cmd.Flags().GetString("strategy")
			retry, _ := cmd.Flags().GetDuration("retry")

			strategy, err := player.NewStrategy(strategyName)
			if err != nil {
				return err
			}

			for _, name := range args {
				if !player.Name.MatchString(name) {
					return errors.New("client: invalid name " + name)
				}
			}

			ctx, cancel := interruptible()
			defer cancel()

			var wg sync.WaitGroup
			errs := make([]error, len(args))
			for i, name := range args {
				wg.Add(1)
				go func(i int, name string) {
					defer wg.Done()

					errs[i] = client.Run(ctx, client.Config{
						Address: address,
						Name:    name,
						Retry:   retry,
					}, player.New(name, strategy))

					if errs[i] != nil {
						logrus.WithField("player", name).Error(errs[i])
					}
				}(i, name)
			}

			wg.Wait()
			return errors.Join(errs...)
		},
	}

	cmd.Flags().StringP("address", "a", "localhost:27015", "Address of the maze server")
	cmd.Flags().StringP("strategy", "s", "riemann", "Strategy to play with (riemann or euclid)")
	cmd.Flags().Duration("retry", 500*time.Millisecond, "Time to wait between connection attempts")
	return cmd
}
