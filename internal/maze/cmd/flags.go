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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/maze/pkg/common"
	"laptudirm.com/x/maze/pkg/maze/wire"
	"laptudirm.com/x/maze/pkg/observer"
	"laptudirm.com/x/maze/pkg/referee"
)

// character set used by the spinners
const spin = 14

// interruptible returns a context which is cancelled on ^C.
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// gameFlags registers the flags shared by the commands which referee
// a game themselves.
func gameFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("state", "s", "", "JSON file with the starting state of the game")
	cmd.Flags().StringP("observe", "o", "", "Serve the game's progress on the given address")
	cmd.Flags().Bool("no-save", false, "Don't save the outcome of the game")
}

// refereeConfig applies the game flags to the configuration of a referee.
func refereeConfig(cmd *cobra.Command, config *referee.Config) error {
	if file, _ := cmd.Flags().GetString("state"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		var rs wire.RefereeState
		if err := json.Unmarshal(data, &rs); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		if config.Goals, err = rs.GoalQueue(); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		config.Builder = referee.WireBuilder{State: rs}
	}

	if address, _ := cmd.Flags().GetString("observe"); address != "" {
		obs := observer.New()
		config.Observers = append(config.Observers, obs)

		go func() {
			logrus.Infof("serving the game on %s", address)
			if err := http.ListenAndServe(address, obs); err != nil {
				logrus.Errorf("observer: %v", err)
			}
		}()
	}

	return nil
}

// report prints the [winners, cheaters] summary of the outcome and
// saves the outcome unless asked not to.
func report(cmd *cobra.Command, w io.Writer, outcome referee.Outcome) error {
	summary, err := json.Marshal(outcome.Summary())
	if err != nil {
		return err
	}

	fmt.Fprintln(w, string(summary))

	if noSave, _ := cmd.Flags().GetBool("no-save"); noSave || outcome.ID == "" {
		return nil
	}

	file, err := common.SaveOutcome(common.ResultsDirectory, outcome)
	if err != nil {
		return err
	}

	logrus.Debugf("saved outcome to %s", file)
	return nil
}
