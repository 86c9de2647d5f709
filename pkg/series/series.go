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

// Package series plays many local games between the same players and
// keeps a running score of the results.
package series

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/player"
	"laptudirm.com/x/maze/pkg/referee"
)

type Config struct {
	// The players participating in every game of the series.
	Players []player.Config `yaml:"players"`

	// Number of games to play.
	Games int `yaml:"games"`

	// Number of games that will be played concurrently.
	Concurrency int `yaml:"concurrency"`

	// Time a player has to answer a call.
	Timeout time.Duration `yaml:"timeout"`

	// Seed of the random starting states. Game n uses Seed+n.
	Seed int64 `yaml:"seed"`
}

// Score is the record of a single player over the series.
type Score struct {
	Wins, Losses, Cheats int
}

func (score Score) Total() int {
	return score.Wins + score.Losses + score.Cheats
}

// Result is the outcome of a numbered game of the series.
type Result struct {
	Number  int
	Outcome referee.Outcome
}

func (result Result) String() string {
	return fmt.Sprintf("winners %v, cheaters %v", result.Outcome.Winners, result.Outcome.Cheaters)
}

func New(config Config) (*Series, error) {
	if err := referee.CheckPlayers(len(config.Players)); err != nil {
		return nil, fmt.Errorf("series: %w", err)
	}

	seen := make(map[string]bool)
	for _, p := range config.Players {
		// fail early on configs that no game could be started with
		if _, err := p.Build(); err != nil {
			return nil, err
		}

		if seen[p.Name] {
			return nil, fmt.Errorf("series: duplicate player %s", p.Name)
		}

		seen[p.Name] = true
	}

	if config.Games < 1 {
		config.Games = 1
	}

	if config.Concurrency < 1 {
		config.Concurrency = 1
	}

	return &Series{
		Config: config,
		Output: os.Stdout,
		Scores: make(map[string]*Score, len(config.Players)),

		games:    make(chan int),
		results:  make(chan Result),
		complete: make(chan bool),
	}, nil
}

type Series struct {
	Config Config

	// Output is where the score table is reported.
	Output io.Writer

	// OnResult, if set, is called with every finished game.
	OnResult func(Result)

	games    chan int
	results  chan Result
	complete chan bool

	Games  int
	Scores map[string]*Score
}

// Start plays every game of the series and returns once all of them
// have finished. Cancelling ctx stops new games from being started.
func (series *Series) Start(ctx context.Context) error {
	for _, p := range series.Config.Players {
		series.Scores[p.Name] = &Score{}
	}

	go series.ResultHandler()
	for i := 0; i < series.Config.Concurrency; i++ {
		go series.Thread(ctx)
	}

	scheduled := 0
schedule:
	for ; scheduled < series.Config.Games && ctx.Err() == nil; scheduled++ {
		select {
		case series.games <- scheduled + 1:
		case <-ctx.Done():
			break schedule
		}
	}

	close(series.games)
	series.results <- Result{Number: -scheduled}
	<-series.complete

	series.Report()
	return ctx.Err()
}

func (series *Series) Thread(ctx context.Context) {
	for number := range series.games {
		result, err := series.RunGame(ctx, number)
		if err != nil {
			logrus.Error(err)
			result = Result{Number: number}
		}

		series.results <- result
	}
}

// RunGame plays a single game of the series with fresh players.
func (series *Series) RunGame(ctx context.Context, number int) (Result, error) {
	participants := make([]referee.Participant, len(series.Config.Players))
	for i, config := range series.Config.Players {
		participant, err := config.Build()
		if err != nil {
			return Result{}, err
		}

		participants[i] = participant
	}

	logrus.Infof("\x1b[33mStarting\x1b[0m Game #%d", number)

	ref := referee.New(referee.Config{
		Timeout: series.Config.Timeout,
		Builder: referee.RandomBuilder{
			Width:  board.Width,
			Height: board.Height,
			Rand:   rand.New(rand.NewSource(series.Config.Seed + int64(number))),
		},
	})

	return Result{Number: number, Outcome: ref.Run(ctx, participants)}, nil
}

// ResultHandler tallies results until every scheduled game is done. The
// scheduler sends a result with a non-positive number carrying the
// negated count of scheduled games once it stops scheduling.
func (series *Series) ResultHandler() {
	target := -1
	for result := range series.results {
		if result.Number <= 0 {
			target = -result.Number
		} else {
			series.tally(result)
		}

		if series.Games == target {
			series.complete <- true
			return
		}
	}
}

func (series *Series) tally(result Result) {
	series.Games++

	for _, name := range result.Outcome.Winners {
		series.Scores[name].Wins++
	}

	for _, name := range result.Outcome.Losers {
		series.Scores[name].Losses++
	}

	for _, name := range result.Outcome.Cheaters {
		series.Scores[name].Cheats++
	}

	logrus.Infof("\x1b[32mFinished\x1b[0m Game #%d: %s", result.Number, result)

	if series.OnResult != nil {
		series.OnResult(result)
	}

	if series.Games%5 == 0 {
		series.Report()
	}
}

func (series *Series) Report() {
	fmt.Fprintln(series.Output, "╔══════════════════════════════════════════════════╗")
	fmt.Fprintln(series.Output, "║     Name                   Wins Loss Cheat Total ║")
	fmt.Fprintln(series.Output, "╠══════════════════════════════════════════════════╣")
	for i, p := range series.Config.Players {
		score := series.Scores[p.Name]
		fmt.Fprintf(
			series.Output,
			"║ %2d. %-20s   %4d %4d %5d %5d ║\n",
			i+1, p.Name,
			score.Wins, score.Losses, score.Cheats, score.Total(),
		)
	}
	fmt.Fprintln(series.Output, "╚══════════════════════════════════════════════════╝")
}
