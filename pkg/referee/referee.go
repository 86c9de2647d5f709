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

package referee

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/maze/pkg/maze/board"
	"laptudirm.com/x/maze/pkg/maze/state"
)

// Timeout is the default time a player has to answer a call.
const Timeout = 4 * time.Second

// Player count bounds of a game.
const (
	MinPlayers = 2
	MaxPlayers = 6
)

var ErrPlayerCount = errors.New("referee: a game needs 2 to 6 players")

// CheckPlayers reports whether a game can be played with n players.
func CheckPlayers(n int) error {
	if n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("%w, got %d", ErrPlayerCount, n)
	}

	return nil
}

// Observer is notified of every state of a game and of its outcome.
// Observers are called synchronously and should return quickly.
type Observer interface {
	Observe(s state.State)
	Finish(outcome Outcome)
}

type Config struct {
	// Time a player has to answer a call.
	Timeout time.Duration

	// Dimensions of the board requested from the players.
	Width, Height int

	// Policy for choosing the starting state.
	Builder Builder

	// Goals handed out in order to players that reach a goal, before
	// players are sent home.
	Goals []board.Coordinate

	Observers []Observer
}

// Referee runs games of maze between players.
type Referee struct {
	config Config
}

func New(config Config) *Referee {
	if config.Timeout == 0 {
		config.Timeout = Timeout
	}

	if config.Width == 0 || config.Height == 0 {
		config.Width, config.Height = board.Width, board.Height
	}

	if config.Builder == nil {
		config.Builder = RandomBuilder{
			Width:  config.Width,
			Height: config.Height,
			Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		}
	}

	return &Referee{config: config}
}

// game holds the bookkeeping of a single run.
type game struct {
	*Referee

	id  string
	ctx context.Context
	log *logrus.Entry

	// players that may still be called during the game
	active map[string]Participant

	goals    []board.Coordinate
	cheaters map[string]bool
}

// Run plays a game between the given participants, who move in the
// given order. Misbehaving participants are removed from the game and
// reported as cheaters; Run itself never fails. No game is played, and
// an empty outcome is returned, unless there are 2 to 6 participants.
func (referee *Referee) Run(ctx context.Context, participants []Participant) Outcome {
	if err := CheckPlayers(len(participants)); err != nil {
		logrus.Warnf("not starting a game: %v", err)
		return Outcome{Winners: []string{}, Losers: []string{}, Cheaters: []string{}}
	}

	id := uuid.NewString()
	g := &game{
		Referee: referee,

		id:  id,
		ctx: ctx,
		log: logrus.WithField("game", id),

		active:   make(map[string]Participant),
		goals:    append([]board.Coordinate(nil), referee.config.Goals...),
		cheaters: make(map[string]bool),
	}

	g.log.Infof("starting game with %d players", len(participants))

	contacted, proposals := g.proposals(participants)

	var names []string
	for _, p := range contacted {
		names = append(names, p.Name)
		g.active[p.Name] = p
	}

	s, err := referee.config.Builder.Build(proposals, names)
	if err != nil {
		g.log.Errorf("unable to build starting state: %v", err)
		return g.finish(contacted, nil)
	}

	g.setup(s)
	g.observe(s)

	for !s.IsOver() {
		s = g.turn(s)
		g.observe(s)
	}

	return g.finish(contacted, Winners(s))
}

// cheat records a misbehaving player and stops calling it.
func (g *game) cheat(name string, err error) {
	g.log.WithField("player", name).Warnf("player misbehaved: %v", err)
	g.cheaters[name] = true
	delete(g.active, name)
}

func (g *game) proposals(participants []Participant) ([]Participant, [][][]board.Tile) {
	var contacted []Participant
	var proposals [][][]board.Tile

	for _, p := range participants {
		tiles, err := query(g.ctx, g.config.Timeout, func(ctx context.Context) ([][]board.Tile, error) {
			return p.Player.ProposeBoard(ctx, g.config.Width, g.config.Height)
		})
		if err != nil {
			g.cheat(p.Name, err)
			continue
		}

		contacted = append(contacted, p)
		if tiles == nil {
			continue
		}

		if err := board.Valid(tiles, g.config.Width, g.config.Height); err != nil {
			g.log.WithField("player", p.Name).Debugf("discarding board proposal: %v", err)
			continue
		}

		proposals = append(proposals, tiles)
	}

	return contacted, proposals
}

func (g *game) setup(s state.State) {
	for _, player := range s.Players() {
		p, found := g.active[player.Name]
		if !found {
			continue
		}

		view := s.PublicFor(player.Name)
		goal := player.Goal
		if _, err := query(g.ctx, g.config.Timeout, void(func(ctx context.Context) error {
			return p.Player.Setup(ctx, &view, goal)
		})); err != nil {
			g.cheat(p.Name, err)
		}
	}
}

// turn plays a single turn of the active player.
func (g *game) turn(s state.State) state.State {
	active, _ := s.Active()
	p, found := g.active[active.Name]
	if !found {
		return s.RemoveActive()
	}

	log := g.log.WithField("player", p.Name)

	view := s.Public()
	action, err := query(g.ctx, g.config.Timeout, func(ctx context.Context) (state.Action, error) {
		return p.Player.TakeTurn(ctx, view)
	})
	if err != nil {
		g.cheat(p.Name, err)
		return s.RemoveActive()
	}

	switch action := action.(type) {
	case state.Pass:
		log.Debug("passed")
		return s.EndTurn(true)

	case state.Slide:
		next, err := s.Apply(action)
		if err != nil {
			g.cheat(p.Name, err)
			return s.RemoveActive()
		}

		log.Debugf("moved %s", action)

		next, err = g.reassign(s, next, p)
		if err != nil {
			g.cheat(p.Name, err)
			return next.RemoveActive()
		}

		return next.EndTurn(false)

	default:
		g.cheat(p.Name, ErrBadAction)
		return s.RemoveActive()
	}
}

// reassign hands a new goal to the active player if its move reached
// its current one. Extra goals are handed out first, after which the
// player is sent home.
func (g *game) reassign(before, after state.State, p Participant) (state.State, error) {
	was, _ := before.Active()
	now, _ := after.Active()
	if was.Reached || !now.Reached {
		return after, nil
	}

	var view *state.PublicState
	goal := now.Home

	var err error
	if len(g.goals) > 0 {
		goal, g.goals = g.goals[0], g.goals[1:]
		if after, err = after.AssignGoal(goal, false, len(g.goals) == 0); err != nil {
			return after, err
		}

		public := after.Public()
		view = &public
	} else if after, err = after.AssignGoal(goal, true, true); err != nil {
		return after, err
	}

	g.log.WithField("player", p.Name).Debugf("reached goal, next goal %s", goal)

	_, err = query(g.ctx, g.config.Timeout, void(func(ctx context.Context) error {
		return p.Player.Setup(ctx, view, goal)
	}))
	return after, err
}

func (g *game) observe(s state.State) {
	for _, observer := range g.config.Observers {
		observer.Observe(s)
	}
}

// finish tells every contacted participant whether it won and builds
// the outcome.
func (g *game) finish(contacted []Participant, winners []string) Outcome {
	won := make(map[string]bool)
	for _, name := range winners {
		if !g.cheaters[name] {
			won[name] = true
		}
	}

	for _, p := range contacted {
		result := won[p.Name]
		if _, err := query(g.ctx, g.config.Timeout, void(func(ctx context.Context) error {
			return p.Player.Won(ctx, result)
		})); err != nil {
			g.cheat(p.Name, err)
			delete(won, p.Name)
		}
	}

	lost := make(map[string]bool)
	for _, p := range contacted {
		if !won[p.Name] && !g.cheaters[p.Name] {
			lost[p.Name] = true
		}
	}

	outcome := Outcome{
		ID:       g.id,
		Winners:  names(won),
		Losers:   names(lost),
		Cheaters: names(g.cheaters),
	}

	g.log.Infof("game over: winners %v, cheaters %v", outcome.Winners, outcome.Cheaters)
	for _, observer := range g.config.Observers {
		observer.Finish(outcome)
	}

	return outcome
}
