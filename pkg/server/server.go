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

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/maze/pkg/player"
	"laptudirm.com/x/maze/pkg/referee"
	"laptudirm.com/x/maze/pkg/remote"
)

// Player count bounds of a game.
const (
	MinPlayers = referee.MinPlayers
	MaxPlayers = referee.MaxPlayers
)

var (
	ErrBadName   = errors.New("server: invalid player name")
	ErrNameTaken = errors.New("server: player name already taken")
)

type Config struct {
	// Address to listen on, like ":27015".
	Address string `yaml:"address"`

	// Length and number of the signup windows. Later windows only run
	// if too few players signed up in the earlier ones.
	Window  time.Duration `yaml:"window"`
	Windows int           `yaml:"windows"`

	// Time a new connection has to send its name.
	NameTimeout time.Duration `yaml:"name-timeout"`

	// Time a player has to answer a call during the game.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the standard signup rules.
func DefaultConfig() Config {
	return Config{
		Address:     ":27015",
		Window:      20 * time.Second,
		Windows:     2,
		NameTimeout: 2 * time.Second,
		Timeout:     referee.Timeout,
	}
}

// Server signs up remote players and runs a single game between them.
type Server struct {
	config  Config
	referee *referee.Referee

	listener  net.Listener
	listenErr error
	once      sync.Once

	// Joined, if set, is called whenever a player signs up.
	Joined func(name string, count int)
}

func New(config Config, ref *referee.Referee) *Server {
	return &Server{config: config, referee: ref}
}

// Listen binds the server's address. Run calls it if needed.
func (server *Server) Listen() error {
	server.once.Do(func() {
		server.listener, server.listenErr = net.Listen("tcp", server.config.Address)
	})

	return server.listenErr
}

// Addr returns the address the server is listening on.
func (server *Server) Addr() net.Addr {
	return server.listener.Addr()
}

type signup struct {
	name string
	conn *remote.Conn
}

// Run signs up players and plays a game between them. If too few
// players sign up, no game is played and an empty outcome is returned.
func (server *Server) Run(ctx context.Context) (referee.Outcome, error) {
	if err := server.Listen(); err != nil {
		return referee.Outcome{}, err
	}

	var signups []signup
	for window := 0; window < server.config.Windows; window++ {
		if window > 0 && len(signups) >= MinPlayers {
			break
		}

		var err error
		if signups, err = server.window(ctx, signups); err != nil {
			server.listener.Close()
			closeAll(signups)
			return referee.Outcome{}, err
		}
	}

	server.listener.Close()
	defer closeAll(signups)

	if len(signups) < MinPlayers {
		logrus.Warnf("only %d players signed up, not starting a game", len(signups))
		return referee.Outcome{Winners: []string{}, Losers: []string{}, Cheaters: []string{}}, nil
	}

	// youngest player, the last to sign up, goes first
	participants := make([]referee.Participant, len(signups))
	for i, s := range signups {
		participants[len(signups)-1-i] = referee.Participant{
			Name:   s.name,
			Player: remote.NewProxyPlayer(s.conn, server.config.Timeout),
		}
	}

	return server.referee.Run(ctx, participants), nil
}

// window accepts players until the window closes or the game is full.
func (server *Server) window(ctx context.Context, signups []signup) ([]signup, error) {
	deadline := time.Now().Add(server.config.Window)
	logrus.Infof("waiting %s for players on %s", server.config.Window, server.Addr())

	for len(signups) < MaxPlayers && time.Now().Before(deadline) && ctx.Err() == nil {
		if l, ok := server.listener.(interface{ SetDeadline(time.Time) error }); ok {
			if err := l.SetDeadline(deadline); err != nil {
				return signups, err
			}
		}

		c, err := server.listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				break
			}

			return signups, err
		}

		conn := remote.NewConn(c.RemoteAddr().String(), c)
		name, err := server.handshake(ctx, conn, signups)
		if err != nil {
			logrus.Warnf("rejecting %s: %v", conn.Name(), err)
			conn.Close()
			continue
		}

		signups = append(signups, signup{name: name, conn: conn})
		logrus.WithField("player", name).Infof("signed up (%d/%d)", len(signups), MaxPlayers)
		if server.Joined != nil {
			server.Joined(name, len(signups))
		}
	}

	return signups, nil
}

// handshake reads the player's name, which must be sent as a JSON string.
func (server *Server) handshake(ctx context.Context, conn *remote.Conn, signups []signup) (string, error) {
	value, err := conn.Await(ctx, server.config.NameTimeout)
	if err != nil {
		return "", err
	}

	var name string
	if err := json.Unmarshal(value, &name); err != nil || !player.Name.MatchString(name) {
		return "", fmt.Errorf("%w: %s", ErrBadName, value)
	}

	for _, s := range signups {
		if s.name == name {
			return "", fmt.Errorf("%w: %s", ErrNameTaken, name)
		}
	}

	return name, nil
}

func closeAll(signups []signup) {
	for _, s := range signups {
		s.conn.Close()
	}
}
