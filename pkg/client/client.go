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

package client

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/maze/pkg/referee"
	"laptudirm.com/x/maze/pkg/remote"
)

type Config struct {
	// Address of the server.
	Address string `yaml:"address"`

	// Name to sign up with.
	Name string `yaml:"name"`

	// Time to wait between connection attempts.
	Retry time.Duration `yaml:"retry"`
}

// Run connects to the server, signs up and plays a single game with the
// given player. Connection attempts are retried until the server
// accepts or ctx is done.
func Run(ctx context.Context, config Config, player referee.Player) error {
	if config.Retry == 0 {
		config.Retry = 500 * time.Millisecond
	}

	c, err := dial(ctx, config)
	if err != nil {
		return err
	}

	conn := remote.NewConn(config.Name, c)
	defer conn.Close()

	if err := conn.Write(config.Name); err != nil {
		return err
	}

	logrus.WithField("player", config.Name).Infof("signed up at %s", config.Address)
	return remote.NewProxyReferee(conn, player).Listen(ctx)
}

func dial(ctx context.Context, config Config) (net.Conn, error) {
	var dialer net.Dialer
	for {
		c, err := dialer.DialContext(ctx, "tcp", config.Address)
		if err == nil {
			return c, nil
		}

		logrus.Debugf("unable to connect to %s: %v", config.Address, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(config.Retry):
		}
	}
}
