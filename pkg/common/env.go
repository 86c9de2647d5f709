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

package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"laptudirm.com/x/maze/pkg/server"
)

// Environment variables overriding the server configuration.
const (
	EnvAddress = "MAZE_ADDRESS"
	EnvWindow  = "MAZE_WINDOW"
	EnvTimeout = "MAZE_TIMEOUT"
)

// EnvTemplate seeds the .env file in the data directory.
var EnvTemplate = []byte(`# Overrides for the maze server, uncomment to use.
# MAZE_ADDRESS=:27015
# MAZE_WINDOW=20s
# MAZE_TIMEOUT=4s
`)

// SeedEnv creates the data directory and its .env template if they do
// not exist yet.
func SeedEnv() {
	TryMkdir(Directory)
	TryCreate(EnvFile, EnvTemplate)
}

// LoadEnv loads the given .env files into the environment, skipping
// those that do not exist. Variables already set are left alone.
func LoadEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("common: %s: %w", file, err)
		}
	}

	return nil
}

// ServerConfig applies the environment overrides to a server config.
func ServerConfig(config server.Config) (server.Config, error) {
	if address, ok := os.LookupEnv(EnvAddress); ok {
		config.Address = address
	}

	for env, field := range map[string]*time.Duration{
		EnvWindow:  &config.Window,
		EnvTimeout: &config.Timeout,
	} {
		value, ok := os.LookupEnv(env)
		if !ok {
			continue
		}

		duration, err := time.ParseDuration(value)
		if err != nil {
			return config, fmt.Errorf("common: %s: %w", env, err)
		}

		*field = duration
	}

	return config, nil
}
