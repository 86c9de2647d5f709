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
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/maze/pkg/referee"
)

const FilePermissions = 0755

var (
	Directory = filepath.Join(xdg.DataHome, "maze")

	ResultsDirectory = filepath.Join(Directory, "results")

	EnvFile = filepath.Join(Directory, ".env")
)

func TryMkdir(dir string) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		_ = os.MkdirAll(dir, FilePermissions)
	}
}

func TryCreate(file string, data []byte) {
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		_ = os.WriteFile(file, data, FilePermissions)
	}
}

// SaveOutcome writes the outcome of a game to <dir>/<id>.yaml and
// returns the path of the file.
func SaveOutcome(dir string, outcome referee.Outcome) (string, error) {
	if outcome.ID == "" {
		return "", fmt.Errorf("common: outcome has no id")
	}

	TryMkdir(dir)

	data, err := yaml.Marshal(outcome)
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, outcome.ID+".yaml")
	return file, os.WriteFile(file, data, FilePermissions)
}

func LoadOutcome(file string) (referee.Outcome, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return referee.Outcome{}, err
	}

	var outcome referee.Outcome
	err = yaml.Unmarshal(data, &outcome)
	return outcome, err
}

// LoadYAML decodes a yaml file into v.
func LoadYAML(file string, v any) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, v)
}
