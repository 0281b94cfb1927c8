// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// FILENAME is the name of the configuration file searched for.
const FILENAME = "bcedit.toml"

// Config holds the editor configuration.
type Config struct {
	Verify   Verify   `toml:"verify"`
	Keybinds Keybinds `toml:"keybinds"`
	Blocks   Blocks   `toml:"blocks"`
	Log      Log      `toml:"log"`
	// Directory the configuration was loaded from (if any).
	Dir string `toml:"-"`
}

// Verify configures verification.
type Verify struct {
	// Verify automatically after every edit.
	OnEdit bool `toml:"on-edit"`
	// Maximum number of characters of a failure message to show.
	MaxMessage uint `toml:"max-message"`
}

// Keybinds configures the copy/paste key bindings.
type Keybinds struct {
	Active bool   `toml:"active"`
	Copy   string `toml:"copy"`
	Paste  string `toml:"paste"`
}

// Blocks configures the saved block library.
type Blocks struct {
	Path string `toml:"path"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Verify:   Verify{OnEdit: true, MaxMessage: 120},
		Keybinds: Keybinds{Active: true, Copy: "c", Paste: "v"},
		Blocks:   Blocks{Path: filepath.Join(".bcedit", "blocks.db")},
		Log:      Log{Level: "info"},
	}
}

// Load reads the configuration file from a given directory.  Settings absent
// from the file retain their defaults.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FILENAME))
}

// LoadFile reads a given configuration file.  Settings absent from the file
// retain their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	//
	cfg := Default()
	//
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	//
	if cfg.Dir, err = filepath.Abs(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	//
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	//
	return cfg, nil
}

// FindAndLoad searches for a configuration file starting from a given
// directory and walking up through its parents.  If none is found, the default
// configuration is returned.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	//
	for {
		path := filepath.Join(dir, FILENAME)
		if _, err := os.Stat(path); err == nil {
			log.Debugf("using configuration %s", path)
			return Load(dir)
		}
		//
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		//
		dir = parent
	}
}

// BlocksPath returns the path of the block library, resolved against the
// directory of the configuration file when relative.
func (c *Config) BlocksPath() string {
	if filepath.IsAbs(c.Blocks.Path) || c.Dir == "" {
		return c.Blocks.Path
	}
	//
	return filepath.Join(c.Dir, c.Blocks.Path)
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	//
	return level
}
