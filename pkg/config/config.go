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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/consensys/go-padic/pkg/action"
	"github.com/consensys/go-padic/pkg/integrate"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/store"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is a run configuration, typically read from a YAML file and then
// overridden by command-line flags.
type Config struct {
	// Tables file describing the arithmetic group.
	Tables string `yaml:"tables"`
	// Relative precision cap of the p-adic ring.
	Cap int `yaml:"cap" validate:"gte=2"`
	// Number of moments carried by each distribution.
	Moments int `yaml:"moments" validate:"gte=2,ltefield=Cap"`
	// Target precision of lifts.
	Precision int `yaml:"precision" validate:"gte=1,ltefield=Cap"`
	// Integration method, either "moments" or "riemann_sum".
	Method string `yaml:"method" validate:"oneof=moments riemann_sum"`
	// Maximum number of concurrent lifts (0 means unbounded).
	Parallelism int          `yaml:"parallelism" validate:"gte=0"`
	Action      ActionConfig `yaml:"action"`
	Store       StoreConfig  `yaml:"store"`
}

// ActionConfig determines the weight-k action, apart from the weight which
// comes from the form acted upon.
type ActionConfig struct {
	Adjuster  string `yaml:"adjuster" validate:"oneof=standard tree adjugate"`
	DetTwist  int    `yaml:"det_twist"`
	ActOnLeft bool   `yaml:"act_on_left"`
	// Power of the Teichmüller character, if any.
	Teichmuller *int `yaml:"teichmuller"`
	CacheSize   int  `yaml:"cache_size" validate:"gte=0"`
}

// StoreConfig determines where results are persisted.  Nothing is persisted
// when neither a path is given nor an in-memory store requested.
type StoreConfig struct {
	Path       string `yaml:"path"`
	InMemory   bool   `yaml:"in_memory"`
	SyncWrites bool   `yaml:"sync_writes"`
}

var validate = validator.New()

// Default returns the configuration used in the absence of any file.
func Default() Config {
	return Config{
		Cap:       20,
		Moments:   10,
		Precision: 10,
		Method:    integrate.Moments.String(),
		Action:    ActionConfig{Adjuster: "standard"},
	}
}

// Load reads a configuration file, filling in defaults for anything it does
// not mention.
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	//
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return cfg, nil
}

// Parse a configuration from YAML.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	//
	return cfg, cfg.Validate()
}

// Validate checks the configuration is consistent.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// Ring returns the p-adic ring for a given prime at the configured cap.
func (c Config) Ring(prime uint64) (*padic.Ring, error) {
	return padic.NewRing(prime, c.Cap)
}

// IntegrationMethod returns the configured method of integration.
func (c Config) IntegrationMethod() (integrate.Method, error) {
	return integrate.ParseMethod(c.Method)
}

// ActionFor returns the configuration of the weight-k action.
func (c Config) ActionFor(weight int) (action.Config, error) {
	cfg := action.Config{
		Weight:    weight,
		DetTwist:  c.Action.DetTwist,
		ActOnLeft: c.Action.ActOnLeft,
		CacheSize: c.Action.CacheSize,
	}
	//
	switch c.Action.Adjuster {
	case "", "standard":
		cfg.Adjuster = action.Standard
	case "tree":
		cfg.Adjuster = action.Tree
	case "adjugate":
		cfg.Adjuster = action.Adjugate
	default:
		return action.Config{}, fmt.Errorf("unknown adjuster %q", c.Action.Adjuster)
	}
	//
	if c.Action.Teichmuller != nil {
		cfg.Character = action.TeichmullerCharacter{Power: *c.Action.Teichmuller}
	}
	//
	return cfg, nil
}

// StoreFor returns the configuration of the result store, or false if
// results are not to be persisted.
func (c Config) StoreFor() (store.Config, bool) {
	if c.Store.Path == "" && !c.Store.InMemory {
		return store.Config{}, false
	}
	//
	return store.Config{Path: c.Store.Path, InMemory: c.Store.InMemory, SyncWrites: c.Store.SyncWrites}, true
}
