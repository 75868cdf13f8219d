// Copyright 2025 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package test provides utility functions and mock data to support the
// application's test suite. It sets up a consistent test environment, loads
// the test-specific configuration, and supplies sample trigger payloads for
// the assembly workflow.
package test

import (
	"log"
	"os"
	"testing"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
)

// StateManager acts as a simple in-memory cache for the application
// configuration during test runs, so the TOML files are parsed once per
// test binary instead of once per test.
type StateManager struct {
	config *cloud.Config
}

// state holds the singleton StateManager for the package.
var state = &StateManager{}

// HandleErr fails the current test when err is non-nil. A convenience helper
// to cut down on boilerplate error checks in tests.
//
// Inputs:
//   - err: The error to check.
//   - t: The *testing.T object from the current test.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("Error reading config file: %v", err)
	}
}

// GetTestAssemblyMessageText returns a hardcoded JSON string that simulates
// the Pub/Sub payload that triggers a video assembly run: a list of clips
// plus optional narration, music, and a plain-language volume directive.
//
// Returns:
//   - A string containing the JSON payload of an assembly request.
func GetTestAssemblyMessageText() string {
	return `{
  "run_id": "run-test-0001",
  "videos": [
    "gs://artisan_collateral_resources/veo/run-test-0001/clip_0.mp4",
    "gs://artisan_collateral_resources/veo/run-test-0001/clip_1.mp4"
  ],
  "voiceover": "gs://artisan_collateral_resources/narration/run-test-0001.wav",
  "music": "gs://artisan_collateral_resources/music/run-test-0001.wav",
  "directive": "clear voice, soft music"
}`
}

// SetupOS configures the environment variables that the configuration loader
// depends on, directing it at the test configuration files (e.g.
// `configs/.env.test.toml`) rather than production or development ones.
//
// Returns:
//   - An error if setting any environment variable fails.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	// The loader reads ".env.test.toml" for overrides when the runtime is
	// "test".
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration. The TOML
// files are loaded on first use and cached in the package-level state for
// every later call.
//
// Returns:
//   - A pointer to the loaded and cached cloud.Config struct.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}
