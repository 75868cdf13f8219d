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

// This file tests the transient pipeline types: the error-to-status mapping
// at the workflow boundary, the fade specification, and the run record
// constructor.
package model_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
	"github.com/stretchr/testify/assert"
)

// TestStatusFor verifies the mapping from the pipeline's sentinel errors to
// terminal status strings, including wrapped errors.
func TestStatusFor(t *testing.T) {
	assert.Equal(t, model.StatusSuccess, model.StatusFor(nil))
	assert.Equal(t, model.StatusTimeout, model.StatusFor(model.ErrTimeout))
	assert.Equal(t, model.StatusFailed, model.StatusFor(model.ErrInsufficientInput))
	assert.Equal(t, model.StatusFailed, model.StatusFor(model.ErrInvalidLocation))
	assert.Equal(t, model.StatusFailed, model.StatusFor(model.ErrInputNotFound))
	assert.Equal(t, model.StatusError, model.StatusFor(model.ErrTransitionFailed))
	assert.Equal(t, model.StatusError, model.StatusFor(model.ErrMixdownFailed))

	// Wrapping must not change the classification.
	wrapped := fmt.Errorf("resolve-inputs: %w", model.ErrInputNotFound)
	assert.Equal(t, model.StatusFailed, model.StatusFor(wrapped))
}

// TestDefaultVolumeGains verifies the baseline mix when no directive is given.
func TestDefaultVolumeGains(t *testing.T) {
	gains := model.DefaultVolumeGains()
	assert.Equal(t, 0.3, gains.Video)
	assert.Equal(t, 0.4, gains.Music)
	assert.Equal(t, 1.0, gains.Voiceover)
}

// TestFadeSpecApplied verifies that only a spec with a positive duration
// counts as an applied fade.
func TestFadeSpecApplied(t *testing.T) {
	assert.False(t, model.FadeSpec{}.Applied())
	assert.True(t, model.FadeSpec{StartSeconds: 25, DurationSeconds: 5}.Applied())
}

// TestNewRunRecord verifies the constructor: a supplied run ID is kept, an
// empty one is replaced with a fresh UUID, and the creation timestamp is set
// to the current time.
func TestNewRunRecord(t *testing.T) {
	record := model.NewRunRecord("run-42")
	assert.Equal(t, "run-42", record.RunID)
	assert.WithinDuration(t, time.Now(), record.CreateDate, time.Second)

	generated := model.NewRunRecord("")
	assert.NotEmpty(t, generated.RunID)
	assert.NotEqual(t, record.RunID, generated.RunID)
}
