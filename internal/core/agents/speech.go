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

// This file implements the speech agent, which narrates the collateral's
// script into a local WAV file for the mixdown stage.
package agents

import (
	"context"
	"fmt"
	"os"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
)

// Narrator is the synthesis contract the speech agent depends on, satisfied
// by cloud.TextToSpeechClient in production.
type Narrator interface {
	Synthesize(ctx context.Context, text string, voice string) ([]byte, error)
}

// SpeechAgent renders the narration voiceover.
type SpeechAgent struct {
	narrator Narrator
	model    cloud.GenerationModel
}

// NewSpeechAgent is the constructor for the speech agent.
//
// Inputs:
//   - narrator: The synthesis backend.
//   - model: Configuration carrying the voice name.
func NewSpeechAgent(narrator Narrator, model cloud.GenerationModel) *SpeechAgent {
	return &SpeechAgent{narrator: narrator, model: model}
}

// Narrate synthesizes the script and writes it to a temp WAV file.
//
// Inputs:
//   - ctx: The context for the request.
//   - script: The narration text from the collateral.
//
// Outputs:
//   - string: Path of the written WAV file. The caller owns its lifecycle.
//   - error: An error when synthesis or the write fails.
func (a *SpeechAgent) Narrate(ctx context.Context, script string) (string, error) {
	audio, err := a.narrator.Synthesize(ctx, script, a.model.Voice)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "artisan-narration-*.wav")
	if err != nil {
		return "", fmt.Errorf("creating narration file: %w", err)
	}
	if _, err := f.Write(audio); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("writing narration file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing narration file: %w", err)
	}
	return f.Name(), nil
}
