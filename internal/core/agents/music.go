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

// This file implements the music agent, a thin layer over the Lyria client
// that writes the generated track to a local WAV file so the assembly
// pipeline can consume it directly.
package agents

import (
	"context"
	"fmt"
	"os"
)

// MusicComposer is the generation contract the music agent depends on,
// satisfied by cloud.LyriaClient in production.
type MusicComposer interface {
	GenerateMusic(ctx context.Context, prompt string, negativePrompt string) ([]byte, error)
}

// MusicAgent composes instrumental background tracks.
type MusicAgent struct {
	composer MusicComposer
}

// NewMusicAgent is the constructor for the music agent.
func NewMusicAgent(composer MusicComposer) *MusicAgent {
	return &MusicAgent{composer: composer}
}

// Compose generates a track for the prompt and writes it to a temp WAV file.
//
// Inputs:
//   - ctx: The context for the request.
//   - prompt: The music description from the collateral.
//
// Outputs:
//   - string: Path of the written WAV file. The caller owns its lifecycle.
//   - error: An error when generation or the write fails.
func (a *MusicAgent) Compose(ctx context.Context, prompt string) (string, error) {
	audio, err := a.composer.GenerateMusic(ctx, prompt, "")
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "artisan-music-*.wav")
	if err != nil {
		return "", fmt.Errorf("creating music file: %w", err)
	}
	if _, err := f.Write(audio); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("writing music file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing music file: %w", err)
	}
	return f.Name(), nil
}
