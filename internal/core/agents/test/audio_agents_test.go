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

// This file tests the music and speech agents against fake backends: the
// generated audio must land in a temp file, and the configured voice must
// reach the synthesis call.
package agents_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/agents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeComposer is an in-memory agents.MusicComposer.
type fakeComposer struct {
	audio  []byte
	err    error
	prompt string
}

func (f *fakeComposer) GenerateMusic(_ context.Context, prompt string, _ string) ([]byte, error) {
	f.prompt = prompt
	return f.audio, f.err
}

// fakeNarrator is an in-memory agents.Narrator.
type fakeNarrator struct {
	audio []byte
	err   error
	text  string
	voice string
}

func (f *fakeNarrator) Synthesize(_ context.Context, text string, voice string) ([]byte, error) {
	f.text = text
	f.voice = voice
	return f.audio, f.err
}

// TestMusicAgentWritesTrack verifies that the composed audio is written to a
// WAV temp file owned by the caller.
func TestMusicAgentWritesTrack(t *testing.T) {
	composer := &fakeComposer{audio: []byte("wav bytes")}
	agent := agents.NewMusicAgent(composer)

	path, err := agent.Compose(context.Background(), "warm acoustic guitar")
	require.NoError(t, err)
	defer func() { _ = os.Remove(path) }()

	assert.Equal(t, "warm acoustic guitar", composer.prompt)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "wav bytes", string(data))
}

// TestMusicAgentPropagatesFailure verifies that a backend failure surfaces
// without leaving a file behind.
func TestMusicAgentPropagatesFailure(t *testing.T) {
	agent := agents.NewMusicAgent(&fakeComposer{err: errors.New("quota exhausted")})
	path, err := agent.Compose(context.Background(), "anything")
	assert.Error(t, err)
	assert.Empty(t, path)
}

// TestSpeechAgentUsesConfiguredVoice verifies that the voice from the model
// configuration reaches the synthesis call and the audio lands on disk.
func TestSpeechAgentUsesConfiguredVoice(t *testing.T) {
	narrator := &fakeNarrator{audio: []byte("narration bytes")}
	agent := agents.NewSpeechAgent(narrator, cloud.GenerationModel{Voice: "en-US-Neural2-F"})

	path, err := agent.Narrate(context.Background(), "From branch to basket.")
	require.NoError(t, err)
	defer func() { _ = os.Remove(path) }()

	assert.Equal(t, "en-US-Neural2-F", narrator.voice)
	assert.Equal(t, "From branch to basket.", narrator.text)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "narration bytes", string(data))
}
