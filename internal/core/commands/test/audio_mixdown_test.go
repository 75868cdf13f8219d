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

// This file tests the mixdown command: the volume directive is parsed once
// per run, the derived gains reach the processor, and the mixed output is
// registered for cleanup only when a new file was actually rendered.
package commands_test

import (
	"context"
	"testing"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/commands"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/media"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
	test "github.com/jaycherian/gcp-go-artisan-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMixdownContext builds a context in the state the mixdown command finds
// after compose: the reel path as input plus the request and resolved inputs.
func newMixdownContext(video string, request *model.AssemblyRequest, resolved *commands.ResolvedInputs) cor.Context {
	out := cor.NewBaseContext()
	out.SetContext(context.Background())
	out.Add(cor.CtxIn, video)
	out.Add(commands.AssemblyRequestKey, request)
	out.Add(commands.ResolvedInputsKey, resolved)
	return out
}

// TestAudioMixdownAppliesDirective verifies that the directive's gains reach
// the processor and are published for the run record.
func TestAudioMixdownAppliesDirective(t *testing.T) {
	processor := &test.ScriptedProcessor{}
	chainCtx := newMixdownContext("/tmp/reel.mp4",
		&model.AssemblyRequest{Videos: []string{"a.mp4"}, Music: "gs://b/music.wav", Directive: "clear voice, soft music"},
		&commands.ResolvedInputs{Videos: []string{"/tmp/a.mp4"}, Music: "/tmp/music.wav"})

	cmd := commands.NewAudioMixdown("audio-mixdown", processor)
	cmd.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	require.Len(t, processor.MixCalls, 1)
	call := processor.MixCalls[0]
	assert.Equal(t, "/tmp/reel.mp4", call.Video)
	assert.Equal(t, "/tmp/music.wav", call.Music)
	assert.Equal(t, 1.2, call.Gains.Voiceover)
	assert.Equal(t, 0.2, call.Gains.Music)
	assert.Equal(t, 0.3, call.Gains.Video)

	gains, ok := chainCtx.Get(commands.VolumeGainsKey).(model.VolumeGains)
	require.True(t, ok)
	assert.Equal(t, call.Gains, gains)

	// The fade window the mix applied is published alongside the gains. With
	// the probe defaults the effective music length is the 15s video, and the
	// window never exceeds 40% of it.
	applied, ok := chainCtx.Get(commands.AppliedFadeKey).(model.FadeSpec)
	require.True(t, ok)
	assert.True(t, applied.Applied())
	assert.Equal(t, media.FadeWindow(media.DefaultVideoDuration, media.FadeDefault), applied)
	assert.LessOrEqual(t, applied.DurationSeconds, 0.4*media.DefaultVideoDuration)

	// A real mix was rendered, so the output is tracked for cleanup.
	output, _ := chainCtx.Get(cor.CtxOut).(string)
	assert.Contains(t, chainCtx.GetTempFiles(), output)
	chainCtx.Close()
}

// TestAudioMixdownPassthrough verifies that with no music and no narration
// the reel passes through untouched and nothing new is tracked for cleanup.
func TestAudioMixdownPassthrough(t *testing.T) {
	processor := &test.ScriptedProcessor{}
	chainCtx := newMixdownContext("/tmp/reel.mp4",
		&model.AssemblyRequest{Videos: []string{"a.mp4"}},
		&commands.ResolvedInputs{Videos: []string{"/tmp/a.mp4"}})

	cmd := commands.NewAudioMixdown("audio-mixdown", processor)
	cmd.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	assert.Equal(t, "/tmp/reel.mp4", chainCtx.Get(cor.CtxOut))
	assert.Empty(t, chainCtx.GetTempFiles())
}

// TestAudioMixdownReportsFailure verifies that a processor failure is
// recorded against the command.
func TestAudioMixdownReportsFailure(t *testing.T) {
	processor := &test.ScriptedProcessor{MixErr: model.ErrMixdownFailed}
	chainCtx := newMixdownContext("/tmp/reel.mp4",
		&model.AssemblyRequest{Videos: []string{"a.mp4"}, Music: "gs://b/music.wav"},
		&commands.ResolvedInputs{Videos: []string{"/tmp/a.mp4"}, Music: "/tmp/music.wav"})

	cmd := commands.NewAudioMixdown("audio-mixdown", processor)
	cmd.Execute(chainCtx)

	require.True(t, chainCtx.HasErrors())
	assert.ErrorIs(t, chainCtx.GetErrors()["audio-mixdown"], model.ErrMixdownFailed)
}
