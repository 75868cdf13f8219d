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

package media

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcatenateRejectsEmptyInput(t *testing.T) {
	p := NewFFmpegProcessor()
	_, created, err := p.Concatenate(context.Background(), nil, DefaultTransition())
	assert.ErrorIs(t, err, model.ErrInsufficientInput)
	assert.Empty(t, created)
}

func TestConcatenateSingleClipPassesThrough(t *testing.T) {
	p := NewFFmpegProcessor()
	out, created, err := p.Concatenate(context.Background(),
		[]string{"/tmp/only.mp4"}, DefaultTransition())
	assert.NoError(t, err)
	assert.Equal(t, "/tmp/only.mp4", out)
	assert.Empty(t, created, "no intermediates for a single clip")
}

func TestBuildMixFilterAllTracks(t *testing.T) {
	gains := model.VolumeGains{Video: 0.3, Music: 0.4, Voiceover: 1.0}
	plan := buildMixFilter("v.mp4", "m.wav", "n.wav", gains, FadeDefault, 30, 60)

	assert.Equal(t, []string{"m.wav", "n.wav"}, plan.extraInputs)
	assert.Contains(t, plan.filter, "[0:a]volume=0.3[va]")
	assert.Contains(t, plan.filter, "[1:a]atrim=0:30,volume=0.4")
	assert.Contains(t, plan.filter, "[2:a]atrim=0:30,volume=1[na]")
	assert.Contains(t, plan.filter, "amix=inputs=3:duration=first[a]")
}

func TestBuildMixFilterFadeWindow(t *testing.T) {
	gains := model.DefaultVolumeGains()

	// 60s music trimmed to a 30s video: fade duration is 30*0.3 = 9,
	// capped at 5, so the fade starts at 25.
	plan := buildMixFilter("v.mp4", "m.wav", "", gains, FadeDefault, 30, 60)
	assert.Contains(t, plan.filter, "afade=t=out:st=25:d=5")
	assert.True(t, plan.fade.Applied())
	assert.Equal(t, 25.0, plan.fade.StartSeconds)
	assert.Equal(t, 5.0, plan.fade.DurationSeconds)

	// Music shorter than the video still fades, proportionally: 4*0.3 = 1.2
	// starting at 2.8.
	plan = buildMixFilter("v.mp4", "m.wav", "", gains, FadeDefault, 30, 4)
	assert.Contains(t, plan.filter, "afade=t=out:st=2.8:d=1.2")
	assert.True(t, plan.fade.Applied())
}

func TestBuildMixFilterVoiceOnly(t *testing.T) {
	plan := buildMixFilter("v.mp4", "", "n.wav", model.DefaultVolumeGains(),
		FadeDefault, 15, 0)
	assert.Equal(t, []string{"n.wav"}, plan.extraInputs)
	assert.Contains(t, plan.filter, "[1:a]atrim=0:15,volume=1[na]",
		"narration is trimmed so it cannot extend past the video")
	assert.Contains(t, plan.filter, "amix=inputs=2:duration=first[a]")
	assert.True(t, plan.shortest, "voiceover-only mixes cap to the shortest stream")
}

func TestMixArgsShortestPlacement(t *testing.T) {
	gains := model.DefaultVolumeGains()

	voiceOnly := buildMixFilter("v.mp4", "", "n.wav", gains, FadeDefault, 15, 0)
	args := mixArgs("v.mp4", "/tmp/out.mp4", voiceOnly)
	require.Equal(t, "/tmp/out.mp4", args[len(args)-1], "output path is the final argument")
	assert.Contains(t, args, "-shortest")

	withMusic := buildMixFilter("v.mp4", "m.wav", "n.wav", gains, FadeDefault, 15, 60)
	assert.NotContains(t, mixArgs("v.mp4", "/tmp/out.mp4", withMusic), "-shortest",
		"the music trim already bounds the mix")
}

func TestBuildMixFilterVideoAudioOnly(t *testing.T) {
	gains := model.VolumeGains{Video: 0.0, Music: 0.4, Voiceover: 1.0}
	plan := buildMixFilter("v.mp4", "", "", gains, FadeDefault, 15, 0)
	assert.Empty(t, plan.extraInputs)
	assert.Contains(t, plan.filter, "[0:a]volume=0[va]")
	assert.Contains(t, plan.filter, "amix=inputs=1:duration=first[a]")
}

// TestMixFailureRemovesOutput forces the ffmpeg invocation to fail and checks
// that the output file created for the run does not survive: a failed mix
// returns no path, so the processor must reclaim the file itself.
func TestMixFailureRemovesOutput(t *testing.T) {
	p := &FFmpegProcessor{FFmpegPath: "/bin/false", FFprobePath: "/bin/false"}

	before, err := filepath.Glob(filepath.Join(os.TempDir(), "artisan-mix-*.mp4"))
	require.NoError(t, err)

	out, applied, mixErr := p.Mix(context.Background(),
		"/tmp/reel.mp4", "/tmp/music.wav", "", model.DefaultVolumeGains(), FadeDefault)
	require.Error(t, mixErr)
	assert.ErrorIs(t, mixErr, model.ErrMixdownFailed)
	assert.Empty(t, out)
	assert.False(t, applied.Applied())

	after, err := filepath.Glob(filepath.Join(os.TempDir(), "artisan-mix-*.mp4"))
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after, "the failed mix must not leave its output behind")
}

func TestFadeWindowStyles(t *testing.T) {
	// Dramatic: 40% of 30s is 12, capped at 8.
	w := FadeWindow(30, FadeDramatic)
	assert.Equal(t, 22.0, w.StartSeconds)
	assert.Equal(t, 8.0, w.DurationSeconds)

	// Quick: 20% of 30s is 6, capped at 2.
	w = FadeWindow(30, FadeQuick)
	assert.Equal(t, 28.0, w.StartSeconds)
	assert.Equal(t, 2.0, w.DurationSeconds)

	// Short clips still get a fade anchored at zero, not a negative start.
	w = FadeWindow(1.5, FadeQuick)
	assert.True(t, w.Applied())
	assert.GreaterOrEqual(t, w.StartSeconds, 0.0)
}
