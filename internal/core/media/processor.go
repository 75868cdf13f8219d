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

// Package media implements the video-assembly engine: duration probing,
// crossfade concatenation, and the audio mixdown stage. The MediaProcessor
// interface in this file is the seam between the workflow commands and the
// external tool; the production implementation shells out to ffmpeg
// (ffmpeg.go), and tests substitute a fake so the pipeline's ordering and
// cleanup behavior can be verified without rendering a frame.
package media

import (
	"context"
	"math"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// Kind distinguishes audio from video inputs when probing durations, because
// the two carry different fallback defaults.
type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

// Probe fallback durations in seconds. A failed probe degrades the trim and
// fade heuristics but must never abort a run.
const (
	DefaultAudioDuration = 30.0
	DefaultVideoDuration = 15.0
)

// Transition describes the timed crossfade inserted between adjacent clips.
// The audio crossfade reuses DurationSeconds.
type Transition struct {
	Type            string  // ffmpeg xfade transition name, e.g. "fade".
	DurationSeconds float64 // Length of the overlap window.
	OffsetSeconds   float64 // Offset into the leading clip where the fade begins.
}

// DefaultTransition returns the standard fade used by the promotional reel.
func DefaultTransition() Transition {
	return Transition{Type: "fade", DurationSeconds: 2, OffsetSeconds: 5}
}

// FadeStyle selects how aggressively the music fades out near the tail. The
// ratio scales with the effective music duration and the cap bounds the
// absolute window length, so a ten-second jingle and a three-minute bed both
// end gracefully.
type FadeStyle struct {
	Ratio      float64 // Fraction of the effective music duration.
	CapSeconds float64 // Absolute upper bound on the fade window.
}

// Fade styles keyed by the directive's fade keywords. The caps mirror the
// ratio: a longer requested fade also earns a longer absolute allowance.
var (
	FadeDefault  = FadeStyle{Ratio: 0.3, CapSeconds: 5.0}
	FadeDramatic = FadeStyle{Ratio: 0.4, CapSeconds: 8.0}
	FadeQuick    = FadeStyle{Ratio: 0.2, CapSeconds: 2.0}
)

// FadeWindow computes the fade-out window for a music track of the given
// effective (post-trim) duration. When the track is shorter than the smallest
// meaningful fade the zero FadeSpec is returned and the caller skips the fade
// filter entirely; a fade must never be longer than the clip it ends.
func FadeWindow(effectiveDuration float64, style FadeStyle) model.FadeSpec {
	duration := math.Min(style.CapSeconds, effectiveDuration*style.Ratio)
	if effectiveDuration <= duration || duration <= 0 {
		return model.FadeSpec{}
	}
	return model.FadeSpec{
		StartSeconds:    math.Max(0, effectiveDuration-duration),
		DurationSeconds: duration,
	}
}

// MediaProcessor abstracts the external media tool behind the three
// operations the pipeline needs. Implementations must be safe for concurrent
// use by independent runs.
type MediaProcessor interface {
	// Duration returns the length of a local media file in seconds. It never
	// fails: probe errors are logged and the kind's default is returned.
	Duration(ctx context.Context, path string, kind Kind) float64

	// Concatenate folds the ordered clip list into one video, inserting the
	// transition between each adjacent pair. It returns the final output path
	// plus every file it created (intermediates and output) so the caller can
	// register them for cleanup. One input is returned unchanged with no new
	// files; zero inputs fail with model.ErrInsufficientInput; a failed fold
	// step fails with model.ErrTransitionFailed.
	Concatenate(ctx context.Context, videos []string, transition Transition) (output string, created []string, err error)

	// Mix trims the optional music and voiceover tracks to the video's
	// duration, applies the gains and the music fade-out, mixes the audio
	// streams down, and muxes the result onto the unmodified video stream.
	// Empty music and voice paths mean the track is absent; with neither
	// present the input video is returned unchanged with no new files.
	// Failures wrap model.ErrMixdownFailed.
	Mix(ctx context.Context, video, music, voice string, gains model.VolumeGains, fade FadeStyle) (output string, applied model.FadeSpec, err error)
}
