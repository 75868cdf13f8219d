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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// FFmpegProcessor implements MediaProcessor by shelling out to the ffmpeg and
// ffprobe binaries. Every invocation runs under the caller's context so a
// pipeline deadline kills the subprocess rather than orphaning it.
//
// Intermediate files are created with os.CreateTemp and returned to the
// caller, which owns their lifecycle; the processor never deletes what it
// hands back.
type FFmpegProcessor struct {
	// FFmpegPath and FFprobePath allow tests and containers to point at
	// non-PATH binaries. Zero values fall back to the bare command names.
	FFmpegPath  string
	FFprobePath string
}

// NewFFmpegProcessor returns a processor that resolves ffmpeg and ffprobe
// from the PATH.
func NewFFmpegProcessor() *FFmpegProcessor {
	return &FFmpegProcessor{FFmpegPath: "ffmpeg", FFprobePath: "ffprobe"}
}

func (p *FFmpegProcessor) ffmpeg() string {
	if p.FFmpegPath != "" {
		return p.FFmpegPath
	}
	return "ffmpeg"
}

func (p *FFmpegProcessor) ffprobe() string {
	if p.FFprobePath != "" {
		return p.FFprobePath
	}
	return "ffprobe"
}

// probeFormat is the subset of ffprobe's JSON output we read. Duration comes
// back as a decimal string, not a number.
type probeFormat struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration probes the container duration of a local media file in seconds.
//
// Inputs:
//   - ctx: bounds the ffprobe subprocess.
//   - path: local filesystem path to the media file.
//   - kind: selects the fallback duration when probing fails.
//
// Outputs:
//   - float64: probed duration, or the kind's default when the probe fails
//     or reports nothing parseable. The failure is logged, never returned:
//     a bad probe degrades fade placement but must not abort a run.
func (p *FFmpegProcessor) Duration(ctx context.Context, path string, kind Kind) float64 {
	fallback := DefaultVideoDuration
	if kind == KindAudio {
		fallback = DefaultAudioDuration
	}

	cmd := exec.CommandContext(ctx, p.ffprobe(),
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path)
	out, err := cmd.Output()
	if err != nil {
		slog.Warn("ffprobe failed, using default duration",
			"path", path, "default", fallback, "error", err)
		return fallback
	}

	var probe probeFormat
	if err := json.Unmarshal(out, &probe); err != nil || probe.Format.Duration == "" {
		slog.Warn("ffprobe returned no duration, using default",
			"path", path, "default", fallback)
		return fallback
	}
	d, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		slog.Warn("ffprobe duration not numeric, using default",
			"path", path, "duration", probe.Format.Duration, "default", fallback)
		return fallback
	}
	return d
}

// Concatenate joins the video clips in order with a crossfade transition
// between each adjacent pair. The join is a left fold: clips[0] and clips[1]
// merge first, the result merges with clips[2], and so on, so N clips cost
// N-1 ffmpeg invocations.
//
// Inputs:
//   - ctx: bounds every ffmpeg subprocess.
//   - videos: ordered local paths. Must contain at least one entry.
//   - transition: crossfade type, duration, and per-pair offset.
//
// Outputs:
//   - output: path of the final joined file. For a single input this is the
//     input itself and no intermediates are created.
//   - created: every intermediate file written, final output included, in
//     creation order. The caller registers these for cleanup regardless of
//     error.
//   - err: ErrInsufficientInput for an empty slice, or ErrTransitionFailed
//     wrapping the ffmpeg failure with its captured stderr.
func (p *FFmpegProcessor) Concatenate(ctx context.Context, videos []string, transition Transition) (string, []string, error) {
	if len(videos) == 0 {
		return "", nil, fmt.Errorf("concatenate: %w: no video clips provided", model.ErrInsufficientInput)
	}
	if len(videos) == 1 {
		return videos[0], nil, nil
	}

	var created []string
	current := videos[0]
	for _, next := range videos[1:] {
		out, err := tempMediaFile("artisan-join-*.mp4")
		if err != nil {
			return "", created, err
		}
		created = append(created, out)

		filter := fmt.Sprintf(
			"[0:v][1:v]xfade=transition=%s:duration=%g:offset=%g[v];[0:a][1:a]acrossfade=d=%g[a]",
			transition.Type, transition.DurationSeconds, transition.OffsetSeconds,
			transition.DurationSeconds)
		args := []string{
			"-y", "-hide_banner",
			"-i", current,
			"-i", next,
			"-filter_complex", filter,
			"-map", "[v]",
			"-map", "[a]",
			"-c:a", "aac",
			"-f", "mp4",
			out,
		}
		if err := p.run(ctx, args, model.ErrTransitionFailed); err != nil {
			return "", created, fmt.Errorf("concatenate %q + %q: %w",
				current, next, err)
		}
		current = out
	}
	return current, created, nil
}

// Mix overlays the music and voiceover tracks onto the video's own audio and
// re-muxes without re-encoding the video stream. Either audio track may be
// empty; with neither present there is nothing to mix and the input video is
// returned untouched.
//
// Outputs:
//   - output: path of the mixed file, freshly created when any track was
//     mixed in.
//   - applied: the fade window actually written into the filter graph, zero
//     when no fade was added.
//   - err: ErrMixdownFailed wrapping the ffmpeg failure. The caller never
//     receives a path on failure, so the half-written output file is removed
//     before returning.
func (p *FFmpegProcessor) Mix(ctx context.Context, video, music, voice string, gains model.VolumeGains, fade FadeStyle) (string, model.FadeSpec, error) {
	if music == "" && voice == "" {
		return video, model.FadeSpec{}, nil
	}

	out, err := tempMediaFile("artisan-mix-*.mp4")
	if err != nil {
		return "", model.FadeSpec{}, err
	}

	videoDur := p.Duration(ctx, video, KindVideo)
	var musicDur float64
	if music != "" {
		musicDur = p.Duration(ctx, music, KindAudio)
	}

	plan := buildMixFilter(video, music, voice, gains, fade, videoDur, musicDur)

	if err := p.run(ctx, mixArgs(video, out, plan), model.ErrMixdownFailed); err != nil {
		_ = os.Remove(out)
		return "", model.FadeSpec{}, fmt.Errorf("mixdown of %q: %w", video, err)
	}
	return out, plan.fade, nil
}

// mixArgs assembles the ffmpeg invocation for a mix plan: the video stream is
// copied untouched, the filtered audio is re-encoded, and the voiceover-only
// mix is capped to the shortest input so narration cannot extend the reel.
func mixArgs(video, out string, plan mixPlan) []string {
	args := []string{"-y", "-hide_banner", "-i", video}
	for _, in := range plan.extraInputs {
		args = append(args, "-i", in)
	}
	args = append(args,
		"-filter_complex", plan.filter,
		"-map", "0:v",
		"-map", "[a]",
		"-c:v", "copy",
		"-c:a", "aac",
	)
	if plan.shortest {
		args = append(args, "-shortest")
	}
	return append(args, out)
}

// mixPlan is the assembled filter graph plus the extra ffmpeg inputs it
// references.
type mixPlan struct {
	extraInputs []string
	filter      string
	fade        model.FadeSpec
	shortest    bool // Cap the output to the shortest input stream.
}

// buildMixFilter constructs the amix filter graph. Split out from Mix so the
// graph shape is testable without invoking ffmpeg.
//
// Each audio source gets its own chain: the video track is leveled by its
// gain; the music track is trimmed to the video duration, leveled, and faded
// out over the window FadeWindow picks; the voiceover is trimmed and leveled.
// The chains feed amix with duration=first so the video's length governs.
func buildMixFilter(video, music, voice string, gains model.VolumeGains, fade FadeStyle, videoDur, musicDur float64) mixPlan {
	plan := mixPlan{}
	var chains []string
	var labels []string

	chains = append(chains, fmt.Sprintf("[0:a]volume=%g[va]", gains.Video))
	labels = append(labels, "[va]")

	input := 1
	if music != "" {
		plan.extraInputs = append(plan.extraInputs, music)
		effective := musicDur
		if videoDur < effective {
			effective = videoDur
		}
		chain := fmt.Sprintf("[%d:a]atrim=0:%g,volume=%g", input, videoDur, gains.Music)
		window := FadeWindow(effective, fade)
		if window.Applied() {
			chain += fmt.Sprintf(",afade=t=out:st=%g:d=%g",
				window.StartSeconds, window.DurationSeconds)
			plan.fade = window
		}
		chain += "[ma]"
		chains = append(chains, chain)
		labels = append(labels, "[ma]")
		input++
	}
	if voice != "" {
		plan.extraInputs = append(plan.extraInputs, voice)
		chains = append(chains, fmt.Sprintf("[%d:a]atrim=0:%g,volume=%g[na]",
			input, videoDur, gains.Voiceover))
		labels = append(labels, "[na]")
		// Without music the trim alone does not bound the container; cap the
		// output to the shortest stream.
		plan.shortest = music == ""
	}

	plan.filter = fmt.Sprintf("%s;%samix=inputs=%d:duration=first[a]",
		strings.Join(chains, ";"), strings.Join(labels, ""), len(labels))
	return plan
}

// run executes one ffmpeg invocation, capturing stderr into the error so
// pipeline failures carry the filter-graph diagnostics. A context expiry is
// surfaced as a timeout rather than the stage's own failure kind.
func (p *FFmpegProcessor) run(ctx context.Context, args []string, kind error) error {
	cmd := exec.CommandContext(ctx, p.ffmpeg(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	slog.Debug("invoking ffmpeg", "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: ffmpeg interrupted: %v", model.ErrTimeout, ctx.Err())
		}
		return fmt.Errorf("%w: %v: %s", kind, err, tail(stderr.String(), 2048))
	}
	return nil
}

// tempMediaFile creates and closes an empty temp file so ffmpeg can write to
// a stable path with -y.
func tempMediaFile(pattern string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("creating temp media file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("closing temp media file: %w", err)
	}
	return name, nil
}

// tail returns at most the last n bytes of s, keeping the most recent ffmpeg
// diagnostics when stderr is long.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
