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

// This file provides in-memory stand-ins for the pipeline's external
// dependencies: a blob store backed by a map and a media processor that
// records its calls instead of shelling out to ffmpeg. Both let the command
// and workflow tests verify ordering, error handling, and temp-file cleanup
// without touching the network or rendering a frame.
package test

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/media"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// MemoryObjectStore is an in-memory cloud.ObjectStore. Objects are keyed by
// "bucket/object". The zero value is not usable; call NewMemoryObjectStore.
type MemoryObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	uploads []string // "bucket/object" keys in upload order.
}

// NewMemoryObjectStore returns an empty in-memory store.
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{objects: make(map[string][]byte)}
}

// Put seeds an object so later Download calls can find it.
func (s *MemoryObjectStore) Put(bucket string, object string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+object] = data
}

// Uploads returns the "bucket/object" keys uploaded so far, in order.
func (s *MemoryObjectStore) Uploads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.uploads))
	copy(out, s.uploads)
	return out
}

// Download copies a seeded object to the writer, or reports
// model.ErrNotFound when the object was never Put.
func (s *MemoryObjectStore) Download(_ context.Context, bucket string, object string, w io.Writer) error {
	s.mu.Lock()
	data, ok := s.objects[bucket+"/"+object]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("object %s/%s: %w", bucket, object, model.ErrNotFound)
	}
	_, err := w.Write(data)
	return err
}

// Upload reads the local file into the store and records the destination key.
func (s *MemoryObjectStore) Upload(_ context.Context, bucket string, object string, path string, _ string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := bucket + "/" + object
	s.objects[key] = data
	s.uploads = append(s.uploads, key)
	return nil
}

// Exists reports whether the object has been Put or uploaded.
func (s *MemoryObjectStore) Exists(_ context.Context, bucket string, object string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[bucket+"/"+object]
	return ok, nil
}

// ScriptedProcessor is a media.MediaProcessor that fabricates outputs on the
// local filesystem and records every call, so tests can assert on fold order
// and mix parameters. Errors can be injected per operation.
type ScriptedProcessor struct {
	mu sync.Mutex

	Durations map[string]float64 // Optional per-path durations for Duration.

	ConcatenateErr error // When set, Concatenate fails with this error.
	MixErr         error // When set, Mix fails with this error.

	ConcatenateCalls [][]string // The video lists passed to Concatenate.
	MixCalls         []MixCall  // The arguments passed to Mix.
	CreatedFiles     []string   // Every file fabricated by Concatenate and Mix.
}

// MixCall captures one Mix invocation.
type MixCall struct {
	Video string
	Music string
	Voice string
	Gains model.VolumeGains
	Fade  media.FadeStyle
}

// Duration returns the scripted duration for the path, or the kind's default.
func (p *ScriptedProcessor) Duration(_ context.Context, path string, kind media.Kind) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d, ok := p.Durations[path]; ok {
		return d
	}
	if kind == media.KindAudio {
		return media.DefaultAudioDuration
	}
	return media.DefaultVideoDuration
}

// Concatenate records the call and fabricates an output file, mirroring the
// real processor's contract: one input passes through untouched, zero inputs
// are rejected, and every created file is reported to the caller.
func (p *ScriptedProcessor) Concatenate(_ context.Context, videos []string, _ media.Transition) (string, []string, error) {
	p.mu.Lock()
	p.ConcatenateCalls = append(p.ConcatenateCalls, append([]string(nil), videos...))
	err := p.ConcatenateErr
	p.mu.Unlock()

	if err != nil {
		return "", nil, err
	}
	if len(videos) == 0 {
		return "", nil, model.ErrInsufficientInput
	}
	if len(videos) == 1 {
		return videos[0], nil, nil
	}
	out, createErr := fabricateFile("scripted-join-*.mp4")
	if createErr != nil {
		return "", nil, createErr
	}
	p.mu.Lock()
	p.CreatedFiles = append(p.CreatedFiles, out)
	p.mu.Unlock()
	return out, []string{out}, nil
}

// Mix records the call and fabricates the mixed output. With no music and no
// voice the video passes through; on an injected failure the output file is
// fabricated and then removed, matching the real processor's contract that a
// failed mix returns no path and leaves no file.
func (p *ScriptedProcessor) Mix(ctx context.Context, video, music, voice string, gains model.VolumeGains, fade media.FadeStyle) (string, model.FadeSpec, error) {
	p.mu.Lock()
	p.MixCalls = append(p.MixCalls, MixCall{Video: video, Music: music, Voice: voice, Gains: gains, Fade: fade})
	err := p.MixErr
	p.mu.Unlock()

	if err != nil {
		if out, createErr := fabricateFile("scripted-mix-*.mp4"); createErr == nil {
			p.mu.Lock()
			p.CreatedFiles = append(p.CreatedFiles, out)
			p.mu.Unlock()
			_ = os.Remove(out)
		}
		return "", model.FadeSpec{}, err
	}
	if music == "" && voice == "" {
		return video, model.FadeSpec{}, nil
	}

	applied := model.FadeSpec{}
	if music != "" {
		effective := math.Min(
			p.Duration(ctx, music, media.KindAudio),
			p.Duration(ctx, video, media.KindVideo))
		applied = media.FadeWindow(effective, fade)
	}

	out, createErr := fabricateFile("scripted-mix-*.mp4")
	if createErr != nil {
		return "", model.FadeSpec{}, createErr
	}
	p.mu.Lock()
	p.CreatedFiles = append(p.CreatedFiles, out)
	p.mu.Unlock()
	return out, applied, nil
}

// fabricateFile creates a small real file so cleanup paths have something to
// delete.
func fabricateFile(pattern string) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	_, _ = f.WriteString("fabricated media")
	if err := f.Close(); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// WriteTempMedia creates a throwaway local media file for use as a pipeline
// input and returns its path. Callers own the file's removal.
func WriteTempMedia(prefix string) (string, error) {
	return fabricateFile(prefix + "-*.mp4")
}
