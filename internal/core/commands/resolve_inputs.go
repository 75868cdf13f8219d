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

// This file defines the command that turns an assembly request's mixed bag of
// input references (gs:// URIs and local paths) into local files ffmpeg can
// read.
//
// Logic Flow:
//  1. Receive the *model.AssemblyRequest from the context input.
//  2. Parse every video, voiceover, and music reference into a MediaLocation.
//  3. Download each remote object to a temporary file, registering the file
//     with the context so the workflow's cleanup removes it.
//  4. Validate that each local path exists; a missing input fails the run
//     with model.ErrInputNotFound before any media work begins.
//  5. Publish the ResolvedInputs to the context for the downstream stages.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// ResolveInputs is a command implementation that localizes every media input
// of an assembly request.
type ResolveInputs struct {
	cor.BaseCommand
	store cloud.ObjectStore // The blob store used to download remote inputs.
}

// NewResolveInputs is the constructor for creating a new ResolveInputs command.
//
// Inputs:
//   - name: A string name for this command instance, used for logging and telemetry.
//   - store: The blob store adapter for downloading gs:// inputs.
//
// Outputs:
//   - *ResolveInputs: A pointer to the newly instantiated command.
func NewResolveInputs(name string, store cloud.ObjectStore) *ResolveInputs {
	return &ResolveInputs{BaseCommand: *cor.NewBaseCommand(name), store: store}
}

// Execute localizes the request's inputs and publishes the resolved paths.
//
// Inputs:
//   - context: The shared cor.Context for this workflow execution.
func (c *ResolveInputs) Execute(context cor.Context) {
	request, ok := context.Get(c.GetInputParam()).(*model.AssemblyRequest)
	if !ok || request == nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("no assembly request in context: %w", model.ErrInsufficientInput))
		return
	}
	if len(request.Videos) == 0 {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("request carries no video clips: %w", model.ErrInsufficientInput))
		return
	}

	// Every reference parses before any download begins, so a malformed
	// address fails the run without leaving partial work behind.
	refs := append([]string(nil), request.Videos...)
	if request.Voiceover != "" {
		refs = append(refs, request.Voiceover)
	}
	if request.Music != "" {
		refs = append(refs, request.Music)
	}
	locations, err := model.ParseLocations(refs)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), err)
		return
	}

	resolved := &ResolvedInputs{}
	for _, loc := range locations[:len(request.Videos)] {
		path, err := c.localize(context, loc)
		if err != nil {
			c.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(c.GetName(), err)
			return
		}
		resolved.Videos = append(resolved.Videos, path)
	}
	next := len(request.Videos)
	if request.Voiceover != "" {
		path, err := c.localize(context, locations[next])
		if err != nil {
			c.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(c.GetName(), err)
			return
		}
		resolved.Voiceover = path
		next++
	}
	if request.Music != "" {
		path, err := c.localize(context, locations[next])
		if err != nil {
			c.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(c.GetName(), err)
			return
		}
		resolved.Music = path
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(AssemblyRequestKey, request)
	context.Add(ResolvedInputsKey, resolved)
	context.Add(c.GetOutputParam(), resolved)
}

// localize returns a local path for one parsed input location. Remote objects
// are streamed to a temp file owned by the context; local paths are validated
// in place and never copied.
func (c *ResolveInputs) localize(context cor.Context, loc model.MediaLocation) (string, error) {
	if !loc.IsRemote() {
		if _, err := os.Stat(loc.Path); err != nil {
			return "", fmt.Errorf("%q: %w", loc.Path, model.ErrInputNotFound)
		}
		return loc.Path, nil
	}

	// Keep the original extension so ffmpeg's format detection has a hint.
	pattern := "assembly-*" + filepath.Ext(loc.Object)
	tempFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("could not create temp file: %w", err)
	}
	context.AddTempFile(tempFile.Name())

	if err := c.store.Download(context.GetContext(), loc.Bucket, loc.Object, tempFile); err != nil {
		_ = tempFile.Close()
		if errors.Is(err, model.ErrNotFound) {
			return "", fmt.Errorf("%q: %w", loc.URI(), model.ErrInputNotFound)
		}
		return "", err
	}
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", tempFile.Name(), err)
	}
	return tempFile.Name(), nil
}
