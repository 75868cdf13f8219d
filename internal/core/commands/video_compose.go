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

// This file defines the command that joins the resolved video clips into one
// reel with crossfade transitions.
//
// Logic Flow:
//  1. Receive the *ResolvedInputs from the context input.
//  2. Fold the clips left to right through the media processor, which renders
//     one intermediate per adjacent pair.
//  3. Register every created file with the context; intermediates are cleanup
//     targets even when a later fold step fails.
//  4. Pass the joined video's path to the next command.
package commands

import (
	"fmt"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/media"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// VideoCompose is a command implementation that concatenates the request's
// video clips with timed transitions.
type VideoCompose struct {
	cor.BaseCommand
	processor  media.MediaProcessor // Renders the transition folds.
	transition media.Transition     // The crossfade applied between each pair.
}

// NewVideoCompose is the constructor for creating a new VideoCompose command.
//
// Inputs:
//   - name: A string name for this command instance, used for logging and telemetry.
//   - processor: The media processor that renders the joins.
//   - transition: The transition to insert between adjacent clips.
//
// Outputs:
//   - *VideoCompose: A pointer to the newly instantiated command.
func NewVideoCompose(name string, processor media.MediaProcessor, transition media.Transition) *VideoCompose {
	return &VideoCompose{
		BaseCommand: *cor.NewBaseCommand(name),
		processor:   processor,
		transition:  transition,
	}
}

// Execute joins the resolved clips and emits the reel's local path.
//
// Inputs:
//   - context: The shared cor.Context for this workflow execution.
func (c *VideoCompose) Execute(context cor.Context) {
	resolved, ok := context.Get(c.GetInputParam()).(*ResolvedInputs)
	if !ok || resolved == nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("no resolved inputs in context: %w", model.ErrInsufficientInput))
		return
	}

	output, created, err := c.processor.Concatenate(context.GetContext(), resolved.Videos, c.transition)
	// Track the intermediates first: a failed fold still leaves files behind.
	for _, f := range created {
		context.AddTempFile(f)
	}
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), err)
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(c.GetOutputParam(), output)
}
