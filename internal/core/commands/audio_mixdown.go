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

// This file defines the command that mixes the music and voiceover tracks
// onto the composed reel, steered by the request's natural-language volume
// directive.
//
// Logic Flow:
//  1. Receive the composed video's path from the context input.
//  2. Parse the request's volume directive into channel gains and fade style.
//  3. Hand the video plus optional audio tracks to the media processor.
//  4. Record the gains and the applied fade in the context, register the
//     mixed file for cleanup, and pass its path onward.
package commands

import (
	"fmt"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/media"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// AudioMixdown is a command implementation that overlays the audio tracks and
// applies the volume directive.
type AudioMixdown struct {
	cor.BaseCommand
	processor media.MediaProcessor
}

// NewAudioMixdown is the constructor for creating a new AudioMixdown command.
//
// Inputs:
//   - name: A string name for this command instance, used for logging and telemetry.
//   - processor: The media processor that renders the mix.
//
// Outputs:
//   - *AudioMixdown: A pointer to the newly instantiated command.
func NewAudioMixdown(name string, processor media.MediaProcessor) *AudioMixdown {
	return &AudioMixdown{BaseCommand: *cor.NewBaseCommand(name), processor: processor}
}

// Execute mixes the audio tracks into the reel and emits the final local path.
//
// Inputs:
//   - context: The shared cor.Context for this workflow execution.
func (c *AudioMixdown) Execute(context cor.Context) {
	video, ok := context.Get(c.GetInputParam()).(string)
	if !ok || video == "" {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("no composed video in context: %w", model.ErrInsufficientInput))
		return
	}
	request, _ := context.Get(AssemblyRequestKey).(*model.AssemblyRequest)
	resolved, _ := context.Get(ResolvedInputsKey).(*ResolvedInputs)
	if request == nil || resolved == nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("assembly state missing from context: %w", model.ErrInsufficientInput))
		return
	}

	directive := media.ParseDirective(request.Directive)
	context.Add(VolumeGainsKey, directive.Gains)

	output, applied, err := c.processor.Mix(
		context.GetContext(), video, resolved.Music, resolved.Voiceover,
		directive.Gains, directive.Fade)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), err)
		return
	}
	if output != video {
		context.AddTempFile(output)
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(AppliedFadeKey, applied)
	context.Add(c.GetOutputParam(), output)
}
