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

// This file implements the video agent, which animates product clips with
// Veo. Video generation is a long-running operation on the Vertex side; the
// agent polls the operation handle until it completes or the caller's
// deadline expires, so a slow render surfaces as a timeout rather than a
// hang.
package agents

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// veoPollInterval is how often the agent checks a pending video operation.
const veoPollInterval = 10 * time.Second

// VideoAgent animates short product clips with a Veo model, seeded from a
// product image.
type VideoAgent struct {
	client *genai.Client
	model  cloud.GenerationModel
}

// NewVideoAgent is the constructor for the video agent.
//
// Inputs:
//   - client: The shared genai client.
//   - model: The configured Veo model, aspect ratio, and generation timeout.
//
// Outputs:
//   - *VideoAgent: A pointer to the newly instantiated agent.
func NewVideoAgent(client *genai.Client, model cloud.GenerationModel) *VideoAgent {
	return &VideoAgent{client: client, model: model}
}

// Generate animates one clip from the prompt and the product image at the
// given GCS URI, returning the gs:// URI of the rendered video.
//
// Inputs:
//   - ctx: The context for the request; the configured generation timeout is
//     applied on top of it.
//   - prompt: The motion description for the clip.
//   - imageURI: gs:// URI of the seed image, or empty for text-only generation.
//   - outputURI: gs:// prefix where Veo should write the rendered clip.
//
// Outputs:
//   - string: The gs:// URI of the generated video.
//   - error: model.ErrTimeout when the operation outlives its deadline, or
//     the underlying failure otherwise.
func (a *VideoAgent) Generate(ctx context.Context, prompt string, imageURI string, outputURI string) (string, error) {
	timeout := 10 * time.Minute
	if a.model.TimeoutInSeconds > 0 {
		timeout = time.Duration(a.model.TimeoutInSeconds) * time.Second
	}
	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var image *genai.Image
	if imageURI != "" {
		image = &genai.Image{GCSURI: imageURI}
	}
	config := &genai.GenerateVideosConfig{
		OutputGCSURI: outputURI,
	}
	if a.model.AspectRatio != "" {
		config.AspectRatio = a.model.AspectRatio
	}

	op, err := a.client.Models.GenerateVideos(genCtx, a.model.Model, prompt, image, config)
	if err != nil {
		return "", fmt.Errorf("starting video generation: %w", err)
	}

	for !op.Done {
		select {
		case <-genCtx.Done():
			return "", fmt.Errorf("%w: video generation exceeded %s", model.ErrTimeout, timeout)
		case <-time.After(veoPollInterval):
		}
		op, err = a.client.Operations.GetVideosOperation(genCtx, op, nil)
		if err != nil {
			return "", fmt.Errorf("polling video generation: %w", err)
		}
		slog.Debug("video generation pending", "operation", op.Name)
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return "", fmt.Errorf("video model returned no videos")
	}
	video := op.Response.GeneratedVideos[0].Video
	if video == nil || video.URI == "" {
		return "", fmt.Errorf("video model returned an empty candidate")
	}
	return video.URI, nil
}
