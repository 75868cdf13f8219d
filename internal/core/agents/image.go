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

// This file implements the image agent, which renders refined product shots
// with Imagen. The agent works from the story text rather than the raw
// product photo: the marketing images show the product in styled scenes the
// story evokes.
package agents

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
)

// GeneratedImage is one rendered product shot.
type GeneratedImage struct {
	Bytes    []byte // The encoded image.
	MIMEType string // Usually "image/png".
}

// ImageAgent renders product imagery with an Imagen model.
type ImageAgent struct {
	client *genai.Client
	model  cloud.GenerationModel
}

// NewImageAgent is the constructor for the image agent.
//
// Inputs:
//   - client: The shared genai client.
//   - model: The configured Imagen model and its sampling parameters.
//
// Outputs:
//   - *ImageAgent: A pointer to the newly instantiated agent.
func NewImageAgent(client *genai.Client, model cloud.GenerationModel) *ImageAgent {
	return &ImageAgent{client: client, model: model}
}

// Generate renders the requested number of product shots for the prompt. The
// sample count comes from configuration; one image is the floor.
//
// Inputs:
//   - ctx: The context for the request.
//   - prompt: The scene description, typically derived from the story.
//
// Outputs:
//   - []GeneratedImage: The rendered images, at least one on success.
//   - error: An error when the model call fails or returns nothing.
func (a *ImageAgent) Generate(ctx context.Context, prompt string) ([]GeneratedImage, error) {
	count := a.model.SampleCount
	if count < 1 {
		count = 1
	}

	config := &genai.GenerateImagesConfig{
		NumberOfImages: int32(count),
	}
	if a.model.AspectRatio != "" {
		config.AspectRatio = a.model.AspectRatio
	}

	resp, err := a.client.Models.GenerateImages(ctx, a.model.Model, prompt, config)
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.GeneratedImages) == 0 {
		return nil, fmt.Errorf("image model returned no images")
	}

	out := make([]GeneratedImage, 0, len(resp.GeneratedImages))
	for _, img := range resp.GeneratedImages {
		if img.Image == nil || len(img.Image.ImageBytes) == 0 {
			continue
		}
		mime := img.Image.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		out = append(out, GeneratedImage{Bytes: img.Image.ImageBytes, MIMEType: mime})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("image model returned only empty candidates")
	}
	return out, nil
}
