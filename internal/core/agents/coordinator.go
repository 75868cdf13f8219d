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

// This file implements the coordinator, which sequences the specialist agents
// into one full collateral run: write the story, then render images, compose
// music, and narrate in parallel, then animate the product clip, and finally
// hand everything to the assembly pipeline.
//
// The coordinator degrades rather than aborts: a failed music track or image
// batch is logged and dropped, because a reel without background music is
// still deliverable collateral. Only a failed story stops the run, since
// every other asset derives from it.
package agents

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"text/template"

	"github.com/google/uuid"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// Assembler is the video-assembly contract the coordinator hands its finished
// assets to, satisfied by workflow.VideoAssemblyWorkflow.
type Assembler interface {
	Assemble(ctx context.Context, request *model.AssemblyRequest) model.PipelineResult
}

// CollateralRequest is one full generation order.
type CollateralRequest struct {
	ProductName string // The artisan's name for the product.
	Description string // The raw product description.
	ImageURI    string // gs:// URI of the uploaded product photo.
	Directive   string // Natural-language volume directive for the final mix.
}

// Coordinator runs the specialist agents in order and assembles the result.
type Coordinator struct {
	story    *StoryAgent
	image    *ImageAgent
	video    *VideoAgent
	music    *MusicAgent
	speech   *SpeechAgent
	assemble Assembler
	store    cloud.ObjectStore
	bucket   string                // Output bucket receiving images and rendered clips.
	prompts  cloud.PromptTemplates // Optional overrides for the image and video briefs.
}

// NewCoordinator wires the specialist agents together.
//
// Inputs:
//   - story, image, video, music, speech: The specialist agents.
//   - assemble: The assembly pipeline entry point.
//   - store: The blob store for publishing generated images.
//   - outputBucket: The bucket receiving generated collateral.
//   - prompts: Prompt templates from configuration; empty image or video
//     entries fall back to the built-in briefs.
//
// Outputs:
//   - *Coordinator: A pointer to the newly instantiated coordinator.
func NewCoordinator(
	story *StoryAgent,
	image *ImageAgent,
	video *VideoAgent,
	music *MusicAgent,
	speech *SpeechAgent,
	assemble Assembler,
	store cloud.ObjectStore,
	outputBucket string,
	prompts cloud.PromptTemplates) *Coordinator {
	return &Coordinator{
		story:    story,
		image:    image,
		video:    video,
		music:    music,
		speech:   speech,
		assemble: assemble,
		store:    store,
		bucket:   outputBucket,
		prompts:  prompts,
	}
}

// GenerateCollateral runs one full collateral order.
//
// Inputs:
//   - ctx: Bounds the entire run.
//   - request: The product, its photo, and the mix directive.
//
// Outputs:
//   - *model.CollateralResult: The text collateral, published image URIs, and
//     the video pipeline's outcome. Partial asset failures are reflected in
//     the result, not returned as errors.
//   - error: Only when the story itself cannot be generated.
func (c *Coordinator) GenerateCollateral(ctx context.Context, request *CollateralRequest) (*model.CollateralResult, error) {
	collateral, err := c.story.Generate(ctx, request.ProductName, request.Description)
	if err != nil {
		return nil, fmt.Errorf("story generation: %w", err)
	}

	result := &model.CollateralResult{Collateral: collateral}
	runID := uuid.NewString()

	// Images, music, and narration derive independently from the story, so
	// they render in parallel. Each failure degrades its own asset only.
	var (
		wg            sync.WaitGroup
		musicPath     string
		narrationPath string
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		uris, err := c.publishImages(ctx, collateral, runID)
		if err != nil {
			slog.Warn("image generation skipped", "product", collateral.ProductName, "error", err)
			return
		}
		result.Images = uris
	}()
	go func() {
		defer wg.Done()
		if collateral.MusicPrompt == "" {
			return
		}
		path, err := c.music.Compose(ctx, collateral.MusicPrompt)
		if err != nil {
			slog.Warn("music composition skipped", "product", collateral.ProductName, "error", err)
			return
		}
		musicPath = path
	}()
	go func() {
		defer wg.Done()
		if collateral.Narration == "" {
			return
		}
		path, err := c.speech.Narrate(ctx, collateral.Narration)
		if err != nil {
			slog.Warn("narration skipped", "product", collateral.ProductName, "error", err)
			return
		}
		narrationPath = path
	}()
	wg.Wait()

	// Locally rendered tracks feed the assembly and are removed after it.
	defer removeIfSet(musicPath)
	defer removeIfSet(narrationPath)

	clipURI, err := c.video.Generate(ctx,
		c.videoPrompt(collateral),
		request.ImageURI,
		fmt.Sprintf("%s%s/veo/%s/", model.GCSScheme, c.bucket, runID))
	if err != nil {
		result.Video = model.PipelineResult{
			Status: model.StatusFor(err),
			Detail: err.Error(),
		}
		return result, nil
	}

	result.Video = c.assemble.Assemble(ctx, &model.AssemblyRequest{
		Videos:    []string{clipURI},
		Voiceover: narrationPath,
		Music:     musicPath,
		Directive: request.Directive,
		RunID:     runID,
	})
	return result, nil
}

// publishImages renders the product shots and uploads each to the output
// bucket, returning their gs:// URIs.
func (c *Coordinator) publishImages(ctx context.Context, collateral *model.Collateral, runID string) ([]string, error) {
	images, err := c.image.Generate(ctx, c.imagePrompt(collateral))
	if err != nil {
		return nil, err
	}

	var uris []string
	for i, img := range images {
		ext := ".png"
		if img.MIMEType == "image/jpeg" {
			ext = ".jpg"
		}
		object := fmt.Sprintf("images/%s/shot_%d%s", runID, i+1, ext)

		f, err := os.CreateTemp("", "artisan-image-*"+ext)
		if err != nil {
			return uris, err
		}
		path := f.Name()
		_, writeErr := f.Write(img.Bytes)
		closeErr := f.Close()
		if writeErr != nil || closeErr != nil {
			_ = os.Remove(path)
			return uris, fmt.Errorf("staging image %d: write=%v close=%v", i+1, writeErr, closeErr)
		}

		err = c.store.Upload(ctx, c.bucket, object, path, img.MIMEType)
		_ = os.Remove(path)
		if err != nil {
			return uris, err
		}
		uris = append(uris, fmt.Sprintf("%s%s/%s", model.GCSScheme, c.bucket, object))
	}
	return uris, nil
}

// imagePrompt frames the story as a photography brief, preferring the
// configured template when one is set.
func (c *Coordinator) imagePrompt(collateral *model.Collateral) string {
	if rendered, ok := renderPrompt(c.prompts.ImagePrompt, collateral); ok {
		return rendered
	}
	return fmt.Sprintf(
		"Professional product photography of %s. %s Styled scene, natural light, shallow depth of field.",
		collateral.ProductName, collateral.Story)
}

// videoPrompt frames the story as a short motion brief for the product clip.
func (c *Coordinator) videoPrompt(collateral *model.Collateral) string {
	if rendered, ok := renderPrompt(c.prompts.VideoPrompt, collateral); ok {
		return rendered
	}
	return fmt.Sprintf(
		"Slow cinematic camera move over %s, showing the craftsmanship in detail. %s",
		collateral.ProductName, collateral.Tagline)
}

// renderPrompt executes a configured prompt template against the collateral.
// A missing or malformed template reports false so the caller can fall back
// to the built-in brief.
func renderPrompt(tmplText string, collateral *model.Collateral) (string, bool) {
	if tmplText == "" {
		return "", false
	}
	tmpl, err := template.New("prompt").Parse(tmplText)
	if err != nil {
		slog.Warn("invalid prompt template, using built-in brief", "error", err)
		return "", false
	}
	params := map[string]string{
		"PRODUCT_NAME": collateral.ProductName,
		"STORY":        collateral.Story,
		"HISTORY":      collateral.History,
		"TAGLINE":      collateral.Tagline,
	}
	var buffer bytes.Buffer
	if err := tmpl.Execute(&buffer, params); err != nil {
		slog.Warn("prompt template execution failed, using built-in brief", "error", err)
		return "", false
	}
	return buffer.String(), true
}

func removeIfSet(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove generated track", "path", path, "error", err)
	}
}
