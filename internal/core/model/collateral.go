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

// Package model defines the core data structures for the application. This
// file holds the marketing-collateral shapes returned by the generation
// agents: the structured text package from the story agent and the aggregate
// result the coordinator hands back to the API layer.
package model

// FAQ is a single question-and-answer pair in the generated collateral.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Collateral is the structured text package produced by the story agent for
// one artisan product.
type Collateral struct {
	ProductName string `json:"product_name"`      // The product the collateral describes.
	Story       string `json:"story"`             // The narrative marketing story.
	History     string `json:"history"`           // The descriptive history of the craft.
	Narration   string `json:"narration"`         // A short script suitable for voice synthesis.
	MusicPrompt string `json:"music_prompt"`      // A prompt describing fitting background music.
	FAQs        []*FAQ `json:"faqs"`              // Frequently asked questions about the product.
	Tagline     string `json:"tagline,omitempty"` // Optional one-line hook.
}

// CollateralResult is the aggregate outcome of a full generation run: the text
// collateral, the refined image locations, and the assembled promotional
// video.
type CollateralResult struct {
	Collateral *Collateral    `json:"collateral"`       // The generated text package.
	Images     []string       `json:"images,omitempty"` // gs:// URIs of the refined product images.
	Video      PipelineResult `json:"video"`            // The outcome of the video assembly pipeline.
}
