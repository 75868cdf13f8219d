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

// Package agents implements the generative specialists that produce each kind
// of marketing collateral: the story writer, the image and video generators,
// the music composer, and the narrator. A coordinator sequences them into a
// full collateral run. Every agent takes its model dependencies through its
// constructor so tests can substitute fakes.
//
// This file implements the story agent, which turns an artisan's raw product
// description into the written collateral: the polished story, the craft
// history, the narration script, the music prompt, FAQs, and a tagline.
package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// StoryAgent generates the written collateral for a product using a
// rate-limited Gemini model and a configured prompt template.
type StoryAgent struct {
	generativeAIModel  *cloud.QuotaAwareGenerativeAIModel // The rate-limited generative model client.
	template           *template.Template                 // The Go template for building the prompt.
	inputTokenCounter  metric.Int64Counter                // OTel counter for input tokens.
	outputTokenCounter metric.Int64Counter                // OTel counter for output tokens.
	retryCounter       metric.Int64Counter                // OTel counter for retries.
}

// NewStoryAgent is the constructor for the story agent.
//
// Inputs:
//   - generativeAIModel: The rate-limited wrapper for the generative model client.
//   - promptTemplate: A parsed Go template for the story prompt. The template
//     receives PRODUCT_NAME, PRODUCT_DESCRIPTION, and EXAMPLE_JSON.
//
// Outputs:
//   - *StoryAgent: A pointer to the newly instantiated agent with telemetry
//     counters initialized.
func NewStoryAgent(generativeAIModel *cloud.QuotaAwareGenerativeAIModel, promptTemplate *template.Template) *StoryAgent {
	out := &StoryAgent{
		generativeAIModel: generativeAIModel,
		template:          promptTemplate,
	}
	meter := otel.Meter(cor.MeterNamespace)
	out.inputTokenCounter, _ = meter.Int64Counter("story-agent.gemini.token.input")
	out.outputTokenCounter, _ = meter.Int64Counter("story-agent.gemini.token.output")
	out.retryCounter, _ = meter.Int64Counter("story-agent.gemini.token.retry")
	return out
}

// Generate produces the written collateral for one product.
//
// Inputs:
//   - ctx: The context for the request.
//   - productName: The artisan's name for the product.
//   - description: The artisan's raw, unedited product description.
//
// Outputs:
//   - *model.Collateral: The parsed collateral.
//   - error: An error when prompting or parsing fails.
func (a *StoryAgent) Generate(ctx context.Context, productName string, description string) (*model.Collateral, error) {
	// Few-shot prompting: a complete well-formed example steers the model
	// toward valid JSON far more reliably than schema prose.
	example, err := json.Marshal(model.GetExampleCollateral())
	if err != nil {
		return nil, fmt.Errorf("marshaling example collateral: %w", err)
	}
	params := map[string]interface{}{
		"PRODUCT_NAME":        productName,
		"PRODUCT_DESCRIPTION": description,
		"EXAMPLE_JSON":        string(example),
	}

	var buffer bytes.Buffer
	if err := a.template.Execute(&buffer, params); err != nil {
		return nil, fmt.Errorf("failed to execute story prompt template: %w", err)
	}

	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: buffer.String()}}, Role: "user"},
	}
	raw, err := cloud.GenerateMultiModalResponse(ctx,
		a.inputTokenCounter, a.outputTokenCounter, a.retryCounter, 0,
		a.generativeAIModel, contents)
	if err != nil {
		return nil, fmt.Errorf("story generation failed: %w", err)
	}

	collateral, err := ParseCollateral(raw)
	if err != nil {
		return nil, err
	}
	if collateral.ProductName == "" {
		collateral.ProductName = productName
	}
	return collateral, nil
}

// ParseCollateral decodes the model's JSON response into a Collateral.
// Exposed separately so the parsing contract is testable without a model.
func ParseCollateral(raw string) (*model.Collateral, error) {
	var out model.Collateral
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse collateral response: %w", err)
	}
	if out.Story == "" {
		return nil, fmt.Errorf("collateral response missing story text")
	}
	return &out, nil
}
