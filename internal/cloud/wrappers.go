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

// This file implements a decorator around the Generative AI client that adds
// rate limiting and a retry mechanism, so the collateral agents stay inside
// Vertex AI quota and survive transient API failures without each caller
// reimplementing that logic.
//
// Structs:
//   - QuotaAwareGenerativeAIModel: Wraps a model handle plus its generation
//     config behind a token-bucket rate limiter.
//
// Functions:
//   - NewQuotaAwareModel: Constructor for the wrapper.
//   - GenerateContent: Intercepts calls to the AI model to enforce rate
//     limiting and retries.
package cloud

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// QuotaAwareGenerativeAIModel decorates a genai model handle with a rate
// limiter. All generation calls for one logical model share one limiter so
// concurrent pipeline runs cannot collectively exceed the model's quota.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig // Generation parameters applied to every call.
	ModelName               string
	ModelHandle             *genai.Models
	RateLimit               rate.Limiter // Token bucket controlling request frequency.
}

// NewQuotaAwareModel creates a new QuotaAwareGenerativeAIModel from the base
// model handle and a rate limit in requests per second.
//
// Inputs:
//   - wrapped: The generation config to apply on every call.
//   - name: The model name, e.g. "gemini-2.0-flash".
//   - modelHandle: The genai models client used to issue requests.
//   - requestsPerSecond: The maximum number of API calls allowed per second.
//
// Outputs:
//   - *QuotaAwareGenerativeAIModel: A pointer to the newly created wrapper.
func NewQuotaAwareModel(wrapped *genai.GenerateContentConfig, name string, modelHandle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: wrapped,
		ModelName:               name,
		ModelHandle:             modelHandle,
		// Bucket refills one token per second with a burst of requestsPerSecond.
		RateLimit: *rate.NewLimiter(rate.Every(time.Second/1), requestsPerSecond),
	}
}

// GenerateContent issues a generation request through the rate limiter.
//
// Logic flow:
//  1. Check the rate limiter.
//  2. If a request is allowed, call the model; on failure consult the retry
//     count carried in the context, back off, and try again up to the cap.
//  3. If a request is not allowed, pause briefly and re-queue.
//
// Inputs:
//   - ctx: The context for the request. It also carries retry state.
//   - content: The multi-modal prompt (text, images, file references).
//
// Outputs:
//   - *genai.GenerateContentResponse: The response from the AI model if successful.
//   - error: An error if the request fails after all retries.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (resp *genai.GenerateContentResponse, err error) {
	if q.RateLimit.Allow() {
		resp, err = q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerativeContentConfig)
		if err != nil {
			retryCount, ok := ctx.Value("retry").(int)
			if !ok {
				retryCount = 0
			}
			if retryCount > 3 {
				return nil, errors.New("failed generation on max retries")
			}
			errCtx := context.WithValue(ctx, "retry", retryCount+1)
			// Give the service time to recover before retrying.
			time.Sleep(time.Minute * 1)
			return q.ModelHandle.GenerateContent(errCtx, q.ModelName, content, q.GenerativeContentConfig)
		}
		return resp, err
	}
	// Rate limited: pause, then re-queue this request.
	time.Sleep(time.Second * 5)
	return q.GenerateContent(ctx, content)
}
