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

// This file implements a client for the Lyria music generation model. Lyria
// is not yet surfaced through the genai SDK, so the client speaks the Vertex
// AI :predict REST protocol directly, authenticating with Application Default
// Credentials.
//
// Structs:
//   - LyriaClient: Holds the resolved endpoint and token source.
//
// Functions:
//   - NewLyriaClient: Constructor resolving the regional prediction endpoint.
//   - GenerateMusic: Generates one instrumental track and returns its bytes.
package cloud

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// cloudPlatformScope is the OAuth scope required by the Vertex AI prediction
// endpoints.
const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// LyriaClient calls the Lyria music generation model through the Vertex AI
// prediction REST endpoint.
type LyriaClient struct {
	endpoint    string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

// lyriaRequest is the :predict payload. Seed and SampleCount are mutually
// exclusive per the model's documentation; the client only ever sets the
// sample count.
type lyriaRequest struct {
	Instances  []lyriaInstance `json:"instances"`
	Parameters lyriaParameters `json:"parameters"`
}

type lyriaInstance struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
}

type lyriaParameters struct {
	SampleCount int `json:"sample_count,omitempty"`
}

// lyriaResponse captures the prediction payload. Depending on the model
// revision the audio arrives under audioContent or bytesBase64Encoded.
type lyriaResponse struct {
	Predictions []struct {
		AudioContent       string `json:"audioContent"`
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

// NewLyriaClient builds a client for the given project, location, and model
// (e.g. "lyria-002"). Credentials come from the Application Default
// Credentials chain.
//
// Outputs:
//   - *LyriaClient: The configured client.
//   - error: An error when no default credentials are available.
func NewLyriaClient(ctx context.Context, project string, location string, model string) (*LyriaClient, error) {
	ts, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("resolving default credentials: %w", err)
	}
	return &LyriaClient{
		endpoint: fmt.Sprintf(
			"https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
			location, project, location, model),
		tokenSource: ts,
		httpClient:  http.DefaultClient,
	}, nil
}

// GenerateMusic requests one instrumental track for the prompt and returns
// the decoded WAV bytes.
//
// Inputs:
//   - ctx: Bounds the HTTP request.
//   - prompt: The music description, e.g. "warm acoustic folk, medium tempo".
//   - negativePrompt: Styles the track must avoid, or empty.
//
// Outputs:
//   - []byte: The raw audio content.
//   - error: An error when the request fails or the prediction carries no audio.
func (c *LyriaClient) GenerateMusic(ctx context.Context, prompt string, negativePrompt string) ([]byte, error) {
	if prompt == "" {
		return nil, fmt.Errorf("music prompt is required")
	}

	payload := lyriaRequest{
		Instances: []lyriaInstance{{
			Prompt:         prompt,
			NegativePrompt: negativePrompt,
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding music request: %w", err)
	}

	token, err := c.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("fetching access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling music model: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading music response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("music model returned %s: %s", resp.Status, raw)
	}

	var parsed lyriaResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decoding music response: %w", err)
	}
	if len(parsed.Predictions) == 0 {
		return nil, fmt.Errorf("no predictions returned by music model")
	}

	pred := parsed.Predictions[0]
	encoded := pred.AudioContent
	if encoded == "" {
		encoded = pred.BytesBase64Encoded
	}
	if encoded == "" {
		return nil, fmt.Errorf("prediction carries no audio content")
	}
	audio, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding audio content: %w", err)
	}
	return audio, nil
}
