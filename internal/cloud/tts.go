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

// This file implements a minimal client for the Cloud Text-to-Speech REST
// API, used to synthesize the narration voiceover. It mirrors the Lyria
// client's shape: authenticate with Application Default Credentials, POST a
// JSON payload, and decode the base64 audio out of the response.
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

const ttsEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// TextToSpeechClient synthesizes narration audio from text.
type TextToSpeechClient struct {
	endpoint    string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

type ttsRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name,omitempty"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

type ttsResponse struct {
	AudioContent string `json:"audioContent"`
}

// NewTextToSpeechClient builds a synthesis client on Application Default
// Credentials.
func NewTextToSpeechClient(ctx context.Context) (*TextToSpeechClient, error) {
	ts, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("resolving default credentials: %w", err)
	}
	return &TextToSpeechClient{
		endpoint:    ttsEndpoint,
		tokenSource: ts,
		httpClient:  http.DefaultClient,
	}, nil
}

// Synthesize renders the narration text with the named voice and returns the
// audio bytes as LINEAR16 WAV, the format the mixdown stage expects.
//
// Inputs:
//   - ctx: Bounds the HTTP request.
//   - text: The narration script.
//   - voice: A Cloud TTS voice name (e.g. "en-US-Neural2-D"); empty selects
//     the service default for en-US.
//
// Outputs:
//   - []byte: The synthesized audio.
//   - error: An error when the request fails or returns no audio.
func (c *TextToSpeechClient) Synthesize(ctx context.Context, text string, voice string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("narration text is required")
	}

	var payload ttsRequest
	payload.Input.Text = text
	payload.Voice.LanguageCode = "en-US"
	payload.Voice.Name = voice
	payload.AudioConfig.AudioEncoding = "LINEAR16"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding synthesis request: %w", err)
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
		return nil, fmt.Errorf("calling speech service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading synthesis response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech service returned %s: %s", resp.Status, raw)
	}

	var parsed ttsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decoding synthesis response: %w", err)
	}
	if parsed.AudioContent == "" {
		return nil, fmt.Errorf("synthesis returned no audio")
	}
	audio, err := base64.StdEncoding.DecodeString(parsed.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decoding audio content: %w", err)
	}
	return audio, nil
}
