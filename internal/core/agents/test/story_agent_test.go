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

// Package agents_test contains unit tests for the generation agents. This
// file tests the story agent's parsing contract: the structured JSON the
// model returns must decode into complete collateral, and incomplete
// responses must be rejected.
package agents_test

import (
	"encoding/json"
	"testing"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/agents"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseCollateral verifies that the example collateral round-trips
// through the parser, FAQs included.
func TestParseCollateral(t *testing.T) {
	raw, err := json.Marshal(model.GetExampleCollateral())
	require.NoError(t, err)

	collateral, err := agents.ParseCollateral(string(raw))
	require.NoError(t, err)
	assert.Equal(t, "Handwoven Juniper Basket", collateral.ProductName)
	assert.NotEmpty(t, collateral.Story)
	assert.NotEmpty(t, collateral.Narration)
	assert.NotEmpty(t, collateral.MusicPrompt)
	require.Len(t, collateral.FAQs, 2)
	assert.NotEmpty(t, collateral.FAQs[0].Question)
	assert.NotEmpty(t, collateral.FAQs[0].Answer)
}

// TestParseCollateralRejectsMalformedJSON verifies the unmarshal error path.
func TestParseCollateralRejectsMalformedJSON(t *testing.T) {
	_, err := agents.ParseCollateral("not json at all")
	assert.Error(t, err)
}

// TestParseCollateralRequiresStory verifies that syntactically valid JSON
// without a story is refused: every downstream asset derives from the story,
// so an empty one means the generation failed.
func TestParseCollateralRequiresStory(t *testing.T) {
	_, err := agents.ParseCollateral(`{"product_name": "Bowl", "story": ""}`)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing story")
}
