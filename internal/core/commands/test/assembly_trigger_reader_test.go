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

// This file tests the Pub/Sub trigger reader: a well-formed payload becomes
// an assembly request, and malformed or empty payloads fail the command.
package commands_test

import (
	"context"
	"testing"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/commands"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
	test "github.com/jaycherian/gcp-go-artisan-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTriggerContext builds a cor.Context carrying a raw message payload.
func newTriggerContext(payload interface{}) cor.Context {
	out := cor.NewBaseContext()
	out.SetContext(context.Background())
	out.Add(cor.CtxIn, payload)
	return out
}

// TestTriggerReaderParsesRequest verifies that the sample trigger payload
// parses into a complete assembly request.
func TestTriggerReaderParsesRequest(t *testing.T) {
	chainCtx := newTriggerContext(test.GetTestAssemblyMessageText())
	cmd := commands.NewAssemblyTriggerReader("trigger-reader")
	cmd.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	request, ok := chainCtx.Get(commands.AssemblyRequestKey).(*model.AssemblyRequest)
	require.True(t, ok)
	assert.Equal(t, "run-test-0001", request.RunID)
	assert.Len(t, request.Videos, 2)
	assert.Equal(t, "clear voice, soft music", request.Directive)
	assert.NotEmpty(t, request.Music)
	assert.NotEmpty(t, request.Voiceover)
}

// TestTriggerReaderRejectsNonString verifies that a payload of the wrong type
// fails rather than panics.
func TestTriggerReaderRejectsNonString(t *testing.T) {
	chainCtx := newTriggerContext(42)
	cmd := commands.NewAssemblyTriggerReader("trigger-reader")
	cmd.Execute(chainCtx)
	assert.True(t, chainCtx.HasErrors())
}

// TestTriggerReaderRejectsMalformedJSON verifies the unmarshal failure path.
func TestTriggerReaderRejectsMalformedJSON(t *testing.T) {
	chainCtx := newTriggerContext("{not json")
	cmd := commands.NewAssemblyTriggerReader("trigger-reader")
	cmd.Execute(chainCtx)
	assert.True(t, chainCtx.HasErrors())
}

// TestTriggerReaderRejectsEmptyVideoList verifies that a request without
// clips is refused with the insufficient-input sentinel.
func TestTriggerReaderRejectsEmptyVideoList(t *testing.T) {
	chainCtx := newTriggerContext(`{"videos": [], "directive": "soft music"}`)
	cmd := commands.NewAssemblyTriggerReader("trigger-reader")
	cmd.Execute(chainCtx)

	require.True(t, chainCtx.HasErrors())
	assert.ErrorIs(t, chainCtx.GetErrors()["trigger-reader"], model.ErrInsufficientInput)
}
