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

// Package commands_test contains unit tests for the individual pipeline
// commands. This file tests input resolution: local paths are validated in
// place, gs:// inputs are downloaded to tracked temporary files, and missing
// inputs fail the command with the right sentinel.
package commands_test

import (
	"context"
	"os"
	"testing"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/commands"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
	test "github.com/jaycherian/gcp-go-artisan-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCommandContext builds a cor.Context carrying the given assembly request
// as the command's primary input.
func newCommandContext(request *model.AssemblyRequest) cor.Context {
	out := cor.NewBaseContext()
	out.SetContext(context.Background())
	out.Add(cor.CtxIn, request)
	return out
}

// TestResolveInputsLocalFiles verifies that existing local paths resolve in
// place, with no temporary files created.
func TestResolveInputsLocalFiles(t *testing.T) {
	clip, err := test.WriteTempMedia("resolve-local")
	require.NoError(t, err)
	defer func() { _ = os.Remove(clip) }()

	chainCtx := newCommandContext(&model.AssemblyRequest{Videos: []string{clip}})
	cmd := commands.NewResolveInputs("resolve-inputs", test.NewMemoryObjectStore())
	cmd.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	resolved, ok := chainCtx.Get(commands.ResolvedInputsKey).(*commands.ResolvedInputs)
	require.True(t, ok)
	assert.Equal(t, []string{clip}, resolved.Videos)
	assert.Empty(t, chainCtx.GetTempFiles())
}

// TestResolveInputsDownloadsRemote verifies that a gs:// input is downloaded
// into a temporary file that is both resolved and registered for cleanup.
func TestResolveInputsDownloadsRemote(t *testing.T) {
	store := test.NewMemoryObjectStore()
	store.Put("clips", "run-1/opening.mp4", []byte("remote clip bytes"))

	chainCtx := newCommandContext(&model.AssemblyRequest{Videos: []string{"gs://clips/run-1/opening.mp4"}})
	cmd := commands.NewResolveInputs("resolve-inputs", store)
	cmd.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	resolved := chainCtx.Get(commands.ResolvedInputsKey).(*commands.ResolvedInputs)
	require.Len(t, resolved.Videos, 1)

	data, err := os.ReadFile(resolved.Videos[0])
	require.NoError(t, err)
	assert.Equal(t, "remote clip bytes", string(data))
	assert.Contains(t, chainCtx.GetTempFiles(), resolved.Videos[0])

	chainCtx.Close()
	_, err = os.Stat(resolved.Videos[0])
	assert.True(t, os.IsNotExist(err))
}

// TestResolveInputsMissingLocalFile verifies the sentinel for a local path
// that does not exist.
func TestResolveInputsMissingLocalFile(t *testing.T) {
	chainCtx := newCommandContext(&model.AssemblyRequest{Videos: []string{"/nonexistent/clip.mp4"}})
	cmd := commands.NewResolveInputs("resolve-inputs", test.NewMemoryObjectStore())
	cmd.Execute(chainCtx)

	require.True(t, chainCtx.HasErrors())
	assert.ErrorIs(t, chainCtx.GetErrors()["resolve-inputs"], model.ErrInputNotFound)
}

// TestResolveInputsMissingRemoteObject verifies that a gs:// input absent
// from the store maps onto the same sentinel as a missing local file.
func TestResolveInputsMissingRemoteObject(t *testing.T) {
	chainCtx := newCommandContext(&model.AssemblyRequest{Videos: []string{"gs://clips/missing.mp4"}})
	cmd := commands.NewResolveInputs("resolve-inputs", test.NewMemoryObjectStore())
	cmd.Execute(chainCtx)

	require.True(t, chainCtx.HasErrors())
	assert.ErrorIs(t, chainCtx.GetErrors()["resolve-inputs"], model.ErrInputNotFound)
}

// TestResolveInputsParsesBeforeDownloading verifies that one malformed
// reference fails the whole command up front: the well-formed remote clip is
// never downloaded.
func TestResolveInputsParsesBeforeDownloading(t *testing.T) {
	store := test.NewMemoryObjectStore()
	store.Put("clips", "good.mp4", []byte("remote clip bytes"))

	chainCtx := newCommandContext(&model.AssemblyRequest{
		Videos: []string{"gs://clips/good.mp4"},
		Music:  "gs://bucket-only",
	})
	cmd := commands.NewResolveInputs("resolve-inputs", store)
	cmd.Execute(chainCtx)

	require.True(t, chainCtx.HasErrors())
	assert.ErrorIs(t, chainCtx.GetErrors()["resolve-inputs"], model.ErrInvalidLocation)
	assert.Empty(t, chainCtx.GetTempFiles(), "nothing downloads when any reference is malformed")
}

// TestResolveInputsRejectsEmptyRequest verifies that a request without clips
// fails before any I/O.
func TestResolveInputsRejectsEmptyRequest(t *testing.T) {
	chainCtx := newCommandContext(&model.AssemblyRequest{})
	cmd := commands.NewResolveInputs("resolve-inputs", test.NewMemoryObjectStore())
	cmd.Execute(chainCtx)

	require.True(t, chainCtx.HasErrors())
	assert.ErrorIs(t, chainCtx.GetErrors()["resolve-inputs"], model.ErrInsufficientInput)
}
