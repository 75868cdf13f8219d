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

// This file tests the final upload command: the assembled reel lands in the
// output bucket under a name derived from the first input clip, and the
// resulting gs:// URI is published for the run record.
package commands_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/commands"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
	test "github.com/jaycherian/gcp-go-artisan-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGCSFileUploadPublishesURI verifies a successful upload: the object key
// carries the first clip's base name, and the emitted URI points at it.
func TestGCSFileUploadPublishesURI(t *testing.T) {
	final, err := test.WriteTempMedia("upload-final")
	require.NoError(t, err)
	defer func() { _ = os.Remove(final) }()

	store := test.NewMemoryObjectStore()
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(cor.CtxIn, final)
	chainCtx.Add(commands.AssemblyRequestKey, &model.AssemblyRequest{
		Videos: []string{"gs://clips/run-7/opening.mp4"},
	})

	cmd := commands.NewGCSFileUpload("assembly-upload", store, "collateral-out")
	cmd.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	uri, ok := chainCtx.Get(commands.OutputURIKey).(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(uri, "gs://collateral-out/opening_final_"))
	assert.True(t, strings.HasSuffix(uri, ".mp4"))

	uploads := store.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "collateral-out/"+strings.TrimPrefix(uri, "gs://collateral-out/"), uploads[0])
}

// TestGCSFileUploadRequiresFinalVideo verifies that the command fails when no
// composed video reached the context.
func TestGCSFileUploadRequiresFinalVideo(t *testing.T) {
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(commands.AssemblyRequestKey, &model.AssemblyRequest{Videos: []string{"a.mp4"}})

	cmd := commands.NewGCSFileUpload("assembly-upload", test.NewMemoryObjectStore(), "collateral-out")
	cmd.Execute(chainCtx)

	require.True(t, chainCtx.HasErrors())
	assert.ErrorIs(t, chainCtx.GetErrors()["assembly-upload"], model.ErrInsufficientInput)
}
