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

// This file tests the manifest reader: a GCS object-finalize notification is
// resolved into the assembly request stored in the named object, media writes
// are skipped quietly, and a missing or empty manifest fails the command.
package commands_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/commands"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
	test "github.com/jaycherian/gcp-go-artisan-studio/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newNotificationContext seeds a context with a GCS notification for the
// given object, the way the Pub/Sub listener delivers it.
func newNotificationContext(t *testing.T, bucket, name, contentType string) cor.Context {
	t.Helper()
	payload, err := json.Marshal(&cloud.GCSPubSubNotification{
		Kind:        "storage#object",
		Bucket:      bucket,
		Name:        name,
		ContentType: contentType,
	})
	require.NoError(t, err)

	out := cor.NewBaseContext()
	out.SetContext(context.Background())
	out.Add(cor.CtxIn, string(payload))
	return out
}

// TestManifestReaderLoadsRequest verifies the happy path: the notification's
// object is fetched and parsed into the request that seeds the pipeline.
func TestManifestReaderLoadsRequest(t *testing.T) {
	manifest, err := json.Marshal(&model.AssemblyRequest{
		Videos:    []string{"gs://clips/run-5/a.mp4", "gs://clips/run-5/b.mp4"},
		Directive: "soft music",
		RunID:     "run-5",
	})
	require.NoError(t, err)
	store := test.NewMemoryObjectStore()
	store.Put("drops", "requests/run-5.json", manifest)

	chainCtx := newNotificationContext(t, "drops", "requests/run-5.json", "application/json")
	cmd := commands.NewAssemblyManifestReader("assembly-manifest-reader", store)
	cmd.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors())
	request, ok := chainCtx.Get(commands.AssemblyRequestKey).(*model.AssemblyRequest)
	require.True(t, ok)
	assert.Equal(t, "run-5", request.RunID)
	assert.Len(t, request.Videos, 2)

	obj, ok := chainCtx.Get(cloud.GetGCSObjectName()).(*cloud.GCSObject)
	require.True(t, ok)
	assert.Equal(t, "drops", obj.Bucket)
	assert.Equal(t, "requests/run-5.json", obj.Name)
}

// TestManifestReaderSkipsMediaObjects verifies that a notification for a
// non-manifest write ends the chain cleanly: no error, no request.
func TestManifestReaderSkipsMediaObjects(t *testing.T) {
	chainCtx := newNotificationContext(t, "drops", "clips/opening.mp4", "video/mp4")
	cmd := commands.NewAssemblyManifestReader("assembly-manifest-reader", test.NewMemoryObjectStore())
	cmd.Execute(chainCtx)

	require.False(t, chainCtx.HasErrors(), "media writes must ack, not redeliver")
	assert.Nil(t, chainCtx.Get(cor.CtxOut))
	assert.Nil(t, chainCtx.Get(commands.AssemblyRequestKey))
}

// TestManifestReaderMissingManifest verifies that a notification naming an
// object the store cannot serve fails the command.
func TestManifestReaderMissingManifest(t *testing.T) {
	chainCtx := newNotificationContext(t, "drops", "requests/gone.json", "application/json")
	cmd := commands.NewAssemblyManifestReader("assembly-manifest-reader", test.NewMemoryObjectStore())
	cmd.Execute(chainCtx)

	require.True(t, chainCtx.HasErrors())
	assert.ErrorIs(t, chainCtx.GetErrors()["assembly-manifest-reader"], model.ErrNotFound)
}

// TestManifestReaderRejectsEmptyManifest verifies that a manifest without
// video clips never reaches the pipeline.
func TestManifestReaderRejectsEmptyManifest(t *testing.T) {
	store := test.NewMemoryObjectStore()
	store.Put("drops", "requests/empty.json", []byte(`{"directive": "no music"}`))

	chainCtx := newNotificationContext(t, "drops", "requests/empty.json", "application/json")
	cmd := commands.NewAssemblyManifestReader("assembly-manifest-reader", store)
	cmd.Execute(chainCtx)

	require.True(t, chainCtx.HasErrors())
	assert.ErrorIs(t, chainCtx.GetErrors()["assembly-manifest-reader"], model.ErrInsufficientInput)
}
