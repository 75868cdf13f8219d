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

// Package model_test contains unit tests for the data models defined in the
// model package. This file tests MediaLocation parsing: local paths, gs://
// URIs, and the malformed shapes that must be rejected before any I/O.
package model_test

import (
	"testing"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
	"github.com/stretchr/testify/assert"
)

// TestParseLocationLocal verifies that a plain filesystem path parses as a
// local location and renders back unchanged.
func TestParseLocationLocal(t *testing.T) {
	loc, err := model.ParseLocation("/tmp/clips/opening.mp4")
	assert.NoError(t, err)
	assert.False(t, loc.IsRemote())
	assert.Equal(t, "/tmp/clips/opening.mp4", loc.Path)
	assert.Equal(t, "/tmp/clips/opening.mp4", loc.URI())
}

// TestParseLocationRemote verifies that a gs:// URI splits into bucket and
// object and that URI() reassembles the original string.
func TestParseLocationRemote(t *testing.T) {
	loc, err := model.ParseLocation("gs://artisan_collateral_resources/veo/run-1/clip_0.mp4")
	assert.NoError(t, err)
	assert.True(t, loc.IsRemote())
	assert.Equal(t, "artisan_collateral_resources", loc.Bucket)
	assert.Equal(t, "veo/run-1/clip_0.mp4", loc.Object)
	assert.Equal(t, "gs://artisan_collateral_resources/veo/run-1/clip_0.mp4", loc.URI())
}

// TestParseLocationRejectsMalformed verifies the up-front validation: empty
// strings and gs:// URIs missing their bucket or object segment all fail with
// ErrInvalidLocation.
func TestParseLocationRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "gs://", "gs://bucket-only", "gs://bucket-only/", "gs:///object.mp4"} {
		_, err := model.ParseLocation(raw)
		assert.ErrorIs(t, err, model.ErrInvalidLocation, "input %q", raw)
	}
}

// TestParseLocations verifies that a slice parse fails on the first malformed
// entry and succeeds when every entry is valid.
func TestParseLocations(t *testing.T) {
	locs, err := model.ParseLocations([]string{"gs://bucket/a.mp4", "/local/b.mp4"})
	assert.NoError(t, err)
	assert.Len(t, locs, 2)
	assert.True(t, locs[0].IsRemote())
	assert.False(t, locs[1].IsRemote())

	_, err = model.ParseLocations([]string{"gs://bucket/a.mp4", "gs://broken"})
	assert.ErrorIs(t, err, model.ErrInvalidLocation)
}
