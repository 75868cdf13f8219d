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

// Package services_test contains the test suite for the services package.
// This file tests the share service's URI validation, which rejects bad
// input before any signing is attempted.
package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/services"
	"github.com/zeebo/assert"
)

// TestGenerateSignedURLRejectsEmptyURI verifies the empty-input guard.
func TestGenerateSignedURLRejectsEmptyURI(t *testing.T) {
	s := &services.ShareService{}
	_, err := s.GenerateSignedURL(context.Background(), "", time.Minute)
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidLocation))
}

// TestGenerateSignedURLRejectsLocalPath verifies that only gs:// URIs can be
// shared; a local path never reaches the signer.
func TestGenerateSignedURLRejectsLocalPath(t *testing.T) {
	s := &services.ShareService{}
	_, err := s.GenerateSignedURL(context.Background(), "/tmp/final.mp4", time.Minute)
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidLocation))
}

// TestGenerateSignedURLRejectsBucketOnlyURI verifies that a gs:// URI missing
// its object segment is refused up front.
func TestGenerateSignedURLRejectsBucketOnlyURI(t *testing.T) {
	s := &services.ShareService{}
	_, err := s.GenerateSignedURL(context.Background(), "gs://bucket-only", time.Minute)
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidLocation))
}
