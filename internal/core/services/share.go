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

// This file defines the ShareService, which turns private gs:// URIs for
// finished collateral into secure, time-limited download URLs so reviewers
// can preview a cut without holding GCS credentials themselves.
package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// DefaultShareExpiry is how long a generated share link stays valid when the
// caller does not ask for a specific lifetime.
const DefaultShareExpiry = 15 * time.Minute

// ShareService signs Cloud Storage URLs on behalf of the configured service
// account so finished collateral can be shared outside the project.
type ShareService struct {
	StorageClient *storage.Client // Client for interacting with Google Cloud Storage.
	SignerEmail   string          // The service account email used to sign URLs.
}

// GenerateSignedURL creates a time-limited, secure URL to access a private GCS
// object. The URL is signed with the V4 scheme using the credentials of the
// service account the server runs as, so no key files are needed on disk.
//
// Inputs:
//   - ctx: The context for the request.
//   - gcsURI: The URI of the object to share, e.g. "gs://bucket/final.mp4".
//   - expires: The duration for which the URL will be valid; values at or
//     below zero fall back to DefaultShareExpiry.
//
// Outputs:
//   - string: The generated signed URL.
//   - error: An error if parsing the URI or signing the URL fails.
func (s *ShareService) GenerateSignedURL(ctx context.Context, gcsURI string, expires time.Duration) (string, error) {
	loc, err := model.ParseLocation(gcsURI)
	if err != nil {
		return "", err
	}
	if !loc.IsRemote() {
		return "", fmt.Errorf("%w: %q is not a gs:// URI", model.ErrInvalidLocation, gcsURI)
	}
	if expires <= 0 {
		expires = DefaultShareExpiry
	}

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4, // Use the modern and more secure V4 signing scheme.
		Method:         "GET",                   // The URL will only be valid for GET requests.
		Expires:        time.Now().Add(expires), // Set the expiration time.
		GoogleAccessID: s.SignerEmail,
	}

	u, err := s.StorageClient.Bucket(loc.Bucket).SignedURL(loc.Object, opts)
	if err != nil {
		return "", fmt.Errorf("Bucket(%q).Object(%q).SignedURL: %w", loc.Bucket, loc.Object, err)
	}
	return u, nil
}
