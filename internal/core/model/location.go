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

// Package model defines the core data structures for the application. This
// file defines MediaLocation, the single address type used for every input and
// output of the assembly pipeline. A location is either a local filesystem
// path or a Google Cloud Storage object of the form gs://bucket/object.
// Parsing happens once, before any I/O, so malformed remote addresses are
// rejected up front rather than mid-pipeline.
package model

import (
	"fmt"
	"strings"
)

// GCSScheme is the URI prefix identifying a remote Cloud Storage location.
const GCSScheme = "gs://"

// MediaLocation is a parsed media address. Exactly one of the two shapes
// holds: a remote location has non-empty Bucket and Object and an empty Path;
// a local location has a non-empty Path.
type MediaLocation struct {
	Bucket string // GCS bucket, empty for local locations.
	Object string // GCS object name, empty for local locations.
	Path   string // Local filesystem path, empty for remote locations.
}

// IsRemote reports whether the location addresses a Cloud Storage object.
func (l MediaLocation) IsRemote() bool {
	return l.Bucket != ""
}

// URI renders the location back to its string form: gs://bucket/object for
// remote locations, the plain path for local ones.
func (l MediaLocation) URI() string {
	if l.IsRemote() {
		return fmt.Sprintf("%s%s/%s", GCSScheme, l.Bucket, l.Object)
	}
	return l.Path
}

// ParseLocation classifies and validates a raw location string.
//
// Inputs:
//   - raw: Either a local path or a gs://bucket/object URI.
//
// Outputs:
//   - MediaLocation: The parsed location.
//   - error: ErrInvalidLocation (wrapped with the offending input) when the
//     string is empty or a gs:// URI is missing its bucket or object segment.
func ParseLocation(raw string) (MediaLocation, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return MediaLocation{}, fmt.Errorf("%w: empty location", ErrInvalidLocation)
	}

	if !strings.HasPrefix(trimmed, GCSScheme) {
		return MediaLocation{Path: trimmed}, nil
	}

	rest := strings.TrimPrefix(trimmed, GCSScheme)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return MediaLocation{}, fmt.Errorf("%w: %q must be of the form gs://bucket/object", ErrInvalidLocation, raw)
	}
	return MediaLocation{Bucket: parts[0], Object: parts[1]}, nil
}

// ParseLocations parses a slice of raw location strings, failing on the first
// malformed entry.
func ParseLocations(raw []string) ([]MediaLocation, error) {
	out := make([]MediaLocation, 0, len(raw))
	for _, r := range raw {
		loc, err := ParseLocation(r)
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, nil
}
