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
// file defines the error taxonomy for the assembly pipeline. Commands wrap
// these sentinels with fmt.Errorf("%w: ...") so the workflow boundary can map
// any failure back to a terminal PipelineResult status with errors.Is.
package model

import "errors"

// Sentinel errors for the assembly pipeline. Everything a run can fail with
// maps to one of these; anything unrecognized is reported as a generic error.
var (
	// ErrInvalidLocation marks a malformed media address (missing scheme,
	// bucket, or object segment).
	ErrInvalidLocation = errors.New("invalid media location")

	// ErrNotFound marks a remote object that does not exist.
	ErrNotFound = errors.New("object not found")

	// ErrInputNotFound marks a local input path that does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrInsufficientInput marks a concatenation request with zero videos.
	ErrInsufficientInput = errors.New("at least one video is required")

	// ErrTransitionFailed marks a failed crossfade step; the wrapped detail
	// carries the external tool's diagnostic output.
	ErrTransitionFailed = errors.New("transition failed")

	// ErrMixdownFailed marks a failed audio mix or mux; the wrapped detail
	// carries the external tool's diagnostic output.
	ErrMixdownFailed = errors.New("mixdown failed")

	// ErrTimeout marks a long-running generation that exceeded its caller
	// supplied deadline.
	ErrTimeout = errors.New("operation timed out")
)
