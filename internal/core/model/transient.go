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
// file contains the transient, pipeline-scoped values that flow through a
// single assembly run: the request, the parsed volume directive, and the
// terminal result. None of these are persisted in this shape; the RunRecord in
// persistent.go is the durable projection of a finished run.
package model

import "errors"

// Run status values reported in a PipelineResult.
const (
	StatusSuccess = "success"
	StatusTimeout = "timeout"
	StatusFailed  = "failed"
	StatusError   = "error"
)

// AssemblyRequest is the single externally visible operation of the pipeline:
// assemble a final video from an ordered clip list, optional narration,
// optional background music, and a free-form volume directive.
type AssemblyRequest struct {
	Videos    []string `json:"videos"`              // Ordered clip locations, local paths or gs:// URIs.
	Voiceover string   `json:"voiceover,omitempty"` // Optional narration location.
	Music     string   `json:"music,omitempty"`     // Optional background music location.
	Directive string   `json:"directive,omitempty"` // Natural-language volume and fade instructions.
	RunID     string   `json:"run_id,omitempty"`    // Assigned by the workflow when empty.
}

// VolumeGains holds the three linear amplitude multipliers derived once per
// run from the volume directive. A gain of zero is a legitimate mute: the
// channel is still mixed, at zero amplitude, so channel count and timing stay
// deterministic.
type VolumeGains struct {
	Video     float64 // Gain for the clip's native audio track.
	Music     float64 // Gain for the background music track.
	Voiceover float64 // Gain for the narration track.
}

// DefaultVolumeGains returns the gains used when the directive names no
// overrides: native audio low, music present but secondary, narration
// prominent.
func DefaultVolumeGains() VolumeGains {
	return VolumeGains{Video: 0.3, Music: 0.4, Voiceover: 1.0}
}

// FadeSpec describes the linear fade-out window applied to the tail of the
// music track. StartSeconds is always non-negative and Duration never exceeds
// the effective music length; a zero-valued FadeSpec means no fade is applied.
type FadeSpec struct {
	StartSeconds    float64 // Offset into the music where the fade begins.
	DurationSeconds float64 // Length of the fade window.
}

// Applied reports whether an actual fade should be rendered.
func (f FadeSpec) Applied() bool {
	return f.DurationSeconds > 0
}

// PipelineResult is the terminal outcome of one assembly run. Exactly one is
// returned per invocation: success carries an output location, every other
// status carries a human-readable detail instead.
type PipelineResult struct {
	Status    string `json:"status"`               // One of StatusSuccess, StatusTimeout, StatusFailed, StatusError.
	Detail    string `json:"detail"`               // Human-readable description of the outcome.
	OutputURI string `json:"output_uri,omitempty"` // gs:// URI of the uploaded artifact; empty on non-success.
}

// StatusFor maps a pipeline error back to its terminal status string using the
// sentinel taxonomy in errors.go.
func StatusFor(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrTimeout):
		return StatusTimeout
	case errors.Is(err, ErrInsufficientInput),
		errors.Is(err, ErrInvalidLocation),
		errors.Is(err, ErrInputNotFound),
		errors.Is(err, ErrNotFound):
		return StatusFailed
	default:
		return StatusError
	}
}
