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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface for the video-assembly
// pipeline. This file defines the well-known context keys the commands use to
// share state beyond the default input/output piping.
package commands

// Context keys for values that outlive a single hop between adjacent
// commands. The assembly request and the resolved input paths are read by
// several stages, so they live under their own keys instead of riding the
// CtxIn/CtxOut pipe.
const (
	// AssemblyRequestKey holds the *model.AssemblyRequest that seeded the run.
	AssemblyRequestKey = "__ASSEMBLY_REQUEST__"
	// ResolvedInputsKey holds the *ResolvedInputs produced by ResolveInputs.
	ResolvedInputsKey = "__RESOLVED_INPUTS__"
	// AppliedFadeKey holds the model.FadeSpec the mixdown actually applied.
	AppliedFadeKey = "__APPLIED_FADE__"
	// VolumeGainsKey holds the model.VolumeGains parsed from the directive.
	VolumeGainsKey = "__VOLUME_GAINS__"
	// OutputURIKey holds the gs:// URI of the uploaded final video.
	OutputURIKey = "__OUTPUT_URI__"
	// RunStartKey holds the time.Time the workflow began executing.
	RunStartKey = "__RUN_START__"
)

// ResolvedInputs carries the local filesystem paths of every input after the
// resolve stage has downloaded remote objects and validated local ones. Order
// of Videos matches the request.
type ResolvedInputs struct {
	Videos    []string
	Voiceover string
	Music     string
}
