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

// Package workflow defines the high-level business logic orchestrations,
// combining various commands into coherent pipelines. This file implements
// the video assembly workflow: resolve inputs, compose the reel, mix the
// audio, publish the result, and record the run.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/commands"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/media"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// DefaultAssemblyTimeout bounds one assembly run when the configuration does
// not say otherwise.
const DefaultAssemblyTimeout = 10 * time.Minute

// VideoAssemblyWorkflow orchestrates the full promotional-reel assembly. It
// can run synchronously behind the REST API through Assemble, or attach to a
// Pub/Sub listener where the trigger message carries the request.
type VideoAssemblyWorkflow struct {
	cor.BaseCommand
	processor media.MediaProcessor
	store     cloud.ObjectStore
	config    *cloud.Config
	clients   *cloud.ServiceClients
	timeout   time.Duration
	chain     cor.Chain // The underlying chain of commands to be executed.
}

// Execute runs the assembly chain against an already-seeded context. The
// Pub/Sub path prepends a trigger reader so the raw message becomes the
// request before the main chain runs.
//
// Inputs:
//   - context: The chain of responsibility context for this execution.
func (w *VideoAssemblyWorkflow) Execute(context cor.Context) {
	context.Add(commands.RunStartKey, time.Now())
	w.chain.Execute(context)
}

// Assemble is the synchronous entry point used by the REST API. It owns the
// full lifecycle of one run: context creation, timeout, execution, temp-file
// cleanup, and translation of chain errors into a PipelineResult.
//
// Inputs:
//   - ctx: The caller's context; the run also respects the configured timeout.
//   - request: The assembly request naming inputs and the volume directive.
//
// Outputs:
//   - model.PipelineResult: The run's status, detail, and output location.
//     Failures are reported in the result, never as a panic; every temporary
//     file is removed before this returns.
func (w *VideoAssemblyWorkflow) Assemble(ctx context.Context, request *model.AssemblyRequest) model.PipelineResult {
	runCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(runCtx)
	chainCtx.Add(cor.CtxIn, request)
	chainCtx.Add(commands.AssemblyRequestKey, request)
	// Cleanup runs no matter how the chain ends.
	defer chainCtx.Close()

	w.Execute(chainCtx)

	if chainCtx.HasErrors() {
		err := firstError(chainCtx)
		if runCtx.Err() != nil {
			err = fmt.Errorf("%w: %v", model.ErrTimeout, err)
		}
		return model.PipelineResult{
			Status: model.StatusFor(err),
			Detail: err.Error(),
		}
	}

	uri, _ := chainCtx.Get(commands.OutputURIKey).(string)
	return model.PipelineResult{
		Status:    model.StatusSuccess,
		Detail:    "assembly complete",
		OutputURI: uri,
	}
}

// firstError collapses the chain's error map into one representative error.
func firstError(context cor.Context) error {
	var errs []error
	for name, err := range context.GetErrors() {
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	return errors.Join(errs...)
}

// initializeChain constructs the sequence of commands that define the
// assembly pipeline. The chain stops at the first failed command; partial
// output is never uploaded or recorded.
func (w *VideoAssemblyWorkflow) initializeChain() {
	transition := media.Transition{
		Type:            w.config.Assembly.TransitionType,
		DurationSeconds: w.config.Assembly.TransitionDuration,
		OffsetSeconds:   w.config.Assembly.TransitionOffset,
	}
	if transition.Type == "" {
		transition = media.DefaultTransition()
	}

	out := cor.NewBaseChain(w.GetName())

	// Step 1: localize every gs:// and filesystem input.
	out.AddCommand(commands.NewResolveInputs("resolve-inputs", w.store))

	// Step 2: fold the clips into one reel with crossfades.
	out.AddCommand(commands.NewVideoCompose("video-compose", w.processor, transition))

	// Step 3: mix music and narration per the volume directive.
	out.AddCommand(commands.NewAudioMixdown("audio-mixdown", w.processor))

	// Step 4: publish the reel to the output bucket.
	out.AddCommand(commands.NewGCSFileUpload("assembly-upload", w.store, w.config.Storage.OutputBucket))

	// Step 5: record the run for the dashboard.
	out.AddCommand(commands.NewRunPersistToBigQuery("run-record", w.clients.BigQueryClient, w.config.BigQueryDataSource))

	w.chain = out
}

// NewVideoAssemblyWorkflow initializes the workflow with its clients and
// configuration and builds the command chain.
//
// Inputs:
//   - config: The application's overall configuration.
//   - serviceClients: Initialized clients for GCP services.
//   - processor: The media processor; pass nil to use the ffmpeg binary from
//     the PATH.
//
// Returns:
//   - A pointer to a fully initialized VideoAssemblyWorkflow.
func NewVideoAssemblyWorkflow(
	config *cloud.Config,
	serviceClients *cloud.ServiceClients,
	processor media.MediaProcessor) *VideoAssemblyWorkflow {

	if processor == nil {
		processor = media.NewFFmpegProcessor()
	}

	timeout := DefaultAssemblyTimeout
	if config.Assembly.TimeoutInSeconds > 0 {
		timeout = time.Duration(config.Assembly.TimeoutInSeconds) * time.Second
	}

	out := &VideoAssemblyWorkflow{
		BaseCommand: *cor.NewBaseCommand("video-assembly-workflow"),
		processor:   processor,
		store:       serviceClients.ObjectStore,
		config:      config,
		clients:     serviceClients,
		timeout:     timeout,
	}
	out.initializeChain()
	return out
}

// NewAssemblyTriggerChain wraps the workflow for Pub/Sub delivery: the raw
// message is parsed into a request before the assembly chain runs.
func NewAssemblyTriggerChain(w *VideoAssemblyWorkflow) cor.Chain {
	out := cor.NewBaseChain("assembly-trigger")
	out.AddCommand(commands.NewAssemblyTriggerReader("assembly-trigger-reader"))
	out.AddCommand(w)
	return out
}

// NewManifestTriggerChain wraps the workflow for GCS bucket notifications:
// writing a request manifest into the watched bucket queues an assembly. The
// reader resolves the notification into the manifest's request; non-manifest
// writes end the chain without running the pipeline.
func NewManifestTriggerChain(w *VideoAssemblyWorkflow, store cloud.ObjectStore) cor.Chain {
	out := cor.NewBaseChain("assembly-manifest-trigger")
	out.AddCommand(commands.NewAssemblyManifestReader("assembly-manifest-reader", store))
	out.AddCommand(w)
	return out
}
