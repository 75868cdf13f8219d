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

// Package main contains the logic for setting up and starting the Pub/Sub
// message listeners. The assembly listener lets other systems queue video
// assembly runs by publishing a request instead of calling the REST API.
//
// Functions:
//   - SetupListeners: Attaches the assembly trigger chain to the configured
//     subscription and starts receiving messages.
package main

import (
	"context"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/workflow"
)

// SetupListeners configures and starts the background Pub/Sub listeners.
//
// Inputs:
//   - config: The application's configuration, naming the subscriptions.
//   - cloudClients: The initialized Google Cloud service clients.
//   - ctx: The application's root context, which bounds the listeners'
//     lifetime.
//
// Outputs:
//   - None. The listeners run as background goroutines until ctx is canceled.
func SetupListeners(config *cloud.Config, cloudClients *cloud.ServiceClients, ctx context.Context) {
	// A published assembly request runs through the same chain as the REST
	// route: parse the payload, then execute the full assembly pipeline.
	trigger := workflow.NewAssemblyTriggerChain(state.assembly)
	cloudClients.PubSubListeners["AssemblyTopic"].SetCommand(trigger)
	cloudClients.PubSubListeners["AssemblyTopic"].Listen(ctx)

	// The manifest topic receives GCS notifications for the drop bucket:
	// uploading a request manifest there queues an assembly without any API
	// call.
	if listener, ok := cloudClients.PubSubListeners["ManifestTopic"]; ok {
		manifest := workflow.NewManifestTriggerChain(state.assembly, cloudClients.ObjectStore)
		listener.SetCommand(manifest)
		listener.Listen(ctx)
	}
}
