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

// This file defines the entry command for Pub/Sub-triggered assemblies.
//
// Logic Flow:
// Event-driven assemblies arrive as JSON messages on a Pub/Sub topic, posted
// either by the REST API's async path or by an upstream agent. This command
// parses that message.
//
//  1. Receive the raw Pub/Sub message data as a JSON string from the context.
//  2. Unmarshal it into a model.AssemblyRequest.
//  3. Reject payloads with no video clips before the pipeline spends any
//     effort on downloads.
//  4. Place the request into the context as input for the assembly chain.
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// AssemblyTriggerReader is a command that parses an assembly request message
// into the struct the pipeline consumes.
type AssemblyTriggerReader struct {
	cor.BaseCommand
}

// NewAssemblyTriggerReader is the constructor for the AssemblyTriggerReader command.
//
// Inputs:
//   - name: A string name for this command instance.
//
// Outputs:
//   - *AssemblyTriggerReader: A pointer to the newly instantiated command.
func NewAssemblyTriggerReader(name string) *AssemblyTriggerReader {
	return &AssemblyTriggerReader{BaseCommand: *cor.NewBaseCommand(name)}
}

// Execute parses the trigger message.
//
// Inputs:
//   - context: The shared cor.Context for this workflow execution, containing
//     the raw message data in the input parameter.
func (c *AssemblyTriggerReader) Execute(context cor.Context) {
	in, ok := context.Get(c.GetInputParam()).(string)
	if !ok {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("trigger payload is not a string"))
		return
	}

	var request model.AssemblyRequest
	if err := json.Unmarshal([]byte(in), &request); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to unmarshal assembly request: %w", err))
		return
	}
	if len(request.Videos) == 0 {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("trigger carries no video clips: %w", model.ErrInsufficientInput))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(AssemblyRequestKey, &request)
	context.Add(c.GetOutputParam(), &request)
}
