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

// This file defines the entry command for GCS-notification-triggered
// assemblies.
//
// Logic Flow:
// Upstream systems can queue an assembly by writing a JSON request manifest
// into a watched bucket instead of publishing the request directly. GCS
// announces the new object on a Pub/Sub topic; this command turns that
// notification into the pipeline's request.
//
//  1. Receive the raw GCS notification JSON from the context input.
//  2. Unmarshal it into a `cloud.GCSPubSubNotification` and distill the
//     essentials into a `cloud.GCSObject`, stored under the well-known GCS
//     object key for downstream commands.
//  3. End the chain quietly for objects that are not JSON manifests, so the
//     notification still acks: bucket notifications cover every write, media
//     files included.
//  4. Download the manifest through the object store and unmarshal it into a
//     model.AssemblyRequest carrying at least one video clip.
//  5. Publish the request as input for the assembly chain.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// AssemblyManifestReader is a command that resolves a GCS object-finalize
// notification into the assembly request stored in the named object.
type AssemblyManifestReader struct {
	cor.BaseCommand
	store cloud.ObjectStore // The blob store holding the request manifests.
}

// NewAssemblyManifestReader is the constructor for the AssemblyManifestReader command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - store: The blob store adapter used to fetch the manifest object.
//
// Outputs:
//   - *AssemblyManifestReader: A pointer to the newly instantiated command.
func NewAssemblyManifestReader(name string, store cloud.ObjectStore) *AssemblyManifestReader {
	return &AssemblyManifestReader{BaseCommand: *cor.NewBaseCommand(name), store: store}
}

// Execute parses the notification and loads the manifest it points at.
//
// Inputs:
//   - context: The shared cor.Context for this workflow execution, containing
//     the raw notification JSON in the input parameter.
func (c *AssemblyManifestReader) Execute(context cor.Context) {
	in, ok := context.Get(c.GetInputParam()).(string)
	if !ok {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("notification payload is not a string"))
		return
	}

	var notification cloud.GCSPubSubNotification
	if err := json.Unmarshal([]byte(in), &notification); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to unmarshal GCS notification: %w", err))
		return
	}

	obj := &cloud.GCSObject{
		Bucket:   notification.Bucket,
		Name:     notification.Name,
		MIMEType: notification.ContentType,
	}
	context.Add(cloud.GetGCSObjectName(), obj)

	// Producing no output ends the chain here without an error, so the
	// listener acks the notification instead of redelivering it.
	if !isManifest(obj) {
		c.GetSuccessCounter().Add(context.GetContext(), 1)
		return
	}

	var buf bytes.Buffer
	if err := c.store.Download(context.GetContext(), obj.Bucket, obj.Name, &buf); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("fetching manifest gs://%s/%s: %w", obj.Bucket, obj.Name, err))
		return
	}

	var request model.AssemblyRequest
	if err := json.Unmarshal(buf.Bytes(), &request); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("manifest gs://%s/%s is not an assembly request: %w", obj.Bucket, obj.Name, err))
		return
	}
	if len(request.Videos) == 0 {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("manifest gs://%s/%s carries no video clips: %w", obj.Bucket, obj.Name, model.ErrInsufficientInput))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(AssemblyRequestKey, &request)
	context.Add(c.GetOutputParam(), &request)
}

// isManifest reports whether the notified object looks like a request
// manifest rather than a media file.
func isManifest(obj *cloud.GCSObject) bool {
	return obj.MIMEType == "application/json" ||
		strings.HasSuffix(strings.ToLower(obj.Name), ".json")
}
