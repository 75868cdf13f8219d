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

// This file defines the command that publishes the finished reel to the
// output bucket.
//
// Logic Flow:
//  1. Receive the final video's local path from the context input.
//  2. Derive the destination object name from the request's first clip, with
//     a run-unique suffix so repeated assemblies never collide.
//  3. Sniff the content type from the file's magic bytes.
//  4. Upload through the blob store, overwriting any previous object.
//  5. Publish the gs:// URI of the uploaded object for the record stage and
//     the caller.
package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// GCSFileUpload is a command implementation responsible for uploading the
// assembled video from the local filesystem to the output bucket.
type GCSFileUpload struct {
	cor.BaseCommand
	store  cloud.ObjectStore // The blob store receiving the final object.
	bucket string            // The name of the destination GCS bucket.
}

// NewGCSFileUpload is the constructor for creating a new GCSFileUpload command.
//
// Inputs:
//   - name: A string name for this command instance, used for logging and telemetry.
//   - store: The blob store adapter for the upload.
//   - bucket: The name of the target GCS bucket.
//
// Outputs:
//   - *GCSFileUpload: A pointer to the newly instantiated command.
func NewGCSFileUpload(name string, store cloud.ObjectStore, bucket string) *GCSFileUpload {
	return &GCSFileUpload{BaseCommand: *cor.NewBaseCommand(name), store: store, bucket: bucket}
}

// Execute uploads the final video and emits its gs:// URI.
//
// Inputs:
//   - context: The shared cor.Context for this workflow execution.
func (c *GCSFileUpload) Execute(context cor.Context) {
	path, ok := context.Get(c.GetInputParam()).(string)
	if !ok || path == "" {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("no final video in context: %w", model.ErrInsufficientInput))
		return
	}
	request, _ := context.Get(AssemblyRequestKey).(*model.AssemblyRequest)
	if request == nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("assembly request missing from context: %w", model.ErrInsufficientInput))
		return
	}

	object := destinationName(request)
	contentType := sniffContentType(path)

	if err := c.store.Upload(context.GetContext(), c.bucket, object, path, contentType); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), err)
		return
	}

	uri := fmt.Sprintf("%s%s/%s", model.GCSScheme, c.bucket, object)
	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(OutputURIKey, uri)
	context.Add(c.GetOutputParam(), uri)
}

// destinationName derives the output object name from the first clip of the
// request, so related assemblies group together when the bucket is listed.
func destinationName(request *model.AssemblyRequest) string {
	base := "assembly"
	if len(request.Videos) > 0 {
		name := filepath.Base(request.Videos[0])
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return fmt.Sprintf("%s_final_%s.mp4", base, uuid.NewString())
}

// sniffContentType reads the file's magic bytes. The final reel is always an
// MP4 in practice, so the fallback matches.
func sniffContentType(path string) string {
	kind, err := filetype.MatchFile(path)
	if err != nil || kind == filetype.Unknown {
		return "video/mp4"
	}
	return kind.MIME.Value
}
