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

// This file defines the Google Cloud Storage surface of the studio: the
// ObjectStore interface the pipeline commands depend on, its production
// implementation backed by the GCS client, and the structure of GCS event
// notifications delivered over Pub/Sub.
//
// Structs:
//   - GCSObjectStore: Production ObjectStore backed by *storage.Client.
//   - GCSPubSubNotification: Maps to the JSON payload from GCS event notifications.
//   - GCSObject: A simplified internal model for GCS objects used in workflows.
package cloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// GetGCSObjectName returns the constant key under which trigger listeners
// store the notification's GCSObject in the workflow context.
//
// Outputs:
//   - string: A constant placeholder string "__GCS__OBJ__".
func GetGCSObjectName() string {
	return "__GCS__OBJ__"
}

// ObjectStore is the narrow blob-storage contract the pipeline commands use.
// Production code binds it to GCS; tests substitute an in-memory map so the
// resolve and upload stages run without network access.
type ObjectStore interface {
	// Download copies a remote object to the local writer.
	Download(ctx context.Context, bucket, object string, w io.Writer) error
	// Upload writes the local file at path to the remote object, stamping the
	// given content type, and overwrites any existing object.
	Upload(ctx context.Context, bucket, object, path, contentType string) error
	// Exists reports whether the remote object is present.
	Exists(ctx context.Context, bucket, object string) (bool, error)
}

// GCSObjectStore implements ObjectStore on a real *storage.Client.
type GCSObjectStore struct {
	client *storage.Client
}

// NewGCSObjectStore wraps an initialized storage client.
func NewGCSObjectStore(client *storage.Client) *GCSObjectStore {
	return &GCSObjectStore{client: client}
}

// Download streams a GCS object into the writer. A missing object is reported
// as model.ErrNotFound so callers can separate bad input from infrastructure
// failures.
func (s *GCSObjectStore) Download(ctx context.Context, bucket, object string, w io.Writer) error {
	reader, err := s.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("gs://%s/%s: %w", bucket, object, model.ErrNotFound)
		}
		return fmt.Errorf("opening gs://%s/%s: %w", bucket, object, err)
	}
	defer func() { _ = reader.Close() }()

	if _, err := io.Copy(w, reader); err != nil {
		return fmt.Errorf("reading gs://%s/%s: %w", bucket, object, err)
	}
	return nil
}

// Upload copies the local file to the destination object. The write replaces
// any existing object at the destination.
func (s *GCSObjectStore) Upload(ctx context.Context, bucket, object, path, contentType string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s for upload: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	writer := s.client.Bucket(bucket).Object(object).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := io.Copy(writer, f); err != nil {
		_ = writer.Close()
		return fmt.Errorf("writing gs://%s/%s: %w", bucket, object, err)
	}
	// Close commits the upload; errors here mean the object was not written.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("committing gs://%s/%s: %w", bucket, object, err)
	}
	return nil
}

// Exists checks object presence through a metadata read.
func (s *GCSObjectStore) Exists(ctx context.Context, bucket, object string) (bool, error) {
	_, err := s.client.Bucket(bucket).Object(object).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking gs://%s/%s: %w", bucket, object, err)
	}
	return true, nil
}

// GCSPubSubNotification is the structure that maps to the JSON message payload
// received from a Google Cloud Storage (GCS) Pub/Sub notification. When an
// event (like object creation) occurs in a monitored bucket, GCS sends a
// message with this structure to the configured Pub/Sub topic.
type GCSPubSubNotification struct {
	Kind                    string                 `json:"kind"`                    // The kind of the object, typically "storage#object".
	ID                      string                 `json:"id"`                      // The full ID of the object, including bucket and generation.
	SelfLink                string                 `json:"selfLink"`                // The URI for this object.
	Name                    string                 `json:"name"`                    // The name of the object within the bucket.
	Bucket                  string                 `json:"bucket"`                  // The name of the bucket containing the object.
	Generation              string                 `json:"generation"`              // The generation number of the object's content.
	MetaGeneration          string                 `json:"metageneration"`          // The generation number of the object's metadata.
	ContentType             string                 `json:"contentType"`             // The MIME type of the object's content.
	TimeCreated             string                 `json:"timeCreated"`             // The creation time of the object.
	Updated                 string                 `json:"updated"`                 // The last modification time of the object.
	StorageClass            string                 `json:"storageClass"`            // The storage class of the object.
	TimeStorageClassUpdated string                 `json:"timeStorageClassUpdated"` // The time the storage class was last updated.
	Size                    string                 `json:"size"`                    // The size of the object in bytes.
	MD5Hash                 string                 `json:"md5Hash"`                 // The MD5 hash of the object's content.
	MediaLink               string                 `json:"mediaLink"`               // A link to download the object's content.
	MetaData                map[string]interface{} `json:"metadata"`                // User-provided metadata, if any.
	Crc32c                  string                 `json:"crc32c"`                  // The CRC32C checksum of the object's content.
	ETag                    string                 `json:"etag"`                    // The HTTP ETag of the object.
}

// GCSObject is a simplified, internal representation of a Google Cloud
// Storage object. It distills the essential fields of the notification into a
// lightweight struct that is easy to pass between workflow commands.
type GCSObject struct {
	Bucket   string // The name of the GCS bucket.
	Name     string // The name of the object.
	MIMEType string // The MIME type of the object (e.g., "video/mp4").
}
