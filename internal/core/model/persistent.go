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
// file holds the persistent projection of a finished assembly run. RunRecord
// rows are streamed into BigQuery at the tail of the pipeline so operators can
// query throughput, failure modes, and the mix parameters that produced a
// given artifact.
package model

import (
	"time"

	"github.com/google/uuid"
)

// RunRecord is the durable record of one assembly pipeline run. The bigquery
// struct tags map fields onto the run table's columns.
type RunRecord struct {
	RunID          string    `bigquery:"run_id" json:"run_id"`
	Status         string    `bigquery:"status" json:"status"`
	Detail         string    `bigquery:"detail" json:"detail"`
	OutputURI      string    `bigquery:"output_uri" json:"output_uri"`
	VideoCount     int       `bigquery:"video_count" json:"video_count"`
	HasMusic       bool      `bigquery:"has_music" json:"has_music"`
	HasVoiceover   bool      `bigquery:"has_voiceover" json:"has_voiceover"`
	VideoGain      float64   `bigquery:"video_gain" json:"video_gain"`
	MusicGain      float64   `bigquery:"music_gain" json:"music_gain"`
	VoiceoverGain  float64   `bigquery:"voiceover_gain" json:"voiceover_gain"`
	DurationMillis int64     `bigquery:"duration_millis" json:"duration_millis"`
	CreateDate     time.Time `bigquery:"create_date" json:"create_date"`
}

// NewRunRecord constructs a record for the given run with a fresh ID when none
// was supplied and the creation timestamp set to now.
func NewRunRecord(runID string) *RunRecord {
	if runID == "" {
		runID = uuid.NewString()
	}
	return &RunRecord{
		RunID:      runID,
		CreateDate: time.Now(),
	}
}
