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

// This file defines the command that records a completed assembly run in
// BigQuery, giving the dashboard a queryable history of what was built, with
// which inputs, and how the volume directive was interpreted.
//
// Logic Flow:
//  1. Assemble a model.RunRecord from the request, the parsed gains, the
//     output URI, and the run's elapsed time.
//  2. Get a BigQuery Inserter for the run table. The inserter streams rows,
//     which is cheaper than individual INSERT statements.
//  3. Put the record; the client library maps struct fields to table columns
//     through the bigquery struct tags on model.RunRecord.
package commands

import (
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/cloud"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/cor"
	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// RunPersistToBigQuery is a command that saves an assembly run record to a
// BigQuery table.
type RunPersistToBigQuery struct {
	cor.BaseCommand
	client  *bigquery.Client         // The client for interacting with the BigQuery service.
	dataset cloud.BigQueryDataSource // Dataset and table names from configuration.
}

// NewRunPersistToBigQuery is the constructor for the RunPersistToBigQuery command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - client: An initialized *bigquery.Client.
//   - dataset: The configured dataset and run-table names.
//
// Outputs:
//   - *RunPersistToBigQuery: A pointer to the newly instantiated command.
func NewRunPersistToBigQuery(name string, client *bigquery.Client, dataset cloud.BigQueryDataSource) *RunPersistToBigQuery {
	return &RunPersistToBigQuery{BaseCommand: *cor.NewBaseCommand(name), client: client, dataset: dataset}
}

// IsExecutable requires the assembly request so a record can be built, and a
// configured client. Without a client the step is skipped rather than failed:
// run history is an audit trail, not a delivery requirement.
//
// Inputs:
//   - context: The shared cor.Context for this workflow execution.
//
// Outputs:
//   - bool: True when the context carries the assembly request and a BigQuery
//     client is available.
func (s *RunPersistToBigQuery) IsExecutable(context cor.Context) bool {
	return context != nil && context.Get(AssemblyRequestKey) != nil && s.client != nil
}

// Execute writes the run record to BigQuery.
//
// Inputs:
//   - context: The shared cor.Context for this workflow execution.
func (s *RunPersistToBigQuery) Execute(context cor.Context) {
	request := context.Get(AssemblyRequestKey).(*model.AssemblyRequest)

	record := model.NewRunRecord(request.RunID)
	record.Status = model.StatusSuccess
	record.Detail = "assembly complete"
	record.VideoCount = len(request.Videos)
	record.HasMusic = request.Music != ""
	record.HasVoiceover = request.Voiceover != ""

	if gains, ok := context.Get(VolumeGainsKey).(model.VolumeGains); ok {
		record.VideoGain = gains.Video
		record.MusicGain = gains.Music
		record.VoiceoverGain = gains.Voiceover
	}
	if uri, ok := context.Get(OutputURIKey).(string); ok {
		record.OutputURI = uri
	}
	if start, ok := context.Get(RunStartKey).(time.Time); ok {
		record.DurationMillis = time.Since(start).Milliseconds()
	}

	i := s.client.Dataset(s.dataset.DatasetName).Table(s.dataset.RunTable).Inserter()
	if err := i.Put(context.GetContext(), record); err != nil {
		s.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(s.GetName(), fmt.Errorf("bigquery insert failed for run '%s': %w", record.RunID, err))
		return
	}

	s.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(cor.CtxOut, record.OutputURI)
	slog.Info("persisted assembly run record",
		"run_id", record.RunID,
		"output", record.OutputURI,
		"duration_ms", record.DurationMillis)
}
