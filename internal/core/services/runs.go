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

// This file implements the run-history service, which reads assembly run
// records out of BigQuery for the dashboard and the status API.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/jaycherian/gcp-go-artisan-studio/internal/core/model"
)

// RunService provides read access to the assembly run history. It holds the
// BigQuery client plus the dataset and table names from configuration.
type RunService struct {
	BigqueryClient *bigquery.Client // Client for interacting with Google BigQuery.
	DatasetName    string           // The name of the BigQuery dataset.
	RunTable       string           // The name of the run-history table.
}

// GetFQN (Get Fully Qualified Name) returns the complete, queryable name for
// the run-history table in BigQuery, formatted with dots instead of colons.
// Example: `gcp-project-id.artisan_ds.runs`
//
// Outputs:
//   - string: The fully qualified table name.
func (s *RunService) GetFQN() string {
	fqn := s.BigqueryClient.Dataset(s.DatasetName).Table(s.RunTable).FullyQualifiedName()
	return strings.Replace(fqn, ":", ".", -1)
}

// RecentRuns returns the newest assembly runs, most recent first.
//
// Inputs:
//   - ctx: The context for the query.
//   - limit: Maximum number of runs to return; values below one default to 20.
//
// Outputs:
//   - []*model.RunRecord: The matching run records.
//   - error: An error when the query fails.
func (s *RunService) RecentRuns(ctx context.Context, limit int) ([]*model.RunRecord, error) {
	if limit < 1 {
		limit = 20
	}
	q := s.BigqueryClient.Query(fmt.Sprintf(QryRecentRuns, s.GetFQN(), limit))
	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read from BigQuery: %w", err)
	}

	var out []*model.RunRecord
	for {
		var record model.RunRecord
		err := it.Next(&record)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate run records: %w", err)
		}
		out = append(out, &record)
	}
	return out, nil
}

// FindRun looks up one assembly run by its ID.
//
// Inputs:
//   - ctx: The context for the query.
//   - runID: The run's unique identifier.
//
// Outputs:
//   - *model.RunRecord: The matching record.
//   - error: model.ErrNotFound when no run carries the ID.
func (s *RunService) FindRun(ctx context.Context, runID string) (*model.RunRecord, error) {
	q := s.BigqueryClient.Query(fmt.Sprintf(QryFindRunById, s.GetFQN(), runID))
	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read from BigQuery: %w", err)
	}

	var record model.RunRecord
	err = it.Next(&record)
	if errors.Is(err, iterator.Done) {
		return nil, fmt.Errorf("run %q: %w", runID, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run record: %w", err)
	}
	return &record, nil
}
