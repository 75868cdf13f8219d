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

// Package services contains the business logic for interacting with data
// sources. This file centralizes the BigQuery SQL query strings used by the
// run-history service. Queries use fmt.Sprintf verbs as placeholders for the
// fully qualified table names injected at runtime.
package services

const (
	// QryRecentRuns returns the newest assembly runs for the dashboard.
	//
	// Placeholders:
	// - `%s`: The fully qualified name of the run table.
	// - `%d`: The maximum number of rows to return.
	QryRecentRuns = "SELECT * FROM `%s` ORDER BY create_date DESC LIMIT %d"

	// QryFindRunById looks up a single assembly run by its unique ID.
	//
	// Placeholders:
	// - `%s`: The fully qualified name of the run table.
	// - `%s`: The run ID.
	QryFindRunById = "SELECT * FROM `%s` WHERE run_id = '%s'"
)
