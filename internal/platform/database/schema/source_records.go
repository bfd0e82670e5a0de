// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package schema

// SourceRecordsTable represents the 'source_records' table
type SourceRecordsTable struct {
	Table      string
	ID         string
	ReleaseID  string
	SourceName string
	ExternalID string
	SourceURL  string
	RawData    string
	FetchedAt  string
	CreatedAt  string
}

// SourceRecords is the schema definition for source_records
var SourceRecords = SourceRecordsTable{
	Table:      "source_records",
	ID:         "id",
	ReleaseID:  "release_id",
	SourceName: "source_name",
	ExternalID: "external_id",
	SourceURL:  "source_url",
	RawData:    "raw_data",
	FetchedAt:  "fetched_at",
	CreatedAt:  "created_at",
}

func (t SourceRecordsTable) Columns() []string {
	return []string{
		t.ID, t.ReleaseID, t.SourceName, t.ExternalID, t.SourceURL,
		t.RawData, t.FetchedAt, t.CreatedAt,
	}
}
