// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

// Package schema centralizes table and column identifiers for the Shinkan
// database. Repositories build SQL from these constants so a rename touches
// exactly one file.
package schema

// PublishersTable represents the 'publishers' table
type PublishersTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	Country   string
	CreatedAt string
	UpdatedAt string
}

// Publishers is the schema definition for publishers
var Publishers = PublishersTable{
	Table:     "publishers",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	Country:   "country",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t PublishersTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Country, t.CreatedAt, t.UpdatedAt}
}
