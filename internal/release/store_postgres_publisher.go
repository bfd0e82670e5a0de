// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shinkan-app/shinkan/internal/platform/database/schema"
	"github.com/shinkan-app/shinkan/internal/platform/dberr"
)

// # Publisher Repository

// publisherRepository implements the [PublisherRepository] interface using pgx.
type publisherRepository struct {
	pool *pgxpool.Pool
}

// NewPublisherRepository constructs a PostgreSQL backed publisher store.
func NewPublisherRepository(pool *pgxpool.Pool) PublisherRepository {
	return &publisherRepository{pool: pool}
}

/*
FindBySlug returns the publisher matching the unique URL slug.
*/
func (repository *publisherRepository) FindBySlug(context context.Context, slug string) (*Publisher, error) {
	p := schema.Publishers

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		p.ID, p.Name, p.Slug, p.Country,
		p.Table,
		p.Slug,
	)

	var publisher Publisher
	err := repository.pool.QueryRow(context, query, slug).Scan(
		&publisher.ID, &publisher.Name, &publisher.Slug, &publisher.Country,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find publisher by slug")
	}

	return &publisher, nil
}

/*
GetOrCreate resolves a publisher by slug, inserting it when absent.

Description: read-then-insert. When two ingestion runs race on a brand-new
slug, the unique constraint rejects the second insert; it resolves by
re-reading the winner's row.
*/
func (repository *publisherRepository) GetOrCreate(context context.Context, publisher *Publisher) (*Publisher, error) {
	existing, err := repository.FindBySlug(context, publisher.Slug)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	p := schema.Publishers
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s`,
		p.Table, p.Name, p.Slug, p.Country,
		p.ID,
	)

	err = repository.pool.QueryRow(context, query,
		publisher.Name, publisher.Slug, publisher.Country,
	).Scan(&publisher.ID)

	if err != nil {
		wrapped := dberr.Wrap(err, "create publisher")
		if dberr.IsDuplicate(wrapped) {
			// Lost the race: another run inserted this slug first.
			return repository.FindBySlug(context, publisher.Slug)
		}
		return nil, wrapped
	}

	return publisher, nil
}

/*
ListWithReleaseCount returns every publisher with its release count, ordered
by name.
*/
func (repository *publisherRepository) ListWithReleaseCount(context context.Context) ([]PublisherCount, error) {
	p := schema.Publishers
	r := schema.Releases

	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, p.%s, COUNT(r.%s) AS release_count
		FROM %s p
		LEFT JOIN %s r ON r.%s = p.%s
		GROUP BY p.%s
		ORDER BY p.%s ASC`,
		p.ID, p.Name, p.Slug, r.ID,
		p.Table,
		r.Table, r.PublisherID, p.ID,
		p.ID,
		p.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list publishers")
	}
	defer rows.Close()

	var publishers []PublisherCount
	for rows.Next() {
		var entry PublisherCount
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Slug, &entry.ReleaseCount); err != nil {
			return nil, dberr.Wrap(err, "scan publisher row")
		}
		publishers = append(publishers, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate publisher rows")
	}

	return publishers, nil
}
