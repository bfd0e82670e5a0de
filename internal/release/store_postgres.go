// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

/*
PostgreSQL implementation of the release repository.

It leans on Postgres features to keep the read path to a single round-trip:
  - Window Function: COUNT(*) OVER() retrieves the filtered total alongside
    the page itself.
  - JSONB Set Operators: region membership uses the @> containment operator
    against the jsonb regions array.
  - ILIKE: case-insensitive substring search over title and series name.
*/
package release

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shinkan-app/shinkan/internal/platform/database/schema"
	"github.com/shinkan-app/shinkan/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed release store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// releaseColumns is the SELECT list shared by every release query. The
// publisher is joined in-line so a page of releases costs one round-trip.
func releaseColumns() string {
	r := schema.Releases
	p := schema.Publishers
	return fmt.Sprintf(`
		r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
		r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
		r.%s, r.%s, r.%s, r.%s,
		p.%s, p.%s, p.%s, p.%s`,
		r.ID, r.Title, r.SeriesName, r.VolumeLabel, r.ISBN13, r.ISBN10, r.ReleaseDate,
		r.Format, r.PageCount, r.PriceUSD, r.PriceGBP, r.CoverURL, r.Description, r.Demographic,
		r.Genres, r.Regions, r.Authors, r.Illustrators,
		p.ID, p.Name, p.Slug, p.Country,
	)
}

/*
FindInRange returns releases dated within the window (inclusive), filtered
and sorted per the criteria, plus the total count.

Description: The filtered total rides along on every row via COUNT(*) OVER().
When pagination skips past the last row the window total is unobservable, so
a fallback COUNT query against the identical predicate keeps the contract
that total reflects the filter, not the page.
*/
func (repository *repository) FindInRange(context context.Context, window Window, criteria Criteria) ([]*Release, int, error) {
	r := schema.Releases

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s r
		JOIN %s p ON p.%s = r.%s
		WHERE r.%s >= $1 AND r.%s <= $2`,
		releaseColumns(),
		r.Table, schema.Publishers.Table, schema.Publishers.ID, r.PublisherID,
		r.ReleaseDate, r.ReleaseDate,
	))

	args := []any{window.First, window.Last}
	args = appendCriteriaFilters(&queryBuilder, args, criteria)

	queryBuilder.WriteString(orderClause(criteria.Sort))

	args = append(args, criteria.Limit, criteria.Offset)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	releases, total, err := repository.queryReleases(context, queryBuilder.String(), args)
	if err != nil {
		return nil, 0, err
	}

	// An offset past the end returns zero rows and hides the window total.
	if len(releases) == 0 && criteria.Offset > 0 {
		total, err = repository.countInRange(context, window, criteria)
		if err != nil {
			return nil, 0, err
		}
	}

	return releases, total, nil
}

// countInRange recomputes the filtered total without pagination.
func (repository *repository) countInRange(context context.Context, window Window, criteria Criteria) (int, error) {
	r := schema.Releases

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s r
		JOIN %s p ON p.%s = r.%s
		WHERE r.%s >= $1 AND r.%s <= $2`,
		r.Table, schema.Publishers.Table, schema.Publishers.ID, r.PublisherID,
		r.ReleaseDate, r.ReleaseDate,
	))

	args := []any{window.First, window.Last}
	args = appendCriteriaFilters(&queryBuilder, args, criteria)

	var total int
	if err := repository.pool.QueryRow(context, queryBuilder.String(), args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count releases in range")
	}

	return total, nil
}

/*
Search returns releases whose title OR series name contains the query text
(case-insensitive substring), most recent release date first.
*/
func (repository *repository) Search(context context.Context, params SearchParams) ([]*Release, int, error) {
	r := schema.Releases

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s r
		JOIN %s p ON p.%s = r.%s
		WHERE (r.%s ILIKE $1 OR r.%s ILIKE $1)`,
		releaseColumns(),
		r.Table, schema.Publishers.Table, schema.Publishers.ID, r.PublisherID,
		r.Title, r.SeriesName,
	))

	args := []any{"%" + escapeLike(params.Text) + "%"}

	if params.DateFrom != nil {
		args = append(args, *params.DateFrom)
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s >= $%d", r.ReleaseDate, len(args)))
	}

	if params.DateTo != nil {
		args = append(args, *params.DateTo)
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s <= $%d", r.ReleaseDate, len(args)))
	}

	// Most recent first; ID ascending keeps pagination deterministic.
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY r.%s DESC, r.%s ASC", r.ReleaseDate, r.ID))

	args = append(args, params.Limit, params.Offset)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	return repository.queryReleases(context, queryBuilder.String(), args)
}

/*
FindByISBN13 returns the release carrying the given natural key, or
dberr.ErrNotFound.
*/
func (repository *repository) FindByISBN13(context context.Context, isbn13 string) (*Release, error) {
	r := schema.Releases

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s r
		JOIN %s p ON p.%s = r.%s
		WHERE r.%s = $1`,
		releaseColumns(),
		r.Table, schema.Publishers.Table, schema.Publishers.ID, r.PublisherID,
		r.ISBN13,
	)

	row := repository.pool.QueryRow(context, query, isbn13)

	release, err := scanRelease(row)
	if err != nil {
		return nil, dberr.Wrap(err, "find release by isbn")
	}

	return release, nil
}

/*
Create inserts a new release row and populates its surrogate ID.
*/
func (repository *repository) Create(context context.Context, release *Release) error {
	r := schema.Releases

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING %s`,
		r.Table,
		r.Title, r.SeriesName, r.VolumeLabel, r.ISBN13, r.ISBN10, r.ReleaseDate,
		r.PublisherID, r.Format, r.PageCount, r.PriceUSD, r.PriceGBP, r.CoverURL,
		r.Description, r.Demographic, r.Genres, r.Regions, r.Authors, r.Illustrators,
		r.ID,
	)

	err := repository.pool.QueryRow(context, query,
		release.Title, release.SeriesName, release.VolumeLabel, release.ISBN13,
		release.ISBN10, release.ReleaseDate, release.Publisher.ID, release.Format,
		release.PageCount, release.PriceUSD, release.PriceGBP, release.CoverURL,
		release.Description, release.Demographic, jsonbStrings(release.Genres),
		jsonbStrings(release.Regions), jsonbStrings(release.Authors),
		jsonbStrings(release.Illustrators),
	).Scan(&release.ID)

	if err != nil {
		return dberr.Wrap(err, "create release")
	}

	return nil
}

/*
Update overwrites the mutable attributes of an existing release in place.
*/
func (repository *repository) Update(context context.Context, release *Release) error {
	r := schema.Releases

	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
			%s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = $12,
			%s = $13, %s = $14, %s = $15, %s = $16, %s = $17,
			%s = NOW()
		WHERE %s = $18`,
		r.Table,
		r.Title, r.SeriesName, r.VolumeLabel, r.ISBN10, r.ReleaseDate, r.PublisherID,
		r.Format, r.PageCount, r.PriceUSD, r.PriceGBP, r.CoverURL, r.Description,
		r.Demographic, r.Genres, r.Regions, r.Authors, r.Illustrators,
		r.UpdatedAt,
		r.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		release.Title, release.SeriesName, release.VolumeLabel, release.ISBN10,
		release.ReleaseDate, release.Publisher.ID, release.Format, release.PageCount,
		release.PriceUSD, release.PriceGBP, release.CoverURL, release.Description,
		release.Demographic, jsonbStrings(release.Genres), jsonbStrings(release.Regions),
		jsonbStrings(release.Authors), jsonbStrings(release.Illustrators),
		release.ID,
	)

	if err != nil {
		return dberr.Wrap(err, "update release")
	}

	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
Upsert reconciles a release against the store by its natural key.

Description: find-then-write in two statements. The uniqueness constraint on
the ISBN column is the arbiter under concurrency; a racing insert surfaces
as dberr.ErrDuplicate for the caller to resolve.
*/
func (repository *repository) Upsert(context context.Context, release *Release) (UpsertOutcome, error) {
	if release.ISBN13 != nil {
		existing, err := repository.FindByISBN13(context, *release.ISBN13)

		switch {
		case err == nil:
			release.ID = existing.ID
			if err := repository.Update(context, release); err != nil {
				return "", err
			}
			return OutcomeUpdated, nil

		case !errors.Is(err, dberr.ErrNotFound):
			return "", err
		}
	}

	// No natural key, or no existing match: insert a fresh row.
	if err := repository.Create(context, release); err != nil {
		return "", err
	}

	return OutcomeCreated, nil
}

/*
AttachSource records a provenance row linking the release to the external
feed observation that produced it.

A repeated sync re-observes the same (source, external ID, release) triple;
the existing row is refreshed rather than duplicated.
*/
func (repository *repository) AttachSource(context context.Context, record *SourceRecord) error {
	s := schema.SourceRecords

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s, %s, %s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s
		RETURNING %s`,
		s.Table,
		s.ReleaseID, s.SourceName, s.ExternalID, s.SourceURL, s.RawData, s.FetchedAt,
		s.SourceName, s.ExternalID, s.ReleaseID,
		s.SourceURL, s.SourceURL,
		s.RawData, s.RawData,
		s.FetchedAt, s.FetchedAt,
		s.ID,
	)

	rawData := record.RawData
	if len(rawData) == 0 {
		rawData = []byte("{}")
	}

	err := repository.pool.QueryRow(context, query,
		record.ReleaseID, record.SourceName, record.ExternalID,
		record.SourceURL, rawData, record.FetchedAt,
	).Scan(&record.ID)

	if err != nil {
		return dberr.Wrap(err, "attach source record")
	}

	return nil
}

// # Query Construction Helpers

// appendCriteriaFilters appends WHERE fragments for the optional publisher,
// region, and format filters, returning the extended argument list.
//
// Region is a set-membership test: the jsonb regions array must contain the
// requested region string.
func appendCriteriaFilters(queryBuilder *strings.Builder, args []any, criteria Criteria) []any {
	r := schema.Releases
	p := schema.Publishers

	if criteria.PublisherSlug != "" {
		args = append(args, criteria.PublisherSlug)
		queryBuilder.WriteString(fmt.Sprintf(" AND p.%s = $%d", p.Slug, len(args)))
	}

	if criteria.Region != "" {
		args = append(args, criteria.Region)
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s @> jsonb_build_array($%d::text)", r.Regions, len(args)))
	}

	if criteria.Format != "" {
		args = append(args, criteria.Format)
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s = $%d", r.Format, len(args)))
	}

	return args
}

// orderClause maps a [Sort] to its ORDER BY fragment. The surrogate ID
// tiebreak keeps pagination stable for equal sort keys.
func orderClause(sort Sort) string {
	r := schema.Releases
	p := schema.Publishers

	switch sort {
	case SortTitle:
		return fmt.Sprintf(" ORDER BY r.%s ASC, r.%s ASC", r.Title, r.ID)
	case SortPublisher:
		return fmt.Sprintf(" ORDER BY p.%s ASC, r.%s ASC", p.Name, r.ID)
	default:
		return fmt.Sprintf(" ORDER BY r.%s ASC, r.%s ASC", r.ReleaseDate, r.ID)
	}
}

// escapeLike escapes the LIKE wildcard characters in user-supplied text so a
// search for "100%" matches literally.
func escapeLike(text string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(text)
}

// jsonbStrings normalizes a string set for jsonb storage; nil becomes the
// empty array rather than SQL NULL.
func jsonbStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// # Row Scanning

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRelease hydrates one release (and its joined publisher) from a row.
func scanRelease(row rowScanner) (*Release, error) {
	var (
		release     Release
		releaseDate time.Time
	)

	err := row.Scan(
		&release.ID, &release.Title, &release.SeriesName, &release.VolumeLabel,
		&release.ISBN13, &release.ISBN10, &releaseDate,
		&release.Format, &release.PageCount, &release.PriceUSD, &release.PriceGBP,
		&release.CoverURL, &release.Description, &release.Demographic,
		&release.Genres, &release.Regions, &release.Authors, &release.Illustrators,
		&release.Publisher.ID, &release.Publisher.Name, &release.Publisher.Slug,
		&release.Publisher.Country,
	)
	if err != nil {
		return nil, err
	}

	release.ReleaseDate = releaseDate.UTC()

	return &release, nil
}

// queryReleases executes a windowed-total query and hydrates the page.
func (repository *repository) queryReleases(context context.Context, query string, args []any) ([]*Release, int, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "query releases")
	}
	defer rows.Close()

	var (
		releases []*Release
		total    int
	)

	for rows.Next() {
		release, rowTotal, err := scanReleaseWithTotal(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan release row")
		}
		releases = append(releases, release)
		total = rowTotal
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "iterate release rows")
	}

	return releases, total, nil
}

// scanReleaseWithTotal hydrates one release plus the window-function total.
func scanReleaseWithTotal(rows pgx.Rows) (*Release, int, error) {
	var (
		release     Release
		releaseDate time.Time
		total       int
	)

	err := rows.Scan(
		&release.ID, &release.Title, &release.SeriesName, &release.VolumeLabel,
		&release.ISBN13, &release.ISBN10, &releaseDate,
		&release.Format, &release.PageCount, &release.PriceUSD, &release.PriceGBP,
		&release.CoverURL, &release.Description, &release.Demographic,
		&release.Genres, &release.Regions, &release.Authors, &release.Illustrators,
		&release.Publisher.ID, &release.Publisher.Name, &release.Publisher.Slug,
		&release.Publisher.Country,
		&total,
	)
	if err != nil {
		return nil, 0, err
	}

	release.ReleaseDate = releaseDate.UTC()

	return &release, total, nil
}
