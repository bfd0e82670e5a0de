// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package release

import "context"

// # Release Data Access

// Repository defines the data access contract for the release domain.
type Repository interface {

	/*
		FindInRange returns releases dated within the window (inclusive),
		filtered and sorted per the criteria, plus the total count.

		Parameters:
		  - context: context.Context
		  - window: Window (Inclusive month-aligned date range)
		  - criteria: Criteria (Publisher/region/format filters, sort, pagination)

		Returns:
		  - []*Release: One page of matching releases
		  - int: Total count matching the filter predicate, independent of pagination
		  - error: Database retrieval failures
	*/
	FindInRange(context context.Context, window Window, criteria Criteria) ([]*Release, int, error)

	/*
		Search returns releases whose title OR series name contains the query
		text (case-insensitive substring), most recent release date first.

		Parameters:
		  - context: context.Context
		  - params: SearchParams (Text, optional inclusive date bounds, pagination)

		Returns:
		  - []*Release: One page of matching releases
		  - int: Total count matching the predicate
		  - error: Database retrieval failures

		Empty query text is rejected by the service layer, never here.
	*/
	Search(context context.Context, params SearchParams) ([]*Release, int, error)

	/*
		FindByISBN13 returns the release carrying the given natural key.

		Returns:
		  - *Release: The hydrated domain entity
		  - error: dberr.ErrNotFound when no release carries the ISBN
	*/
	FindByISBN13(context context.Context, isbn13 string) (*Release, error)

	/*
		Create inserts a new release row.

		A duplicate ISBN-13 (racing concurrent ingestion) surfaces as
		dberr.ErrDuplicate, never silently.
	*/
	Create(context context.Context, release *Release) error

	/*
		Update overwrites the mutable attributes of an existing release in place.
	*/
	Update(context context.Context, release *Release) error

	/*
		Upsert reconciles a release against the store by its natural key.

		If the release carries an ISBN-13 matching an existing row, that row's
		attributes are overwritten and the outcome is OutcomeUpdated; otherwise
		a new row is inserted and the outcome is OutcomeCreated.

		The find-then-write sequence is not atomic: a concurrent insert of the
		same new ISBN-13 may surface as dberr.ErrDuplicate. Callers decide the
		retry policy.
	*/
	Upsert(context context.Context, release *Release) (UpsertOutcome, error)

	/*
		AttachSource records a provenance row linking the release to the
		external feed observation that produced it.
	*/
	AttachSource(context context.Context, record *SourceRecord) error
}

// # Publisher Data Access

// PublisherRepository defines the data access contract for publishers.
type PublisherRepository interface {

	/*
		FindBySlug returns the publisher matching the unique URL slug.

		Returns:
		  - *Publisher: The hydrated domain entity
		  - error: dberr.ErrNotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Publisher, error)

	/*
		GetOrCreate resolves a publisher by slug, inserting it when absent.

		Parameters:
		  - context: context.Context
		  - publisher: *Publisher (Name, Slug, optional Country)

		Returns:
		  - *Publisher: The existing or freshly inserted row
		  - error: Storage or constraint failures
	*/
	GetOrCreate(context context.Context, publisher *Publisher) (*Publisher, error)

	/*
		ListWithReleaseCount returns every publisher with its release count,
		ordered by name.
	*/
	ListWithReleaseCount(context context.Context) ([]PublisherCount, error)
}
