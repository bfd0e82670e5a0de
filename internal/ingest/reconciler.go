// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/shinkan-app/shinkan/internal/platform/ctxutil"
	"github.com/shinkan-app/shinkan/internal/platform/dberr"
	"github.com/shinkan-app/shinkan/internal/release"
	"github.com/shinkan-app/shinkan/pkg/slug"
)

// Summary tallies the outcome of reconciling one source's batch.
//
// Outcomes holds one entry per input record, in feed order, so partial
// failures are inspectable rather than only visible in the logs.
type Summary struct {
	SourceName string          `json:"source"`
	Fetched    int             `json:"fetched"`
	Created    int             `json:"created"`
	Updated    int             `json:"updated"`
	Failed     int             `json:"failed"`
	Outcomes   []RecordOutcome `json:"outcomes"`
}

// RecordOutcome reports what happened to a single feed record.
type RecordOutcome struct {
	Title  string  `json:"title"`
	ISBN13 *string `json:"isbn_13,omitempty"`
	Status string  `json:"status"`
	Error  string  `json:"error,omitempty"`
}

// StatusFailed marks a record that could not be applied. Successful records
// carry the store outcome ("created" or "updated") instead.
const StatusFailed = "failed"

// Reconciler folds raw feed records into the catalogue.
//
// Dedup runs on the ISBN-13 natural key: a matching row is overwritten in
// place, an unknown ISBN inserts, and a record without an ISBN always
// inserts. Every applied record gets a provenance row.
type Reconciler struct {
	releases   release.Repository
	publishers release.PublisherRepository
}

// NewReconciler constructs a reconciler over the release stores.
func NewReconciler(releases release.Repository, publishers release.PublisherRepository) *Reconciler {
	return &Reconciler{releases: releases, publishers: publishers}
}

/*
Reconcile applies one source's batch of raw records to the catalogue.

Parameters:
  - context: context.Context
  - sourceName: string (Feed identifier for provenance and the summary)
  - records: []RawRelease (The fetched batch, in feed order)

Returns:
  - *Summary: Per-record outcomes and tallies; Fetched = len(records)
  - error: Only context cancellation; record-level failures are tallied

A failing record is logged and counted, and the batch continues. The
find-then-write upsert can lose a race against a concurrent insert of the
same ISBN; on a duplicate-key error the record is retried once, at which
point the lookup finds the winner and the write lands as an update.
*/
func (reconciler *Reconciler) Reconcile(context context.Context, sourceName string, records []RawRelease) (*Summary, error) {
	log := ctxutil.GetLogger(context)
	summary := &Summary{
		SourceName: sourceName,
		Fetched:    len(records),
		Outcomes:   make([]RecordOutcome, 0, len(records)),
	}

	for index := range records {
		if err := context.Err(); err != nil {
			return summary, err
		}

		record := &records[index]
		result := RecordOutcome{Title: record.Title, ISBN13: record.ISBN13}

		outcome, err := reconciler.apply(context, sourceName, record)
		if err != nil {
			summary.Failed++
			result.Status = StatusFailed
			result.Error = err.Error()
			summary.Outcomes = append(summary.Outcomes, result)

			log.ErrorContext(context, "ingest_record_failed",
				slog.String("source", sourceName),
				slog.String("title", record.Title),
				slog.Any("error", err),
			)
			continue
		}

		switch outcome {
		case release.OutcomeCreated:
			summary.Created++
		case release.OutcomeUpdated:
			summary.Updated++
		}

		result.Status = string(outcome)
		summary.Outcomes = append(summary.Outcomes, result)
	}

	return summary, nil
}

// apply reconciles a single record: resolve the publisher, write the
// release, and attach provenance.
func (reconciler *Reconciler) apply(context context.Context, sourceName string, record *RawRelease) (release.UpsertOutcome, error) {
	publisher, err := reconciler.publishers.GetOrCreate(context, &release.Publisher{
		Name: record.PublisherName,
		Slug: slug.From(record.PublisherName),
	})
	if err != nil {
		return "", err
	}

	entity := mapRecord(record, publisher)

	outcome, err := reconciler.write(context, entity)
	if err != nil {
		return "", err
	}

	provenance := &release.SourceRecord{
		ReleaseID:  entity.ID,
		SourceName: sourceName,
		ExternalID: record.ExternalID,
		RawData:    record.RawData,
		FetchedAt:  time.Now().UTC(),
	}
	if record.SourceURL != "" {
		provenance.SourceURL = &record.SourceURL
	}

	if err := reconciler.releases.AttachSource(context, provenance); err != nil {
		// The release landed; losing provenance is not a record failure.
		ctxutil.GetLogger(context).WarnContext(context, "ingest_provenance_failed",
			slog.String("source", sourceName),
			slog.Int64("release_id", entity.ID),
			slog.Any("error", err),
		)
	}

	return outcome, nil
}

// write persists the entity, retrying a lost ISBN insert race once.
func (reconciler *Reconciler) write(context context.Context, entity *release.Release) (release.UpsertOutcome, error) {
	if entity.ISBN13 == nil {
		if err := reconciler.releases.Create(context, entity); err != nil {
			return "", err
		}
		return release.OutcomeCreated, nil
	}

	outcome, err := reconciler.releases.Upsert(context, entity)
	if dberr.IsDuplicate(err) {
		return reconciler.releases.Upsert(context, entity)
	}

	return outcome, err
}

// mapRecord converts a raw feed record into the domain entity.
func mapRecord(record *RawRelease, publisher *release.Publisher) *release.Release {
	return &release.Release{
		Title:        record.Title,
		SeriesName:   record.SeriesName,
		VolumeLabel:  record.VolumeLabel,
		ISBN13:       record.ISBN13,
		ISBN10:       record.ISBN10,
		ReleaseDate:  normalizeDate(record.ReleaseDate),
		Publisher:    *publisher,
		Format:       record.Format,
		PageCount:    record.PageCount,
		PriceUSD:     record.PriceUSD,
		PriceGBP:     record.PriceGBP,
		CoverURL:     record.CoverURL,
		Description:  record.Description,
		Demographic:  record.Demographic,
		Genres:       record.Genres,
		Regions:      record.Regions,
		Authors:      record.Authors,
		Illustrators: record.Illustrators,
	}
}

// normalizeDate strips the time component; release dates are date-only.
func normalizeDate(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
