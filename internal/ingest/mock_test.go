// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinkan-app/shinkan/internal/ingest"
	"github.com/shinkan-app/shinkan/internal/release"
)

/*
TestMockSource_FetchReleases checks the generated feed shape: Tuesday-only
street dates, bounded weekly volume, valid ISBN check digits, and
determinism for a fixed seed.
*/
func TestMockSource_FetchReleases(t *testing.T) {
	window := release.Window{
		First: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		Last:  time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
	}

	source := ingest.NewMockSource(42)
	records, err := source.FetchReleases(context.Background(), window)
	require.NoError(t, err)
	require.NotEmpty(t, records)

	// March 2026 has five Tuesdays; 2-4 releases each.
	assert.GreaterOrEqual(t, len(records), 10)
	assert.LessOrEqual(t, len(records), 20)

	for _, record := range records {
		assert.Equal(t, time.Tuesday, record.ReleaseDate.Weekday())
		assert.False(t, record.ReleaseDate.Before(window.First))
		assert.False(t, record.ReleaseDate.After(window.Last))

		assert.NotEmpty(t, record.Title)
		assert.NotEmpty(t, record.PublisherName)
		assert.NotEmpty(t, record.ExternalID)

		require.NotNil(t, record.ISBN13)
		assertValidISBN13(t, *record.ISBN13)
	}
}

/*
TestMockSource_Deterministic verifies that equal seeds generate equal feeds.
*/
func TestMockSource_Deterministic(t *testing.T) {
	window := release.Window{
		First: time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC),
		Last:  time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC),
	}

	first, err := ingest.NewMockSource(7).FetchReleases(context.Background(), window)
	require.NoError(t, err)
	second, err := ingest.NewMockSource(7).FetchReleases(context.Background(), window)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	third, err := ingest.NewMockSource(8).FetchReleases(context.Background(), window)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

/*
TestMockSource_EmptyWindow checks a window with no Tuesdays yields nothing.
*/
func TestMockSource_EmptyWindow(t *testing.T) {
	// 2026-03-04 is a Wednesday, 2026-03-06 a Friday.
	window := release.Window{
		First: time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
		Last:  time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC),
	}

	records, err := ingest.NewMockSource(1).FetchReleases(context.Background(), window)
	require.NoError(t, err)
	assert.Empty(t, records)
}

// assertValidISBN13 recomputes the ISBN-13 check digit.
func assertValidISBN13(t *testing.T, isbn string) {
	t.Helper()
	require.Len(t, isbn, 13)

	sum := 0
	for i, r := range isbn[:12] {
		require.True(t, r >= '0' && r <= '9')
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += weight * int(r-'0')
	}

	check := (10 - sum%10) % 10
	assert.Equal(t, byte('0'+check), isbn[12])
}
