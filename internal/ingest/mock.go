// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package ingest

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shinkan-app/shinkan/internal/release"
	"github.com/shinkan-app/shinkan/pkg/pointer"
)

// mockSeries is the sample catalogue the mock feed draws from.
type mockSeries struct {
	name        string
	demographic string
	genres      []string
	publisher   string
}

var mockCatalogue = []mockSeries{
	{"Chainsaw Man", "Shonen", []string{"Action", "Horror", "Supernatural"}, "VIZ Media"},
	{"My Hero Academia", "Shonen", []string{"Action", "Adventure"}, "VIZ Media"},
	{"Spy x Family", "Shonen", []string{"Action", "Comedy"}, "VIZ Media"},
	{"Witch Hat Atelier", "Shonen", []string{"Fantasy", "Adventure"}, "Kodansha Comics"},
	{"Blue Period", "Seinen", []string{"Drama", "Slice of Life"}, "Kodansha Comics"},
	{"Skip and Loafer", "Shojo", []string{"Romance", "Comedy"}, "Seven Seas"},
	{"Shadows House", "Shonen", []string{"Mystery", "Supernatural"}, "Yen Press"},
	{"Vinland Saga", "Seinen", []string{"Historical", "Action"}, "Kodansha Comics"},
	{"A Sign of Affection", "Josei", []string{"Romance", "Drama"}, "Kodansha Comics"},
	{"Yotsuba&!", "Shonen", []string{"Slice of Life", "Comedy"}, "Yen Press"},
}

// MockSource generates plausible sample releases for development and tests.
//
// Releases land on Tuesdays (the industry's street date), two to four per
// week. The generator is seeded, so a fixed seed yields a fixed feed.
type MockSource struct {
	rng *rand.Rand
}

// NewMockSource creates a mock feed with a deterministic seed.
func NewMockSource(seed int64) *MockSource {
	return &MockSource{rng: rand.New(rand.NewSource(seed))}
}

// Name identifies the feed in provenance records and sync reports.
func (source *MockSource) Name() string { return "mock" }

// HealthCheck always succeeds; there is no upstream.
func (source *MockSource) HealthCheck(context context.Context) error { return nil }

// FetchReleases generates sample releases for every Tuesday in the window.
func (source *MockSource) FetchReleases(_ context.Context, window release.Window) ([]RawRelease, error) {
	var releases []RawRelease

	for day := window.First; !day.After(window.Last); day = day.AddDate(0, 0, 1) {
		if day.Weekday() != time.Tuesday {
			continue
		}

		count := 2 + source.rng.Intn(3)
		for i := 0; i < count; i++ {
			releases = append(releases, source.generate(day))
		}
	}

	return releases, nil
}

// generate builds one sample release dated on day.
func (source *MockSource) generate(day time.Time) RawRelease {
	series := mockCatalogue[source.rng.Intn(len(mockCatalogue))]
	volume := 1 + source.rng.Intn(25)
	seriesSlug := strings.ReplaceAll(strings.ToLower(series.name), " ", "-")

	format := "Paperback"
	if source.rng.Intn(2) == 1 {
		format = "Hardcover"
	}

	return RawRelease{
		Title:         fmt.Sprintf("%s, Vol. %d", series.name, volume),
		SeriesName:    pointer.To(series.name),
		VolumeLabel:   pointer.To(strconv.Itoa(volume)),
		ISBN13:        pointer.To(source.generateISBN()),
		ReleaseDate:   day,
		PublisherName: series.publisher,
		Format:        pointer.To(format),
		PageCount:     pointer.To(160 + source.rng.Intn(81)),
		PriceUSD:      pointer.To(source.price(9.99, 16.99)),
		PriceGBP:      pointer.To(source.price(7.99, 13.99)),
		CoverURL: pointer.To(fmt.Sprintf("https://placehold.co/400x600?text=%s",
			url.QueryEscape(fmt.Sprintf("%s Vol. %d", series.name, volume)))),
		Description: pointer.To(fmt.Sprintf("Volume %d of the popular %s manga series %s.",
			volume, strings.ToLower(series.demographic), series.name)),
		Demographic:  pointer.To(series.demographic),
		Genres:       series.genres,
		Regions:      []string{"us", "uk", "ca"},
		Authors:      []string{fmt.Sprintf("Author %d", 1+source.rng.Intn(100))},
		Illustrators: []string{fmt.Sprintf("Illustrator %d", 1+source.rng.Intn(100))},
		ExternalID:   fmt.Sprintf("mock-%s-%d", seriesSlug, volume),
		SourceURL:    fmt.Sprintf("https://example.com/manga/%s/vol-%d", seriesSlug, volume),
		RawData:      emptyRawData,
	}
}

// emptyRawData is the provenance payload for generated records.
var emptyRawData = []byte(`{}`)

// price draws a two-decimal price in [low, high).
func (source *MockSource) price(low, high float64) float64 {
	raw := low + source.rng.Float64()*(high-low)
	return float64(int(raw*100)) / 100
}

// generateISBN produces a syntactically valid ISBN-13 in the 978-1 group
// with a correct check digit.
func (source *MockSource) generateISBN() string {
	digits := "9781" +
		strconv.Itoa(100000+source.rng.Intn(900000)) +
		strconv.Itoa(10+source.rng.Intn(90))

	sum := 0
	for i, r := range digits {
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += weight * int(r-'0')
	}
	check := (10 - sum%10) % 10

	return digits + strconv.Itoa(check)
}
