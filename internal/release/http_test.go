// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package release_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinkan-app/shinkan/internal/release"
)

func newTestRouter(service *release.Service) *chi.Mux {
	handler := release.NewHandler(service)

	router := chi.NewRouter()
	router.Route("/api/v1/releases", handler.RegisterReleaseRoutes)
	router.Route("/api/v1/publishers", handler.RegisterPublisherRoutes)
	router.Route("/api/v1/metadata", handler.RegisterMetadataRoutes)
	return router
}

func doGet(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

/*
TestHandler_CurrentMonth exercises query parameter plumbing down to the
store fake and the response envelope shape.
*/
func TestHandler_CurrentMonth(t *testing.T) {
	today := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepository{releases: []*release.Release{
		testRelease(1, "Chainsaw Man, Vol. 12", time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), "viz-media"),
		testRelease(2, "Skip and Loafer, Vol. 5", time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC), "seven-seas"),
	}}
	router := newTestRouter(newTestService(repo, &fakePublisherRepository{}, today))

	t.Run("unfiltered", func(t *testing.T) {
		recorder := doGet(t, router, "/api/v1/releases/current")
		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data []json.RawMessage `json:"data"`
			Meta struct {
				Total int    `json:"total"`
				Limit int    `json:"limit"`
				Month string `json:"month"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

		assert.Len(t, body.Data, 2)
		assert.Equal(t, 2, body.Meta.Total)
		assert.Equal(t, 100, body.Meta.Limit)
		assert.Equal(t, "2026-03", body.Meta.Month)
	})

	t.Run("publisher_filter", func(t *testing.T) {
		recorder := doGet(t, router, "/api/v1/releases/current?publisher=viz-media&limit=10")
		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Meta struct {
				Total int `json:"total"`
				Limit int `json:"limit"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Meta.Total)
		assert.Equal(t, 10, body.Meta.Limit)
	})

	t.Run("invalid_sort_is_400", func(t *testing.T) {
		recorder := doGet(t, router, "/api/v1/releases/current?sort=isbn")
		require.Equal(t, http.StatusBadRequest, recorder.Code)

		var body struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
	})
}

/*
TestHandler_Upcoming checks the months parameter and the grouped envelope.
*/
func TestHandler_Upcoming(t *testing.T) {
	today := time.Date(2026, time.November, 2, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepository{releases: []*release.Release{
		testRelease(1, "December Volume", time.Date(2026, time.December, 8, 0, 0, 0, 0, time.UTC), "viz-media"),
	}}
	router := newTestRouter(newTestService(repo, &fakePublisherRepository{}, today))

	t.Run("grouped_by_month", func(t *testing.T) {
		recorder := doGet(t, router, "/api/v1/releases/upcoming?months=2")
		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data map[string][]json.RawMessage `json:"data"`
			Meta struct {
				Total         int      `json:"total"`
				MonthsCovered []string `json:"months_covered"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

		assert.Equal(t, []string{"2026-12", "2027-01"}, body.Meta.MonthsCovered)
		assert.Equal(t, 1, body.Meta.Total)
		assert.Len(t, body.Data["2026-12"], 1)
		assert.Contains(t, body.Data, "2027-01")
	})

	t.Run("months_out_of_range_is_400", func(t *testing.T) {
		recorder := doGet(t, router, "/api/v1/releases/upcoming?months=9")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

/*
TestHandler_Search checks required text, date bound parsing, and the echo
of the query in the meta block.
*/
func TestHandler_Search(t *testing.T) {
	repo := &fakeRepository{releases: []*release.Release{
		testRelease(1, "Vinland Saga, Vol. 1", time.Date(2026, time.May, 19, 0, 0, 0, 0, time.UTC), "kodansha-comics"),
	}}
	router := newTestRouter(newTestService(repo, &fakePublisherRepository{}, time.Now()))

	t.Run("found", func(t *testing.T) {
		recorder := doGet(t, router, "/api/v1/releases/search?q=vinland")
		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Meta struct {
				Query string `json:"query"`
				Limit int    `json:"limit"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "vinland", body.Meta.Query)
		assert.Equal(t, 50, body.Meta.Limit)
	})

	t.Run("missing_query_is_400", func(t *testing.T) {
		recorder := doGet(t, router, "/api/v1/releases/search")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("malformed_date_is_400", func(t *testing.T) {
		recorder := doGet(t, router, "/api/v1/releases/search?q=vinland&date_from=March+1")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

/*
TestHandler_Metadata checks the publisher listing and filter enumeration
endpoints.
*/
func TestHandler_Metadata(t *testing.T) {
	publishers := &fakePublisherRepository{publishers: []release.PublisherCount{
		{ID: 1, Name: "VIZ Media", Slug: "viz-media", ReleaseCount: 3},
	}}
	router := newTestRouter(newTestService(&fakeRepository{}, publishers, time.Now()))

	t.Run("publishers", func(t *testing.T) {
		recorder := doGet(t, router, "/api/v1/publishers")
		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data []release.PublisherCount `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, publishers.publishers, body.Data)
	})

	t.Run("filters", func(t *testing.T) {
		recorder := doGet(t, router, "/api/v1/metadata/filters")
		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data release.FilterOptions `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, release.KnownRegions, body.Data.Regions)
		assert.Len(t, body.Data.Publishers, 1)
	})
}
