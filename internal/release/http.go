// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package release

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shinkan-app/shinkan/internal/platform/constants"
	requestutil "github.com/shinkan-app/shinkan/internal/platform/request"
	"github.com/shinkan-app/shinkan/internal/platform/respond"
	"github.com/shinkan-app/shinkan/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterReleaseRoutes(router chi.Router) {
	router.Get("/current", handler.currentMonth)
	router.Get("/upcoming", handler.upcoming)
	router.Get("/search", handler.search)
}

func (handler *Handler) RegisterPublisherRoutes(router chi.Router) {
	router.Get("/", handler.listPublishers)
}

func (handler *Handler) RegisterMetadataRoutes(router chi.Router) {
	router.Get("/filters", handler.filterOptions)
}

func (handler *Handler) currentMonth(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request, constants.DefaultCurrentLimit)

	criteria := criteriaFromRequest(request)
	criteria.Limit = paginationParams.Limit
	criteria.Offset = paginationParams.Offset

	result, err := handler.service.CurrentMonth(request.Context(), criteria)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, result)
}

func (handler *Handler) upcoming(writer http.ResponseWriter, request *http.Request) {
	months := requestutil.QueryInt(request, "months", constants.DefaultUpcomingMonths)

	result, err := handler.service.Upcoming(request.Context(), months, criteriaFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, result)
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request, constants.DefaultSearchLimit)

	dateFrom, err := requestutil.QueryDate(request, "date_from")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	dateTo, err := requestutil.QueryDate(request, "date_to")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := SearchParams{
		Text:     requestutil.Query(request, "q"),
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Limit:    paginationParams.Limit,
		Offset:   paginationParams.Offset,
	}

	result, err := handler.service.Search(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, result)
}

func (handler *Handler) listPublishers(writer http.ResponseWriter, request *http.Request) {
	publishers, err := handler.service.Publishers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, publishers)
}

func (handler *Handler) filterOptions(writer http.ResponseWriter, request *http.Request) {
	options, err := handler.service.FilterOptions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, options)
}

// criteriaFromRequest extracts the shared filter parameters. Pagination and
// sort defaults are applied by the service.
func criteriaFromRequest(request *http.Request) Criteria {
	return Criteria{
		PublisherSlug: requestutil.Query(request, "publisher"),
		Region:        requestutil.Query(request, "region"),
		Format:        requestutil.Query(request, "format"),
		Sort:          Sort(requestutil.Query(request, "sort")),
	}
}
