// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

package ingest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/shinkan-app/shinkan/internal/platform/request"
	"github.com/shinkan-app/shinkan/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the sync trigger. The caller wraps the router in
// the admin authorization middleware.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/sync", handler.triggerSync)
}

// syncRequest is the optional trigger body. Months overrides the configured
// horizon for one run; zero keeps the default.
type syncRequest struct {
	Months int `json:"months"`
}

func (handler *Handler) triggerSync(writer http.ResponseWriter, request *http.Request) {
	var params syncRequest
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &params); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	report, err := handler.service.Sync(request.Context(), params.Months)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}
