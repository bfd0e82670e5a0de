// Copyright (c) 2026 Shinkan. All rights reserved.
// Author: dev@shinkan.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts common body and query-string decoding patterns, ensuring
consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shinkan-app/shinkan/internal/platform/apperr"
	"github.com/shinkan-app/shinkan/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Query retrieves a trimmed query-string parameter, or "" when absent.
*/
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
QueryInt retrieves an integer query-string parameter.

Returns the fallback when the parameter is absent or not an integer.
*/
func QueryInt(request *http.Request, name string, fallback int) int {
	raw := Query(request, name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}

/*
QueryDate retrieves an optional ISO date (YYYY-MM-DD) query parameter.

Returns:
  - *time.Time: nil when the parameter is absent
  - error: apperr.ValidationError when present but malformed
*/
func QueryDate(request *http.Request, name string) (*time.Time, error) {
	raw := Query(request, name)
	if raw == "" {
		return nil, nil
	}

	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperr.ValidationError("Invalid date parameter", apperr.FieldError{
			Field:   name,
			Message: "Must be a date in YYYY-MM-DD format",
		})
	}

	return &value, nil
}
