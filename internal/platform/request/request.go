// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It hides chi's parameter extraction and the JSON body decoding pattern behind
helpers that already return [apperr.AppError] values.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/convert"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID parses a numeric URL parameter.

Returns:
  - int64: the positive identifier
  - error: VALIDATION_ERROR naming the parameter when it is missing or malformed
*/
func ID(request *http.Request, name string) (int64, error) {
	id, ok := convert.ToInt64(chi.URLParam(request, name))
	if !ok || id <= 0 {
		return 0, validate.FieldError(name, "Must be a positive integer")
	}
	return id, nil
}

/*
QueryID parses a numeric query-string parameter.
*/
func QueryID(request *http.Request, name string) (int64, error) {
	id, ok := convert.ToInt64(request.URL.Query().Get(name))
	if !ok || id <= 0 {
		return 0, validate.FieldError(name, "Must be a positive integer")
	}
	return id, nil
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredUserID returns the id of the currently authenticated user.

Returns:
  - int64: user id used as createdBy / submittedBy / reviewedBy
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (int64, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return 0, apperr.Unauthorized("Authentication required")
	}
	return claims.UserID, nil
}
