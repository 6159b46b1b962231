// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package status

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/query"
)

// maxBatch caps the ids of one batch lookup.
const maxBatch = 100

// Handler implements the status endpoints.
type Handler struct {
	gate *Gate
}

// NewHandler constructs a new [Handler].
func NewHandler(gate *Gate) *Handler {
	return &Handler{gate: gate}
}

// RegisterRoutes mounts /status.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/status/{type}", handler.published)
	router.Route("/status/{type}/{id}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.With(middleware.RequireRole(sec.RoleReviewer)).Post("/publish", handler.publish)
	})
}

func entityType(request *http.Request) content.EntityType {
	return content.EntityType(strings.ToLower(requestutil.Param(request, "type")))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.gate.Get(request.Context(), entityType(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	published, err := handler.gate.Publish(request.Context(), entityType(request), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, published)
}

// published handles GET /status/{type}?ids=1,2,3 and answers with the
// subset that is PUBLISHED, in ascending order.
func (handler *Handler) published(writer http.ResponseWriter, request *http.Request) {
	ids, ok := query.IDList(request.URL.Query().Get("ids"))
	switch {
	case !ok:
		respond.Error(writer, request, validate.FieldError("ids", "Must be a comma-separated list of ids"))
		return
	case len(ids) == 0:
		respond.Error(writer, request, validate.FieldError("ids", "Must not be empty"))
		return
	case len(ids) > maxBatch:
		respond.Error(writer, request, validate.FieldError("ids", "Must not exceed 100 ids"))
		return
	}

	found, err := handler.gate.PublishedIDs(request.Context(), entityType(request), ids)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	published := make([]int64, 0, len(found))
	for id := range found {
		published = append(published, id)
	}
	slices.Sort(published)

	respond.OK(writer, map[string]any{"published": published})
}
