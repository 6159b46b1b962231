// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package version

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// ownerParam is the URL parameter carrying the owner id, e.g. /sections/{id}.
const ownerParam = "id"

// Handler implements the version endpoints of one level.
type Handler[C Content[C]] struct {
	chain *Chain[C]
}

// NewHandler constructs a handler over chain.
func NewHandler[C Content[C]](chain *Chain[C]) *Handler[C] {
	return &Handler[C]{chain: chain}
}

// RegisterRoutes mounts the endpoints on a router already scoped to
// /{level}/{id}.
func (handler *Handler[C]) RegisterRoutes(router chi.Router) {
	router.Get("/versions", handler.history)
	router.Get("/versions/current", handler.current)
	router.Get("/versions/published", handler.published)
	router.Get("/versions/{versionId}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleEditor))
		r.Post("/versions", handler.create)
		r.Put("/working-version", handler.repoint)
	})
}

type repointRequest struct {
	VersionID int64 `json:"versionId"`
}

func (handler *Handler[C]) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.ID(request, ownerParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input C
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.chain.Create(request.Context(), ownerID, input, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler[C]) history(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.ID(request, ownerParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	versions, err := handler.chain.History(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, versions)
}

func (handler *Handler[C]) current(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.ID(request, ownerParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	working, err := handler.chain.Current(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, working)
}

func (handler *Handler[C]) published(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.ID(request, ownerParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	published, err := handler.chain.Published(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, published)
}

func (handler *Handler[C]) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.ID(request, ownerParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	versionID, err := requestutil.ID(request, "versionId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.chain.Get(request.Context(), versionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// A version is only addressable under its own owner.
	if found.OwnerID != ownerID {
		respond.Error(writer, request, apperr.NotFound(handler.chain.level.Resource()))
		return
	}

	respond.OK(writer, found)
}

func (handler *Handler[C]) repoint(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.ID(request, ownerParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input repointRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	target, err := handler.chain.Repoint(request.Context(), ownerID, input.VersionID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, target)
}
