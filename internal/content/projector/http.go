// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package projector

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
)

// Handler serves the read-side projections. All endpoints are public.
type Handler struct {
	projector *Projector
}

// NewHandler constructs a new [Handler].
func NewHandler(projector *Projector) *Handler {
	return &Handler{projector: projector}
}

// RegisterRoutes mounts /public/categories on the API root.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/public/categories", handler.publicCategories)
}

// CategoryRoutes mounts /tree on a router scoped to /categories/{id}.
func (handler *Handler) CategoryRoutes(router chi.Router) {
	router.Get("/tree", handler.categoryTree)
}

// SectionRoutes mounts /view on a router scoped to /sections/{id}.
func (handler *Handler) SectionRoutes(router chi.Router) {
	router.Get("/view", handler.sectionView)
}

func (handler *Handler) publicCategories(writer http.ResponseWriter, request *http.Request) {
	trees, err := handler.projector.PublicCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, trees)
}

func (handler *Handler) categoryTree(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tree, err := handler.projector.CategoryTree(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tree)
}

// sectionView serves ?published=true for the reader view.
func (handler *Handler) sectionView(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	published, _ := strconv.ParseBool(request.URL.Query().Get("published"))
	view, err := handler.projector.SectionView(request.Context(), id, published)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}
