// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// Handler implements the structural CRUD endpoints.
//
// # Mounting
//
// [Handler.RegisterRoutes] takes the API root. [Handler.CategoryRoutes] and
// [Handler.NodeRoutes] take routers scoped to /categories/{id} and
// /{level}/{id}, so the version endpoints can share those scopes.
type Handler struct {
	catalog *Catalog
}

// NewHandler constructs a new [Handler].
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes mounts the collection endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/categories", handler.listCategories)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleEditor))
		r.Post("/categories", handler.createCategory)
		for _, level := range Levels {
			r.Post("/"+level.Path, handler.create(level))
		}
	})
}

// CategoryRoutes mounts the endpoints of one category.
func (handler *Handler) CategoryRoutes(router chi.Router) {
	router.Get("/", handler.getCategory)
	router.Get("/"+Books.Path, handler.list(Books))
	router.With(middleware.RequireRole(sec.RoleEditor)).Put("/", handler.updateCategory)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/", handler.deleteCategory)
}

// NodeRoutes returns the mount function for the endpoints of one node.
func (handler *Handler) NodeRoutes(level *Level) func(chi.Router) {
	return func(router chi.Router) {
		router.Get("/", handler.get(level))
		if child := level.Child(); child != nil {
			router.Get("/"+child.Path, handler.list(child))
		}

		router.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(sec.RoleEditor))
			r.Put("/", handler.update(level))
			r.Delete("/", handler.delete(level))
		})
	}
}

// nodeRequest accepts the union of every level's fields; only the ones named
// by the level are read.
type nodeRequest struct {
	CategoryID int64 `json:"categoryId"`
	BookID     int64 `json:"bookId"`
	ChapterID  int64 `json:"chapterId"`
	SectionID  int64 `json:"sectionId"`

	BookNumber      *int `json:"bookNumber"`
	ChapterNumber   *int `json:"chapterNumber"`
	OrderIndex      *int `json:"orderIndex"`
	ParagraphNumber *int `json:"paragraphNumber"`
	Position        *int `json:"position"`
}

func (body nodeRequest) input(level *Level) NodeInput {
	switch level {
	case Books:
		return NodeInput{ParentID: body.CategoryID, Number: body.BookNumber}
	case Chapters:
		return NodeInput{ParentID: body.BookID, Number: body.ChapterNumber, Position: body.Position}
	case Sections:
		return NodeInput{ParentID: body.ChapterID, Number: body.OrderIndex}
	default:
		return NodeInput{ParentID: body.SectionID, Number: body.ParagraphNumber}
	}
}

// # Categories

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.catalog.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.catalog.GetCategory(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input CategoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.catalog.CreateCategory(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CategoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.catalog.UpdateCategory(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.catalog.DeleteCategory(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Nodes

func (handler *Handler) get(level *Level) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		node, err := handler.catalog.Get(request.Context(), level, id)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, node)
	}
}

// list serves the children of the parent named by {id}.
func (handler *Handler) list(level *Level) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		parentID, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		nodes, err := handler.catalog.List(request.Context(), level, parentID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, nodes)
	}
}

func (handler *Handler) create(level *Level) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var body nodeRequest
		if err := requestutil.DecodeJSON(request, &body); err != nil {
			respond.Error(writer, request, err)
			return
		}

		node, err := handler.catalog.Create(request.Context(), level, body.input(level))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Created(writer, node)
	}
}

func (handler *Handler) update(level *Level) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var body nodeRequest
		if err := requestutil.DecodeJSON(request, &body); err != nil {
			respond.Error(writer, request, err)
			return
		}

		node, err := handler.catalog.Update(request.Context(), level, id, body.input(level))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, node)
	}
}

func (handler *Handler) delete(level *Level) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		if err := handler.catalog.Delete(request.Context(), level, id); err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.NoContent(writer)
	}
}
