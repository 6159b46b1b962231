// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
)

// Handler implements the review comment endpoints.
type Handler struct {
	thread *Thread
}

// NewHandler constructs a new [Handler].
func NewHandler(thread *Thread) *Handler {
	return &Handler{thread: thread}
}

// RegisterRoutes mounts the comment endpoints next to the review routes.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/reviews/{id}/comments", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/reviews/{id}/comments", handler.add)
		r.Put("/reviews/comments/{commentId}", handler.update)
		r.Delete("/reviews/comments/{commentId}", handler.delete)
	})
}

type addRequest struct {
	ReviewedVersionID int64  `json:"reviewedVersionId"`
	FieldName         string `json:"fieldName"`
	CommentText       string `json:"commentText"`
}

type updateRequest struct {
	CommentText string `json:"commentText"`
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input addRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	added, err := handler.thread.Add(request.Context(), reviewID, input.ReviewedVersionID, input.FieldName, input.CommentText, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, added)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.thread.List(request.Context(), reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	commentID, err := requestutil.ID(request, "commentId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.thread.Update(request.Context(), commentID, input.CommentText, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	commentID, err := requestutil.ID(request, "commentId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.thread.Delete(request.Context(), commentID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
