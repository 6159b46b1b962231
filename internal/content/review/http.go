// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/folio/internal/platform/middleware"
	requestutil "github.com/taibuivan/folio/internal/platform/request"
	"github.com/taibuivan/folio/internal/platform/respond"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pagination"
)

// Handler implements the review endpoints.
type Handler struct {
	workflow *Workflow
}

// NewHandler constructs a new [Handler].
func NewHandler(workflow *Workflow) *Handler {
	return &Handler{workflow: workflow}
}

// RegisterRoutes mounts the /reviews endpoints.
//
// Routes are registered flat so the comment endpoints can share the prefix.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/reviews", handler.listByStatus)
	router.Get("/reviews/item", handler.listByItem)
	router.Get("/reviews/{id}", handler.get)

	router.With(middleware.RequireRole(sec.RoleEditor)).Post("/reviews", handler.submit)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleReviewer))
		r.Post("/reviews/{id}/approve", handler.approve)
		r.Post("/reviews/{id}/reject", handler.reject)
	})
}

type submitRequest struct {
	Type        string  `json:"type"`
	ReferenceID int64   `json:"referenceId"`
	VersionID   int64   `json:"versionId"`
	Comment     *string `json:"comment"`
}

type resolveRequest struct {
	Comment *string `json:"comment"`
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	t, _ := ParseType(input.Type)
	submitted, err := handler.workflow.Submit(request.Context(), t, input.ReferenceID, input.VersionID, userID, input.Comment)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, submitted)
}

func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	handler.resolve(writer, request, handler.workflow.Approve)
}

func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	handler.resolve(writer, request, handler.workflow.Reject)
}

func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request,
	transition func(ctx context.Context, reviewID, reviewedBy int64, comment *string) (*Review, error)) {

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

	// The body is optional for approvals.
	var input resolveRequest
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	resolved, err := transition(request.Context(), reviewID, userID, input.Comment)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, resolved)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.workflow.Get(request.Context(), reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

// listByStatus serves the reviewer queue; the state defaults to SUBMITTED.
func (handler *Handler) listByStatus(writer http.ResponseWriter, request *http.Request) {
	state := StateSubmitted
	if raw := request.URL.Query().Get("status"); raw != "" {
		parsed, ok := ParseState(raw)
		if !ok {
			respond.Error(writer, request, validate.FieldError("status", "Must be one of: SUBMITTED, APPROVED, REJECTED"))
			return
		}
		state = parsed
	}

	page := pagination.FromRequest(request)
	reviews, total, err := handler.workflow.ListByStatus(request.Context(), state, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(page, total))
}

func (handler *Handler) listByItem(writer http.ResponseWriter, request *http.Request) {
	referenceID, err := requestutil.QueryID(request, "referenceId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	t, _ := ParseType(request.URL.Query().Get("type"))
	reviews, err := handler.workflow.ListByItem(request.Context(), t, referenceID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reviews)
}
