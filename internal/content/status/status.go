// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package status implements the publish gate: one DRAFT/PUBLISHED flag per
// (entity type, entity id), independent of version content.
//
// A missing row means DRAFT. Rows are created by the first approval or
// explicit publish and are never deleted.
package status

import (
	"time"

	"github.com/taibuivan/folio/internal/content"
)

// Status is the publish state of an entity.
type Status string

const (
	Draft     Status = "DRAFT"
	Published Status = "PUBLISHED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == Draft || s == Published
}

// ContentStatus is the gate row of one entity.
type ContentStatus struct {
	ID         int64              `json:"id,omitempty"`
	EntityType content.EntityType `json:"entityType"`
	EntityID   int64              `json:"entityId"`
	Status     Status             `json:"status"`

	// UserID is who last changed the status; nil for the synthetic default.
	UserID    *int64     `json:"userId"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	// Persisted is false for the DRAFT default returned when no row exists.
	Persisted bool `json:"persisted"`
}

// IsPublished reports whether the entity is visible to readers.
func (s *ContentStatus) IsPublished() bool {
	return s != nil && s.Status == Published
}

func defaultStatus(entityType content.EntityType, entityID int64) *ContentStatus {
	return &ContentStatus{EntityType: entityType, EntityID: entityID, Status: Draft}
}
