// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentStatusTable represents the 'content.content_status' table
type ContentStatusTable struct {
	Table            string
	ID               string
	EntityType       string
	EntityID         string
	Status           string
	UserID           string
	CreatedAt        string
	UpdatedAt        string
	EntityConstraint string
}

// ContentStatus is the schema definition for content.content_status
var ContentStatus = ContentStatusTable{
	Table:            "content.content_status",
	ID:               "id",
	EntityType:       "entity_type",
	EntityID:         "entity_id",
	Status:           "status",
	UserID:           "user_id",
	CreatedAt:        "created_at",
	UpdatedAt:        "updated_at",
	EntityConstraint: "uq_content_status_entity",
}

func (t ContentStatusTable) Columns() []string {
	return []string{t.ID, t.EntityType, t.EntityID, t.Status, t.UserID, t.CreatedAt, t.UpdatedAt}
}
