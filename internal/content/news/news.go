// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package news publishes news items, events and announcements.

The three kinds share one table and are told apart by type.
*/
package news

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/taibuivan/civicportal/internal/platform/crud"
	"github.com/taibuivan/civicportal/internal/platform/database/schema"
	"github.com/taibuivan/civicportal/internal/platform/postgres"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/platform/validate"
)

const (
	TypeNews         = "News"
	TypeEvent        = "Event"
	TypeAnnouncement = "Announcement"
)

// Item is one row of content.newsevent.
type Item struct {
	ID        int64       `json:"news_event_id"`
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	EventDate pgtype.Date `json:"event_date"`
	Type      string      `json:"type"`
	CreatedBy int64       `json:"created_by"`
}

var Resource = crud.Resource[Item]{
	Name:     "News item",
	Event:    "news_event",
	Table:    schema.ContentNewsEvent.Table,
	IDColumn: schema.ContentNewsEvent.ID,
	Columns: []string{
		schema.ContentNewsEvent.Title,
		schema.ContentNewsEvent.Body,
		schema.ContentNewsEvent.EventDate,
		schema.ContentNewsEvent.Type,
		schema.ContentNewsEvent.CreatedBy,
	},
	OrderBy: schema.ContentNewsEvent.EventDate + " DESC NULLS LAST, " + schema.ContentNewsEvent.ID + " DESC",

	Key: func(item *Item) *int64 { return &item.ID },
	Values: func(item *Item) []any {
		return []any{item.Title, item.Body, item.EventDate, item.Type, item.CreatedBy}
	},
	Targets: func(item *Item) []any {
		return []any{&item.ID, &item.Title, &item.Body, &item.EventDate, &item.Type, &item.CreatedBy}
	},

	Validate: func(item *Item, validator *validate.Validator) {
		validator.
			Required("title", item.Title).
			MaxLen("title", item.Title, 255).
			OneOf("type", item.Type, TypeNews, TypeEvent, TypeAnnouncement)
	},
	Stamp: func(item *Item, principal *sec.Principal) {
		if principal != nil {
			item.CreatedBy = principal.UserID
		}
	},
	Keep: func(updated, stored *Item) {
		updated.CreatedBy = stored.CreatedBy
	},
}

// Register mounts /news-events.
func Register(router chi.Router, db postgres.DBTX, logger *slog.Logger, opts ...crud.Option) {
	crud.Mount(router, "/news-events", db, Resource, crud.PublicRead(sec.CapManageContent), logger, opts...)
}
