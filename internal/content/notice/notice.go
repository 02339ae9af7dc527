// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notice publishes official municipal notices.

Anyone may read notices; writes require [sec.CapManageContent]. The author is
stamped from the caller on create and never changes afterwards.
*/
package notice

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

// # Status

const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
	StatusArchived  = "Archived"
)

// Notice is one row of content.notice.
type Notice struct {
	ID               int64       `json:"notice_id"`
	Title            string      `json:"title"`
	Content          string      `json:"content"`
	PublishDate      pgtype.Date `json:"publish_date"`
	ExpiryDate       pgtype.Date `json:"expiry_date"`
	DocumentFilePath string      `json:"document_file_path"`
	CreatedBy        int64       `json:"created_by"`
	Status           string      `json:"status"`
}

var Resource = crud.Resource[Notice]{
	Name:     "Notice",
	Event:    "notice",
	Table:    schema.ContentNotice.Table,
	IDColumn: schema.ContentNotice.ID,
	Columns: []string{
		schema.ContentNotice.Title,
		schema.ContentNotice.Content,
		schema.ContentNotice.PublishDate,
		schema.ContentNotice.ExpiryDate,
		schema.ContentNotice.DocumentFilePath,
		schema.ContentNotice.CreatedBy,
		schema.ContentNotice.Status,
	},
	OrderBy: schema.ContentNotice.PublishDate + " DESC, " + schema.ContentNotice.ID + " DESC",

	Key: func(notice *Notice) *int64 { return &notice.ID },
	Values: func(notice *Notice) []any {
		return []any{
			notice.Title, notice.Content, notice.PublishDate, notice.ExpiryDate,
			notice.DocumentFilePath, notice.CreatedBy, notice.Status,
		}
	},
	Targets: func(notice *Notice) []any {
		return []any{
			&notice.ID, &notice.Title, &notice.Content, &notice.PublishDate, &notice.ExpiryDate,
			&notice.DocumentFilePath, &notice.CreatedBy, &notice.Status,
		}
	},

	Validate: func(notice *Notice, validator *validate.Validator) {
		validator.
			Required("title", notice.Title).
			MaxLen("title", notice.Title, 255).
			RequiredTime("publish_date", notice.PublishDate.Time).
			MaxLen("document_file_path", notice.DocumentFilePath, 255).
			OneOf("status", notice.Status, StatusDraft, StatusPublished, StatusArchived)

		if notice.ExpiryDate.Valid && notice.PublishDate.Valid {
			validator.NotBefore("expiry_date", notice.ExpiryDate.Time, notice.PublishDate.Time)
		}
	},
	Stamp: func(notice *Notice, principal *sec.Principal) {
		if principal != nil {
			notice.CreatedBy = principal.UserID
		}
		if notice.Status == "" {
			notice.Status = StatusDraft
		}
	},
	Keep: func(updated, stored *Notice) {
		updated.CreatedBy = stored.CreatedBy
		// Status has a default, so a full replace may omit it.
		if updated.Status == "" {
			updated.Status = stored.Status
		}
	},
}

// Register mounts /notices.
func Register(router chi.Router, db postgres.DBTX, logger *slog.Logger, opts ...crud.Option) {
	crud.Mount(router, "/notices", db, Resource, crud.PublicRead(sec.CapManageContent), logger, opts...)
}
