// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package document lists downloadable public documents.
package document

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/civicportal/internal/platform/crud"
	"github.com/taibuivan/civicportal/internal/platform/database/schema"
	"github.com/taibuivan/civicportal/internal/platform/postgres"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/platform/validate"
)

type Document struct {
	ID         int64  `json:"doc_id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	FilePath   string `json:"file_path"`
	UploadedBy int64  `json:"uploaded_by"`
}

var Resource = crud.Resource[Document]{
	Name:     "Document",
	Event:    "document",
	Table:    schema.ContentDocument.Table,
	IDColumn: schema.ContentDocument.ID,
	Columns: []string{
		schema.ContentDocument.Title,
		schema.ContentDocument.Category,
		schema.ContentDocument.FilePath,
		schema.ContentDocument.UploadedBy,
	},

	Key: func(document *Document) *int64 { return &document.ID },
	Values: func(document *Document) []any {
		return []any{document.Title, document.Category, document.FilePath, document.UploadedBy}
	},
	Targets: func(document *Document) []any {
		return []any{&document.ID, &document.Title, &document.Category, &document.FilePath, &document.UploadedBy}
	},

	Validate: func(document *Document, validator *validate.Validator) {
		validator.
			Required("title", document.Title).
			MaxLen("title", document.Title, 255).
			MaxLen("category", document.Category, 100).
			Required("file_path", document.FilePath).
			MaxLen("file_path", document.FilePath, 255)
	},
	Stamp: func(document *Document, principal *sec.Principal) {
		if principal != nil {
			document.UploadedBy = principal.UserID
		}
	},
	Keep: func(updated, stored *Document) {
		updated.UploadedBy = stored.UploadedBy
	},
}

// Register mounts /documents.
func Register(router chi.Router, db postgres.DBTX, logger *slog.Logger, opts ...crud.Option) {
	crud.Mount(router, "/documents", db, Resource, crud.PublicRead(sec.CapManageContent), logger, opts...)
}
