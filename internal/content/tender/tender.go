// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tender publishes procurement tenders and their deadlines.
package tender

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

type Tender struct {
	ID                 int64              `json:"tender_id"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	DocumentPath       string             `json:"tender_document_path"`
	SubmissionDeadline pgtype.Timestamptz `json:"submission_deadline"`
	OpeningDate        pgtype.Timestamptz `json:"opening_date"`
}

var Resource = crud.Resource[Tender]{
	Name:     "Tender",
	Event:    "tender",
	Table:    schema.ContentTender.Table,
	IDColumn: schema.ContentTender.ID,
	Columns: []string{
		schema.ContentTender.Title,
		schema.ContentTender.Description,
		schema.ContentTender.DocumentPath,
		schema.ContentTender.SubmissionDeadline,
		schema.ContentTender.OpeningDate,
	},
	OrderBy: schema.ContentTender.SubmissionDeadline + " DESC, " + schema.ContentTender.ID + " DESC",

	Key: func(tender *Tender) *int64 { return &tender.ID },
	Values: func(tender *Tender) []any {
		return []any{tender.Title, tender.Description, tender.DocumentPath, tender.SubmissionDeadline, tender.OpeningDate}
	},
	Targets: func(tender *Tender) []any {
		return []any{
			&tender.ID, &tender.Title, &tender.Description, &tender.DocumentPath,
			&tender.SubmissionDeadline, &tender.OpeningDate,
		}
	},

	Validate: func(tender *Tender, validator *validate.Validator) {
		validator.
			Required("title", tender.Title).
			MaxLen("title", tender.Title, 255).
			Required("tender_document_path", tender.DocumentPath).
			MaxLen("tender_document_path", tender.DocumentPath, 255).
			RequiredTime("submission_deadline", tender.SubmissionDeadline.Time)
	},
}

// Register mounts /tenders.
func Register(router chi.Router, db postgres.DBTX, logger *slog.Logger, opts ...crud.Option) {
	crud.Mount(router, "/tenders", db, Resource, crud.PublicRead(sec.CapManageContent), logger, opts...)
}
