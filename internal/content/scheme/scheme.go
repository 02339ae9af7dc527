// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package scheme publishes government schemes and public works projects.

Budgets are exact decimals with two fractional digits; they travel as
[pgtype.Numeric] end to end and are never converted to floats.
*/
package scheme

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
	TypeScheme  = "Scheme"
	TypeProject = "Project"
)

// Entry is one row of content.schemeproject.
type Entry struct {
	ID          int64          `json:"sp_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	StartDate   pgtype.Date    `json:"start_date"`
	EndDate     pgtype.Date    `json:"end_date"`
	Budget      pgtype.Numeric `json:"budget"`
	Type        string         `json:"type"`
}

var Resource = crud.Resource[Entry]{
	Name:     "Scheme or project",
	Event:    "scheme_project",
	Table:    schema.ContentSchemeProject.Table,
	IDColumn: schema.ContentSchemeProject.ID,
	Columns: []string{
		schema.ContentSchemeProject.Name,
		schema.ContentSchemeProject.Description,
		schema.ContentSchemeProject.StartDate,
		schema.ContentSchemeProject.EndDate,
		schema.ContentSchemeProject.Budget,
		schema.ContentSchemeProject.Type,
	},

	Key: func(entry *Entry) *int64 { return &entry.ID },
	Values: func(entry *Entry) []any {
		return []any{entry.Name, entry.Description, entry.StartDate, entry.EndDate, entry.Budget, entry.Type}
	},
	Targets: func(entry *Entry) []any {
		return []any{&entry.ID, &entry.Name, &entry.Description, &entry.StartDate, &entry.EndDate, &entry.Budget, &entry.Type}
	},

	Validate: func(entry *Entry, validator *validate.Validator) {
		validator.
			Required("name", entry.Name).
			MaxLen("name", entry.Name, 255).
			OneOf("type", entry.Type, TypeScheme, TypeProject).
			Custom("budget", negative(entry.Budget), "Ensure this value is greater than or equal to 0.")

		if entry.StartDate.Valid && entry.EndDate.Valid {
			validator.NotBefore("end_date", entry.EndDate.Time, entry.StartDate.Time)
		}
	},
}

func negative(amount pgtype.Numeric) bool {
	return amount.Valid && amount.Int != nil && amount.Int.Sign() < 0
}

// Register mounts /schemes-projects.
func Register(router chi.Router, db postgres.DBTX, logger *slog.Logger, opts ...crud.Option) {
	crud.Mount(router, "/schemes-projects", db, Resource, crud.PublicRead(sec.CapManageContent), logger, opts...)
}
