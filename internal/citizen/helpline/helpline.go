// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package helpline records helpline queries raised by citizens.
package helpline

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/taibuivan/civicportal/internal/platform/crud"
	"github.com/taibuivan/civicportal/internal/platform/database/schema"
	"github.com/taibuivan/civicportal/internal/platform/dberr"
	"github.com/taibuivan/civicportal/internal/platform/postgres"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/platform/validate"
)

// MaxContactNumberLength matches the column width.
const MaxContactNumberLength = 15

func init() {
	dberr.Register("helplinequery_assignedto_fkey", dberr.Violation{Field: "assigned_to", Message: "Referenced user does not exist."})
}

type Query struct {
	ID            int64       `json:"query_id"`
	Title         string      `json:"title"`
	Details       string      `json:"details"`
	ContactNumber string      `json:"contact_number"`
	AssignedTo    pgtype.Int8 `json:"assigned_to"`
	QueryDate     time.Time   `json:"query_date"`
}

var Resource = crud.Resource[Query]{
	Name:     "Helpline query",
	Event:    "helpline_query",
	Table:    schema.CitizenHelplineQuery.Table,
	IDColumn: schema.CitizenHelplineQuery.ID,
	Columns: []string{
		schema.CitizenHelplineQuery.Title,
		schema.CitizenHelplineQuery.Details,
		schema.CitizenHelplineQuery.ContactNumber,
		schema.CitizenHelplineQuery.AssignedTo,
	},
	ReadOnlyColumns: []string{schema.CitizenHelplineQuery.QueryDate},
	OrderBy:         schema.CitizenHelplineQuery.QueryDate + " DESC, " + schema.CitizenHelplineQuery.ID + " DESC",

	Key: func(query *Query) *int64 { return &query.ID },
	Values: func(query *Query) []any {
		return []any{query.Title, query.Details, query.ContactNumber, query.AssignedTo}
	},
	Targets: func(query *Query) []any {
		return []any{&query.ID, &query.Title, &query.Details, &query.ContactNumber, &query.AssignedTo, &query.QueryDate}
	},

	Validate: func(query *Query, validator *validate.Validator) {
		validator.
			MaxLen("title", query.Title, 255).
			Required("details", query.Details).
			Required("contact_number", query.ContactNumber).
			MaxLen("contact_number", query.ContactNumber, MaxContactNumberLength)
	},
	// Submitters cannot pick the staff member handling their query.
	Stamp: func(query *Query, _ *sec.Principal) {
		query.AssignedTo = pgtype.Int8{}
	},
}

// Register mounts /helpline-queries.
func Register(router chi.Router, db postgres.DBTX, logger *slog.Logger) {
	crud.Mount(router, "/helpline-queries", db, Resource, crud.PublicSubmit(sec.CapManageContent), logger)
}
