// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package feedback collects citizen feedback.

Anyone may submit; staff read and triage. A submission always starts as New
and is linked to the caller's account when the caller is signed in.
*/
package feedback

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

func init() {
	dberr.Register("feedback_citizenuser_fkey", dberr.Violation{Field: "citizen_user", Message: "Referenced user does not exist."})
}

// # Status

const (
	StatusNew        = "New"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusClosed     = "Closed"
)

type Feedback struct {
	ID            int64       `json:"feedback_id"`
	Subject       string      `json:"subject"`
	Message       string      `json:"message"`
	CitizenUser   pgtype.Int8 `json:"citizen_user"`
	CitizenName   string      `json:"citizen_name"`
	CitizenEmail  string      `json:"citizen_email"`
	Status        string      `json:"status"`
	SubmittedDate time.Time   `json:"submitted_date"`
}

var Resource = crud.Resource[Feedback]{
	Name:     "Feedback",
	Event:    "feedback",
	Table:    schema.CitizenFeedback.Table,
	IDColumn: schema.CitizenFeedback.ID,
	Columns: []string{
		schema.CitizenFeedback.Subject,
		schema.CitizenFeedback.Message,
		schema.CitizenFeedback.CitizenUser,
		schema.CitizenFeedback.CitizenName,
		schema.CitizenFeedback.CitizenEmail,
		schema.CitizenFeedback.Status,
	},
	ReadOnlyColumns: []string{schema.CitizenFeedback.SubmittedDate},
	OrderBy:         schema.CitizenFeedback.SubmittedDate + " DESC, " + schema.CitizenFeedback.ID + " DESC",

	Key: func(feedback *Feedback) *int64 { return &feedback.ID },
	Values: func(feedback *Feedback) []any {
		return []any{
			feedback.Subject, feedback.Message, feedback.CitizenUser,
			feedback.CitizenName, feedback.CitizenEmail, feedback.Status,
		}
	},
	Targets: func(feedback *Feedback) []any {
		return []any{
			&feedback.ID, &feedback.Subject, &feedback.Message, &feedback.CitizenUser,
			&feedback.CitizenName, &feedback.CitizenEmail, &feedback.Status, &feedback.SubmittedDate,
		}
	},

	Validate: func(feedback *Feedback, validator *validate.Validator) {
		validator.
			Required("subject", feedback.Subject).
			MaxLen("subject", feedback.Subject, 255).
			Required("message", feedback.Message).
			MaxLen("citizen_name", feedback.CitizenName, 255).
			MaxLen("citizen_email", feedback.CitizenEmail, 254).
			OneOf("status", feedback.Status, StatusNew, StatusInProgress, StatusResolved, StatusClosed)

		if feedback.CitizenEmail != "" {
			validator.Email("citizen_email", feedback.CitizenEmail)
		}
	},
	Stamp: func(feedback *Feedback, principal *sec.Principal) {
		feedback.Status = StatusNew
		feedback.CitizenUser = pgtype.Int8{}
		if principal != nil {
			feedback.CitizenUser = pgtype.Int8{Int64: principal.UserID, Valid: true}
		}
	},
	Keep: func(updated, stored *Feedback) {
		updated.CitizenUser = stored.CitizenUser
		if updated.Status == "" {
			updated.Status = stored.Status
		}
	},
}

// Register mounts /feedback.
func Register(router chi.Router, db postgres.DBTX, logger *slog.Logger) {
	crud.Mount(router, "/feedback", db, Resource, crud.PublicSubmit(sec.CapManageContent), logger)
}
