// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package crud_test

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/taibuivan/civicportal/internal/platform/crud"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/platform/validate"
)

// widget is a minimal record used to exercise the generic machinery.
type widget struct {
	ID        int64       `json:"widget_id"`
	Name      string      `json:"name"`
	Owner     pgtype.Int8 `json:"owner"`
	CreatedBy int64       `json:"created_by"`
}

var widgetResource = crud.Resource[widget]{
	Name:     "Widget",
	Event:    "widget",
	Table:    "test.widget",
	IDColumn: "widgetid",
	Columns:  []string{"name", "owner", "createdby"},
	Key:      func(w *widget) *int64 { return &w.ID },
	Values:   func(w *widget) []any { return []any{w.Name, w.Owner, w.CreatedBy} },
	Targets:  func(w *widget) []any { return []any{&w.ID, &w.Name, &w.Owner, &w.CreatedBy} },
	Validate: func(w *widget, v *validate.Validator) {
		v.Required("name", w.Name).MaxLen("name", w.Name, 20)
	},
	Stamp: func(w *widget, principal *sec.Principal) {
		if principal != nil {
			w.CreatedBy = principal.UserID
		}
	},
	Keep: func(updated, stored *widget) {
		updated.CreatedBy = stored.CreatedBy
	},
}
