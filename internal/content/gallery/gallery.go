// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package gallery catalogues published photos and videos by file path.
package gallery

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/civicportal/internal/platform/crud"
	"github.com/taibuivan/civicportal/internal/platform/database/schema"
	"github.com/taibuivan/civicportal/internal/platform/postgres"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/platform/validate"
)

const (
	TypePhoto = "Photo"
	TypeVideo = "Video"
)

// Media is one row of content.gallery. UploadDate is set by the database.
type Media struct {
	ID         int64     `json:"media_id"`
	Caption    string    `json:"caption"`
	FilePath   string    `json:"file_path"`
	Type       string    `json:"type"`
	UploadDate time.Time `json:"upload_date"`
}

var Resource = crud.Resource[Media]{
	Name:     "Media",
	Event:    "gallery_media",
	Table:    schema.ContentGallery.Table,
	IDColumn: schema.ContentGallery.ID,
	Columns: []string{
		schema.ContentGallery.Caption,
		schema.ContentGallery.FilePath,
		schema.ContentGallery.Type,
	},
	ReadOnlyColumns: []string{schema.ContentGallery.UploadDate},
	OrderBy:         schema.ContentGallery.UploadDate + " DESC, " + schema.ContentGallery.ID + " DESC",

	Key:    func(media *Media) *int64 { return &media.ID },
	Values: func(media *Media) []any { return []any{media.Caption, media.FilePath, media.Type} },
	Targets: func(media *Media) []any {
		return []any{&media.ID, &media.Caption, &media.FilePath, &media.Type, &media.UploadDate}
	},

	Validate: func(media *Media, validator *validate.Validator) {
		validator.
			MaxLen("caption", media.Caption, 255).
			Required("file_path", media.FilePath).
			MaxLen("file_path", media.FilePath, 255).
			OneOf("type", media.Type, TypePhoto, TypeVideo)
	},
}

// Register mounts /gallery.
func Register(router chi.Router, db postgres.DBTX, logger *slog.Logger, opts ...crud.Option) {
	crud.Mount(router, "/gallery", db, Resource, crud.PublicRead(sec.CapManageContent), logger, opts...)
}
