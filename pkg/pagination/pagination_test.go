// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/civicportal/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		page   int
		limit  int
		offset int
	}{
		{"defaults", "", 1, 20, 0},
		{"explicit", "?page=3&limit=10", 3, 10, 20},
		{"garbage", "?page=abc&limit=xyz", 1, 20, 0},
		{"negative", "?page=-2&limit=-5", 1, 20, 0},
		{"capped", "?limit=1000", 1, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", "/notices"+tt.query, nil))
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
			assert.Equal(t, tt.offset, params.Offset())
		})
	}
}

func TestNewMeta(t *testing.T) {
	assert.Equal(t, 3, pagination.NewMeta(1, 10, 21).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 10, 0).TotalPages)
	assert.Equal(t, "2:50", pagination.Params{Page: 2, Limit: 50}.Key())
}
