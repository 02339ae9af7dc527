// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package crud_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicportal/internal/platform/crud"
	"github.com/taibuivan/civicportal/internal/platform/ctxutil"
	"github.com/taibuivan/civicportal/internal/platform/sec"
)

var member = &sec.Principal{UserID: 4, Username: "clerk", IsActive: true, Method: sec.MethodToken}

func newRouter(policy crud.Policy, repo *memoryRepo, principal *sec.Principal) http.Handler {
	service := crud.NewService[widget](repo, widgetResource, discardLogger())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if principal != nil {
				request = request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Route("/widgets", crud.NewHandler(service, policy).RegisterRoutes)
	return router
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_Policies checks each preset against anonymous and member callers.
*/
func TestHandler_Policies(t *testing.T) {
	tests := []struct {
		name      string
		policy    crud.Policy
		principal *sec.Principal
		method    string
		path      string
		body      string
		status    int
	}{
		{"public_read_list_anonymous", crud.PublicRead(sec.CapManageContent), nil, http.MethodGet, "/widgets", "", http.StatusOK},
		{"public_read_get_anonymous", crud.PublicRead(sec.CapManageContent), nil, http.MethodGet, "/widgets/1", "", http.StatusOK},
		{"public_read_create_anonymous", crud.PublicRead(sec.CapManageContent), nil, http.MethodPost, "/widgets", `{"name":"x"}`, http.StatusUnauthorized},
		{"public_read_create_member", crud.PublicRead(sec.CapManageContent), member, http.MethodPost, "/widgets", `{"name":"x"}`, http.StatusCreated},
		{"public_read_delete_anonymous", crud.PublicRead(sec.CapManageContent), nil, http.MethodDelete, "/widgets/1", "", http.StatusUnauthorized},
		{"public_submit_create_anonymous", crud.PublicSubmit(sec.CapManageContent), nil, http.MethodPost, "/widgets", `{"name":"x"}`, http.StatusCreated},
		{"public_submit_list_anonymous", crud.PublicSubmit(sec.CapManageContent), nil, http.MethodGet, "/widgets", "", http.StatusUnauthorized},
		{"public_submit_list_member", crud.PublicSubmit(sec.CapManageContent), member, http.MethodGet, "/widgets", "", http.StatusOK},
		{"private_get_anonymous", crud.Private(sec.CapManageDirectory), nil, http.MethodGet, "/widgets/1", "", http.StatusUnauthorized},
		{"private_patch_member", crud.Private(sec.CapManageDirectory), member, http.MethodPatch, "/widgets/1", `{"name":"y"}`, http.StatusOK},
		{"private_grant_member", crud.Private(sec.CapGrantPrivileges), member, http.MethodGet, "/widgets", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(tt.policy, newMemoryRepo(widget{ID: 1, Name: "lamp", CreatedBy: 1}), tt.principal)
			assert.Equal(t, tt.status, serve(router, tt.method, tt.path, tt.body).Code)
		})
	}
}

func TestHandler_Lifecycle(t *testing.T) {
	repo := newMemoryRepo()
	router := newRouter(crud.PublicRead(sec.CapManageContent), repo, member)

	created := serve(router, http.MethodPost, "/widgets", `{"name":"lamp"}`)
	require.Equal(t, http.StatusCreated, created.Code)

	var body widget
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.ID)
	assert.Equal(t, int64(4), body.CreatedBy)

	replaced := serve(router, http.MethodPut, "/widgets/1", `{"name":"chair"}`)
	require.Equal(t, http.StatusOK, replaced.Code)
	assert.Equal(t, "chair", repo.rows[1].Name)
	assert.Equal(t, int64(4), repo.rows[1].CreatedBy)

	list := serve(router, http.MethodGet, "/widgets?page=1&limit=5", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, `{"data":[{"widget_id":1,"name":"chair","owner":null,"created_by":4}],"meta":{"page":1,"limit":5,"total":1,"total_pages":1}}`, list.Body.String())

	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/widgets/1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/widgets/1", "").Code)
}

func TestHandler_BadInput(t *testing.T) {
	router := newRouter(crud.PublicRead(sec.CapManageContent), newMemoryRepo(), member)

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/widgets/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/widgets/-1", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/widgets", `{"name":`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/widgets", `{"name":""}`).Code)
}
