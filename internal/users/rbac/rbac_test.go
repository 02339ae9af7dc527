// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rbac_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/crud"
	"github.com/taibuivan/civicportal/internal/platform/ctxutil"
	"github.com/taibuivan/civicportal/internal/platform/sec"
	"github.com/taibuivan/civicportal/internal/users/rbac"
)

var clerk = &sec.Principal{UserID: 2, Username: "clerk", IsActive: true}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRoleResource_Validation(t *testing.T) {
	tests := []struct {
		name  string
		role  rbac.Role
		field string
	}{
		{"empty", rbac.Role{}, "role_name"},
		{"too_long", rbac.Role{Name: strings.Repeat("r", rbac.MaxNameLength+1)}, "role_name"},
		{"ok", rbac.Role{Name: "Editor"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			if tt.field == "" {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users.role (rolename) VALUES ($1) RETURNING roleid, rolename`)).
					WithArgs("Editor").
					WillReturnRows(pgxmock.NewRows([]string{"roleid", "rolename"}).AddRow(int64(1), "Editor"))
			}

			service := crud.NewService[rbac.Role](crud.NewStore(mock, rbac.RoleResource), rbac.RoleResource, discardLogger())
			role := tt.role
			err = service.Create(context.Background(), &role, clerk)

			if tt.field == "" {
				require.NoError(t, err)
				assert.Equal(t, int64(1), role.ID)
			} else {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

/*
TestUserRoleResource_Constraints maps junction violations to field errors.
*/
func TestUserRoleResource_Constraints(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		constraint string
		field      string
	}{
		{"duplicate_pair", pgerrcode.UniqueViolation, "userrole_userid_roleid_key", "non_field_errors"},
		{"unknown_user", pgerrcode.ForeignKeyViolation, "userrole_userid_fkey", "user_id"},
		{"unknown_role", pgerrcode.ForeignKeyViolation, "userrole_roleid_fkey", "role_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectQuery(`INSERT INTO users.userrole \(userid, roleid\)`).
				WithArgs(int64(3), int64(4)).
				WillReturnError(&pgconn.PgError{Code: tt.code, ConstraintName: tt.constraint})

			service := crud.NewService[rbac.UserRole](crud.NewStore(mock, rbac.UserRoleResource), rbac.UserRoleResource, discardLogger())
			err = service.Create(context.Background(), &rbac.UserRole{UserID: 3, RoleID: 4}, clerk)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

func TestRegister_RequiresDirectoryCapability(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	router := chi.NewRouter()
	rbac.Register(router, mock, discardLogger())

	for _, path := range []string{"/roles/", "/permissions/", "/user-roles/", "/role-permissions/"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, path)
	}
}

func TestRegister_ListRolePermissions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM users.rolepermission`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, roleid, permissionid FROM users.rolepermission ORDER BY id DESC LIMIT $1 OFFSET $2`)).
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "roleid", "permissionid"}).AddRow(int64(1), int64(2), int64(3)))

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithPrincipal(request.Context(), clerk)))
		})
	})
	rbac.Register(router, mock, discardLogger())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/role-permissions/", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t,
		`{"data":[{"id":1,"role_id":2,"permission_id":3}],"meta":{"page":1,"limit":20,"total":1,"total_pages":1}}`,
		recorder.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
