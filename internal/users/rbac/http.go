// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package rbac

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/civicportal/internal/platform/crud"
	"github.com/taibuivan/civicportal/internal/platform/postgres"
	"github.com/taibuivan/civicportal/internal/platform/sec"
)

// Register mounts /roles, /permissions, /user-roles and /role-permissions.
// Every action requires [sec.CapManageDirectory].
func Register(router chi.Router, db postgres.DBTX, logger *slog.Logger) {
	policy := crud.Private(sec.CapManageDirectory)

	crud.Mount(router, "/roles", db, RoleResource, policy, logger)
	crud.Mount(router, "/permissions", db, PermissionResource, policy, logger)
	crud.Mount(router, "/user-roles", db, UserRoleResource, policy, logger)
	crud.Mount(router, "/role-permissions", db, RolePermissionResource, policy, logger)
}
