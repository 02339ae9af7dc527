// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rbac holds the role and permission directory.

Roles, permissions and the two junction tables are plain records managed by
directory staff. Request authorization does not read them; it is decided by
account flags through [sec.Principal.Can].
*/
package rbac

import (
	"github.com/taibuivan/civicportal/internal/platform/crud"
	"github.com/taibuivan/civicportal/internal/platform/database/schema"
	"github.com/taibuivan/civicportal/internal/platform/dberr"
	"github.com/taibuivan/civicportal/internal/platform/validate"
)

// MaxNameLength bounds role_name and permission_name.
const MaxNameLength = 50

func init() {
	dberr.Register("role_rolename_key", dberr.Violation{Field: "role_name", Message: "role with this role name already exists."})
	dberr.Register("permission_permissionname_key", dberr.Violation{Field: "permission_name", Message: "permission with this permission name already exists."})

	dberr.Register("userrole_userid_roleid_key", dberr.Violation{Field: "non_field_errors", Message: "The fields user_id, role_id must make a unique set."})
	dberr.Register("userrole_userid_fkey", dberr.Violation{Field: "user_id", Message: "Referenced user does not exist."})
	dberr.Register("userrole_roleid_fkey", dberr.Violation{Field: "role_id", Message: "Referenced role does not exist."})

	dberr.Register("rolepermission_roleid_permissionid_key", dberr.Violation{Field: "non_field_errors", Message: "The fields role_id, permission_id must make a unique set."})
	dberr.Register("rolepermission_roleid_fkey", dberr.Violation{Field: "role_id", Message: "Referenced role does not exist."})
	dberr.Register("rolepermission_permissionid_fkey", dberr.Violation{Field: "permission_id", Message: "Referenced permission does not exist."})
}

// # Entities

type Role struct {
	ID   int64  `json:"role_id"`
	Name string `json:"role_name"`
}

type Permission struct {
	ID   int64  `json:"permission_id"`
	Name string `json:"permission_name"`
}

// UserRole assigns a role to an account.
type UserRole struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	RoleID int64 `json:"role_id"`
}

// RolePermission grants a permission to a role.
type RolePermission struct {
	ID           int64 `json:"id"`
	RoleID       int64 `json:"role_id"`
	PermissionID int64 `json:"permission_id"`
}

// # Resources

var RoleResource = crud.Resource[Role]{
	Name:     "Role",
	Event:    "role",
	Table:    schema.UserRole.Table,
	IDColumn: schema.UserRole.ID,
	Columns:  []string{schema.UserRole.Name},
	OrderBy:  schema.UserRole.Name + " ASC",
	Key:      func(role *Role) *int64 { return &role.ID },
	Values:   func(role *Role) []any { return []any{role.Name} },
	Targets:  func(role *Role) []any { return []any{&role.ID, &role.Name} },
	Validate: func(role *Role, validator *validate.Validator) {
		validator.Required("role_name", role.Name).MaxLen("role_name", role.Name, MaxNameLength)
	},
}

var PermissionResource = crud.Resource[Permission]{
	Name:     "Permission",
	Event:    "permission",
	Table:    schema.UserPermission.Table,
	IDColumn: schema.UserPermission.ID,
	Columns:  []string{schema.UserPermission.Name},
	OrderBy:  schema.UserPermission.Name + " ASC",
	Key:      func(permission *Permission) *int64 { return &permission.ID },
	Values:   func(permission *Permission) []any { return []any{permission.Name} },
	Targets:  func(permission *Permission) []any { return []any{&permission.ID, &permission.Name} },
	Validate: func(permission *Permission, validator *validate.Validator) {
		validator.Required("permission_name", permission.Name).MaxLen("permission_name", permission.Name, MaxNameLength)
	},
}

var UserRoleResource = crud.Resource[UserRole]{
	Name:     "User role",
	Event:    "user_role",
	Table:    schema.UserRoleAssignment.Table,
	IDColumn: schema.UserRoleAssignment.ID,
	Columns:  []string{schema.UserRoleAssignment.UserID, schema.UserRoleAssignment.RoleID},
	Key:      func(assignment *UserRole) *int64 { return &assignment.ID },
	Values:   func(assignment *UserRole) []any { return []any{assignment.UserID, assignment.RoleID} },
	Targets: func(assignment *UserRole) []any {
		return []any{&assignment.ID, &assignment.UserID, &assignment.RoleID}
	},
	Validate: func(assignment *UserRole, validator *validate.Validator) {
		validator.RequiredID("user_id", assignment.UserID).RequiredID("role_id", assignment.RoleID)
	},
}

var RolePermissionResource = crud.Resource[RolePermission]{
	Name:     "Role permission",
	Event:    "role_permission",
	Table:    schema.RolePermission.Table,
	IDColumn: schema.RolePermission.ID,
	Columns:  []string{schema.RolePermission.RoleID, schema.RolePermission.PermissionID},
	Key:      func(grant *RolePermission) *int64 { return &grant.ID },
	Values:   func(grant *RolePermission) []any { return []any{grant.RoleID, grant.PermissionID} },
	Targets: func(grant *RolePermission) []any {
		return []any{&grant.ID, &grant.RoleID, &grant.PermissionID}
	},
	Validate: func(grant *RolePermission, validator *validate.Validator) {
		validator.RequiredID("role_id", grant.RoleID).RequiredID("permission_id", grant.PermissionID)
	},
}
