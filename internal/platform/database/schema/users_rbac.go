package schema

// UserRoleTable represents the 'users.role' table
type UserRoleTable struct {
	Table string
	ID    string
	Name  string
}

// UserRole is the schema definition for users.role
var UserRole = UserRoleTable{
	Table: "users.role",
	ID:    "roleid",
	Name:  "rolename",
}

// UserPermissionTable represents the 'users.permission' table
type UserPermissionTable struct {
	Table string
	ID    string
	Name  string
}

// UserPermission is the schema definition for users.permission
var UserPermission = UserPermissionTable{
	Table: "users.permission",
	ID:    "permissionid",
	Name:  "permissionname",
}

// UserRoleAssignmentTable represents the 'users.userrole' junction
type UserRoleAssignmentTable struct {
	Table  string
	ID     string
	UserID string
	RoleID string
}

// UserRoleAssignment is the schema definition for users.userrole
var UserRoleAssignment = UserRoleAssignmentTable{
	Table:  "users.userrole",
	ID:     "id",
	UserID: "userid",
	RoleID: "roleid",
}

// RolePermissionTable represents the 'users.rolepermission' junction
type RolePermissionTable struct {
	Table        string
	ID           string
	RoleID       string
	PermissionID string
}

// RolePermission is the schema definition for users.rolepermission
var RolePermission = RolePermissionTable{
	Table:        "users.rolepermission",
	ID:           "id",
	RoleID:       "roleid",
	PermissionID: "permissionid",
}
