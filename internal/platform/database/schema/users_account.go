package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Username    string
	Email       string
	FullName    string
	Password    string
	IsActive    string
	IsStaff     string
	IsSuperuser string
	LastLoginAt string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	Email:       "email",
	FullName:    "fullname",
	Password:    "passwordhash",
	IsActive:    "isactive",
	IsStaff:     "isstaff",
	IsSuperuser: "issuperuser",
	LastLoginAt: "lastloginat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.FullName, t.Password, t.IsActive,
		t.IsStaff, t.IsSuperuser, t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
