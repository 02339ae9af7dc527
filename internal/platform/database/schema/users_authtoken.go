package schema

// UserAuthTokenTable represents the 'users.authtoken' table
type UserAuthTokenTable struct {
	Table     string
	Key       string
	UserID    string
	CreatedAt string
}

// UserAuthToken is the schema definition for users.authtoken
var UserAuthToken = UserAuthTokenTable{
	Table:     "users.authtoken",
	Key:       "key",
	UserID:    "userid",
	CreatedAt: "createdat",
}
