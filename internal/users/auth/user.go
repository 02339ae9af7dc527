// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/taibuivan/civicportal/internal/platform/sec"
)

// # Domain Entities

// User is a portal account.
//
// # Security
//
// PasswordHash is never serialised. Outward representations go through [Profile].
type User struct {
	ID           int64              `json:"user_id"`
	Username     string             `json:"username"`
	Email        string             `json:"email"`
	FullName     string             `json:"full_name"`
	PasswordHash string             `json:"-"`
	IsActive     bool               `json:"is_active"`
	IsStaff      bool               `json:"is_staff"`
	IsSuperuser  bool               `json:"is_superuser"`
	LastLogin    pgtype.Timestamptz `json:"last_login"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Profile is the public view of a [User].
type Profile struct {
	ID          int64  `json:"user_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// ToProfile projects the account onto its public view.
func (user *User) ToProfile() *Profile {
	return &Profile{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}
}

// Principal builds the request identity for the account.
func (user *User) Principal(method sec.Method, sessionID string) *sec.Principal {
	return &sec.Principal{
		UserID:      user.ID,
		Username:    user.Username,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		Method:      method,
		SessionID:   sessionID,
	}
}

// Session binds a server-side session to an account.
// The raw session id is never part of the stored value.
type Session struct {
	UserID    int64     `json:"user_id"`
	UserAgent string    `json:"user_agent,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
