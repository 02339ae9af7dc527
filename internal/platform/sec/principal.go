// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Authentication Methods

// Method records how the caller proved its identity.
type Method string

const (
	// MethodToken is an Authorization header carrying the API key.
	MethodToken Method = "token"

	// MethodSession is the sessionid cookie.
	MethodSession Method = "session"
)

// # Capabilities

// Capability names an action class granted by account flags.
type Capability string

const (
	// CapManageContent covers writes to notices, tenders, news, gallery,
	// documents, schemes, and the reads of citizen submissions.
	CapManageContent Capability = "manage_content"

	// CapManageDirectory covers users, roles, permissions and their junctions.
	CapManageDirectory Capability = "manage_directory"

	// CapGrantPrivileges allows changing is_staff and is_superuser.
	CapGrantPrivileges Capability = "grant_privileges"

	// CapUpdateWithoutPassword allows user updates that omit the password.
	CapUpdateWithoutPassword Capability = "update_without_password"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID      int64
	Username    string
	IsActive    bool
	IsStaff     bool
	IsSuperuser bool

	Method Method

	// SessionID is the raw session id when Method is [MethodSession].
	SessionID string
}

// Can reports whether the principal holds capability c.
//
// Inactive accounts hold nothing. Every active account holds the content and
// directory capabilities; superusers additionally hold the privileged ones.
func (p *Principal) Can(c Capability) bool {
	if p == nil || !p.IsActive {
		return false
	}
	switch c {
	case CapManageContent, CapManageDirectory:
		return true
	case CapGrantPrivileges, CapUpdateWithoutPassword:
		return p.IsSuperuser
	default:
		return false
	}
}

// RequiresPasswordOnUpdate reports whether a user update issued by p must
// carry a password.
func RequiresPasswordOnUpdate(p *Principal) bool {
	return !p.Can(CapUpdateWithoutPassword)
}
