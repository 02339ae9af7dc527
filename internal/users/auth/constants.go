// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "github.com/taibuivan/civicportal/internal/platform/apperr"

// # Token Settings

const (
	// SessionIDBytes is the entropy of a session id (64 hex characters).
	SessionIDBytes = 32
)

// # Field Length Limits

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxFullNameLength = 255
)

// # JSON Field Identifiers

const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldFullName        = "full_name"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldIsStaff         = "is_staff"
	FieldIsSuperuser     = "is_superuser"
	FieldNonField        = apperr.NonFieldErrors
)

// # Client Messages

const (
	MsgMissingCredentials = `Must include "username" and "password".`
	MsgInvalidCredentials = "Unable to log in with provided credentials."
	MsgPasswordMismatch   = "Passwords don't match"
	MsgNotAuthenticated   = "User not authenticated"
	MsgInvalidToken       = "Invalid token."
	MsgInactiveToken      = "User inactive or deleted."
	MsgDuplicateUsername  = "A user with that username already exists."
	MsgDuplicateEmail     = "A user with that email already exists."
	MsgGrantForbidden     = "Only superusers may change staff or superuser status."
	MsgSuperuserProtected = "Only superusers may modify another superuser account."

	MsgLoginSuccessful        = "Login successful"
	MsgRegistrationSuccessful = "Registration successful"
	MsgLogoutSuccessful       = "Logout successful"
)

// # Metric Events

const (
	EventLoginSucceeded = "login_succeeded"
	EventLoginFailed    = "login_failed"
	EventLoginDisabled  = "login_disabled"
	EventRegistered     = "registered"
	EventLoggedOut      = "logged_out"
	EventTokenRejected  = "token_rejected"
)
