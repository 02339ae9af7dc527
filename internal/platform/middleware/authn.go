// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/constants"
	"github.com/taibuivan/civicportal/internal/platform/ctxutil"
	"github.com/taibuivan/civicportal/internal/platform/respond"
	"github.com/taibuivan/civicportal/internal/platform/sec"
)

/*
Authenticator resolves request credentials into a [sec.Principal].

Methods:
  - AuthenticateToken: resolves an API key. Unknown keys and inactive owners
    must return an error so the request fails with 401.
  - AuthenticateSession: resolves a session id. Unknown or expired sessions
    return (nil, nil) and the request continues anonymously.
*/
type Authenticator interface {
	AuthenticateToken(ctx context.Context, key string) (*sec.Principal, error)
	AuthenticateSession(ctx context.Context, sessionID string) (*sec.Principal, error)
}

// Authenticate attaches the caller's [sec.Principal] to the request context.
//
// # Flow
//  1. 'Authorization: Bearer <key>' or 'Authorization: Token <key>' is tried first.
//  2. Without a header, the sessionid cookie is resolved.
//  3. With neither, the request proceeds as anonymous.
//
// Requests to one of anonymousOnFailure continue as anonymous instead of
// failing when their credentials do not resolve.
func Authenticate(authenticator Authenticator, anonymousOnFailure ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			lenient := slices.Contains(anonymousOnFailure, request.URL.Path)

			var (
				principal *sec.Principal
				err       error
			)

			if header := request.Header.Get("Authorization"); header != "" {
				key, ok := parseAuthorization(header)
				if !ok {
					err = apperr.NotAuthenticated("Invalid token header.")
				} else {
					principal, err = authenticator.AuthenticateToken(ctx, key)
				}
			} else if cookie, cookieErr := request.Cookie(constants.SessionCookieName); cookieErr == nil && cookie.Value != "" {
				principal, err = authenticator.AuthenticateSession(ctx, cookie.Value)
			}

			if err != nil && lenient {
				ctxutil.GetLogger(ctx).DebugContext(ctx, "credentials_ignored", slog.Any("error", err))
				principal, err = nil, nil
			}
			if err != nil {
				respond.Error(writer, request, err)
				return
			}
			if principal == nil {
				next.ServeHTTP(writer, request)
				return
			}

			recordIdentity(ctx, principal.UserID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithPrincipal(ctx, principal)))
		})
	}
}

// parseAuthorization accepts the "Bearer" and "Token" schemes, case-insensitive.
func parseAuthorization(header string) (string, bool) {
	scheme, key, found := strings.Cut(strings.TrimSpace(header), " ")
	key = strings.TrimSpace(key)
	if !found || key == "" || strings.ContainsAny(key, " \t") {
		return "", false
	}
	if !strings.EqualFold(scheme, "bearer") && !strings.EqualFold(scheme, "token") {
		return "", false
	}
	return key, true
}

// RequireAuth blocks anonymous requests with 401.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.NotAuthenticated("Authentication credentials were not provided."))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireCapability implies [RequireAuth] and answers 403 when the caller
// lacks capability c.
func RequireCapability(c sec.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAuth(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !ctxutil.GetPrincipal(request.Context()).Can(c) {
				respond.Error(writer, request, apperr.Forbidden("You do not have permission to perform this action."))
				return
			}
			next.ServeHTTP(writer, request)
		}))
	}
}
