// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/constants"
	"github.com/taibuivan/civicportal/internal/platform/ctxutil"
	"github.com/taibuivan/civicportal/internal/platform/respond"
	"github.com/taibuivan/civicportal/internal/platform/sec"
)

// CSRFVerifier checks a CSRF token against the session it was issued for.
type CSRFVerifier interface {
	Verify(token, sessionID string) error
}

// CSRF enforces the X-CSRFToken header on unsafe requests authenticated by
// the session cookie. Token-authenticated and anonymous requests pass through.
//
// Must be registered AFTER [Authenticate].
func CSRF(verifier CSRFVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())
			if principal == nil || principal.Method != sec.MethodSession || isSafeMethod(request.Method) {
				next.ServeHTTP(writer, request)
				return
			}

			token := request.Header.Get(constants.CSRFHeaderName)
			if token == "" || verifier.Verify(token, principal.SessionID) != nil {
				respond.Error(writer, request, apperr.Forbidden("CSRF Failed: CSRF token missing or incorrect."))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
