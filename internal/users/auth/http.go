// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/civicportal/internal/platform/apperr"
	"github.com/taibuivan/civicportal/internal/platform/constants"
	"github.com/taibuivan/civicportal/internal/platform/middleware"
	requestutil "github.com/taibuivan/civicportal/internal/platform/request"
	"github.com/taibuivan/civicportal/internal/platform/respond"
)

// # Definitions & Constructors

// CookieOptions control the cookies written at login.
type CookieOptions struct {
	// Secure restricts the cookies to HTTPS.
	Secure bool
}

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
	cookies     CookieOptions
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, cookies CookieOptions) *Handler {
	return &Handler{authService: service, cookies: cookies}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /login      : Opens a session and returns the API token.
//   - POST /register   : Creates an account and returns its API token.
//   - POST /logout     : Revokes the token and destroys the session.
//   - GET  /profile    : Returns the caller's profile.
//   - GET  /check_auth : Reports whether the caller is authenticated.
//
// None of the routes is gated: logout and profile answer anonymous callers
// with their own error bodies.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/register", handler.register)
	router.Post("/logout", handler.logout)
	router.Get("/profile", handler.profile)
	router.Get("/check_auth", handler.checkAuth)

	return router
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// # Response Payloads

type loginResponse struct {
	Token     string   `json:"token"`
	User      *Profile `json:"user"`
	CSRFToken string   `json:"csrf_token"`
	Message   string   `json:"message"`
}

type registerResponse struct {
	Token   string   `json:"token"`
	User    *Profile `json:"user"`
	Message string   `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: loginResponse, plus the sessionid and csrftoken cookies
  - 400: Missing fields, invalid credentials or disabled account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Username:         input.Username,
		Password:         input.Password,
		CurrentSessionID: sessionCookie(request),
		Meta: SessionMeta{
			UserAgent: request.UserAgent(),
			IPAddress: middleware.RealIP(request),
		},
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	maxAge := int(handler.authService.SessionTTL().Seconds())
	http.SetCookie(writer, handler.cookie(constants.SessionCookieName, result.SessionID, maxAge, true))
	http.SetCookie(writer, handler.cookie(constants.CSRFCookieName, result.CSRFToken, maxAge, false))

	respond.OK(writer, loginResponse{
		Token:     result.Token,
		User:      result.User,
		CSRFToken: result.CSRFToken,
		Message:   MsgLoginSuccessful,
	})
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Request:
  - Body: registerRequest (Username, Email, FullName, Password, ConfirmPassword)

Response:
  - 201: registerResponse
  - 400: Validation failure, including duplicate username or email
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:        input.Username,
		Email:           input.Email,
		FullName:        input.FullName,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, registerResponse{
		Token:   result.Token,
		User:    result.User,
		Message: MsgRegistrationSuccessful,
	})
}

/*
Logout terminates the caller's token and session.

POST /api/v1/auth/logout

Response:
  - 200: messageResponse, and both cookies cleared
  - 400: {message} when the caller was not logged in
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	err := handler.authService.Logout(request.Context(), requestutil.Principal(request), sessionCookie(request))
	if appError := apperr.As(err); appError != nil && appError.Code == apperr.CodeNotAuthenticated {
		respond.JSON(writer, appError.HTTPStatus, messageResponse{Message: appError.Message})
		return
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.cookie(constants.SessionCookieName, "", -1, true))
	http.SetCookie(writer, handler.cookie(constants.CSRFCookieName, "", -1, false))

	respond.OK(writer, messageResponse{Message: MsgLogoutSuccessful})
}

// profile handles GET /api/v1/auth/profile.
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.authService.Profile(request.Context(), requestutil.Principal(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

// checkAuth handles GET /api/v1/auth/check_auth. It always answers 200.
func (handler *Handler) checkAuth(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.authService.CheckAuth(request.Context(), requestutil.Principal(request)))
}

func (handler *Handler) cookie(name, value string, maxAge int, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   handler.cookies.Secure,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteLaxMode,
	}
}

func sessionCookie(request *http.Request) string {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
