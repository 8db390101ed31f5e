package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/auth"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/config"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/middleware"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/repository"
)

// AuthHandler bundles dependencies for the auth endpoints: the credential
// store, the token service and the cookie transport.
type AuthHandler struct {
	Cfg     config.Config
	Users   *repository.UserRepo
	Tokens  *auth.TokenService
	Cookies *auth.CookieWriter
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, tokens *auth.TokenService, cookies *auth.CookieWriter) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens, Cookies: cookies}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPart is the safe subset of a user returned to clients. The password
// hash never appears in a response body.
type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

func toUserPart(id uint64, username, email, name string) userPart {
	return userPart{ID: id, Username: username, Email: email, Name: name}
}

// Register creates a user and opens a session immediately: the new token
// pair lands in the response cookies so the client is logged in without a
// second round trip.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username, email, password and name are required"})
	}
	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email is not valid"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := auth.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to register user"})
	}
	uid, err := h.Users.Create(ctx, req.Username, req.Email, hash, req.Name)
	if err != nil {
		// The colliding field is named so the client knows what to change.
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return c.JSON(http.StatusConflict, echo.Map{"message": "Username already taken"})
		case errors.Is(err, repository.ErrDuplicateEmail):
			return c.JSON(http.StatusConflict, echo.Map{"message": "Email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to register user"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to register user"})
	}
	access, refresh, err := h.Tokens.IssuePair(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to issue session"})
	}
	h.Cookies.Set(c, access, refresh)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user":    toUserPart(u.ID, u.Username, u.Email, u.Name),
	})
}

// Login verifies credentials and opens a session. Bad credentials answer
// 401; only the auth gate uses 403.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Same message as a wrong password so the endpoint does not leak
			// which emails exist.
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Login failed"})
	}
	if !auth.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	access, refresh, err := h.Tokens.IssuePair(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to issue session"})
	}
	h.Cookies.Set(c, access, refresh)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"user":    toUserPart(u.ID, u.Username, u.Email, u.Name),
	})
}

// Logout clears both session cookies. The tokens themselves stay valid until
// expiry (they are stateless), but without the cookies the browser can no
// longer present them.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Cookies.Clear(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// Refresh rotates the token pair. The refresh cookie is verified, the user
// is re-fetched by id so a deleted account cannot refresh indefinitely, and
// a brand-new pair is issued. Rotation never extends an existing token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(auth.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Refresh token missing"})
	}
	uid, err := h.Tokens.VerifyRefresh(cookie.Value)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid refresh token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid refresh token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to refresh session"})
	}

	access, refresh, err := h.Tokens.IssuePair(u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to refresh session"})
	}
	h.Cookies.Set(c, access, refresh)

	return c.JSON(http.StatusOK, echo.Map{"message": "Token refreshed successfully"})
}

// Profile returns the caller's account (protected by the auth gate).
func (h *AuthHandler) Profile(c echo.Context) error {
	uid, ok := c.Get(middleware.CtxUserID).(uint64)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to load profile"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user": toUserPart(u.ID, u.Username, u.Email, u.Name),
	})
}
