package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/auth"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/config"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
)

func testTokenService() *auth.TokenService {
	return auth.NewTokenService(config.Config{
		AccessSecret:   "gate-access-secret",
		RefreshSecret:  "gate-refresh-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
	})
}

// invoke runs the gate-wrapped handler for a request and reports the status
// plus the claims the gate stored in context.
func invoke(t *testing.T, svc *auth.TokenService, cookie *http.Cookie) (int, string, any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUserID any
	next := func(c echo.Context) error {
		seenUserID = c.Get(CtxUserID)
		return c.NoContent(http.StatusOK)
	}
	if err := RequireAuth(svc)(next)(c); err != nil {
		t.Fatalf("gate returned error: %v", err)
	}
	return rec.Code, rec.Body.String(), seenUserID
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	code, body, _ := invoke(t, testTokenService(), nil)
	// 403, not 401: the gate has always answered Forbidden and clients
	// depend on the asymmetry with login's 401.
	if code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", code)
	}
	if !strings.Contains(body, "Authentication required") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	code, body, _ := invoke(t, testTokenService(), &http.Cookie{
		Name: auth.AccessCookieName, Value: "definitely-not-a-jwt",
	})
	if code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", code)
	}
	if !strings.Contains(body, "Invalid or expired token") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	svc := testTokenService()
	_, refresh, err := svc.IssuePair(model.User{ID: 3, Username: "eve"})
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	// A refresh token in the access cookie must not open the gate.
	code, _, _ := invoke(t, svc, &http.Cookie{Name: auth.AccessCookieName, Value: refresh})
	if code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	svc := testTokenService()
	access, _, err := svc.IssuePair(model.User{ID: 11, Username: "asha"})
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	code, _, uid := invoke(t, svc, &http.Cookie{Name: auth.AccessCookieName, Value: access})
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if got, ok := uid.(uint64); !ok || got != 11 {
		t.Errorf("context user id = %v, want uint64(11)", uid)
	}
}
