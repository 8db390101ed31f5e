package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestCookieWriter_Set(t *testing.T) {
	w := NewCookieWriter(NewTokenService(testConfig()), true)
	c, rec := newTestContext()

	w.Set(c, "the-access-token", "the-refresh-token")

	access := cookieByName(t, rec, AccessCookieName)
	if access.Value != "the-access-token" {
		t.Errorf("access value = %q", access.Value)
	}
	if access.Path != AccessCookiePath {
		t.Errorf("access path = %q, want %q", access.Path, AccessCookiePath)
	}
	if access.MaxAge != 15*60 {
		t.Errorf("access max-age = %d, want %d", access.MaxAge, 15*60)
	}
	if !access.HttpOnly || !access.Secure {
		t.Error("access cookie must be http-only and secure")
	}
	if access.SameSite != http.SameSiteNoneMode {
		t.Errorf("access SameSite = %v, want None", access.SameSite)
	}

	refresh := cookieByName(t, rec, RefreshCookieName)
	if refresh.Path != RefreshCookiePath {
		t.Errorf("refresh path = %q, want %q (path scoping is the defense in depth)", refresh.Path, RefreshCookiePath)
	}
	if refresh.MaxAge != 7*24*60*60 {
		t.Errorf("refresh max-age = %d, want %d", refresh.MaxAge, 7*24*60*60)
	}
}

func TestCookieWriter_ClearMatchesSetAttributes(t *testing.T) {
	w := NewCookieWriter(NewTokenService(testConfig()), true)

	setCtx, setRec := newTestContext()
	w.Set(setCtx, "a", "r")
	clearCtx, clearRec := newTestContext()
	w.Clear(clearCtx)

	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		set := cookieByName(t, setRec, name)
		cleared := cookieByName(t, clearRec, name)

		if cleared.Value != "" {
			t.Errorf("%s: cleared value = %q, want empty", name, cleared.Value)
		}
		if cleared.MaxAge >= 0 {
			t.Errorf("%s: cleared max-age = %d, want negative (expire now)", name, cleared.MaxAge)
		}
		// A clear with different attributes targets a different cookie and
		// the original would survive in the browser.
		if cleared.Path != set.Path {
			t.Errorf("%s: clear path %q != set path %q", name, cleared.Path, set.Path)
		}
		if cleared.HttpOnly != set.HttpOnly || cleared.Secure != set.Secure || cleared.SameSite != set.SameSite {
			t.Errorf("%s: clear attributes differ from set attributes", name)
		}
	}
}
