package auth

import (
	"testing"
	"time"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/config"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/model"
)

func testConfig() config.Config {
	return config.Config{
		AccessSecret:   "access-secret-for-tests",
		RefreshSecret:  "refresh-secret-for-tests",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
	}
}

func TestIssuePair_RoundTrip(t *testing.T) {
	svc := NewTokenService(testConfig())
	u := model.User{ID: 42, Username: "asha", Email: "asha@example.com"}

	access, refresh, err := svc.IssuePair(u)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if access == "" || refresh == "" || access == refresh {
		t.Fatalf("expected two distinct non-empty tokens")
	}

	claims, err := svc.VerifyAccess(access)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "asha" {
		t.Errorf("claims = %+v, want id 42 username asha", claims)
	}

	uid, err := svc.VerifyRefresh(refresh)
	if err != nil {
		t.Fatalf("VerifyRefresh: %v", err)
	}
	if uid != 42 {
		t.Errorf("refresh uid = %d, want 42", uid)
	}
}

func TestIssuePair_UsernameFallsBackToEmail(t *testing.T) {
	svc := NewTokenService(testConfig())
	access, _, err := svc.IssuePair(model.User{ID: 7, Email: "no-username@example.com"})
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	claims, err := svc.VerifyAccess(access)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.Username != "no-username@example.com" {
		t.Errorf("username claim = %q, want the email", claims.Username)
	}
}

func TestVerify_SecretsAreIndependent(t *testing.T) {
	svc := NewTokenService(testConfig())
	access, refresh, err := svc.IssuePair(model.User{ID: 1, Username: "u"})
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	// A refresh token must never pass as an access token and vice versa.
	if _, err := svc.VerifyAccess(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := svc.VerifyRefresh(access); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestVerify_WrongKeyAndGarbage(t *testing.T) {
	svc := NewTokenService(testConfig())
	other := NewTokenService(config.Config{
		AccessSecret:   "a-completely-different-key",
		RefreshSecret:  "and-another-one",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
	})

	access, _, err := svc.IssuePair(model.User{ID: 1, Username: "u"})
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if _, err := other.VerifyAccess(access); err == nil {
		t.Error("token verified under a different key")
	}
	if _, err := svc.VerifyAccess("not-a-token"); err == nil {
		t.Error("garbage string verified")
	}
	if _, err := svc.VerifyAccess(""); err == nil {
		t.Error("empty string verified")
	}
}

func TestVerifyAccess_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTTLMin = -1 // already expired at issue time
	svc := NewTokenService(cfg)

	access, _, err := svc.IssuePair(model.User{ID: 1, Username: "u"})
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if _, err := svc.VerifyAccess(access); err == nil {
		t.Error("expired access token verified")
	}
}

func TestIssuePair_RotationMintsFreshTokens(t *testing.T) {
	svc := NewTokenService(testConfig())
	u := model.User{ID: 9, Username: "rotator"}

	first, _, err := svc.IssuePair(u)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	// The iat claim has second granularity; a rotation one second later must
	// produce a different access token, proving pairs are minted fresh
	// rather than re-signed copies.
	time.Sleep(1100 * time.Millisecond)
	second, _, err := svc.IssuePair(u)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	if first == second {
		t.Error("rotation returned an identical access token")
	}
}
