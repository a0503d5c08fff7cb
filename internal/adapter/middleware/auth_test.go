package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"p2p-lending-backend/internal/security"

	"github.com/labstack/echo/v4"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setupAuthEcho(tm security.TokenManager) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.GET("/me", func(c echo.Context) error {
		id, ok := UserID(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.String(http.StatusOK, strconv.FormatUint(id, 10))
	}, JWTAuth(tm))
	return e
}

func TestJWTAuth(t *testing.T) {
	tm := security.NewTokenManager(testSecret, time.Hour)
	good, err := tm.GenerateAccessToken(12, "alice")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	otherKey, _ := security.NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour).GenerateAccessToken(12, "alice")

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + good, http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized, ""},
		{"other signing key", "Bearer " + otherKey, http.StatusUnauthorized, ""},
		{"valid", "Bearer " + good, http.StatusOK, "12"},
		{"valid lowercase scheme", "bearer " + good, http.StatusOK, "12"},
	}
	e := setupAuthEcho(tm)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Fatalf("code=%d, want %d (body=%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Fatalf("body=%q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestUserID_Unset(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := UserID(c); ok {
		t.Fatalf("UserID must be absent on a fresh context")
	}
	SetUserID(c, 5)
	if id, ok := UserID(c); !ok || id != 5 {
		t.Fatalf("UserID=%d,%v", id, ok)
	}
}
