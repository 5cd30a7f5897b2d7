package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-rental/internal/utils"
)

const testSecret = "test-secret"

func callJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, called, c
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, called, _ := callJWT(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if called {
		t.Error("handler ran without a token")
	}
}

func TestJWTAuthBadToken(t *testing.T) {
	rec, called, _ := callJWT(t, "Bearer garbage")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if called {
		t.Error("handler ran with a bad token")
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret, 9, true)
	if err != nil {
		t.Fatalf("NewAuthToken: %v", err)
	}
	rec, called, c := callJWT(t, "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !called {
		t.Fatal("handler did not run")
	}
	if got, _ := c.Get(CtxUserID).(uint64); got != 9 {
		t.Errorf("context user_id = %v, want 9", c.Get(CtxUserID))
	}
	if got, _ := c.Get(CtxIsAdmin).(bool); !got {
		t.Errorf("context is_admin = %v, want true", c.Get(CtxIsAdmin))
	}
}
