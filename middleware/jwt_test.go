package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"EstateView/favorites"
	"EstateView/middleware"
	"EstateView/utils"
)

const secret = "testsecret"

// run sends one request through JWTIdentity and reports the status and the
// actor the downstream handler saw.
func run(t *testing.T, authHeader string) (int, favorites.Actor, bool) {
	t.Helper()
	e := echo.New()

	var (
		actor favorites.Actor
		found bool
	)
	e.GET("/", func(c echo.Context) error {
		actor, found = favorites.ActorFromContext(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	}, middleware.JWTIdentity(secret))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code, actor, found
}

func TestJWTIdentity_NoHeaderIsAnonymous(t *testing.T) {
	code, _, found := run(t, "")
	if code != http.StatusNoContent {
		t.Fatalf("status = %d", code)
	}
	if found {
		t.Error("anonymous request should carry no actor")
	}
}

func TestJWTIdentity_ValidTokenSetsActor(t *testing.T) {
	token, err := utils.GenerateJWT(secret, "u-42", "a@example.com", "user", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	code, actor, found := run(t, "Bearer "+token)
	if code != http.StatusNoContent || !found {
		t.Fatalf("status = %d, found = %v", code, found)
	}
	if actor.ID != "u-42" || actor.Email != "a@example.com" {
		t.Errorf("actor = %+v", actor)
	}
}

func TestJWTIdentity_Rejections(t *testing.T) {
	wrongKey, _ := utils.GenerateJWT("other", "u-42", "", "user", time.Hour)

	cases := map[string]string{
		"bad scheme":   "Token abc",
		"no token":     "Bearer",
		"garbage":      "Bearer abc.def.ghi",
		"wrong secret": "Bearer " + wrongKey,
	}

	for name, header := range cases {
		if code, _, _ := run(t, header); code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, code)
		}
	}
}
