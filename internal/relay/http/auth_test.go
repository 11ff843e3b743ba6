package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/intakeworks/authrelay/internal/relay/domain"
	relayhttp "github.com/intakeworks/authrelay/internal/relay/http"
	"github.com/intakeworks/authrelay/internal/relay/provider"
	"github.com/intakeworks/authrelay/internal/relay/service"
	"github.com/intakeworks/authrelay/internal/relay/store"
	"github.com/intakeworks/authrelay/pkg/jwtx"
	"github.com/intakeworks/authrelay/pkg/slogx"
)

const (
	frontendURL = "https://app.example.test/intake"
	clientID    = "intake-client"
)

// newTestRouter builds a router against a provider that is never actually
// contacted. That is enough for every handler path except the full
// callback exchange, which the end-to-end tests cover.
func newTestRouter(t *testing.T) *relayhttp.Router {
	t.Helper()

	endpoints, err := provider.ResolveEndpoints("https://sso.example.test", "intake")
	require.NoError(t, err)

	keys := jwtx.NewRemoteKeySet(endpoints.JWKS, time.Hour, nil)
	results := store.NewResultStore(time.Minute, nil)

	logger := slogx.New(slogx.Config{Service: "authrelay", Env: "test", Level: "error", Format: "text"})
	router := relayhttp.NewRouter(keys, jwtx.NewVerifierRS256(keys, endpoints.Issuer, nil), "test", logger)
	router.AuthService = &service.AuthService{
		Provider:    provider.NewClient(endpoints, clientID, "s3cret", "https://relay.example.test/auth/callback", 0),
		States:      jwtx.NewStateCodec([]byte("state-signing-secret"), clientID),
		IDTokens:    jwtx.NewVerifierRS256(keys, endpoints.Issuer, []string{clientID}),
		Results:     results,
		FrontendURL: frontendURL,
	}
	router.Results = results
	router.ApplyRoutes()

	return router
}

func testBundle() domain.TokenBundle {
	return domain.TokenBundle{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		IDToken:      "id-token",
		ExpiresIn:    300,
		TokenType:    "Bearer",
	}
}

func doRequest(router http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func redirectQuery(t *testing.T, rec *httptest.ResponseRecorder) url.Values {
	t.Helper()

	require.Equal(t, http.StatusFound, rec.Code)
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	return loc.Query()
}

func TestLoginHandler(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/auth/login", "")
	q := redirectQuery(t, rec)

	require.True(t, strings.HasPrefix(rec.Header().Get("Location"),
		"https://sso.example.test/realms/intake/protocol/openid-connect/auth?"))
	require.Equal(t, clientID, q.Get("client_id"))
	require.NotEmpty(t, q.Get("state"))
	require.NotEmpty(t, q.Get("nonce"))
}

func TestCallbackHandlerErrors(t *testing.T) {
	router := newTestRouter(t)

	t.Run("missing parameters redirect with callback_failed", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/auth/callback?code=abc", "")
		q := redirectQuery(t, rec)
		require.Equal(t, "callback_failed", q.Get("auth_error"))
		require.Empty(t, q.Get("auth_result"))
	})

	t.Run("state signed with the wrong secret redirects identically", func(t *testing.T) {
		forged, _, err := jwtx.NewStateCodec([]byte("not-our-secret"), clientID).Issue()
		require.NoError(t, err)

		rec := doRequest(router, http.MethodGet, "/auth/callback?code=abc&state="+url.QueryEscape(forged), "")
		q := redirectQuery(t, rec)
		require.Equal(t, "callback_failed", q.Get("auth_error"))
		require.Zero(t, router.Results.Len(), "no result may be stored on a failed callback")
	})

	t.Run("redirect target is the frontend", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/auth/callback", "")
		require.True(t, strings.HasPrefix(rec.Header().Get("Location"), frontendURL+"?auth_error="))
	})
}

func TestResultHandler(t *testing.T) {
	router := newTestRouter(t)

	t.Run("malformed id is a 400", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/auth/result?result=not-a-uuid", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id is a 404 with the canonical message", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/auth/result?result=b1946ac9-4931-4e5e-8b5d-1f6a9e6f3c21", "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "Auth result expired or invalid", body["message"])
	})

	t.Run("stored result is returned once", func(t *testing.T) {
		id := router.Results.Save(testBundle())

		rec := doRequest(router, http.MethodGet, "/auth/result?result="+id, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var tokens map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
		require.Equal(t, "access-token", tokens["access_token"])
		require.Equal(t, "Bearer", tokens["token_type"])

		rec = doRequest(router, http.MethodGet, "/auth/result?result="+id, "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRefreshHandlerErrors(t *testing.T) {
	router := newTestRouter(t)

	t.Run("non-json body is a 400", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/auth/refresh", "not json")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"error":"request body must be JSON"}`, rec.Body.String())
	})

	t.Run("missing refresh_token is a 400", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/auth/refresh", `{}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"error":"refresh_token is required"}`, rec.Body.String())
	})
}

func TestLogoutHandler(t *testing.T) {
	router := newTestRouter(t)

	t.Run("redirects to the provider end-session endpoint", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/auth/logout", "")
		q := redirectQuery(t, rec)

		require.True(t, strings.HasPrefix(rec.Header().Get("Location"),
			"https://sso.example.test/realms/intake/protocol/openid-connect/logout?"))
		require.Equal(t, frontendURL, q.Get("post_logout_redirect_uri"))
	})

	t.Run("rejects a non-jwt hint", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/auth/logout?id_token_hint=garbage", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGuardedRoutes(t *testing.T) {
	router := newTestRouter(t)

	t.Run("userinfo without a token is a 401", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/v1/userinfo", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin stats without a token is a 401", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/v1/admin/stats", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("livez always reports ok", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/livez", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "ok", body["status"])
	})

	t.Run("readyz degrades when the provider keys are unreachable", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
