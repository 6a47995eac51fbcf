package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"passport/internal/delivery/http/cookie"
	"passport/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orgIdentities() map[string]*entity.IdentityClaim {
	return map[string]*entity.IdentityClaim{
		"org-token": {
			Email:   "user@vnrvjiet.in",
			Name:    "Org User",
			Picture: "https://example.com/avatar.png",
		},
		"gmail-token": {
			Email: "user@gmail.com",
			Name:  "Outside User",
		},
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestGoogleExchange_TrustedDomainOnRestrictedApp(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)

	rec := h.do(http.MethodPost, "/auth/google", `{"token":"org-token","app":"faculty-portal"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user@vnrvjiet.in", user["email"])

	cookies := rec.Result().Cookies()
	names := make(map[string]*http.Cookie, len(cookies))
	for _, ck := range cookies {
		names[ck.Name] = ck
	}
	require.Contains(t, names, cookie.TokenCookieName)
	require.Contains(t, names, cookie.UserCookieName)
	assert.True(t, names[cookie.TokenCookieName].HttpOnly)
	assert.False(t, names[cookie.UserCookieName].HttpOnly)
}

func TestGoogleExchange_PublicAppAcceptsAnyDomain(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)

	rec := h.do(http.MethodPost, "/auth/google", `{"token":"gmail-token","app":"wall"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user@gmail.com", user["email"])
}

func TestGoogleExchange_PolicyDenial(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)

	rec := h.do(http.MethodPost, "/auth/google", `{"token":"gmail-token","app":"faculty-portal"}`, nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "Access Denied")
	assert.Contains(t, body["message"], "Only @vnrvjiet.in")
	assert.Empty(t, rec.Result().Cookies())
}

func TestGoogleExchange_InvalidIdentityToken(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)

	rec := h.do(http.MethodPost, "/auth/google", `{"token":"forged","app":"wall"}`, nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid authentication token", body["error"])
}

func TestGoogleExchange_MissingToken(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)

	rec := h.do(http.MethodPost, "/auth/google", `{"app":"wall"}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// exchange runs a successful exchange and returns the minted credential.
func exchange(t *testing.T, h *harness, idToken, app string) string {
	t.Helper()

	rec := h.do(http.MethodPost, "/auth/google", `{"token":"`+idToken+`","app":"`+app+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	token, ok := body["token"].(string)
	require.True(t, ok)

	return token
}

func TestCheckAuth_NoCookieIsNegativeNotError(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)

	rec := h.do(http.MethodGet, "/check-auth", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["logged_in"])
	assert.NotContains(t, body, "user")
}

func TestCheckAuth_ValidCookie(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)
	token := exchange(t, h, "org-token", "wall")

	rec := h.do(http.MethodGet, "/check-auth", "", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: cookie.TokenCookieName, Value: token})
		req.Header.Set(echo.HeaderOrigin, "https://wall.vnrvjiet.in")
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["logged_in"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user@vnrvjiet.in", user["email"])
}

func TestCheckAuth_GarbageCookieIsNegative(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)

	rec := h.do(http.MethodGet, "/check-auth", "", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: cookie.TokenCookieName, Value: "not-a-jwt"})
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["logged_in"])
}

func TestVerifyToken_Valid(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)
	token := exchange(t, h, "org-token", "faculty-portal")

	rec := h.do(http.MethodPost, "/verify-token", `{"token":"`+token+`","app":"faculty-portal"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["valid"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user@vnrvjiet.in", user["email"])
}

// A session minted for a public app carries no authority on a
// restricted one: policy re-runs per request.
func TestVerifyToken_PolicyDenialOnDifferentApp(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)
	token := exchange(t, h, "gmail-token", "wall")

	rec := h.do(http.MethodPost, "/verify-token", `{"token":"`+token+`","app":"faculty-portal"}`, nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["valid"])
	assert.Contains(t, body["error"], "Access Denied")
	assert.Contains(t, body["message"], "Only @vnrvjiet.in")
}

func TestVerifyToken_InvalidSignatureIsBareNegative(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)

	rec := h.do(http.MethodPost, "/verify-token", `{"token":"garbage","app":"wall"}`, nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["valid"])
	assert.NotContains(t, body, "error")
	assert.NotContains(t, body, "message")
}

func TestVerifyToken_MissingTokenIsBareNegative(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)

	rec := h.do(http.MethodPost, "/verify-token", `{"app":"wall"}`, nil)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["valid"])
}

func TestLogout_Idempotent(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)

	for range 2 {
		rec := h.do(http.MethodPost, "/logout", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decodeBody(t, rec)["success"])

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 2)
		for _, ck := range cookies {
			assert.Empty(t, ck.Value)
			assert.Negative(t, ck.MaxAge)
		}
	}
}

func TestHealthCheck(t *testing.T) {
	h := newHarness(t, orgIdentities(), nil, nil)

	rec := h.do(http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "passport", body["service"])
	assert.NotEmpty(t, body["timestamp"])
}
