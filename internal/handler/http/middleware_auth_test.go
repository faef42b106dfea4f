package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/service"
	"github.com/MKhiriev/go-realm/internal/utils"
	"github.com/MKhiriev/go-realm/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// identityHandler echoes the authenticated identity the middleware stored.
func identityHandler(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		userID, ok := utils.GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int64(7), userID)
		username, ok := utils.GetUsernameFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "alice", username)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)

	var called bool
	rec := serve(h.auth(identityHandler(t, &called)), bearerRequest(http.MethodGet, "/api/state"))

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	h, m := newTestHandler(t, config.GameService)
	expectValidToken(m)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("Authorization", "bearer tok")

	var called bool
	rec := serve(h.auth(identityHandler(t, &called)), req)

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		parseErr  error
		wantParse bool
	}{
		{name: "no header"},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "bearer without token", header: "Bearer"},
		{name: "extra parts", header: "Bearer tok extra"},
		{name: "expired", header: "Bearer tok", parseErr: service.ErrTokenExpired, wantParse: true},
		{name: "bad signature", header: "Bearer tok", parseErr: service.ErrTokenInvalid, wantParse: true},
		{name: "missing claims", header: "Bearer tok", parseErr: service.ErrTokenMissingClaims, wantParse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t, config.GameService)
			if tt.wantParse {
				m.token.EXPECT().ParseToken(gomock.Any(), "tok").Return(models.Token{}, tt.parseErr)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			var called bool
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
			rec := serve(h.auth(next), req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

// ── pageToken ─────────────────────────────────────────────────────────────────

func TestPageToken_FromQueryAndForm(t *testing.T) {
	for name, req := range map[string]*http.Request{
		"query": httptest.NewRequest(http.MethodGet, "/game?token=tok", nil),
		"form":  formRequest("/collect_resources", "tok"),
	} {
		t.Run(name, func(t *testing.T) {
			h, m := newTestHandler(t, config.GameService)
			expectValidToken(m)

			token, raw, err := h.pageToken(req)

			assert.NoError(t, err)
			assert.Equal(t, "tok", raw)
			assert.Equal(t, aliceToken, token)
		})
	}
}

func TestPageToken_Missing(t *testing.T) {
	h, _ := newTestHandler(t, config.GameService)

	_, raw, err := h.pageToken(httptest.NewRequest(http.MethodGet, "/game", nil))

	assert.ErrorIs(t, err, ErrMissingToken)
	assert.Empty(t, raw)
}
