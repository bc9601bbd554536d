package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookvault/bookvault-go/internal/crypto"
)

const testSecret = "test-secret"

func claimsEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, claims.ID, id)
		w.Write([]byte(claims.ID + "|" + claims.Email))
	})
}

func TestJWTAuth(t *testing.T) {
	valid, err := crypto.GenerateToken("user-1", "a@x.com", testSecret, time.Hour)
	require.NoError(t, err)
	expired, err := crypto.GenerateToken("user-1", "a@x.com", testSecret, -time.Minute)
	require.NoError(t, err)
	foreign, err := crypto.GenerateToken("user-1", "a@x.com", "other-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK},
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized, wantBody: "Token required"},
		{name: "scheme only", header: "Bearer", wantStatus: http.StatusUnauthorized, wantBody: "Token required"},
		{name: "empty token", header: "Bearer  ", wantStatus: http.StatusUnauthorized, wantBody: "Token required"},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantBody: "Token required"},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantStatus: http.StatusForbidden, wantBody: "Invalid token"},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusForbidden, wantBody: "Invalid token"},
		{name: "wrong secret", header: "Bearer " + foreign, wantStatus: http.StatusForbidden, wantBody: "Invalid token"},
	}

	handler := JWTAuth(testSecret)(claimsEcho(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/books", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.Equal(t, "user-1|a@x.com", rec.Body.String())
				return
			}
			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.Equal(t, tt.wantBody, body["message"])
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestClaimsFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := ClaimsFromContext(req.Context())
	require.False(t, ok)
	_, ok = UserIDFromContext(req.Context())
	require.False(t, ok)
}
