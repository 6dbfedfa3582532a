package auth

import (
	"alcyxob/fitness-tracker/internal/config"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func newGraphServer(t *testing.T, data debugTokenData, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v19.0/debug_token", r.URL.Path)
		assert.Equal(t, "user-token", r.URL.Query().Get("input_token"))
		assert.Equal(t, "app-1|app-secret", r.URL.Query().Get("access_token"))
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(debugTokenResponse{Data: data})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFacebookVerifier(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	valid := debugTokenData{
		AppID:     "app-1",
		Type:      "USER",
		IsValid:   true,
		ExpiresAt: now.Add(time.Hour).Unix(),
		UserID:    "fb-42",
	}

	tests := []struct {
		name    string
		mutate  func(d *debugTokenData)
		status  int
		userID  string
		wantErr error
	}{
		{name: "valid", mutate: func(*debugTokenData) {}, status: http.StatusOK, userID: "fb-42"},
		{name: "not valid", mutate: func(d *debugTokenData) { d.IsValid = false }, status: http.StatusOK, userID: "fb-42", wantErr: ErrInvalidCredentials},
		{name: "wrong app", mutate: func(d *debugTokenData) { d.AppID = "other" }, status: http.StatusOK, userID: "fb-42", wantErr: ErrInvalidCredentials},
		{name: "page token", mutate: func(d *debugTokenData) { d.Type = "PAGE" }, status: http.StatusOK, userID: "fb-42", wantErr: ErrInvalidCredentials},
		{name: "other user", mutate: func(*debugTokenData) {}, status: http.StatusOK, userID: "fb-43", wantErr: ErrInvalidCredentials},
		{name: "expired", mutate: func(d *debugTokenData) { d.ExpiresAt = now.Add(-time.Second).Unix() }, status: http.StatusOK, userID: "fb-42", wantErr: ErrInvalidCredentials},
		{name: "graph rejects", mutate: func(*debugTokenData) {}, status: http.StatusBadRequest, userID: "fb-42", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := valid
			tt.mutate(&data)
			srv := newGraphServer(t, data, tt.status)

			v := NewFacebookVerifier(config.FacebookConfig{
				AppID:        "app-1",
				AppSecret:    "app-secret",
				GraphURL:     srv.URL,
				GraphVersion: "v19.0",
			}, srv.Client())
			v.now = func() time.Time { return now }

			err := v.Verify(context.Background(), tt.userID, "user-token")
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestFacebookVerifier_ServerError(t *testing.T) {
	srv := newGraphServer(t, debugTokenData{}, http.StatusInternalServerError)
	v := NewFacebookVerifier(config.FacebookConfig{AppID: "app-1", AppSecret: "app-secret", GraphURL: srv.URL, GraphVersion: "v19.0"}, srv.Client())

	err := v.Verify(context.Background(), "fb-42", "user-token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier("secret", "fitness")
	expires := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}

	token, err := IssueToken("secret", "fitness", "user-1", expires)
	require.NoError(t, err)
	require.NoError(t, v.Verify(context.Background(), "user-1", token))
	assert.ErrorIs(t, v.Verify(context.Background(), "user-2", token), ErrInvalidCredentials)

	wrongSecret, err := IssueToken("other", "fitness", "user-1", expires)
	require.NoError(t, err)
	assert.ErrorIs(t, v.Verify(context.Background(), "user-1", wrongSecret), ErrInvalidCredentials)

	wrongIssuer, err := IssueToken("secret", "someone-else", "user-1", expires)
	require.NoError(t, err)
	assert.ErrorIs(t, v.Verify(context.Background(), "user-1", wrongIssuer), ErrInvalidCredentials)

	expired, err := IssueToken("secret", "fitness", "user-1", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	require.NoError(t, err)
	assert.ErrorIs(t, v.Verify(context.Background(), "user-1", expired), ErrInvalidCredentials)

	assert.ErrorIs(t, v.Verify(context.Background(), "user-1", "garbage"), ErrInvalidCredentials)
}

func TestInsecureVerifier(t *testing.T) {
	v := NewInsecureVerifier()
	assert.NoError(t, v.Verify(context.Background(), "anyone", "anything"))
	assert.ErrorIs(t, v.Verify(context.Background(), "anyone", ""), ErrInvalidCredentials)
}

func TestNewVerifier(t *testing.T) {
	v, err := NewVerifier(config.AuthConfig{Provider: config.ProviderJWT, JWT: config.JWTConfig{Secret: "s"}})
	require.NoError(t, err)
	assert.IsType(t, &JWTVerifier{}, v)

	v, err = NewVerifier(config.AuthConfig{Provider: config.ProviderFacebook})
	require.NoError(t, err)
	assert.IsType(t, &FacebookVerifier{}, v)

	_, err = NewVerifier(config.AuthConfig{Provider: "ldap"})
	assert.Error(t, err)
}
