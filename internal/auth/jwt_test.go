package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dviradani/amazon-backend/internal/domain"
)

const testSecret = "unit-test-secret"

func testUser() *domain.User {
	return &domain.User{ID: 7, Name: "Dvir", Email: "dvir@example.com"}
}

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken(testUser(), testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := VerifyToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "Dvir", user.Name)
	assert.Equal(t, "dvir@example.com", user.Email)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	user, err := VerifyToken(token, "some-other-secret")
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, user)
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := GenerateToken(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	user, err := VerifyToken(token, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, user)
}

func TestMiddleware_AttachesUser(t *testing.T) {
	var seen *User
	handler := Middleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	token, err := GenerateToken(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(7), seen.ID)
	assert.Equal(t, "dvir@example.com", seen.Email)
}

func TestMiddleware_RejectsBeforeHandler(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handlerCalled := false
			handler := Middleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, handlerCalled, "handler must not run on auth failure")
		})
	}
}
