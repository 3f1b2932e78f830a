package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	tokens map[string]uuid.UUID
}

func (v *stubValidator) ValidateToken(token string) (UserIDGetter, error) {
	id, ok := v.tokens[token]
	if !ok {
		return nil, fmt.Errorf("unknown token")
	}
	return stubClaims(id), nil
}

type stubClaims uuid.UUID

func (c stubClaims) GetUserID() uuid.UUID { return uuid.UUID(c) }

func protectedHandler(t *testing.T, wantUser uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, err := GetUserID(r)
		require.NoError(t, err)
		assert.Equal(t, wantUser, got)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthValidToken(t *testing.T) {
	userID := uuid.New()
	mw := Auth(&stubValidator{tokens: map[string]uuid.UUID{"good": userID}})

	req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()

	mw(protectedHandler(t, userID)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthRejections(t *testing.T) {
	mw := Auth(&stubValidator{tokens: map[string]uuid.UUID{"good": uuid.New()}})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	headers := []string{"", "Bearer", "Bearer bad", "Basic good", "good"}
	for _, h := range headers {
		req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
		if h != "" {
			req.Header.Set("Authorization", h)
		}
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", h)
	}
}

func TestAuthCaseInsensitiveScheme(t *testing.T) {
	userID := uuid.New()
	mw := Auth(&stubValidator{tokens: map[string]uuid.UUID{"good": userID}})

	req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
	req.Header.Set("Authorization", "bearer good")
	rec := httptest.NewRecorder()

	mw(protectedHandler(t, userID)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGetUserIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
	_, err := GetUserID(req)
	assert.Error(t, err)
}
