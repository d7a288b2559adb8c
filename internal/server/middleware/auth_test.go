package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClaims struct {
	subjectID string
	groups    []string
}

func (c *fakeClaims) GetSubjectID() string { return c.subjectID }
func (c *fakeClaims) GetGroups() []string  { return c.groups }

type fakeValidator struct {
	claims SubjectGetter
	err    error
}

func (v *fakeValidator) ValidateToken(string) (SubjectGetter, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func authHandler(validator TokenValidator, next http.Handler) http.Handler {
	return Auth(validator)(next)
}

// TestAuth_MissingHeader rejects requests without an Authorization header
func TestAuth_MissingHeader(t *testing.T) {
	handler := authHandler(&fakeValidator{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuth_BadScheme rejects non-Bearer authorization schemes
func TestAuth_BadScheme(t *testing.T) {
	handler := authHandler(&fakeValidator{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuth_InvalidToken rejects tokens the validator refuses
func TestAuth_InvalidToken(t *testing.T) {
	handler := authHandler(&fakeValidator{err: fmt.Errorf("expired")}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestAuth_ValidToken attaches the subject to the request context
func TestAuth_ValidToken(t *testing.T) {
	validator := &fakeValidator{claims: &fakeClaims{subjectID: "C1", groups: []string{"clinics"}}}

	var got Subject
	handler := authHandler(validator, http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		subject, err := GetSubject(r)
		require.NoError(t, err)
		got = subject
	}))

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	req.Header.Set("Authorization", "bearer good-token") // scheme is case-insensitive
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "C1", got.ID)
	assert.True(t, got.InGroup("clinics"))
	assert.False(t, got.InGroup("admins"))
}

// TestAuth_PreflightPassesThrough lets OPTIONS requests through unauthenticated
func TestAuth_PreflightPassesThrough(t *testing.T) {
	called := false
	handler := authHandler(&fakeValidator{err: fmt.Errorf("never consulted")}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/applications", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestGetSubject_Absent errors when no subject is in the context
func TestGetSubject_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	_, err := GetSubject(req)
	assert.Error(t, err)
}
