package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	tokens map[string]*fbauth.Token
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*fbauth.Token, error) {
	if t, ok := f.tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("token rejected")
}

// captured runs mw and returns the identity it left in context.
func captured(t *testing.T, mw gin.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, *auth.Identity) {
	t.Helper()
	var got *auth.Identity
	r := gin.New()
	r.GET("/", mw, func(c *gin.Context) {
		if id, ok := auth.IdentityFrom(c); ok {
			got = &id
		}
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, got
}

func TestFirebaseAuth(t *testing.T) {
	verifier := fakeVerifier{tokens: map[string]*fbauth.Token{
		"good": {UID: "fb-1", Claims: map[string]interface{}{
			"email":   "ada@example.com",
			"name":    "Ada Lovelace",
			"picture": "https://img.example/ada.png",
			"admin":   true,
		}},
		"bare": {UID: "fb-2", Claims: map[string]interface{}{}},
	}}

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")

		w, id := captured(t, FirebaseAuth(verifier), req)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.NotNil(t, id)
		assert.Equal(t, "fb-1", id.UID)
		assert.Equal(t, "ada@example.com", id.Email)
		assert.Equal(t, "Ada", id.FirstName)
		assert.Equal(t, "Lovelace", id.LastName)
		assert.Equal(t, "https://img.example/ada.png", id.PictureURL)
		require.NotNil(t, id.Admin)
		assert.True(t, *id.Admin)
	})

	t.Run("no role claim", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bare")

		_, id := captured(t, FirebaseAuth(verifier), req)
		require.NotNil(t, id)
		assert.Nil(t, id.Admin)
	})

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic good",
		"unknown token":  "Bearer forged",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w, id := captured(t, FirebaseAuth(verifier), req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Nil(t, id)
		})
	}
}

func TestHeaderIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-Id", "dev-1")
	req.Header.Set("X-User-Email", "dev@example.com")
	req.Header.Set("X-User-Name", "Dev Person")
	req.Header.Set("X-User-Photo", "https://img.example/dev.png")
	req.Header.Set("X-User-Admin", "true")

	w, id := captured(t, HeaderIdentity(), req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, id)
	assert.Equal(t, "dev-1", id.UID)
	assert.Equal(t, "Dev", id.FirstName)
	assert.Equal(t, "Person", id.LastName)
	require.NotNil(t, id.Admin)
	assert.True(t, *id.Admin)

	t.Run("missing id", func(t *testing.T) {
		w, id := captured(t, HeaderIdentity(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, id)
	})

	t.Run("unparseable admin flag is ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-Id", "dev-1")
		req.Header.Set("X-User-Admin", "sure")

		_, id := captured(t, HeaderIdentity(), req)
		require.NotNil(t, id)
		assert.Nil(t, id.Admin)
	})
}
