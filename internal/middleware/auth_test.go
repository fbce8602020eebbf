package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	email string
	uid   string
	err   error
	calls int
}

func (s *stubVerifier) VerifyToken(_ context.Context, _ string) (string, string, error) {
	s.calls++
	if s.err != nil {
		return "", "", s.err
	}
	return s.email, s.uid, nil
}

func protectedRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(verifier), func(c *gin.Context) {
		c.JSON(200, gin.H{
			"email": c.GetString("userEmail"),
			"uid":   c.GetString("userUID"),
		})
	})
	return r
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := protectedRouter(&stubVerifier{email: "a@x.com"})

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r := protectedRouter(&stubVerifier{email: "a@x.com"})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r := protectedRouter(&stubVerifier{err: errors.New("token expired")})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}

func TestAuthMiddlewareAttachesClaim(t *testing.T) {
	verifier := &stubVerifier{email: "a@x.com", uid: "uid-1"}
	r := protectedRouter(verifier)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "a@x.com")
	assert.Contains(t, w.Body.String(), "uid-1")
	assert.Equal(t, 1, verifier.calls)
}
