package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"peersphere-backend/pkg/auth"
)

const (
	testSecret   = "middleware-test-secret"
	testIssuer   = "test-issuer"
	testAudience = "test-api"
)

func newTestAuth(t *testing.T) (*auth.JWTValidator, *auth.TokenIssuer) {
	t.Helper()
	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     testSecret,
		Issuer:        testIssuer,
		Audience:      []string{testAudience},
	})
	assert.NoError(t, err)
	issuer := auth.NewTokenIssuer(testSecret, testIssuer, []string{testAudience}, time.Hour)
	return validator, issuer
}

func echoUserHandler(t *testing.T, sawUser *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := auth.GetUserFromContext(r.Context()); err == nil {
			*sawUser = user.UserID
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	validator, issuer := newTestAuth(t)
	token, err := issuer.Issue("user-1", "alice@example.com", "alice", []string{"authenticated"})
	assert.NoError(t, err)

	var sawUser string
	handler := Authenticate(validator, auth.NewSlidingWindowLimiter(100, time.Minute), zap.NewNop(), 100)(echoUserHandler(t, &sawUser))

	req := httptest.NewRequest("POST", "/api/v1/questions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", sawUser)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	validator, _ := newTestAuth(t)

	var sawUser string
	handler := Authenticate(validator, auth.NewSlidingWindowLimiter(100, time.Minute), zap.NewNop(), 100)(echoUserHandler(t, &sawUser))

	req := httptest.NewRequest("POST", "/api/v1/questions", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, sawUser)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	validator, _ := newTestAuth(t)
	expired := auth.NewTokenIssuer(testSecret, testIssuer, []string{testAudience}, -time.Minute)
	token, err := expired.Issue("user-1", "alice@example.com", "alice", nil)
	assert.NoError(t, err)

	var sawUser string
	handler := Authenticate(validator, auth.NewSlidingWindowLimiter(100, time.Minute), zap.NewNop(), 100)(echoUserHandler(t, &sawUser))

	req := httptest.NewRequest("POST", "/api/v1/questions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthenticate_UserRateLimit(t *testing.T) {
	validator, issuer := newTestAuth(t)
	token, err := issuer.Issue("user-1", "alice@example.com", "alice", nil)
	assert.NoError(t, err)

	var sawUser string
	// One request per minute per user
	handler := Authenticate(validator, auth.NewSlidingWindowLimiter(1, time.Minute), zap.NewNop(), 100)(echoUserHandler(t, &sawUser))

	req := httptest.NewRequest("POST", "/api/v1/questions", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestOptionalAuthenticate_AnonymousPassesThrough(t *testing.T) {
	validator, _ := newTestAuth(t)

	var sawUser string
	handler := OptionalAuthenticate(validator)(echoUserHandler(t, &sawUser))

	req := httptest.NewRequest("GET", "/api/v1/questions", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sawUser)
}

func TestOptionalAuthenticate_AttachesViewer(t *testing.T) {
	validator, issuer := newTestAuth(t)
	token, err := issuer.Issue("viewer-1", "bob@example.com", "bob", nil)
	assert.NoError(t, err)

	var sawUser string
	handler := OptionalAuthenticate(validator)(echoUserHandler(t, &sawUser))

	req := httptest.NewRequest("GET", "/api/v1/questions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "viewer-1", sawUser)
}

func TestOptionalAuthenticate_BadTokenStaysAnonymous(t *testing.T) {
	validator, _ := newTestAuth(t)

	var sawUser string
	handler := OptionalAuthenticate(validator)(echoUserHandler(t, &sawUser))

	req := httptest.NewRequest("GET", "/api/v1/questions", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sawUser)
}

func TestThrottleWrites_LimitsPerUser(t *testing.T) {
	throttle := auth.NewWriteThrottle(1)

	handler := ThrottleWrites(throttle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ctx := auth.SetUserInContext(httptest.NewRequest("POST", "/api/v1/answers/a/vote", nil).Context(), &auth.UserContext{UserID: "user-1"})
	req := httptest.NewRequest("POST", "/api/v1/answers/a/vote", nil).WithContext(ctx)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestThrottleWrites_RequiresAuthenticatedUser(t *testing.T) {
	throttle := auth.NewWriteThrottle(10)

	handler := ThrottleWrites(throttle)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/v1/answers/a/vote", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")
	assert.Equal(t, "198.51.100.4", getClientIP(req))

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", getClientIP(req))

	req = httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:4242"
	assert.Equal(t, "192.0.2.1", getClientIP(req))
}
