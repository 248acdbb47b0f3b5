package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/session"
	"github.com/yeremiapane/restaurant-orders/testutil"
)

var testSecret = []byte("middleware-secret")

type fakeUsers struct {
	users map[uint]*models.User
	err   error
}

func (f fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, services.ErrUserNotFound
}

func newTestRouter(users UserLoader, guards ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	testutil.QuietLogs()

	r := gin.New()
	r.Use(session.Middleware(session.DefaultOptions(testSecret)), AuthMiddleware(users))
	handlers := append(guards, func(c *gin.Context) {
		id, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID, "role": id.Role})
	})
	r.GET("/private", handlers...)
	return r
}

func authedRequest(t *testing.T, userID uint) *http.Request {
	t.Helper()
	token, err := session.Encode(session.Claims{UserID: userID}, testSecret, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "restaurant_session", Value: token})
	return req
}

var twoUsers = fakeUsers{users: map[uint]*models.User{
	1: {ID: 1, Username: "alice", Role: models.RoleUser},
	2: {ID: 2, Username: "root", Role: models.RoleAdmin},
}}

func TestRequireLoginRedirectsBrowsers(t *testing.T) {
	r := newTestRouter(twoUsers, RequireLogin())

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotEmpty(t, w.Header().Get("Set-Cookie"))
}

func TestRequireLoginRejectsJSONClients(t *testing.T) {
	r := newTestRouter(twoUsers, RequireLogin())

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")
}

func TestAuthMiddlewareLoadsIdentity(t *testing.T) {
	r := newTestRouter(twoUsers, RequireLogin())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, 1))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":1,"role":"user"}`, w.Body.String())
}

func TestDeletedUserIsLoggedOut(t *testing.T) {
	r := newTestRouter(twoUsers, RequireLogin())

	req := authedRequest(t, 42)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAuthMiddlewareStorageFailure(t *testing.T) {
	r := newTestRouter(fakeUsers{err: errors.New("database unavailable")}, RequireLogin())

	req := authedRequest(t, 1)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Database connection error")
}

func TestRequireAdmin(t *testing.T) {
	r := newTestRouter(twoUsers, RequireLogin(), RequireAdmin())

	req := authedRequest(t, 1)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, 2))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":2,"role":"admin"}`, w.Body.String())
}

func TestRateLimiterPerIP(t *testing.T) {
	rl := NewRateLimiter(2)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
	assert.Equal(t, 2, rl.Len())
}

func TestRateLimiterRefillsAndSweeps(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("a"))

	now = now.Add(time.Hour)
	assert.True(t, rl.Allow("b"))
	assert.Equal(t, 1, rl.Len())
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutil.QuietLogs()

	r := gin.New()
	r.Use(session.Middleware(session.DefaultOptions(testSecret)))
	r.POST("/login", NewRateLimiter(1).RateLimit(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	send := func(accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("Accept", accept)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, send("text/html").Code)

	w := send("text/html")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	assert.Equal(t, http.StatusTooManyRequests, send("application/json").Code)
}

func TestLoggerMiddlewareRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutil.QuietLogs()

	r := gin.New()
	r.Use(LoggerMiddleware(), SecurityHeaders(false))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, inbound)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, inbound, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}
