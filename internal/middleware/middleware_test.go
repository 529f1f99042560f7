package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-booking-assistant/internal/assistant"
	"github.com/iliyamo/movie-booking-assistant/internal/config"
	"github.com/iliyamo/movie-booking-assistant/internal/utils"
)

func echoUser(c echo.Context) error {
	return c.String(http.StatusOK, Username(c))
}

func TestIdentity(t *testing.T) {
	e := echo.New()
	e.GET("/", echoUser, Identity("secret"))
	tok, err := utils.NewAccessToken("secret", "alice", 5)
	require.NoError(t, err)

	tests := []struct {
		description string
		auth        string
		status      int
		body        string
	}{
		{"no header is guest", "", http.StatusOK, "guest"},
		{"valid token", "Bearer " + tok.Token, http.StatusOK, "alice"},
		{"bad scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"bad token", "Bearer abc", http.StatusUnauthorized, ""},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestChatSessionsHeaderAndCookie(t *testing.T) {
	reg := assistant.NewRegistry(10, 0)
	store := NewCookieStore("0123456789abcdef0123456789abcdef", false, 3600)
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"id": Session(c).ID, "created": SessionCreated(c)})
	}, Identity("secret"), ChatSessions(store, reg, nil))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	id := rec.Header().Get(SessionHeader)
	require.NotEmpty(t, id)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Contains(t, rec.Body.String(), `"created":true`)

	byCookie := httptest.NewRequest(http.MethodGet, "/", nil)
	byCookie.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, byCookie)
	assert.Equal(t, id, rec.Header().Get(SessionHeader))
	assert.Contains(t, rec.Body.String(), `"created":false`)

	byHeader := httptest.NewRequest(http.MethodGet, "/", nil)
	byHeader.Header.Set(SessionHeader, id)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, byHeader)
	assert.Equal(t, id, rec.Header().Get(SessionHeader))
	assert.Equal(t, 1, reg.Len())

	// the cookie outranks a header naming some other session
	other := reg.Create("")
	both := httptest.NewRequest(http.MethodGet, "/", nil)
	both.AddCookie(cookies[0])
	both.Header.Set(SessionHeader, other.ID)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, both)
	assert.Equal(t, id, rec.Header().Get(SessionHeader))
}

func TestChatSessionsRefuseOtherUsersSession(t *testing.T) {
	reg := assistant.NewRegistry(10, 0)
	store := NewCookieStore("0123456789abcdef0123456789abcdef", false, 3600)
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user": Session(c).Username()})
	}, Identity("secret"), ChatSessions(store, reg, nil))

	owned := reg.Create("alice")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, owned.ID)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, owned.ID, rec.Header().Get(SessionHeader))
	assert.Contains(t, rec.Body.String(), `"user":"guest"`)
	assert.Equal(t, "alice", owned.Username())
}

func TestLimiterAndCachePassThroughWithoutRedis(t *testing.T) {
	e := echo.New()
	e.GET("/", echoUser,
		NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil, nil),
		NewRedisCache(config.CacheConfig{Enabled: true}, nil))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	tests := []struct {
		description string
		strategy    string
		sessionID   string
		want        string
	}{
		{"ip", "ip", "", "rl:ip:192.0.2.1"},
		{"user", "user", "", "rl:user:guest"},
		{"session", "session", "abc", "rl:session:abc"},
		{"session falls back to ip", "session", "", "rl:ip:192.0.2.1"},
		{"default", "ip_user", "", "rl:ip:192.0.2.1:user:guest"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/chat", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			if tc.sessionID != "" {
				req.Header.Set(SessionHeader, tc.sessionID)
			}
			c := e.NewContext(req, httptest.NewRecorder())
			got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: tc.strategy}, c)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	payload, err := encodePayload(http.StatusOK, http.Header{"Content-Type": {"application/json"}}, []byte(`{"a":1}`))
	require.NoError(t, err)

	status, hdr, body, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", hdr.Get("Content-Type"))
	assert.Equal(t, `{"a":1}`, string(body))

	_, _, _, ok = decodePayload(payload[:10])
	assert.False(t, ok)
}
