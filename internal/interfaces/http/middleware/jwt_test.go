package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"

	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/auth"
	"github.com/erp/backoffice/internal/infrastructure/i18n"
	"github.com/erp/backoffice/internal/infrastructure/logger"
)

type mockTokens struct {
	mock.Mock
}

func (m *mockTokens) Validate(token string) (*auth.Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*auth.Claims)
	return claims, args.Error(1)
}

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) Load(ctx context.Context, id string) (*identity.Session, error) {
	args := m.Called(ctx, id)
	sess, _ := args.Get(0).(*identity.Session)
	return sess, args.Error(1)
}

type sessionEcho struct {
	SessionID string `json:"session_id"`
	User      string `json:"user"`
	Language  string `json:"language"`
}

func newAuthEngine(t *testing.T, tokens *mockTokens, sessions *mockSessions) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Language(language.Vietnamese))
	r.Use(SessionAuth(SessionAuthConfig{
		Tokens:   tokens,
		Sessions: sessions,
		Logger:   zaptest.NewLogger(t),
	}))
	r.GET("/me", func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, sessionEcho{
			SessionID: sess.ID,
			User:      logger.GetUser(ctx),
			Language:  i18n.FromContext(ctx).Language().String(),
		})
	})
	return r
}

func authRequest(header, acceptLanguage string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set(AuthHeaderKey, header)
	}
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	return req
}

func TestSessionAuth_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		setup    func(*mockTokens, *mockSessions)
		wantCode string
		status   int
	}{
		{
			name:     "missing header",
			wantCode: shared.CodeUnauthorized,
			status:   http.StatusUnauthorized,
		},
		{
			name:     "not a bearer token",
			header:   "Basic dXNlcjpwYXNz",
			wantCode: shared.CodeUnauthorized,
			status:   http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			header: "Bearer old",
			setup: func(tk *mockTokens, _ *mockSessions) {
				tk.On("Validate", "old").Return(nil, auth.ErrExpiredToken)
			},
			wantCode: shared.CodeSessionExpired,
			status:   http.StatusUnauthorized,
		},
		{
			name:   "forged token",
			header: "Bearer forged",
			setup: func(tk *mockTokens, _ *mockSessions) {
				tk.On("Validate", "forged").Return(nil, auth.ErrInvalidToken)
			},
			wantCode: shared.CodeUnauthorized,
			status:   http.StatusUnauthorized,
		},
		{
			name:   "revoked session",
			header: "Bearer good",
			setup: func(tk *mockTokens, s *mockSessions) {
				tk.On("Validate", "good").Return(&auth.Claims{SessionID: "sid-1"}, nil)
				s.On("Load", mock.Anything, "sid-1").Return(nil, shared.ErrSessionExpired)
			},
			wantCode: shared.CodeSessionExpired,
			status:   http.StatusUnauthorized,
		},
		{
			name:   "store failure",
			header: "Bearer good",
			setup: func(tk *mockTokens, s *mockSessions) {
				tk.On("Validate", "good").Return(&auth.Claims{SessionID: "sid-1"}, nil)
				s.On("Load", mock.Anything, "sid-1").Return(nil, errors.New("redis: connection refused"))
			},
			wantCode: shared.CodeInternal,
			status:   http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, sessions := new(mockTokens), new(mockSessions)
			if tt.setup != nil {
				tt.setup(tokens, sessions)
			}

			w := httptest.NewRecorder()
			newAuthEngine(t, tokens, sessions).ServeHTTP(w, authRequest(tt.header, ""))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
			tokens.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestSessionAuth_Success(t *testing.T) {
	sess := &identity.Session{
		ID:          "sid-1",
		Credentials: identity.Credentials{UserName: "accountant", Password: "secret"},
		Language:    "en",
	}
	tokens, sessions := new(mockTokens), new(mockSessions)
	tokens.On("Validate", "good").Return(&auth.Claims{SessionID: "sid-1"}, nil)
	sessions.On("Load", mock.Anything, "sid-1").Return(sess, nil)
	r := newAuthEngine(t, tokens, sessions)

	t.Run("session language applies without Accept-Language", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, authRequest("Bearer good", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"session_id":"sid-1","user":"accountant","language":"en"}`, w.Body.String())
	})

	t.Run("Accept-Language wins over the session", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, authRequest("Bearer good", "vi"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"session_id":"sid-1","user":"accountant","language":"vi"}`, w.Body.String())
	})
}

func TestSessionKeyFunc(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.7:5555"

	assert.Equal(t, "ip:192.0.2.7", SessionKeyFunc(c))

	c.Set(SessionKey, &identity.Session{ID: "sid-9"})
	assert.Equal(t, "session:sid-9", SessionKeyFunc(c))
}
