package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/erp/backoffice/internal/application/validation"
	"github.com/erp/backoffice/internal/domain/identity"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/auth"
)

// SessionManager starts and ends sessions.
type SessionManager interface {
	Create(ctx context.Context, res *identity.SignInResult, creds identity.Credentials, language string) (*identity.Session, error)
	Revoke(ctx context.Context, id string) error
}

// TokenIssuer signs access tokens naming a session.
type TokenIssuer interface {
	Issue(sessionID, userName string, sessionExpiresAt time.Time) (*auth.AccessToken, error)
}

// AuthService handles sign-in, the current user and sign-out
type AuthService struct {
	authenticator identity.Authenticator
	sessions      SessionManager
	tokens        TokenIssuer
	logger        *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	authenticator identity.Authenticator,
	sessions SessionManager,
	tokens TokenIssuer,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		sessions:      sessions,
		tokens:        tokens,
		logger:        logger,
	}
}

// SignIn verifies the credentials with the accounting service, stores the
// encrypted session and returns an access token naming it.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	s.logger.Info("Sign-in attempt", zap.String("user_name", input.UserName))

	creds := identity.Credentials{UserName: input.UserName, Password: input.Password}
	res, err := s.authenticator.SignIn(ctx, creds)
	if err != nil {
		var de *shared.DomainError
		if errors.As(err, &de) && de.Code == shared.CodeUnauthorized {
			s.logger.Warn("Sign-in rejected", zap.String("user_name", input.UserName))
		}
		return nil, err
	}

	sess, err := s.sessions.Create(ctx, res, creds, input.Language)
	if err != nil {
		s.logger.Error("Failed to store session", zap.Error(err))
		return nil, err
	}

	token, err := s.tokens.Issue(sess.ID, input.UserName, sess.ExpiresAt)
	if err != nil {
		s.logger.Error("Failed to issue access token", zap.Error(err))
		if rerr := s.sessions.Revoke(ctx, sess.ID); rerr != nil {
			s.logger.Warn("Failed to revoke orphaned session", zap.Error(rerr))
		}
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to generate access token").WithCause(err)
	}

	s.logger.Info("User signed in",
		zap.String("user_name", input.UserName),
		zap.String("user_id", res.User.ID),
	)
	return &SignInResult{Token: *token, User: ToUserInfo(sess)}, nil
}

// Me returns the user of the session in ctx.
func (s *AuthService) Me(ctx context.Context) (*UserInfo, error) {
	sess, ok := identity.SessionFromContext(ctx)
	if !ok {
		return nil, shared.ErrSessionExpired
	}
	info := ToUserInfo(sess)
	return &info, nil
}

// SignOut deletes the session in ctx.
func (s *AuthService) SignOut(ctx context.Context) error {
	sess, ok := identity.SessionFromContext(ctx)
	if !ok {
		return shared.ErrSessionExpired
	}
	if err := s.sessions.Revoke(ctx, sess.ID); err != nil {
		return err
	}
	s.logger.Info("User signed out", zap.String("user_id", sess.User.ID))
	return nil
}
