package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	identityapp "github.com/erp/backoffice/internal/application/identity"
	"github.com/erp/backoffice/internal/infrastructure/i18n"
)

// AuthService signs users in and out.
type AuthService interface {
	SignIn(ctx context.Context, input identityapp.SignInInput) (*identityapp.SignInResult, error)
	Me(ctx context.Context) (*identityapp.UserInfo, error)
	SignOut(ctx context.Context) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	auth AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterPublicRoutes mounts the routes reachable without a session.
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/sign-in", h.SignIn)
}

// RegisterRoutes mounts the routes that need a session.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
	rg.POST("/auth/sign-out", h.SignOut)
}

// SignIn handles POST /auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var in identityapp.SignInInput
	if !h.bindJSON(c, &in) {
		return
	}
	ctx := c.Request.Context()
	in.Language = i18n.FromContext(ctx).Language().String()

	out, err := h.auth.SignIn(ctx, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	out, err := h.auth.Me(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, out)
}

// SignOut handles POST /auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"signed_out": true})
}
