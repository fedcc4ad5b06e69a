package controllers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Urbanbaseprops/property-manager/internal/app/middleware"
	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services/container"
	"github.com/Urbanbaseprops/property-manager/internal/error/code"
	"github.com/Urbanbaseprops/property-manager/internal/error/response"
)

// watchKeepAlive is the interval of SSE comments that keep proxies from closing the stream
var watchKeepAlive = 25 * time.Second

// InterfaceAuthController defines the auth controller interface
type InterfaceAuthController interface {
	Login()
	Logout()
	Me()
	Watch()
	CreateUser()
}

// AuthController handles sign-in and session requests
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController creates an auth controller
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest is the sign-in body
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"admin@urbanbase.local"`
	Password string `json:"password" binding:"required" example:"changeme"`
}

// CreateUserRequest is the body of an admin creating an account
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff"`
}

// HandleAuthFunc returns a gin handler for auth requests
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		case "me":
			controller.Me()
		case "watch":
			controller.Watch()
		case "createUser":
			controller.CreateUser()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *AuthController) service() services.InterfaceAuthService {
	return c.Container.GetService("auth").(services.InterfaceAuthService)
}

// 1. Login signs in with email and password
// @Summary      Sign in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "credentials"
// @Success      200 {object} services.Session
// @Failure      401 {object} ErrorResponse
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	session, err := c.service().SignIn(c.Ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c.Ctx, err, code.ErrAuthFailed)
		return
	}
	response.Success(c.Ctx, session)
}

// 2. Logout revokes the bearer token
func (c *AuthController) Logout() {
	if err := c.service().SignOut(c.Ctx.Request.Context(), c.Ctx.GetString(middleware.TokenKey)); err != nil {
		respondError(c.Ctx, err, code.ErrTokenInvalid)
		return
	}
	response.Success(c.Ctx, gin.H{"signed_out": true})
}

// 3. Me returns the signed-in user
func (c *AuthController) Me() {
	response.Success(c.Ctx, currentUser(c.Ctx))
}

// 4. Watch streams session changes as server-sent events. The token is read from the
// Authorization header or, for EventSource clients, the token query parameter. The
// first event carries the current user (null when signed out); the stream closes after
// an event with a null user.
func (c *AuthController) Watch() {
	token := middleware.ExtractToken(c.Ctx.GetHeader("Authorization"))
	if token == "" {
		token = c.Ctx.Query("token")
	}

	events := make(chan *models.Identity, 4)
	unsubscribe := c.service().OnSessionChange(c.Ctx.Request.Context(), token, func(identity *models.Identity) {
		select {
		case events <- identity:
		default:
		}
	})
	defer unsubscribe()

	c.Ctx.Header("Content-Type", "text/event-stream")
	c.Ctx.Header("Cache-Control", "no-cache")
	c.Ctx.Header("Connection", "keep-alive")

	keepAlive := time.NewTicker(watchKeepAlive)
	defer keepAlive.Stop()

	c.Ctx.Stream(func(w io.Writer) bool {
		select {
		case <-c.Ctx.Request.Context().Done():
			return false
		case <-keepAlive.C:
			_, _ = io.WriteString(w, ": keep-alive\n\n")
			return true
		case identity := <-events:
			c.Ctx.SSEvent("session", gin.H{"user": identity})
			return identity != nil
		}
	})
}

// 5. CreateUser registers a staff or admin account
func (c *AuthController) CreateUser() {
	var req CreateUserRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	user, err := c.service().CreateUser(c.Ctx.Request.Context(), req.Email, req.Name, req.Password, req.Role)
	if err != nil {
		respondError(c.Ctx, err, code.ErrRecordNotFound)
		return
	}
	response.Success(c.Ctx, user)
}
