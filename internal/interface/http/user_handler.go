package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inventory-api/internal/application"
	"github.com/oksasatya/inventory-api/internal/domain/entity"
	"github.com/oksasatya/inventory-api/internal/interface/middleware"
	"github.com/oksasatya/inventory-api/pkg/helpers"
	"github.com/oksasatya/inventory-api/pkg/response"
	"github.com/oksasatya/inventory-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.AuthService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// userResponse is the only client-visible shape of a user; the hash is never included.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// loginEnvelope repeats the token at the top level next to message, the
// {message, token} shape existing clients read.
type loginEnvelope struct {
	response.APIResponse[loginResponse]
	Token string `json:"token"`
}

// Register handles POST /user
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "user details cannot be empty", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case err == nil:
		response.Success(c, http.StatusCreated, toUserResponse(u), "user created", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, helpers.ErrPasswordTooLong):
		response.Error[any](c, http.StatusBadRequest, "user details cannot be empty", map[string]string{"password": err.Error()})
	default:
		response.Error[any](c, http.StatusInternalServerError, "failed to create user", nil)
	}
}

// Login handles POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "login details cannot be empty", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		var meta any
		if !res.ExpiresAt.IsZero() {
			meta = gin.H{"expires_at": res.ExpiresAt}
		}
		body := loginResponse{Token: res.Token, User: toUserResponse(res.User)}
		c.JSON(http.StatusOK, loginEnvelope{
			APIResponse: response.New(c, http.StatusOK, body, "login successful", meta),
			Token:       res.Token,
		})
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
	}
}

// Me echoes the verified session claim
func (h *UserHandler) Me(c *gin.Context) {
	claim, ok := middleware.ClaimFrom(c)
	if !ok {
		response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": claim.Subject}, "session", nil)
}
