package api

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/service"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

// LoginRequest is what the login form posts. Both fields are optional and
// neither is checked.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	ID        string    `json:"id"`
	Step      int       `json:"step"`
	Completed bool      `json:"completed"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// --- Handler Methods ---

// Login godoc
// @Summary Log in with email and password
// @Description Starts a fresh session. Credentials are accepted as given.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest false "Login form"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Malformed body"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}
	h.login(c, service.LoginPassword)
}

// GoogleLogin godoc
// @Summary Continue with Google
// @Description Starts a fresh session, same as Login.
// @Tags Auth
// @Produce json
// @Success 200 {object} LoginResponse "Login successful"
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	h.login(c, service.LoginGoogle)
}

func (h *AuthHandler) login(c *gin.Context, method service.LoginMethod) {
	token, session, err := h.authService.Login(c.Request.Context(), method)
	if err != nil {
		if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		} else {
			abortWithServiceError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		Session: MapSessionToResponse(session),
	})
}

// Logout godoc
// @Summary Log out
// @Description Discards the session and its progress photos.
// @Tags Auth
// @Security BearerAuth
// @Success 204 "Session discarded"
// @Failure 401 {object} gin.H "Unknown or expired session"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), id); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MapSessionToResponse converts a domain Session to a SessionResponse DTO.
func MapSessionToResponse(session *domain.Session) SessionResponse {
	if session == nil {
		return SessionResponse{}
	}
	return SessionResponse{
		ID:        session.ID,
		Step:      session.Step,
		Completed: session.Completed,
		ExpiresAt: session.ExpiresAt,
	}
}
