package public

import (
	"github.com/tijara-next/internal/http/response"
	"github.com/tijara-next/internal/logger"
	"github.com/tijara-next/internal/models"

	handlershared "github.com/tijara-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// RegisterRequest creates a customer account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest signs a customer in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func sessionPayload(user *models.User, token string) gin.H {
	return gin.H{
		"user":  user,
		"token": token,
	}
}

// Register creates an account and signs the customer in, adopting the
// session cart if one exists.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	user, token, _, err := h.UserAuthService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	h.adoptSessionCart(c, user.ID)
	response.Success(c, sessionPayload(user, token))
}

// Login verifies credentials, adopting the session cart on success.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	user, token, _, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	h.adoptSessionCart(c, user.ID)
	response.Success(c, sessionPayload(user, token))
}

// Me returns the signed-in customer's profile.
func (h *Handler) Me(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUser(uid)
	if err != nil {
		response.NotFound(c, "user not found")
		return
	}
	response.Success(c, user)
}

func (h *Handler) adoptSessionCart(c *gin.Context, userID uint) {
	if id, err := c.Cookie(sessionCartCookie); err == nil && id != "" {
		if err := h.CartService.AttachUser(id, userID); err != nil {
			logger.Warnw("cart_adopt_failed", "user_id", userID, "error", err)
		}
	}
}
