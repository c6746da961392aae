package public

import (
	"github.com/tijara-next/internal/service"

	handlershared "github.com/tijara-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

const sessionCartCookie = "session_cart_id"

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

// optionalUserID reads the user id when the request carries a valid
// session and stays silent otherwise. Guest flows pass a nil user.
func optionalUserID(c *gin.Context) *uint {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	if id, ok := value.(uint); ok && id > 0 {
		return &id
	}
	return nil
}

// sessionCartID reads the cart cookie, minting and setting one when
// the session does not have it yet.
func (h *Handler) sessionCartID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCartCookie); err == nil && id != "" {
		return id
	}
	id := service.NewSessionCartID()
	c.SetCookie(sessionCartCookie, id, 30*24*3600, "/", "", false, true)
	return id
}
