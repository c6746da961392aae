package public

import (
	"github.com/tijara-next/internal/http/response"

	handlershared "github.com/tijara-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// GetCaptcha mints an image challenge for checkout forms. When captcha
// is disabled the client gets an empty challenge and may submit
// without one.
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "captcha generation failed", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
