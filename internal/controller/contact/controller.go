// Package contact provides the public contact form endpoint.
package contact

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/notifier"
	"jobboard-backend/internal/utilities"
)

// ContactController handles contact form submissions
type ContactController struct {
	Notifier notifier.Notifier
}

// NewContactController creates a new instance of ContactController.
func NewContactController(n notifier.Notifier) *ContactController {
	return &ContactController{Notifier: n}
}

type contactInfo struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Submit accepts a contact form message and forwards it to the site owner.
// Delivery happens after the response and failures are only logged.
// @Summary Submit a contact form message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body contactInfo true "Contact message"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing or invalid fields"
// @Router /contact [post]
func (cc *ContactController) Submit(c *gin.Context) {
	info := contactInfo{}
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	go func(info contactInfo) {
		if err := cc.Notifier.ContactMessage(info.Name, info.Email, info.Message); err != nil {
			log.Printf("failed to forward contact message: %v", err)
		}
	}(info)

	c.JSON(http.StatusOK, utilities.MessageResponse{
		Message: "Thanks for reaching out! We'll get back to you soon.",
	})
}
