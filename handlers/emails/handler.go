package emails

import (
	"net/http"

	"rdistro-backend/utils"
	mailsmodels "rdistro-backend/utils/mails-models"

	"github.com/gin-gonic/gin"
)

type sendEmailInput struct {
	From    string `json:"from" binding:"required"`
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SendEmail permet à un opérateur d'envoyer un message libre depuis une
// adresse expéditrice de la liste autorisée
// @Summary Send a manual email
// @Description Send a free-form email from one of the allowed sender addresses
// @Tags emails
// @Accept json
// @Produce json
// @Param email body sendEmailInput true "Email to send"
// @Security BasicAuth
// @Success 200 {object} map[string]bool "success: true"
// @Failure 400 {object} map[string]string "error: Invalid sender email"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /admin/emails [post]
func SendEmail(c *gin.Context) {
	var input sendEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	if !mailsmodels.IsValidSender(input.From) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sender email"})
		return
	}

	if !utils.ValidateEmail(input.To) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient email"})
		return
	}

	mailsmodels.ManualEmail(input.From, input.To, input.Subject, input.Message)

	utils.LogSuccessWithEmail(input.To, "Email manuel envoyé depuis "+input.From)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
