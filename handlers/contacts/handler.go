package contacts

import (
	"net/http"

	"rdistro-backend/utils"
	mailsmodels "rdistro-backend/utils/mails-models"

	"github.com/gin-gonic/gin"
)

type contactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateContact relaie une demande du formulaire de contact vers la boîte
// admin. Pas de persistance: le formulaire n'existe que par email.
// @Summary Submit a contact request
// @Description Relay a contact form submission to the admin inbox
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body contactInput true "Contact information"
// @Success 200 {object} map[string]bool "success: true"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Router /contact [post]
func CreateContact(c *gin.Context) {
	var input contactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	if !utils.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	mailsmodels.ContactNotification(mailsmodels.ContactEmailData{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	})

	utils.LogSuccessWithEmail(input.Email, "Demande de contact relayée")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
