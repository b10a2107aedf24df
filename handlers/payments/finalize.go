package payments

import (
	"errors"
	"net/http"

	"rdistro-backend/models"
	"rdistro-backend/repository"
	"rdistro-backend/utils"
	mailsmodels "rdistro-backend/utils/mails-models"

	"github.com/gin-gonic/gin"
)

// FinalizeRegistration persiste l'inscription une fois le paiement ou
// l'enregistrement de carte confirmé côté client, puis notifie l'admin et
// le client. Le paiement externe étant déjà encaissé, les échecs de
// persistance ou d'email sont logués mais la réponse reste un succès.
// @Summary Finalize a registration after payment
// @Description Persist the registration record and send admin and customer confirmation emails. Persistence and email failures never surface to the caller.
// @Tags payments
// @Accept json
// @Produce json
// @Param registration body models.RegistrationCreate true "Registration payload"
// @Success 200 {object} map[string]interface{} "success: true"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Router /registrations [post]
func FinalizeRegistration(c *gin.Context) {
	var input models.RegistrationCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Plan != models.PlanArtist && input.Plan != models.PlanLabel {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan selected"})
		return
	}

	// Les liens sociaux et Spotify sont obligatoires pour un essai gratuit
	if input.FreeTrial && (input.SocialLinks == "" || input.SpotifyLink == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Social and Spotify links are required for free trial signups"})
		return
	}

	paymentStatus := models.PaymentSucceeded
	if input.FreeTrial {
		paymentStatus = models.PaymentTrial
	}

	reg := models.Registration{
		Plan:            input.Plan,
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		Country:         input.Country,
		ArtistName:      input.ArtistName,
		LabelName:       input.LabelName,
		SocialLinks:     input.SocialLinks,
		SpotifyLink:     input.SpotifyLink,
		PaymentIntentID: input.PaymentIntentID,
		Amount:          input.Amount,
		PaymentStatus:   paymentStatus,
		FreeTrial:       input.FreeTrial,
		TrialEndDate:    input.TrialEndDate,
	}

	if _, err := repository.AddRegistration(&reg); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			utils.LogErrorWithEmail(input.Email, err, "Inscription déjà existante lors de la finalisation")
		} else {
			utils.LogErrorWithEmail(input.Email, err, "Erreur de persistance lors de la finalisation")
		}
		// On continue: les emails partent même si l'écriture a échoué
	}

	entityName := input.ArtistName
	if input.Plan == models.PlanLabel {
		entityName = input.LabelName
	}

	emailData := mailsmodels.RegistrationEmailData{
		Plan:            string(input.Plan),
		Name:            input.Name,
		Email:           reg.Email,
		Phone:           input.Phone,
		Country:         input.Country,
		EntityName:      entityName,
		SocialLinks:     input.SocialLinks,
		SpotifyLink:     input.SpotifyLink,
		PaymentIntentID: input.PaymentIntentID,
		Amount:          input.Amount,
		FreeTrial:       input.FreeTrial,
		TrialEndDate:    input.TrialEndDate,
	}

	mailsmodels.NewRegistrationAdmin(emailData)
	mailsmodels.RegistrationConfirmation(emailData)

	utils.LogSuccessWithEmail(reg.Email, "Inscription finalisée")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
