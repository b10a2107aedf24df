package registrations

import (
	"net/http"
	"os"

	"rdistro-backend/models"
	"rdistro-backend/repository"
	"rdistro-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	stripeSubscription "github.com/stripe/stripe-go/v82/subscription"
)

// GetAllRegistrations retourne toutes les inscriptions avec les statistiques
// agrégées du dashboard
// @Summary List registrations with stats
// @Description Return all registrations (newest first) and the aggregate stats
// @Tags registrations
// @Produce json
// @Security BasicAuth
// @Success 200 {object} map[string]interface{} "registrations, stats"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Server error"
// @Router /admin/registrations [get]
func GetAllRegistrations(c *gin.Context) {
	regs, err := repository.GetRegistrations()
	if err != nil {
		utils.LogError(err, "Erreur lors de la récupération des inscriptions dans GetAllRegistrations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	stats, err := repository.GetStats()
	if err != nil {
		utils.LogError(err, "Erreur lors du calcul des statistiques dans GetAllRegistrations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": regs, "stats": stats})
}

type accountCreatedInput struct {
	AccountCreated bool `json:"accountCreated"`
}

// MarkAccountCreated bascule le drapeau accountCreated d'une inscription.
// C'est le seul chemin d'écriture de ce champ: aucun webhook n'y touche.
// @Summary Mark a registration account as created
// @Description Set the operator-controlled accountCreated flag
// @Tags registrations
// @Accept json
// @Produce json
// @Param id path string true "Registration id"
// @Param body body accountCreatedInput true "accountCreated flag"
// @Security BasicAuth
// @Success 200 {object} map[string]interface{} "success, registration"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Registration not found"
// @Router /admin/registrations/{id} [patch]
func MarkAccountCreated(c *gin.Context) {
	id := c.Param("id")

	var input accountCreatedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updated, err := repository.UpdateRegistration(id, map[string]interface{}{
		"account_created": input.AccountCreated,
	})
	if err != nil {
		utils.LogError(err, "Erreur de mise à jour dans MarkAccountCreated")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	utils.LogSuccessWithEmail(updated.Email, "Compte marqué comme créé")
	c.JSON(http.StatusOK, gin.H{"success": true, "registration": updated})
}

type actionInput struct {
	Action string `json:"action" binding:"required"`
}

// RegistrationAction applique une action nommée sur une inscription. Seule
// cancel_subscription existe aujourd'hui; le dispatch reste extensible.
// @Summary Run an action on a registration
// @Description Dispatch an admin action; cancel_subscription cancels the Stripe subscription and marks the registration cancelled
// @Tags registrations
// @Accept json
// @Produce json
// @Param id path string true "Registration id"
// @Param body body actionInput true "Action name"
// @Security BasicAuth
// @Success 200 {object} map[string]bool "success: true"
// @Failure 400 {object} map[string]string "error: No subscription found"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Registration not found"
// @Failure 500 {object} map[string]string "error: Failed to cancel subscription"
// @Router /admin/registrations/{id} [put]
func RegistrationAction(c *gin.Context) {
	id := c.Param("id")

	var input actionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Action != "cancel_subscription" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		return
	}

	reg, err := repository.GetRegistrationByID(id)
	if err != nil {
		utils.LogError(err, "Erreur de lecture dans RegistrationAction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if reg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}
	if reg.SubscriptionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No subscription found"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if _, err := stripeSubscription.Cancel(reg.SubscriptionID, nil); err != nil {
		utils.LogErrorWithEmail(reg.Email, err, "Erreur lors de l'annulation Stripe dans RegistrationAction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription"})
		return
	}

	// Le statut de paiement passe à failed, valeur historique du dashboard
	// pour une résiliation manuelle
	if _, err := repository.UpdateRegistration(id, map[string]interface{}{
		"subscription_status": models.SubscriptionCancelled,
		"payment_status":      models.PaymentFailed,
	}); err != nil {
		utils.LogErrorWithEmail(reg.Email, err, "Erreur de mise à jour après annulation dans RegistrationAction")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	utils.LogSuccessWithEmail(reg.Email, "Abonnement annulé par l'admin")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteRegistration supprime une inscription, avec annulation optionnelle
// de l'abonnement Stripe en amont. Un échec d'annulation est logué mais ne
// bloque jamais la suppression locale.
// @Summary Delete a registration
// @Description Remove the registration, optionally cancelling the upstream Stripe subscription first
// @Tags registrations
// @Produce json
// @Param id path string true "Registration id"
// @Param cancelSubscription query bool false "Also cancel the Stripe subscription"
// @Security BasicAuth
// @Success 200 {object} map[string]bool "success: true"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Registration not found"
// @Failure 500 {object} map[string]string "error: Failed to delete registration"
// @Router /admin/registrations/{id} [delete]
func DeleteRegistration(c *gin.Context) {
	id := c.Param("id")

	reg, err := repository.GetRegistrationByID(id)
	if err != nil {
		utils.LogError(err, "Erreur de lecture dans DeleteRegistration")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if reg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	if c.Query("cancelSubscription") == "true" && reg.SubscriptionID != "" {
		stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
		if _, err := stripeSubscription.Cancel(reg.SubscriptionID, nil); err != nil {
			utils.LogErrorWithEmail(reg.Email, err, "Annulation Stripe échouée, suppression poursuivie")
		}
	}

	deleted, err := repository.DeleteRegistration(id)
	if err != nil {
		utils.LogError(err, "Erreur de suppression dans DeleteRegistration")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if !deleted {
		// La ligne existait à la lecture mais plus à la suppression
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete registration"})
		return
	}

	utils.LogSuccessWithEmail(reg.Email, "Inscription supprimée")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
