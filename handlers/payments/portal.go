package payments

import (
	"net/http"
	"os"

	"rdistro-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	portalsession "github.com/stripe/stripe-go/v82/billingportal/session"
)

type portalRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
}

// CreatePortalSession ouvre une session du portail de facturation Stripe
// pour qu'un client gère lui-même son moyen de paiement
// @Summary Create a billing portal session
// @Description Return a Stripe billing portal URL for the given customer
// @Tags payments
// @Accept json
// @Produce json
// @Param portal body portalRequest true "Stripe customer id"
// @Success 200 {object} map[string]string "url: portal URL"
// @Failure 400 {object} map[string]string "error: Customer ID required"
// @Failure 500 {object} map[string]string "error: Failed to create portal session"
// @Router /payments/portal [post]
func CreatePortalSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	var input portalRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer ID required"})
		return
	}

	returnURL := os.Getenv("PORTAL_RETURN_URL")
	if returnURL == "" {
		returnURL = "https://portal.rdistro.net"
	}

	session, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(input.CustomerID),
		ReturnURL: stripe.String(returnURL),
	})
	if err != nil {
		utils.LogError(err, "Erreur lors de la création de la session portail Stripe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}
