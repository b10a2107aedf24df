package routes

import (
	"rdistro-backend/handlers/payments"

	"github.com/gin-gonic/gin"
)

func PaymentsRoutes(r *gin.Engine) {
	r.POST("/payments/intent", payments.CreatePaymentIntent)
	r.POST("/payments/portal", payments.CreatePortalSession)
	r.POST("/registrations", payments.FinalizeRegistration)
	r.POST("/stripe/webhook", payments.StripeWebhookHandler)
}
