package payments

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"rdistro-backend/models"
	"rdistro-backend/repository"
	"rdistro-backend/utils"
	mailsmodels "rdistro-backend/utils/mails-models"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeWebhookHandler réconcilie les événements de facturation asynchrones
// avec les inscriptions. La livraison est at-least-once et non ordonnée:
// chaque handler est idempotent et tout événement vérifié est acquitté,
// même si son traitement interne échoue, sinon Stripe rejoue indéfiniment.
// @Summary Stripe webhook endpoint
// @Description Verify the event signature then reconcile subscription and invoice events into the registration store
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "message: event processed"
// @Failure 400 {object} map[string]string "error: Invalid signature"
// @Router /stripe/webhook [post]
func StripeWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Impossible de lire le corps de la requête"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		utils.LogError(nil, "STRIPE_WEBHOOK_SECRET non configuré")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret non configuré"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		utils.LogError(err, "Vérification de la signature Stripe échouée")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	switch event.Type {
	case "customer.subscription.updated":
		handleSubscriptionUpdated(c, event)
	case "customer.subscription.deleted":
		handleSubscriptionDeleted(c, event)
	case "invoice.paid":
		handleInvoicePaid(c, event)
	case "invoice.payment_failed":
		handleInvoicePaymentFailed(c, event)
	case "customer.subscription.trial_will_end":
		handleTrialWillEnd(c, event)
	default:
		utils.LogInfo("Événement Stripe ignoré: " + string(event.Type))
		c.JSON(http.StatusOK, gin.H{"message": "Événement ignoré"})
	}
}

// findRegistration corrèle un événement à une inscription: identifiant
// d'abonnement d'abord, email normalisé en repli
func findRegistration(subscriptionID string, email string) *models.Registration {
	reg, err := repository.GetRegistrationBySubscription(subscriptionID, email)
	if err != nil {
		utils.LogErrorWithEmail(email, err, "Erreur de corrélation webhook")
		return nil
	}
	return reg
}

func handleSubscriptionUpdated(c *gin.Context, event stripe.Event) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		utils.LogError(err, "Erreur parsing Subscription dans handleSubscriptionUpdated")
		c.JSON(http.StatusOK, gin.H{"message": "Événement acquitté"})
		return
	}

	email := sub.Metadata["email"]
	reg := findRegistration(sub.ID, email)
	if reg == nil {
		utils.LogInfo("Aucune inscription corrélée pour la subscription " + sub.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Aucune inscription corrélée"})
		return
	}

	// Rejet des livraisons désordonnées: un événement plus ancien que le
	// dernier appliqué ne doit pas régresser le statut
	if event.Created < reg.LastEventAt {
		utils.LogInfo(fmt.Sprintf("Événement subscription obsolète ignoré (%d < %d) pour %s", event.Created, reg.LastEventAt, reg.Email))
		c.JSON(http.StatusOK, gin.H{"message": "Événement obsolète ignoré"})
		return
	}

	var updates map[string]interface{}
	switch sub.Status {
	case stripe.SubscriptionStatusActive:
		updates = map[string]interface{}{
			"payment_status":      models.PaymentSucceeded,
			"subscription_status": models.SubscriptionActive,
			"subscription_id":     sub.ID,
			"last_event_at":       event.Created,
		}
	case stripe.SubscriptionStatusPastDue:
		updates = map[string]interface{}{
			"payment_status":      models.PaymentFailed,
			"subscription_status": models.SubscriptionPastDue,
			"last_event_at":       event.Created,
		}
	case stripe.SubscriptionStatusTrialing:
		updates = map[string]interface{}{
			"subscription_status": models.SubscriptionTrialing,
			"subscription_id":     sub.ID,
			"last_event_at":       event.Created,
		}
	default:
		utils.LogInfo("Statut de subscription non géré: " + string(sub.Status))
		c.JSON(http.StatusOK, gin.H{"message": "Statut non géré"})
		return
	}

	if _, err := repository.UpdateRegistration(reg.ID, updates); err != nil {
		utils.LogErrorWithEmail(reg.Email, err, "Erreur de mise à jour dans handleSubscriptionUpdated")
	} else {
		utils.LogSuccessWithEmail(reg.Email, "Inscription mise à jour: subscription "+string(sub.Status))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription mise à jour"})
}

func handleSubscriptionDeleted(c *gin.Context, event stripe.Event) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		utils.LogError(err, "Erreur parsing Subscription dans handleSubscriptionDeleted")
		c.JSON(http.StatusOK, gin.H{"message": "Événement acquitté"})
		return
	}

	email := sub.Metadata["email"]
	reg := findRegistration(sub.ID, email)
	if reg == nil {
		utils.LogInfo("Aucune inscription corrélée pour la résiliation " + sub.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Aucune inscription corrélée"})
		return
	}

	if event.Created < reg.LastEventAt {
		utils.LogInfo("Événement de résiliation obsolète ignoré pour " + reg.Email)
		c.JSON(http.StatusOK, gin.H{"message": "Événement obsolète ignoré"})
		return
	}

	// Écriture et notifications indépendantes: un échec en base n'empêche
	// pas les emails de partir, et réciproquement
	if _, err := repository.UpdateRegistration(reg.ID, map[string]interface{}{
		"subscription_status": models.SubscriptionCancelled,
		"last_event_at":       event.Created,
	}); err != nil {
		utils.LogErrorWithEmail(reg.Email, err, "Erreur de mise à jour dans handleSubscriptionDeleted")
	}

	name := sub.Metadata["name"]
	if name == "" {
		name = reg.Name
	}
	mailsmodels.SubscriptionCancelled(reg.Email, name)
	mailsmodels.AdminNotification("Subscription Cancelled", "Subscription cancelled for: "+reg.Email)

	c.JSON(http.StatusOK, gin.H{"message": "Résiliation traitée"})
}

// invoiceSubscriptionID extrait l'identifiant d'abonnement du JSON brut
// d'une facture (parent.subscription_details pour l'API actuelle, champ
// subscription de premier niveau pour les anciens payloads)
func invoiceSubscriptionID(raw []byte) string {
	var invoiceData map[string]interface{}
	if err := json.Unmarshal(raw, &invoiceData); err != nil {
		return ""
	}

	if parent, ok := invoiceData["parent"].(map[string]interface{}); ok {
		if subDetails, ok := parent["subscription_details"].(map[string]interface{}); ok {
			if sub, ok := subDetails["subscription"].(string); ok && sub != "" {
				return sub
			}
		}
	}

	if sub, ok := invoiceData["subscription"].(string); ok {
		return sub
	}
	return ""
}

func handleInvoicePaid(c *gin.Context, event stripe.Event) {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		utils.LogError(err, "Erreur parsing Invoice dans handleInvoicePaid")
		c.JSON(http.StatusOK, gin.H{"message": "Événement acquitté"})
		return
	}

	// Une facture à 0 marque le départ d'essai: aucun état ne change et
	// aucun email de paiement ne part
	if invoice.AmountPaid == 0 {
		utils.LogInfo("Facture à 0 ignorée (départ d'essai): " + invoice.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Facture d'essai ignorée"})
		return
	}

	subID := invoiceSubscriptionID(event.Data.Raw)
	reg := findRegistration(subID, invoice.CustomerEmail)
	if reg == nil {
		utils.LogInfo("Aucune inscription corrélée pour la facture " + invoice.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Aucune inscription corrélée"})
		return
	}

	// Rejeu: une facture déjà appliquée ne modifie rien et ne renvoie rien
	if reg.LastInvoiceID == invoice.ID {
		utils.LogInfo("Facture déjà appliquée, rejeu ignoré: " + invoice.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Facture déjà traitée"})
		return
	}

	amount := float64(invoice.AmountPaid) / 100

	if _, err := repository.UpdateRegistration(reg.ID, map[string]interface{}{
		"payment_status":      models.PaymentSucceeded,
		"last_payment_date":   time.Now(),
		"last_payment_amount": amount,
		"last_invoice_id":     invoice.ID,
	}); err != nil {
		utils.LogErrorWithEmail(reg.Email, err, "Erreur de mise à jour dans handleInvoicePaid")
	}

	mailsmodels.PaymentSucceeded(reg.Email, amount)
	mailsmodels.AdminNotification("Payment Received", fmt.Sprintf("Payment of $%.2f received from %s", amount, reg.Email))

	utils.LogSuccessWithEmail(reg.Email, fmt.Sprintf("Paiement encaissé: $%.2f", amount))
	c.JSON(http.StatusOK, gin.H{"message": "Paiement enregistré"})
}

func handleInvoicePaymentFailed(c *gin.Context, event stripe.Event) {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		utils.LogError(err, "Erreur parsing Invoice dans handleInvoicePaymentFailed")
		c.JSON(http.StatusOK, gin.H{"message": "Événement acquitté"})
		return
	}

	subID := invoiceSubscriptionID(event.Data.Raw)
	reg := findRegistration(subID, invoice.CustomerEmail)
	if reg == nil {
		utils.LogInfo("Aucune inscription corrélée pour l'échec de paiement " + invoice.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Aucune inscription corrélée"})
		return
	}

	if _, err := repository.UpdateRegistration(reg.ID, map[string]interface{}{
		"payment_status": models.PaymentFailed,
	}); err != nil {
		utils.LogErrorWithEmail(reg.Email, err, "Erreur de mise à jour dans handleInvoicePaymentFailed")
	}

	mailsmodels.PaymentFailed(reg.Email)
	mailsmodels.AdminNotification("Payment Failed", fmt.Sprintf("Payment failed for %s. Invoice: %s", reg.Email, invoice.ID))

	c.JSON(http.StatusOK, gin.H{"message": "Échec de paiement enregistré"})
}

// handleTrialWillEnd est purement notificationnel: aucun état ne change
func handleTrialWillEnd(c *gin.Context, event stripe.Event) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		utils.LogError(err, "Erreur parsing Subscription dans handleTrialWillEnd")
		c.JSON(http.StatusOK, gin.H{"message": "Événement acquitté"})
		return
	}

	email := sub.Metadata["email"]
	if email == "" {
		utils.LogInfo("Pas d'email dans les métadonnées de la subscription " + sub.ID)
		c.JSON(http.StatusOK, gin.H{"message": "Aucune inscription corrélée"})
		return
	}

	trialEnd := ""
	if sub.TrialEnd > 0 {
		trialEnd = time.Unix(sub.TrialEnd, 0).Format("January 2, 2006")
	}

	mailsmodels.TrialWillEnd(email, trialEnd)
	mailsmodels.AdminNotification("Trial Ending Soon", "Trial ending in 3 days for: "+email)

	c.JSON(http.StatusOK, gin.H{"message": "Rappel de fin d'essai envoyé"})
}
