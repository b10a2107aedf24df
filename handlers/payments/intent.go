package payments

import (
	"net/http"
	"os"
	"sync"
	"time"

	"rdistro-backend/models"
	"rdistro-backend/repository"
	"rdistro-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/price"
	"github.com/stripe/stripe-go/v82/product"
	"github.com/stripe/stripe-go/v82/setupintent"
	stripeSubscription "github.com/stripe/stripe-go/v82/subscription"
)

const trialPeriodDays = 30

var planAmounts = map[models.PlanType]float64{
	models.PlanArtist: 5,
	models.PlanLabel:  20,
}

var (
	priceMu        sync.Mutex
	cachedPriceIDs = map[models.PlanType]string{}
)

// resolvePriceID retourne le price Stripe du plan: variable d'environnement
// d'abord, sinon création paresseuse du produit et du tarif annuel. L'id
// créé est mémorisé sous mutex pour qu'un seul produit existe par process.
func resolvePriceID(plan models.PlanType) (string, error) {
	envVar := "STRIPE_ARTIST_PRICE_ID"
	if plan == models.PlanLabel {
		envVar = "STRIPE_LABEL_PRICE_ID"
	}
	if priceID := os.Getenv(envVar); priceID != "" {
		return priceID, nil
	}

	priceMu.Lock()
	defer priceMu.Unlock()

	if priceID, ok := cachedPriceIDs[plan]; ok {
		return priceID, nil
	}

	name := "RDistro Artist Plan"
	description := "Annual artist distribution plan - $5/year"
	unitAmount := int64(500)
	if plan == models.PlanLabel {
		name = "RDistro Label Plan"
		description = "Annual label distribution plan - $20/year"
		unitAmount = 2000
	}

	prod, err := product.New(&stripe.ProductParams{
		Name:        stripe.String(name),
		Description: stripe.String(description),
	})
	if err != nil {
		return "", err
	}

	p, err := price.New(&stripe.PriceParams{
		Product:    stripe.String(prod.ID),
		UnitAmount: stripe.Int64(unitAmount),
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(string(stripe.PriceRecurringIntervalYear)),
		},
	})
	if err != nil {
		return "", err
	}

	cachedPriceIDs[plan] = p.ID
	utils.LogSuccess("Created Stripe price for plan " + string(plan) + ": " + p.ID)
	return p.ID, nil
}

// CreatePaymentIntent initie l'abonnement d'une inscription: client Stripe,
// subscription (avec essai de 30 jours le cas échéant) et secret confirmable
// côté client.
// @Summary Initiate a subscription payment
// @Description Create the Stripe customer and subscription for a signup and return the client secret to confirm payment or card setup
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body models.PaymentIntentRequest true "Plan, email and trial flag"
// @Success 200 {object} map[string]interface{} "clientSecret, type, subscriptionId, customerId, trialEnd, plan, amount"
// @Failure 400 {object} map[string]string "error: Invalid plan selected"
// @Failure 409 {object} map[string]string "error: Email already registered"
// @Failure 500 {object} map[string]string "error: Payment failed"
// @Router /payments/intent [post]
func CreatePaymentIntent(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		utils.LogError(nil, "STRIPE_SECRET_KEY non configurée dans CreatePaymentIntent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment system not configured"})
		return
	}

	var input models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Plan != models.PlanArtist && input.Plan != models.PlanLabel {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan selected"})
		return
	}

	if input.FreeTrial && input.Plan != models.PlanLabel {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Free trial is only available on the label plan"})
		return
	}

	if input.FreeTrial {
		settings, err := repository.GetSettings()
		if err != nil {
			utils.LogError(err, "Erreur lecture des réglages dans CreatePaymentIntent")
		}
		if !settings.TrialEnabled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Free trial signups are currently disabled"})
			return
		}
	}

	// Garde anti-doublon best-effort: une erreur de lecture ne bloque pas
	// l'inscription, l'index unique ferme la course à l'insertion
	exists, err := repository.EmailExists(input.Email)
	if err != nil {
		utils.LogErrorWithEmail(input.Email, err, "Erreur lors du contrôle de doublon dans CreatePaymentIntent")
	} else if exists {
		utils.LogErrorWithEmail(input.Email, nil, "Tentative d'inscription en doublon")
		c.JSON(http.StatusConflict, gin.H{"error": "This email is already registered. Please use a different email or contact support."})
		return
	}

	priceID, err := resolvePriceID(input.Plan)
	if err != nil {
		utils.LogErrorWithEmail(input.Email, err, "Erreur de configuration du tarif dans CreatePaymentIntent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment failed: " + err.Error()})
		return
	}

	trialFlag := "false"
	if input.FreeTrial {
		trialFlag = "true"
	}

	custParams := &stripe.CustomerParams{
		Email: stripe.String(input.Email),
	}
	custParams.AddMetadata("plan", string(input.Plan))
	custParams.AddMetadata("freeTrial", trialFlag)

	cust, err := customer.New(custParams)
	if err != nil {
		utils.LogErrorWithEmail(input.Email, err, "Erreur lors de la création du client Stripe dans CreatePaymentIntent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment failed: " + err.Error()})
		return
	}

	subParams := &stripe.SubscriptionParams{
		Customer: stripe.String(cust.ID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		},
	}
	subParams.AddMetadata("plan", string(input.Plan))
	subParams.AddMetadata("freeTrial", trialFlag)
	subParams.AddMetadata("email", input.Email)
	subParams.AddExpand("pending_setup_intent")
	subParams.AddExpand("latest_invoice.confirmation_secret")

	if input.FreeTrial {
		subParams.TrialPeriodDays = stripe.Int64(trialPeriodDays)
	}

	sub, err := stripeSubscription.New(subParams)
	if err != nil {
		utils.LogErrorWithEmail(input.Email, err, "Erreur lors de la création de la subscription Stripe dans CreatePaymentIntent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment failed: " + err.Error()})
		return
	}

	// Secret de confirmation: SetupIntent en période d'essai (carte à
	// enregistrer sans débit), sinon le secret de la première facture
	clientSecret := ""
	paymentType := "payment"

	if sub.PendingSetupIntent != nil && sub.PendingSetupIntent.ClientSecret != "" {
		clientSecret = sub.PendingSetupIntent.ClientSecret
		paymentType = "setup"
	} else if sub.LatestInvoice != nil && sub.LatestInvoice.ConfirmationSecret != nil {
		clientSecret = sub.LatestInvoice.ConfirmationSecret.ClientSecret
		paymentType = "payment"
	}

	if clientSecret == "" {
		siParams := &stripe.SetupIntentParams{
			Customer:           stripe.String(cust.ID),
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		}
		siParams.AddMetadata("subscription_id", sub.ID)
		siParams.AddMetadata("plan", string(input.Plan))
		siParams.AddMetadata("freeTrial", trialFlag)

		si, err := setupintent.New(siParams)
		if err != nil {
			utils.LogErrorWithEmail(input.Email, err, "Erreur lors de la création du SetupIntent de repli dans CreatePaymentIntent")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment failed: " + err.Error()})
			return
		}
		clientSecret = si.ClientSecret
		paymentType = "setup"
	}

	var trialEnd *time.Time
	if input.FreeTrial {
		t := time.Now().Add(trialPeriodDays * 24 * time.Hour)
		trialEnd = &t
	}

	utils.LogSuccessWithEmail(input.Email, "Subscription Stripe créée: "+sub.ID)
	c.JSON(http.StatusOK, gin.H{
		"clientSecret":   clientSecret,
		"type":           paymentType,
		"subscriptionId": sub.ID,
		"customerId":     cust.ID,
		"trialEnd":       trialEnd,
		"plan":           input.Plan,
		"amount":         planAmounts[input.Plan],
	})
}
