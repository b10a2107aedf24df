package payments

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"rdistro-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82"
)

const testWebhookSecret = "whsec_test_secret"

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

// signPayload fabrique un en-tête Stripe-Signature valide pour le payload
func signPayload(payload []byte, secret string) string {
	timestamp := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func webhookEvent(eventType string, created int64, object map[string]interface{}) []byte {
	event := map[string]interface{}{
		"id":          "evt_test_1",
		"type":        eventType,
		"created":     created,
		"api_version": stripe.APIVersion,
		"data": map[string]interface{}{
			"object": object,
		},
	}
	payload, _ := json.Marshal(event)
	return payload
}

func postWebhook(t *testing.T, payload []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()

	r := testutils.SetupTestRouter()
	r.POST("/stripe/webhook", StripeWebhookHandler)

	req, _ := http.NewRequest(http.MethodPost, "/stripe/webhook", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", signature)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestWebhook_InvalidSignature(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	payload := webhookEvent("invoice.paid", time.Now().Unix(), map[string]interface{}{
		"id": "in_1",
	})

	resp := postWebhook(t, payload, signPayload(payload, "whsec_wrong_secret"))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestWebhook_MissingSecret(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")

	payload := webhookEvent("invoice.paid", time.Now().Unix(), map[string]interface{}{})

	resp := postWebhook(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestWebhook_UnknownEventTypeAcknowledged(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	payload := webhookEvent("payment_intent.created", time.Now().Unix(), map[string]interface{}{
		"id": "pi_1",
	})

	resp := postWebhook(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestWebhook_InvoicePaidZeroAmountIsNoOp(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()
	// Aucune expectation: une facture à 0 ne touche ni la base ni les emails

	payload := webhookEvent("invoice.paid", time.Now().Unix(), map[string]interface{}{
		"id":             "in_trial",
		"amount_paid":    0,
		"customer_email": "a@b.com",
	})

	resp := postWebhook(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhook_SubscriptionUpdatedActive(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	// Corrélation: subscription_id d'abord, puis repli sur l'email
	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE subscription_id = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE email = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "last_event_at"}).
			AddRow("reg_1", "a@b.com", int64(0)))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "registrations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE id = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "payment_status", "subscription_status"}).
			AddRow("reg_1", "a@b.com", "succeeded", "active"))

	payload := webhookEvent("customer.subscription.updated", time.Now().Unix(), map[string]interface{}{
		"id":     "sub_123",
		"status": "active",
		"metadata": map[string]interface{}{
			"email": "a@b.com",
		},
	})

	resp := postWebhook(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhook_SubscriptionUpdatedStaleEventSkipped(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	eventTime := time.Now().Unix()

	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE subscription_id = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "last_event_at"}).
			AddRow("reg_1", "a@b.com", eventTime+100))
	// Pas d'UPDATE: l'événement est plus ancien que le dernier appliqué

	payload := webhookEvent("customer.subscription.updated", eventTime, map[string]interface{}{
		"id":     "sub_123",
		"status": "past_due",
		"metadata": map[string]interface{}{
			"email": "a@b.com",
		},
	})

	resp := postWebhook(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhook_SubscriptionUpdatedNoCorrelation(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE subscription_id = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE email = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id"}))

	payload := webhookEvent("customer.subscription.updated", time.Now().Unix(), map[string]interface{}{
		"id":     "sub_123",
		"status": "active",
		"metadata": map[string]interface{}{
			"email": "orphan@b.com",
		},
	})

	resp := postWebhook(t, payload, signPayload(payload, testWebhookSecret))

	// L'événement vérifié est acquitté même sans inscription corrélée
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhook_InvoicePaidReplayIsNoOp(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE email = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "last_invoice_id", "payment_status", "last_payment_amount"}).
			AddRow("reg_1", "a@b.com", "in_42", "succeeded", 20.0))
	// Facture déjà appliquée: aucune écriture supplémentaire

	payload := webhookEvent("invoice.paid", time.Now().Unix(), map[string]interface{}{
		"id":             "in_42",
		"amount_paid":    2000,
		"customer_email": "a@b.com",
	})

	resp := postWebhook(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhook_InvoicePaidRecordsPayment(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE subscription_id = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "last_invoice_id"}).
			AddRow("reg_1", "a@b.com", ""))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "registrations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE id = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "payment_status", "last_payment_amount"}).
			AddRow("reg_1", "a@b.com", "succeeded", 20.0))

	payload := webhookEvent("invoice.paid", time.Now().Unix(), map[string]interface{}{
		"id":             "in_43",
		"amount_paid":    2000,
		"customer_email": "a@b.com",
		"parent": map[string]interface{}{
			"subscription_details": map[string]interface{}{
				"subscription": "sub_123",
			},
		},
	})

	resp := postWebhook(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhook_InvoicePaymentFailed(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE email = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "subscription_status"}).
			AddRow("reg_1", "c@d.com", "active"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "registrations" SET (.*)"payment_status"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE id = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "payment_status", "subscription_status"}).
			AddRow("reg_1", "c@d.com", "failed", "active"))

	payload := webhookEvent("invoice.payment_failed", time.Now().Unix(), map[string]interface{}{
		"id":             "in_44",
		"customer_email": "c@d.com",
	})

	resp := postWebhook(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhook_TrialWillEndNoMutation(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()
	// Purement notificationnel: aucune requête attendue

	payload := webhookEvent("customer.subscription.trial_will_end", time.Now().Unix(), map[string]interface{}{
		"id":        "sub_123",
		"trial_end": time.Now().Add(72 * time.Hour).Unix(),
		"metadata": map[string]interface{}{
			"email": "a@b.com",
		},
	})

	resp := postWebhook(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhook_SubscriptionDeleted(t *testing.T) {
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE subscription_id = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "name", "last_event_at"}).
			AddRow("reg_1", "a@b.com", "Jane", int64(0)))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "registrations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT (.+) FROM "registrations" WHERE id = (.+)`).
		WillReturnRows(mock.NewRows([]string{"id", "email", "subscription_status"}).
			AddRow("reg_1", "a@b.com", "cancelled"))

	payload := webhookEvent("customer.subscription.deleted", time.Now().Unix(), map[string]interface{}{
		"id":     "sub_123",
		"status": "canceled",
		"metadata": map[string]interface{}{
			"email": "a@b.com",
		},
	})

	resp := postWebhook(t, payload, signPayload(payload, testWebhookSecret))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
