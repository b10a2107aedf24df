package payments

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"rdistro-backend/testutils"

	"github.com/stretchr/testify/assert"
)

func TestCreatePortalSession_MissingCustomer(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	r := testutils.SetupTestRouter()
	r.POST("/payments/portal", CreatePortalSession)

	req, _ := http.NewRequest(http.MethodPost, "/payments/portal", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Customer ID required")
}

func TestCreatePortalSession_Success(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	stubStripeBackend(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "bps_test_1", "url": "https://billing.stripe.com/session/test"}`))
	})

	r := testutils.SetupTestRouter()
	r.POST("/payments/portal", CreatePortalSession)

	req, _ := http.NewRequest(http.MethodPost, "/payments/portal", bytes.NewBufferString(`{"customerId": "cus_test_1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"url":"https://billing.stripe.com/session/test"`)
}
