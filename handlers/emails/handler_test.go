package emails

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"rdistro-backend/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func emailRouter() *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/admin/emails", SendEmail)
	return r
}

func postEmail(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/admin/emails", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestSendEmail_MissingFields(t *testing.T) {
	resp := postEmail(emailRouter(), `{"from": "support@rdistro.net"}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "All fields are required")
}

func TestSendEmail_UnknownSenderRejected(t *testing.T) {
	body := `{"from": "attacker@evil.com", "to": "jane@example.com", "subject": "Hi", "message": "Hello"}`

	resp := postEmail(emailRouter(), body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid sender email")
}

func TestSendEmail_InvalidRecipient(t *testing.T) {
	body := `{"from": "support@rdistro.net", "to": "not-an-email", "subject": "Hi", "message": "Hello"}`

	resp := postEmail(emailRouter(), body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid recipient email")
}

func TestSendEmail_Success(t *testing.T) {
	body := `{"from": "registration@rdistro.net", "to": "jane@example.com", "subject": "Welcome", "message": "Hello Jane"}`

	resp := postEmail(emailRouter(), body)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"success":true`)
}
