package contacts

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

func contactRouter() *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/contact", CreateContact)
	return r
}

func postContact(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/contact", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateContact_MissingFields(t *testing.T) {
	resp := postContact(contactRouter(), `{"name": "Jane"}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "All fields are required")
}

func TestCreateContact_InvalidEmail(t *testing.T) {
	resp := postContact(contactRouter(), `{"name": "Jane", "email": "not-an-email", "message": "Hello"}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid email address")
}

func TestCreateContact_Success(t *testing.T) {
	resp := postContact(contactRouter(), `{"name": "Jane", "email": "jane@example.com", "message": "Hello there"}`)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"success":true`)
}
