package health

import (
	"net/http"
	"os"
	"time"

	"rdistro-backend/db"

	"github.com/gin-gonic/gin"
)

func envStatus(name string) string {
	if os.Getenv(name) != "" {
		return "set"
	}
	return "missing"
}

// HealthCheck rapporte la présence de la configuration et l'état de la
// connexion base de données
// @Summary Health check
// @Description Report configuration presence and database connectivity
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	status := gin.H{
		"timestamp":      time.Now().Format(time.RFC3339),
		"db_url":         envStatus("DB_URL"),
		"admin_password": envStatus("ADMIN_PASSWORD"),
		"admin_email":    envStatus("ADMIN_EMAIL"),
		"smtp":           envStatus("SMTP_PASSWORD"),
		"stripe_secret":  envStatus("STRIPE_SECRET_KEY"),
		"webhook_secret": envStatus("STRIPE_WEBHOOK_SECRET"),
	}

	status["database"] = "connected"
	if db.DB == nil {
		status["database"] = "not initialized"
	} else if sqlDB, err := db.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status["database"] = "unreachable"
	}

	c.JSON(http.StatusOK, status)
}
