package routes

import (
	"rdistro-backend/handlers/health"

	"github.com/gin-gonic/gin"
)

func HealthRoutes(r *gin.Engine) {
	r.GET("/health", health.HealthCheck)
}
