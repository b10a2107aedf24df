package routes

import (
	"rdistro-backend/handlers/settings"

	"github.com/gin-gonic/gin"
)

func SettingsRoutes(r *gin.Engine) {
	// Lecture publique: le funnel d'inscription vérifie si l'essai est offert
	r.GET("/settings", settings.GetSettings)
}
