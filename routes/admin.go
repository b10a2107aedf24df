package routes

import (
	"rdistro-backend/handlers/emails"
	"rdistro-backend/handlers/registrations"
	"rdistro-backend/handlers/settings"
	"rdistro-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	adminRoutes := r.Group("/admin")
	adminRoutes.Use(middleware.AdminAuth())
	{
		adminRoutes.GET("/registrations", registrations.GetAllRegistrations)
		adminRoutes.PATCH("/registrations/:id", registrations.MarkAccountCreated)
		adminRoutes.PUT("/registrations/:id", registrations.RegistrationAction)
		adminRoutes.DELETE("/registrations/:id", registrations.DeleteRegistration)

		adminRoutes.PATCH("/settings", settings.UpdateSettings)
		adminRoutes.POST("/emails", emails.SendEmail)
	}
}
