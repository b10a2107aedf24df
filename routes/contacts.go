package routes

import (
	"rdistro-backend/handlers/contacts"

	"github.com/gin-gonic/gin"
)

func ContactsRoutes(r *gin.Engine) {
	r.POST("/contact", contacts.CreateContact)
}
