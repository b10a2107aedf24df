package main

import (
	"log"

	"rdistro-backend/db"
	_ "rdistro-backend/docs"
	"rdistro-backend/routes"
	"rdistro-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title API RDistro Backend
// @version 1.0
// @description API du funnel d'inscription et du dashboard admin RDistro
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.basic BasicAuth
// @description Secret admin partagé transmis en Basic auth (username ignoré)
func main() {

	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = utils.LogWriter()

	// Initialiser la base de données
	db.InitDB()

	r := routes.SetupRouter()

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Erreur lors du démarrage du serveur:", err)
	}
}
