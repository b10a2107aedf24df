package middleware

import (
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminAuth protège les routes admin avec un secret partagé transmis en
// Basic auth. Le nom d'utilisateur est ignoré; toute défaillance produit
// la même réponse 401 pour ne pas révéler le cas en cause.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminPassword := os.Getenv("ADMIN_PASSWORD")
		if adminPassword == "" {
			unauthorized(c)
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Basic" {
			unauthorized(c)
			return
		}

		decoded, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			unauthorized(c)
			return
		}

		// Format user:password, seul le password compte
		credentials := strings.SplitN(string(decoded), ":", 2)
		if len(credentials) != 2 {
			unauthorized(c)
			return
		}

		if subtle.ConstantTimeCompare([]byte(credentials[1]), []byte(adminPassword)) != 1 {
			unauthorized(c)
			return
		}

		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	c.Abort()
}
