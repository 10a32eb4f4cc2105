package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the portal front ends to call the API. A "*" entry allows any origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range allowedOrigins {
		if origin == "*" {
			config.AllowOriginFunc = func(string) bool { return true }
			return cors.New(config)
		}
	}
	config.AllowOrigins = allowedOrigins
	if len(config.AllowOrigins) == 0 {
		config.AllowOrigins = []string{"http://localhost:3000"}
	}
	return cors.New(config)
}
