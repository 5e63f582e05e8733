package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows credentialed requests from the configured origins
// (comma separated).
func CORSMiddleware(allowedOrigins string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	origins := make([]string, 0)
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	return cors.New(corsConfig)
}
