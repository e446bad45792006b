package middleware

import (
	"net/http"
	"strings"

	"cribbage-show/internal/config"

	"github.com/gin-gonic/gin"
)

// CORS lets browser frontends call the scoring API. Origins listed in
// WS_ALLOWED_ORIGINS are always allowed; loopback origins only in development.
func CORS(cfg config.Config) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, o := range cfg.WSAllowedOrigins {
		allowed[o] = true
	}
	dev := cfg.AppEnv == "development"

	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader("Origin"))
		if origin == "" {
			c.Next()
			return
		}

		if allowed[origin] || (dev && isLoopbackOrigin(origin)) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Headers", "Content-Type")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func isLoopbackOrigin(origin string) bool {
	for _, prefix := range []string{"http://localhost:", "http://127.0.0.1:", "http://[::1]:", "https://localhost:", "https://127.0.0.1:", "https://[::1]:"} {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}
