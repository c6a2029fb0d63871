package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/config"
)

const ConfigKey contextKey = "config"

// WithConfig stores the app config on the request context.
func WithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(ConfigKey), cfg)
		c.Next()
	}
}

// GetConfig retrieves the app config from the request context.
func GetConfig(c *gin.Context) (*config.Config, bool) {
	val, exists := c.Get(string(ConfigKey))
	if !exists {
		return nil, false
	}
	cfg, ok := val.(*config.Config)
	return cfg, ok
}
