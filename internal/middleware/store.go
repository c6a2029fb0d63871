package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naembfh/staff-schedule/internal/database"
)

type contextKey string

const (
	DBKey        contextKey = "db"
	RequestIDKey contextKey = "request_id"
)

// WithDB stores the shared database handle on the request context so
// handlers can fetch it with GetDB.
func WithDB(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(DBKey), db)
		c.Next()
	}
}

// GetDB retrieves the database handle from the request context.
func GetDB(c *gin.Context) (*database.DB, bool) {
	val, exists := c.Get(string(DBKey))
	if !exists {
		return nil, false
	}
	db, ok := val.(*database.DB)
	return db, ok
}

// MustDB is the handler preamble: it aborts with a 500 when the database
// was not injected (only possible through a wiring bug).
func MustDB(c *gin.Context) (*database.DB, bool) {
	db, ok := GetDB(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection not found"})
		c.Abort()
	}
	return db, ok
}
