package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/database"
)

// HealthController answers the liveness probe with the state of the
// database connection.
type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status reports 200 while the database answers pings and 503 once it
// stops.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	dbState, ok := h.pingDatabase()

	status, code := "healthy", http.StatusOK
	if !ok {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.IndentedJSON(code, gin.H{
		"status":   status,
		"time":     time.Now().Format(time.RFC3339),
		"version":  h.version,
		"database": dbState,
	})
}

// pingDatabase checks the connection. A controller built without a
// database reports that without failing the probe.
func (h *HealthController) pingDatabase() (string, bool) {
	if h.db == nil {
		return "not configured", true
	}
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return "error: " + err.Error(), false
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: " + err.Error(), false
	}
	return "ok", true
}
