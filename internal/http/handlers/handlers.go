// Package handlers is the thin HTTP edge: bind, call a service, render the
// result. Everything a handler returns is structured JSON of stable keys;
// turning keys into localized prose is a client concern.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astrosetu/astrosetu-backend/internal/platform/apierr"
)

func respondErr(c *gin.Context, err error) {
	e := apierr.FromDomain(err)
	c.JSON(e.Status, gin.H{"error": e.Code, "detail": e.Error()})
}

// GET /healthcheck
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
