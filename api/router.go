package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sales_bot/internal/sales"
)

// InitRoutes registers the keep-alive and admin snapshot endpoints on
// the given Gin engine. /ping exists for the hosting platform's
// uptime pinger; /sales is a read-only admin view.
func InitRoutes(e *gin.Engine, storage sales.Storage, logger *zap.Logger) {
	handler := NewLedgerHandler(storage, logger)

	e.GET("/sales", handler.handleGetSales)
	e.GET("/healthz", handler.handleHealthz)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
