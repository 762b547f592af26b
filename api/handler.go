package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sales_bot/internal/sales"
)

// ledgerHandler exposes a read-only snapshot of the ledger over HTTP.
// Writes only ever happen through the chat dispatcher.
type ledgerHandler struct {
	storage sales.Storage
	logger  *zap.Logger
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(storage sales.Storage, logger *zap.Logger) *ledgerHandler {
	return &ledgerHandler{
		storage: storage,
		logger:  logger,
	}
}

// SnapshotMetadata summarizes a snapshot response.
type SnapshotMetadata struct {
	Quantity    int    `json:"quantity"`
	TotalAmount string `json:"total_amount"`
}

// handleGetSales handles GET /sales: every record plus totals.
func (h *ledgerHandler) handleGetSales(ctx *gin.Context) {
	records, err := h.storage.ListAll(ctx.Request.Context())
	if err != nil {
		h.logger.Error("failed to list records", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read ledger"})
		return
	}

	metadata := SnapshotMetadata{
		Quantity:    len(records),
		TotalAmount: sales.Total(records).String(),
	}
	ctx.JSON(http.StatusOK, gin.H{"results": records, "metadata": metadata})
}

// handleHealthz handles GET /healthz: verifies the storage answers.
func (h *ledgerHandler) handleHealthz(ctx *gin.Context) {
	if _, err := h.storage.ListAll(ctx.Request.Context()); err != nil {
		h.logger.Error("storage unhealthy", zap.Error(err))
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "storage unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
