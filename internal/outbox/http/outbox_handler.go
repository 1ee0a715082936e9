// Package http provides HTTP handlers for outbox operational endpoints:
// dead-letter inspection and manual requeue.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/songifi/lyricsflip-server-sub002/internal/httputil"
	"github.com/songifi/lyricsflip-server-sub002/internal/outbox/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/outbox/http/dto"
	"github.com/songifi/lyricsflip-server-sub002/internal/outbox/usecase"
)

// OutboxHandler handles HTTP requests for outbox operations.
type OutboxHandler struct {
	useCase usecase.UseCase
	logger  *slog.Logger
}

// NewOutboxHandler creates a new OutboxHandler.
func NewOutboxHandler(useCase usecase.UseCase, logger *slog.Logger) *OutboxHandler {
	return &OutboxHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// ListEntries handles GET /v1/outbox/entries/:status requests. It pages
// through entries of the given status, oldest first.
func (h *OutboxHandler) ListEntries(c *gin.Context) {
	status, err := domain.ParseStatus(c.Param("status"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	entries, err := h.useCase.ListEntries(c.Request.Context(), status, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewListOutboxEntriesResponse(entries, offset, limit))
}

// RequeueFailed handles POST /v1/outbox/entries/requeue requests. It moves
// every dead-letter entry back to pending and reports the count.
func (h *OutboxHandler) RequeueFailed(c *gin.Context) {
	count, err := h.useCase.RequeueFailed(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.RequeueFailedResponse{Requeued: count})
}
