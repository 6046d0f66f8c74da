package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goran-ethernal/ReorgGuard/internal/logger"
	"github.com/goran-ethernal/ReorgGuard/internal/watcher"
	"github.com/goran-ethernal/ReorgGuard/pkg/store"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

// StatusProvider exposes the latest reorg check snapshot.
type StatusProvider interface {
	Status() watcher.Status
}

// HistoryReader reads the newest stored block records.
type HistoryReader interface {
	GetLatest(ctx context.Context, limit int) ([]*store.BlockRecord, error)
}

// Handler handles HTTP requests for the API.
type Handler struct {
	status  StatusProvider
	history HistoryReader
	log     *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(status StatusProvider, history HistoryReader, log *logger.Logger) *Handler {
	return &Handler{
		status:  status,
		history: history,
		log:     log,
	}
}

// Health returns the health of the reorg watcher.
// @Summary Health check
// @Description Reports ok while the last reorg check succeeded (or none ran yet) and degraded after failed checks
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Watcher is healthy"
// @Failure 503 {object} HealthResponse "Last reorg checks failed"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.status.Status()

	response := HealthResponse{
		Status:              "ok",
		Timestamp:           time.Now().UTC(),
		LastCheck:           optionalTime(status.LastCheck),
		ConsecutiveFailures: status.ConsecutiveFailures,
	}

	code := http.StatusOK
	if status.ConsecutiveFailures > 0 {
		response.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, response)
}

// GetStatus returns the latest reorg check snapshot.
// @Summary Latest reorg check
// @Description Get the watermark, verdict and error of the most recent reorg check
// @Tags Status
// @Produce json
// @Success 200 {object} StatusResponse "Latest check snapshot"
// @Router /status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := h.status.Status()

	respondJSON(w, http.StatusOK, StatusResponse{
		LastCheck:           optionalTime(status.LastCheck),
		Watermark:           status.Watermark,
		Verdict:             status.Verdict,
		ErrorKind:           status.ErrorKind,
		Error:               status.Error,
		ConsecutiveFailures: status.ConsecutiveFailures,
		Checks:              status.Checks,
	})
}

// GetHistory returns the newest stored block records.
// @Summary Stored block history
// @Description List stored block records the reorg check compares against, newest first
// @Tags History
// @Produce json
// @Param limit query int false "Maximum number of records to return" default(100)
// @Success 200 {object} HistoryResponse "Stored block records"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /history [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid query parameters: %v", err))
		return
	}

	records, err := h.history.GetLatest(r.Context(), limit)
	if err != nil {
		h.log.Errorf("Failed to read block history: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read block history")
		return
	}

	blocks := make([]BlockInfo, 0, len(records))
	for _, record := range records {
		blocks = append(blocks, BlockInfo{Height: record.Height, Hash: record.Hash.Hex()})
	}

	respondJSON(w, http.StatusOK, HistoryResponse{
		Blocks: blocks,
		Count:  len(blocks),
		Limit:  limit,
	})
}

func parseLimit(r *http.Request) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return defaultHistoryLimit, nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > maxHistoryLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d", maxHistoryLimit)
	}

	return limit, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	// Encode first so an encoding failure can still change the status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
