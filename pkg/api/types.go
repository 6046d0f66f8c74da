package api

import (
	"time"

	"github.com/goran-ethernal/ReorgGuard/pkg/reorg"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp"`
	// LastCheck is when the watcher last finished a check, omitted before the first one
	LastCheck *time.Time `json:"last_check,omitempty"`
	// ConsecutiveFailures counts failed checks since the last successful one
	ConsecutiveFailures int `json:"consecutive_failures"`
}

// StatusResponse is the latest reorg check snapshot.
type StatusResponse struct {
	LastCheck           *time.Time     `json:"last_check,omitempty"`
	Watermark           uint64         `json:"watermark" example:"100"`
	Verdict             *reorg.Verdict `json:"verdict,omitempty"`
	ErrorKind           string         `json:"error_kind,omitempty" example:"connection"`
	Error               string         `json:"error,omitempty"`
	ConsecutiveFailures int            `json:"consecutive_failures"`
	Checks              uint64         `json:"checks"`
}

// BlockInfo is a stored block record.
type BlockInfo struct {
	Height uint64 `json:"height" example:"100"`
	Hash   string `json:"hash" example:"0x3f0a4c9b..."`
}

// HistoryResponse lists stored block records, newest first.
type HistoryResponse struct {
	Blocks []BlockInfo `json:"blocks"`
	Count  int         `json:"count"`
	Limit  int         `json:"limit"`
}
