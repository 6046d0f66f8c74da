package reorg

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ConnectionError is returned when the node is unreachable or its current
// height could not be obtained. No local state is touched.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("node connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(err error) error {
	return &ConnectionError{Err: err}
}

// NodeInconsistentError is returned when the node could not answer for a height
// it should know about given its own reported head.
type NodeInconsistentError struct {
	Height uint64
	Err    error
}

func (e *NodeInconsistentError) Error() string {
	return fmt.Sprintf("node failed to return block %d: %v", e.Height, e.Err)
}

func (e *NodeInconsistentError) Unwrap() error {
	return e.Err
}

// NewNodeInconsistentError creates a new NodeInconsistentError.
func NewNodeInconsistentError(height uint64, err error) error {
	return &NodeInconsistentError{Height: height, Err: err}
}

// InsufficientHistoryError is returned when a reorg is confirmed but no stored
// record matches the node's chain, so no rollback point can be determined.
// Automatic recovery is not possible; the fields help manual intervention.
type InsufficientHistoryError struct {
	Watermark        uint64
	CurrentHeight    uint64
	NewestStoredHash common.Hash
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("not enough stored blocks to roll back reorg: watermark=%d current_height=%d newest_stored_hash=%s",
		e.Watermark, e.CurrentHeight, e.NewestStoredHash.Hex())
}

// NewInsufficientHistoryError creates a new InsufficientHistoryError.
func NewInsufficientHistoryError(watermark, currentHeight uint64, newestStoredHash common.Hash) error {
	return &InsufficientHistoryError{
		Watermark:        watermark,
		CurrentHeight:    currentHeight,
		NewestStoredHash: newestStoredHash,
	}
}

// IsConnectionError reports whether err is or wraps a *ConnectionError.
func IsConnectionError(err error) bool {
	var target *ConnectionError
	return errors.As(err, &target)
}

// IsNodeInconsistent reports whether err is or wraps a *NodeInconsistentError.
func IsNodeInconsistent(err error) bool {
	var target *NodeInconsistentError
	return errors.As(err, &target)
}

// IsInsufficientHistory reports whether err is or wraps an *InsufficientHistoryError.
func IsInsufficientHistory(err error) bool {
	var target *InsufficientHistoryError
	return errors.As(err, &target)
}

// Kind returns a short label for the error taxonomy, used in logs, metrics and the status API.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsConnectionError(err):
		return "connection"
	case IsNodeInconsistent(err):
		return "node_inconsistent"
	case IsInsufficientHistory(err):
		return "insufficient_history"
	default:
		return "internal"
	}
}
