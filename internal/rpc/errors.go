package rpc

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/rpc"
	pkgrpc "github.com/goran-ethernal/ReorgGuard/pkg/rpc"
)

// errorType classifies an RPC failure for the rpc errors metric.
func errorType(err error) string {
	var rpcErr rpc.Error

	switch {
	case err == nil:
		return ""
	case errors.Is(err, pkgrpc.ErrBlockNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &rpcErr):
		return "rpc_error"
	case retryableError(err):
		return "transient"
	default:
		return "other"
	}
}
