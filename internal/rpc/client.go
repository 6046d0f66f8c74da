package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/ReorgGuard/internal/logger"
	"github.com/goran-ethernal/ReorgGuard/pkg/config"
	pkgrpc "github.com/goran-ethernal/ReorgGuard/pkg/rpc"
)

// Compile-time check to ensure Client implements pkgrpc.ChainObserver interface.
var _ pkgrpc.ChainObserver = (*Client)(nil)

const (
	methodBlockNumber      = "eth_blockNumber"
	methodGetBlockByNumber = "eth_getBlockByNumber"
)

// blockHashResult is the part of an eth_getBlockByNumber response the client reads.
// The hash is taken as reported by the node and never recomputed from the header.
type blockHashResult struct {
	Hash common.Hash `json:"hash"`
}

// Client is the chain observer backed by an Ethereum JSON-RPC node.
// It implements the pkgrpc.ChainObserver interface.
type Client struct {
	eth *ethclient.Client
	rpc *rpc.Client
	cfg config.RPCConfig
	log *logger.Logger
}

// NewClient dials the node configured in cfg.
func NewClient(ctx context.Context, cfg config.RPCConfig, log *logger.Logger) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial node %s: %w", cfg.URL, err)
	}

	return NewClientWithRPC(rpcClient, cfg, log), nil
}

// NewClientWithRPC wraps an already connected go-ethereum RPC client.
func NewClientWithRPC(rpcClient *rpc.Client, cfg config.RPCConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		eth: ethclient.NewClient(rpcClient),
		rpc: rpcClient,
		cfg: cfg,
		log: log,
	}
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.eth.Close()
}

// CurrentHeight returns the height of the node's head block.
func (c *Client) CurrentHeight(ctx context.Context) (uint64, error) {
	var height uint64

	err := c.call(ctx, methodBlockNumber, func(ctx context.Context) error {
		var err error
		height, err = c.eth.BlockNumber(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}

	return height, nil
}

// HashAt returns the hash of the canonical block at height as reported by the node.
// It returns pkgrpc.ErrBlockNotFound if the node has no block at that height.
func (c *Client) HashAt(ctx context.Context, height uint64) (common.Hash, error) {
	var result *blockHashResult

	err := c.call(ctx, methodGetBlockByNumber, func(ctx context.Context) error {
		result = nil
		if err := c.rpc.CallContext(ctx, &result, methodGetBlockByNumber, toBlockNumArg(height), false); err != nil {
			return err
		}
		if result == nil {
			return pkgrpc.ErrBlockNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pkgrpc.ErrBlockNotFound) {
			return common.Hash{}, fmt.Errorf("block %d: %w", height, pkgrpc.ErrBlockNotFound)
		}
		return common.Hash{}, err
	}

	return result.Hash, nil
}

// call runs a single RPC method with the configured per-request timeout,
// retry policy and metrics.
func (c *Client) call(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	start := time.Now()
	RPCMethodInc(method)

	err := retryWithBackoff(ctx, c.cfg.Retry, method, func() error {
		reqCtx, cancel := c.requestContext(ctx)
		defer cancel()

		err := fn(reqCtx)
		if err != nil && retryableError(err) {
			c.log.Debugw("retryable RPC error", "method", method, "error", err)
		}
		return err
	})

	RPCMethodDuration(method, time.Since(start))
	if err != nil {
		RPCMethodError(method, errorType(err))
	}

	return err
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.RequestTimeout.Duration <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.cfg.RequestTimeout.Duration)
}

// toBlockNumArg converts a block number to hex format.
func toBlockNumArg(blockNum uint64) string {
	return fmt.Sprintf("0x%x", blockNum)
}
