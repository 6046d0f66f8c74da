package rpc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	internalcommon "github.com/goran-ethernal/ReorgGuard/internal/common"
	"github.com/goran-ethernal/ReorgGuard/internal/logger"
	"github.com/goran-ethernal/ReorgGuard/pkg/config"
	pkgrpc "github.com/goran-ethernal/ReorgGuard/pkg/rpc"
	"github.com/stretchr/testify/require"
)

type fakeBlock struct {
	Number hexutil.Uint64 `json:"number"`
	Hash   common.Hash    `json:"hash"`
}

// fakeEthService serves the eth namespace subset the client uses.
type fakeEthService struct {
	mu        sync.Mutex
	head      uint64
	hashes    map[uint64]common.Hash
	transient int
	err       error
	delay     time.Duration
	calls     int
}

func (s *fakeEthService) BlockNumber(ctx context.Context) (hexutil.Uint64, error) {
	if err := s.begin(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return hexutil.Uint64(s.head), nil
}

func (s *fakeEthService) GetBlockByNumber(ctx context.Context, number hexutil.Uint64, _ bool) (*fakeBlock, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	hash, ok := s.hashes[uint64(number)]
	if !ok {
		return nil, nil
	}
	return &fakeBlock{Number: number, Hash: hash}, nil
}

func (s *fakeEthService) begin(ctx context.Context) error {
	s.mu.Lock()
	s.calls++
	delay := s.delay
	if s.transient > 0 {
		s.transient--
		s.mu.Unlock()
		return errors.New("503 service unavailable")
	}
	err := s.err
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return err
}

func (s *fakeEthService) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestClient(t *testing.T, svc *fakeEthService, cfg config.RPCConfig) *Client {
	t.Helper()

	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", svc))
	t.Cleanup(server.Stop)

	client := NewClientWithRPC(rpc.DialInProc(server), cfg, logger.NewNopLogger())
	t.Cleanup(client.Close)

	return client
}

func testRetryConfig() *config.RetryConfig {
	return &config.RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    internalcommon.NewDuration(time.Millisecond),
		MaxBackoff:        internalcommon.NewDuration(5 * time.Millisecond),
		BackoffMultiplier: 2.0,
	}
}

func TestClientImplementsInterface(t *testing.T) {
	var _ pkgrpc.ChainObserver = (*Client)(nil)
}

func TestClient_CurrentHeight(t *testing.T) {
	svc := &fakeEthService{head: 120}
	client := newTestClient(t, svc, config.RPCConfig{})

	height, err := client.CurrentHeight(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(120), height)
}

func TestClient_HashAt(t *testing.T) {
	hash := common.HexToHash("0xaa01")
	svc := &fakeEthService{head: 120, hashes: map[uint64]common.Hash{100: hash}}
	client := newTestClient(t, svc, config.RPCConfig{})

	got, err := client.HashAt(context.Background(), 100)
	require.NoError(t, err)
	require.Equal(t, hash, got)
}

func TestClient_HashAt_NotFound(t *testing.T) {
	svc := &fakeEthService{head: 120, hashes: map[uint64]common.Hash{}}
	client := newTestClient(t, svc, config.RPCConfig{Retry: testRetryConfig()})

	_, err := client.HashAt(context.Background(), 500)
	require.ErrorIs(t, err, pkgrpc.ErrBlockNotFound)
	require.Contains(t, err.Error(), "block 500")
	require.Equal(t, 1, svc.callCount(), "missing block must not be retried")
}

func TestClient_RetriesTransientErrors(t *testing.T) {
	svc := &fakeEthService{head: 42, transient: 2}
	client := newTestClient(t, svc, config.RPCConfig{Retry: testRetryConfig()})

	height, err := client.CurrentHeight(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(42), height)
	require.Equal(t, 3, svc.callCount())
}

func TestClient_RetriesExhausted(t *testing.T) {
	svc := &fakeEthService{head: 42, transient: 10}
	client := newTestClient(t, svc, config.RPCConfig{Retry: testRetryConfig()})

	_, err := client.CurrentHeight(context.Background())
	require.ErrorContains(t, err, "all 3 attempts failed")
	require.Equal(t, 3, svc.callCount())
}

func TestClient_NonRetryableError(t *testing.T) {
	svc := &fakeEthService{err: errors.New("method handler crashed")}
	client := newTestClient(t, svc, config.RPCConfig{Retry: testRetryConfig()})

	_, err := client.HashAt(context.Background(), 1)
	require.ErrorContains(t, err, "method handler crashed")
	require.NotErrorIs(t, err, pkgrpc.ErrBlockNotFound)
	require.Equal(t, 1, svc.callCount())
}

func TestClient_RequestTimeout(t *testing.T) {
	svc := &fakeEthService{head: 1, delay: time.Second}
	client := newTestClient(t, svc, config.RPCConfig{
		RequestTimeout: internalcommon.NewDuration(20 * time.Millisecond),
	})

	_, err := client.CurrentHeight(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestToBlockNumArg(t *testing.T) {
	tests := []struct {
		blockNum uint64
		want     string
	}{
		{blockNum: 0, want: "0x0"},
		{blockNum: 1, want: "0x1"},
		{blockNum: 100, want: "0x64"},
		{blockNum: 18000000, want: "0x112a880"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, toBlockNumArg(tt.blockNum))
		})
	}
}
