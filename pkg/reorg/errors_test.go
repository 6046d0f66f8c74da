package reorg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name string
		err  error
		kind string
		is   func(error) bool
	}{
		{
			name: "connection",
			err:  NewConnectionError(cause),
			kind: "connection",
			is:   IsConnectionError,
		},
		{
			name: "node inconsistent",
			err:  NewNodeInconsistentError(99, cause),
			kind: "node_inconsistent",
			is:   IsNodeInconsistent,
		},
		{
			name: "insufficient history",
			err:  NewInsufficientHistoryError(100, 120, common.HexToHash("0x01")),
			kind: "insufficient_history",
			is:   IsInsufficientHistory,
		},
		{
			name: "wrapped connection",
			err:  fmt.Errorf("check failed: %w", NewConnectionError(cause)),
			kind: "connection",
			is:   IsConnectionError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, tt.is(tt.err))
			require.Equal(t, tt.kind, Kind(tt.err))
		})
	}

	require.Equal(t, "", Kind(nil))
	require.Equal(t, "internal", Kind(cause))
}

func TestErrorsUnwrapCause(t *testing.T) {
	cause := errors.New("timeout")

	require.ErrorIs(t, NewConnectionError(cause), cause)
	require.ErrorIs(t, NewNodeInconsistentError(5, cause), cause)

	var inconsistent *NodeInconsistentError
	require.ErrorAs(t, NewNodeInconsistentError(5, cause), &inconsistent)
	require.Equal(t, uint64(5), inconsistent.Height)
}

func TestInsufficientHistoryError_Message(t *testing.T) {
	hash := common.HexToHash("0xabc")
	err := NewInsufficientHistoryError(100, 120, hash)

	require.Contains(t, err.Error(), "watermark=100")
	require.Contains(t, err.Error(), "current_height=120")
	require.Contains(t, err.Error(), hash.Hex())

	var target *InsufficientHistoryError
	require.ErrorAs(t, err, &target)
	require.Equal(t, hash, target.NewestStoredHash)
}

func TestVerdict(t *testing.T) {
	require.False(t, NoReorg().Reorg)
	require.Equal(t, "no reorg", NoReorg().String())

	v := ReorgTo(99)
	require.True(t, v.Reorg)
	require.Equal(t, uint64(99), v.RollbackTo)
	require.Equal(t, "reorg, rollback to block 99", v.String())
}
