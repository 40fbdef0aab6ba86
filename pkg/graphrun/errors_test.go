package graphrun

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NodeError{NodeID: "fetch", Err: cause}

	assert.Equal(t, "node fetch: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("run failed: %w", err)

	var nodeErr *NodeError
	require.ErrorAs(t, wrapped, &nodeErr)
	assert.Equal(t, "fetch", nodeErr.NodeID)
}

func TestPanicError(t *testing.T) {
	err := &PanicError{NodeID: "score", Value: "index out of range", Stack: "goroutine 1 ..."}

	assert.Equal(t, "node score panicked: index out of range", err.Error())
	assert.NotEmpty(t, err.Stack)
}
