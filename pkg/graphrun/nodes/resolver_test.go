package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmalkin/graphrun/pkg/graphrun"
)

func TestDefaultResolverKnowsBuiltins(t *testing.T) {
	r := DefaultResolver()

	assert.Equal(t, []string{
		NameExtractFunctions,
		NameCheckComplexity,
		NameDetectIssues,
		NameSuggestImprovements,
	}, r.Names())

	for _, name := range r.Names() {
		fn, ok := r.Resolve(name)
		require.True(t, ok, name)
		require.NotNil(t, fn, name)
	}
}

func TestResolverUnknownName(t *testing.T) {
	r := DefaultResolver()

	_, ok := r.Resolve("run_arbitrary_code")
	assert.False(t, ok)
}

func TestResolverRegisterCustom(t *testing.T) {
	r := NewResolver()
	r.Register("noop", func(ctx context.Context, s graphrun.State) (graphrun.Directive, error) {
		return graphrun.Directive{}, nil
	})

	fn, ok := r.Resolve("noop")
	require.True(t, ok)

	d, err := fn(context.Background(), graphrun.State{})
	require.NoError(t, err)
	assert.Equal(t, graphrun.Directive{}, d)
}
