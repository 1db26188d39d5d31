package dispatch

import (
	"context"
	"testing"

	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyKey = "0123456789abcdef0123456789abcdef"

type scriptedDispatcher struct {
	calls   []creds.Set
	results []Result
}

func (d *scriptedDispatcher) Dispatch(_ context.Context, _ Command, set creds.Set) (Result, error) {
	d.calls = append(d.calls, set)
	res := d.results[0]
	if len(d.results) > 1 {
		d.results = d.results[1:]
	}
	return res, nil
}

func TestFallbackRetriesOnceOnAuthFailure(t *testing.T) {
	inner := &scriptedDispatcher{results: []Result{
		{Classification: AuthFailure, RawOutput: "unauthenticated"},
		{Classification: Success, RawOutput: "{}"},
	}}
	set := creds.Set{Username: "alice", LegacyKey: legacyKey, ScopedToken: "KGAT_tok"}

	res, err := FallbackPolicy{Dispatcher: inner}.Dispatch(context.Background(), Command{Op: "get_model"}, set)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Classification)
	assert.True(t, res.Retried)
	require.Len(t, inner.calls, 2)
	assert.Equal(t, creds.KindScoped, inner.calls[0].Kind())
	assert.Equal(t, creds.KindLegacy, inner.calls[1].Kind())
}

func TestFallbackNoAlternateNoRetry(t *testing.T) {
	inner := &scriptedDispatcher{results: []Result{
		{Classification: AuthFailure, RawOutput: "unauthenticated"},
	}}
	set := creds.Set{Username: "alice", LegacyKey: legacyKey}

	res, err := FallbackPolicy{Dispatcher: inner}.Dispatch(context.Background(), Command{Op: "search_notebooks"}, set)
	require.NoError(t, err)
	assert.Equal(t, AuthFailure, res.Classification)
	assert.False(t, res.Retried)
	assert.Len(t, inner.calls, 1)
}

func TestFallbackAtMostOneRetry(t *testing.T) {
	inner := &scriptedDispatcher{results: []Result{
		{Classification: AuthFailure},
		{Classification: AuthFailure},
	}}
	set := creds.Set{LegacyKey: legacyKey, ScopedToken: "KGAT_tok"}

	res, err := FallbackPolicy{Dispatcher: inner}.Dispatch(context.Background(), Command{}, set)
	require.NoError(t, err)
	assert.Equal(t, AuthFailure, res.Classification)
	assert.True(t, res.Retried)
	assert.Len(t, inner.calls, 2, "second AuthFailure must not trigger further retries")
}

func TestFallbackSuccessPassesThrough(t *testing.T) {
	inner := &scriptedDispatcher{results: []Result{{Classification: Success}}}
	set := creds.Set{LegacyKey: legacyKey, ScopedToken: "KGAT_tok"}

	res, err := FallbackPolicy{Dispatcher: inner}.Dispatch(context.Background(), Command{}, set)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Classification)
	assert.False(t, res.Retried)
	assert.Len(t, inner.calls, 1)
}

func TestFallbackIdenticalAlternatesNoRetry(t *testing.T) {
	inner := &scriptedDispatcher{results: []Result{{Classification: AuthFailure}}}
	set := creds.Set{LegacyKey: "same", ScopedToken: "same"}

	_, err := FallbackPolicy{Dispatcher: inner}.Dispatch(context.Background(), Command{}, set)
	require.NoError(t, err)
	assert.Len(t, inner.calls, 1)
}
