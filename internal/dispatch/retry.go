// Where: internal/dispatch/retry.go
// What: Single-fallback retry policy between the two credential schemes.
// Why: The platform's two schemes have non-overlapping endpoint coverage; one
//      retry with the other scheme is the only retry that can ever help.
package dispatch

import (
	"context"

	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/rs/zerolog/log"
)

// FallbackPolicy wraps a Dispatcher and, on AuthFailure, re-dispatches
// exactly once with the alternate credential scheme when one exists. It is
// injected rather than hard-wired so it can be removed without touching
// dispatch logic if the platform ever converges on a single scheme.
type FallbackPolicy struct {
	Dispatcher Dispatcher
}

// Dispatch runs the primary call and at most one fallback. Any outcome other
// than AuthFailure is terminal, as is AuthFailure without a distinct
// alternate credential.
func (p FallbackPolicy) Dispatch(ctx context.Context, cmd Command, set creds.Set) (Result, error) {
	res, err := p.Dispatcher.Dispatch(ctx, cmd, set)
	if err != nil {
		return res, err
	}
	if res.Classification != AuthFailure {
		return res, nil
	}

	alt, ok := set.Alternate()
	if !ok {
		return res, nil
	}

	log.Debug().Str("op", cmd.Op).Str("alternate", string(alt.Kind())).
		Msg("auth failure, retrying once with alternate credential scheme")

	retried, err := p.Dispatcher.Dispatch(ctx, cmd, alt)
	retried.Retried = true
	return retried, err
}
