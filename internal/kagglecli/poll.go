// Where: internal/kagglecli/poll.go
// What: Kernel execution polling.
// Why: Pipeline work needs to wait for remote notebook runs to finish.
package kagglecli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
	"github.com/rs/zerolog/log"
)

// ErrKernelFailed is returned when the remote run ends in an error or
// cancelled state.
var ErrKernelFailed = errors.New("kernel run failed")

var errStillRunning = errors.New("kernel still running")

// WaitForKernel polls the execution status of a kernel at a constant interval
// until it completes, fails, or the timeout elapses. Status text is matched
// on the markers the external CLI prints: "complete", "error", "cancel".
func WaitForKernel(ctx context.Context, ops Ops, ref string, interval, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	check := func() error {
		res, err := ops.KernelsStatus(ctx, ref)
		if err != nil {
			return backoff.Permanent(err)
		}
		status := strings.ToLower(res.RawOutput)
		log.Debug().Str("ref", ref).Str("status", strings.TrimSpace(res.RawOutput)).Msg("kernel status")

		// Status strings are a closed vocabulary from the external CLI, so a
		// plain substring match is safe here, unlike free response bodies.
		switch {
		case res.TimedOut:
			// Deadline expiry is a did-not-complete, not a run failure.
			return backoff.Permanent(context.DeadlineExceeded)
		case strings.Contains(status, "complete"):
			return nil
		case strings.Contains(status, "error"), strings.Contains(status, "cancel"):
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrKernelFailed, strings.TrimSpace(res.RawOutput)))
		case res.Classification == dispatch.OtherError:
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrKernelFailed, strings.TrimSpace(res.RawOutput)))
		default:
			return errStillRunning
		}
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	if err := backoff.Retry(check, policy); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, errStillRunning) {
			return fmt.Errorf("kernel %s did not complete within %s", ref, timeout)
		}
		return err
	}
	return nil
}
