// Where: internal/dispatch/dispatch.go
// What: Command descriptor, dispatch result, and dispatcher contract.
// Why: Give both external surfaces (CLI process, MCP endpoint) one call shape.
package dispatch

import (
	"context"
	"encoding/json"

	"github.com/nurfaiz0909/kagglectl/internal/creds"
)

// Classification is the outcome bucket of one external call.
type Classification string

const (
	Success     Classification = "success"
	AuthFailure Classification = "auth_failure"
	OtherError  Classification = "other_error"
)

// Command is a named operation plus its argument mapping. The CLI surface
// renders Args as flag-style arguments; the MCP surface sends them as
// JSON-RPC params.
type Command struct {
	Op   string
	Args map[string]any
}

// Result is the classified outcome of one dispatch. It is created per call
// and holds no durable state.
type Result struct {
	RawOutput      string
	Classification Classification
	// Payload is the structured value extracted from the response, when the
	// surface produces one.
	Payload json.RawMessage
	// TimedOut marks an OtherError caused by the wall-clock bound elapsing.
	TimedOut bool
	// Retried marks that this result came from the one permitted fallback
	// dispatch with the alternate credential scheme.
	Retried bool
}

// Dispatcher forwards a command to an external surface using the given
// credential set and classifies the response. Implementations must respect
// the context deadline and report an elapsed bound as OtherError with
// TimedOut set, never as a transport error.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd Command, set creds.Set) (Result, error)
}

// Func adapts a function to the Dispatcher interface.
type Func func(ctx context.Context, cmd Command, set creds.Set) (Result, error)

func (f Func) Dispatch(ctx context.Context, cmd Command, set creds.Set) (Result, error) {
	return f(ctx, cmd, set)
}
