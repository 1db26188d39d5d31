// Where: internal/mcp/client.go
// What: JSON-RPC client for the Kaggle MCP endpoint.
// Why: Reach the protocol surface with bearer auth and a streaming response
//      format, surfacing structured errors before any text scanning.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nurfaiz0909/kagglectl/internal/creds"
	"github.com/nurfaiz0909/kagglectl/internal/dispatch"
	"github.com/rs/zerolog/log"
)

const rawOutputLimit = 300

// request is a JSON-RPC-shaped MCP request body.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      int    `json:"id"`
}

// callParams wraps a tool invocation for the tools/call method.
type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// response is the parsed JSON-RPC response envelope.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// toolResult is the result payload of a tools/call response. Content is
// usually a list of typed blocks, but the authorize tool returns it as a
// plain string.
type toolResult struct {
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolInfo is one entry of a tools/list response.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Client calls the MCP endpoint. The zero value is not usable; construct
// with New.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	// Timeout bounds one call's wall clock when the caller's context carries
	// no deadline of its own.
	Timeout time.Duration
}

// New returns a Client for the given endpoint.
func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: http.DefaultClient,
		Timeout:    timeout,
	}
}

// Dispatch implements dispatch.Dispatcher: Op is the tool name, Args the tool
// arguments.
func (c *Client) Dispatch(ctx context.Context, cmd dispatch.Command, set creds.Set) (dispatch.Result, error) {
	return c.CallTool(ctx, cmd.Op, cmd.Args, set)
}

// CallTool invokes one MCP tool and classifies the outcome. Transport-level
// timeouts are folded into the result as OtherError with TimedOut set; other
// transport failures are returned as errors.
func (c *Client) CallTool(ctx context.Context, tool string, args map[string]any, set creds.Set) (dispatch.Result, error) {
	if args == nil {
		args = map[string]any{}
	}
	resp, raw, err := c.post(ctx, request{
		JSONRPC: "2.0",
		Method:  "tools/call",
		Params:  callParams{Name: tool, Arguments: args},
		ID:      1,
	}, set.BearerValue())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return dispatch.Result{
				RawOutput:      "timeout",
				Classification: dispatch.OtherError,
				TimedOut:       true,
			}, nil
		}
		return dispatch.Result{}, err
	}

	return classifyResponse(resp, raw), nil
}

// ListTools calls tools/list and returns the advertised tools.
func (c *Client) ListTools(ctx context.Context, set creds.Set) ([]ToolInfo, error) {
	resp, _, err := c.post(ctx, request{JSONRPC: "2.0", Method: "tools/list", ID: 1}, set.BearerValue())
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("tools/list: unparseable response")
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	var listing struct {
		Tools []ToolInfo `json:"tools"`
	}
	if err := json.Unmarshal(resp.Result, &listing); err != nil {
		return nil, fmt.Errorf("tools/list: decode result: %w", err)
	}
	return listing.Tools, nil
}

// Reachable probes the endpoint with a bare initialize request. Any HTTP
// status counts as reachable; only transport failure does not.
func (c *Client) Reachable(ctx context.Context) (int, error) {
	body, _ := json.Marshal(request{JSONRPC: "2.0", Method: "initialize", ID: 0})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func (c *Client) post(ctx context.Context, body request, bearer string) (*response, string, error) {
	if c.Timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.Timeout)
			defer cancel()
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)

	log.Debug().Str("method", body.Method).Str("endpoint", c.Endpoint).Msg("mcp request")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", context.DeadlineExceeded
		}
		return nil, "", err
	}
	defer resp.Body.Close()

	return parseStream(resp)
}

// parseStream decodes a streaming MCP response. SSE "data:" lines are tried
// first, then the body as raw JSON. An unparseable body yields a nil response
// with the truncated raw text.
func parseStream(resp *http.Response) (*response, string, error) {
	var buf bytes.Buffer
	scanner := bufio.NewScanner(io.TeeReader(resp.Body, &buf))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		var parsed response
		if err := json.Unmarshal([]byte(strings.TrimSpace(line[len("data:"):])), &parsed); err == nil {
			return &parsed, line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, "", err
	}

	raw := strings.TrimSpace(buf.String())
	var parsed response
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return &parsed, raw, nil
	}
	return nil, truncate(raw, rawOutputLimit), nil
}

// classifyResponse buckets a parsed MCP response. The JSON-RPC error member
// is a structured discriminant and wins over text scanning; tool output text
// still goes through the keyword classifier because tools report their own
// failures as content.
func classifyResponse(resp *response, raw string) dispatch.Result {
	if resp == nil {
		return dispatch.Result{RawOutput: raw, Classification: dispatch.OtherError}
	}

	if resp.Error != nil {
		cls := dispatch.OtherError
		if strings.Contains(strings.ToLower(resp.Error.Message), "unauthenticated") {
			cls = dispatch.AuthFailure
		}
		return dispatch.Result{RawOutput: truncate(resp.Error.Message, rawOutputLimit), Classification: cls}
	}

	var result toolResult
	if len(resp.Result) > 0 {
		_ = json.Unmarshal(resp.Result, &result)
	}

	// authorize returns content as a string
	var text string
	if err := json.Unmarshal(result.Content, &text); err == nil {
		return dispatch.Result{
			RawOutput:      truncate(text, rawOutputLimit),
			Classification: dispatch.Classify(text),
			Payload:        resp.Result,
		}
	}

	var blocks []contentBlock
	if err := json.Unmarshal(result.Content, &blocks); err == nil {
		for _, b := range blocks {
			if cls := dispatch.Classify(b.Text); cls != dispatch.Success {
				return dispatch.Result{
					RawOutput:      truncate(b.Text, rawOutputLimit),
					Classification: cls,
					Payload:        resp.Result,
				}
			}
		}
	}

	// A present-but-empty result is still a success.
	return dispatch.Result{
		RawOutput:      truncate(string(resp.Result), rawOutputLimit),
		Classification: dispatch.Success,
		Payload:        resp.Result,
	}
}

// ResultText extracts the textual payload of a tools/call result, joining
// multiple content blocks with newlines. Callers parse the returned text as
// the tool's own JSON document.
func ResultText(payload json.RawMessage) (string, error) {
	var result toolResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("decode tool result: %w", err)
	}

	var text string
	if err := json.Unmarshal(result.Content, &text); err == nil {
		return text, nil
	}

	var blocks []contentBlock
	if err := json.Unmarshal(result.Content, &blocks); err != nil {
		return "", fmt.Errorf("decode tool content: %w", err)
	}
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
