// Package upstream holds the typed HTTP clients for the three collaborator
// APIs the bridge depends on: the identity API, the entitlements/plans API
// and the access-control API. Upstream error bodies are translated into the
// bridge error taxonomy at this boundary; raw upstream shapes never escape.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nimbusott/access-bridge/pkg/bridgesdk"
)

// client is the shared base for the typed upstream clients.
type client struct {
	baseURL string
	httpc   *http.Client
}

func newClient(baseURL string) client {
	return client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// getJSON performs a GET against the upstream and decodes the JSON response.
// authorization is forwarded verbatim when non-empty.
func (c *client) getJSON(ctx context.Context, path, authorization string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	return decode(resp, out)
}

// putJSON performs a PUT with a JSON body against a fully formed URL. The
// access-control endpoints take pre-signed URLs, so no base is prepended.
func (c *client) putJSON(ctx context.Context, fullURL string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, fullURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	return decode(resp, out)
}

// decode reads the response body, translating non-2xx responses into typed
// bridge errors and unmarshalling successful ones into out.
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Single point where upstream rejections become bridge taxonomy
		// errors. The upstream APIs speak the same error shape the bridge
		// itself does, so codes translate one for one.
		return bridgesdk.ParseErrorResponse(resp, bodyBytes)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
