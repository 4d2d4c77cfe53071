package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/iaejotape/overflow-client/internal/session"
)

const (
	authorizationHeader = "Authorization"
	requestIDHeader     = "X-Request-ID"

	defaultTimeout = 30 * time.Second
)

// Client is the authenticated request gateway: it attaches the bearer token
// when one is stored and turns failed calls into classified APIErrors. It
// never navigates or renders anything.
type Client struct {
	baseURL string
	httpc   *http.Client
	session *session.Manager
	log     *zap.Logger
}

// NewClient constructs the gateway. If httpc is nil a client with the default
// timeout is used; if log is nil logging is disabled.
func NewClient(baseURL string, httpc *http.Client, sess *session.Manager, log *zap.Logger) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
		session: sess,
		log:     log,
	}
}

// do sends one JSON request and decodes the response into out (unless nil).
// With requireAuth the stored access token rides along as a bearer credential;
// an absent token does not block the call, authorization stays server-side.
func (c *Client) do(ctx context.Context, method, path string, payload, out any, requireAuth bool) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	var reqID string
	if id, err := uuid.NewV4(); err == nil {
		reqID = id.String()
		req.Header.Set(requestIDHeader, reqID)
	}

	if requireAuth {
		if tok, ok := c.session.AccessToken(); ok {
			req.Header.Set(authorizationHeader, "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warn("http",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return Classify(0, nil)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	// metadata only, never payloads
	c.log.Info("http",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
		zap.String("request_id", reqID),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	}
	return Classify(resp.StatusCode, raw)
}
