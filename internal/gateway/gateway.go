// Package gateway implements the single chokepoint through which all remote
// reads and writes of site configuration pass. The remote store is a hosted
// single-tenant row: every call targets the fixed identity id=1 of one
// resource, authenticated by a static api key and bearer token. One network
// attempt per call is final; there is no retry, no backoff and no client
// timeout, so only the caller's context bounds a call.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/academia-crecer/academia-api/internal/observability"
)

var (
	// ErrGateway indicates the remote call failed or returned a non-success status.
	ErrGateway = errors.New("config gateway request failed")
	// ErrInvalidPayload indicates the remote row did not match the expected shape.
	ErrInvalidPayload = errors.New("remote config payload rejected by schema")
)

// Row is a single record returned by the remote store.
type Row map[string]interface{}

const rowSchema = `{
  "type": "object",
  "properties": {
    "id": {"type": "integer"},
    "hero_images": {"type": "array", "items": {"type": "string"}},
    "about_images": {"type": "array", "items": {"type": "string"}},
    "welcome_message": {"type": "string"},
    "logo_url": {"type": "string"},
    "instagram": {"type": "string"},
    "facebook": {"type": "string"},
    "tiktok": {"type": "string"},
    "wallet_number": {"type": "string"},
    "wallet_name": {"type": "string"},
    "bank_account": {"type": "string"},
    "bank_name": {"type": "string"},
    "intro_slides": {"type": "array", "items": {"type": "object"}}
  }
}`

// Config contains the static identity of the remote store.
type Config struct {
	BaseURL  string
	APIKey   string
	Token    string
	Resource string
}

// Client performs GET/POST/PATCH calls against the remote config resource.
type Client struct {
	cfg    Config
	http   *http.Client
	schema *jsonschema.Schema
	logger zerolog.Logger
}

// New constructs a gateway client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gateway base url must not be empty")
	}
	if cfg.Resource == "" {
		cfg.Resource = "site_config"
	}

	schema, err := jsonschema.CompileString("site_config.schema.json", rowSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile gateway schema: %w", err)
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{},
		schema: schema,
		logger: logger.With().Str("component", "config_gateway").Logger(),
	}, nil
}

// Fetch reads the remote configuration row. A nil row with nil error means
// the resource holds no row yet; callers fall back to defaults.
func (c *Client) Fetch(ctx context.Context) (Row, error) {
	return c.Call(ctx, http.MethodGet, c.cfg.Resource, nil)
}

// Push writes the configuration row, asking for the stored representation back.
func (c *Client) Push(ctx context.Context, payload interface{}) (Row, error) {
	return c.Call(ctx, http.MethodPatch, c.cfg.Resource, payload)
}

// Call performs a single attempt against the named resource, always filtered
// to the fixed row id=1. The response may be an array (first element used)
// or a single object.
func (c *Client) Call(ctx context.Context, method, resource string, body interface{}) (Row, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPatch:
	default:
		return nil, fmt.Errorf("%w: unsupported method %s", ErrGateway, method)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %v", ErrGateway, err)
		}
		reader = bytes.NewReader(encoded)
	}

	url := fmt.Sprintf("%s/%s?id=eq.1", c.cfg.BaseURL, resource)
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrGateway, err)
	}

	req.Header.Set("apikey", c.cfg.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		observability.GatewayRequests().WithLabelValues(method, "transport_error").Inc()
		c.logger.Warn().Err(err).Str("method", method).Str("resource", resource).Msg("gateway call failed")
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.GatewayRequests().WithLabelValues(method, "http_error").Inc()
		c.logger.Warn().Int("status", resp.StatusCode).Str("method", method).Str("resource", resource).Msg("gateway returned non-success status")
		return nil, fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.GatewayRequests().WithLabelValues(method, "transport_error").Inc()
		return nil, fmt.Errorf("%w: read body: %v", ErrGateway, err)
	}

	row, err := firstRow(raw)
	if err != nil {
		observability.GatewayRequests().WithLabelValues(method, "decode_error").Inc()
		return nil, err
	}

	if row != nil {
		if err := c.schema.Validate(map[string]interface{}(row)); err != nil {
			observability.GatewayRequests().WithLabelValues(method, "schema_error").Inc()
			c.logger.Warn().Err(err).Str("resource", resource).Msg("remote row failed schema validation")
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
	}

	observability.GatewayRequests().WithLabelValues(method, "ok").Inc()

	return row, nil
}

func firstRow(raw []byte) (Row, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var rows []Row
	if err := json.Unmarshal(raw, &rows); err == nil {
		if len(rows) == 0 {
			return nil, nil
		}
		return rows[0], nil
	}

	var row Row
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGateway, err)
	}

	return row, nil
}
