// Package catalog looks up LCSC parts on the EasyEDA API: the part name, its
// symbol and footprint documents, and the 3D model attached to the footprint.
// The result names exported meshes.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kataras/meshgrab/pkg/objexport"
)

// DefaultBaseURL is the EasyEDA API host.
const DefaultBaseURL = "https://easyeda.com"

// Client is an EasyEDA API client. Requests that fail with 429 or a 5xx
// status, or that fail at the transport level, are retried up to three times
// with a growing delay.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	maxRetries int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryDelay sets the base delay between attempts. Attempt n waits n*d.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// NewClient creates a client for baseURL. An empty baseURL means
// DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		retryDelay: 2 * time.Second,
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSVGs fetches the preview listing of a product.
func (c *Client) GetSVGs(ctx context.Context, code string) (*SVGsResponse, error) {
	var resp SVGsResponse
	if err := c.getJSON(ctx, "/api/products/"+url.PathEscape(code)+"/svgs", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("svgs API returned success=false for %s", code)
	}
	return &resp, nil
}

// GetComponent fetches the editor document of a symbol or footprint.
func (c *Client) GetComponent(ctx context.Context, uuid string) (*DataStr, error) {
	raw, err := c.GetDocument(ctx, uuid)
	if err != nil {
		return nil, err
	}
	var ds DataStr
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataStr of %s: %w", uuid, err)
	}
	return &ds, nil
}

// GetDocument fetches the editor document of a symbol or footprint exactly as
// the API returns it. It fails with ErrNoDocument when the component carries
// no dataStr.
func (c *Client) GetDocument(ctx context.Context, uuid string) (json.RawMessage, error) {
	var resp DocumentResponse
	if err := c.getJSON(ctx, "/api/components/"+url.PathEscape(uuid), &resp); err != nil {
		return nil, err
	}
	raw := bytes.TrimSpace(resp.Result.DataStr)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("component %s: %w", uuid, ErrNoDocument)
	}
	return resp.Result.DataStr, nil
}

// LookupPart resolves everything known about code. A footprint without a 3D
// model is not an error; Part.Model is nil then.
func (c *Client) LookupPart(ctx context.Context, code string) (*Part, error) {
	svgs, err := c.GetSVGs(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("fetch svgs: %w", err)
	}

	part := &Part{Code: code, Name: code}
	if sym, ok := svgs.Find(DocTypeSymbol); ok {
		part.SymbolUUID = sym.ComponentUUID
		if name := ModelNameFromSVG(sym.SVG); name != "" {
			part.Name = name
		}
	}

	fp, ok := svgs.Find(DocTypeFootprint)
	if !ok || fp.ComponentUUID == "" {
		return part, nil
	}
	part.FootprintUUID = fp.ComponentUUID

	ds, err := c.GetComponent(ctx, fp.ComponentUUID)
	if err != nil {
		return nil, fmt.Errorf("fetch footprint: %w", err)
	}
	if m, ok := Find3DModel(ds); ok {
		part.Model = m
		part.ViewerURL = ViewerURL(*m)
	}
	return part, nil
}

// Metadata returns the export metadata for code.
func (c *Client) Metadata(ctx context.Context, code string) (*objexport.Metadata, error) {
	part, err := c.LookupPart(ctx, code)
	if err != nil {
		return nil, err
	}
	return part.Metadata(), nil
}

// Metadata converts p to export metadata.
func (p *Part) Metadata() *objexport.Metadata {
	meta := &objexport.Metadata{CatalogID: p.Code, Name: p.Name}
	if p.Model != nil {
		meta.Model = p.Model.Title
	}
	return meta
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	u := c.baseURL + path

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, retry, err := c.get(ctx, u, attempt)
		if err == nil {
			if err := json.Unmarshal(body, v); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			return nil
		}

		lastErr = err
		if !retry || attempt == c.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * c.retryDelay):
		}
	}
	return lastErr
}

// get performs one attempt and reports whether a failure is worth retrying.
func (c *Client) get(ctx context.Context, u string, attempt int) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("attempt %d failed to execute request: %w", attempt, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("attempt %d failed to read response body: %w", attempt, err)
	}
	return body, false, nil
}
