// Package fetch is a small HTTP client for JSON APIs and HTML pages.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/html"

	"cookbook/internal/cache"
)

const maxBody = 4 << 20

var ErrNoTitle = errors.New("page has no title")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Client issues traced GET requests. Response bodies may be cached by URL.
type Client struct {
	http  *http.Client
	cache *cache.Cache
}

type Option func(*Client)

// WithCache keeps successful bodies in c until they expire.
func WithCache(c *cache.Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithHTTPClient replaces the underlying client; its transport is wrapped for tracing.
func WithHTTPClient(hc *http.Client) Option {
	return func(cl *Client) { cl.http = hc }
}

func New(opts ...Option) *Client {
	c := &Client{http: &http.Client{Timeout: 15 * time.Second}}
	for _, o := range opts {
		o(c)
	}
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc := *c.http
	hc.Transport = otelhttp.NewTransport(base)
	c.http = &hc
	return c
}

// GetJSON decodes the JSON body at url into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// Title returns the trimmed text of the first <title> element at url.
func (c *Client) Title(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url, "text/html")
	if err != nil {
		return "", err
	}
	return ParseTitle(bytes.NewReader(body))
}

// ParseTitle extracts the first <title> text from an HTML document.
func ParseTitle(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	n := findElement(doc, "title")
	if n == nil {
		return "", ErrNoTitle
	}
	var sb strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			sb.WriteString(ch.Data)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if found := findElement(ch, tag); found != nil {
			return found
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	if c.cache != nil {
		if v, ok := c.cache.Get(url); ok {
			return v.([]byte), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", "cookbook/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if c.cache != nil {
		c.cache.Set(url, body, cache.DefaultTTL)
	}
	return body, nil
}
