// Package apiclient is the console's typed client for the back-office REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"shop_backoffice/internal/utils"
)

const (
	defaultTimeout  = 30 * time.Second
	maxErrorBody    = 64 << 10
	serviceTokenSub = "console"
)

// Error is returned for every non-2xx answer.
type Error struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *Error) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Details, "; "))
	}
	return e.Message
}

// Client issues one request per call. No retries.
type Client struct {
	endpoints  map[string]string
	httpClient *http.Client
	secret     string
}

type Option func(*Client)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithServiceToken signs every request with a short-lived HS256 token.
func WithServiceToken(secret string) Option {
	return func(c *Client) { c.secret = secret }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		endpoints: Endpoints(strings.TrimRight(baseURL, "/")),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint URL with escaped path segments appended.
func (c *Client) URL(endpoint string, segments ...string) string {
	u := c.endpoints[endpoint]
	for _, s := range segments {
		u += "/" + url.PathEscape(s)
	}
	return u
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.secret != "" {
		token, err := utils.GenerateServiceToken(c.secret, serviceTokenSub)
		if err != nil {
			return fmt.Errorf("service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, rawURL, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	return c.do(ctx, http.MethodGet, rawURL, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, rawURL string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, method, rawURL, bytes.NewReader(data), "application/json", out)
}

func (c *Client) delete(ctx context.Context, rawURL string) error {
	return c.do(ctx, http.MethodDelete, rawURL, nil, "", nil)
}

func decodeError(res *http.Response) error {
	apiErr := &Error{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))

	var body struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		apiErr.Message = text
	}
	return apiErr
}

// multipartFile builds a single-file multipart body under field. The part
// carries contentType since the API picks the stored extension from it.
func multipartFile(field, filename, contentType string, r io.Reader) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
