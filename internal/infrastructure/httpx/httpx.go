package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/net/html/charset"
)

const maxBodyBytes = 8 << 20

var utf8BOM = []byte("\xef\xbb\xbf")

var ErrDecode = errors.New("decode response")

// StatusError is returned for any non-2xx response.
type StatusError struct{ Code int }

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

// Client issues GET requests with a fixed per-request timeout. Retries bounds
// how many times a network error or 5xx is retried; zero means a single attempt.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Retries   uint64
}

func New(timeout time.Duration, userAgent string, retries int) *Client {
	if retries < 0 {
		retries = 0
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		UserAgent: userAgent,
		Retries:   uint64(retries),
	}
}

type response struct {
	body        []byte
	contentType string
}

// Get returns the response body of a successful GET.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	res, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	return res.body, nil
}

// GetHTML returns the body of a successful GET converted to UTF-8.
func (c *Client) GetHTML(ctx context.Context, url string) ([]byte, error) {
	res, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	return decodeHTML(res.body, res.contentType)
}

// decodeHTML honours a BOM or a Content-Type charset. Without either, valid
// UTF-8 is kept as is and anything else goes through the <meta> prescan with
// the windows-1252 fallback.
func decodeHTML(body []byte, contentType string) ([]byte, error) {
	enc, _, certain := charset.DetermineEncoding(body, contentType)
	if !certain && utf8.Valid(body) {
		return body, nil
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, url string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second

	op := func() (response, error) {
		resp, err := c.HTTP.Do(req)
		if err != nil {
			return response{}, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return response{}, &StatusError{Code: resp.StatusCode}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return response{}, backoff.Permanent(&StatusError{Code: resp.StatusCode})
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return response{}, err
		}
		return response{body: body, contentType: resp.Header.Get("Content-Type")}, nil
	}
	b := backoff.WithContext(backoff.WithMaxRetries(exp, c.Retries), ctx)
	return backoff.RetryWithData(op, b)
}

// GetJSON decodes the body of a successful GET into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	body = bytes.TrimPrefix(body, utf8BOM)
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
