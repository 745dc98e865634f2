package provider_test

import (
	"io"
	"net/http"
	"strings"
	"time"

	"bcvrates/internal/infrastructure/httpx"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func httpClient(resBody string, code int) *httpx.Client {
	return httpClientCT(resBody, code, "")
}

func httpClientCT(resBody string, code int, contentType string) *httpx.Client {
	header := make(http.Header)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &httpx.Client{
		HTTP: &http.Client{
			Timeout: 2 * time.Second,
			Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: code,
					Body:       io.NopCloser(strings.NewReader(resBody)),
					Header:     header,
					Request:    r,
				}, nil
			}),
		},
	}
}

func failingClient(err error) *httpx.Client {
	return &httpx.Client{
		HTTP: &http.Client{
			Timeout: 2 * time.Second,
			Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
				return nil, err
			}),
		},
	}
}
