package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/imroc/req"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// apiClient calls the escrow ledger HTTP API.
type apiClient struct {
	baseURL    string
	token      string
	r          *req.Req
	httpClient *http.Client
}

func newAPIClient(opts *options) *apiClient {
	return &apiClient{
		baseURL:    strings.TrimSuffix(opts.baseURL, "/"),
		token:      opts.token,
		r:          req.New(),
		httpClient: &http.Client{Timeout: opts.timeout},
	}
}

func (c *apiClient) headers() req.Header {
	h := req.Header{"Accept": "application/json"}
	if c.token != "" {
		h["Authorization"] = "Bearer " + c.token
	}
	return h
}

func (c *apiClient) get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.r.Get(c.baseURL+path, c.headers(), c.httpClient, ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", path)
	}
	return checkResponse(resp)
}

func (c *apiClient) post(ctx context.Context, path string, body any) ([]byte, error) {
	resp, err := c.r.Post(c.baseURL+path, c.headers(), req.BodyJSON(body), c.httpClient, ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", path)
	}
	return checkResponse(resp)
}

// checkResponse turns API error bodies into errors carrying the server message.
func checkResponse(resp *req.Resp) ([]byte, error) {
	body := resp.Bytes()
	status := resp.Response().StatusCode
	if status >= 200 && status < 300 {
		return body, nil
	}

	parsed := gjson.ParseBytes(body)
	if msg := parsed.Get("message").String(); msg != "" {
		return nil, fmt.Errorf("%s (%d): %s", parsed.Get("error").String(), status, msg)
	}
	return nil, fmt.Errorf("request failed with status %d: %s", status, strings.TrimSpace(string(body)))
}

func printJSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return errors.Wrap(err, "response is not valid JSON")
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}
