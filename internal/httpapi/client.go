package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"fotocamera/internal/domain"
)

// Client talks to a running fotocamera server.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a client for the server at base, e.g. "http://127.0.0.1:8080".
func NewClient(base string) *Client {
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &Client{Base: strings.TrimSuffix(base, "/"), HTTP: http.DefaultClient}
}

// Number returns the server's current DisplayNumber.
func (c *Client) Number(ctx context.Context) (domain.DisplayNumber, error) {
	var out NumberBody
	if err := c.do(ctx, http.MethodGet, "/number", nil, &out); err != nil {
		return "", err
	}
	return domain.ParseDisplayNumber(out.DisplayNumber)
}

// SetNumber sets and persists the server's DisplayNumber.
func (c *Client) SetNumber(ctx context.Context, n domain.DisplayNumber) error {
	return c.do(ctx, http.MethodPut, "/number", NumberBody{DisplayNumber: n.String()}, nil)
}

// Capture takes a photo on the server.
func (c *Client) Capture(ctx context.Context) (CaptureBody, error) {
	var out CaptureBody
	err := c.do(ctx, http.MethodPost, "/capture", nil, &out)
	return out, err
}

// Media lists the server's media records.
func (c *Client) Media(ctx context.Context, includePending bool) ([]domain.MediaRecord, error) {
	path := "/media"
	if includePending {
		path += "?pending=1"
	}
	var out []domain.MediaRecord
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// MediaRecord fetches one record.
func (c *Client) MediaRecord(ctx context.Context, id string) (domain.MediaRecord, error) {
	var out domain.MediaRecord
	err := c.do(ctx, http.MethodGet, "/media/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		var e errorBody
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, e.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
