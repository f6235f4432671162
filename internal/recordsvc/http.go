package recordsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Spok95/studysync/internal/ctxutil"
)

const (
	HeaderProjectID = "X-Project-Id"
	HeaderRequestID = "X-Request-ID"
)

// HTTPClient ходит во внешний сервис записей по JSON API.
type HTTPClient struct {
	base      string
	projectID string
	publicKey string
	hc        *http.Client
}

func NewHTTPClient(baseURL, projectID, publicKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		base:      strings.TrimRight(baseURL, "/"),
		projectID: projectID,
		publicKey: publicKey,
		hc:        &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.projectID != "" {
		req.Header.Set(HeaderProjectID, c.projectID)
	}
	if c.publicKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.publicKey)
	}
	if id, ok := ctxutil.RequestID(ctx); ok {
		req.Header.Set(HeaderRequestID, id)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%s %s: http %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}

func collectionPath(c Collection) string {
	return "/v1/records/" + url.PathEscape(string(c))
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var out struct {
		Success bool `json:"success"`
	}
	return c.do(ctx, http.MethodGet, "/v1/ping", nil, &out)
}

func (c *HTTPClient) List(ctx context.Context, coll Collection, p ListParams) (*ListResponse, error) {
	var out ListResponse
	if err := c.do(ctx, http.MethodPost, collectionPath(coll)+"/query", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetByID(ctx context.Context, coll Collection, id int64, fields []string) (*GetResponse, error) {
	path := collectionPath(coll) + "/" + strconv.FormatInt(id, 10)
	if len(fields) > 0 {
		path += "?fields=" + url.QueryEscape(strings.Join(fields, ","))
	}
	var out GetResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type recordsBody struct {
	Records []Record `json:"records"`
}

type idsBody struct {
	IDs []int64 `json:"ids"`
}

func (c *HTTPClient) Create(ctx context.Context, coll Collection, records []Record) (*BatchResponse, error) {
	var out BatchResponse
	if err := c.do(ctx, http.MethodPost, collectionPath(coll), recordsBody{records}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Update(ctx context.Context, coll Collection, records []Record) (*BatchResponse, error) {
	var out BatchResponse
	if err := c.do(ctx, http.MethodPatch, collectionPath(coll), recordsBody{records}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Delete(ctx context.Context, coll Collection, ids []int64) (*BatchResponse, error) {
	var out BatchResponse
	if err := c.do(ctx, http.MethodDelete, collectionPath(coll), idsBody{ids}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
