package clover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultBaseURL = "https://api.clover.com"

type httpClient struct {
	baseURL    string
	merchantID string
	token      string
	http       *http.Client
}

// NewClientFromEnv builds a client from CLOVER_API_BASE, CLOVER_MERCHANT_ID
// and CLOVER_API_TOKEN. Missing credentials still return a usable client;
// every API call on it fails with ErrNotConfigured so callers can decide
// between fail-fast (sync) and silent no-op (sale hooks).
func NewClientFromEnv() Client {
	base := os.Getenv("CLOVER_API_BASE")
	if base == "" {
		base = defaultBaseURL
	}
	return &httpClient{
		baseURL:    base,
		merchantID: os.Getenv("CLOVER_MERCHANT_ID"),
		token:      os.Getenv("CLOVER_API_TOKEN"),
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *httpClient) Connected() bool {
	return c.merchantID != "" && c.token != ""
}

func (c *httpClient) Merchant() string {
	return c.merchantID
}

func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if !c.Connected() {
		return ErrNotConfigured
	}

	u := fmt.Sprintf("%s/v3/merchants/%s%s", c.baseURL, c.merchantID, path)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("clover %s %s: status %d: %s", method, path, resp.StatusCode, string(msg))
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// listResponse is Clover's paged envelope.
type listResponse struct {
	Elements []Item `json:"elements"`
}

func (c *httpClient) GetInventory(ctx context.Context) ([]Item, error) {
	var items []Item
	const pageSize = 500

	for offset := 0; ; offset += pageSize {
		q := url.Values{}
		q.Set("expand", "itemStock")
		q.Set("limit", fmt.Sprint(pageSize))
		q.Set("offset", fmt.Sprint(offset))

		var page listResponse
		if err := c.do(ctx, http.MethodGet, "/items", q, nil, &page); err != nil {
			return nil, err
		}
		items = append(items, page.Elements...)
		if len(page.Elements) < pageSize {
			return items, nil
		}
	}
}

func (c *httpClient) CreateItem(ctx context.Context, fields ItemFields) (*Item, error) {
	var created Item
	if err := c.do(ctx, http.MethodPost, "/items", nil, fields, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *httpClient) UpdateItem(ctx context.Context, itemID string, fields ItemFields) error {
	return c.do(ctx, http.MethodPost, "/items/"+itemID, nil, fields, nil)
}

func (c *httpClient) UpdateStock(ctx context.Context, itemID string, quantity int) error {
	body := map[string]interface{}{"quantity": quantity}
	return c.do(ctx, http.MethodPost, "/item_stocks/"+itemID, nil, body, nil)
}

func (c *httpClient) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	q := url.Values{}
	q.Set("expand", "lineItems")

	var order Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+orderID, q, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
