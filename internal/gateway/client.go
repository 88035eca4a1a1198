// Package gateway is the HTTP client for the remote catalog/order
// service. It owns nothing but the wire contract: fetch the product
// list, fetch one product, submit an assembled order.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/guonaihong/gout"

	"larek/internal/domain"
)

type Client struct {
	base    string // e.g. http://localhost:9090/api/weblarek
	timeout time.Duration
}

func New(base string, timeout time.Duration) *Client {
	return &Client{base: base, timeout: timeout}
}

type productList struct {
	Total int                 `json:"total"`
	Items []domain.APIProduct `json:"items"`
}

// OrderResult is the gateway's confirmation of an accepted order.
type OrderResult struct {
	ID    string  `json:"id"`
	Total float64 `json:"total"`
}

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]domain.APIProduct, error) {
	var (
		code int
		body []byte
	)
	err := gout.GET(c.base + "/product/").
		WithContext(ctx).
		SetTimeout(c.timeout).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		return nil, fmt.Errorf("gateway: fetch products: %w", err)
	}
	if code != http.StatusOK {
		return nil, statusError("fetch products", code, body)
	}
	var list productList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("gateway: decode products: %w", err)
	}
	return list.Items, nil
}

// Product fetches a single catalog item by id.
func (c *Client) Product(ctx context.Context, id string) (domain.APIProduct, error) {
	var (
		code int
		body []byte
	)
	err := gout.GET(c.base + "/product/" + id).
		WithContext(ctx).
		SetTimeout(c.timeout).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		return domain.APIProduct{}, fmt.Errorf("gateway: fetch product %s: %w", id, err)
	}
	if code != http.StatusOK {
		return domain.APIProduct{}, statusError("fetch product", code, body)
	}
	var p domain.APIProduct
	if err := json.Unmarshal(body, &p); err != nil {
		return domain.APIProduct{}, fmt.Errorf("gateway: decode product: %w", err)
	}
	return p, nil
}

// SubmitOrder posts the order and returns the confirmation. A rejected
// or failed submission is an error, never a panic; the caller keeps the
// cart and draft intact and retries.
func (c *Client) SubmitOrder(ctx context.Context, order domain.Order) (OrderResult, error) {
	var (
		code int
		body []byte
	)
	err := gout.POST(c.base + "/order").
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetJSON(order).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		return OrderResult{}, fmt.Errorf("gateway: submit order: %w", err)
	}
	if code != http.StatusOK && code != http.StatusCreated {
		return OrderResult{}, statusError("submit order", code, body)
	}
	var res OrderResult
	if err := json.Unmarshal(body, &res); err != nil {
		return OrderResult{}, fmt.Errorf("gateway: decode order result: %w", err)
	}
	return res, nil
}

// statusError surfaces the server's error message when it sent one.
func statusError(op string, code int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Errorf("gateway: %s: %s (status %d)", op, e.Error, code)
	}
	return fmt.Errorf("gateway: %s: status %d", op, code)
}
