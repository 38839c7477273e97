// Package whop is a small client for the parts of the Whop REST API the
// catalog sync needs: products and plans.
package whop

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
)

const (
	DefaultBaseURL = "https://api.whop.com/api/v2"

	maxProductTitle      = 40
	maxPlanTitle         = 30
	maxDescription       = 1000
	defaultBillingPeriod = 365
	defaultStock         = 9999
	planTypeOneTime      = "one_time"
)

// APIError is a non-2xx answer from Whop.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("whop status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL    string
	APIKey     string
	CompanyID  string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey, companyID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		CompanyID:  companyID,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description"`
}

type Plan struct {
	ID           string   `json:"id"`
	ProductID    string   `json:"product_id"`
	Title        string   `json:"title"`
	Currency     string   `json:"currency"`
	InitialPrice float64  `json:"initial_price"`
	RenewalPrice *float64 `json:"renewal_price"`
	PlanType     string   `json:"plan_type"`
}

// PlanInput describes a plan to create for one product variant.
type PlanInput struct {
	ProductID   string
	Title       string
	Description string
	Currency    string
	Price       float64
}

// CreateProduct creates a product under the client's company. Title and
// description are cut to Whop's limits.
func (c *Client) CreateProduct(ctx context.Context, title, description string) (Product, error) {
	body := map[string]any{
		"company_id":  c.CompanyID,
		"title":       truncate(title, maxProductTitle),
		"description": truncate(description, maxDescription),
	}
	var p Product
	if err := c.do(ctx, http.MethodPost, "/products", body, &p); err != nil {
		return Product{}, fmt.Errorf("creating product %q: %w", title, err)
	}
	return p, nil
}

// CreatePlan creates a yearly renewal plan priced at in.Price with
// unlimited stock.
func (c *Client) CreatePlan(ctx context.Context, in PlanInput) (Plan, error) {
	body := map[string]any{
		"company_id":      c.CompanyID,
		"product_id":      in.ProductID,
		"title":           truncate(in.Title, maxPlanTitle),
		"description":     truncate(in.Description, maxDescription),
		"currency":        strings.ToLower(in.Currency),
		"initial_price":   in.Price,
		"billing_period":  defaultBillingPeriod,
		"renewal_price":   in.Price,
		"stock":           defaultStock,
		"unlimited_stock": true,
	}
	var p Plan
	if err := c.do(ctx, http.MethodPost, "/plans", body, &p); err != nil {
		return Plan{}, fmt.Errorf("creating plan %q: %w", in.Title, err)
	}
	return p, nil
}

// MakePlanOneTime turns a renewal plan into a one-time purchase.
func (c *Client) MakePlanOneTime(ctx context.Context, planID string) error {
	body := map[string]any{
		"billing_period": nil,
		"renewal_price":  nil,
		"plan_type":      planTypeOneTime,
	}
	if err := c.do(ctx, http.MethodPost, "/plans/"+url.PathEscape(planID), body, nil); err != nil {
		return fmt.Errorf("updating plan %s: %w", planID, err)
	}
	return nil
}

// ListProducts returns up to limit products of the client's company.
func (c *Client) ListProducts(ctx context.Context, limit int) ([]Product, error) {
	q := url.Values{}
	q.Set("company_id", c.CompanyID)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products?"+q.Encode(), nil, &products); err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return json.Unmarshal(unwrapData(raw), out)
}

// unwrapData returns the payload of a {"data": ...} envelope, or raw itself
// when the response is not wrapped.
func unwrapData(raw []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	if err := json.Unmarshal(trimmed, &env); err != nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return raw
	}
	return env.Data
}

func errorMessage(raw []byte) string {
	var env struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Error.Message != "" {
			return env.Error.Message
		}
		if env.Message != "" {
			return env.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
