// Package apiclient is a thin typed HTTP client for the API, meant for bots
// and scripts driving a running server.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Client talks to the API with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// APIError is a non-2xx response, carrying the problem details the server
// returned.
type APIError struct {
	StatusCode int
	Title      string `json:"title"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Title, e.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Title)
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithToken returns a copy of the client authenticated with the JWT.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// Login exchanges credentials for a JWT and returns a client holding it.
func (c *Client) Login(ctx context.Context, identity, password string) (*Client, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		map[string]string{"identity": identity, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return c.WithToken(out.Token), nil
}

// Register creates a user.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil,
		map[string]string{"username": username, "email": email, "password": password}, nil)
}

// Account is the account shape returned by the API.
type Account struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Balance  float64   `json:"balance"`
	IsActive bool      `json:"is_active"`
}

// AccountPage is a page of accounts with the total active balance.
type AccountPage struct {
	Count        int64     `json:"count"`
	Results      []Account `json:"results"`
	TotalBalance float64   `json:"total_balance"`
}

// CreateAccount creates an account.
func (c *Client) CreateAccount(ctx context.Context, name string, balance float64) (*Account, error) {
	var out Account
	err := c.do(ctx, http.MethodPost, "/accounts", nil,
		map[string]any{"name": name, "balance": balance}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAccounts returns a page of accounts.
func (c *Client) ListAccounts(ctx context.Context, page int) (*AccountPage, error) {
	var out AccountPage
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if err := c.do(ctx, http.MethodGet, "/accounts", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Category is the category shape returned by the API.
type Category struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	UsageCount int64     `json:"usage_count"`
}

// CreateCategory creates a category of type "income" or "expense".
func (c *Client) CreateCategory(ctx context.Context, name, categoryType string) (*Category, error) {
	var out Category
	err := c.do(ctx, http.MethodPost, "/categories", nil,
		map[string]string{"name": name, "type": categoryType}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCategories returns a page of categories, optionally filtered by type.
func (c *Client) ListCategories(ctx context.Context, categoryType string, page int) ([]Category, error) {
	var out struct {
		Results []Category `json:"results"`
	}
	q := url.Values{}
	if categoryType != "" {
		q.Set("type", categoryType)
	}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if err := c.do(ctx, http.MethodGet, "/categories", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// CreateTransaction records a financial event.
func (c *Client) CreateTransaction(ctx context.Context, categoryID, accountID uuid.UUID, amount float64, comment string) error {
	return c.do(ctx, http.MethodPost, "/transactions", nil, map[string]any{
		"category_id": categoryID.String(),
		"account_id":  accountID.String(),
		"amount":      amount,
		"comment":     comment,
	}, nil)
}

// CreateTransfer moves money between two accounts.
func (c *Client) CreateTransfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount float64) error {
	return c.do(ctx, http.MethodPost, "/transfers", nil, map[string]any{
		"source_account":      sourceID.String(),
		"destination_account": destinationID.String(),
		"amount":              amount,
	}, nil)
}

// CreateDebt opens a debt or lend against the given account.
func (c *Client) CreateDebt(ctx context.Context, accountID uuid.UUID, kind string, amount float64, description, date string) error {
	return c.do(ctx, http.MethodPost, "/debts", nil, map[string]any{
		"account_id":           accountID.String(),
		"type":                 kind,
		"amount":               amount,
		"borrower_description": description,
		"date":                 date,
	}, nil)
}

// RepayDebt pays down a debt's principal.
func (c *Client) RepayDebt(ctx context.Context, debtID uuid.UUID, amount float64) error {
	path := fmt.Sprintf("/debts/%s/repay", debtID)
	return c.do(ctx, http.MethodPost, path, nil, map[string]any{"amount": amount}, nil)
}

// Debt is the debt shape returned by the API.
type Debt struct {
	ID                  uuid.UUID `json:"id"`
	TransferID          uuid.UUID `json:"transfer_id"`
	BorrowerDescription string    `json:"borrower_description"`
	Amount              float64   `json:"amount"`
	AccountName         string    `json:"account_name"`
	Kind                string    `json:"type"`
}

// ListDebts returns a page of debts, optionally filtered by kind.
func (c *Client) ListDebts(ctx context.Context, kind string, page int) ([]Debt, error) {
	var out struct {
		Results []Debt `json:"results"`
	}
	q := url.Values{}
	if kind != "" {
		q.Set("type", kind)
	}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if err := c.do(ctx, http.MethodGet, "/debts", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// do sends one request and decodes the data field of the success envelope
// into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
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
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return err
	}
	if envelope.Data == nil {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}
