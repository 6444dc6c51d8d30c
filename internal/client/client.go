package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"catalog/internal/models"
)

// Client talks to the catalog API and keeps State reconciled with server
// responses.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	State   *State
}

// New creates a Client against the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		State:   NewState(),
	}
}

// SetToken sets the bearer credential used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login authenticates and stores the issued token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// LoadProducts fetches the product list and replaces the local state.
func (c *Client) LoadProducts(ctx context.Context) error {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return err
	}
	c.State.SetProducts(products)
	return nil
}

// SaveRow persists a staged inline edit: the row's full current state is
// sent to the update endpoint, not a diff.
func (c *Client) SaveRow(ctx context.Context, id string) error {
	product, ok := c.State.Product(id)
	if !ok {
		return fmt.Errorf("no product %s in local state", id)
	}
	var updated models.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+id, product, &updated); err != nil {
		return err
	}
	c.State.PatchRow(id, models.ProductPatch{
		Name:        &updated.Name,
		Description: &updated.Description,
		Price:       &updated.Price,
		Stock:       &updated.Stock,
		MSC:         &updated.MSC,
	})
	return nil
}

// bulkRow is one wire record of a bulk update: the shared patch expanded per
// selected id. The shape allows per-row values later without changing the
// transport.
type bulkRow struct {
	ID    string   `json:"id"`
	MSC   *bool    `json:"msc,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// SyncBulk runs the client half of the bulk sync pipeline: it rejects empty
// input locally, applies the patch optimistically to the selected rows,
// issues the batched update, and clears selection and pending state once the
// request settles. A server failure is returned, never swallowed; the
// optimistic mutation is not rolled back.
func (c *Client) SyncBulk(ctx context.Context, patch models.BulkPatch) error {
	if patch.Empty() {
		return fmt.Errorf("no fields to update")
	}
	ids := c.State.SelectedIDs()
	if len(ids) == 0 {
		return fmt.Errorf("no products selected")
	}
	if !c.State.beginRequest() {
		return fmt.Errorf("a bulk update is already in flight")
	}
	defer c.State.finishRequest()

	rows := make([]bulkRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, bulkRow{ID: id, MSC: patch.MSC, Price: patch.Price})
	}

	// Optimistic merge happens before the round trip; it must not block the
	// request from being issued.
	c.State.ApplyBulkPatch(ids, patch)

	var resp struct {
		Message string `json:"message"`
		Count   int64  `json:"count"`
	}
	return c.do(ctx, http.MethodPut, "/api/products/bulk-update", map[string]interface{}{
		"products": rows,
	}, &resp)
}

// ImportProducts uploads a parsed file and records its metadata locally.
func (c *Client) ImportProducts(ctx context.Context, fileName, uploadDate string, products []models.Product) error {
	var resp struct {
		Message string `json:"message"`
		Count   int64  `json:"count"`
	}
	err := c.do(ctx, http.MethodPost, "/api/products/import", map[string]interface{}{
		"fileName":   fileName,
		"uploadDate": uploadDate,
		"products":   products,
	}, &resp)
	if err != nil {
		return err
	}
	c.State.SetLastUpload(models.UploadFile{
		FileName:   fileName,
		UploadDate: uploadDate,
		ItemCount:  int(resp.Count),
	})
	return nil
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
