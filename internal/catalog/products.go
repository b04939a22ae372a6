// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/ManuGH/statusbot/internal/domain/statusflow/model"
)

const (
	OpListProducts = "list_products"
	OpUpdateStatus = "update_status"
)

type listResponse struct {
	Data json.RawMessage `json:"data"`
}

// statusUpdate is the bulk-update body. StatusColor marshals to null when nil.
type statusUpdate struct {
	ProductIDs  []model.ProductID `json:"product_ids"`
	StatusColor *string           `json:"status_color"`
	StatusText  string            `json:"status_text"`
}

func (c *Client) productsPath() string {
	return "shops/" + url.PathEscape(c.shopID) + "/products"
}

// ListProducts fetches the full product listing of the shop, in API order.
func (c *Client) ListProducts(ctx context.Context) ([]model.Candidate, error) {
	var resp listResponse
	if err := c.Get(ctx, OpListProducts, c.productsPath(), &resp); err != nil {
		return nil, err
	}

	data := bytes.TrimSpace(resp.Data)
	if len(data) == 0 || data[0] != '[' {
		return nil, &APIError{
			Sentinel:  ErrBadResponse,
			Operation: OpListProducts,
			Message:   "response has no data array",
		}
	}

	var products []model.Candidate
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, &APIError{Sentinel: ErrBadResponse, Operation: OpListProducts, Err: err}
	}
	return products, nil
}

// UpdateStatus sets the status text and color of the given products in one
// bulk call. A nil color clears the product's color.
func (c *Client) UpdateStatus(ctx context.Context, ids []model.ProductID, color *string, text string) error {
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = id.String()
	}
	return c.do(ctx, request{
		op:         OpUpdateStatus,
		method:     http.MethodPut,
		path:       c.productsPath() + "/bulk-update/status",
		body:       statusUpdate{ProductIDs: ids, StatusColor: color, StatusText: text},
		productIDs: labels,
	})
}
