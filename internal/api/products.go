package api

import (
	"context"
	"io"
	"net/url"
	"strconv"
)

// productPageSize matches the catalog page the client filters locally:
// one large fetch, then pure client-side search and category filtering.
const productPageSize = 200

// ProductInput is the write shape for catalog items.
type ProductInput struct {
	Name              string  `json:"name"`
	SKU               string  `json:"sku,omitempty"`
	Category          string  `json:"category,omitempty"`
	Price             float64 `json:"price"`
	StockQuantity     int     `json:"stock_quantity"`
	LowStockThreshold int     `json:"low_stock_threshold,omitempty"`
	IsActive          bool    `json:"is_active"`
}

// ListProducts fetches the catalog in one page; filtering happens
// client-side over the returned slice.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	q := url.Values{}
	q.Set("page_size", strconv.Itoa(productPageSize))

	resp, err := c.get(ctx, "/products/list/", q)
	if err != nil {
		return nil, err
	}
	return DecodeList[Product](resp.Data), nil
}

// GetProduct fetches a single catalog item.
func (c *Client) GetProduct(ctx context.Context, id ID) (*Product, error) {
	resp, err := c.get(ctx, "/products/"+id.String()+"/", nil)
	if err != nil {
		return nil, err
	}
	var p Product
	if err := decodeData(resp.Data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct adds a catalog item.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Response, error) {
	return c.postJSON(ctx, "/products/create/", input)
}

// UpdateProduct updates a catalog item.
func (c *Client) UpdateProduct(ctx context.Context, id ID, input ProductInput) (*Response, error) {
	return c.putJSON(ctx, "/products/"+id.String()+"/", input)
}

// DeleteProduct removes a catalog item. Product deletes are hard;
// there is no product trash.
func (c *Client) DeleteProduct(ctx context.Context, id ID) (*Response, error) {
	return c.delete(ctx, "/products/"+id.String()+"/")
}

// ImportProducts uploads a product spreadsheet or CSV as multipart
// form data. The backend reports row-level outcomes in Message.
func (c *Client) ImportProducts(ctx context.Context, filename string, file io.Reader) (*Response, error) {
	return c.postMultipart(ctx, "/products/import/", filename, file)
}
