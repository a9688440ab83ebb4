package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ClientListParams narrow a client listing server-side. Zero values are
// omitted from the query string.
type ClientListParams struct {
	Page   int
	Search string
	Status string
}

func (p ClientListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	return q
}

// CustomerInput is the write shape for create/update. Pointer-free on
// purpose: the backend treats absent and empty the same for these fields.
type CustomerInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Status    string `json:"status,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ListClients fetches clients with server-side search/status/page
// filtering. Any recognized payload shape normalizes to a flat slice.
func (c *Client) ListClients(ctx context.Context, params ClientListParams) ([]Customer, error) {
	resp, err := c.get(ctx, "/clients/clients/", params.values())
	if err != nil {
		return nil, err
	}
	return DecodeList[Customer](resp.Data), nil
}

// GetClient fetches a single client record.
func (c *Client) GetClient(ctx context.Context, id ID) (*Customer, error) {
	resp, err := c.get(ctx, "/clients/clients/"+id.String()+"/", nil)
	if err != nil {
		return nil, err
	}
	var customer Customer
	if err := decodeData(resp.Data, &customer); err != nil {
		return nil, fmt.Errorf("unexpected client payload: %w", err)
	}
	return &customer, nil
}

// CreateClient creates a client. The caller refetches the list on
// success; server-assigned defaults make local insertion unreliable.
func (c *Client) CreateClient(ctx context.Context, input CustomerInput) (*Response, error) {
	return c.postJSON(ctx, "/clients/clients/", input)
}

// UpdateClient updates a client in place.
func (c *Client) UpdateClient(ctx context.Context, id ID, input CustomerInput) (*Response, error) {
	return c.putJSON(ctx, "/clients/clients/"+id.String()+"/", input)
}

// DeleteClient soft-deletes a client. The record moves to the trash
// listing and can be restored.
func (c *Client) DeleteClient(ctx context.Context, id ID) (*Response, error) {
	return c.delete(ctx, "/clients/clients/"+id.String()+"/")
}

// ListTrashedClients fetches soft-deleted clients.
func (c *Client) ListTrashedClients(ctx context.Context) ([]Customer, error) {
	resp, err := c.get(ctx, "/clients/clients/trash/", nil)
	if err != nil {
		return nil, err
	}
	return DecodeList[Customer](resp.Data), nil
}

// RestoreClient returns a trashed client to the active list.
func (c *Client) RestoreClient(ctx context.Context, id ID) (*Response, error) {
	return c.postJSON(ctx, "/clients/clients/"+id.String()+"/restore/", nil)
}

// ExportFormat selects the client export encoding.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// Export is a downloaded file.
type Export struct {
	Filename string
	Data     []byte
}

// ExportClients downloads the full client list as CSV or JSON. CSV
// arrives as an attachment blob; JSON may arrive as a plain JSON body,
// in which case the raw bytes are returned as-is.
func (c *Client) ExportClients(ctx context.Context, format ExportFormat) (*Export, error) {
	if format != ExportCSV && format != ExportJSON {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	resp, err := c.get(ctx, fmt.Sprintf("/clients/clients/export_%s/", format), nil)
	if err != nil {
		return nil, err
	}

	export := &Export{Filename: resp.Filename}
	if export.Filename == "" {
		export.Filename = "clients." + string(format)
	}
	if resp.IsBlob() {
		export.Data = resp.Blob
		return export, nil
	}
	export.Data = append([]byte(nil), resp.Raw...)
	return export, nil
}
