package api

import "context"

// TenantInput is the write shape for tenant provisioning.
type TenantInput struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
	Plan string `json:"plan,omitempty"`
}

// ListTenants fetches every tenant. Platform-admin only; other roles
// get a 403 the caller degrades from.
func (c *Client) ListTenants(ctx context.Context) ([]Tenant, error) {
	resp, err := c.get(ctx, "/tenants/", nil)
	if err != nil {
		return nil, err
	}
	return DecodeList[Tenant](resp.Data), nil
}

// CreateTenant provisions a new business.
func (c *Client) CreateTenant(ctx context.Context, input TenantInput) (*Response, error) {
	return c.postJSON(ctx, "/tenants/", input)
}

// SuspendTenant disables a tenant's access.
func (c *Client) SuspendTenant(ctx context.Context, id ID) (*Response, error) {
	return c.postJSON(ctx, "/tenants/"+id.String()+"/suspend/", nil)
}

// ActivateTenant re-enables a suspended tenant.
func (c *Client) ActivateTenant(ctx context.Context, id ID) (*Response, error) {
	return c.postJSON(ctx, "/tenants/"+id.String()+"/activate/", nil)
}
