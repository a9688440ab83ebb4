package api

import (
	"context"
	"net/url"
)

// DealInput is the write shape for pipeline deals.
type DealInput struct {
	CustomerID    ID      `json:"client_id"`
	Title         string  `json:"title"`
	Stage         string  `json:"stage,omitempty"`
	ExpectedValue float64 `json:"expected_value"`
	ExpectedClose string  `json:"expected_close_date,omitempty"`
}

// ListPipeline fetches deals, optionally narrowed to one stage
// server-side. An empty stage returns the whole pipeline.
func (c *Client) ListPipeline(ctx context.Context, stage string) ([]Deal, error) {
	q := url.Values{}
	if stage != "" {
		q.Set("stage", stage)
	}
	resp, err := c.get(ctx, "/sales/pipeline/", q)
	if err != nil {
		return nil, err
	}
	return DecodeList[Deal](resp.Data), nil
}

// CreateDeal adds a pipeline deal.
func (c *Client) CreateDeal(ctx context.Context, input DealInput) (*Response, error) {
	return c.postJSON(ctx, "/sales/pipeline/", input)
}

// UpdateDeal updates a deal's editable fields.
func (c *Client) UpdateDeal(ctx context.Context, id ID, input DealInput) (*Response, error) {
	return c.patchJSON(ctx, "/sales/pipeline/"+id.String()+"/", input)
}

// TransitionDeal asks the backend to move a deal to a new stage. Which
// transitions are legal is a server-side rule; the client just displays
// the outcome (or the rejection message).
func (c *Client) TransitionDeal(ctx context.Context, id ID, stage string) (*Response, error) {
	body := map[string]string{"stage": stage}
	return c.postJSON(ctx, "/sales/pipeline/"+id.String()+"/transition/", body)
}

// DeleteDeal removes a deal from the pipeline.
func (c *Client) DeleteDeal(ctx context.Context, id ID) (*Response, error) {
	return c.delete(ctx, "/sales/pipeline/"+id.String()+"/")
}
