package api

import "context"

// AnnouncementInput is the write shape for announcements.
type AnnouncementInput struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Audience string `json:"audience,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// ListAnnouncements fetches every announcement visible to the current
// role; filtering is client-side.
func (c *Client) ListAnnouncements(ctx context.Context) ([]Announcement, error) {
	resp, err := c.get(ctx, "/announcements/", nil)
	if err != nil {
		return nil, err
	}
	return DecodeList[Announcement](resp.Data), nil
}

// CreateAnnouncement publishes an announcement.
func (c *Client) CreateAnnouncement(ctx context.Context, input AnnouncementInput) (*Response, error) {
	return c.postJSON(ctx, "/announcements/", input)
}

// DeleteAnnouncement removes an announcement.
func (c *Client) DeleteAnnouncement(ctx context.Context, id ID) (*Response, error) {
	return c.delete(ctx, "/announcements/"+id.String()+"/")
}
