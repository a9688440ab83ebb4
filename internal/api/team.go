package api

import "context"

// TeamMemberInput is the write shape for staff accounts.
type TeamMemberInput struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role"`
	Store     string `json:"store,omitempty"`
}

// ListTeam fetches the tenant's staff accounts; role filtering is
// client-side.
func (c *Client) ListTeam(ctx context.Context) ([]User, error) {
	resp, err := c.get(ctx, "/auth/team/", nil)
	if err != nil {
		return nil, err
	}
	return DecodeList[User](resp.Data), nil
}

// CreateTeamMember invites a staff account.
func (c *Client) CreateTeamMember(ctx context.Context, input TeamMemberInput) (*Response, error) {
	return c.postJSON(ctx, "/auth/team/", input)
}

// UpdateTeamMember changes a staff account's role or store.
func (c *Client) UpdateTeamMember(ctx context.Context, id ID, input TeamMemberInput) (*Response, error) {
	return c.putJSON(ctx, "/auth/team/"+id.String()+"/", input)
}

// DeactivateTeamMember disables a staff account without deleting it.
func (c *Client) DeactivateTeamMember(ctx context.Context, id ID) (*Response, error) {
	return c.postJSON(ctx, "/auth/team/"+id.String()+"/deactivate/", nil)
}
