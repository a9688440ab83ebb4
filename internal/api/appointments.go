package api

import (
	"context"
	"net/url"
)

// AppointmentListParams narrow an appointment listing server-side.
type AppointmentListParams struct {
	Status string
	Date   string // YYYY-MM-DD
}

func (p AppointmentListParams) values() url.Values {
	q := url.Values{}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Date != "" {
		q.Set("date", p.Date)
	}
	return q
}

// AppointmentInput is the write shape for appointments.
type AppointmentInput struct {
	CustomerID ID     `json:"client_id"`
	Date       string `json:"date"`
	TimeSlot   string `json:"time,omitempty"`
	Type       string `json:"type,omitempty"`
	Status     string `json:"status,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ListAppointments fetches appointments filtered server-side by status
// and date.
func (c *Client) ListAppointments(ctx context.Context, params AppointmentListParams) ([]Appointment, error) {
	resp, err := c.get(ctx, "/clients/appointments/", params.values())
	if err != nil {
		return nil, err
	}
	return DecodeList[Appointment](resp.Data), nil
}

// CreateAppointment books an appointment.
func (c *Client) CreateAppointment(ctx context.Context, input AppointmentInput) (*Response, error) {
	return c.postJSON(ctx, "/clients/appointments/", input)
}

// UpdateAppointment reschedules or edits an appointment.
func (c *Client) UpdateAppointment(ctx context.Context, id ID, input AppointmentInput) (*Response, error) {
	return c.putJSON(ctx, "/clients/appointments/"+id.String()+"/", input)
}

// CancelAppointment marks an appointment cancelled. Cancellation is a
// status change, not a delete, so history survives.
func (c *Client) CancelAppointment(ctx context.Context, id ID) (*Response, error) {
	body := map[string]string{"status": AppointmentCancelled}
	return c.patchJSON(ctx, "/clients/appointments/"+id.String()+"/", body)
}
