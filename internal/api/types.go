package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"karat/internal/stats"
)

// ID is a record primary key. Backends send keys as numbers or strings
// depending on the resource; both decode to the same stable value used
// for render keys and path parameters.
type ID string

// UnmarshalJSON accepts a JSON string or number. Anything else reads as
// the empty ID.
func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ""

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n.String())
		return nil
	}

	return nil
}

// MarshalJSON emits numeric IDs as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// IsZero reports whether the ID is absent.
func (id ID) IsZero() bool { return id == "" }

// Time is a defensively-parsed timestamp. Accepts RFC 3339 (with or
// without fractional seconds), bare dates, and the space-separated
// datetime some backends emit. Unparseable input reads as the zero time.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON never fails; bad input yields the zero time.
func (t *Time) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// MarshalJSON emits RFC 3339, or null for the zero time.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Customer statuses as the backend reports them.
const (
	CustomerStatusLead     = "lead"
	CustomerStatusActive   = "active"
	CustomerStatusVIP      = "vip"
	CustomerStatusInactive = "inactive"
)

// Customer is a client record. Display fields are read defensively:
// any of them may be absent or null.
type Customer struct {
	ID             ID           `json:"id"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Status         string       `json:"status"`
	Notes          string       `json:"notes"`
	TotalPurchases stats.Number `json:"total_purchases"`
	IsDeleted      bool         `json:"is_deleted"`
	DeletedAt      Time         `json:"deleted_at"`
	CreatedAt      Time         `json:"created_at"`
}

// Name returns the display name, falling back to email for records with
// no name fields.
func (c Customer) Name() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Email
	}
	return name
}

// Product is a catalog item.
type Product struct {
	ID                ID           `json:"id"`
	Name              string       `json:"name"`
	SKU               string       `json:"sku"`
	Category          string       `json:"category"`
	Price             stats.Number `json:"price"`
	StockQuantity     stats.Number `json:"stock_quantity"`
	LowStockThreshold stats.Number `json:"low_stock_threshold"`
	IsActive          bool         `json:"is_active"`
	CreatedAt         Time         `json:"created_at"`
}

// LowStock reports whether the product sits at or below its threshold.
// A missing threshold never flags the product.
func (p Product) LowStock() bool {
	threshold := p.LowStockThreshold.Float()
	if threshold <= 0 {
		return false
	}
	return p.StockQuantity.Float() <= threshold
}

// Pipeline stages as the backend reports them. The client only displays
// these; what makes a deal won or lost is a server-side fact.
const (
	StageLead        = "lead"
	StageContacted   = "contacted"
	StageNegotiation = "negotiation"
	StageClosedWon   = "closed_won"
	StageClosedLost  = "closed_lost"
)

// Deal is a sales-pipeline entry.
type Deal struct {
	ID                ID           `json:"id"`
	CustomerID        ID           `json:"client_id"`
	CustomerName      string       `json:"client_name"`
	Title             string       `json:"title"`
	Stage             string       `json:"stage"`
	ExpectedValue     stats.Number `json:"expected_value"`
	ExpectedCloseDate Time         `json:"expected_close_date"`
	CreatedAt         Time         `json:"created_at"`
}

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// Appointment is a scheduled customer visit.
type Appointment struct {
	ID           ID     `json:"id"`
	CustomerID   ID     `json:"client_id"`
	CustomerName string `json:"client_name"`
	Date         Time   `json:"date"`
	TimeSlot     string `json:"time"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

// Announcement is a broadcast message shown to tenant staff.
type Announcement struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Audience    string `json:"audience"`
	Priority    string `json:"priority"`
	PublishedAt Time   `json:"published_at"`
}

// Tenant statuses.
const (
	TenantActive    = "active"
	TenantSuspended = "suspended"
)

// Tenant is a business on the platform. Visible to platform admins only.
type Tenant struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Plan      string `json:"plan"`
	Status    string `json:"status"`
	CreatedAt Time   `json:"created_at"`
}

// Roles the backend assigns. Role gating in the client is display-only;
// authorization is enforced server-side.
const (
	RolePlatformAdmin = "platform_admin"
	RoleBusinessAdmin = "business_admin"
	RoleStoreManager  = "store_manager"
	RoleSalesRep      = "sales_rep"
)

// User is an authenticated account or team member.
type User struct {
	ID        ID     `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	TenantID  ID     `json:"tenant_id"`
	Store     string `json:"store"`
	IsActive  bool   `json:"is_active"`
}

// Name returns the display name, falling back to email.
func (u User) Name() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
