package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain number", `100`, 100},
		{"float", `49.5`, 49.5},
		{"null", `null`, 0},
		{"numeric string", `"50"`, 50},
		{"numeric string with spaces", `" 75.25 "`, 75.25},
		{"garbage string", `"twelve"`, 0},
		{"bool", `true`, 0},
		{"object", `{"amount": 5}`, 0},
		{"array", `[1,2]`, 0},
		{"infinity string", `"Infinity"`, 0},
		{"nan string", `"NaN"`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n Number
			err := json.Unmarshal([]byte(tc.input), &n)
			require.NoError(t, err, "Number must never fail to decode")
			assert.Equal(t, tc.want, n.Float())
		})
	}
}

func TestNumber_InStruct(t *testing.T) {
	type deal struct {
		Value Number `json:"expected_value"`
	}

	var d deal
	require.NoError(t, json.Unmarshal([]byte(`{"expected_value": null}`), &d))
	assert.Equal(t, 0.0, d.Value.Float())

	require.NoError(t, json.Unmarshal([]byte(`{}`), &d))
	assert.Equal(t, 0.0, d.Value.Float())
}

// Mirrors the recurring pipeline expected_value hazard: a single bad
// element must not poison the whole sum.
func TestSum_ToleratesBadElements(t *testing.T) {
	payload := `[
		{"expected_value": 100},
		{"expected_value": null},
		{"expected_value": "NaN"},
		{},
		{"expected_value": "50"},
		{"expected_value": "Infinity"}
	]`

	type deal struct {
		Value Number `json:"expected_value"`
	}
	var deals []deal
	require.NoError(t, json.Unmarshal([]byte(payload), &deals))

	total := Sum(deals, func(d deal) float64 { return d.Value.Float() })
	assert.Equal(t, 150.0, total)
}

func TestCountBy(t *testing.T) {
	type client struct{ Status string }
	clients := []client{{"lead"}, {"lead"}, {"vip"}, {""}}

	counts := CountBy(clients, func(c client) string { return c.Status })
	assert.Equal(t, 2, counts["lead"])
	assert.Equal(t, 1, counts["vip"])
	assert.Equal(t, 1, counts[""])
}

func TestRate(t *testing.T) {
	assert.Equal(t, 50.0, Rate(1, 2))
	assert.Equal(t, 0.0, Rate(0, 0), "empty set must not produce NaN")
	assert.Equal(t, 0.0, Rate(3, -1))
}

func TestNewThisMonth(t *testing.T) {
	created := func(s string) time.Time {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}
		}
		return ts
	}

	type client struct{ CreatedAt string }
	clients := []client{
		{"2024-01-15T00:00:00Z"},
		{"2024-01-31T23:59:59Z"},
		{"2024-02-01T00:00:00Z"},
		{"not-a-date"},
		{""},
	}
	at := func(c client) time.Time { return created(c.CreatedAt) }

	jan := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, NewThisMonth(clients, at, jan))
	assert.Equal(t, 1, NewThisMonth(clients, at, feb))
	assert.Equal(t, 0, NewThisMonth(clients, at, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{50000, "₹50,000.00"},
		{0, "₹0.00"},
		{999, "₹999.00"},
		{1000, "₹1,000.00"},
		{100000, "₹1,00,000.00"},
		{1234567, "₹12,34,567.00"},
		{12345678.9, "₹1,23,45,678.90"},
		{-50000, "-₹50,000.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatINR(tc.in))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "50.0%", FormatPercent(Rate(1, 2)))
	assert.Equal(t, "0.0%", FormatPercent(Rate(0, 0)))
	assert.Equal(t, "33.3%", FormatPercent(Rate(1, 3)))
}
