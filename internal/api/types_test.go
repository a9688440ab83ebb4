package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_NumberOrString(t *testing.T) {
	type rec struct {
		ID ID `json:"id"`
	}

	var a, b, c rec
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"id": "c_42"}`), &b))
	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &c))

	assert.Equal(t, "42", a.ID.String())
	assert.Equal(t, "c_42", b.ID.String())
	assert.True(t, c.ID.IsZero())

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 42}`, string(out))
}

func TestTime_LenientParsing(t *testing.T) {
	type rec struct {
		CreatedAt Time `json:"created_at"`
	}

	cases := map[string]bool{
		`{"created_at": "2024-01-15T00:00:00Z"}`:       false,
		`{"created_at": "2024-01-15T10:30:00+05:30"}`:  false,
		`{"created_at": "2024-01-15"}`:                 false,
		`{"created_at": "2024-01-15 10:30:00"}`:        false,
		`{"created_at": null}`:                         true,
		`{"created_at": "yesterday"}`:                  true,
		`{"created_at": 1705276800}`:                   true,
		`{}`:                                           true,
	}
	for payload, wantZero := range cases {
		var r rec
		require.NoError(t, json.Unmarshal([]byte(payload), &r), payload)
		assert.Equal(t, wantZero, r.CreatedAt.IsZero(), payload)
	}
}

func TestCustomer_Name(t *testing.T) {
	assert.Equal(t, "Priya Sharma", Customer{FirstName: "Priya", LastName: "Sharma"}.Name())
	assert.Equal(t, "Priya", Customer{FirstName: "Priya"}.Name())
	assert.Equal(t, "p@example.com", Customer{Email: "p@example.com"}.Name())
}

func TestProduct_LowStock(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"stock_quantity": 3, "low_stock_threshold": 5}`), &p))
	assert.True(t, p.LowStock())

	require.NoError(t, json.Unmarshal([]byte(`{"stock_quantity": 10, "low_stock_threshold": 5}`), &p))
	assert.False(t, p.LowStock())

	// Missing threshold never flags.
	p = Product{}
	require.NoError(t, json.Unmarshal([]byte(`{"stock_quantity": 0}`), &p))
	assert.False(t, p.LowStock())

	// Garbage stock values read as zero and flag against a threshold.
	p = Product{}
	require.NoError(t, json.Unmarshal([]byte(`{"stock_quantity": null, "low_stock_threshold": 5}`), &p))
	assert.True(t, p.LowStock())
}
