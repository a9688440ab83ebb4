package tui

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"karat/internal/api"
	"karat/internal/listview"
	"karat/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeClients_LeadFromWire(t *testing.T) {
	// Exactly what the backend returns for a lead-filtered query.
	payload := []byte(`{"results": [
		{"id": 1, "first_name": "Priya", "status": "lead", "created_at": "2024-01-15T00:00:00Z"}
	]}`)

	records := api.DecodeList[api.Customer](payload)
	require.Len(t, records, 1)
	assert.Equal(t, "Priya", records[0].Name())
	assert.Equal(t, api.CustomerStatusLead, records[0].Status)

	t.Run("queried within January 2024", func(t *testing.T) {
		now := time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)
		summary := summarizeClients(records, now)
		assert.Equal(t, 1, summary.Total)
		assert.Equal(t, 1, summary.Leads)
		assert.Equal(t, 1, summary.NewThisMonth)
	})

	t.Run("queried in a later month", func(t *testing.T) {
		now := time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC)
		summary := summarizeClients(records, now)
		assert.Equal(t, 1, summary.Total)
		assert.Equal(t, 1, summary.Leads)
		assert.Equal(t, 0, summary.NewThisMonth)
	})
}

func TestSummarizePipeline_FromWire(t *testing.T) {
	payload := []byte(`[
		{"id": 1, "title": "Bridal set", "expected_value": 50000, "stage": "lead"},
		{"id": 2, "title": "Gold chain", "expected_value": null, "stage": "closed_won"}
	]`)

	deals := api.DecodeList[api.Deal](payload)
	require.Len(t, deals, 2)

	summary := summarizePipeline(deals)
	assert.Equal(t, "₹50,000.00", stats.FormatINR(summary.TotalValue))
	assert.Equal(t, 1, summary.Won)
	assert.Equal(t, 0, summary.Lost)
	assert.Equal(t, "50.0%", stats.FormatPercent(summary.Conversion))
}

func TestSummarizePipeline_Empty(t *testing.T) {
	summary := summarizePipeline(nil)
	assert.Zero(t, summary.TotalValue)
	assert.Zero(t, summary.Won)
	assert.Zero(t, summary.Conversion)
}

func TestSummarizeProducts_LowStock(t *testing.T) {
	var products []api.Product
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 1, "name": "Ring", "price": "1200.50", "stock_quantity": 2, "low_stock_threshold": 5, "is_active": true},
		{"id": 2, "name": "Chain", "price": 800, "stock_quantity": 40, "low_stock_threshold": 5, "is_active": true},
		{"id": 3, "name": "Discontinued", "price": 100, "stock_quantity": 0, "is_active": false}
	]`), &products))

	summary := summarizeProducts(products)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Active)
	// No threshold on the third product, so only the ring flags.
	assert.Equal(t, 1, summary.LowStock)
	assert.InDelta(t, 1200.50*2+800*40, summary.Value, 0.001)
}

func TestSummarizeAppointments_Today(t *testing.T) {
	now := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	var appts []api.Appointment
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 1, "date": "2026-08-29", "status": "scheduled"},
		{"id": 2, "date": "2026-08-30", "status": "scheduled"},
		{"id": 3, "date": "bogus", "status": "no_show"}
	]`), &appts))

	summary := summarizeAppointments(appts, now)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Today)
	assert.Equal(t, 2, summary.Scheduled)
	assert.Equal(t, 1, summary.NoShows)
}

func TestProductCategoryFilter(t *testing.T) {
	var products []api.Product
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 1, "name": "Ring", "sku": "R1", "category": "rings"},
		{"id": 2, "name": "Chain", "sku": "C1", "category": "chains"},
		{"id": 3, "name": "Band", "sku": "R2", "category": "rings"},
		{"id": 4, "name": "Loose stone", "sku": "S1"}
	]`), &products))

	ctrl := listview.New("products", func(ctx context.Context, q listview.Query) ([]api.Product, error) {
		return products, nil
	})
	msg, ok := ctrl.Load()().(listview.LoadedMsg[api.Product])
	require.True(t, ok)
	require.True(t, ctrl.Apply(msg))
	m := Model{products: ctrl}

	assert.Equal(t, []string{"", "chains", "rings"}, m.productCategories())

	m.products.SetFilter("category", "rings")
	visible := m.visibleProducts()
	require.Len(t, visible, 2)
	assert.Equal(t, "Ring", visible[0].Name)
	assert.Equal(t, "Band", visible[1].Name)

	// Cycling back to "" shows the whole catalog, uncategorized included.
	m.products.SetFilter("category", "")
	assert.Len(t, m.visibleProducts(), 4)
}

func TestNextFilterCycles(t *testing.T) {
	assert.Equal(t, api.CustomerStatusLead, nextFilter(clientStatusFilters, ""))
	assert.Equal(t, "", nextFilter(clientStatusFilters, api.CustomerStatusInactive))
	// Unknown values restart the cycle.
	assert.Equal(t, "", nextFilter(clientStatusFilters, "bogus"))
}

func TestNextStage(t *testing.T) {
	assert.Equal(t, api.StageContacted, nextStage(api.StageLead))
	assert.Equal(t, api.StageClosedWon, nextStage(api.StageNegotiation))
	assert.Equal(t, "", nextStage(api.StageClosedWon))
	assert.Equal(t, "", nextStage(api.StageClosedLost))
}
