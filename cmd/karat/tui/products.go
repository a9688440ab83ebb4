package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"karat/internal/api"
	"karat/internal/stats"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// productSummary holds the catalog stat cards.
type productSummary struct {
	Total    int
	Active   int
	LowStock int
	Value    float64
}

func summarizeProducts(records []api.Product) productSummary {
	return productSummary{
		Total: len(records),
		Active: stats.Count(records, func(p api.Product) bool {
			return p.IsActive
		}),
		LowStock: stats.Count(records, func(p api.Product) bool {
			return p.LowStock()
		}),
		Value: stats.Sum(records, func(p api.Product) float64 {
			return p.Price.Float() * p.StockQuantity.Float()
		}),
	}
}

// productCategories derives the filter cycle from the loaded catalog:
// "" (all) followed by each distinct category, sorted.
func (m Model) productCategories() []string {
	seen := map[string]bool{}
	cats := []string{""}
	for _, p := range m.products.Records() {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		cats = append(cats, p.Category)
	}
	sort.Strings(cats[1:])
	return cats
}

// visibleProducts applies the client-side search and category filter.
// The catalog is fetched in one page, so filtering never refetches.
func (m Model) visibleProducts() []api.Product {
	search := strings.ToLower(m.products.Search())
	category := m.products.Filter("category")
	return m.products.Visible(func(p api.Product) bool {
		if category != "" && p.Category != category {
			return false
		}
		if search == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Name), search) ||
			strings.Contains(strings.ToLower(p.SKU), search)
	})
}

func (m Model) productsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleProducts()
	lo, _ := m.pager.GetSliceBounds(len(visible))
	idx := lo + m.cursor()

	switch msg.String() {
	case "f":
		next := nextFilter(m.productCategories(), m.products.Filter("category"))
		m.products.SetFilter("category", next)
		m.pager.Page = 0
		m.pager.SetTotalPages(max(1, len(m.visibleProducts())))
		m.cursors[ProductsView] = 0
		return m, nil

	case "n":
		cmd := m.openForm(m.productForm(nil))
		return m, cmd

	case "e":
		if idx < len(visible) {
			p := visible[idx]
			cmd := m.openForm(m.productForm(&p))
			return m, cmd
		}

	case "d":
		if idx < len(visible) {
			p := visible[idx]
			m.confirm = &confirmState{
				prompt: fmt.Sprintf("Delete product %q?", p.Name),
				action: func() tea.Cmd {
					return m.mutate(ProductsView, "Product deleted.", func(ctx context.Context) (*api.Response, error) {
						return m.client.DeleteProduct(ctx, p.ID)
					})
				},
			}
		}
	}
	return m, nil
}

func (m Model) productForm(existing *api.Product) *formState {
	f := &formState{
		title: "New Product",
		fields: []formField{
			newField("name", "Name"),
			newField("sku", "SKU"),
			newField("category", "Category"),
			newField("price", "Price"),
			newField("stock_quantity", "Stock quantity"),
			newField("low_stock_threshold", "Low stock threshold"),
		},
	}
	if existing != nil {
		f.title = "Edit Product"
		setField(f, "name", existing.Name)
		setField(f, "sku", existing.SKU)
		setField(f, "category", existing.Category)
		setField(f, "price", fmt.Sprintf("%g", existing.Price.Float()))
		setField(f, "stock_quantity", fmt.Sprintf("%d", int(existing.StockQuantity.Float())))
		setField(f, "low_stock_threshold", fmt.Sprintf("%d", int(existing.LowStockThreshold.Float())))
	}

	client := m.client
	f.submit = func(values map[string]string) tea.Cmd {
		input := api.ProductInput{
			Name:              values["name"],
			SKU:               values["sku"],
			Category:          values["category"],
			Price:             parseFloatOrZero(values["price"]),
			StockQuantity:     atoiOrZero(values["stock_quantity"]),
			LowStockThreshold: atoiOrZero(values["low_stock_threshold"]),
			IsActive:          true,
		}
		if existing == nil {
			return m.mutate(ProductsView, "Product created.", func(ctx context.Context) (*api.Response, error) {
				return client.CreateProduct(ctx, input)
			})
		}
		id := existing.ID
		input.IsActive = existing.IsActive
		return m.mutate(ProductsView, "Product updated.", func(ctx context.Context) (*api.Response, error) {
			return client.UpdateProduct(ctx, id, input)
		})
	}
	return f
}

func (m Model) renderProducts() string {
	s := m.styles
	summary := summarizeProducts(m.products.Records())

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statCard("Products", fmt.Sprintf("%d", summary.Total)),
		m.statCard("Active", fmt.Sprintf("%d", summary.Active)),
		m.statCard("Low Stock", fmt.Sprintf("%d", summary.LowStock)),
		m.statCard("Stock Value", stats.FormatINR(summary.Value)),
	)

	visible := m.visibleProducts()
	lo, hi := m.pager.GetSliceBounds(len(visible))

	table := m.newPageTable(
		[]string{"Name", "SKU", "Category", "Price", "Stock"},
		[]int{28, 14, 14, 14, 10},
	)
	for _, p := range visible[lo:hi] {
		stock := fmt.Sprintf("%d", int(p.StockQuantity.Float()))
		if p.LowStock() {
			stock = s.Warning.Render(stock + " !")
		}
		table.Rows = append(table.Rows, []string{
			p.Name, p.SKU, p.Category,
			stats.FormatINR(p.Price.Float()),
			stock,
		})
	}

	footer := m.pager.View()
	if category := m.products.Filter("category"); category != "" {
		footer += "  category: " + category
	}
	if search := m.products.Search(); search != "" {
		footer += "  search: " + search
	}
	return m.pageLayout(cards, table, footer,
		"f category  n new  e edit  d delete  ←/→ pages  / search")
}
