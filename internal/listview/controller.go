// Package listview implements the fetch-filter-paginate cycle every
// page shares: one controller per entity list, a generation counter so
// late responses from superseded requests never clobber newer state,
// and an always-array record set that derived statistics can fold over
// without nil checks.
package listview

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"karat/internal/logging"
)

// Query carries the inputs of one fetch. Which of these travel to the
// server and which stay client-side is the page's decision; the
// controller just hands them to the fetch function.
type Query struct {
	Page    int
	Search  string
	Filters map[string]string
}

// Filter returns a named filter value, or "".
func (q Query) Filter(key string) string { return q.Filters[key] }

// FetchFunc loads one page worth of records. The context is cancelled
// when a newer fetch supersedes this one or the page closes.
type FetchFunc[T any] func(ctx context.Context, q Query) ([]T, error)

// LoadedMsg is delivered to the program when a fetch settles. It is
// tagged with the controller name and the generation that issued it so
// Apply can route and discard correctly.
type LoadedMsg[T any] struct {
	Name    string
	Gen     uint64
	Records []T
	Err     error
}

// Controller owns one page's list state. All methods must be called
// from the bubbletea update loop; only the fetch itself runs
// concurrently, and it touches nothing but its own arguments.
type Controller[T any] struct {
	name  string
	fetch FetchFunc[T]

	records []T
	loading bool
	lastErr error

	page    int
	search  string
	filters map[string]string

	gen    uint64
	cancel context.CancelFunc
}

// New creates a controller. The name distinguishes controllers that
// share a record type (clients and trash both hold customers).
func New[T any](name string, fetch FetchFunc[T]) *Controller[T] {
	return &Controller[T]{
		name:    name,
		fetch:   fetch,
		records: []T{},
		page:    1,
		filters: map[string]string{},
	}
}

// Records returns the canonical record set. Always a slice, never nil:
// every derived computation relies on that.
func (c *Controller[T]) Records() []T { return c.records }

// Loading reports whether a fetch for the current generation is in
// flight.
func (c *Controller[T]) Loading() bool { return c.loading }

// Err returns the error of the last settled fetch, or nil.
func (c *Controller[T]) Err() error { return c.lastErr }

// Page returns the current 1-based page.
func (c *Controller[T]) Page() int { return c.page }

// Search returns the current search term.
func (c *Controller[T]) Search() string { return c.search }

// Filter returns a named filter value, or "".
func (c *Controller[T]) Filter(key string) string { return c.filters[key] }

// SetPage moves to a page (clamped to 1). Callers follow with Load.
func (c *Controller[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.page = page
}

// NextPage advances one page.
func (c *Controller[T]) NextPage() { c.page++ }

// PrevPage goes back one page, stopping at 1.
func (c *Controller[T]) PrevPage() { c.SetPage(c.page - 1) }

// SetSearch replaces the search term and resets to page 1.
func (c *Controller[T]) SetSearch(term string) {
	if term == c.search {
		return
	}
	c.search = term
	c.page = 1
}

// SetFilter replaces a named filter and resets to page 1.
func (c *Controller[T]) SetFilter(key, value string) {
	if c.filters[key] == value {
		return
	}
	c.filters[key] = value
	c.page = 1
}

// Load starts a fetch for the current query. Any in-flight fetch is
// cancelled and its eventual response discarded: last write wins.
func (c *Controller[T]) Load() tea.Cmd {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.gen++
	c.loading = true

	gen := c.gen
	name := c.name
	fetch := c.fetch
	q := Query{
		Page:    c.page,
		Search:  c.search,
		Filters: cloneFilters(c.filters),
	}

	logging.ViewDebug("%s: fetch gen=%d page=%d search=%q", name, gen, q.Page, q.Search)

	return func() tea.Msg {
		records, err := fetch(ctx, q)
		return LoadedMsg[T]{Name: name, Gen: gen, Records: records, Err: err}
	}
}

// Apply reconciles a settled fetch into controller state. Returns false
// for messages that belong to another controller or to a superseded
// generation; those must change nothing.
func (c *Controller[T]) Apply(msg LoadedMsg[T]) bool {
	if msg.Name != c.name || msg.Gen != c.gen {
		logging.ViewDebug("%s: discarding stale response gen=%d (current %d)", c.name, msg.Gen, c.gen)
		return false
	}

	c.loading = false
	if msg.Err != nil {
		// Degrade to an empty list; the page renders its empty state
		// and the error affordance, never a crash.
		logging.ViewError("%s: fetch failed: %v", c.name, msg.Err)
		c.lastErr = msg.Err
		c.records = []T{}
		return true
	}

	c.lastErr = nil
	if msg.Records == nil {
		c.records = []T{}
	} else {
		c.records = msg.Records
	}
	logging.View("%s: loaded %d records (gen=%d)", c.name, len(c.records), msg.Gen)
	return true
}

// Visible returns the records passing pred, leaving the canonical set
// untouched. This is the client-side filtering path.
func (c *Controller[T]) Visible(pred func(T) bool) []T {
	if pred == nil {
		return c.records
	}
	out := make([]T, 0, len(c.records))
	for _, rec := range c.records {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Close cancels any in-flight fetch. Call when the page unmounts.
func (c *Controller[T]) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func cloneFilters(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
