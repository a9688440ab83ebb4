package listview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type row struct {
	ID     string
	Status string
}

// run executes a command synchronously and hands back the typed message.
func run[T any](t *testing.T, cmd func() interface{}) LoadedMsg[T] {
	t.Helper()
	msg, ok := cmd().(LoadedMsg[T])
	require.True(t, ok, "fetch command must produce a LoadedMsg")
	return msg
}

func TestController_LoadingClearsOnSuccessAndFailure(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := New("clients", func(ctx context.Context, q Query) ([]row, error) {
			return []row{{ID: "1"}}, nil
		})
		assert.False(t, c.Loading())

		cmd := c.Load()
		assert.True(t, c.Loading(), "loading must be set before the fetch settles")

		msg := run[row](t, func() interface{} { return cmd() })
		assert.True(t, c.Apply(msg))
		assert.False(t, c.Loading())
		assert.Len(t, c.Records(), 1)
		assert.NoError(t, c.Err())
	})

	t.Run("failure", func(t *testing.T) {
		c := New("clients", func(ctx context.Context, q Query) ([]row, error) {
			return nil, errors.New("backend down")
		})
		cmd := c.Load()
		assert.True(t, c.Loading())

		msg := run[row](t, func() interface{} { return cmd() })
		assert.True(t, c.Apply(msg))
		assert.False(t, c.Loading(), "loading must clear even when the fetch fails")
		assert.Error(t, c.Err())
		require.NotNil(t, c.Records(), "records must stay an array after failure")
		assert.Empty(t, c.Records())
	})
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	responses := map[int][]row{
		1: {{ID: "old"}},
		2: {{ID: "new"}},
	}
	call := 0
	c := New("clients", func(ctx context.Context, q Query) ([]row, error) {
		call++
		return responses[call], nil
	})

	first := c.Load()
	second := c.Load()

	// The newer response lands first.
	newMsg := run[row](t, func() interface{} { return second() })
	require.True(t, c.Apply(newMsg))
	require.Equal(t, "new", c.Records()[0].ID)

	// The stale response arrives late and must change nothing.
	oldMsg := run[row](t, func() interface{} { return first() })
	assert.False(t, c.Apply(oldMsg), "superseded generation must be discarded")
	assert.Equal(t, "new", c.Records()[0].ID)
	assert.False(t, c.Loading())
}

func TestController_SupersededFetchIsCancelled(t *testing.T) {
	var firstCtx context.Context
	c := New("clients", func(ctx context.Context, q Query) ([]row, error) {
		if firstCtx == nil {
			firstCtx = ctx
		}
		return nil, nil
	})

	first := c.Load()
	_ = run[row](t, func() interface{} { return first() })
	require.NotNil(t, firstCtx)
	select {
	case <-firstCtx.Done():
		t.Fatal("first context cancelled too early")
	default:
	}

	_ = c.Load()
	select {
	case <-firstCtx.Done():
	default:
		t.Fatal("superseding Load must cancel the previous request context")
	}

	c.Close()
}

func TestController_CloseCancelsInFlight(t *testing.T) {
	var gotCtx context.Context
	c := New("clients", func(ctx context.Context, q Query) ([]row, error) {
		gotCtx = ctx
		return nil, nil
	})
	cmd := c.Load()
	_ = run[row](t, func() interface{} { return cmd() })

	c.Close()
	select {
	case <-gotCtx.Done():
	default:
		t.Fatal("Close must cancel the in-flight context")
	}
}

func TestController_DeleteThenRefetchDropsRecord(t *testing.T) {
	backend := []row{{ID: "1"}, {ID: "2"}}
	c := New("clients", func(ctx context.Context, q Query) ([]row, error) {
		out := make([]row, len(backend))
		copy(out, backend)
		return out, nil
	})

	cmd := c.Load()
	require.True(t, c.Apply(run[row](t, func() interface{} { return cmd() })))
	require.Len(t, c.Records(), 2)

	// Mutation succeeds server-side; the flow refetches instead of
	// patching locally.
	backend = []row{{ID: "2"}}
	cmd = c.Load()
	require.True(t, c.Apply(run[row](t, func() interface{} { return cmd() })))

	require.Len(t, c.Records(), 1)
	for _, rec := range c.Records() {
		assert.NotEqual(t, "1", rec.ID)
	}
}

func TestController_QueryCarriesFilterState(t *testing.T) {
	var got Query
	c := New("clients", func(ctx context.Context, q Query) ([]row, error) {
		got = q
		return nil, nil
	})

	c.SetSearch("priya")
	c.SetFilter("status", "lead")
	c.SetPage(3)
	cmd := c.Load()
	_ = run[row](t, func() interface{} { return cmd() })

	assert.Equal(t, 3, got.Page)
	assert.Equal(t, "priya", got.Search)
	assert.Equal(t, "lead", got.Filter("status"))
	c.Close()
}

func TestController_SearchAndFilterResetPage(t *testing.T) {
	c := New("clients", func(ctx context.Context, q Query) ([]row, error) { return nil, nil })

	c.SetPage(4)
	c.SetSearch("ring")
	assert.Equal(t, 1, c.Page())

	c.SetPage(4)
	c.SetFilter("status", "vip")
	assert.Equal(t, 1, c.Page())

	// Unchanged values must not reset pagination.
	c.SetPage(4)
	c.SetSearch("ring")
	c.SetFilter("status", "vip")
	assert.Equal(t, 4, c.Page())
}

func TestController_VisibleDoesNotMutate(t *testing.T) {
	c := New("clients", func(ctx context.Context, q Query) ([]row, error) {
		return []row{{"1", "lead"}, {"2", "vip"}, {"3", "lead"}}, nil
	})
	cmd := c.Load()
	require.True(t, c.Apply(run[row](t, func() interface{} { return cmd() })))

	leads := c.Visible(func(r row) bool { return r.Status == "lead" })
	assert.Len(t, leads, 2)
	assert.Len(t, c.Records(), 3, "Visible must not mutate the canonical set")
	assert.Len(t, c.Visible(nil), 3)
}

func TestController_MessageForOtherControllerIgnored(t *testing.T) {
	clients := New("clients", func(ctx context.Context, q Query) ([]row, error) { return []row{{ID: "c"}}, nil })
	trash := New("trash", func(ctx context.Context, q Query) ([]row, error) { return []row{{ID: "t"}}, nil })

	clientsCmd := clients.Load()
	trashCmd := trash.Load()

	clientsMsg := run[row](t, func() interface{} { return clientsCmd() })
	trashMsg := run[row](t, func() interface{} { return trashCmd() })

	assert.False(t, clients.Apply(trashMsg), "controllers sharing a record type must route by name")
	assert.True(t, clients.Apply(clientsMsg))
	assert.True(t, trash.Apply(trashMsg))
	assert.Equal(t, "c", clients.Records()[0].ID)
	assert.Equal(t, "t", trash.Records()[0].ID)

	clients.Close()
	trash.Close()
}
