package api

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every input must produce an array; the recognized shapes must keep
// their records in order.
func TestRecords_Totality(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty array", `[]`, []string{}},
		{"bare array", `[{"id":1},{"id":2}]`, []string{`{"id":1}`, `{"id":2}`}},
		{"results wrapper", `{"results":[{"id":1}]}`, []string{`{"id":1}`}},
		{"data wrapper", `{"data":[{"id":1}]}`, []string{`{"id":1}`}},
		{"empty object", `{}`, []string{}},
		{"null", `null`, []string{}},
		{"number", `42`, []string{}},
		{"string", `"string"`, []string{}},
		{"results not an array", `{"results":{"id":1}}`, []string{}},
		{"malformed", `{"results": [`, []string{}},
		{"nothing at all", ``, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Records(json.RawMessage(tc.input))
			require.NotNil(t, got, "Records must always return a slice")

			gotStrs := make([]string, len(got))
			for i, r := range got {
				gotStrs[i] = string(r)
			}
			if diff := cmp.Diff(tc.want, gotStrs); diff != "" {
				t.Errorf("Records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecords_PrefersResultsOverData(t *testing.T) {
	got := Records(json.RawMessage(`{"results":[{"id":1}],"data":[{"id":9}]}`))
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"id":1}`, string(got[0]))
}

func TestDecodeList_SkipsMalformedRecords(t *testing.T) {
	raw := json.RawMessage(`{"results":[{"id":1,"first_name":"Priya"},"not-an-object",{"id":2}]}`)

	customers := DecodeList[Customer](raw)
	require.Len(t, customers, 2)
	assert.Equal(t, "Priya", customers[0].FirstName)
	assert.Equal(t, ID("2"), customers[1].ID)
}

func TestDecodeList_HeterogeneousShapesAgree(t *testing.T) {
	record := `{"id":7,"first_name":"Anika","status":"vip"}`
	shapes := []string{
		`[` + record + `]`,
		`{"results":[` + record + `]}`,
		`{"data":[` + record + `]}`,
	}

	for _, shape := range shapes {
		customers := DecodeList[Customer](json.RawMessage(shape))
		require.Len(t, customers, 1, "shape: %s", shape)
		assert.Equal(t, "Anika", customers[0].FirstName)
		assert.Equal(t, CustomerStatusVIP, customers[0].Status)
	}
}
