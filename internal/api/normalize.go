package api

import (
	"encoding/json"
	"fmt"
)

// Records coerces a list payload into a flat sequence of raw records.
// Backends answer list endpoints in one of three shapes: a bare array,
// a paginated {"results": [...]} object, or a {"data": [...]} object.
// Anything else — null, a scalar, an object without a recognized key,
// or malformed input — yields an empty slice. Never nil, never an error.
func Records(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return []json.RawMessage{}
	}

	var direct []json.RawMessage
	if err := json.Unmarshal(raw, &direct); err == nil {
		if direct == nil {
			return []json.RawMessage{}
		}
		return direct
	}

	var wrapped struct {
		Results []json.RawMessage `json:"results"`
		Data    []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if wrapped.Results != nil {
			return wrapped.Results
		}
		if wrapped.Data != nil {
			return wrapped.Data
		}
	}

	return []json.RawMessage{}
}

// decodeData decodes a single-record payload. Unlike list payloads,
// a missing single record is an error the caller reports.
func decodeData(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("no data in response")
	}
	return json.Unmarshal(raw, v)
}

// DecodeList normalizes a list payload and decodes each record into T.
// Records that fail to decode are skipped so one malformed row cannot
// blank out an entire page.
func DecodeList[T any](raw json.RawMessage) []T {
	records := Records(raw)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := json.Unmarshal(rec, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
