package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// Response is the canonical result of a backend call. Two backend
// conventions are in play: some endpoints answer with an explicit
// {success, data, message} envelope, others with a bare JSON value.
// Both arrive here the same way — callers read Data (or Blob) and
// Success without caring which convention the endpoint used.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`

	// Raw is the full parsed body, for endpoints that put fields next
	// to the envelope instead of inside data (login does this).
	Raw json.RawMessage `json:"-"`

	// Blob holds binary payloads (CSV exports and the like). When set,
	// Data is empty and no JSON parsing was attempted.
	Blob     []byte `json:"-"`
	Filename string `json:"-"`
}

// IsBlob reports whether the response carried a binary attachment.
func (r *Response) IsBlob() bool { return r.Blob != nil }

// StatusError is a non-2xx HTTP response. The 401 case additionally
// clears the session before this error is returned.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: status %d", e.Code)
	}
	return fmt.Sprintf("api: status %d: %s", e.Code, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// parseBody turns a response body into a canonical Response. Malformed
// JSON is swallowed: the result carries no data rather than an error.
// Only transport failures and bad statuses are errors in this package.
func parseBody(body []byte) *Response {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return &Response{Success: true}
	}
	if !json.Valid([]byte(trimmed)) {
		return &Response{Success: true}
	}

	raw := json.RawMessage(trimmed)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err == nil {
		if _, hasEnvelope := probe["success"]; hasEnvelope {
			resp := &Response{Raw: raw}
			_ = json.Unmarshal(probe["success"], &resp.Success)
			_ = json.Unmarshal(probe["message"], &resp.Message)
			resp.Data = probe["data"]
			return resp
		}
	}

	// Bare value: wrap it so callers always read Data.
	return &Response{Success: true, Data: raw, Raw: raw}
}

// Binary content types the backend uses for file downloads.
var blobContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/octet-stream": true,
}

// isAttachment reports whether the response headers describe a file
// download rather than a JSON body.
func isAttachment(header http.Header) bool {
	if cd := header.Get("Content-Disposition"); cd != "" {
		if strings.Contains(strings.ToLower(cd), "attachment") {
			return true
		}
	}
	ct := header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}
	return blobContentTypes[mediaType]
}

// attachmentFilename extracts the filename from a Content-Disposition
// header, or "" when absent.
func attachmentFilename(header http.Header) string {
	cd := header.Get("Content-Disposition")
	if cd == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(cd); err == nil {
		return params["filename"]
	}
	return ""
}
