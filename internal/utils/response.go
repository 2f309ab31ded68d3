// Package utils holds small HTTP helpers shared by the API handlers.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Content types understood by WriteResponse
const (
	ContentTypeJSON    = "application/json"
	ContentTypeMsgpack = "application/msgpack"
)

// WantsMsgpack reports whether the request asks for a MessagePack body
func WantsMsgpack(r *http.Request) bool {
	if r == nil {
		return false
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, ContentTypeMsgpack) || strings.Contains(accept, "application/x-msgpack")
}

// Encode serializes data as MessagePack or JSON.
// MessagePack reuses the json struct tags so both encodings share field names.
func Encode(data interface{}, asMsgpack bool) ([]byte, string, error) {
	var buf bytes.Buffer

	if asMsgpack {
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(data); err != nil {
			return nil, "", fmt.Errorf("failed to encode msgpack response: %w", err)
		}
		return buf.Bytes(), ContentTypeMsgpack, nil
	}

	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		return nil, "", fmt.Errorf("failed to encode JSON response: %w", err)
	}
	return buf.Bytes(), ContentTypeJSON, nil
}

// WriteResponse writes data with the encoding negotiated from the Accept header.
// Encoding happens before the status line is written, so a failure still
// produces a 500 instead of a truncated body.
func WriteResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) error {
	body, contentType, err := Encode(data, WantsMsgpack(r))
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// ErrorResponse is the body of every API error
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes an ErrorResponse with the given status
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) error {
	return WriteResponse(w, r, status, ErrorResponse{Error: message})
}
