// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// Sentinel errors for errors.Is checks at the boundary.
	ErrNotFound      = errors.New("catalog: resource not found")
	ErrForbidden     = errors.New("catalog: access forbidden")
	ErrRejected      = errors.New("catalog: request rejected")
	ErrUnavailable   = errors.New("catalog: host unreachable or transport failure")
	ErrUpstreamError = errors.New("catalog: internal error (5xx)")
	ErrBadResponse   = errors.New("catalog: invalid response format or malformed data")
	ErrTimeout       = errors.New("catalog: request timed out")
)

// APIError wraps a sentinel with the failing operation and what the API said.
type APIError struct {
	Sentinel  error
	Operation string
	Status    int
	// Body is a bounded excerpt of the response body.
	Body string
	// Message is the API's own error text, when the body carried one.
	Message string
	Err     error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("catalog: %s: %v", e.Operation, e.Sentinel)
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	} else if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the sentinel and the transport error, so callers can
// test for context cancellation as well as the catalog class.
func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Sentinel}
	}
	return []error{e.Sentinel, e.Err}
}

// Detail is the text shown to users when a status write fails.
func (e *APIError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s (HTTP %d)", strings.TrimPrefix(e.Sentinel.Error(), "catalog: "), e.Status)
	}
	return strings.TrimPrefix(e.Sentinel.Error(), "catalog: ")
}

func statusSentinel(code int) error {
	switch {
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		return ErrTimeout
	case code >= 500:
		return ErrUpstreamError
	default:
		return ErrRejected
	}
}

// errorClass is the metrics label for err.
func errorClass(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrRejected):
		return "rejected"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrUpstreamError):
		return "upstream"
	case errors.Is(err, ErrBadResponse):
		return "bad_response"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	default:
		return "other"
	}
}

// countsAgainstBreaker reports whether err indicates an unhealthy catalog.
// Client-side rejections and caller cancellation do not.
func countsAgainstBreaker(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrUpstreamError) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrBadResponse)
}

// apiMessage pulls a human message out of common JSON error bodies:
// {"message":"..."}, {"error":"..."} or {"error":{"message":"..."}}.
func apiMessage(body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if m := strings.TrimSpace(payload.Message); m != "" {
		return m
	}
	if len(payload.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Error, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Error, &nested); err == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}

func excerpt(body []byte) string {
	const maxExcerpt = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxExcerpt {
		return strings.ToValidUTF8(s[:maxExcerpt], "") + "..."
	}
	return s
}
