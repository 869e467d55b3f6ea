package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// SSE event names used by POST /strategy/stream
const (
	EventStatus   = "status"
	EventStrategy = "strategy"
	EventError    = "error"
	EventComplete = "complete"
)

// Stream outcomes carried by the complete event
const (
	StreamCompleted = "completed"
	StreamFailed    = "failed"
)

// StatusEvent reports which stage the request has reached
type StatusEvent struct {
	Stage string `json:"stage"`
}

// ErrorEvent carries the status and client-safe message a plain request would have returned
type ErrorEvent struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// CompleteEvent closes every stream
type CompleteEvent struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// ErrStreamingUnsupported is returned before any header is written
var ErrStreamingUnsupported = errors.New("streaming not supported: response writer cannot flush")

// SSEWriter writes Server-Sent Events, flushing after each one.
// Events are numbered from 1 so clients can tell whether they missed any.
type SSEWriter struct {
	w    http.ResponseWriter
	rc   *http.ResponseController
	next int
}

// NewSSEWriter sends the stream headers. It fails without writing anything when
// the writer cannot flush, so the caller can still send a plain error response.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	if !canFlush(w) {
		return nil, ErrStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		return nil, fmt.Errorf("streaming not supported: %w", err)
	}
	return &SSEWriter{w: w, rc: rc, next: 1}, nil
}

// WriteEvent sends one event with data encoded as a single JSON line
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}

	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.next, event, payload); err != nil {
		return err
	}
	s.next++
	return s.rc.Flush()
}

// WriteStatus sends a progress event
func (s *SSEWriter) WriteStatus(stage string) error {
	return s.WriteEvent(EventStatus, StatusEvent{Stage: stage})
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(status int, message string) error {
	return s.WriteEvent(EventError, ErrorEvent{Status: status, Error: message})
}

// WriteComplete sends the final event
func (s *SSEWriter) WriteComplete(requestID, outcome string) error {
	return s.WriteEvent(EventComplete, CompleteEvent{RequestID: requestID, Status: outcome})
}

// canFlush follows Unwrap the same way http.ResponseController does
func canFlush(w http.ResponseWriter) bool {
	for {
		switch t := w.(type) {
		case http.Flusher:
			return true
		case interface{ Unwrap() http.ResponseWriter }:
			w = t.Unwrap()
		default:
			return false
		}
	}
}
