package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/content-calendar/internal/rendering"
	"github.com/jonathan/content-calendar/internal/strategy"
	"github.com/jonathan/content-calendar/internal/types"
	"go.uber.org/zap"
)

// PromptResponse represents the response for /prompt
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// handleStrategy generates a content strategy for the submitted form
func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	form, err := s.decodeForm(w, r, true)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	result, err := s.generate(r.Context(), form)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleRenderStrategy generates a strategy and returns it as a document.
// The format is checked before the generation call is made.
func (s *Server) handleRenderStrategy(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "markdown"
	}
	switch format {
	case "markdown", "html", "csv", "json":
	default:
		s.failure(w, r, &ErrUnsupportedFormat{Format: format})
		return
	}

	form, err := s.decodeForm(w, r, true)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	result, err := s.generate(r.Context(), form)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	var (
		body        []byte
		contentType string
	)
	switch format {
	case "markdown":
		body, contentType = []byte(rendering.RenderMarkdown(result)), "text/markdown; charset=utf-8"
	case "html":
		body, err = rendering.RenderHTML(result)
		contentType = "text/html; charset=utf-8"
	case "csv":
		var buf bytes.Buffer
		err = rendering.WriteCalendarCSV(&buf, result.Calendar)
		body, contentType = buf.Bytes(), "text/csv; charset=utf-8"
		w.Header().Set("Content-Disposition", `attachment; filename="content-calendar.csv"`)
	case "json":
		s.jsonResponse(w, http.StatusOK, result)
		return
	}
	if err != nil {
		s.failure(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

// handleStrategyStream generates a strategy and reports progress as Server-Sent Events.
// Body errors are plain JSON responses; failures after the stream opens arrive as an error event.
func (s *Server) handleStrategyStream(w http.ResponseWriter, r *http.Request) {
	form, err := s.decodeForm(w, r, true)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if errors.Is(err, ErrStreamingUnsupported) {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err != nil {
		// headers are already on the wire
		s.logger.Warn("stream flush failed", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
		return
	}

	requestID := RequestID(r.Context())
	if err := sse.WriteStatus("generating"); err != nil {
		s.logger.Warn("client left before generation", zap.String("request_id", requestID), zap.Error(err))
		return
	}

	result, err := s.generate(r.Context(), form)
	if err != nil {
		s.logger.Error("streamed request failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = sse.WriteError(HTTPStatus(err), PublicMessage(err))
		_ = sse.WriteComplete(requestID, StreamFailed)
		return
	}

	if err := sse.WriteEvent(EventStrategy, result); err != nil {
		s.logger.Warn("failed to write strategy event", zap.String("request_id", requestID), zap.Error(err))
		return
	}
	_ = sse.WriteComplete(requestID, StreamCompleted)
}

// handlePrompt returns the prompt that would be sent for the form, without calling the service
func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	form, err := s.decodeForm(w, r, false)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, PromptResponse{Prompt: strategy.BuildPrompt(form)})
}

// handleSchema returns the JSON Schema every strategy response is validated against
func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, strategy.JSONSchema())
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) generate(ctx context.Context, form types.FormState) (*types.ContentStrategy, error) {
	ctx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()
	return s.generator.Generate(ctx, form)
}

// decodeForm reads a single FormState JSON object from the body.
// Unknown fields and trailing data are rejected. When required is set the
// brand and content parameters must be non-empty.
func (s *Server) decodeForm(w http.ResponseWriter, r *http.Request, required bool) (types.FormState, error) {
	var form types.FormState

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&form); err != nil {
		return form, &ErrValidation{Field: "body", Message: "Invalid request body: " + err.Error()}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return form, &ErrValidation{Field: "body", Message: "Invalid request body: unexpected data after JSON object"}
	}

	if !required {
		return form, nil
	}
	if err := form.Validate(); err != nil {
		return form, validationError(err)
	}
	return form, nil
}

// validationError reports the first failed FormState field by its JSON name
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}

	fe := fieldErrs[0]
	name := jsonFieldName(fe.StructField())
	message := fmt.Sprintf("%s is invalid", name)
	if fe.Tag() == "required" {
		message = fmt.Sprintf("%s is required", name)
	}
	return &ErrValidation{Field: name, Message: message}
}

func jsonFieldName(structField string) string {
	field, ok := reflect.TypeOf(types.FormState{}).FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" {
		return structField
	}
	return name
}
