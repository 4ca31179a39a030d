package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/riskhtml/internal/document"
	"github.com/dgallion1/riskhtml/internal/parser"
	"github.com/dgallion1/riskhtml/internal/pipeline"
	"github.com/dgallion1/riskhtml/internal/register"
)

// layoutFilename selects the JSON layout parser for raw request bodies.
const layoutFilename = "request.json"

// handleConvert renders a layout JSON request body.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	log := s.log.With("trace_id", TraceID(r.Context()))
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	doc, err := s.orchestrator.Converter().Parse(r.Body, layoutFilename)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		log.Warn("decode failed", "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeConversion(w, r, log, doc)
}

// handleConvertFile renders an uploaded file synchronously.
func (s *Server) handleConvertFile(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	log := s.log.With("trace_id", TraceID(r.Context()), "filename", filename)

	doc, err := s.orchestrator.Converter().Parse(bytes.NewReader(data), filename)
	if err != nil {
		log.Warn("parse failed", "error", err)
		jsonError(w, err.Error(), conversionStatus(err))
		return
	}

	s.writeConversion(w, r, log, doc)
}

func (s *Server) writeConversion(w http.ResponseWriter, r *http.Request, log *slog.Logger, doc *document.Document) {
	html, took, err := s.orchestrator.Converter().Render(r.Context(), doc)
	if err != nil {
		log.Warn("conversion failed", "error", err)
		jsonError(w, err.Error(), conversionStatus(err))
		return
	}
	log.Info("converted document",
		"tables", len(doc.Tables),
		"rows", pipeline.RowCount(doc),
		"html_bytes", len(html),
		"duration_ms", took.Milliseconds(),
	)

	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"html":        html,
			"trace_id":    TraceID(r.Context()),
			"tables":      len(doc.Tables),
			"duration_ms": took.Milliseconds(),
		})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// conversionStatus maps a parse or render failure to an HTTP status.
func conversionStatus(err error) int {
	var convErr *register.ConvertError
	switch {
	case errors.As(err, &convErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, parser.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// readUpload reads the multipart "file" field. On failure it writes the
// error response and returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (filename string, data []byte, ok bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename = sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusUnsupportedMediaType)
		return "", nil, false
	}

	data, err = readLimited(file, s.cfg.MaxUploadBytes)
	if err != nil {
		jsonError(w, err.Error(), uploadErrorStatus(err))
		return "", nil, false
	}
	return filename, data, true
}
