package pipeline

import (
	"bytes"
	"context"
	"log/slog"
)

// Worker processes a single conversion job.
type Worker struct {
	conv *Converter
	log  *slog.Logger
}

func NewWorker(conv *Converter, log *slog.Logger) *Worker {
	return &Worker{conv: conv, log: log}
}

// Process parses the job's file and renders it.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "trace_id", job.TraceID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	doc, err := w.conv.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail("parsing", err)
		return
	}
	rows := RowCount(doc)
	job.SetParsed(len(doc.Tables), rows)
	log.Info("parsed document", "tables", len(doc.Tables), "rows", rows)
	if len(doc.Tables) == 0 {
		// An empty register still renders as an empty page.
		log.Warn("no tables found")
		job.AddError("no tables found in " + job.Filename)
	}

	// Phase 2: Render
	job.SetStatus(StatusRendering, "rendering")
	html, took, err := w.conv.Render(ctx, doc)
	if err != nil {
		log.Error("render failed", "error", err)
		job.Fail("rendering", err)
		return
	}

	job.Complete(html, took)
	log.Info("conversion complete", "html_bytes", len(html), "duration_ms", took.Milliseconds())
}
