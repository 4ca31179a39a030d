package pipeline

import (
	"errors"
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("trace-1", "register.json", []byte("hello world"))

	if job.ID == "" {
		t.Fatal("expected job id")
	}
	if job.Status != StatusQueued {
		t.Errorf("expected status %q, got %q", StatusQueued, job.Status)
	}
	if job.TraceID != "trace-1" {
		t.Errorf("expected trace id %q, got %q", "trace-1", job.TraceID)
	}
	if job.ContentHash != ContentHashHex([]byte("hello world")) {
		t.Errorf("unexpected content hash %q", job.ContentHash)
	}
	if string(job.FileData()) != "hello world" {
		t.Errorf("expected file data to be kept, got %q", job.FileData())
	}

	other := NewJob("trace-2", "register.json", nil)
	if other.ID == job.ID {
		t.Errorf("expected distinct job ids, got %q twice", job.ID)
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusRendering, "rendering"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
		if job.Status.Done() {
			t.Errorf("expected %q not to be terminal", tr.status)
		}
	}
}

func TestJob_Complete(t *testing.T) {
	job := NewJob("", "a.json", []byte("data"))
	job.Complete("<html></html>", 1500*time.Millisecond)

	html, status := job.Result()
	if status != StatusCompleted {
		t.Fatalf("expected status %q, got %q", StatusCompleted, status)
	}
	if html != "<html></html>" {
		t.Errorf("expected stored html, got %q", html)
	}
	if job.FileData() != nil {
		t.Error("expected file data to be released on completion")
	}

	snap := job.Snapshot()
	if snap.Progress.HTMLBytes != len("<html></html>") {
		t.Errorf("expected html_bytes %d, got %d", len("<html></html>"), snap.Progress.HTMLBytes)
	}
	if snap.Progress.DurationMs != 1500 {
		t.Errorf("expected duration_ms 1500, got %d", snap.Progress.DurationMs)
	}
	if !snap.Status.Done() {
		t.Error("expected completed to be terminal")
	}
}

func TestJob_Fail(t *testing.T) {
	job := NewJob("", "a.json", []byte("data"))
	job.Fail("rendering", errors.New("table 0: table has no rows"))

	html, status := job.Result()
	if status != StatusFailed {
		t.Fatalf("expected status %q, got %q", StatusFailed, status)
	}
	if html != "" {
		t.Errorf("expected no html for failed job, got %q", html)
	}
	snap := job.Snapshot()
	if snap.Phase != "rendering" {
		t.Errorf("expected phase %q, got %q", "rendering", snap.Phase)
	}
	if len(snap.Progress.Errors) != 1 || snap.Progress.Errors[0] != "table 0: table has no rows" {
		t.Errorf("unexpected errors: %v", snap.Progress.Errors)
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("row 3 failed")
	job.AddError("row 7 failed")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "row 3 failed" {
		t.Errorf("expected first error %q, got %q", "row 3 failed", snap.Progress.Errors[0])
	}

	// Snapshots must not alias the job's error slice.
	snap.Progress.Errors[0] = "changed"
	if job.Snapshot().Progress.Errors[0] != "row 3 failed" {
		t.Error("expected snapshot errors to be a copy")
	}
}

func TestJob_SetParsed(t *testing.T) {
	job := &Job{ID: "parsed-test", UpdatedAt: time.Now()}
	job.SetParsed(3, 42)

	snap := job.Snapshot()
	if snap.Progress.Tables != 3 || snap.Progress.Rows != 42 {
		t.Errorf("expected 3 tables and 42 rows, got %+v", snap.Progress)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job, got %d", store.Len())
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	time.Sleep(100 * time.Millisecond)

	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	store.Cleanup()
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d", store.Len())
	}
}
