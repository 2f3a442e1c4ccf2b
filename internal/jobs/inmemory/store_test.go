package inmemory

import (
	"context"
	"testing"

	"github.com/dvloznov/pennywise/internal/jobs"
)

func TestStoreSaveAndGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	job := &jobs.ExtractionJob{
		JobID:   "job-1",
		Message: "Spent 10 on coffee",
		Status:  jobs.JobStatusPending,
	}

	if err := store.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	got, err := store.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if got.Message != job.Message {
		t.Errorf("Message = %q, want %q", got.Message, job.Message)
	}

	// Mutating the returned copy must not affect the stored job.
	got.Status = jobs.JobStatusFailed
	again, _ := store.GetJob(ctx, "job-1")
	if again.Status != jobs.JobStatusPending {
		t.Errorf("stored job mutated through returned copy: %s", again.Status)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore()
	if _, err := store.GetJob(context.Background(), "nope"); err == nil {
		t.Error("expected error for unknown job ID")
	}
}

func TestStoreSaveRequiresID(t *testing.T) {
	store := NewStore()
	if err := store.SaveJob(context.Background(), &jobs.ExtractionJob{}); err == nil {
		t.Error("expected error for job without ID")
	}
}

func TestStoreListJobs(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for _, j := range []*jobs.ExtractionJob{
		{JobID: "a", Status: jobs.JobStatusPending},
		{JobID: "b", Status: jobs.JobStatusCompleted},
		{JobID: "c", Status: jobs.JobStatusCompleted},
	} {
		if err := store.SaveJob(ctx, j); err != nil {
			t.Fatalf("SaveJob(%s) failed: %v", j.JobID, err)
		}
	}

	completed, err := store.ListJobs(ctx, jobs.JobFilter{Status: jobs.JobStatusCompleted})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(completed) != 2 {
		t.Errorf("got %d completed jobs, want 2", len(completed))
	}

	limited, err := store.ListJobs(ctx, jobs.JobFilter{Limit: 1})
	if err != nil {
		t.Fatalf("ListJobs failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("got %d jobs with limit 1, want 1", len(limited))
	}
}
