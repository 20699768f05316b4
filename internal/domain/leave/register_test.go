package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"corecrew/internal/platform/storage"
)

var fixedNow = time.Date(2024, 1, 20, 8, 0, 0, 0, time.UTC)

func openRegister(t *testing.T, seed func() []Request) (*Register, *storage.Store) {
	t.Helper()
	store := storage.New(storage.NewMemoryKV())
	r, err := Open(context.Background(), store, nil, seed, WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("open register: %v", err)
	}
	return r, store
}

func TestSubmitComputesInclusiveDays(t *testing.T) {
	r, _ := openRegister(t, Seed)
	req, err := r.Submit(context.Background(), NewRequest{
		EmployeeID: 3, EmployeeName: "Mike Chen", LeaveType: TypePersonal,
		StartDate: "2024-02-05", EndDate: "2024-02-09", Reason: "Moving house",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.ID != 3 || req.Days != 5 || req.Status != StatusPending || !req.CreatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected request %+v", req)
	}
	if r.PendingCount() != 2 {
		t.Fatalf("expected two pending requests, got %d", r.PendingCount())
	}
}

func TestSubmitRejectsBadRange(t *testing.T) {
	r, _ := openRegister(t, nil)
	_, err := r.Submit(context.Background(), NewRequest{StartDate: "2024-02-09", EndDate: "2024-02-05"})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if len(r.List()) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(r.List()))
	}
}

func TestApproveOnlyFromPending(t *testing.T) {
	ctx := context.Background()
	r, _ := openRegister(t, Seed)

	approved, err := r.Approve(ctx, 1)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != StatusApproved || approved.DecidedAt != "2024-01-20" {
		t.Fatalf("unexpected approval %+v", approved)
	}
	if _, err := r.Reject(ctx, 1); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := r.Approve(ctx, 2); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for approved seed, got %v", err)
	}
	if _, err := r.Approve(ctx, 99); !errors.Is(err, ErrLeaveRequestNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if r.PendingCount() != 0 {
		t.Fatalf("expected no pending requests, got %d", r.PendingCount())
	}
}

func TestListForEmployeeAndReopen(t *testing.T) {
	ctx := context.Background()
	r, store := openRegister(t, Seed)
	if _, err := r.Reject(ctx, 1); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got := r.ListForEmployee(1); len(got) != 1 || got[0].Status != StatusRejected {
		t.Fatalf("unexpected employee requests %+v", got)
	}
	if got := r.ListForEmployee(42); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}

	reopened, err := Open(ctx, store, nil, Seed)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	req, err := reopened.Get(1)
	if err != nil || req.Status != StatusRejected {
		t.Fatalf("expected persisted rejection, got %+v, %v", req, err)
	}
}
