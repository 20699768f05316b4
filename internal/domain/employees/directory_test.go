package employees

import (
	"context"
	"errors"
	"sync"
	"testing"

	"corecrew/internal/platform/events"
	"corecrew/internal/platform/storage"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func openEmpty(t *testing.T) (*Directory, *storage.Store, *recorder) {
	t.Helper()
	store := storage.New(storage.NewMemoryKV())
	rec := &recorder{}
	dir, err := Open(context.Background(), store, rec, nil)
	if err != nil {
		t.Fatalf("open directory: %v", err)
	}
	return dir, store, rec
}

func strPtr(v string) *string { return &v }

func TestAddToEmptyDirectory(t *testing.T) {
	dir, _, rec := openEmpty(t)
	emp, err := dir.Add(context.Background(), NewEmployee{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com",
		Department: "Eng", Position: "Engineer", JoinDate: "2024-01-01", Status: StatusActive,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if emp.ID != 1 || emp.Name != "Ada Lovelace" {
		t.Fatalf("expected id 1 named Ada Lovelace, got %+v", emp)
	}
	if len(rec.events) != 1 || rec.events[0].Action != events.ActionCreated || rec.events[0].EntityID != "1" {
		t.Fatalf("expected created event, got %+v", rec.events)
	}
}

func TestAddAssignsMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	store := storage.New(storage.NewMemoryKV())
	dir, err := Open(ctx, store, nil, Seed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := dir.Delete(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	seen := map[int]bool{}
	for i := 0; i < 3; i++ {
		before := 0
		for _, e := range dir.List() {
			if e.ID > before {
				before = e.ID
			}
		}
		emp, err := dir.Add(ctx, NewEmployee{FirstName: "New", LastName: "Hire"})
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if emp.ID != before+1 {
			t.Fatalf("expected id %d, got %d", before+1, emp.ID)
		}
		if seen[emp.ID] {
			t.Fatalf("duplicate id %d", emp.ID)
		}
		seen[emp.ID] = true
		if emp.Status != StatusActive {
			t.Fatalf("expected default status Active, got %q", emp.Status)
		}
	}
}

func TestAddKeepsSuppliedNameWhenPartMissing(t *testing.T) {
	dir, _, _ := openEmpty(t)
	emp, err := dir.Add(context.Background(), NewEmployee{Name: "Cher", FirstName: "Cher"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if emp.Name != "Cher" {
		t.Fatalf("expected supplied name, got %q", emp.Name)
	}
	emp, err = dir.Add(context.Background(), NewEmployee{Name: "ignored", FirstName: "Grace", LastName: "Hopper"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if emp.Name != "Grace Hopper" {
		t.Fatalf("expected derived name, got %q", emp.Name)
	}
}

func TestAddAllowsDuplicateEmails(t *testing.T) {
	dir, _, _ := openEmpty(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := dir.Add(ctx, NewEmployee{FirstName: "Sam", LastName: "Lee", Email: "sam@x.com"}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if len(dir.List()) != 2 {
		t.Fatalf("expected two employees, got %d", len(dir.List()))
	}
}

func TestAddRejectsUnknownStatus(t *testing.T) {
	dir, _, _ := openEmpty(t)
	if _, err := dir.Add(context.Background(), NewEmployee{FirstName: "A", LastName: "B", Status: "Retired"}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateRecomputesNameWhenBothPartsGiven(t *testing.T) {
	ctx := context.Background()
	dir, err := Open(ctx, storage.New(storage.NewMemoryKV()), nil, Seed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	before, _ := dir.Get(3)
	updated, err := dir.Update(ctx, 3, Patch{FirstName: strPtr("Mike"), LastName: strPtr("Chen-Smith")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Mike Chen-Smith" {
		t.Fatalf("expected recomputed name, got %q", updated.Name)
	}
	if updated.Email != before.Email || updated.Department != before.Department || updated.Status != before.Status || updated.JoinDate != before.JoinDate {
		t.Fatalf("expected other fields untouched, got %+v", updated)
	}
}

func TestUpdateKeepsNameWhenOnlyOnePartGiven(t *testing.T) {
	ctx := context.Background()
	dir, _ := Open(ctx, storage.New(storage.NewMemoryKV()), nil, Seed)
	updated, err := dir.Update(ctx, 1, Patch{LastName: strPtr("Dough"), Position: strPtr("Staff Engineer")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "John Doe" || updated.LastName != "Dough" || updated.Position != "Staff Engineer" {
		t.Fatalf("unexpected update result %+v", updated)
	}
}

func TestUpdateAndDeleteUnknownID(t *testing.T) {
	ctx := context.Background()
	dir, _ := Open(ctx, storage.New(storage.NewMemoryKV()), nil, Seed)
	if _, err := dir.Update(ctx, 99, Patch{Email: strPtr("x@y.z")}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound on update, got %v", err)
	}
	if err := dir.Delete(ctx, 99); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound on delete, got %v", err)
	}
	if _, err := dir.Get(99); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound on get, got %v", err)
	}
	if len(dir.List()) != 3 {
		t.Fatalf("expected collection unchanged, got %d", len(dir.List()))
	}
}

func TestChangesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	dir, store, _ := openEmpty(t)
	_, _ = dir.Add(ctx, NewEmployee{FirstName: "Grace", LastName: "Hopper", Department: "Eng"})
	_, _ = dir.Add(ctx, NewEmployee{FirstName: "Alan", LastName: "Turing", Department: "Research"})
	_ = dir.Delete(ctx, 1)

	reopened, err := Open(ctx, store, nil, Seed)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	list := reopened.List()
	if len(list) != 1 || list[0].Name != "Alan Turing" || list[0].ID != 2 {
		t.Fatalf("expected persisted state, got %+v", list)
	}
}

func TestSeedStatuses(t *testing.T) {
	for _, e := range Seed() {
		if !ValidStatus(e.Status) {
			t.Fatalf("seed employee %d has invalid status %q", e.ID, e.Status)
		}
		if e.Name != FullName(e.FirstName, e.LastName) {
			t.Fatalf("seed employee %d name mismatch", e.ID)
		}
	}
}
