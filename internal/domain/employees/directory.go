package employees

import (
	"context"

	"corecrew/internal/platform/events"
	"corecrew/internal/platform/storage"
)

// Directory owns the employee collection.
type Directory struct {
	col    *storage.Collection[Employee]
	events events.Publisher
}

func Open(ctx context.Context, store *storage.Store, pub events.Publisher, seed func() []Employee) (*Directory, error) {
	if seed == nil {
		seed = func() []Employee { return []Employee{} }
	}
	col, err := storage.OpenCollection(ctx, store, CollectionKey, seed)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		pub = events.Discard{}
	}
	return &Directory{col: col, events: pub}, nil
}

func (d *Directory) List() []Employee {
	return d.col.Snapshot()
}

func (d *Directory) Get(id int) (Employee, error) {
	for _, e := range d.col.Snapshot() {
		if e.ID == id {
			return e, nil
		}
	}
	return Employee{}, ErrEmployeeNotFound
}

func (d *Directory) Add(ctx context.Context, in NewEmployee) (Employee, error) {
	if in.Status == "" {
		in.Status = StatusActive
	}
	if !ValidStatus(in.Status) {
		return Employee{}, ErrInvalidStatus
	}
	var created Employee
	err := d.col.Mutate(ctx, func(items []Employee) ([]Employee, error) {
		created = Employee{
			ID:         nextID(items),
			Name:       displayName(in),
			FirstName:  in.FirstName,
			LastName:   in.LastName,
			Email:      in.Email,
			Department: in.Department,
			Position:   in.Position,
			Status:     in.Status,
			JoinDate:   in.JoinDate,
			Phone:      in.Phone,
			Salary:     in.Salary,
			EmployeeID: in.EmployeeID,
			Address:    in.Address,
		}
		return append(items, created), nil
	}, func() {
		d.publish(ctx, events.ActionCreated, created)
	})
	if err != nil {
		return Employee{}, err
	}
	return created, nil
}

func (d *Directory) Update(ctx context.Context, id int, patch Patch) (Employee, error) {
	if patch.Status != nil && !ValidStatus(*patch.Status) {
		return Employee{}, ErrInvalidStatus
	}
	var updated Employee
	err := d.col.Mutate(ctx, func(items []Employee) ([]Employee, error) {
		idx := indexOf(items, id)
		if idx < 0 {
			return nil, ErrEmployeeNotFound
		}
		items[idx] = patch.apply(items[idx])
		updated = items[idx]
		return items, nil
	}, func() {
		d.publish(ctx, events.ActionUpdated, updated)
	})
	if err != nil {
		return Employee{}, err
	}
	return updated, nil
}

func (d *Directory) Delete(ctx context.Context, id int) error {
	var removed Employee
	err := d.col.Mutate(ctx, func(items []Employee) ([]Employee, error) {
		idx := indexOf(items, id)
		if idx < 0 {
			return nil, ErrEmployeeNotFound
		}
		removed = items[idx]
		return append(items[:idx], items[idx+1:]...), nil
	}, func() {
		d.publish(ctx, events.ActionDeleted, removed)
	})
	if err != nil {
		return err
	}
	return nil
}

func (d *Directory) publish(ctx context.Context, action string, e Employee) {
	d.events.Publish(ctx, events.Event{
		Collection: CollectionKey,
		Action:     action,
		EntityID:   e.Key(),
		Summary:    e.Name,
	})
}
