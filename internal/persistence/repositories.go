package persistence

import (
	"context"
	"time"
)

// EventRepository stores calendar events.
type EventRepository interface {
	CreateEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, id int64) (Event, error)
	UpdateEvent(ctx context.Context, event Event) error
	DeleteEvent(ctx context.Context, id int64) error
	ListEvents(ctx context.Context) ([]Event, error)
	SearchEvents(ctx context.Context, query string) ([]Event, error)
	// FindEventsInRange returns every event whose own interval intersects
	// the window, plus every recurring event whose start precedes the
	// window end. Recurrence rules are not evaluated here; expansion is
	// the engine's job.
	FindEventsInRange(ctx context.Context, start, end time.Time) ([]Event, error)
}

// CategoryRepository stores event categories.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category Category) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
