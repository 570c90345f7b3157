// Package testfixtures provides deterministic event and category fixtures
// shared by application and persistence tests.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/desktop-calendar/internal/application"
	"github.com/example/desktop-calendar/internal/recurrence"
)

var (
	eventCounter    uint64
	categoryCounter uint64
)

var referenceTime = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// It is a Monday morning, which keeps weekly fixtures predictable.
func ReferenceTime() time.Time {
	return referenceTime
}

// EventFixture represents a deterministic event record that can be
// materialised for application, persistence or recurrence tests.
type EventFixture struct {
	ID         int64
	Title      string
	Start      time.Time
	End        time.Time
	AllDay     bool
	Category   *string
	Rule       string
	Exceptions []time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EventOption configures the generated event fixture.
type EventOption func(*EventFixture)

// NewEventFixture returns a deterministic event fixture with optional
// overrides. Consecutive fixtures start an hour apart and last one hour.
func NewEventFixture(opts ...EventOption) EventFixture {
	idx := atomic.AddUint64(&eventCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := EventFixture{
		ID:        int64(idx),
		Title:     fmt.Sprintf("Event %03d", idx),
		Start:     start,
		End:       start.Add(time.Hour),
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventTitle overrides the generated title.
func WithEventTitle(title string) EventOption {
	return func(f *EventFixture) {
		f.Title = title
	}
}

// WithEventStart moves the event, preserving its duration.
func WithEventStart(start time.Time) EventOption {
	return func(f *EventFixture) {
		duration := f.End.Sub(f.Start)
		f.Start = start
		f.End = start.Add(duration)
	}
}

// WithEventDuration adjusts the event's end relative to its start.
func WithEventDuration(d time.Duration) EventOption {
	return func(f *EventFixture) {
		f.End = f.Start.Add(d)
	}
}

// WithEventRule attaches a recurrence rule.
func WithEventRule(rule string) EventOption {
	return func(f *EventFixture) {
		f.Rule = rule
	}
}

// WithEventExceptions attaches exception dates.
func WithEventExceptions(exceptions ...time.Time) EventOption {
	return func(f *EventFixture) {
		f.Exceptions = exceptions
	}
}

// WithEventAllDay marks the fixture as an all-day event.
func WithEventAllDay() EventOption {
	return func(f *EventFixture) {
		f.AllDay = true
	}
}

// WithEventCategory assigns a category name.
func WithEventCategory(name string) EventOption {
	return func(f *EventFixture) {
		f.Category = &name
	}
}

// ApplicationEvent converts the fixture into the application model.
func (f EventFixture) ApplicationEvent() application.Event {
	event := application.Event{
		ID:                   f.ID,
		Title:                f.Title,
		Start:                f.Start,
		End:                  f.End,
		AllDay:               f.AllDay,
		Category:             f.Category,
		RecurrenceExceptions: f.Exceptions,
		CreatedAt:            f.CreatedAt,
		UpdatedAt:            f.UpdatedAt,
	}
	if f.Rule != "" {
		rule := f.Rule
		event.RecurrenceRule = &rule
	}
	return event
}

// RecurrenceEvent converts the fixture into the expansion engine's model.
func (f EventFixture) RecurrenceEvent() recurrence.Event {
	id := f.ID
	created := f.CreatedAt
	updated := f.UpdatedAt
	return recurrence.Event{
		ID:         &id,
		Title:      f.Title,
		Start:      f.Start,
		End:        f.End,
		AllDay:     f.AllDay,
		Category:   f.Category,
		Rule:       f.Rule,
		Exceptions: f.Exceptions,
		CreatedAt:  &created,
		UpdatedAt:  &updated,
	}
}

// CategoryFixture represents a deterministic category record.
type CategoryFixture struct {
	ID       int64
	Name     string
	Color    string
	IsSystem bool
}

// CategoryOption configures the generated category fixture.
type CategoryOption func(*CategoryFixture)

// NewCategoryFixture returns a deterministic category fixture with optional
// overrides.
func NewCategoryFixture(opts ...CategoryOption) CategoryFixture {
	idx := atomic.AddUint64(&categoryCounter, 1)
	fixture := CategoryFixture{
		ID:    int64(idx),
		Name:  fmt.Sprintf("Category %03d", idx),
		Color: "#3B82F6",
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithCategoryName overrides the generated name.
func WithCategoryName(name string) CategoryOption {
	return func(f *CategoryFixture) {
		f.Name = name
	}
}

// WithCategorySystem marks the fixture as a built-in category.
func WithCategorySystem() CategoryOption {
	return func(f *CategoryFixture) {
		f.IsSystem = true
	}
}

// ApplicationCategory converts the fixture into the application model.
func (f CategoryFixture) ApplicationCategory() application.Category {
	return application.Category{
		ID:       f.ID,
		Name:     f.Name,
		Color:    f.Color,
		IsSystem: f.IsSystem,
	}
}
