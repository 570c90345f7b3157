package main

import (
	"context"
	"time"

	"github.com/example/desktop-calendar/internal/application"
	"github.com/example/desktop-calendar/internal/persistence"
)

// eventRepositoryAdapter bridges the application's event repository
// contract onto the persistence layer.
type eventRepositoryAdapter struct {
	repo persistence.EventRepository
}

func newEventRepositoryAdapter(repo persistence.EventRepository) *eventRepositoryAdapter {
	return &eventRepositoryAdapter{repo: repo}
}

func (a *eventRepositoryAdapter) CreateEvent(ctx context.Context, event application.Event) (application.Event, error) {
	created, err := a.repo.CreateEvent(ctx, toPersistenceEvent(event))
	if err != nil {
		return application.Event{}, err
	}
	return toApplicationEvent(created), nil
}

func (a *eventRepositoryAdapter) GetEvent(ctx context.Context, id int64) (application.Event, error) {
	event, err := a.repo.GetEvent(ctx, id)
	if err != nil {
		return application.Event{}, err
	}
	return toApplicationEvent(event), nil
}

func (a *eventRepositoryAdapter) UpdateEvent(ctx context.Context, event application.Event) error {
	return a.repo.UpdateEvent(ctx, toPersistenceEvent(event))
}

func (a *eventRepositoryAdapter) DeleteEvent(ctx context.Context, id int64) error {
	return a.repo.DeleteEvent(ctx, id)
}

func (a *eventRepositoryAdapter) ListEvents(ctx context.Context) ([]application.Event, error) {
	events, err := a.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return toApplicationEvents(events), nil
}

func (a *eventRepositoryAdapter) SearchEvents(ctx context.Context, query string) ([]application.Event, error) {
	events, err := a.repo.SearchEvents(ctx, query)
	if err != nil {
		return nil, err
	}
	return toApplicationEvents(events), nil
}

func (a *eventRepositoryAdapter) FindEventsInRange(ctx context.Context, start, end time.Time) ([]application.Event, error) {
	events, err := a.repo.FindEventsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return toApplicationEvents(events), nil
}

// categoryRepositoryAdapter bridges the application's category repository
// contract onto the persistence layer.
type categoryRepositoryAdapter struct {
	repo persistence.CategoryRepository
}

func newCategoryRepositoryAdapter(repo persistence.CategoryRepository) *categoryRepositoryAdapter {
	return &categoryRepositoryAdapter{repo: repo}
}

func (a *categoryRepositoryAdapter) CreateCategory(ctx context.Context, category application.Category) (application.Category, error) {
	created, err := a.repo.CreateCategory(ctx, persistence.Category{
		Name:     category.Name,
		Color:    category.Color,
		Icon:     category.Icon,
		IsSystem: category.IsSystem,
	})
	if err != nil {
		return application.Category{}, err
	}
	return toApplicationCategory(created), nil
}

func (a *categoryRepositoryAdapter) ListCategories(ctx context.Context) ([]application.Category, error) {
	categories, err := a.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]application.Category, 0, len(categories))
	for _, category := range categories {
		out = append(out, toApplicationCategory(category))
	}
	return out, nil
}

func (a *categoryRepositoryAdapter) DeleteCategory(ctx context.Context, id int64) error {
	return a.repo.DeleteCategory(ctx, id)
}

func toPersistenceEvent(event application.Event) persistence.Event {
	return persistence.Event{
		ID:                   event.ID,
		Title:                event.Title,
		Description:          event.Description,
		Location:             event.Location,
		Start:                event.Start,
		End:                  event.End,
		AllDay:               event.AllDay,
		Category:             event.Category,
		Color:                event.Color,
		RecurrenceRule:       event.RecurrenceRule,
		RecurrenceExceptions: event.RecurrenceExceptions,
		CreatedAt:            event.CreatedAt,
		UpdatedAt:            event.UpdatedAt,
	}
}

func toApplicationEvent(event persistence.Event) application.Event {
	return application.Event{
		ID:                   event.ID,
		Title:                event.Title,
		Description:          event.Description,
		Location:             event.Location,
		Start:                event.Start,
		End:                  event.End,
		AllDay:               event.AllDay,
		Category:             event.Category,
		Color:                event.Color,
		RecurrenceRule:       event.RecurrenceRule,
		RecurrenceExceptions: event.RecurrenceExceptions,
		CreatedAt:            event.CreatedAt,
		UpdatedAt:            event.UpdatedAt,
	}
}

func toApplicationEvents(events []persistence.Event) []application.Event {
	out := make([]application.Event, 0, len(events))
	for _, event := range events {
		out = append(out, toApplicationEvent(event))
	}
	return out
}

func toApplicationCategory(category persistence.Category) application.Category {
	return application.Category{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		IsSystem:  category.IsSystem,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
