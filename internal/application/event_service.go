package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/example/desktop-calendar/internal/overlap"
	"github.com/example/desktop-calendar/internal/persistence"
	"github.com/example/desktop-calendar/internal/recurrence"
)

// EventRepository captures the persistence interactions needed by the service.
type EventRepository interface {
	CreateEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, id int64) (Event, error)
	UpdateEvent(ctx context.Context, event Event) error
	DeleteEvent(ctx context.Context, id int64) error
	ListEvents(ctx context.Context) ([]Event, error)
	SearchEvents(ctx context.Context, query string) ([]Event, error)
	FindEventsInRange(ctx context.Context, start, end time.Time) ([]Event, error)
}

// RecurrenceExpander materializes occurrences of recurring events inside a
// window.
type RecurrenceExpander interface {
	Expand(events []recurrence.Event, rangeStart, rangeEnd time.Time) []recurrence.Event
}

// EventService orchestrates validation, persistence and recurrence
// expansion for event operations.
type EventService struct {
	events   EventRepository
	expander RecurrenceExpander
	logger   *slog.Logger
	now      func() time.Time
}

// NewEventService wires dependencies for event operations.
func NewEventService(events EventRepository, expander RecurrenceExpander, logger *slog.Logger, now func() time.Time) *EventService {
	if expander == nil {
		expander = recurrence.NewExpander(nil)
	}
	if now == nil {
		now = time.Now
	}
	return &EventService{
		events:   events,
		expander: expander,
		logger:   defaultLogger(logger),
		now:      now,
	}
}

// CreateEvent validates the input before delegating to persistence.
func (s *EventService) CreateEvent(ctx context.Context, input EventInput) (Event, error) {
	if s == nil {
		return Event{}, fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return Event{}, fmt.Errorf("event repository not configured")
	}

	logger := serviceLogger(ctx, s.logger, "event", "create")

	vErr := &ValidationError{}
	validateEventCore(input, vErr)
	if vErr.HasErrors() {
		logger.Warn("event validation failed", "fields", vErr.FieldErrors)
		return Event{}, vErr
	}

	event := Event{
		Title:                strings.TrimSpace(input.Title),
		Description:          input.Description,
		Location:             input.Location,
		Start:                input.Start,
		End:                  input.End,
		AllDay:               input.AllDay,
		Category:             input.Category,
		Color:                input.Color,
		RecurrenceRule:       input.RecurrenceRule,
		RecurrenceExceptions: input.RecurrenceExceptions,
	}

	created, err := s.events.CreateEvent(ctx, event)
	if err != nil {
		err = mapEventRepoError(err)
		logger.Error("event creation failed", "error", err, "error_kind", ErrorKind(err))
		return Event{}, err
	}

	logger.Info("event created", "event_id", created.ID, "recurring", created.IsRecurring())
	return created, nil
}

// GetEvent retrieves an event by id.
func (s *EventService) GetEvent(ctx context.Context, id int64) (Event, error) {
	if s == nil || s.events == nil {
		return Event{}, fmt.Errorf("event repository not configured")
	}

	event, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return Event{}, mapEventRepoError(err)
	}
	return event, nil
}

// UpdateEvent applies validation before updating persistence state.
func (s *EventService) UpdateEvent(ctx context.Context, id int64, input EventInput) (Event, error) {
	if s == nil {
		return Event{}, fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return Event{}, fmt.Errorf("event repository not configured")
	}

	logger := serviceLogger(ctx, s.logger, "event", "update", "event_id", id)

	existing, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return Event{}, mapEventRepoError(err)
	}

	vErr := &ValidationError{}
	validateEventCore(input, vErr)
	if vErr.HasErrors() {
		logger.Warn("event validation failed", "fields", vErr.FieldErrors)
		return Event{}, vErr
	}

	updated := existing
	updated.Title = strings.TrimSpace(input.Title)
	updated.Description = input.Description
	updated.Location = input.Location
	updated.Start = input.Start
	updated.End = input.End
	updated.AllDay = input.AllDay
	updated.Category = input.Category
	updated.Color = input.Color
	updated.RecurrenceRule = input.RecurrenceRule
	updated.RecurrenceExceptions = input.RecurrenceExceptions
	updated.UpdatedAt = s.now()

	if err := s.events.UpdateEvent(ctx, updated); err != nil {
		err = mapEventRepoError(err)
		logger.Error("event update failed", "error", err, "error_kind", ErrorKind(err))
		return Event{}, err
	}

	logger.Info("event updated")
	return updated, nil
}

// DeleteEvent removes an event by id.
func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	if s == nil || s.events == nil {
		return fmt.Errorf("event repository not configured")
	}

	logger := serviceLogger(ctx, s.logger, "event", "delete", "event_id", id)

	if err := s.events.DeleteEvent(ctx, id); err != nil {
		err = mapEventRepoError(err)
		logger.Error("event deletion failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.Info("event deleted")
	return nil
}

// ListEvents returns every stored base event. Recurrence rules are not
// expanded here; use Agenda for a rendered window.
func (s *EventService) ListEvents(ctx context.Context) ([]Event, error) {
	if s == nil || s.events == nil {
		return nil, fmt.Errorf("event repository not configured")
	}
	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, mapEventRepoError(err)
	}
	return events, nil
}

// SearchEvents returns base events matching the free-text query.
func (s *EventService) SearchEvents(ctx context.Context, query string) ([]Event, error) {
	if s == nil || s.events == nil {
		return nil, fmt.Errorf("event repository not configured")
	}
	events, err := s.events.SearchEvents(ctx, query)
	if err != nil {
		return nil, mapEventRepoError(err)
	}
	return events, nil
}

// Agenda fetches the events relevant to the window, expands recurring ones
// into occurrences and flags overlapping occurrences.
func (s *EventService) Agenda(ctx context.Context, params AgendaParams) (Agenda, error) {
	if s == nil {
		return Agenda{}, fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return Agenda{}, fmt.Errorf("event repository not configured")
	}

	logger := serviceLogger(ctx, s.logger, "event", "agenda")

	vErr := &ValidationError{}
	if params.Start.IsZero() {
		vErr.add("start", "start is required")
	}
	if params.End.IsZero() {
		vErr.add("end", "end is required")
	}
	if !params.Start.IsZero() && !params.End.IsZero() && params.End.Before(params.Start) {
		vErr.add("range", "end must not be before start")
	}
	if vErr.HasErrors() {
		return Agenda{}, vErr
	}

	events, err := s.events.FindEventsInRange(ctx, params.Start, params.End)
	if err != nil {
		err = mapEventRepoError(err)
		logger.Error("agenda fetch failed", "error", err, "error_kind", ErrorKind(err))
		return Agenda{}, err
	}

	occurrences := s.expandForWindow(events, params.Start, params.End)
	warnings := detectOverlaps(occurrences)

	logger.Info("agenda expanded",
		"base_events", len(events),
		"occurrences", len(occurrences),
		"warnings", len(warnings))

	return Agenda{Occurrences: occurrences, Warnings: warnings}, nil
}

// expandForWindow converts base events into engine inputs, runs expansion
// and converts the results back into occurrences keyed by their base event.
func (s *EventService) expandForWindow(events []Event, start, end time.Time) []Occurrence {
	bases := make(map[int64]Event, len(events))
	inputs := make([]recurrence.Event, 0, len(events))
	for _, event := range events {
		bases[event.ID] = event
		inputs = append(inputs, toRecurrenceEvent(event))
	}

	expanded := s.expander.Expand(inputs, start, end)

	occurrences := make([]Occurrence, 0, len(expanded))
	for _, instance := range expanded {
		occurrence := Occurrence{Start: instance.Start, End: instance.End}
		if instance.ID != nil {
			if base, ok := bases[*instance.ID]; ok {
				occurrence.Event = base
			}
		}
		occurrences = append(occurrences, occurrence)
	}
	return occurrences
}

func toRecurrenceEvent(event Event) recurrence.Event {
	id := event.ID
	rule := ""
	if event.RecurrenceRule != nil {
		rule = *event.RecurrenceRule
	}
	createdAt := event.CreatedAt
	updatedAt := event.UpdatedAt
	return recurrence.Event{
		ID:          &id,
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		Start:       event.Start,
		End:         event.End,
		AllDay:      event.AllDay,
		Category:    event.Category,
		Color:       event.Color,
		Rule:        rule,
		Exceptions:  event.RecurrenceExceptions,
		CreatedAt:   &createdAt,
		UpdatedAt:   &updatedAt,
	}
}

func detectOverlaps(occurrences []Occurrence) []OverlapWarning {
	if len(occurrences) <= 1 {
		return nil
	}

	intervals := make([]overlap.Interval, 0, len(occurrences))
	for _, occurrence := range occurrences {
		intervals = append(intervals, overlap.Interval{
			EventID: occurrence.Event.ID,
			Title:   occurrence.Event.Title,
			Start:   occurrence.Start,
			End:     occurrence.End,
		})
	}

	detected := overlap.Detect(intervals)
	if len(detected) == 0 {
		return nil
	}

	warnings := make([]OverlapWarning, 0, len(detected))
	for _, o := range detected {
		warnings = append(warnings, OverlapWarning{
			FirstEventID:  o.FirstEventID,
			SecondEventID: o.SecondEventID,
			FirstTitle:    o.FirstTitle,
			SecondTitle:   o.SecondTitle,
			Start:         o.Start,
			End:           o.End,
		})
	}
	return warnings
}

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func validateEventCore(input EventInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}

	if input.Start.IsZero() {
		vErr.add("start", "start is required")
	}
	if input.End.IsZero() {
		vErr.add("end", "end is required")
	}
	if !input.Start.IsZero() && !input.End.IsZero() && input.End.Before(input.Start) {
		vErr.add("time", "end must not be before start")
	}

	if input.Color != nil && *input.Color != "" && !hexColorPattern.MatchString(*input.Color) {
		vErr.add("color", "color must be a #RRGGBB hex value")
	}
}

func mapEventRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("event", "stored event violates a database constraint")
		return vErr
	}
	return err
}
