package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/example/desktop-calendar/internal/persistence"
)

const eventColumns = `id, title, description, location, start_datetime, end_datetime,
	is_all_day, category, color, recurrence_rule, recurrence_exceptions,
	created_at, updated_at`

// EventRepository implements persistence.EventRepository using SQLite.
// Timestamps are stored as RFC 3339 text and exception lists as a JSON
// array of RFC 3339 strings, matching the on-disk format of existing
// calendar databases.
type EventRepository struct {
	pool *ConnectionPool
	now  func() time.Time
}

// NewEventRepository creates a SQLite-backed event repository.
func NewEventRepository(pool *ConnectionPool) *EventRepository {
	return &EventRepository{pool: pool, now: time.Now}
}

// CreateEvent inserts a new event and returns it with its assigned id
// and timestamps.
func (r *EventRepository) CreateEvent(ctx context.Context, event persistence.Event) (persistence.Event, error) {
	now := r.now()
	exceptions, err := encodeExceptions(event.RecurrenceExceptions)
	if err != nil {
		return persistence.Event{}, err
	}

	result, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO events (
			title, description, location, start_datetime, end_datetime,
			is_all_day, category, color, recurrence_rule, recurrence_exceptions,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.Title,
		nullString(event.Description),
		nullString(event.Location),
		formatTime(event.Start),
		formatTime(event.End),
		boolToInt(event.AllDay),
		nullString(event.Category),
		nullString(event.Color),
		nullString(event.RecurrenceRule),
		exceptions,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return persistence.Event{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Event{}, fmt.Errorf("failed to read inserted event id: %w", err)
	}

	event.ID = id
	event.CreatedAt = now
	event.UpdatedAt = now
	return event, nil
}

// GetEvent retrieves an event by id.
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (persistence.Event, error) {
	row := r.pool.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	event, err := scanEvent(row)
	if err != nil {
		return persistence.Event{}, mapError(err)
	}
	return event, nil
}

// UpdateEvent updates an existing event.
func (r *EventRepository) UpdateEvent(ctx context.Context, event persistence.Event) error {
	exceptions, err := encodeExceptions(event.RecurrenceExceptions)
	if err != nil {
		return err
	}

	result, err := r.pool.db.ExecContext(ctx, `
		UPDATE events SET
			title = ?, description = ?, location = ?, start_datetime = ?, end_datetime = ?,
			is_all_day = ?, category = ?, color = ?, recurrence_rule = ?,
			recurrence_exceptions = ?, updated_at = ?
		WHERE id = ?`,
		event.Title,
		nullString(event.Description),
		nullString(event.Location),
		formatTime(event.Start),
		formatTime(event.End),
		boolToInt(event.AllDay),
		nullString(event.Category),
		nullString(event.Color),
		nullString(event.RecurrenceRule),
		exceptions,
		formatTime(r.now()),
		event.ID,
	)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event by id.
func (r *EventRepository) DeleteEvent(ctx context.Context, id int64) error {
	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

// ListEvents returns every event ordered by start time.
func (r *EventRepository) ListEvents(ctx context.Context) ([]persistence.Event, error) {
	return r.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY start_datetime ASC`)
}

// SearchEvents matches the query against title, description, location and
// category, case-insensitively. An empty query matches nothing.
func (r *EventRepository) SearchEvents(ctx context.Context, query string) ([]persistence.Event, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"
	return r.queryEvents(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE LOWER(title) LIKE ?1
			OR LOWER(COALESCE(description, '')) LIKE ?1
			OR LOWER(COALESCE(location, '')) LIKE ?1
			OR LOWER(COALESCE(category, '')) LIKE ?1
		ORDER BY start_datetime ASC`, pattern)
}

// FindEventsInRange returns events whose interval intersects the window,
// plus recurring events starting before the window end. The recurring
// side deliberately over-fetches; the expansion engine decides which
// occurrences actually fall inside the window.
func (r *EventRepository) FindEventsInRange(ctx context.Context, start, end time.Time) ([]persistence.Event, error) {
	return r.queryEvents(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE (start_datetime <= ? AND end_datetime >= ?)
			OR (recurrence_rule IS NOT NULL AND recurrence_rule != '' AND recurrence_rule != 'None' AND start_datetime <= ?)
		ORDER BY start_datetime ASC`,
		formatTime(end), formatTime(start), formatTime(end))
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]persistence.Event, error) {
	rows, err := r.pool.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var events []persistence.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, mapError(err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (persistence.Event, error) {
	var (
		event          persistence.Event
		description    sql.NullString
		location       sql.NullString
		startText      string
		endText        string
		allDay         int
		category       sql.NullString
		color          sql.NullString
		rule           sql.NullString
		exceptionsText sql.NullString
		createdText    string
		updatedText    string
	)

	if err := row.Scan(
		&event.ID, &event.Title, &description, &location, &startText, &endText,
		&allDay, &category, &color, &rule, &exceptionsText,
		&createdText, &updatedText,
	); err != nil {
		return persistence.Event{}, err
	}

	var err error
	if event.Start, err = parseTime(startText); err != nil {
		return persistence.Event{}, err
	}
	if event.End, err = parseTime(endText); err != nil {
		return persistence.Event{}, err
	}
	if event.CreatedAt, err = parseTime(createdText); err != nil {
		return persistence.Event{}, err
	}
	if event.UpdatedAt, err = parseTime(updatedText); err != nil {
		return persistence.Event{}, err
	}
	if event.RecurrenceExceptions, err = decodeExceptions(exceptionsText); err != nil {
		return persistence.Event{}, err
	}

	event.AllDay = allDay != 0
	event.Description = stringPtr(description)
	event.Location = stringPtr(location)
	event.Category = stringPtr(category)
	event.Color = stringPtr(color)
	event.RecurrenceRule = stringPtr(rule)
	return event, nil
}

func encodeExceptions(exceptions []time.Time) (sql.NullString, error) {
	if exceptions == nil {
		return sql.NullString{}, nil
	}
	values := make([]string, len(exceptions))
	for i, t := range exceptions {
		values[i] = formatTime(t)
	}
	data, err := json.Marshal(values)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode exception dates: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeExceptions(text sql.NullString) ([]time.Time, error) {
	if !text.Valid || text.String == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(text.String), &values); err != nil {
		return nil, fmt.Errorf("failed to decode exception dates: %w", err)
	}
	exceptions := make([]time.Time, 0, len(values))
	for _, value := range values {
		// Entries that no longer parse are dropped rather than failing
		// the whole row.
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			exceptions = append(exceptions, t)
		}
	}
	return exceptions, nil
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", value, err)
	}
	return t, nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	out := value.String
	return &out
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
