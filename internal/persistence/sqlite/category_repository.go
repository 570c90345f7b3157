package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/desktop-calendar/internal/persistence"
)

const categoryColumns = `id, name, color, icon, is_system, created_at, updated_at`

// CategoryRepository implements persistence.CategoryRepository using SQLite.
type CategoryRepository struct {
	pool *ConnectionPool
	now  func() time.Time
}

// NewCategoryRepository creates a SQLite-backed category repository.
func NewCategoryRepository(pool *ConnectionPool) *CategoryRepository {
	return &CategoryRepository{pool: pool, now: time.Now}
}

// defaultCategories are seeded on first run so a fresh database already
// offers the usual buckets. They are marked as system categories and
// cannot be deleted.
var defaultCategories = []persistence.Category{
	{Name: "Work", Color: "#3B82F6", IsSystem: true},
	{Name: "Personal", Color: "#10B981", IsSystem: true},
	{Name: "Birthday", Color: "#F59E0B", IsSystem: true},
	{Name: "Holiday", Color: "#EF4444", IsSystem: true},
}

// SeedDefaults inserts the built-in categories, skipping any that already
// exist by name.
func (r *CategoryRepository) SeedDefaults(ctx context.Context) error {
	now := formatTime(r.now())
	for _, category := range defaultCategories {
		_, err := r.pool.db.ExecContext(ctx, `
			INSERT INTO categories (name, color, icon, is_system, created_at, updated_at)
			SELECT ?, ?, ?, 1, ?, ?
			WHERE NOT EXISTS (SELECT 1 FROM categories WHERE name = ?)`,
			category.Name, category.Color, nullString(category.Icon), now, now,
			category.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", category.Name, mapError(err))
		}
	}
	return nil
}

// CreateCategory inserts a new category and returns it with its assigned
// id and timestamps.
func (r *CategoryRepository) CreateCategory(ctx context.Context, category persistence.Category) (persistence.Category, error) {
	now := r.now()
	result, err := r.pool.db.ExecContext(ctx, `
		INSERT INTO categories (name, color, icon, is_system, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		category.Name,
		category.Color,
		nullString(category.Icon),
		boolToInt(category.IsSystem),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return persistence.Category{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Category{}, fmt.Errorf("failed to read inserted category id: %w", err)
	}

	category.ID = id
	category.CreatedAt = now
	category.UpdatedAt = now
	return category, nil
}

// ListCategories returns every category ordered by name.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]persistence.Category, error) {
	rows, err := r.pool.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var categories []persistence.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, mapError(err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return categories, nil
}

// DeleteCategory removes a category by id. System categories are refused
// with persistence.ErrProtected.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	var isSystem int
	err := r.pool.db.QueryRowContext(ctx,
		`SELECT is_system FROM categories WHERE id = ?`, id).Scan(&isSystem)
	if err != nil {
		return mapError(err)
	}
	if isSystem != 0 {
		return persistence.ErrProtected
	}

	result, err := r.pool.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
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

func scanCategory(row rowScanner) (persistence.Category, error) {
	var (
		category    persistence.Category
		icon        sql.NullString
		isSystem    int
		createdText string
		updatedText string
	)

	if err := row.Scan(
		&category.ID, &category.Name, &category.Color, &icon, &isSystem,
		&createdText, &updatedText,
	); err != nil {
		return persistence.Category{}, err
	}

	var err error
	if category.CreatedAt, err = parseTime(createdText); err != nil {
		return persistence.Category{}, err
	}
	if category.UpdatedAt, err = parseTime(updatedText); err != nil {
		return persistence.Category{}, err
	}

	category.Icon = stringPtr(icon)
	category.IsSystem = isSystem != 0
	return category, nil
}
