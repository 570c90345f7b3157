package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/desktop-calendar/internal/persistence"
)

// CategoryRepository captures the persistence interactions needed by the service.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category Category) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// CategoryService orchestrates validation and persistence for category
// operations.
type CategoryService struct {
	categories CategoryRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewCategoryService wires dependencies for category operations.
func NewCategoryService(categories CategoryRepository, logger *slog.Logger, now func() time.Time) *CategoryService {
	if now == nil {
		now = time.Now
	}
	return &CategoryService{
		categories: categories,
		logger:     defaultLogger(logger),
		now:        now,
	}
}

// CreateCategory validates the input before delegating to persistence.
func (s *CategoryService) CreateCategory(ctx context.Context, input CategoryInput) (Category, error) {
	if s == nil {
		return Category{}, fmt.Errorf("CategoryService is nil")
	}
	if s.categories == nil {
		return Category{}, fmt.Errorf("category repository not configured")
	}

	logger := serviceLogger(ctx, s.logger, "category", "create")

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Color == "" {
		vErr.add("color", "color is required")
	} else if !hexColorPattern.MatchString(input.Color) {
		vErr.add("color", "color must be a #RRGGBB hex value")
	}
	if vErr.HasErrors() {
		logger.Warn("category validation failed", "fields", vErr.FieldErrors)
		return Category{}, vErr
	}

	category := Category{
		Name:  strings.TrimSpace(input.Name),
		Color: input.Color,
		Icon:  input.Icon,
	}

	created, err := s.categories.CreateCategory(ctx, category)
	if err != nil {
		err = mapCategoryRepoError(err)
		logger.Error("category creation failed", "error", err, "error_kind", ErrorKind(err))
		return Category{}, err
	}

	logger.Info("category created", "category_id", created.ID, "name", created.Name)
	return created, nil
}

// ListCategories returns every category.
func (s *CategoryService) ListCategories(ctx context.Context) ([]Category, error) {
	if s == nil || s.categories == nil {
		return nil, fmt.Errorf("category repository not configured")
	}
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, mapCategoryRepoError(err)
	}
	return categories, nil
}

// DeleteCategory removes a category. Built-in system categories are
// refused with ErrProtected.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if s == nil || s.categories == nil {
		return fmt.Errorf("category repository not configured")
	}

	logger := serviceLogger(ctx, s.logger, "category", "delete", "category_id", id)

	if err := s.categories.DeleteCategory(ctx, id); err != nil {
		err = mapCategoryRepoError(err)
		logger.Error("category deletion failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.Info("category deleted")
	return nil
}

func mapCategoryRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	if errors.Is(err, persistence.ErrProtected) {
		return ErrProtected
	}
	return err
}
