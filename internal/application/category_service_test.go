package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/desktop-calendar/internal/persistence"
)

type stubCategoryRepository struct {
	categories map[int64]Category
	nextID     int64
	system     map[int64]bool
}

func newStubCategoryRepository() *stubCategoryRepository {
	return &stubCategoryRepository{
		categories: make(map[int64]Category),
		nextID:     1,
		system:     make(map[int64]bool),
	}
}

func (r *stubCategoryRepository) CreateCategory(_ context.Context, category Category) (Category, error) {
	for _, existing := range r.categories {
		if existing.Name == category.Name {
			return Category{}, persistence.ErrDuplicate
		}
	}
	category.ID = r.nextID
	r.nextID++
	r.categories[category.ID] = category
	return category, nil
}

func (r *stubCategoryRepository) ListCategories(_ context.Context) ([]Category, error) {
	out := make([]Category, 0, len(r.categories))
	for _, category := range r.categories {
		out = append(out, category)
	}
	return out, nil
}

func (r *stubCategoryRepository) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return persistence.ErrNotFound
	}
	if r.system[id] {
		return persistence.ErrProtected
	}
	delete(r.categories, id)
	return nil
}

func TestCategoryService_CreateCategory(t *testing.T) {
	t.Parallel()

	service := NewCategoryService(newStubCategoryRepository(), nil, nil)

	created, err := service.CreateCategory(context.Background(), CategoryInput{
		Name:  " Sports ",
		Color: "#22C55E",
	})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if created.Name != "Sports" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
}

func TestCategoryService_CreateCategory_Validation(t *testing.T) {
	t.Parallel()

	service := NewCategoryService(newStubCategoryRepository(), nil, nil)

	cases := []struct {
		name  string
		input CategoryInput
		field string
	}{
		{name: "missing name", input: CategoryInput{Color: "#FFFFFF"}, field: "name"},
		{name: "missing color", input: CategoryInput{Name: "X"}, field: "color"},
		{name: "bad color", input: CategoryInput{Name: "X", Color: "blue"}, field: "color"},
		{name: "short hex", input: CategoryInput{Name: "X", Color: "#FFF"}, field: "color"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := service.CreateCategory(context.Background(), tc.input)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := vErr.FieldErrors[tc.field]; !ok {
				t.Errorf("expected field %q in errors, got %v", tc.field, vErr.FieldErrors)
			}
		})
	}
}

func TestCategoryService_CreateCategory_Duplicate(t *testing.T) {
	t.Parallel()

	service := NewCategoryService(newStubCategoryRepository(), nil, nil)
	input := CategoryInput{Name: "Sports", Color: "#22C55E"}

	if _, err := service.CreateCategory(context.Background(), input); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	_, err := service.CreateCategory(context.Background(), input)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	t.Parallel()

	repo := newStubCategoryRepository()
	service := NewCategoryService(repo, nil, nil)

	created, err := service.CreateCategory(context.Background(), CategoryInput{Name: "Sports", Color: "#22C55E"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	if err := service.DeleteCategory(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if err := service.DeleteCategory(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategoryService_DeleteCategory_Protected(t *testing.T) {
	t.Parallel()

	repo := newStubCategoryRepository()
	service := NewCategoryService(repo, nil, nil)

	created, err := service.CreateCategory(context.Background(), CategoryInput{Name: "Work", Color: "#3B82F6"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	repo.system[created.ID] = true

	if err := service.DeleteCategory(context.Background(), created.ID); !errors.Is(err, ErrProtected) {
		t.Fatalf("expected ErrProtected, got %v", err)
	}
}
