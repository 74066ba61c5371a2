// Package crud serves plain admin-managed tables: list with search and
// filters, fetch by key, create, patch, delete.
package crud

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	helper "campusvibe_backend/internals/helpers"
)

// Resource describes one table.
type Resource struct {
	// Name is the singular label used in messages, e.g. "Student".
	Name string
	// Key is the column matched by the :id path parameter.
	Key        string
	NumericKey bool
	OrderBy    string
	Preloads   []string
	// Search columns are matched case-insensitively against ?q=.
	Search []string
	// Filters maps query parameters to equality filters on columns.
	Filters map[string]string
}

type Service[T any] struct {
	DB  *gorm.DB
	Res Resource
}

func NewService[T any](db *gorm.DB, res Resource) *Service[T] {
	if res.Key == "" {
		res.Key = "id"
		res.NumericKey = true
	}
	if res.OrderBy == "" {
		res.OrderBy = res.Key + " ASC"
	}
	return &Service[T]{DB: db, Res: res}
}

func (s *Service[T]) preload(db *gorm.DB) *gorm.DB {
	for _, p := range s.Res.Preloads {
		db = db.Preload(p)
	}
	return db
}

func (s *Service[T]) List(ctx context.Context, q string, filters map[string]string, p helper.Paging) ([]T, int64, error) {
	db := s.DB.WithContext(ctx).Model(new(T))
	if term := strings.ToLower(strings.TrimSpace(q)); term != "" && len(s.Res.Search) > 0 {
		like := "%" + term + "%"
		parts := make([]string, 0, len(s.Res.Search))
		args := make([]any, 0, len(s.Res.Search))
		for _, col := range s.Res.Search {
			parts = append(parts, "LOWER("+col+") LIKE ?")
			args = append(args, like)
		}
		db = db.Where(strings.Join(parts, " OR "), args...)
	}
	for param, col := range s.Res.Filters {
		if v := strings.TrimSpace(filters[param]); v != "" {
			db = db.Where(col+" = ?", v)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []T
	if err := s.preload(db).Order(s.Res.OrderBy).Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *Service[T]) Get(ctx context.Context, key string) (*T, error) {
	row := new(T)
	err := s.preload(s.DB.WithContext(ctx)).Where(s.Res.Key+" = ?", key).First(row).Error
	if err != nil {
		return nil, s.translate(err)
	}
	return row, nil
}

func (s *Service[T]) Create(ctx context.Context, row *T) error {
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return s.translate(err)
	}
	return nil
}

func (s *Service[T]) Update(ctx context.Context, key string, changes map[string]any) (*T, error) {
	if len(changes) == 0 {
		return nil, helper.ErrValidation("No fields to update")
	}
	res := s.DB.WithContext(ctx).Model(new(T)).Where(s.Res.Key+" = ?", key).Updates(changes)
	if res.Error != nil {
		return nil, s.translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, helper.ErrNotFound(s.Res.Name + " not found")
	}
	return s.Get(ctx, key)
}

func (s *Service[T]) Delete(ctx context.Context, key string) error {
	res := s.DB.WithContext(ctx).Where(s.Res.Key+" = ?", key).Delete(new(T))
	if res.Error != nil {
		return s.translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound(s.Res.Name + " not found")
	}
	return nil
}

func (s *Service[T]) translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helper.ErrNotFound(s.Res.Name + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return helper.ErrConflict(s.Res.Name + " already exists")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return helper.ErrValidation(s.Res.Name + " references a missing record or is still in use")
	}
	return err
}
