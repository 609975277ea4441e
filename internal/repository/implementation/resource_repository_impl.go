package implementation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marknote-be/internal/entity"
	"marknote-be/internal/pkg/apperror"
	"marknote-be/internal/repository/contract"
	"marknote-be/internal/repository/scope"
	"marknote-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ModelMapper converts between a domain entity E and its GORM row M.
type ModelMapper[E entity.Resource, M any] interface {
	ToEntity(m *M) E
	ToModel(e E) *M
	ToEntities(ms []*M) []E
}

// ResourceRepositoryImpl is the GORM implementation shared by every resource
// kind. label names the kind in error messages ("Note").
type ResourceRepositoryImpl[E entity.Resource, M any] struct {
	db     *gorm.DB
	mapper ModelMapper[E, M]
	label  string
}

func NewResourceRepository[E entity.Resource, M any](db *gorm.DB, mapper ModelMapper[E, M], label string) *ResourceRepositoryImpl[E, M] {
	return &ResourceRepositoryImpl[E, M]{
		db:     db,
		mapper: mapper,
		label:  label,
	}
}

func (r *ResourceRepositoryImpl[E, M]) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ResourceRepositoryImpl[E, M]) notFound() error {
	return apperror.NotFound(r.label + " not found")
}

func (r *ResourceRepositoryImpl[E, M]) storageErr(action string, err error) error {
	return apperror.Storage(fmt.Sprintf("failed to %s %s", action, strings.ToLower(r.label)), err)
}

func (r *ResourceRepositoryImpl[E, M]) Create(ctx context.Context, e E) (E, error) {
	var zero E
	m := r.mapper.ToModel(e)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return zero, r.storageErr("create", err)
	}
	return r.mapper.ToEntity(m), nil
}

func (r *ResourceRepositoryImpl[E, M]) FindOne(ctx context.Context, specs ...specification.Specification) (E, error) {
	var zero E
	var m M
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, r.notFound()
		}
		return zero, r.storageErr("load", err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ResourceRepositoryImpl[E, M]) FindAll(ctx context.Context, specs ...specification.Specification) ([]E, error) {
	var models []*M
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, r.storageErr("list", err)
	}
	return r.mapper.ToEntities(models), nil
}

// Update writes the patch and reads the row back in one statement. A row
// that vanished or belongs to someone else yields a not-found error.
func (r *ResourceRepositoryImpl[E, M]) Update(ctx context.Context, ownerID, id uuid.UUID, patch contract.Patch[E]) (E, error) {
	if patch.Empty() {
		return r.FindOne(ctx, specification.ByID{ID: id}, specification.UserOwnedBy{UserID: ownerID})
	}

	var zero E
	m := new(M)
	res := r.db.WithContext(ctx).
		Model(m).
		Clauses(clause.Returning{}).
		Scopes(scope.OwnedRow(ownerID, id)).
		Updates(patch.Columns())
	if res.Error != nil {
		return zero, r.storageErr("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return zero, r.notFound()
	}
	return r.mapper.ToEntity(m), nil
}

func (r *ResourceRepositoryImpl[E, M]) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Scopes(scope.OwnedRow(ownerID, id)).Delete(new(M))
	if res.Error != nil {
		return r.storageErr("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound()
	}
	return nil
}

func (r *ResourceRepositoryImpl[E, M]) DistinctTags(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	tags := []string{}
	err := r.db.WithContext(ctx).
		Model(new(M)).
		Where("user_id = ?", ownerID).
		Distinct().
		Order("tag").
		Pluck("unnest(tags) AS tag", &tags).Error
	if err != nil {
		return nil, r.storageErr("list tags of", err)
	}
	return tags, nil
}
