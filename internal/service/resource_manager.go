package service

import (
	"context"
	"fmt"

	"marknote-be/internal/entity"
	"marknote-be/internal/pkg/apperror"
	"marknote-be/internal/pkg/logger"
	"marknote-be/internal/repository/contract"
	"marknote-be/internal/repository/specification"
	"marknote-be/internal/repository/unitofwork"
	"marknote-be/pkg/events"
	"marknote-be/pkg/validation"

	"github.com/google/uuid"
)

// resourceKind describes how one resource kind is validated, built and
// patched. Everything else about ownership and persistence lives in
// resourceManager.
type resourceKind[E entity.Resource, C any, U any] struct {
	name   string
	module string
	repo   func(uow unitofwork.UnitOfWork) contract.ResourceRepository[E]
	// build turns an already validated create request into an entity.
	build func(ctx context.Context, ownerID uuid.UUID, req *C) E
	// patch turns an already validated update request into a patch.
	patch func(req *U) contract.Patch[E]
}

type resourceManager[E entity.Resource, C any, U any] struct {
	kind       resourceKind[E, C, U]
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func newResourceManager[E entity.Resource, C any, U any](
	kind resourceKind[E, C, U],
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	logger logger.ILogger,
) *resourceManager[E, C, U] {
	return &resourceManager[E, C, U]{
		kind:       kind,
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

func validate(req interface{}) error {
	msg, err := validation.Struct(req)
	if err != nil {
		return fmt.Errorf("validate request: %w", err)
	}
	if msg != "" {
		return apperror.Validation(msg)
	}
	return nil
}

func (m *resourceManager[E, C, U]) ownedBy(ownerID, id uuid.UUID) []specification.Specification {
	return []specification.Specification{
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: ownerID},
	}
}

func (m *resourceManager[E, C, U]) fail(op string, ownerID uuid.UUID, err error) error {
	if apperror.IsStorage(err) {
		m.logger.Error(m.kind.module, op+" failed", map[string]interface{}{
			"user_id": ownerID.String(),
			"error":   err.Error(),
		})
	}
	return err
}

func (m *resourceManager[E, C, U]) emit(ctx context.Context, eventType string, ownerID, id uuid.UUID) {
	if m.publisher == nil {
		return
	}
	evt := events.NewResourceEvent(eventType, m.kind.name, id, ownerID)
	if err := m.publisher.Publish(ctx, evt); err != nil {
		m.logger.Warn(m.kind.module, "Failed to publish "+eventType, map[string]interface{}{
			"id":    id.String(),
			"error": err.Error(),
		})
	}
}

func (m *resourceManager[E, C, U]) Create(ctx context.Context, ownerID uuid.UUID, req *C) (E, error) {
	var zero E
	if err := validate(req); err != nil {
		return zero, err
	}

	e := m.kind.build(ctx, ownerID, req)

	uow := m.uowFactory.NewUnitOfWork(ctx)
	created, err := m.kind.repo(uow).Create(ctx, e)
	if err != nil {
		return zero, m.fail("create", ownerID, err)
	}

	m.logger.Info(m.kind.module, m.kind.name+" created", map[string]interface{}{
		"id":      created.GetId().String(),
		"user_id": ownerID.String(),
	})
	m.emit(ctx, events.ResourceCreated, ownerID, created.GetId())
	return created, nil
}

func (m *resourceManager[E, C, U]) List(ctx context.Context, ownerID uuid.UUID, q, tagsCSV string) ([]E, error) {
	filter := specification.BuildResourceFilter(ownerID, q, tagsCSV)

	uow := m.uowFactory.NewUnitOfWork(ctx)
	items, err := m.kind.repo(uow).FindAll(ctx, filter.Specifications()...)
	if err != nil {
		return nil, m.fail("list", ownerID, err)
	}
	return items, nil
}

func (m *resourceManager[E, C, U]) Show(ctx context.Context, ownerID, id uuid.UUID) (E, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	found, err := m.kind.repo(uow).FindOne(ctx, m.ownedBy(ownerID, id)...)
	if err != nil {
		var zero E
		return zero, m.fail("show", ownerID, err)
	}
	return found, nil
}

// inTx runs fn against a repository bound to one transaction. Any error
// rolls back; a failed commit is a storage error.
func (m *resourceManager[E, C, U]) inTx(ctx context.Context, fn func(repo contract.ResourceRepository[E]) error) error {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperror.Storage("failed to begin transaction", err)
	}

	if err := fn(m.kind.repo(uow)); err != nil {
		_ = uow.Rollback()
		return err
	}

	if err := uow.Commit(); err != nil {
		return apperror.Storage("failed to commit transaction", err)
	}
	return nil
}

func (m *resourceManager[E, C, U]) Update(ctx context.Context, ownerID, id uuid.UUID, req *U) (E, error) {
	var result E
	changed := false

	err := m.inTx(ctx, func(repo contract.ResourceRepository[E]) error {
		existing, err := repo.FindOne(ctx, m.ownedBy(ownerID, id)...)
		if err != nil {
			return err
		}

		if err := validate(req); err != nil {
			return err
		}

		patch := m.kind.patch(req)
		if patch.Empty() {
			result = existing
			return nil
		}

		// The write itself is owner scoped, so a concurrent delete surfaces
		// here as not found.
		updated, err := repo.Update(ctx, ownerID, id, patch)
		if err != nil {
			return err
		}
		result, changed = updated, true
		return nil
	})
	if err != nil {
		var zero E
		return zero, m.fail("update", ownerID, err)
	}
	if !changed {
		return result, nil
	}

	m.logger.Info(m.kind.module, m.kind.name+" updated", map[string]interface{}{
		"id":      id.String(),
		"user_id": ownerID.String(),
	})
	m.emit(ctx, events.ResourceUpdated, ownerID, id)
	return result, nil
}

func (m *resourceManager[E, C, U]) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := m.inTx(ctx, func(repo contract.ResourceRepository[E]) error {
		if _, err := repo.FindOne(ctx, m.ownedBy(ownerID, id)...); err != nil {
			return err
		}
		return repo.Delete(ctx, ownerID, id)
	})
	if err != nil {
		return m.fail("delete", ownerID, err)
	}

	m.logger.Info(m.kind.module, m.kind.name+" deleted", map[string]interface{}{
		"id":      id.String(),
		"user_id": ownerID.String(),
	})
	m.emit(ctx, events.ResourceDeleted, ownerID, id)
	return nil
}

func (m *resourceManager[E, C, U]) Tags(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	tags, err := m.kind.repo(uow).DistinctTags(ctx, ownerID)
	if err != nil {
		return nil, m.fail("tags", ownerID, err)
	}
	return tags, nil
}
