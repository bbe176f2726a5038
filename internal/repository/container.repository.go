package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/swiftport/customs-dashboard/internal/model"
	"github.com/swiftport/customs-dashboard/pkg/pg"
)

var (
	// ErrNotFound is returned when a container does not exist.
	ErrNotFound = errors.New("container not found")
)

type ContainerRepository struct {
	*pg.DB
}

func NewContainerRepository(db *pg.DB) *ContainerRepository {
	return &ContainerRepository{
		db,
	}
}

// List returns every container, newest first with ties broken by id. The
// dataset of one branch office is small, so there is no pagination.
func (r *ContainerRepository) List(ctx context.Context) ([]*model.Container, error) {
	var entities []*ContainerEntity
	err := r.Read(ctx).
		Model(&ContainerEntity{}).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toContainerModels(entities), nil
}

// Create inserts c and returns the stored record with id and created_at set.
func (r *ContainerRepository) Create(ctx context.Context, c *model.Container) (*model.Container, error) {
	entity := toContainerEntity(c)
	if entity == nil {
		return nil, errors.New("nil container")
	}

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toContainerModel(entity), nil
}

func (r *ContainerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.Write(ctx).Where("id = ?", id).Delete(&ContainerEntity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AutoMigrate creates the containers table on databases the goose
// migrations do not target, such as the local sqlite file.
func AutoMigrate(db *pg.DB) error {
	return db.Write(context.Background()).AutoMigrate(&ContainerEntity{})
}
