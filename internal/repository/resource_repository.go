package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/agrojobs/internal/model"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) ListResources(ctx context.Context, kind model.ResourceKind) ([]model.Resource, error) {
	var resources []model.Resource
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, kind, name, hourly_rate, active
		FROM resources
		WHERE kind = ?
		ORDER BY created_at ASC, name ASC
	`, string(kind)).Scan(&resources).Error; err != nil {
		return nil, err
	}
	if resources == nil {
		resources = []model.Resource{}
	}
	return resources, nil
}

func (r *ResourceRepository) GetResource(ctx context.Context, kind model.ResourceKind, id uuid.UUID) (*model.Resource, error) {
	var resource model.Resource
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, kind, name, hourly_rate, active
		FROM resources
		WHERE id = ? AND kind = ?
		LIMIT 1
	`, id, string(kind)).Scan(&resource).Error; err != nil {
		return nil, err
	}
	if resource.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &resource, nil
}

func (r *ResourceRepository) CreateResource(ctx context.Context, resource model.Resource) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO resources (id, kind, name, hourly_rate, active)
		VALUES (?, ?, ?, ?, ?)
	`, resource.ID, string(resource.Kind), resource.Name, resource.HourlyRate, resource.Active).Error
}

// UpdateResource changes the registry entry only. Jobs keep the snapshot
// taken at assignment time.
func (r *ResourceRepository) UpdateResource(ctx context.Context, resource model.Resource) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE resources
		SET name = ?, hourly_rate = ?, active = ?
		WHERE id = ? AND kind = ?
	`, resource.Name, resource.HourlyRate, resource.Active, resource.ID, string(resource.Kind))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ResourceRepository) DeleteResource(ctx context.Context, kind model.ResourceKind, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM resources
		WHERE id = ? AND kind = ?
	`, id, string(kind))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
