package repositories

import (
	"context"

	"github.com/anonto42/review-portal/backend/internal/models"
	"gorm.io/gorm"
)

// ResourceRepository defines the interface for resource library operations
type ResourceRepository interface {
	CreateResource(ctx context.Context, resource *models.Resource) error
	GetResources(ctx context.Context, category models.ResourceCategory) ([]models.Resource, error)
	GetResourceByID(ctx context.Context, id uint) (*models.Resource, error)
	DeleteResource(ctx context.Context, id uint) error
}

// PostgresResourceRepository implements ResourceRepository for PostgreSQL
type PostgresResourceRepository struct {
	db *gorm.DB
}

// NewPostgresResourceRepository creates a new PostgresResourceRepository
func NewPostgresResourceRepository(db *gorm.DB) *PostgresResourceRepository {
	return &PostgresResourceRepository{db: db}
}

func (r *PostgresResourceRepository) CreateResource(ctx context.Context, resource *models.Resource) error {
	if resource.Category == "" {
		resource.Category = models.ResourceOther
	}
	return translate("create resource", r.db.WithContext(ctx).Create(resource).Error)
}

// GetResources lists resources newest first. An empty category lists all of them.
func (r *PostgresResourceRepository) GetResources(ctx context.Context, category models.ResourceCategory) ([]models.Resource, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	resources := []models.Resource{}
	if err := q.Find(&resources).Error; err != nil {
		return nil, translate("list resources", err)
	}
	return resources, nil
}

func (r *PostgresResourceRepository) GetResourceByID(ctx context.Context, id uint) (*models.Resource, error) {
	var resource models.Resource
	if err := r.db.WithContext(ctx).First(&resource, id).Error; err != nil {
		return nil, translate("get resource", err)
	}
	return &resource, nil
}

func (r *PostgresResourceRepository) DeleteResource(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Resource{}, id)
	if res.Error != nil {
		return translate("delete resource", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete resource", gorm.ErrRecordNotFound)
	}
	return nil
}
