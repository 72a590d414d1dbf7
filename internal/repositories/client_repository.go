package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/review-portal/backend/internal/models"
	"gorm.io/gorm"
)

// ClientRepository defines the interface for client directory operations
type ClientRepository interface {
	CreateClient(ctx context.Context, client *models.Client) error
	GetClients(ctx context.Context) ([]models.Client, error)
	SearchClientsByPrefix(ctx context.Context, prefix string, limit int) ([]models.Client, error)
	DeleteClient(ctx context.Context, id uint) error
}

// PostgresClientRepository implements ClientRepository for PostgreSQL
type PostgresClientRepository struct {
	db *gorm.DB
}

// NewPostgresClientRepository creates a new PostgresClientRepository
func NewPostgresClientRepository(db *gorm.DB) *PostgresClientRepository {
	return &PostgresClientRepository{db: db}
}

func (r *PostgresClientRepository) CreateClient(ctx context.Context, client *models.Client) error {
	return translate("create client", r.db.WithContext(ctx).Create(client).Error)
}

// GetClients returns the directory newest first
func (r *PostgresClientRepository) GetClients(ctx context.Context) ([]models.Client, error) {
	clients := []models.Client{}
	if err := r.db.WithContext(ctx).Order("registered_at DESC").Find(&clients).Error; err != nil {
		return nil, translate("list clients", err)
	}
	return clients, nil
}

// SearchClientsByPrefix matches client names starting with prefix, ignoring case.
// Used by the project form's autocomplete.
func (r *PostgresClientRepository) SearchClientsByPrefix(ctx context.Context, prefix string, limit int) ([]models.Client, error) {
	clients := []models.Client{}
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", escapeLike(prefix)+"%").
		Order("name ASC").
		Limit(limit).
		Find(&clients).Error
	if err != nil {
		return nil, translate("search clients", err)
	}
	return clients, nil
}

func (r *PostgresClientRepository) DeleteClient(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Client{}, id)
	if res.Error != nil {
		return translate("delete client", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete client", gorm.ErrRecordNotFound)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
