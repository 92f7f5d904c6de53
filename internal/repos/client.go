package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/logger"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/query"
)

// ClientRepo persists company accounts.
type ClientRepo interface {
	List(ctx context.Context, sort *query.Sort, filters ...query.Filter) ([]models.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRepo(db *gorm.DB, log *logger.Logger) ClientRepo {
	return &clientRepo{db: db, log: log.With("repo", "client")}
}

func (r *clientRepo) List(ctx context.Context, sort *query.Sort, filters ...query.Filter) ([]models.Client, error) {
	tx, err := query.Apply(r.db.WithContext(ctx).Model(&models.Client{}), sort, filters)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	clients := make([]models.Client, 0)
	if err := tx.Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get client %s: %w", id, wrapNotFound(err))
	}
	return &client, nil
}

func (r *clientRepo) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	ensureID(&client.ID)
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	r.log.Debug("client created", "id", client.ID, "name", client.Name)
	return client, nil
}

func (r *clientRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Client, error) {
	if err := updateByID(ctx, r.db, &models.Client{}, id, fields); err != nil {
		return nil, fmt.Errorf("update client %s: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete client %s: %w", id, err)
	}
	return nil
}
