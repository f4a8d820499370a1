package repository

import (
	"context"

	"RetroCatalog/internal/model"

	"gorm.io/gorm"
)

// ImportLogRepository 批量操作审计日志仓储
type ImportLogRepository interface {
	Create(ctx context.Context, log *model.ImportLog) error
}

type importLogRepository struct {
	db *gorm.DB
}

// NewImportLogRepository 创建ImportLogRepository实例
func NewImportLogRepository(db *gorm.DB) ImportLogRepository {
	return &importLogRepository{db: db}
}

func (r *importLogRepository) Create(ctx context.Context, log *model.ImportLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
