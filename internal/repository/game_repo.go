package repository

import (
	"context"
	"strings"

	"RetroCatalog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameRepository 馆藏游戏仓储接口
type GameRepository interface {
	// Create 新建记录，ID为空时由仓储分配UUID
	Create(ctx context.Context, game *model.Game) error
	// GetByID 按ID查询单条记录
	GetByID(ctx context.Context, id string) (*model.Game, error)
	// ListAlphabetical 全量列表，按标题字母序
	ListAlphabetical(ctx context.Context) ([]*model.Game, error)
	// ListRecent 最近创建的N条记录
	ListRecent(ctx context.Context, limit int) ([]*model.Game, error)
	// SearchByTitle 标题子串搜索（不区分大小写），关键词为空返回全量
	SearchByTitle(ctx context.Context, keyword string) ([]*model.Game, error)
	// ListByPlatform 按平台名称精确筛选
	ListByPlatform(ctx context.Context, platform string) ([]*model.Game, error)
	// UpdateStatus 只允许更新complete/country两个字段，返回更新后的记录
	UpdateStatus(ctx context.Context, id string, fields map[string]interface{}) (*model.Game, error)
	// Delete 按ID删除记录
	Delete(ctx context.Context, id string) error
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository 创建GameRepository实例
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *model.Game) error {
	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) ListAlphabetical(ctx context.Context) ([]*model.Game, error) {
	var games []*model.Game
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) ListRecent(ctx context.Context, limit int) ([]*model.Game, error) {
	if limit <= 0 {
		limit = 4
	}
	var games []*model.Game
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) SearchByTitle(ctx context.Context, keyword string) ([]*model.Game, error) {
	db := r.db.WithContext(ctx).Model(&model.Game{})
	if keyword != "" {
		// 用LOWER LIKE而非ILIKE，兼容测试用的sqlite
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}
	var games []*model.Game
	if err := db.Order("title ASC").Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) ListByPlatform(ctx context.Context, platform string) ([]*model.Game, error) {
	var games []*model.Game
	if err := r.db.WithContext(ctx).
		Where("platform = ?", platform).
		Order("title ASC").
		Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) UpdateStatus(ctx context.Context, id string, fields map[string]interface{}) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&game).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Game{}).Error
}
