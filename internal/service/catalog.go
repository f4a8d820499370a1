package service

import (
	"context"

	"RetroCatalog/internal/adapter/igdb"
	"RetroCatalog/internal/interfaces"
	"RetroCatalog/internal/model"

	"github.com/sirupsen/logrus"
)

// CatalogService 目录搜索流水线：取令牌→查目录→解析封面→产出候选列表
type CatalogService struct {
	adapter interfaces.CatalogAdapter
	logger  *logrus.Logger
}

// NewCatalogService 创建CatalogService
func NewCatalogService(adapter interfaces.CatalogAdapter, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		adapter: adapter,
		logger:  logger,
	}
}

// Search 按标题+平台编码搜索外部目录，返回候选条目（保持上游顺序）
func (s *CatalogService) Search(ctx context.Context, title, platformCode string) ([]model.GameCandidate, error) {
	if title == "" || platformCode == "" {
		return nil, &model.ValidationError{Message: "游戏标题和平台编码不能为空"}
	}
	platformName, ok := model.PlatformName(platformCode)
	if !ok {
		return nil, &model.ValidationError{Message: "平台编码未收录: " + platformCode}
	}

	games, err := s.adapter.SearchGames(ctx, title, platformCode)
	if err != nil {
		return nil, err
	}

	candidates := make([]model.GameCandidate, 0, len(games))
	for i := range games {
		// 封面在同一页结果内沿父条目链解析，解析不到用占位图兜底
		image := igdb.ResolveCover(&games[i], games)
		if image == "" {
			image = igdb.DefaultCoverURL
		}
		candidates = append(candidates, model.GameCandidate{
			Title:    games[i].Name,
			Platform: platformName,
			Image:    image,
		})
	}

	s.logger.Infof("目录搜索「%s」完成，产出候选%d条", title, len(candidates))
	return candidates, nil
}
