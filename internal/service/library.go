package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"RetroCatalog/internal/interfaces"
	"RetroCatalog/internal/model"
	"RetroCatalog/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LibraryService 馆藏游戏服务：导入/删除批次流水线与普通查询
type LibraryService struct {
	repo   repository.GameRepository
	logs   repository.ImportLogRepository
	assets interfaces.AssetHost
	logger *logrus.Logger
}

// NewLibraryService 创建LibraryService
func NewLibraryService(db *gorm.DB, assets interfaces.AssetHost, logger *logrus.Logger) *LibraryService {
	return &LibraryService{
		repo:   repository.NewGameRepository(db),
		logs:   repository.NewImportLogRepository(db),
		assets: assets,
		logger: logger,
	}
}

// ImportGames 导入批次：逐条上传封面图并落库
// 单条上传失败只记入失败列表并继续下一条，不中断批次；条目间不保证事务性，
// 中途崩溃已处理条目保持已落库状态，调用方按"重提可恢复"理解
func (s *LibraryService) ImportGames(ctx context.Context, items []model.GameImportItem) ([]*model.Game, []model.ItemFailure, error) {
	if len(items) == 0 {
		return nil, nil, &model.ValidationError{Message: "游戏列表不能为空"}
	}
	// 入参校验在产生任何副作用之前完成
	for _, item := range items {
		if item.Title == "" || item.Platform == "" {
			return nil, nil, &model.ValidationError{Message: "游戏标题和平台不能为空"}
		}
	}

	added := make([]*model.Game, 0, len(items))
	var failures []model.ItemFailure

	for _, item := range items {
		hostedURL, err := s.assets.UploadImage(ctx, item.Image)
		if err != nil {
			s.logger.WithError(err).Warnf("「%s」封面图上传失败，跳过该条目", item.Title)
			failures = append(failures, model.ItemFailure{
				ID:      item.Title,
				Reason:  model.FailureUploadFailed,
				Message: err.Error(),
			})
			continue
		}

		game := &model.Game{
			Title:    item.Title,
			Platform: item.Platform,
			Complete: item.Complete,
			Country:  item.Country,
			Image:    hostedURL,
		}
		if err := s.repo.Create(ctx, game); err != nil {
			// 落库失败属于存储层故障，整批上抛为500；已处理条目保持现状
			return added, failures, err
		}
		added = append(added, game)
	}

	s.writeAuditLog(ctx, "import", len(items), len(added), failures)
	s.logger.Infof("导入批次完成：共%d条，成功%d条，失败%d条", len(items), len(added), len(failures))
	return added, failures, nil
}

// DeleteGames 删除批次：逐条释放托管封面图再删记录
// 单条失败只记入失败列表；资产已删但记录删除失败时不回滚，
// 不一致通过失败列表与审计日志暴露给人工对账
func (s *LibraryService) DeleteGames(ctx context.Context, ids []string) ([]string, []model.ItemFailure, error) {
	if len(ids) == 0 {
		return nil, nil, &model.ValidationError{Message: "游戏ID列表不能为空"}
	}

	deleted := make([]string, 0, len(ids))
	var failures []model.ItemFailure

	for _, id := range ids {
		game, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				failures = append(failures, model.ItemFailure{
					ID:      id,
					Reason:  model.FailureNotFound,
					Message: "记录不存在",
				})
			} else {
				failures = append(failures, model.ItemFailure{
					ID:      id,
					Reason:  model.FailureDeleteFailed,
					Message: err.Error(),
				})
			}
			continue
		}

		if publicID := assetPublicID(game.Image); publicID != "" {
			if err := s.assets.DeleteImage(ctx, publicID); err != nil {
				s.logger.WithError(err).Warnf("删除游戏%s的托管封面失败", id)
				failures = append(failures, model.ItemFailure{
					ID:      id,
					Reason:  model.FailureDeleteFailed,
					Message: err.Error(),
				})
				continue
			}
		}

		if err := s.repo.Delete(ctx, id); err != nil {
			s.logger.WithError(err).Warnf("删除游戏%s记录失败（封面资产已释放）", id)
			failures = append(failures, model.ItemFailure{
				ID:      id,
				Reason:  model.FailureDeleteFailed,
				Message: err.Error(),
			})
			continue
		}
		deleted = append(deleted, id)
	}

	s.writeAuditLog(ctx, "delete", len(ids), len(deleted), failures)
	s.logger.Infof("删除批次完成：共%d条，成功%d条，失败%d条", len(ids), len(deleted), len(failures))
	return deleted, failures, nil
}

// UpdateGames 更新批次：只允许改complete/country；ID不存在立即中止并返回NotFoundError
func (s *LibraryService) UpdateGames(ctx context.Context, items []model.GameUpdateItem) ([]*model.Game, error) {
	if len(items) == 0 {
		return nil, &model.ValidationError{Message: "游戏列表不能为空"}
	}

	updated := make([]*model.Game, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			return nil, &model.ValidationError{Message: "游戏ID不能为空"}
		}
		if item.Complete == nil && item.Country == nil {
			return nil, &model.ValidationError{Message: "complete和country至少填一个"}
		}

		fields := make(map[string]interface{})
		if item.Complete != nil {
			fields["complete"] = *item.Complete
		}
		if item.Country != nil {
			fields["country"] = *item.Country
		}

		game, err := s.repo.UpdateStatus(ctx, item.ID, fields)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &model.NotFoundError{ID: item.ID}
			}
			return nil, err
		}
		updated = append(updated, game)
	}

	s.logger.Infof("更新批次完成：成功%d条", len(updated))
	return updated, nil
}

// ListAll 全量列表（标题字母序）
func (s *LibraryService) ListAll(ctx context.Context) ([]*model.Game, error) {
	return s.repo.ListAlphabetical(ctx)
}

// Recent 最近入库的4条记录
func (s *LibraryService) Recent(ctx context.Context) ([]*model.Game, error) {
	return s.repo.ListRecent(ctx, 4)
}

// SearchByTitle 标题子串搜索（不区分大小写）
func (s *LibraryService) SearchByTitle(ctx context.Context, keyword string) ([]*model.Game, error) {
	return s.repo.SearchByTitle(ctx, keyword)
}

// SearchByPlatform 按平台名称精确筛选
func (s *LibraryService) SearchByPlatform(ctx context.Context, platform string) ([]*model.Game, error) {
	if platform == "" {
		return nil, &model.ValidationError{Message: "平台名称不能为空"}
	}
	return s.repo.ListByPlatform(ctx, platform)
}

// writeAuditLog 落一条批次审计日志，失败只记日志不影响批次结果
func (s *LibraryService) writeAuditLog(ctx context.Context, kind string, total, succeeded int, failures []model.ItemFailure) {
	detail := datatypes.JSON("[]")
	if len(failures) > 0 {
		if raw, err := json.Marshal(failures); err == nil {
			detail = raw
		}
	}
	entry := &model.ImportLog{
		Kind:      kind,
		Total:     total,
		Succeeded: succeeded,
		Failed:    len(failures),
		Detail:    detail,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		s.logger.WithError(err).Error("写入批次审计日志失败")
	}
}

// assetPublicID 从托管URL推导资产标识：取最后一个路径段、截到第一个点
// 与既有资产命名保持兼容，URL格式变化时此处会失配（已知风险）
func assetPublicID(imageURL string) string {
	seg := imageURL
	if idx := strings.LastIndex(seg, "/"); idx >= 0 {
		seg = seg[idx+1:]
	}
	if dot := strings.Index(seg, "."); dot >= 0 {
		seg = seg[:dot]
	}
	return seg
}
