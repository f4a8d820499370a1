package interfaces

import (
	"context"

	"RetroCatalog/internal/model"
)

// TokenSource 提供调用外部目录API所需的Bearer令牌
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// CatalogAdapter 外部游戏目录适配器
type CatalogAdapter interface {
	// SearchGames 按标题+平台编码搜索目录，返回上游原始条目（保持上游顺序）
	SearchGames(ctx context.Context, title, platformCode string) ([]model.IgdbGame, error)
}
