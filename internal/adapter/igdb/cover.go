package igdb

import (
	"strings"

	"RetroCatalog/internal/model"
)

// DefaultCoverURL 解析不到封面时使用的占位图
const DefaultCoverURL = "https://images.igdb.com/igdb/image/upload/t_cover_big/nocover_qhhlj6.jpg"

// maxCoverHops 沿parent_game回溯的最大跳数，上游脏数据可能成环
const maxCoverHops = 5

// ResolveCover 在同一页结果内解析条目的封面URL
// 条目自带封面则直接归一化返回；否则沿parent_game在siblings中回溯（最多5跳，
// 访问过的条目不再回溯），找不到返回空串，由调用方替换为占位图。纯函数，无I/O。
func ResolveCover(entry *model.IgdbGame, siblings []model.IgdbGame) string {
	visited := make(map[uint64]bool)

	current := entry
	for hops := 0; current != nil && hops <= maxCoverHops; hops++ {
		if current.Cover != nil && current.Cover.URL != "" {
			return normalizeCoverURL(current.Cover.URL)
		}
		if current.ParentGame == 0 || visited[current.ID] {
			return ""
		}
		visited[current.ID] = true
		current = findSibling(siblings, current.ParentGame)
	}
	return ""
}

// normalizeCoverURL 补全协议并把缩略图规格升级为大图规格
func normalizeCoverURL(raw string) string {
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	return strings.Replace(raw, "t_thumb", "t_cover_big", 1)
}

// findSibling 在同批结果中按ID查找父条目（不发起二次请求）
func findSibling(siblings []model.IgdbGame, id uint64) *model.IgdbGame {
	for i := range siblings {
		if siblings[i].ID == id {
			return &siblings[i]
		}
	}
	return nil
}
