package model

import (
	"time"

	"gorm.io/datatypes"
)

// Game 馆藏游戏记录（导入流水线落库的最终形态）
type Game struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey;comment:全局唯一ID（UUID）" json:"id"`
	Title     string    `gorm:"column:title;type:varchar(256);not null;comment:游戏标题" json:"title"`
	Platform  string    `gorm:"column:platform;type:varchar(64);not null;comment:平台名称" json:"platform"`
	Complete  string    `gorm:"column:complete;type:varchar(64);comment:收藏完整度（盒说全等）" json:"complete"`
	Country   string    `gorm:"column:country;type:varchar(64);comment:版本地区" json:"country"`
	Image     string    `gorm:"column:image;type:varchar(512);comment:封面图托管URL" json:"image"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;comment:创建时间" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;comment:更新时间" json:"updatedAt"`
}

// ImportLog 批量操作审计日志，每次导入/删除批次落一条
// Detail 保存失败明细，供人工对账（资产与记录可能不一致）
type ImportLog struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	Kind      string         `gorm:"column:kind;type:varchar(16);not null;comment:批次类型：import/delete"`
	Total     int            `gorm:"column:total;type:int;not null;comment:批次条目总数"`
	Succeeded int            `gorm:"column:succeeded;type:int;not null;comment:成功条数"`
	Failed    int            `gorm:"column:failed;type:int;not null;comment:失败条数"`
	Detail    datatypes.JSON `gorm:"column:detail;type:jsonb;comment:失败明细"`
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;comment:创建时间"`
}

func (Game) TableName() string      { return "games" }
func (ImportLog) TableName() string { return "import_logs" }
