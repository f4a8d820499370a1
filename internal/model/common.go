package model

// GameCandidate 目录搜索产出的候选条目（不落库，由前端勾选后回传导入）
type GameCandidate struct {
	Title    string `json:"title"`
	Platform string `json:"platform"`
	Image    string `json:"image"`
}

// GameImportItem 导入批次中的单个条目
type GameImportItem struct {
	Title    string `json:"title"`
	Platform string `json:"platform"`
	Image    string `json:"image"`
	Complete string `json:"complete"`
	Country  string `json:"country"`
}

// GameUpdateItem 更新批次中的单个条目（complete/country 至少填一个）
type GameUpdateItem struct {
	ID       string  `json:"id"`
	Complete *string `json:"complete"`
	Country  *string `json:"country"`
}

// FailureReason 批量操作单条失败原因
type FailureReason string

const (
	FailureUploadFailed FailureReason = "UploadFailed" // 封面图上传失败
	FailureDeleteFailed FailureReason = "DeleteFailed" // 资产或记录删除失败
	FailureNotFound     FailureReason = "NotFound"     // 记录不存在
)

// ItemFailure 批量操作失败明细，单条失败不会中断整个批次
type ItemFailure struct {
	ID      string        `json:"id"`
	Reason  FailureReason `json:"reason"`
	Message string        `json:"message"`
}
