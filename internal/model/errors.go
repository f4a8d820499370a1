package model

import "fmt"

// ValidationError 调用方入参错误（对应HTTP 400）
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamAuthError 外部令牌签发失败（非2xx或响应体异常，对应HTTP 500）
type UpstreamAuthError struct {
	Status int
	Body   string
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("令牌签发失败（状态码%d）: %s", e.Status, e.Body)
}

// UpstreamSearchError 外部目录搜索失败，保留上游状态码与响应体便于排查
type UpstreamSearchError struct {
	Status int
	Body   string
}

func (e *UpstreamSearchError) Error() string {
	return fmt.Sprintf("目录搜索失败（状态码%d）: %s", e.Status, e.Body)
}

// NotFoundError 指定ID的记录不存在（单条操作对应HTTP 404）
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("未找到ID为%s的游戏", e.ID)
}
