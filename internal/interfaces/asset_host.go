package interfaces

import "context"

// AssetHost 封面图托管服务
type AssetHost interface {
	// UploadImage 上传图片（source 可以是URL或data载荷），返回托管后的稳定URL
	UploadImage(ctx context.Context, source string) (string, error)
	// DeleteImage 按资产标识删除托管图片
	DeleteImage(ctx context.Context, publicID string) error
}
