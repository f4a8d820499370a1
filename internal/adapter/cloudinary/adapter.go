package cloudinary

import (
	"context"
	"fmt"

	"RetroCatalog/internal/config"
	"RetroCatalog/internal/interfaces"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sirupsen/logrus"
)

type Adapter struct {
	client *cld.Cloudinary
	folder string
	logger *logrus.Logger
}

// NewCloudinaryAdapter 创建Cloudinary图片托管适配器
func NewCloudinaryAdapter(cfg *config.CloudinaryConfig, logger *logrus.Logger) (interfaces.AssetHost, error) {
	client, err := cld.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("初始化Cloudinary客户端失败: %w", err)
	}
	return &Adapter{
		client: client,
		folder: cfg.Folder,
		logger: logger,
	}, nil
}

// UploadImage 上传封面图到固定目录，返回托管URL
// source 可以是外部图片URL，也可以是data URI载荷，SDK两者都接受
func (a *Adapter) UploadImage(ctx context.Context, source string) (string, error) {
	resp, err := a.client.Upload.Upload(ctx, source, uploader.UploadParams{Folder: a.folder})
	if err != nil {
		return "", fmt.Errorf("上传封面图失败: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("上传封面图失败: %s", resp.Error.Message)
	}
	a.logger.WithField("url", resp.SecureURL).Info("封面图上传成功")
	return resp.SecureURL, nil
}

// DeleteImage 按资产标识删除托管图片
func (a *Adapter) DeleteImage(ctx context.Context, publicID string) error {
	resp, err := a.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("删除托管图片失败: %w", err)
	}
	// Cloudinary对不存在的资产返回not found，视为已删除
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("删除托管图片失败: %s", resp.Result)
	}
	return nil
}
